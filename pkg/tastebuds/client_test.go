package tastebuds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "tastebuds-client/internal/common/errors"
	"tastebuds-client/internal/common/logger"
	"tastebuds-client/internal/common/session"
)

// newTestClient spins up a fixture backend and points a client at it. An
// empty token means "logged out".
func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var src session.TokenSource
	if token != "" {
		src = session.StaticToken(token)
	}
	return New(srv.URL, src, WithLogger(logger.NewTestLogger(t)))
}

func TestClient_BearerHeaderAttached(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"count": 2}`))
	})

	count, err := client.TwinCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, "Bearer t1", gotAuth)
}

func TestClient_NoTokenOmitsHeader(t *testing.T) {
	tests := []struct {
		name   string
		tokens session.TokenSource
	}{
		{name: "nil token source", tokens: nil},
		{name: "empty token", tokens: session.StaticToken("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hasHeader bool
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, hasHeader = r.Header["Authorization"]
				w.Write([]byte(`{"count": 0}`))
			}))
			defer srv.Close()

			client := New(srv.URL, tt.tokens)
			_, err := client.TwinCount(context.Background())
			require.NoError(t, err)
			assert.False(t, hasHeader, "Authorization header must be omitted entirely")
		})
	}
}

func TestClient_TokenRotationHonored(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"count": 0}`))
	}))
	defer srv.Close()

	current := "t1"
	client := New(srv.URL, session.TokenSourceFunc(func() string { return current }))

	_, err := client.TwinCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer t1", gotAuth)

	// Rotate without rebuilding the client.
	current = "t2"
	_, err = client.TwinCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer t2", gotAuth)
}

func TestClient_RequestIDHeader(t *testing.T) {
	var gotID string
	client := newTestClient(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"count": 0}`))
	})

	_, err := client.TwinCount(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, gotID)
}

func TestClient_SuccessPassthrough(t *testing.T) {
	client := newTestClient(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"twins": [
				{"twin_id": "u2", "name": "Bea", "similarity_score": 0.91,
				 "shared_cuisines": ["thai", "mexican"], "adventure_score": 0.8, "spice_tolerance": 0.7}
			],
			"total_count": 1
		}`))
	})

	resp, err := client.Twins(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Twins, 1)
	assert.Equal(t, "u2", resp.Twins[0].TwinID)
	assert.Equal(t, "Bea", resp.Twins[0].Name)
	assert.InDelta(t, 0.91, resp.Twins[0].SimilarityScore, 1e-9)
	assert.Equal(t, []string{"thai", "mexican"}, resp.Twins[0].SharedCuisines)
	assert.Equal(t, 1, resp.TotalCount)
}

func TestClient_RepeatedCallsIdentical(t *testing.T) {
	client := newTestClient(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"twins": [{"twin_id": "u2", "name": "Bea"}], "total_count": 1}`))
	})

	first, err := client.Twins(context.Background())
	require.NoError(t, err)
	second, err := client.Twins(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestClient_ErrorNormalization(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    apierrors.Kind
		wantMessage string
	}{
		{
			name:        "404 with detail",
			status:      404,
			body:        `{"detail":"Restaurant not found"}`,
			wantKind:    apierrors.KindNotFound,
			wantMessage: "404: Restaurant not found",
		},
		{
			name:        "401 with detail",
			status:      401,
			body:        `{"detail":"Could not validate credentials"}`,
			wantKind:    apierrors.KindUnauthorized,
			wantMessage: "Could not validate credentials",
		},
		{
			name:        "500 malformed body",
			status:      500,
			body:        "<html>oops</html>",
			wantKind:    apierrors.KindServer,
			wantMessage: "500 Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, "t1", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.Twins(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.wantMessage, err.Error())

			apiErr, ok := apierrors.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.NotEmpty(t, apiErr.RequestID)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := New(srv.URL, nil)
	srv.Close() // connection refused from here on

	_, err := client.Twins(context.Background())
	require.Error(t, err)
	assert.True(t, apierrors.IsNetwork(err))

	apiErr, ok := apierrors.AsAPIError(err)
	require.True(t, ok)
	assert.Zero(t, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Message)
}

func TestClient_DecodeFailure(t *testing.T) {
	client := newTestClient(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := client.Twins(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")

	// A decode failure is not an API error; there is no status to report.
	_, ok := apierrors.AsAPIError(err)
	assert.False(t, ok)
}

func TestClient_ContextCancellation(t *testing.T) {
	client := newTestClient(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Twins(ctx)
	require.Error(t, err)
	assert.True(t, apierrors.IsNetwork(err))
}

func TestClient_BaseURLDefaultAndTrim(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, New("", nil).baseURL)
	assert.Equal(t, "http://example.com/api/v1", New("http://example.com/api/v1/", nil).baseURL)
}
