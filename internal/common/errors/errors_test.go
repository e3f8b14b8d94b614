package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromResponse(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    Kind
		wantMessage string
	}{
		{
			name:        "detail string",
			status:      404,
			body:        `{"detail":"Restaurant not found"}`,
			wantKind:    KindNotFound,
			wantMessage: "Restaurant not found",
		},
		{
			name:        "detail non-string is stringified",
			status:      422,
			body:        `{"detail":[{"loc":["body","email"],"msg":"invalid email"}]}`,
			wantKind:    KindValidation,
			wantMessage: `[{"loc":["body","email"],"msg":"invalid email"}]`,
		},
		{
			name:        "message field fallback",
			status:      500,
			body:        `{"message":"internal failure"}`,
			wantKind:    KindServer,
			wantMessage: "internal failure",
		},
		{
			name:        "malformed body falls back to status text",
			status:      502,
			body:        "<html>Bad Gateway</html>",
			wantKind:    KindServer,
			wantMessage: "502 Bad Gateway",
		},
		{
			name:        "empty json body keeps http status message",
			status:      401,
			body:        `{}`,
			wantKind:    KindUnauthorized,
			wantMessage: "HTTP 401: Unauthorized",
		},
		{
			name:        "rate limited",
			status:      429,
			body:        `{"detail":"slow down"}`,
			wantKind:    KindRateLimited,
			wantMessage: "slow down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromResponse(tt.status, "", []byte(tt.body))
			require.NotNil(t, err)
			assert.Equal(t, tt.wantKind, err.Kind)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.Equal(t, tt.wantMessage, err.Message)
			assert.NotEmpty(t, err.Error())
		})
	}
}

func TestAPIError_NotFoundPrefix(t *testing.T) {
	err := FromResponse(404, "", []byte(`{"detail":"Restaurant not found"}`))
	assert.Equal(t, "404: Restaurant not found", err.Error())

	// Only 404s carry the prefix.
	err = FromResponse(500, "", []byte(`{"detail":"boom"}`))
	assert.Equal(t, "boom", err.Error())
}

func TestKindForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusBadRequest, KindValidation},
		{http.StatusUnauthorized, KindUnauthorized},
		{http.StatusForbidden, KindForbidden},
		{http.StatusNotFound, KindNotFound},
		{http.StatusConflict, KindConflict},
		{http.StatusUnprocessableEntity, KindValidation},
		{http.StatusTooManyRequests, KindRateLimited},
		{http.StatusInternalServerError, KindServer},
		{http.StatusBadGateway, KindServer},
		{http.StatusTeapot, KindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, KindForStatus(tt.status), "status %d", tt.status)
	}
}

func TestHelpers(t *testing.T) {
	notFound := FromResponse(404, "", nil)
	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsUnauthorized(notFound))

	unauthorized := FromResponse(401, "", nil)
	assert.True(t, IsUnauthorized(unauthorized))

	netErr := NewNetworkError(fmt.Errorf("connection refused"))
	assert.True(t, IsNetwork(netErr))
	assert.Zero(t, netErr.StatusCode)
	assert.Contains(t, netErr.Error(), "connection refused")

	// Wrapped errors are still recognized.
	wrapped := fmt.Errorf("fetching restaurant: %w", notFound)
	assert.True(t, IsNotFound(wrapped))

	apiErr, ok := AsAPIError(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, apiErr.Kind)

	_, ok = AsAPIError(fmt.Errorf("plain error"))
	assert.False(t, ok)
	assert.False(t, IsNotFound(nil))
}
