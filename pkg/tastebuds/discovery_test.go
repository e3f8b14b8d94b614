package tastebuds

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeelingLucky(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discovery/lucky", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Write([]byte(`{
			"id": "r1", "name": "Golden Wok", "rating": 4.5,
			"explanation": "A twin favorite",
			"twin_recommendations": [{"twin_name": "Bea", "similarity": 0.91, "comment": "so good"}]
		}`))
	})

	resp, err := client.FeelingLucky(context.Background(), "San Francisco, CA")
	require.NoError(t, err)

	assert.Equal(t, "San Francisco, CA", gotQuery.Get("location"))
	assert.Equal(t, "Golden Wok", resp.Name)
	assert.Equal(t, "A twin favorite", resp.Explanation)
	require.Len(t, resp.TwinRecommendations, 1)
}

func TestCompare_LimitHandling(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"restaurants": []}`))
	})

	_, err := client.Compare(context.Background(), "SF", 5)
	require.NoError(t, err)
	assert.Equal(t, "5", gotQuery.Get("limit"))

	_, err = client.Compare(context.Background(), "SF", 0)
	require.NoError(t, err)
	_, present := gotQuery["limit"]
	assert.False(t, present, "zero limit defers to the backend default")
}

func TestTrending(t *testing.T) {
	client := newTestClient(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discovery/trending", r.URL.Path)
		w.Write([]byte(`{
			"trending": [
				{"id": "r1", "name": "Golden Wok", "rating": 4.5, "twin_visits": 6, "trending_score": 0.93}
			]
		}`))
	})

	resp, err := client.Trending(context.Background(), "SF")
	require.NoError(t, err)
	require.Len(t, resp.Trending, 1)
	assert.Equal(t, 6, resp.Trending[0].TwinVisits)
	assert.InDelta(t, 0.93, resp.Trending[0].TrendingScore, 1e-9)
}

func TestCompatibility(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/date-night/compatibility", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Write([]byte(`{
			"compatibility_score": 0.82,
			"shared_cuisines": ["thai"],
			"compromise_cuisines": ["italian"],
			"you_prefer": ["szechuan"],
			"they_prefer": ["french"],
			"analysis": "Strong overlap on spice"
		}`))
	})

	resp, err := client.Compatibility(context.Background(), "u2")
	require.NoError(t, err)

	assert.Equal(t, "u2", gotQuery.Get("partner_id"))
	assert.InDelta(t, 0.82, resp.CompatibilityScore, 1e-9)
	assert.Equal(t, []string{"szechuan"}, resp.YouPrefer)
	assert.Equal(t, []string{"french"}, resp.TheyPrefer)
}

func TestDateNightSuggestions(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/date-night/suggestions", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Write([]byte(`{
			"perfect_matches": [{"id": "r1", "name": "Golden Wok"}],
			"you_will_love": [],
			"they_will_love": [{"id": "r2", "name": "La Trattoria"}]
		}`))
	})

	resp, err := client.DateNightSuggestions(context.Background(), "u2", "SF")
	require.NoError(t, err)

	assert.Equal(t, "u2", gotQuery.Get("partner_id"))
	assert.Equal(t, "SF", gotQuery.Get("location"))
	require.Len(t, resp.PerfectMatches, 1)
	assert.Empty(t, resp.YouWillLove)
	require.Len(t, resp.TheyWillLove, 1)
}

func TestRefreshTwins(t *testing.T) {
	client := newTestClient(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/twins/refresh", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"twins": [{"twin_id": "u3", "name": "Cal"}], "total_count": 1}`))
	})

	resp, err := client.RefreshTwins(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Twins, 1)
	assert.Equal(t, "Cal", resp.Twins[0].Name)
}
