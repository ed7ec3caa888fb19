package googlefit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ExchangeCode(t *testing.T) {
	ctx := context.Background()

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "test-client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "test-client-secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "test-code", r.PostForm.Get("code"))
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "https://totalfit.app/cb", r.PostForm.Get("redirect_uri"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","refresh_token":"rt-1","expires_in":3599}`))
	}))
	defer tokenServer.Close()

	client := NewClient(
		tokenServer.URL, DefaultAggregateEndpoint,
		"test-client-id", "test-client-secret",
		tokenServer.Client(),
	)
	require.True(t, client.Configured())

	tokens, err := client.ExchangeCode(ctx, "test-code", "https://totalfit.app/cb")
	require.NoError(t, err)
	assert.Equal(t, "at-1", tokens.AccessToken)
	assert.Equal(t, "rt-1", tokens.RefreshToken)
}

func TestClient_ExchangeCode_providerError(t *testing.T) {
	ctx := context.Background()

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer tokenServer.Close()

	client := NewClient(
		tokenServer.URL, DefaultAggregateEndpoint,
		"test-client-id", "test-client-secret",
		tokenServer.Client(),
	)

	_, err := client.ExchangeCode(ctx, "expired-code", "https://totalfit.app/cb")
	require.Error(t, err)

	var provErr *ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusBadRequest, provErr.StatusCode)
	assert.Equal(t, `{"error":"invalid_grant"}`, provErr.Body)
}

func TestClient_ExchangeCode_missingAccessToken(t *testing.T) {
	ctx := context.Background()

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"refresh_token":"rt-1"}`))
	}))
	defer tokenServer.Close()

	client := NewClient(
		tokenServer.URL, DefaultAggregateEndpoint,
		"test-client-id", "test-client-secret",
		tokenServer.Client(),
	)

	_, err := client.ExchangeCode(ctx, "test-code", "https://totalfit.app/cb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access token missing")
}

func TestClient_Aggregate(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	end := start.Add(9*time.Hour + 30*time.Minute)

	aggregateServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		aggregateBy, ok := req["aggregateBy"].([]any)
		require.True(t, ok)
		require.Len(t, aggregateBy, 3)
		assert.Equal(t, map[string]any{"dataTypeName": "com.google.step_count.delta"}, aggregateBy[0])
		assert.Equal(t, map[string]any{"dataTypeName": "com.google.calories.expended"}, aggregateBy[1])
		assert.Equal(t, map[string]any{"dataTypeName": "com.google.heart_rate.bpm"}, aggregateBy[2])

		bucketByTime, ok := req["bucketByTime"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(end.Sub(start).Milliseconds()), bucketByTime["durationMillis"])
		assert.Equal(t, float64(start.UnixMilli()), req["startTimeMillis"])
		assert.Equal(t, float64(end.UnixMilli()), req["endTimeMillis"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"bucket": [{
				"startTimeMillis": "1741910400000",
				"endTimeMillis": "1741944600000",
				"dataset": [
					{
						"dataSourceId": "derived:com.google.step_count.delta:aggregated",
						"point": [{"value": [{"intVal": 4200}]}]
					},
					{
						"dataSourceId": "derived:com.google.calories.expended:aggregated",
						"point": [{"value": [{"fpVal": 320.5}]}]
					},
					{
						"dataSourceId": "derived:com.google.heart_rate.bpm:aggregated",
						"point": []
					}
				]
			}]
		}`))
	}))
	defer aggregateServer.Close()

	client := NewClient(
		DefaultTokenEndpoint, aggregateServer.URL,
		"test-client-id", "test-client-secret",
		aggregateServer.Client(),
	)

	resp, err := client.Aggregate(ctx, "at-1", start, end)
	require.NoError(t, err)
	require.Len(t, resp.Bucket, 1)

	bucket := resp.Bucket[0]
	require.Len(t, bucket.Dataset, 3)
	require.Len(t, bucket.Dataset[0].Point, 1)
	require.NotNil(t, bucket.Dataset[0].Point[0].Value[0].IntVal)
	assert.Equal(t, int64(4200), *bucket.Dataset[0].Point[0].Value[0].IntVal)
	require.NotNil(t, bucket.Dataset[1].Point[0].Value[0].FpVal)
	assert.Equal(t, 320.5, *bucket.Dataset[1].Point[0].Value[0].FpVal)
	assert.Empty(t, bucket.Dataset[2].Point)
}

func TestClient_Aggregate_zeroWindow(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	aggregateServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		// a zero-length window still produces a full day bucket
		bucketByTime, ok := req["bucketByTime"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(24*time.Hour.Milliseconds()), bucketByTime["durationMillis"])

		_, _ = w.Write([]byte(`{"bucket":[]}`))
	}))
	defer aggregateServer.Close()

	client := NewClient(
		DefaultTokenEndpoint, aggregateServer.URL,
		"test-client-id", "test-client-secret",
		aggregateServer.Client(),
	)

	resp, err := client.Aggregate(ctx, "at-1", at, at)
	require.NoError(t, err)
	assert.Empty(t, resp.Bucket)
}

func TestClient_Aggregate_providerError(t *testing.T) {
	ctx := context.Background()

	aggregateServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("rate limit exceeded"))
	}))
	defer aggregateServer.Close()

	client := NewClient(
		DefaultTokenEndpoint, aggregateServer.URL,
		"test-client-id", "test-client-secret",
		aggregateServer.Client(),
	)

	_, err := client.Aggregate(ctx, "at-1", time.Now().Add(-time.Hour), time.Now())
	require.Error(t, err)

	var provErr *ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusTooManyRequests, provErr.StatusCode)
	assert.Equal(t, "rate limit exceeded", provErr.Body)
}

func TestClient_RefreshAccessToken_notImplemented(t *testing.T) {
	client := NewClient(
		DefaultTokenEndpoint, DefaultAggregateEndpoint,
		"test-client-id", "test-client-secret",
		http.DefaultClient,
	)

	_, err := client.RefreshAccessToken(context.Background(), "rt-1")
	require.ErrorIs(t, err, ErrNotImplemented)
}
