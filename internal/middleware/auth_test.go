package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthCheck(t *testing.T) {
	authMiddleware := NewApiKeyMiddlewareHandler("test-api-key")
	handler := authMiddleware.AuthCheck()

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})
	handlerFunc := handler(next)

	testCases := []struct {
		name           string
		method         string
		path           string
		apiKey         string
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "options request is always allowed",
			method:         http.MethodOptions,
			path:           "/api/sync/google-fit",
			expectedStatus: http.StatusOK,
			expectNext:     false,
		},
		{
			name:           "health endpoint is open",
			method:         http.MethodPost,
			path:           "/api/health",
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "version endpoint is open",
			method:         http.MethodPost,
			path:           "/version",
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "google fit callback is open",
			method:         http.MethodPost,
			path:           "/api/auth/google-fit/callback",
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "get requests pass without key",
			method:         http.MethodGet,
			path:           "/api/performance",
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "post without key rejected",
			method:         http.MethodPost,
			path:           "/api/sync/google-fit",
			expectedStatus: http.StatusUnauthorized,
			expectNext:     false,
		},
		{
			name:           "post with wrong key rejected",
			method:         http.MethodPost,
			path:           "/api/performance/sync",
			apiKey:         "wrong-key",
			expectedStatus: http.StatusUnauthorized,
			expectNext:     false,
		},
		{
			name:           "post with valid key allowed",
			method:         http.MethodPost,
			path:           "/api/performance/sync",
			apiKey:         "test-api-key",
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			nextCalled = false
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.apiKey != "" {
				req.Header.Set("X-API-Key", tc.apiKey)
			}
			rr := httptest.NewRecorder()
			handlerFunc.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, tc.expectNext, nextCalled)
		})
	}
}

func TestAuthCheck_unauthorizedMessage(t *testing.T) {
	authMiddleware := NewApiKeyMiddlewareHandler("test-api-key")
	handlerFunc := authMiddleware.AuthCheck()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/sync/google-fit", nil)
	rr := httptest.NewRecorder()
	handlerFunc.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	body, err := io.ReadAll(rr.Result().Body)
	require.NoError(t, err)
	assert.Equal(t, "no can do\n", string(body))
}
