package googlefit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/totalfit/backend/internal/telemetry/metrics"
	"github.com/totalfit/backend/internal/telemetry/tracing"
	"github.com/totalfit/backend/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=googlefit_test

type tokenExchanger interface {
	Configured() bool
	ExchangeCode(ctx context.Context, code, redirectURI string) (Tokens, error)
}

type userSyncer interface {
	SyncUser(ctx context.Context, userID string) (SyncResult, error)
}

type Handler struct {
	client       tokenExchanger
	tokenStore   TokenStore
	syncer       userSyncer
	dashboardURL string
	metrics      *metrics.Manager
	now          func() time.Time
}

func NewHandler(
	client tokenExchanger,
	tokenStore TokenStore,
	syncer userSyncer,
	dashboardURL string,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		client:       client,
		tokenStore:   tokenStore,
		syncer:       syncer,
		dashboardURL: dashboardURL,
		metrics:      metricsManager,
		now:          time.Now,
	}
}

type exchangeRequest struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirectUri"`
	State       string `json:"state"`
}

type exchangeFailedResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// HandleExchange trades an authorization code for tokens and stores them
// server side, keyed by the state value. Tokens are never returned.
func (handler *Handler) HandleExchange(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.googlefit.exchange")
	defer span.End()

	var req exchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("google fit exchange, unmarshal json params: %s", err)
		pkg.SendJsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Code == "" || req.RedirectURI == "" || req.State == "" {
		pkg.SendJsonError(w, http.StatusBadRequest, "missing code, redirectUri or state")
		return
	}

	if !handler.client.Configured() {
		log.Error("google fit exchange: oauth client id/secret not configured")
		pkg.SendJsonError(w, http.StatusInternalServerError, "google oauth not configured")
		return
	}

	tokens, err := handler.client.ExchangeCode(ctx, req.Code, req.RedirectURI)
	if err != nil {
		var provErr *ProviderError
		if errors.As(err, &provErr) {
			log.Errorf("google fit token exchange failed with %d: %s", provErr.StatusCode, provErr.Body)
			pkg.SendJsonResponse(w, http.StatusBadRequest, exchangeFailedResponse{
				Error:  "token exchange failed",
				Detail: provErr.Body,
			})
			return
		}
		log.Errorf("google fit token exchange failed: %s", err)
		pkg.SendJsonError(w, http.StatusInternalServerError, "failed to exchange code")
		return
	}

	err = handler.tokenStore.Set(ctx, TokenRecord{
		UserID:       req.State,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
	if err != nil {
		log.Errorf("google fit exchange, store tokens: %s", err)
		pkg.SendJsonError(w, http.StatusInternalServerError, "failed to exchange code")
		return
	}

	handler.metrics.CounterTokenExchanges.Inc()

	pkg.SendJsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleCallback is the browser redirect target of the Google consent
// screen. It performs the exchange and sends the user back to the
// dashboard with the outcome in the query string.
func (handler *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.googlefit.callback")
	defer span.End()

	query := r.URL.Query()
	code := query.Get("code")
	state := query.Get("state")
	authErr := query.Get("error")

	log.Debugf("google fit callback received: code present [%t], error [%s], state [%s]",
		code != "", authErr, state)

	if authErr != "" {
		log.Errorf("google fit authorization error: %s", authErr)
		handler.redirectWithError(w, r, authErr)
		return
	}

	if code == "" {
		log.Error("google fit callback: no authorization code received")
		handler.redirectWithError(w, r, "no_code")
		return
	}

	redirectURI := callbackRedirectURI(r)
	tokens, err := handler.client.ExchangeCode(ctx, code, redirectURI)
	if err != nil {
		log.Errorf("google fit callback, exchange code: %s", err)
		handler.redirectWithError(w, r, err.Error())
		return
	}

	err = handler.tokenStore.Set(ctx, TokenRecord{
		UserID:       state,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
	if err != nil {
		log.Errorf("google fit callback, store tokens: %s", err)
		handler.redirectWithError(w, r, "token_store_failed")
		return
	}

	handler.metrics.CounterTokenExchanges.Inc()

	// short-lived cookie so the web app keeps its session through the
	// consent redirect cycle
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_preserved",
		Value:    "true",
		MaxAge:   3600,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Cache-Control", "no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")

	redirectURL := fmt.Sprintf(
		"%s?googleFitConnected=true&ts=%d",
		handler.dashboardURL, handler.now().UnixMilli(),
	)
	http.Redirect(w, r, redirectURL, http.StatusFound)
}

func (handler *Handler) redirectWithError(w http.ResponseWriter, r *http.Request, reason string) {
	redirectURL := fmt.Sprintf(
		"%s?googleFitError=%s",
		handler.dashboardURL, url.QueryEscape(reason),
	)
	http.Redirect(w, r, redirectURL, http.StatusFound)
}

// callbackRedirectURI reconstructs the redirect URI the consent flow used,
// it must match the one sent with the authorization request.
func callbackRedirectURI(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, r.Host, r.URL.Path)
}

type syncTriggerRequest struct {
	UserID string `json:"userId"`
	// the window fields are accepted for compatibility, the sync always
	// covers local midnight to now
	StartTimeMillis int64 `json:"startTimeMillis"`
	EndTimeMillis   int64 `json:"endTimeMillis"`
}

type syncTriggerResponse struct {
	Success bool     `json:"success"`
	Data    syncData `json:"data"`
}

type syncData struct {
	LastSyncTime time.Time `json:"lastSyncTime"`
}

type syncErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HandleSyncTrigger runs a Google Fit sync for the user and maps provider
// failures to the statuses the dashboard pattern-matches on.
func (handler *Handler) HandleSyncTrigger(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.googlefit.syncTrigger")
	defer span.End()

	var req syncTriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("google fit sync trigger, unmarshal json params: %s", err)
	}

	if req.UserID == "" {
		pkg.SendJsonError(w, http.StatusBadRequest, "userId is required")
		return
	}

	if _, err := handler.syncer.SyncUser(ctx, req.UserID); err != nil {
		handler.sendSyncError(w, req.UserID, err)
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, syncTriggerResponse{
		Success: true,
		Data:    syncData{LastSyncTime: handler.now()},
	})
}

func (handler *Handler) sendSyncError(w http.ResponseWriter, userID string, err error) {
	log.Errorf("google fit sync for [%s] failed: %s", userID, err)

	if errors.Is(err, ErrNoTokens) {
		pkg.SendJsonResponse(w, http.StatusUnauthorized, syncErrorResponse{
			Error:   "Not connected to Google Fit",
			Message: "Please connect your Google Fit account first.",
		})
		return
	}

	var provErr *ProviderError
	if errors.As(err, &provErr) {
		switch provErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			pkg.SendJsonResponse(w, http.StatusUnauthorized, syncErrorResponse{
				Error:   "Google Fit connection expired",
				Message: "Your Google Fit connection has expired. Please reconnect your account.",
			})
		case http.StatusTooManyRequests:
			pkg.SendJsonResponse(w, http.StatusTooManyRequests, syncErrorResponse{
				Error:   "Rate limit exceeded",
				Message: "Google Fit API rate limit exceeded. Please try again later.",
			})
		default:
			pkg.SendJsonResponse(w, provErr.StatusCode, syncErrorResponse{
				Error:   "Google Fit API error",
				Message: "Error fetching fitness data from Google Fit.",
			})
		}
		return
	}

	pkg.SendJsonResponse(w, http.StatusInternalServerError, syncErrorResponse{
		Error:   "Failed to sync Google Fit data",
		Message: "An unexpected error occurred.",
	})
}
