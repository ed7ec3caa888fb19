package googlefit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/totalfit/backend/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultTokenEndpoint     = "https://oauth2.googleapis.com/token"
	DefaultAggregateEndpoint = "https://www.googleapis.com/fitness/v1/users/me/dataset:aggregate"

	DataTypeSteps     = "com.google.step_count.delta"
	DataTypeCalories  = "com.google.calories.expended"
	DataTypeHeartRate = "com.google.heart_rate.bpm"
)

// ErrNotImplemented marks the token refresh path, which was never built:
// an expired access token surfaces as a provider 401 instead.
var ErrNotImplemented = errors.New("google fit token refresh not implemented")

// ProviderError is a non-success response from the Google OAuth or fitness
// API, carrying the status and body for diagnostics. Provider calls are
// never retried.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("google fit api error %d: %s", e.StatusCode, e.Body)
}

// Tokens is the result of a successful authorization code exchange.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type Client struct {
	clientID          string
	clientSecret      string
	tokenEndpoint     string
	aggregateEndpoint string
	httpClient        *http.Client
}

func NewClient(
	tokenEndpoint, aggregateEndpoint string,
	clientID, clientSecret string,
	httpClient *http.Client,
) *Client {
	return &Client{
		clientID:          clientID,
		clientSecret:      clientSecret,
		tokenEndpoint:     tokenEndpoint,
		aggregateEndpoint: aggregateEndpoint,
		httpClient:        httpClient,
	}
}

func (c *Client) Configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// ExchangeCode trades an authorization code for tokens with a single
// form-encoded POST to the token endpoint.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) (Tokens, error) {
	var err error
	ctx, span := tracing.GlobalTracer.Start(ctx, "googlefit.client.exchangeCode")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	form := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
		"redirect_uri":  {redirectURI},
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.tokenEndpoint,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return Tokens{}, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Tokens{}, fmt.Errorf("call token endpoint: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return Tokens{}, fmt.Errorf("read token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err = &ProviderError{StatusCode: resp.StatusCode, Body: string(respBytes)}
		return Tokens{}, err
	}

	var tokens Tokens
	if err = json.Unmarshal(respBytes, &tokens); err != nil {
		return Tokens{}, fmt.Errorf("unmarshal token response: %w", err)
	}
	if tokens.AccessToken == "" {
		err = errors.New("access token missing in token response")
		return Tokens{}, err
	}

	log.Debugf("google fit token exchange done, refresh token received: %t", tokens.RefreshToken != "")

	return tokens, nil
}

type aggregateBy struct {
	DataTypeName string `json:"dataTypeName"`
}

type bucketByTime struct {
	DurationMillis int64 `json:"durationMillis"`
}

type aggregateRequest struct {
	AggregateBy     []aggregateBy `json:"aggregateBy"`
	BucketByTime    bucketByTime  `json:"bucketByTime"`
	StartTimeMillis int64         `json:"startTimeMillis"`
	EndTimeMillis   int64         `json:"endTimeMillis"`
}

type AggregateValue struct {
	IntVal *int64   `json:"intVal,omitempty"`
	FpVal  *float64 `json:"fpVal,omitempty"`
}

type AggregatePoint struct {
	Value []AggregateValue `json:"value,omitempty"`
}

type AggregateDataset struct {
	DataSourceID string           `json:"dataSourceId,omitempty"`
	Point        []AggregatePoint `json:"point,omitempty"`
}

type AggregateBucket struct {
	StartTimeMillis string             `json:"startTimeMillis"`
	EndTimeMillis   string             `json:"endTimeMillis"`
	Dataset         []AggregateDataset `json:"dataset"`
}

type AggregateResponse struct {
	Bucket []AggregateBucket `json:"bucket,omitempty"`
}

// Aggregate fetches steps, calories and heart rate for the given window as
// a single bucket spanning the whole window.
func (c *Client) Aggregate(
	ctx context.Context,
	accessToken string,
	start, end time.Time,
) (AggregateResponse, error) {
	var err error
	ctx, span := tracing.GlobalTracer.Start(ctx, "googlefit.client.aggregate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	durationMillis := end.UnixMilli() - start.UnixMilli()
	if durationMillis == 0 {
		durationMillis = 24 * time.Hour.Milliseconds()
	}

	span.SetAttributes(attribute.Int64("aggregate.duration.millis", durationMillis))

	reqBody, err := json.Marshal(aggregateRequest{
		AggregateBy: []aggregateBy{
			{DataTypeName: DataTypeSteps},
			{DataTypeName: DataTypeCalories},
			{DataTypeName: DataTypeHeartRate},
		},
		BucketByTime:    bucketByTime{DurationMillis: durationMillis},
		StartTimeMillis: start.UnixMilli(),
		EndTimeMillis:   end.UnixMilli(),
	})
	if err != nil {
		return AggregateResponse{}, fmt.Errorf("marshal aggregate request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.aggregateEndpoint,
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return AggregateResponse{}, fmt.Errorf("create aggregate request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return AggregateResponse{}, fmt.Errorf("call aggregate endpoint: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return AggregateResponse{}, fmt.Errorf("read aggregate response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err = &ProviderError{StatusCode: resp.StatusCode, Body: string(respBytes)}
		return AggregateResponse{}, err
	}

	var aggregateResp AggregateResponse
	if err = json.Unmarshal(respBytes, &aggregateResp); err != nil {
		return AggregateResponse{}, fmt.Errorf("unmarshal aggregate response: %w", err)
	}

	return aggregateResp, nil
}

func (c *Client) RefreshAccessToken(_ context.Context, _ string) (Tokens, error) {
	return Tokens{}, ErrNotImplemented
}
