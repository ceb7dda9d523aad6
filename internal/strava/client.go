package strava

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/lejogtracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const (
	UserAgent = "LEJOG-Tracker"

	// MaxPageSize is the largest page strava serves for activity lists.
	MaxPageSize = 200

	maxErrorBodyLen = 512
)

var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrMissingToken     = errors.New("no access token or expiry in response")
)

// StatusError carries the status code of a non-2xx strava response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d: %s", ErrUnexpectedStatus, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

type ClientParams struct {
	TokenURL     string
	APIBaseURL   string
	ClientID     string
	ClientSecret string
	RefreshToken string
	HTTPTimeout  time.Duration
	// HTTPClient is optional; by default an otel instrumented client is used
	HTTPClient *http.Client
}

type Client struct {
	tokenURL     string
	apiBaseURL   string
	clientID     string
	clientSecret string
	refreshToken string
	httpClient   *http.Client
}

func NewClient(params ClientParams) *Client {
	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   params.HTTPTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &Client{
		tokenURL:     params.TokenURL,
		apiBaseURL:   strings.TrimSuffix(params.APIBaseURL, "/"),
		clientID:     params.ClientID,
		clientSecret: params.ClientSecret,
		refreshToken: params.RefreshToken,
		httpClient:   httpClient,
	}
}

// RefreshToken exchanges the long lived refresh token for an access token.
func (c *Client) RefreshToken(ctx context.Context) (_ *Credential, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strava.client.refreshToken")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("refresh_token", c.refreshToken)
	form.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("new token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", UserAgent)

	respBytes, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(respBytes, &tokenResp); err != nil {
		return nil, fmt.Errorf("unmarshal token response: %w", err)
	}
	if tokenResp.AccessToken == "" || tokenResp.ExpiresAt <= 0 {
		return nil, ErrMissingToken
	}

	return &Credential{
		AccessToken: tokenResp.AccessToken,
		ExpiresAt:   time.Unix(tokenResp.ExpiresAt, 0).UTC(),
	}, nil
}

// ListActivities returns a single page of the athlete's activities started after the
// given instant. Only the first page is requested.
func (c *Client) ListActivities(ctx context.Context, credential *Credential, after time.Time, perPage int) (_ []SummaryActivity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strava.client.listActivities")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if credential == nil || credential.AccessToken == "" {
		return nil, ErrMissingToken
	}
	if perPage <= 0 || perPage > MaxPageSize {
		perPage = MaxPageSize
	}

	query := url.Values{}
	query.Set("after", strconv.FormatInt(after.Unix(), 10))
	query.Set("per_page", strconv.Itoa(perPage))
	activitiesURL := fmt.Sprintf("%s/athlete/activities?%s", c.apiBaseURL, query.Encode())

	span.SetAttributes(
		attribute.Int64("after", after.Unix()),
		attribute.Int("per_page", perPage),
	)
	log.Debugf("calling strava activities api: %s", activitiesURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, activitiesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new activities request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential.AccessToken)
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	respBytes, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var activities []SummaryActivity
	if err := json.Unmarshal(respBytes, &activities); err != nil {
		return nil, fmt.Errorf("unmarshal activities response: %w", err)
	}

	span.SetAttributes(attribute.Int("activities", len(activities)))

	return activities, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := string(respBytes)
		if len(body) > maxErrorBodyLen {
			body = body[:maxErrorBodyLen]
		}
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	return respBytes, nil
}
