// Package twitterapi contains a minimal Twitter API client that signs every
// request with OAuth 1.0a (HMAC-SHA1) user context. It only covers the two
// profile operations the service needs: reading the display name and
// writing it back.
package twitterapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/onnwee/clockname/telemetry"
)

// Credentials holds the four OAuth 1.0a secrets. They are immutable for the
// life of the process and supplied by the environment.
type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// Client performs OAuth 1.0a signed HTTP calls. Init must be called once
// before the first request; it derives and caches the signing key.
type Client struct {
	Credentials Credentials
	HTTPClient  *http.Client

	signingKey string

	// test seams; nil means real randomness / wall clock
	nonceFn func() (string, error)
	nowFn   func() time.Time
}

func (c *Client) http() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) now() time.Time {
	if c.nowFn != nil {
		return c.nowFn()
	}
	return time.Now()
}

// Init derives the signing key from the consumer secret and token secret.
// Calling it more than once is harmless.
func (c *Client) Init() error {
	if c.Credentials.ConsumerKey == "" || c.Credentials.ConsumerSecret == "" ||
		c.Credentials.AccessToken == "" || c.Credentials.AccessTokenSecret == "" {
		return fmt.Errorf("twitterapi: incomplete credentials")
	}
	c.signingKey = percentEncode(c.Credentials.ConsumerSecret) + "&" + percentEncode(c.Credentials.AccessTokenSecret)
	return nil
}

// Do issues a signed request and returns the parsed JSON body. Params are
// carried in the URL query and included in the signature. A non-2xx status
// yields an *APIError wrapping the parsed error body.
func (c *Client) Do(ctx context.Context, method, rawURL string, params map[string]string) (json.RawMessage, error) {
	auth, err := c.authorizationHeader(method, rawURL, params)
	if err != nil {
		return nil, err
	}

	reqURL := rawURL
	if len(params) > 0 {
		pairs := make([]string, 0, len(params))
		for k, v := range params {
			pairs = append(pairs, percentEncode(k)+"="+percentEncode(v))
		}
		reqURL += "?" + strings.Join(pairs, "&")
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", auth)

	var resp *http.Response
	telemetry.TimeFunc(telemetry.APIRequestDuration, func() {
		resp, err = c.http().Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", slog.Any("err", err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("twitterapi: invalid JSON response (status %s)", resp.Status)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: json.RawMessage(body)}
	}
	return json.RawMessage(body), nil
}
