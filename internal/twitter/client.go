package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blackmichael/reshare-bot/internal/domain"
)

const defaultBaseURL = "https://api.twitter.com/1.1"

// Client is a minimal REST client for the platform's v1.1-style endpoints.
// It implements domain.Client.
//
// Requests carry the configured token as a bearer token. An app-only token
// serves the read endpoints, but favorites/create and statuses/retweet/:id
// require a user-context token for the acting account.
type Client struct {
	baseURL     string
	bearerToken string
	httpClient  *http.Client
}

var _ domain.Client = (*Client)(nil)

// NewClient creates a new API client. If baseURL is empty, it defaults to
// https://api.twitter.com/1.1. A zero timeout means 30 seconds.
func NewClient(baseURL, bearerToken string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		bearerToken: bearerToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Read issues a GET with params in the query string.
func (c *Client) Read(ctx context.Context, endpoint string, params domain.Params) (*domain.Response, error) {
	path, rest := expandPath(endpoint, params)

	u := c.baseURL + "/" + path + ".json"
	if q := encode(rest); q != "" {
		u += "?" + q
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.do(req)
}

// Write issues a form-encoded POST.
func (c *Client) Write(ctx context.Context, endpoint string, params domain.Params) (*domain.Response, error) {
	path, rest := expandPath(endpoint, params)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+path+".json", strings.NewReader(encode(rest)))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*domain.Response, error) {
	req.Header.Set("Accept", "application/json")
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	result := &domain.Response{
		Status:        resp.StatusCode,
		StatusMessage: statusMessage(resp, body),
	}
	if len(bytes.TrimSpace(body)) > 0 {
		result.Data = json.RawMessage(body)
	}
	return result, nil
}

// statusMessage prefers the first API error message over the HTTP reason
// phrase.
func statusMessage(resp *http.Response, body []byte) string {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode)))
	}

	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && len(apiErr.Errors) > 0 && apiErr.Errors[0].Message != "" {
		return apiErr.Errors[0].Message
	}
	return http.StatusText(resp.StatusCode)
}

// expandPath substitutes ":name" segments from params and returns the
// parameters that were not consumed.
func expandPath(endpoint string, params domain.Params) (string, domain.Params) {
	rest := make(domain.Params, len(params))
	for k, v := range params {
		rest[k] = v
	}

	segments := strings.Split(endpoint, "/")
	for i, seg := range segments {
		name, ok := strings.CutPrefix(seg, ":")
		if !ok {
			continue
		}
		if v, found := rest[name]; found {
			segments[i] = url.PathEscape(fmt.Sprint(v))
			delete(rest, name)
		}
	}
	return strings.Join(segments, "/"), rest
}

func encode(params domain.Params) string {
	values := url.Values{}
	for k, v := range params {
		values.Set(k, fmt.Sprint(v))
	}
	return values.Encode()
}

type errorResponse struct {
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}
