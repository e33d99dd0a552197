package zeltysync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const headerRedactionMarker = "[REDACTED]"

// Client is the authenticated HTTP client for the Zelty API. It attaches the
// bearer credential, normalizes transport errors and logs every failure with
// a redacted copy of the request headers. It never retries: retry policy, if
// any, belongs to the caller.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Logger  *logrus.Logger
}

// APIError is a non-2xx response from the Zelty API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zelty api error %d: %s", e.Status, e.Body)
}

func NewClientFromEnv(logger *logrus.Logger) (*Client, error) {
	baseURL := strings.TrimSpace(os.Getenv("ZELTY_API_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://api.zelty.fr/2.7"
	}
	apiKey := strings.TrimSpace(os.Getenv("ZELTY_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("zelty api key is empty")
	}

	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Logger:  logger,
	}, nil
}

// Get issues GET <base><path>?<params> and returns the raw response body.
// Network errors and non-2xx statuses are logged with request context, then
// returned unchanged.
func (c *Client) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := c.BaseURL + path
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.logFailure(http.MethodGet, endpoint, 0, req.Header)
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logFailure(http.MethodGet, endpoint, resp.StatusCode, req.Header)
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

func (c *Client) logFailure(method string, endpoint string, status int, headers http.Header) {
	if c.Logger == nil {
		return
	}
	c.Logger.WithFields(logrus.Fields{
		"module":  "zeltysync",
		"method":  method,
		"url":     endpoint,
		"status":  status,
		"headers": redactHeaders(headers),
	}).Error("zelty request failed")
}

// redactHeaders copies request headers with credential and cookie values
// replaced by a fixed marker.
func redactHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for name, values := range headers {
		value := strings.Join(values, ", ")
		switch http.CanonicalHeaderKey(name) {
		case "Authorization", "Cookie", "Set-Cookie":
			value = headerRedactionMarker
		}
		out[name] = value
	}
	return out
}
