// api/http_client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusError is returned for non-2xx responses. Message carries the
// "error" field of a JSON error body when there is one.
type StatusError struct {
	Code    int
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return "unexpected status code: " + e.Status + ": " + e.Message
	}
	return "unexpected status code: " + e.Status
}

// HTTPClient struct to hold base URL and HTTP client configuration
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPClient creates a new instance of HTTPClient with default settings
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Request makes an HTTP request to the API and decodes the JSON response
// into response when it is non-nil.
func (c *HTTPClient) Request(ctx context.Context, method, endpoint string, body interface{}, response interface{}) error {
	var requestBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		requestBody = bytes.NewReader(jsonBody)
	}

	resBody, err := c.do(ctx, method, endpoint, requestBody)
	if err != nil {
		return err
	}
	if response != nil && len(resBody) > 0 {
		return json.Unmarshal(resBody, response)
	}
	return nil
}

// RequestRaw performs a GET and returns the undecoded body.
func (c *HTTPClient) RequestRaw(ctx context.Context, endpoint string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		se := &StatusError{Code: res.StatusCode, Status: res.Status}
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(resBody, &e) == nil {
			se.Message = e.Error
		}
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, se)
	}
	return resBody, nil
}
