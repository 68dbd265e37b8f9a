package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource yields the current credential. It is consulted on every
// request, never at client construction, so a fresh login is picked up
// by the next call.
type TokenSource interface {
	Get() (string, bool)
}

// Spec describes one request: path relative to the base URL, HTTP
// method, optional JSON body, extra headers (caller wins on conflict)
// and query parameters.
type Spec struct {
	Path    string
	Method  string
	Body    any
	Headers map[string]string
	Params  map[string]string
}

// Client is the authenticated request pipeline shared by every gateway.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
}

func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 20 * time.Second},
		Tokens:     tokens,
	}
}

// Do runs one request and returns the raw response body. Failures come
// back as *RequestError: transport errors without a status, non-2xx
// responses with one. Errors are logged and returned, never swallowed.
// There is no retry, no token refresh and no redirect handling.
func (c *Client) Do(ctx context.Context, spec Spec) ([]byte, error) {
	target, err := c.buildURL(spec)
	if err != nil {
		return nil, &RequestError{Message: "invalid request url", Cause: err}
	}

	var payload io.Reader
	if spec.Body != nil {
		encoded, err := json.Marshal(spec.Body)
		if err != nil {
			return nil, &RequestError{Message: "encode request body", Cause: err}
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, target, payload)
	if err != nil {
		return nil, &RequestError{Message: "build request", Cause: err}
	}

	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.Tokens.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, value := range spec.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		reqErr := &RequestError{Message: "transport failure", Cause: err}
		log.Printf("api: %s %s: %v", spec.Method, spec.Path, err)
		return nil, reqErr
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &RequestError{Status: resp.StatusCode, Message: snippet(body)}
		log.Printf("api: %s %s: %v", spec.Method, spec.Path, reqErr)
		return nil, reqErr
	}
	return body, nil
}

// DoJSON runs the request and decodes the response into out when out is
// non-nil and the body is non-empty.
func (c *Client) DoJSON(ctx context.Context, spec Spec, out any) error {
	body, err := c.Do(ctx, spec)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &RequestError{Message: "decode response", Cause: err}
	}
	return nil
}

func (c *Client) buildURL(spec Spec) (string, error) {
	target, err := url.Parse(c.BaseURL + "/" + strings.TrimLeft(spec.Path, "/"))
	if err != nil {
		return "", err
	}
	if len(spec.Params) > 0 {
		query := target.Query()
		for key, value := range spec.Params {
			query.Set(key, value)
		}
		target.RawQuery = query.Encode()
	}
	return target.String(), nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "(empty body)"
	}
	// Truncate on runes so a multi-byte character is never split.
	if runes := []rune(s); len(runes) > 200 {
		return string(runes[:200])
	}
	return s
}
