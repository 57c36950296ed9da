// Package remote holds the typed HTTP gateways for the multi-service
// backend (user/book/loan/notification/report). The gateways carry no
// business logic: they serialize DTOs, attach the bearer token and surface
// transport failures as plain errors for the callers to fold into state.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Timeout applied to connect, TLS handshake and the overall request
const requestTimeout = 30 * time.Second

// TokenFunc supplies the current bearer token, usually from the preference
// store. An empty return means "no Authorization header".
type TokenFunc func() string

// Client is the shared HTTP plumbing behind the service gateways
type Client struct {
	baseURL string
	token   TokenFunc
	http    *http.Client
}

// NewClient creates a gateway client for the given backend base URL
func NewClient(baseURL string, token TokenFunc) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: requestTimeout,
				}).DialContext,
				TLSHandshakeTimeout: requestTimeout,
			},
		},
	}
}

// get issues a GET and decodes the JSON body into out
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// post issues a POST with a JSON body and decodes the response into out
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("remote %s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
