// Package remote implements the hosted data service client: CRUD over the
// task, project and attachment collections, session state, and object
// storage with public URL issuance.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"taskdeck/internal/config"
	"taskdeck/internal/core/ports"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	bucket     string

	mu    sync.RWMutex
	token string
}

var _ ports.RemoteStore = (*Client)(nil)

func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    cfg.StoreURL,
		apiKey:     cfg.StoreAPIKey,
		bucket:     cfg.StoreBucket,
	}
}

// SetAccessToken installs the bearer token used for all subsequent calls.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) accessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	token := c.accessToken()
	if token == "" {
		token = c.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}

// doJSON issues a JSON request and decodes the response body into out when
// out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, url string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, url, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost && out != nil {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(method, url, resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func statusError(method, url string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("%s %s failed %d: %s", method, url, resp.StatusCode, string(data))
}

func decodeJSON(resp *http.Response, out interface{}) error {
	return json.NewDecoder(resp.Body).Decode(out)
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}

func (c *Client) tableURL(table, query string) string {
	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	if query != "" {
		url += "?" + query
	}
	return url
}
