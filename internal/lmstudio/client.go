// Package lmstudio is a minimal REST client for LM Studio's model
// lifecycle API. Chat completions do not go through here; they use the
// OpenAI-compatible endpoint via a separate client.
package lmstudio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "http://localhost:1234"

// RequestError is returned when the server answered with a non-2xx
// status. Transport-level failures (connection refused, timeouts) are
// returned as plain wrapped errors instead.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, response: %s", e.StatusCode, e.Body)
}

// Model is one entry from the lifecycle API.
type Model struct {
	Key         string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
	Type        string `json:"type,omitempty"`
	State       string `json:"state,omitempty"`
}

type modelsResponse struct {
	Data []Model `json:"data"`
}

type loadRequest struct {
	ModelKey string `json:"model_key"`
}

type unloadRequest struct {
	ModelKey string `json:"model_key"`
}

// Client talks to the LM Studio model lifecycle API.
type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient creates a lifecycle client for the given base URL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 60 * time.Second},
	}
}

// ListLoaded returns models currently loaded on the server.
func (c *Client) ListLoaded(ctx context.Context) ([]Model, error) {
	url := c.baseURL + "/api/v0/models"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var list modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decoding models response: %w", err)
	}

	loaded := make([]Model, 0, len(list.Data))
	for _, m := range list.Data {
		if m.Key == "" {
			continue
		}
		// The API reports every downloaded model; only loaded ones count.
		if m.State != "" && m.State != "loaded" {
			continue
		}
		loaded = append(loaded, m)
	}
	return loaded, nil
}

// Load instructs the server to load the given model.
func (c *Client) Load(ctx context.Context, modelKey string) (Model, error) {
	var m Model
	resp, err := c.post(ctx, "/api/v0/models/load", loadRequest{ModelKey: modelKey})
	if err != nil {
		return m, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return m, fmt.Errorf("decoding load response: %w", err)
	}
	if m.Key == "" {
		m.Key = modelKey
	}
	return m, nil
}

// Unload instructs the server to unload the given model.
func (c *Client) Unload(ctx context.Context, modelKey string) error {
	resp, err := c.post(ctx, "/api/v0/models/unload", unloadRequest{ModelKey: modelKey})
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing HTTP request to %s: %w", req.URL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	return resp, nil
}
