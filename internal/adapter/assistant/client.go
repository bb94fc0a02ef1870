// Package assistant implements the natural-language collaborator client.
// The remote endpoint answers with a loosely typed action+data payload; it
// is decoded here into a tagged union with chat as the fallback variant.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"taskdeck/internal/config"
	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
)

type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
}

var _ ports.Assistant = (*Client)(nil)

func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		url:        cfg.AssistantURL,
		apiKey:     cfg.AssistantAPIKey,
	}
}

type requestBody struct {
	Message             string           `json:"message"`
	ConversationHistory []historyItem    `json:"conversationHistory"`
	AvailableProjects   []projectSummary `json:"availableProjects"`
}

type historyItem struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type projectSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *Client) Send(ctx context.Context, message string, history []domain.AssistantMessage, projects []domain.Project) (domain.AssistantResponse, error) {
	body := requestBody{Message: message}
	for _, m := range history {
		body.ConversationHistory = append(body.ConversationHistory, historyItem{Role: m.Role, Content: m.Content})
	}
	for _, p := range projects {
		body.AvailableProjects = append(body.AvailableProjects, projectSummary{ID: p.ID, Name: p.Name})
	}

	data, err := json.Marshal(body)
	if err != nil {
		return domain.AssistantResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return domain.AssistantResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.AssistantResponse{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.AssistantResponse{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return domain.AssistantResponse{}, fmt.Errorf("assistant failed %d: %s", resp.StatusCode, string(raw))
	}

	return ParseResponse(raw), nil
}
