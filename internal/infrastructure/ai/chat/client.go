// Package chat provides the LLM-facing outbound.ChatClient implementation:
// a hand-rolled net/http/encoding/json client against an OpenAI-compatible
// chat-completions and embeddings API, falling back to a local Ollama
// instance when no API key is configured. Adapted from the teacher's
// internal/infrastructure/ai/openai client.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Client implements outbound.ChatClient.
type Client struct {
	apiKey         string
	baseURL        string
	chatModel      string
	embeddingModel string
	httpClient     *http.Client
	logger         *zap.Logger
	available      atomic.Bool
}

// Config carries the environment-sourced settings config.Config maps in.
type Config struct {
	APIKey         string
	BaseURL        string // overrides the OpenAI/Ollama default when set
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
}

// NewClient mirrors the teacher's NewClient: with no API key it falls back
// to a local Ollama instance at localhost:11434, using a dummy key.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	apiKey := cfg.APIKey
	baseURL := cfg.BaseURL
	chatModel := cfg.ChatModel
	embeddingModel := cfg.EmbeddingModel

	if baseURL == "" {
		if apiKey == "" {
			logger.Info("no LLM API key configured, falling back to local Ollama")
			baseURL = "http://localhost:11434/v1"
			apiKey = "ollama"
			if chatModel == "" {
				chatModel = "llama3.2:3b"
			}
			if embeddingModel == "" {
				embeddingModel = "nomic-embed-text"
			}
		} else {
			baseURL = "https://api.openai.com/v1"
		}
	}
	if chatModel == "" {
		chatModel = "gpt-3.5-turbo"
	}
	if embeddingModel == "" {
		embeddingModel = "text-embedding-3-small"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	c := &Client{
		apiKey:         apiKey,
		baseURL:        baseURL,
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
		httpClient:     &http.Client{Timeout: timeout},
		logger:         logger,
	}
	c.available.Store(true)
	return c
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []choice `json:"choices"`
}

type choice struct {
	Message message `json:"message"`
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// Complete sends a single system+user chat-completion call and returns the
// raw assistant text, matching the teacher's callOpenAI shape.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body := chatCompletionRequest{
		Model: c.chatModel,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.3,
		MaxTokens:   1000,
	}

	var resp chatCompletionResponse
	if err := c.post(ctx, "/chat/completions", body, &resp); err != nil {
		c.available.Store(false)
		return "", err
	}
	c.available.Store(true)

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// Embed produces a dense vector for text. Blank input returns (nil, false)
// without a network call (spec.md §4.3 — "empty/blank input returns 'no
// embedding'").
func (c *Client) Embed(ctx context.Context, text string) ([]float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	var resp embeddingResponse
	if err := c.post(ctx, "/embeddings", embeddingRequest{Model: c.embeddingModel, Input: text}, &resp); err != nil {
		c.logger.Warn("embedding request failed", zap.Error(err))
		c.available.Store(false)
		return nil, false
	}
	c.available.Store(true)

	if len(resp.Data) == 0 {
		return nil, false
	}
	return resp.Data[0].Embedding, true
}

// Available reports the last-observed reachability of the LLM endpoint.
func (c *Client) Available() bool {
	return c.available.Load()
}

func (c *Client) post(ctx context.Context, path string, reqBody, respBody interface{}) error {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("LLM API error %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.Unmarshal(raw, respBody); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
