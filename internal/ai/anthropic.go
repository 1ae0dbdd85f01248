package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	anthropicBaseURL      = "https://api.anthropic.com"
	anthropicVersion      = "2023-06-01"
	defaultAnthropicModel = "claude-sonnet-4-20250514"
)

// anthropicProvider talks to the Anthropic Messages API. Streaming uses a
// plain http.Client because the response must be consumed incrementally.
type anthropicProvider struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func newAnthropic(apiKey, model string) *anthropicProvider {
	if model == "" {
		model = defaultAnthropicModel
	}
	return &anthropicProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: anthropicBaseURL,
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *anthropicProvider) Name() string { return "anthropic" }

type anthropicRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
	Stream    bool      `json:"stream,omitempty"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type anthropicStreamEvent struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *anthropicProvider) send(ctx context.Context, req Request, stream bool) (*http.Response, error) {
	body, err := json.Marshal(anthropicRequest{
		Model:     p.model,
		MaxTokens: maxTokensOrDefault(req),
		System:    req.System,
		Messages:  req.Messages,
		Stream:    stream,
	})
	if err != nil {
		return nil, fmt.Errorf("encode anthropic request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("anthropic request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		var apiErr anthropicResponse
		msg := resp.Status
		if json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&apiErr) == nil && apiErr.Error != nil {
			msg = apiErr.Error.Message
		}
		return nil, fmt.Errorf("anthropic api: status %d: %s", resp.StatusCode, msg)
	}
	return resp, nil
}

func (p *anthropicProvider) Complete(ctx context.Context, req Request) (string, error) {
	resp, err := p.send(ctx, req, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}
	var text string
	for _, block := range out.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("anthropic response has no text content")
	}
	return text, nil
}

func (p *anthropicProvider) Stream(ctx context.Context, req Request) (<-chan Chunk, error) {
	resp, err := p.send(ctx, req, true)
	if err != nil {
		return nil, err
	}

	out := make(chan Chunk)
	go func() {
		defer close(out)
		defer resp.Body.Close()

		err := scanSSE(resp.Body, func(data string) (bool, error) {
			var ev anthropicStreamEvent
			if err := json.Unmarshal([]byte(data), &ev); err != nil {
				return false, fmt.Errorf("decode stream event: %w", err)
			}
			switch ev.Type {
			case "content_block_delta":
				if ev.Delta.Text != "" {
					select {
					case out <- Chunk{Text: ev.Delta.Text}:
					case <-ctx.Done():
						return false, ctx.Err()
					}
				}
			case "message_stop":
				return true, nil
			case "error":
				msg := "stream error"
				if ev.Error != nil {
					msg = ev.Error.Message
				}
				return false, fmt.Errorf("anthropic stream: %s", msg)
			}
			return false, nil
		})
		if err != nil {
			select {
			case out <- Chunk{Err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return out, nil
}
