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
	openAIBaseURL      = "https://api.openai.com"
	defaultOpenAIModel = "gpt-4o"
)

type openAIProvider struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func newOpenAI(apiKey, model string) *openAIProvider {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &openAIProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: openAIBaseURL,
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *openAIProvider) Name() string { return "openai" }

type openAIRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens,omitempty"`
	Messages  []Message `json:"messages"`
	Stream    bool      `json:"stream,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type openAIStreamEvent struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// messages folds the system prompt into the message list, which is where
// this API expects it.
func (p *openAIProvider) messages(req Request) []Message {
	msgs := make([]Message, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, Message{Role: "system", Content: req.System})
	}
	return append(msgs, req.Messages...)
}

func (p *openAIProvider) send(ctx context.Context, req Request, stream bool) (*http.Response, error) {
	body, err := json.Marshal(openAIRequest{
		Model:     p.model,
		MaxTokens: maxTokensOrDefault(req),
		Messages:  p.messages(req),
		Stream:    stream,
	})
	if err != nil {
		return nil, fmt.Errorf("encode openai request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		var apiErr openAIResponse
		msg := resp.Status
		if json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&apiErr) == nil && apiErr.Error != nil {
			msg = apiErr.Error.Message
		}
		return nil, fmt.Errorf("openai api: status %d: %s", resp.StatusCode, msg)
	}
	return resp, nil
}

func (p *openAIProvider) Complete(ctx context.Context, req Request) (string, error) {
	resp, err := p.send(ctx, req, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai response has no content")
	}
	return out.Choices[0].Message.Content, nil
}

func (p *openAIProvider) Stream(ctx context.Context, req Request) (<-chan Chunk, error) {
	resp, err := p.send(ctx, req, true)
	if err != nil {
		return nil, err
	}

	out := make(chan Chunk)
	go func() {
		defer close(out)
		defer resp.Body.Close()

		err := scanSSE(resp.Body, func(data string) (bool, error) {
			if data == "[DONE]" {
				return true, nil
			}
			var ev openAIStreamEvent
			if err := json.Unmarshal([]byte(data), &ev); err != nil {
				return false, fmt.Errorf("decode stream event: %w", err)
			}
			if len(ev.Choices) == 0 || ev.Choices[0].Delta.Content == "" {
				return false, nil
			}
			select {
			case out <- Chunk{Text: ev.Choices[0].Delta.Content}:
			case <-ctx.Done():
				return false, ctx.Err()
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
