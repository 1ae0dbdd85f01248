package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mediscribe/mediscribe/internal/config"
)

func TestNew(t *testing.T) {
	p, err := New(&config.Config{AIProvider: config.ProviderAnthropic, AnthropicAPIKey: "k"})
	if err != nil || p.Name() != "anthropic" {
		t.Errorf("anthropic: provider %v, err %v", p, err)
	}

	p, err = New(&config.Config{AIProvider: config.ProviderOpenAI, OpenAIAPIKey: "k"})
	if err != nil || p.Name() != "openai" {
		t.Errorf("openai: provider %v, err %v", p, err)
	}

	if _, err := New(&config.Config{AIProvider: config.ProviderAnthropic}); err == nil {
		t.Error("missing anthropic key should fail")
	}
	if _, err := New(&config.Config{AIProvider: "other"}); err == nil {
		t.Error("unknown provider should fail")
	}
}

func TestScanSSE(t *testing.T) {
	body := strings.NewReader("event: ping\n\ndata: one\n\ndata: two\n\ndata: stop\n\ndata: never\n\n")
	var got []string
	err := scanSSE(body, func(data string) (bool, error) {
		got = append(got, data)
		return data == "stop", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"one", "two", "stop"}
	if len(got) != len(want) {
		t.Fatalf("payloads = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("payload %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func drain(t *testing.T, ch <-chan Chunk) (string, error) {
	t.Helper()
	var sb strings.Builder
	for chunk := range ch {
		if chunk.Err != nil {
			return sb.String(), chunk.Err
		}
		sb.WriteString(chunk.Text)
	}
	return sb.String(), nil
}

func TestAnthropic_Complete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "k" || r.Header.Get("anthropic-version") == "" {
			t.Error("missing auth headers")
		}
		fmt.Fprint(w, `{"content":[{"type":"text","text":"Hola "},{"type":"text","text":"doctor"}]}`)
	}))
	defer ts.Close()

	p := newAnthropic("k", "test-model")
	p.baseURL = ts.URL

	got, err := p.Complete(context.Background(), Request{Messages: []Message{{Role: "user", Content: "hi"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hola doctor" {
		t.Errorf("completion = %q", got)
	}
}

func TestAnthropic_CompleteAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limited"}}`)
	}))
	defer ts.Close()

	p := newAnthropic("k", "test-model")
	p.baseURL = ts.URL

	_, err := p.Complete(context.Background(), Request{})
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("err = %v, want rate-limit message", err)
	}
}

func TestAnthropic_Stream(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "event: message_start\ndata: {\"type\":\"message_start\"}\n\n")
		fmt.Fprint(w, "data: {\"type\":\"content_block_delta\",\"delta\":{\"type\":\"text_delta\",\"text\":\"Hola\"}}\n\n")
		fmt.Fprint(w, "data: {\"type\":\"content_block_delta\",\"delta\":{\"type\":\"text_delta\",\"text\":\" doctor\"}}\n\n")
		fmt.Fprint(w, "data: {\"type\":\"message_stop\"}\n\n")
	}))
	defer ts.Close()

	p := newAnthropic("k", "test-model")
	p.baseURL = ts.URL

	ch, err := p.Stream(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := drain(t, ch)
	if err != nil {
		t.Fatalf("stream error: %v", err)
	}
	if got != "Hola doctor" {
		t.Errorf("streamed text = %q", got)
	}
}

func TestAnthropic_StreamErrorEvent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"type\":\"content_block_delta\",\"delta\":{\"type\":\"text_delta\",\"text\":\"par\"}}\n\n")
		fmt.Fprint(w, "data: {\"type\":\"error\",\"error\":{\"message\":\"overloaded\"}}\n\n")
	}))
	defer ts.Close()

	p := newAnthropic("k", "test-model")
	p.baseURL = ts.URL

	ch, err := p.Stream(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := drain(t, ch)
	if got != "par" {
		t.Errorf("partial text = %q", got)
	}
	if err == nil || !strings.Contains(err.Error(), "overloaded") {
		t.Errorf("err = %v, want overloaded", err)
	}
}

func TestOpenAI_Complete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer k" {
			t.Error("missing bearer token")
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"Hola doctor"}}]}`)
	}))
	defer ts.Close()

	p := newOpenAI("k", "test-model")
	p.baseURL = ts.URL

	got, err := p.Complete(context.Background(), Request{System: "sys", Messages: []Message{{Role: "user", Content: "hi"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hola doctor" {
		t.Errorf("completion = %q", got)
	}
}

func TestOpenAI_Stream(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hola\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\" doctor\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer ts.Close()

	p := newOpenAI("k", "test-model")
	p.baseURL = ts.URL

	ch, err := p.Stream(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := drain(t, ch)
	if err != nil {
		t.Fatalf("stream error: %v", err)
	}
	if got != "Hola doctor" {
		t.Errorf("streamed text = %q", got)
	}
}

func TestOpenAI_SystemPromptFoldedIntoMessages(t *testing.T) {
	p := newOpenAI("k", "test-model")
	msgs := p.messages(Request{System: "sys", Messages: []Message{{Role: "user", Content: "hi"}}})
	if len(msgs) != 2 || msgs[0].Role != "system" || msgs[0].Content != "sys" {
		t.Errorf("messages = %+v", msgs)
	}
}
