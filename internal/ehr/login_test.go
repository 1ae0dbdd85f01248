package ehr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func loginServer(t *testing.T, status int, body map[string]any) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["userName"] != "drlopez" {
			t.Errorf("userName = %q", req["userName"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestLogin_TokenFieldVariants(t *testing.T) {
	cases := []map[string]any{
		{"token": "tok-a", "firstName": "Ana", "lastName": "Lopez"},
		{"accessToken": "tok-a", "name": "Ana"},
		{"access_token": "tok-a"},
	}
	for i, body := range cases {
		ts := loginServer(t, http.StatusOK, body)
		c := newTestClient(ts.URL)

		res, err := c.Login(context.Background(), "", "drlopez", "pw")
		if err != nil {
			t.Fatalf("case %d: unexpected error: %v", i, err)
		}
		if res.Token != "tok-a" {
			t.Errorf("case %d: token = %q", i, res.Token)
		}
	}
}

func TestLogin_DisplayNameFallback(t *testing.T) {
	ts := loginServer(t, http.StatusOK, map[string]any{"token": "tok-a", "name": "Ana", "lastName": "Lopez"})
	c := newTestClient(ts.URL)

	res, err := c.Login(context.Background(), "", "drlopez", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.FirstName != "Ana" || res.LastName != "Lopez" {
		t.Errorf("identity = %q %q", res.FirstName, res.LastName)
	}
}

func TestLogin_UpstreamError(t *testing.T) {
	ts := loginServer(t, http.StatusUnauthorized, map[string]any{"error": "bad credentials"})
	c := newTestClient(ts.URL)

	_, err := c.Login(context.Background(), "", "drlopez", "pw")
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Status != http.StatusUnauthorized {
		t.Errorf("status = %d", ue.Status)
	}
}

func TestLogin_MissingToken(t *testing.T) {
	ts := loginServer(t, http.StatusOK, map[string]any{"firstName": "Ana"})
	c := newTestClient(ts.URL)

	if _, err := c.Login(context.Background(), "", "drlopez", "pw"); err == nil {
		t.Fatal("expected error when response has no token")
	}
}

func TestLogin_OversizedToken(t *testing.T) {
	ts := loginServer(t, http.StatusOK, map[string]any{"token": strings.Repeat("x", maxTokenLength+1)})
	c := newTestClient(ts.URL)

	if _, err := c.Login(context.Background(), "", "drlopez", "pw"); err == nil {
		t.Fatal("expected error for oversized token")
	}
}
