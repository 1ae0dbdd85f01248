package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mediscribe/mediscribe/internal/config"
	"github.com/mediscribe/mediscribe/internal/ehr"
)

func TestValidateEHRURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://ehr.example.com", "https://ehr.example.com"},
		{"https://ehr.example.com/", "https://ehr.example.com"},
		{"https://ehr.example.com/api/v2/", "https://ehr.example.com/api/v2"},
		{"http://localhost:8080", "http://localhost:8080"},
		{"https://ehr.example.com/api?x=1#frag", "https://ehr.example.com/api"},
		{"ftp://ehr.example.com", ""},
		{"javascript:alert(1)", ""},
		{"not a url", ""},
		{"", ""},
		{"https://" + strings.Repeat("a", maxEHRURLLength), ""},
	}
	for _, tc := range cases {
		if got := ValidateEHRURL(tc.in); got != tc.want {
			t.Errorf("ValidateEHRURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

type fakeAuthenticator struct {
	result   *ehr.LoginResult
	err      error
	lastBase string
	lastUser string
}

func (f *fakeAuthenticator) Login(_ context.Context, baseURL, userName, _ string) (*ehr.LoginResult, error) {
	f.lastBase, f.lastUser = baseURL, userName
	return f.result, f.err
}

func newLoginHandler(f *fakeAuthenticator) *Handler {
	cfg := &config.Config{DataSource: config.SourceEHR, Env: "development"}
	return NewHandler(cfg, NewSessionManager("test-secret"), f, zerolog.Nop())
}

func postJSON(t *testing.T, fn echo.HandlerFunc, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, fn(e.NewContext(req, rec))
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookie {
			return cookie
		}
	}
	return nil
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	f := &fakeAuthenticator{result: &ehr.LoginResult{Token: "tok-1", FirstName: "Ana", LastName: "Lopez", Roles: []string{"doctor"}}}
	h := newLoginHandler(f)

	rec, err := postJSON(t, h.Login, `{"url":"https://ehr.example.com/","userName":"drlopez","password":"pw"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.lastBase != "https://ehr.example.com" {
		t.Errorf("base url not normalized: %q", f.lastBase)
	}

	var out loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if !out.Success || out.User.FirstName != "Ana" || len(out.User.Roles) != 1 {
		t.Errorf("response = %+v", out)
	}

	cookie := sessionCookie(t, rec)
	if cookie == nil {
		t.Fatal("session cookie not set")
	}
	if !cookie.HttpOnly {
		t.Error("cookie must be http-only")
	}
	sess, err := h.sessions.Verify(cookie.Value)
	if err != nil {
		t.Fatalf("cookie does not verify: %v", err)
	}
	if sess.Token != "tok-1" || sess.BaseURL != "https://ehr.example.com" {
		t.Errorf("session = %+v", sess)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	h := newLoginHandler(&fakeAuthenticator{})
	for _, body := range []string{
		`{}`,
		`{"url":"https://e.com","userName":"u"}`,
		`{"url":"","userName":"u","password":"p"}`,
	} {
		_, err := postJSON(t, h.Login, body)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Errorf("body %s: err = %v, want 400", body, err)
		}
	}
}

func TestLogin_InvalidURL(t *testing.T) {
	h := newLoginHandler(&fakeAuthenticator{})
	_, err := postJSON(t, h.Login, `{"url":"ftp://x","userName":"u","password":"p"}`)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("err = %v, want 400", err)
	}
}

func TestLogin_UpstreamStatuses(t *testing.T) {
	cases := []struct {
		upstream int
		want     int
	}{
		{http.StatusUnauthorized, http.StatusUnauthorized},
		{http.StatusForbidden, http.StatusUnauthorized},
		{http.StatusInternalServerError, http.StatusBadGateway},
	}
	for _, tc := range cases {
		f := &fakeAuthenticator{err: &ehr.UpstreamError{Status: tc.upstream, URL: "https://e.com/auth/login"}}
		h := newLoginHandler(f)
		_, err := postJSON(t, h.Login, `{"url":"https://e.com","userName":"u","password":"p"}`)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != tc.want {
			t.Errorf("upstream %d: err = %v, want %d", tc.upstream, err, tc.want)
		}
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	h := newLoginHandler(&fakeAuthenticator{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	if err := h.Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cookie := sessionCookie(t, rec)
	if cookie == nil || cookie.MaxAge != -1 {
		t.Errorf("cookie not cleared: %+v", cookie)
	}
}

func TestInit(t *testing.T) {
	h := newLoginHandler(&fakeAuthenticator{})

	rec, err := postJSON(t, h.Init, `{"token":"tok-9"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out map[string]string
	json.Unmarshal(rec.Body.Bytes(), &out)
	if out["mode"] != config.SourceEHR {
		t.Errorf("mode = %q", out["mode"])
	}

	cookie := sessionCookie(t, rec)
	if cookie == nil {
		t.Fatal("session cookie not set")
	}
	sess, err := h.sessions.Verify(cookie.Value)
	if err != nil || sess.Token != "tok-9" {
		t.Errorf("session = %+v, err = %v", sess, err)
	}
}

func TestInit_InvalidToken(t *testing.T) {
	h := newLoginHandler(&fakeAuthenticator{})
	for _, body := range []string{`{}`, `{"token":"` + strings.Repeat("x", maxInitTokenLength+1) + `"}`} {
		_, err := postJSON(t, h.Init, body)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Errorf("err = %v, want 400", err)
		}
	}
}
