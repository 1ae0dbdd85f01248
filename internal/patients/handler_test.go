package patients

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mediscribe/mediscribe/internal/ehr"
	"github.com/mediscribe/mediscribe/internal/record"
)

func doRequest(t *testing.T, svc *Service, target string, paramID string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	h := NewHandler(svc)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramID)
		return rec, h.GetRecord(c)
	}
	return rec, h.Search(c)
}

func TestHandler_GetRecord(t *testing.T) {
	rec, err := doRequest(t, newMockService(&fakeFetcher{}), "/api/v1/patients/p-001", "p-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}

	var out record.PatientRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if out.Patient.ID != "p-001" {
		t.Errorf("patient = %+v", out.Patient)
	}
}

func TestHandler_GetRecord_InvalidID(t *testing.T) {
	bad := []string{"a b", "p/../etc", "p%20x", strings.Repeat("x", 101)}
	for _, id := range bad {
		_, err := doRequest(t, newMockService(&fakeFetcher{}), "/api/v1/patients/x", id)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Errorf("id %q: err = %v, want 400", id, err)
		}
	}
}

func TestHandler_GetRecord_NotFound(t *testing.T) {
	_, err := doRequest(t, newMockService(&fakeFetcher{}), "/api/v1/patients/nope", "nope")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("err = %v, want 404", err)
	}
}

func TestHandler_GetRecord_SessionRequired(t *testing.T) {
	_, err := doRequest(t, newEHRService(&fakeFetcher{}), "/api/v1/patients/42", "42")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("err = %v, want 401", err)
	}
}

func TestHTTPError_Upstream(t *testing.T) {
	cases := []struct {
		upstream int
		want     int
	}{
		{http.StatusUnauthorized, http.StatusUnauthorized},
		{http.StatusForbidden, http.StatusUnauthorized},
		{http.StatusNotFound, http.StatusNotFound},
		{http.StatusInternalServerError, http.StatusBadGateway},
		{http.StatusServiceUnavailable, http.StatusBadGateway},
	}
	for _, tc := range cases {
		err := HTTPError(&ehr.UpstreamError{Status: tc.upstream, URL: "https://ehr/x"})
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != tc.want {
			t.Errorf("upstream %d: got %v, want %d", tc.upstream, err, tc.want)
		}
	}
}

func TestHandler_Search(t *testing.T) {
	rec, err := doRequest(t, newMockService(&fakeFetcher{}), "/api/v1/patients/search?q=mendez", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}

	var out []record.PatientSearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(out) != 1 || out[0].ID != "p-001" {
		t.Errorf("results = %+v", out)
	}
}

func TestHandler_Search_EmptyQueryIsOK(t *testing.T) {
	rec, err := doRequest(t, newEHRService(&fakeFetcher{}), "/api/v1/patients/search?q=", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("status = %d body = %q, want 200 []", rec.Code, rec.Body.String())
	}
}
