// Package ehr adapts the upstream EHR REST API into the internal record
// model. Five partially-available resources (profile, antecedents, visit
// notes, medication, labs) are fetched independently and normalized into one
// PatientRecord; only a missing patient profile is fatal.
package ehr

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/mediscribe/mediscribe/internal/config"
	"github.com/mediscribe/mediscribe/internal/record"
)

// UpstreamError is returned for any non-2xx upstream response.
type UpstreamError struct {
	Status int
	URL    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ehr upstream error: status %d (%s)", e.Status, e.URL)
}

// Endpoints holds the per-resource path templates ({id} is substituted).
type Endpoints struct {
	Patient      string
	Antecedentes string
	Evoluciones  string
	Medication   string
	Studies      string
	LabData      string
	Search       string
	Login        string
}

// Client is the upstream EHR adapter. It is stateless per request: the
// bearer token and an optional base-URL override travel with each call.
type Client struct {
	http      *resty.Client
	baseURL   string
	endpoints Endpoints
	policy    record.AlertPolicy
	logger    zerolog.Logger
}

// NewClient builds a Client from the loaded configuration.
func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	httpClient := resty.New().
		SetTimeout(cfg.EHRTimeout()).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(cfg.EHRBaseURL, "/"),
		endpoints: Endpoints{
			Patient:      cfg.EndpointPatient,
			Antecedentes: cfg.EndpointAntecedentes,
			Evoluciones:  cfg.EndpointEvoluciones,
			Medication:   cfg.EndpointMedication,
			Studies:      cfg.EndpointStudies,
			LabData:      cfg.EndpointLabData,
			Search:       cfg.EndpointSearch,
			Login:        cfg.EndpointLogin,
		},
		policy: record.AlertPolicy{
			CritLowFactor:  cfg.AlertCritLowFactor,
			CritHighFactor: cfg.AlertCritHighFactor,
		},
		logger: logger.With().Str("component", "ehr").Logger(),
	}
}

// resolveBase picks the per-call override when present, else the configured
// base URL.
func (c *Client) resolveBase(override string) (string, error) {
	base := strings.TrimRight(override, "/")
	if base == "" {
		base = c.baseURL
	}
	if base == "" {
		return "", fmt.Errorf("no EHR base URL configured and no override provided")
	}
	return base, nil
}

// buildURL expands a path template against a base URL.
func buildURL(base, pathTemplate string, params map[string]string) string {
	path := pathTemplate
	for key, val := range params {
		path = strings.ReplaceAll(path, "{"+key+"}", url.PathEscape(val))
	}
	return base + path
}

// getJSON performs an authenticated GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, token, rawURL string, query url.Values, out any) error {
	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(out)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}

	started := time.Now()
	resp, err := req.Get(rawURL)
	if err != nil {
		return fmt.Errorf("ehr request failed: %w", err)
	}
	if resp.IsError() {
		c.logger.Warn().
			Int("status", resp.StatusCode()).
			Str("url", rawURL).
			Dur("latency", time.Since(started)).
			Msg("upstream returned error status")
		return &UpstreamError{Status: resp.StatusCode(), URL: rawURL}
	}
	return nil
}

func (c *Client) fetchPatientProfile(ctx context.Context, patientID, token, base string) (patientDTO, error) {
	var dto patientDTO
	u := buildURL(base, c.endpoints.Patient, map[string]string{"id": patientID})
	err := c.getJSON(ctx, token, u, nil, &dto)
	return dto, err
}

func (c *Client) fetchAntecedentes(ctx context.Context, patientID, token, base string) ([]antecedenteDTO, error) {
	var dtos []antecedenteDTO
	u := buildURL(base, c.endpoints.Antecedentes, map[string]string{"id": patientID})
	err := c.getJSON(ctx, token, u, nil, &dtos)
	return dtos, err
}

func (c *Client) fetchEvoluciones(ctx context.Context, patientID, token, base string) ([]evolucionDTO, error) {
	var dtos []evolucionDTO
	u := buildURL(base, c.endpoints.Evoluciones, map[string]string{"id": patientID})
	err := c.getJSON(ctx, token, u, nil, &dtos)
	return dtos, err
}

func (c *Client) fetchMedicacion(ctx context.Context, patientID, token, base string) ([]medicationDTO, error) {
	var dtos []medicationDTO
	u := buildURL(base, c.endpoints.Medication, map[string]string{"id": patientID})
	err := c.getJSON(ctx, token, u, nil, &dtos)
	return dtos, err
}

// fetchLabs is the two-stage labs read: the patient's studies first, then
// the lab-value rows keyed by study id. No studies means no second call.
func (c *Client) fetchLabs(ctx context.Context, patientID, token, base string) ([]studyDTO, []labRowDTO, error) {
	var studies []studyDTO
	u := buildURL(base, c.endpoints.Studies, map[string]string{"id": patientID})
	if err := c.getJSON(ctx, token, u, nil, &studies); err != nil {
		return nil, nil, err
	}
	if len(studies) == 0 {
		return nil, nil, nil
	}

	query := url.Values{}
	for _, s := range studies {
		query.Add("studiesIds", strconv.FormatInt(s.ID, 10))
	}
	var rows []labRowDTO
	if err := c.getJSON(ctx, token, base+c.endpoints.LabData, query, &rows); err != nil {
		return nil, nil, err
	}
	return studies, rows, nil
}
