// Package patients exposes the patient-record read API. It fronts either
// the built-in demo dataset or a live EHR, selected by configuration, and
// hides that choice from every consumer.
package patients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mediscribe/mediscribe/internal/config"
	"github.com/mediscribe/mediscribe/internal/mockdata"
	"github.com/mediscribe/mediscribe/internal/platform/auth"
	"github.com/mediscribe/mediscribe/internal/record"
)

var (
	ErrNotFound        = errors.New("patient not found")
	ErrSessionRequired = errors.New("an ehr session is required")
)

// Fetcher is the upstream EHR read surface the service depends on.
type Fetcher interface {
	FetchPatientRecord(ctx context.Context, patientID, token, baseURL string) (*record.PatientRecord, error)
	SearchPatients(ctx context.Context, query, token, baseURL string) ([]record.PatientSearchResult, error)
}

type Service struct {
	source string
	ehr    Fetcher
	logger zerolog.Logger
}

func NewService(cfg *config.Config, ehr Fetcher, logger zerolog.Logger) *Service {
	return &Service{source: cfg.DataSource, ehr: ehr, logger: logger}
}

// GetRecord assembles the full chart for one patient. In EHR mode a logged-in
// session supplies the upstream credentials; the demo dataset needs none.
func (s *Service) GetRecord(ctx context.Context, patientID string, sess *auth.Session) (*record.PatientRecord, error) {
	if s.source == config.SourceMock {
		rec := mockdata.PatientByID(patientID)
		if rec == nil {
			return nil, ErrNotFound
		}
		return rec, nil
	}

	if sess == nil || sess.Token == "" {
		return nil, ErrSessionRequired
	}
	rec, err := s.ehr.FetchPatientRecord(ctx, patientID, sess.Token, sess.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch record %s: %w", patientID, err)
	}
	return rec, nil
}

// Search returns the reduced patient projection for a free-text query. A
// blank query short-circuits to an empty list without touching any source.
func (s *Service) Search(ctx context.Context, query string, sess *auth.Session) ([]record.PatientSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []record.PatientSearchResult{}, nil
	}

	if s.source == config.SourceMock {
		return mockdata.Search(query), nil
	}

	if sess == nil || sess.Token == "" {
		return nil, ErrSessionRequired
	}
	results, err := s.ehr.SearchPatients(ctx, query, sess.Token, sess.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("search patients: %w", err)
	}
	return results, nil
}
