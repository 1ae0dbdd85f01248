package ehr

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/mediscribe/mediscribe/internal/record"
)

// FetchPatientRecord assembles a best-effort unified record from the five
// upstream resources. All fetches run concurrently and settle independently;
// nothing cancels a sibling. A failed profile fetch is fatal because a
// record without identity is unusable, while every other failure degrades to
// an empty list for that resource.
func (c *Client) FetchPatientRecord(ctx context.Context, patientID, token, baseURL string) (*record.PatientRecord, error) {
	base, err := c.resolveBase(baseURL)
	if err != nil {
		return nil, err
	}

	var (
		profile    patientDTO
		profileErr error

		antecedentes []antecedenteDTO
		antecErr     error

		evoluciones []evolucionDTO
		evoErr      error

		medicaciones []medicationDTO
		medErr       error

		studies []studyDTO
		labRows []labRowDTO
		labErr  error
	)

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		profile, profileErr = c.fetchPatientProfile(ctx, patientID, token, base)
	}()
	go func() {
		defer wg.Done()
		antecedentes, antecErr = c.fetchAntecedentes(ctx, patientID, token, base)
	}()
	go func() {
		defer wg.Done()
		evoluciones, evoErr = c.fetchEvoluciones(ctx, patientID, token, base)
	}()
	go func() {
		defer wg.Done()
		medicaciones, medErr = c.fetchMedicacion(ctx, patientID, token, base)
	}()
	go func() {
		defer wg.Done()
		studies, labRows, labErr = c.fetchLabs(ctx, patientID, token, base)
	}()
	wg.Wait()

	if profileErr != nil {
		return nil, fmt.Errorf("fetch patient profile: %w", profileErr)
	}

	rec := &record.PatientRecord{
		Patient:      mapPatient(profile),
		Antecedentes: []record.Antecedente{},
		Evolutions:   []record.Evolution{},
		Medications:  []record.Medication{},
		Labs:         []record.LabResult{},
	}

	if antecErr != nil {
		c.logDegraded(patientID, "antecedentes", antecErr)
	} else {
		rec.Antecedentes = mapAntecedentes(antecedentes)
	}
	if evoErr != nil {
		c.logDegraded(patientID, "evoluciones", evoErr)
	} else {
		rec.Evolutions = mapEvoluciones(evoluciones)
	}
	if medErr != nil {
		c.logDegraded(patientID, "medicacion", medErr)
	} else {
		rec.Medications = mapMedications(medicaciones)
	}
	if labErr != nil {
		c.logDegraded(patientID, "labs", labErr)
	} else {
		rec.Labs = mapLabs(studies, labRows, c.policy, c.logger)
	}

	return rec, nil
}

func (c *Client) logDegraded(patientID, resource string, err error) {
	c.logger.Warn().
		Err(err).
		Str("patient_id", patientID).
		Str("resource", resource).
		Msg("resource fetch failed, degrading to empty list")
}

// SearchPatients queries the upstream search endpoint and projects the
// results. Zero matches is success. The caller's context is honored so a
// superseded search-as-you-type request can be abandoned.
func (c *Client) SearchPatients(ctx context.Context, query, token, baseURL string) ([]record.PatientSearchResult, error) {
	base, err := c.resolveBase(baseURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return []record.PatientSearchResult{}, nil
	}

	var rows []searchRowDTO
	u := base + c.endpoints.Search
	if err := c.getJSON(ctx, token, u, url.Values{"q": {query}}, &rows); err != nil {
		return nil, fmt.Errorf("search patients: %w", err)
	}
	return mapSearchResults(rows), nil
}
