// Package assist implements the AI-assisted documentation endpoints. Each
// handler loads the patient record through the facade, renders it into a
// textual context and drives the configured completion provider, streaming
// the answer to the client as server-sent events.
package assist

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mediscribe/mediscribe/internal/ai"
	"github.com/mediscribe/mediscribe/internal/patients"
	"github.com/mediscribe/mediscribe/internal/platform/auth"
	"github.com/mediscribe/mediscribe/internal/record"
)

type Handler struct {
	patients *patients.Service
	provider ai.Provider
	logger   zerolog.Logger
}

func NewHandler(patientsSvc *patients.Service, provider ai.Provider, logger zerolog.Logger) *Handler {
	return &Handler{patients: patientsSvc, provider: provider, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/assist")
	g.POST("/chat", h.Chat)
	g.POST("/evolution", h.Evolution)
	g.POST("/interactions", h.Interactions)
	g.POST("/diagnose", h.Diagnose)
	g.POST("/cie10", h.CIE10)
	g.POST("/referral", h.Referral)
	g.POST("/patient-summary", h.PatientSummary)
	g.POST("/summarize", h.Summarize)
}

type assistRequest struct {
	PatientID      string       `json:"patientId"`
	Message        string       `json:"message"`
	History        []ai.Message `json:"history"`
	FreeText       string       `json:"freeText"`
	ConsultaActual string       `json:"consultaActual"`
	DiagnosticText string       `json:"diagnosticText"`
}

// loadContext binds the request, fetches the record and renders the chart
// context every prompt builds on.
func (h *Handler) loadContext(c echo.Context) (*assistRequest, *record.PatientRecord, string, error) {
	var req assistRequest
	if err := c.Bind(&req); err != nil {
		return nil, nil, "", echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PatientID == "" {
		return nil, nil, "", echo.NewHTTPError(http.StatusBadRequest, "patientId is required")
	}
	rec, err := h.patients.GetRecord(c.Request().Context(), req.PatientID, auth.SessionFrom(c))
	if err != nil {
		return nil, nil, "", patients.HTTPError(err)
	}
	return &req, rec, record.BuildContext(rec), nil
}

func (h *Handler) Chat(c echo.Context) error {
	req, _, chartCtx, err := h.loadContext(c)
	if err != nil {
		return err
	}
	if strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}

	messages := make([]ai.Message, 0, len(req.History)+3)
	messages = append(messages,
		ai.Message{Role: "user", Content: "Contexto completo de la historia clínica del paciente:\n\n" + chartCtx + "\n\n---\n\nEl médico te consulta lo siguiente:"},
		ai.Message{Role: "assistant", Content: "Entendido, tengo el contexto completo de la HC del paciente. ¿En qué puedo ayudarte?"},
	)
	messages = append(messages, req.History...)
	messages = append(messages, ai.Message{Role: "user", Content: req.Message})

	return h.stream(c, ai.Request{System: chatPrompt, Messages: messages})
}

func (h *Handler) Evolution(c echo.Context) error {
	req, _, chartCtx, err := h.loadContext(c)
	if err != nil {
		return err
	}
	if strings.TrimSpace(req.FreeText) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "freeText is required")
	}

	return h.stream(c, ai.Request{System: evolutionPrompt, Messages: []ai.Message{{
		Role: "user",
		Content: fmt.Sprintf("Contexto del paciente:\n%s\n\n---\n\nTexto libre del médico:\n%s\n\nEstructurá esta consulta en formato de evolución clínica.",
			chartCtx, req.FreeText),
	}}})
}

func (h *Handler) Interactions(c echo.Context) error {
	_, rec, chartCtx, err := h.loadContext(c)
	if err != nil {
		return err
	}

	active := rec.ActiveMedications()
	if len(active) < 2 {
		msg := "Se necesitan al menos 2 medicamentos activos para analizar interacciones."
		if len(active) == 0 {
			msg = "No hay medicamentos activos para analizar."
		}
		return h.streamStatic(c, msg)
	}

	var meds strings.Builder
	for _, m := range active {
		fmt.Fprintf(&meds, "- %s (%s, %s)\n", m.Name, m.Dose, m.Frequency)
	}

	return h.stream(c, ai.Request{System: interactionsPrompt, Messages: []ai.Message{{
		Role: "user",
		Content: fmt.Sprintf("Contexto completo del paciente:\n%s\n\n---\n\nMedicación activa a analizar:\n%s\n---\n\nAnalizá todas las interacciones medicamentosas entre los medicamentos listados.",
			chartCtx, meds.String()),
	}}})
}

func (h *Handler) Diagnose(c echo.Context) error {
	req, _, chartCtx, err := h.loadContext(c)
	if err != nil {
		return err
	}

	var consulta string
	if req.ConsultaActual != "" {
		consulta = "Consulta actual del médico:\n" + req.ConsultaActual + "\n\n---\n\n"
	}
	return h.stream(c, ai.Request{System: diagnosePrompt, Messages: []ai.Message{{
		Role: "user",
		Content: fmt.Sprintf("Contexto completo del paciente:\n%s\n\n---\n\n%sGenerá el análisis de diagnósticos diferenciales basándote en la historia clínica y la consulta actual.",
			chartCtx, consulta),
	}}})
}

func (h *Handler) CIE10(c echo.Context) error {
	req, _, chartCtx, err := h.loadContext(c)
	if err != nil {
		return err
	}

	var extra string
	if req.DiagnosticText != "" {
		extra = "\n\nContexto diagnóstico adicional proporcionado por el médico:\n" + req.DiagnosticText
	}
	return h.stream(c, ai.Request{System: cie10Prompt, Messages: []ai.Message{{
		Role: "user",
		Content: fmt.Sprintf("Contexto completo del paciente:\n%s%s\n\n---\n\nSugerí los códigos CIE-10 más apropiados para este paciente basándote en toda la información disponible.",
			chartCtx, extra),
	}}})
}

func (h *Handler) Referral(c echo.Context) error {
	_, _, chartCtx, err := h.loadContext(c)
	if err != nil {
		return err
	}
	return h.stream(c, ai.Request{System: referralPrompt, Messages: []ai.Message{{
		Role: "user",
		Content: fmt.Sprintf("Historia clínica completa del paciente:\n\n%s\n\n---\n\nAnalizá la HC completa y sugerí las derivaciones a especialistas que serían pertinentes, ordenadas por urgencia.",
			chartCtx),
	}}})
}

func (h *Handler) PatientSummary(c echo.Context) error {
	_, _, chartCtx, err := h.loadContext(c)
	if err != nil {
		return err
	}
	return h.stream(c, ai.Request{System: patientSummaryPrompt, Messages: []ai.Message{{
		Role: "user",
		Content: fmt.Sprintf("Historia clínica completa del paciente:\n\n%s\n\n---\n\nGenerá un resumen en lenguaje simple y accesible para que el propio paciente entienda su estado de salud. Recordá usar \"vos\" y ser empático.",
			chartCtx),
	}}})
}

func (h *Handler) Summarize(c echo.Context) error {
	_, _, chartCtx, err := h.loadContext(c)
	if err != nil {
		return err
	}

	summary, err := h.provider.Complete(c.Request().Context(), ai.Request{
		System:   summarizePrompt,
		Messages: []ai.Message{{Role: "user", Content: "Resumí la siguiente historia clínica:\n\n" + chartCtx}},
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("summarize completion failed")
		return echo.NewHTTPError(http.StatusBadGateway, "completion failed")
	}
	return c.JSON(http.StatusOK, map[string]string{"summary": summary})
}

type sseFrame struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// stream drives the provider and relays chunks as SSE frames. Errors after
// the stream opened cannot change the status code anymore, so they travel as
// an error frame followed by the [DONE] terminator the client always waits
// for.
func (h *Handler) stream(c echo.Context, req ai.Request) error {
	ch, err := h.provider.Stream(c.Request().Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("provider stream failed to open")
		return echo.NewHTTPError(http.StatusBadGateway, "completion failed")
	}

	resp := beginSSE(c)
	for chunk := range ch {
		if chunk.Err != nil {
			h.logger.Error().Err(chunk.Err).Msg("assist stream aborted")
			writeFrame(resp, sseFrame{Error: "Error al generar la respuesta"})
			break
		}
		writeFrame(resp, sseFrame{Text: chunk.Text})
	}
	writeDone(resp)
	return nil
}

// streamStatic emits a single informational frame without involving the
// provider, keeping the wire format identical for the client.
func (h *Handler) streamStatic(c echo.Context, msg string) error {
	resp := beginSSE(c)
	writeFrame(resp, sseFrame{Text: msg})
	writeDone(resp)
	return nil
}

func beginSSE(c echo.Context) *echo.Response {
	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)
	return resp
}

func writeFrame(resp *echo.Response, frame sseFrame) {
	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}
	fmt.Fprintf(resp, "data: %s\n\n", payload)
	resp.Flush()
}

func writeDone(resp *echo.Response) {
	fmt.Fprint(resp, "data: [DONE]\n\n")
	resp.Flush()
}
