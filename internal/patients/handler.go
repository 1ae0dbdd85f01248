package patients

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"

	"github.com/mediscribe/mediscribe/internal/ehr"
	"github.com/mediscribe/mediscribe/internal/platform/auth"
)

// Patient ids come from path segments and get interpolated into upstream
// URLs, so the shape is locked down before anything else happens.
var patientIDRe = regexp.MustCompile(`^[\w-]+$`)

const maxPatientIDLength = 100

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/search", h.Search)
	api.GET("/patients/:id", h.GetRecord)
}

func (h *Handler) GetRecord(c echo.Context) error {
	id := c.Param("id")
	if id == "" || len(id) > maxPatientIDLength || !patientIDRe.MatchString(id) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	rec, err := h.svc.GetRecord(c.Request().Context(), id, auth.SessionFrom(c))
	if err != nil {
		return HTTPError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) Search(c echo.Context) error {
	results, err := h.svc.Search(c.Request().Context(), c.QueryParam("q"), auth.SessionFrom(c))
	if err != nil {
		return HTTPError(err)
	}
	return c.JSON(http.StatusOK, results)
}

// HTTPError translates data-layer failures into the status codes the
// frontend keys on. An upstream 401/403 means the EHR token went stale, so
// the client is told to log in again rather than blamed with a 502.
func HTTPError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	case errors.Is(err, ErrSessionRequired):
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}
	var ue *ehr.UpstreamError
	if errors.As(err, &ue) {
		if ue.Status == http.StatusUnauthorized || ue.Status == http.StatusForbidden {
			return echo.NewHTTPError(http.StatusUnauthorized, "ehr session expired")
		}
		if ue.Status == http.StatusNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusBadGateway, "ehr unavailable")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
