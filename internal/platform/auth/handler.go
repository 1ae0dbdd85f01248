package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mediscribe/mediscribe/internal/config"
	"github.com/mediscribe/mediscribe/internal/ehr"
)

const maxEHRURLLength = 2048
const maxInitTokenLength = 4096

// ValidateEHRURL normalizes a user-supplied EHR base URL. Only absolute
// http/https URLs are accepted; query, fragment and a trailing slash are
// dropped. Returns "" when the URL is unusable.
func ValidateEHRURL(raw string) string {
	if raw == "" || len(raw) > maxEHRURLLength {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}
	if parsed.Host == "" {
		return ""
	}
	base := parsed.Scheme + "://" + parsed.Host + strings.TrimSuffix(parsed.Path, "/")
	return base
}

// EHRAuthenticator is the part of the EHR client the login flow needs.
type EHRAuthenticator interface {
	Login(ctx context.Context, baseURL, userName, password string) (*ehr.LoginResult, error)
}

type Handler struct {
	sessions *SessionManager
	ehr      EHRAuthenticator
	mode     string
	secure   bool
	logger   zerolog.Logger
}

func NewHandler(cfg *config.Config, sessions *SessionManager, authenticator EHRAuthenticator, logger zerolog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		ehr:      authenticator,
		mode:     cfg.DataSource,
		secure:   cfg.Env == "production",
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/auth")
	g.POST("/login", h.Login)
	g.DELETE("/login", h.Logout)
	g.POST("/init", h.Init)
}

type loginRequest struct {
	URL      string `json:"url"`
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	User    loginUser `json:"user"`
}

type loginUser struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Roles     []string `json:"roles"`
}

// Login authenticates against the user's EHR and wraps the upstream token in
// a signed session cookie. Credentials pass through; they are never stored
// or logged.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.URL == "" || req.UserName == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url, userName and password are required")
	}
	baseURL := ValidateEHRURL(req.URL)
	if baseURL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url must be a valid http or https URL")
	}

	result, err := h.ehr.Login(c.Request().Context(), baseURL, req.UserName, req.Password)
	if err != nil {
		var ue *ehr.UpstreamError
		if errors.As(err, &ue) && (ue.Status == http.StatusUnauthorized || ue.Status == http.StatusForbidden) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		h.logger.Error().Err(err).Str("user", req.UserName).Msg("ehr login failed")
		return echo.NewHTTPError(http.StatusBadGateway, "ehr login failed")
	}

	signed, err := h.sessions.Issue(Session{
		Token:     result.Token,
		BaseURL:   baseURL,
		FirstName: result.FirstName,
		LastName:  result.LastName,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("session signing failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "session signing failed")
	}
	c.SetCookie(h.sessions.Cookie(signed, h.secure))

	roles := result.Roles
	if roles == nil {
		roles = []string{}
	}
	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		User:    loginUser{FirstName: result.FirstName, LastName: result.LastName, Roles: roles},
	})
}

func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(ClearCookie())
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

type initRequest struct {
	Token string `json:"token"`
}

// Init bootstraps a session from a pre-issued EHR token, for hosts that
// embed the app and already hold a token for the logged-in user. The EHR
// base URL stays the configured default.
func (h *Handler) Init(c echo.Context) error {
	var req initRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Token == "" || len(req.Token) > maxInitTokenLength {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid token")
	}

	signed, err := h.sessions.Issue(Session{Token: req.Token})
	if err != nil {
		h.logger.Error().Err(err).Msg("session signing failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "session signing failed")
	}
	c.SetCookie(h.sessions.Cookie(signed, h.secure))

	return c.JSON(http.StatusOK, map[string]string{"mode": h.mode})
}
