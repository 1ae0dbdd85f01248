package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionCookie is the name of the HTTP-only cookie carrying the signed
// session token.
const SessionCookie = "mediscribe_session"

// SessionTTL bounds how long a login stays usable. The upstream EHR token
// inside the session may expire sooner; upstream 401s surface through the
// data layer either way.
const SessionTTL = 8 * time.Hour

const sessionContextKey = "mediscribe.session"

// Session is the per-user state carried between requests: the upstream EHR
// bearer token, the EHR the user logged into and their display identity.
// It lives only inside the signed cookie, never server-side.
type Session struct {
	Token     string
	BaseURL   string
	FirstName string
	LastName  string
}

type sessionClaims struct {
	EHRToken  string `json:"tok"`
	BaseURL   string `json:"url"`
	FirstName string `json:"fn"`
	LastName  string `json:"ln"`
	jwt.RegisteredClaims
}

// SessionManager signs and verifies session cookies.
type SessionManager struct {
	secret []byte
	now    func() time.Time
}

func NewSessionManager(secret string) *SessionManager {
	return &SessionManager{secret: []byte(secret), now: time.Now}
}

// Issue signs a session into a compact JWT.
func (m *SessionManager) Issue(s Session) (string, error) {
	now := m.now()
	claims := sessionClaims{
		EHRToken:  s.Token,
		BaseURL:   s.BaseURL,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses and validates a signed session token.
func (m *SessionManager) Verify(token string) (*Session, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("verify session: %w", err)
	}
	return &Session{
		Token:     claims.EHRToken,
		BaseURL:   claims.BaseURL,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
	}, nil
}

// Cookie wraps a signed session token in the cookie the browser stores.
func (m *SessionManager) Cookie(value string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie expires the session cookie.
func ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Middleware attaches the verified session to the request context when a
// valid cookie is present. It never rejects: endpoints that need a session
// check for it themselves, so mock-mode deployments work without logging in.
func (m *SessionManager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
				if sess, err := m.Verify(cookie.Value); err == nil {
					c.Set(sessionContextKey, sess)
				}
			}
			return next(c)
		}
	}
}

// WithSession attaches a session to the request context directly, bypassing
// cookie verification. The login handler uses it for the request that
// creates the session.
func WithSession(c echo.Context, s *Session) {
	c.Set(sessionContextKey, s)
}

// SessionFrom returns the session attached by Middleware, or nil.
func SessionFrom(c echo.Context) *Session {
	sess, _ := c.Get(sessionContextKey).(*Session)
	return sess
}
