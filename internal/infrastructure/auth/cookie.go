package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hrm/backend/internal/infrastructure/config"
)

// CookieWriter sets and clears the HTTP-only session cookie
type CookieWriter struct {
	cfg config.CookieConfig
}

// NewCookieWriter creates a cookie writer from config
func NewCookieWriter(cfg config.CookieConfig) *CookieWriter {
	return &CookieWriter{cfg: cfg}
}

// Name returns the session cookie name
func (w *CookieWriter) Name() string {
	return w.cfg.Name
}

// Set writes the session cookie with the given max age in seconds
func (w *CookieWriter) Set(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(w.sameSite())
	c.SetCookie(w.cfg.Name, token, maxAge, w.cfg.Path, w.cfg.Domain, w.cfg.Secure, true)
}

// Clear expires the session cookie immediately
func (w *CookieWriter) Clear(c *gin.Context) {
	c.SetSameSite(w.sameSite())
	c.SetCookie(w.cfg.Name, "", -1, w.cfg.Path, w.cfg.Domain, w.cfg.Secure, true)
}

// Read returns the session token from the request, empty when absent
func (w *CookieWriter) Read(c *gin.Context) string {
	token, err := c.Cookie(w.cfg.Name)
	if err != nil {
		return ""
	}
	return token
}

func (w *CookieWriter) sameSite() http.SameSite {
	switch w.cfg.SameSite {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
