package cookie

import (
	"net/http"
	"strings"
	"time"
)

// SessionName is the default admin session cookie name.
const SessionName = "lapis_session"

// Options control how the session cookie is written.
type Options struct {
	Name   string
	Domain string
	Secure bool
}

func (o Options) name() string {
	if o.Name == "" {
		return SessionName
	}
	return o.Name
}

// formatDomain formats the domain
func formatDomain(domain string) string {
	if domain != "localhost" && !strings.HasPrefix(domain, ".") {
		return "." + domain
	}
	return domain
}

// SetSession writes an HttpOnly session cookie that expires at expires.
func SetSession(w http.ResponseWriter, token string, expires time.Time, opts Options) {
	maxAge := int(time.Until(expires).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	cookie := &http.Cookie{
		Name:     opts.name(),
		Value:    token,
		MaxAge:   maxAge,
		Expires:  expires.UTC(),
		Path:     "/",
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if opts.Domain != "" {
		cookie.Domain = formatDomain(opts.Domain)
	}

	http.SetCookie(w, cookie)
}

// ClearSession expires the session cookie.
func ClearSession(w http.ResponseWriter, opts Options) {
	cookie := &http.Cookie{
		Name:     opts.name(),
		Value:    "",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Path:     "/",
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if opts.Domain != "" {
		cookie.Domain = formatDomain(opts.Domain)
	}

	http.SetCookie(w, cookie)
}

// GetSession returns the session token from r, or "".
func GetSession(r *http.Request, opts Options) string {
	c, err := r.Cookie(opts.name())
	if err != nil {
		return ""
	}
	return c.Value
}
