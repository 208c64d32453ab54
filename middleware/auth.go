package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lapisvisuals/lapis/ctxutil"
	"github.com/lapisvisuals/lapis/net/cookie"
	"github.com/lapisvisuals/lapis/net/resp"
	securityjwt "github.com/lapisvisuals/lapis/security/jwt"
)

// LoginPath is where unauthenticated page requests are sent.
const LoginPath = "/login"

const adminSessionKey = "admin_session"

// Authenticator parses a session token.
type Authenticator interface {
	Authenticate(token string) (*securityjwt.Session, error)
}

// Session reads the session cookie and, when it holds a valid token, puts
// the admin on the request context. It never rejects a request.
func Session(auth Authenticator, opts cookie.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.GetSession(c.Request, opts)
		if token == "" {
			token = bearerToken(c.GetHeader("Authorization"))
		}
		if token != "" {
			if s, err := auth.Authenticate(token); err == nil {
				c.Set(adminSessionKey, s)
				c.Request = c.Request.WithContext(ctxutil.SetAdmin(c.Request.Context(), s.AdminID, s.Username))
			}
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAdmin answers 401 JSON when no admin session is present.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentAdmin(c); !ok {
			resp.Fail(c.Writer, resp.UnAuthorized("unauthorized"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdminPage redirects to the login page when no admin session is
// present.
func RequireAdminPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentAdmin(c); !ok {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentAdmin returns the session set by Session.
func CurrentAdmin(c *gin.Context) (*securityjwt.Session, bool) {
	v, ok := c.Get(adminSessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*securityjwt.Session)
	return s, ok
}
