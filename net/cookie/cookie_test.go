package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSessionRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	SetSession(w, "tok", time.Now().Add(time.Hour), Options{Domain: "lapisvisuals.com"})

	res := w.Result()
	cookies := res.Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, SessionName, c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "lapisvisuals.com", c.Domain)
	assert.Greater(t, c.MaxAge, 3500)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)
	assert.Equal(t, "tok", GetSession(r, Options{}))
}

func TestClearSession(t *testing.T) {
	w := httptest.NewRecorder()
	ClearSession(w, Options{Name: "custom"})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "custom", cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestGetSessionMissing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetSession(r, Options{}))
}

func TestFormatDomain(t *testing.T) {
	assert.Equal(t, "localhost", formatDomain("localhost"))
	assert.Equal(t, ".example.com", formatDomain("example.com"))
	assert.Equal(t, ".example.com", formatDomain(".example.com"))
}
