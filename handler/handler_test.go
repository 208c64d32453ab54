package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lapisvisuals/lapis/carousel"
	"github.com/lapisvisuals/lapis/concurrency"
	"github.com/lapisvisuals/lapis/concurrency/worker"
	"github.com/lapisvisuals/lapis/config"
	"github.com/lapisvisuals/lapis/content"
	"github.com/lapisvisuals/lapis/data"
	"github.com/lapisvisuals/lapis/logging/logger"
	"github.com/lapisvisuals/lapis/messaging/email"
	"github.com/lapisvisuals/lapis/service"
	"github.com/lapisvisuals/lapis/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router  *gin.Engine
	svc     *service.Service
	streams *concurrency.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{
		Server: &config.Server{},
		Auth: &config.Auth{
			JWT:    &config.JWT{Secret: "test-secret", Expire: 1},
			Cookie: &config.Cookie{Name: "lapis_session"},
		},
		Email: &config.Email{Provider: "simulated", SenderName: "LAPIS Team"},
		Carousel: &config.Carousel{
			Period:       20 * time.Millisecond,
			NarrowWidth:  480,
			MediumWidth:  1024,
			DefaultWidth: 1280,
			MobileWidth:  375,
		},
	}

	d, err := data.New(context.Background(), &config.Sqlite{Path: filepath.Join(t.TempDir(), "handler.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	pool := worker.NewPool(&worker.Config{MaxWorkers: 2, QueueSize: 8})
	pool.Start()
	t.Cleanup(func() { _ = pool.Stop(context.Background()) })

	svc := service.New(service.Deps{
		Config:  cfg,
		Data:    d,
		Catalog: content.MustLoad(),
		Sender:  email.NewSimulatedSender(&config.Simulated{}),
		Pool:    pool,
		Logger:  logger.StdLogger(),
	})

	streams, err := concurrency.NewManager(2)
	require.NoError(t, err)

	tmpl, err := web.Templates()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	New(svc, cfg, d, streams, logger.StdLogger()).RegisterRoutes(r)
	return &testEnv{router: r, svc: svc, streams: streams}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// login signs in a fresh admin and returns the session cookie.
func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	_, err := e.svc.Auth.EnsureAdmin(context.Background(), "admin", "s3cret")
	require.NoError(t, err)

	w := e.do(jsonRequest(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"s3cret"}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == "lapis_session" {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func TestPublicPagesRender(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/", "/awards", "/services", "/contact", "/login"} {
		w := env.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), "LAPIS", path)
	}
}

func TestAwardsPageCarouselLinks(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(httptest.NewRequest(http.MethodGet, "/awards?w=1440&page=6", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "translateX(-600%)")
	assert.Contains(t, body, "7 / 7")
	assert.Contains(t, body, `href="?w=1440&page=5"`)
	assert.NotContains(t, body, `class="carousel-next" href`)
}

func TestAwardsAPI(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/awards?width=1440&page=1&action=next", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var view struct {
		PageSize int             `json:"page_size"`
		Items    []content.Award `json:"items"`
		State    carousel.State  `json:"state"`
	}
	decode(t, w, &view)
	assert.Equal(t, carousel.State{Current: 2, Total: 7, CanPrevious: true, CanNext: true}, view.State)
	assert.Len(t, view.Items, 3)

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/awards?width=375&page=99&variant=homepage", nil))
	decode(t, w, &view)
	assert.Equal(t, view.State.Total-1, view.State.Current)
	assert.False(t, view.State.CanNext)
}

func TestContentAPI(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{
		"/api/content/video-sections",
		"/api/content/services",
		"/api/content/footer",
		"/api/content/loading",
	} {
		w := env.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	var loading struct {
		Text     string  `json:"text"`
		Schedule []int64 `json:"schedule"`
	}
	decode(t, env.do(httptest.NewRequest(http.MethodGet, "/api/content/loading", nil)), &loading)
	assert.Len(t, loading.Schedule, len([]rune(loading.Text)))
}

func TestSubmitContact(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(jsonRequest(http.MethodPost, "/api/contact", `{"name":"Ada","email":"ada@example.com","message":"Hi"}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var reply struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	decode(t, w, &reply)
	assert.True(t, reply.Success)
	assert.Equal(t, "Contact information saved successfully", reply.Message)
	assert.NotEmpty(t, reply.Data.ID)

	w = env.do(jsonRequest(http.MethodPost, "/api/contact", `{"name":"Ada","email":"nope","message":"Hi"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email format")

	w = env.do(jsonRequest(http.MethodPost, "/api/contact", `{"name":"","email":"ada@example.com"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required fields")

	w = env.do(jsonRequest(http.MethodPost, "/api/contact", `{not json`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginLogout(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t)
	assert.True(t, session.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(session)
	w := env.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"admin"`)

	w = env.do(jsonRequest(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"wrong"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cleared := w.Result().Cookies()
	require.NotEmpty(t, cleared)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestAdminRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/admin/companies", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(jsonRequest(http.MethodPost, "/api/email/send", `{}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminPages(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t)

	for _, path := range []string{"/admin/dashboard", "/admin/email-blast"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(session)
		w := env.do(req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(session)
	assert.Equal(t, http.StatusFound, env.do(req).Code)
}

func TestCompaniesAndEmail(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t)
	authed := func(req *http.Request) *httptest.ResponseRecorder {
		req.AddCookie(session)
		return env.do(req)
	}

	w := authed(jsonRequest(http.MethodPost, "/api/admin/companies", `{"name":"Acme","email":"team@acme.io"}`))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = authed(jsonRequest(http.MethodPost, "/api/admin/companies", `{"name":"Acme 2","email":"TEAM@acme.io"}`))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = authed(httptest.NewRequest(http.MethodGet, "/api/admin/companies", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Acme")

	w = authed(jsonRequest(http.MethodPost, "/api/email/preview", `{"subject":"Hi","content":"Line one\nLine two"}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Line one")

	w = authed(jsonRequest(http.MethodPost, "/api/email/send", `{"to":"bad","subject":"Hi","content":"x"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email address")

	w = authed(httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sentToday":0`)

	w = authed(httptest.NewRequest(http.MethodGet, "/api/admin/contacts?limit=5", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = authed(httptest.NewRequest(http.MethodGet, "/api/admin/contacts?cursor=garbage", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	w = env.do(httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "does not exist")
}

func TestHealthAndVersion(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.Contains(t, w.Body.String(), `"streams"`)
	assert.Contains(t, w.Body.String(), `"email_queue"`)

	w = env.do(httptest.NewRequest(http.MethodGet, "/version", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"goVersion"`)
}

type sseEvent struct {
	name string
	data string
}

// openStream connects to the awards stream and returns a reader over it.
func openStream(t *testing.T, ctx context.Context, srv *httptest.Server, query, userAgent string) *bufio.Scanner {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/awards/stream"+query, nil)
	require.NoError(t, err)
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/event-stream")
	return bufio.NewScanner(res.Body)
}

// nextEvent reads one server-sent event.
func nextEvent(t *testing.T, sc *bufio.Scanner) sseEvent {
	t.Helper()
	var ev sseEvent
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			ev.name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			ev.data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		case line == "" && ev.name != "":
			return ev
		}
	}
	t.Fatal("stream ended")
	return ev
}

func nextState(t *testing.T, sc *bufio.Scanner) carousel.State {
	t.Helper()
	ev := nextEvent(t, sc)
	require.Equal(t, "state", ev.name)
	var s carousel.State
	require.NoError(t, json.Unmarshal([]byte(ev.data), &s))
	return s
}

func streamID(t *testing.T, sc *bufio.Scanner) string {
	t.Helper()
	ev := nextEvent(t, sc)
	require.Equal(t, "stream", ev.name)
	var v struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(ev.data), &v))
	require.NotEmpty(t, v.ID)
	return v.ID
}

func TestAwardsStreamAdvances(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sc := openStream(t, ctx, srv, "?width=1440", "")
	streamID(t, sc)

	states := []carousel.State{nextState(t, sc), nextState(t, sc), nextState(t, sc)}
	assert.Equal(t, 0, states[0].Current)
	assert.Equal(t, 7, states[0].Total)
	assert.Equal(t, 1, states[1].Current)
	assert.Equal(t, 2, states[2].Current)

	cancel()
	require.Eventually(t, func() bool { return env.streams.Available() == 2 }, 2*time.Second, 10*time.Millisecond)
}

var carouselAttrs = regexp.MustCompile(`data-width="(\d+)" data-page="(\d+)" data-total="(\d+)"`)

func TestAwardsStreamMatchesRenderedCarousel(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	const desktop = "Mozilla/5.0 (X11; Linux x86_64)"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", desktop)
	w := env.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	m := carouselAttrs.FindStringSubmatch(w.Body.String())
	require.Len(t, m, 4, "carousel attributes not rendered")
	assert.Equal(t, "1280", m[1])
	total, err := strconv.Atoi(m[3])
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// the client streams with the width the server rendered
	sc := openStream(t, ctx, srv, "?variant=homepage&width="+m[1]+"&page="+m[2], "")
	streamID(t, sc)
	first := nextState(t, sc)
	assert.Equal(t, total, first.Total)
	for i := 0; i < 3; i++ {
		s := nextState(t, sc)
		assert.Equal(t, total, s.Total)
		assert.Less(t, s.Current, total)
	}

	// without a width the stream resolves the same default as the page
	sc = openStream(t, ctx, srv, "?variant=homepage", desktop)
	streamID(t, sc)
	assert.Equal(t, total, nextState(t, sc).Total)
}

func TestAwardsStreamStartsOnRequestedPage(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sc := openStream(t, ctx, srv, "?width=1440&page=4", "")
	streamID(t, sc)
	assert.Equal(t, carousel.State{Current: 4, Total: 7, CanPrevious: true, CanNext: true}, nextState(t, sc))
	assert.Equal(t, 5, nextState(t, sc).Current)

	sc = openStream(t, ctx, srv, "?width=1440&page=99", "")
	streamID(t, sc)
	assert.Equal(t, 6, nextState(t, sc).Current)
}

func TestAwardsStreamResize(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sc := openStream(t, ctx, srv, "?width=1440&page=6", "")
	id := streamID(t, sc)
	require.Equal(t, 7, nextState(t, sc).Total)

	res, err := srv.Client().Post(srv.URL+"/api/awards/stream/"+id+"/resize", "application/json", strings.NewReader(`{"width":375}`))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var view struct {
		Width    int            `json:"width"`
		PageSize int            `json:"page_size"`
		State    carousel.State `json:"state"`
		Pages    []struct {
			Index int             `json:"index"`
			Items []content.Award `json:"items"`
		} `json:"pages"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&view))
	assert.Equal(t, 375, view.Width)
	assert.Equal(t, 1, view.PageSize)
	assert.Equal(t, 20, view.State.Total)
	assert.Len(t, view.Pages, 20)

	// states published before the resize may still be in flight
	var s carousel.State
	for i := 0; i < 10; i++ {
		if s = nextState(t, sc); s.Total == 20 {
			break
		}
	}
	require.Equal(t, 20, s.Total)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 20, nextState(t, sc).Total)
	}
}

func TestAwardsStreamResizeErrors(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	w := env.do(jsonRequest(http.MethodPost, "/api/awards/stream/nope/resize", `{"width":800}`))
	assert.Equal(t, http.StatusNotFound, w.Code)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sc := openStream(t, ctx, srv, "?width=1440", "")
	id := streamID(t, sc)

	w = env.do(jsonRequest(http.MethodPost, "/api/awards/stream/"+id+"/resize", `{"width":0}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.do(jsonRequest(http.MethodPost, "/api/awards/stream/"+id+"/resize", `{"width":"wide"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// a closed stream can no longer be resized
	cancel()
	require.Eventually(t, func() bool {
		w := env.do(jsonRequest(http.MethodPost, "/api/awards/stream/"+id+"/resize", `{"width":800}`))
		return w.Code == http.StatusNotFound
	}, 2*time.Second, 10*time.Millisecond)
}

func TestAwardsStreamLimit(t *testing.T) {
	env := newTestEnv(t)
	require.True(t, env.streams.TryAcquire())
	require.True(t, env.streams.TryAcquire())
	defer func() {
		_ = env.streams.Release()
		_ = env.streams.Release()
	}()

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/awards/stream", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
