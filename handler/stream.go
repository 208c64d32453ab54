package handler

import (
	"io"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/lapisvisuals/lapis/carousel"
	"github.com/lapisvisuals/lapis/content"
	"github.com/lapisvisuals/lapis/logging/logger"
	"github.com/lapisvisuals/lapis/nanoid"
	"github.com/lapisvisuals/lapis/net/resp"
	"github.com/lapisvisuals/lapis/structs"
	"github.com/lapisvisuals/lapis/validation/validator"
	"github.com/sirupsen/logrus"
)

// SSE event names. streamEvent carries the stream id used to resize it,
// stateEvent carries a carousel.State.
const (
	streamEvent = "stream"
	stateEvent  = "state"
)

// awardsStream is one open auto-advance connection.
type awardsStream struct {
	variant content.Variant
	aa      *carousel.AutoAdvancer
	states  chan carousel.State
}

// publish hands st to the connection. An unread older state is replaced so
// a slow client never blocks the timer and always gets the latest state.
func (s *awardsStream) publish(st carousel.State) {
	for {
		select {
		case s.states <- st:
			return
		default:
		}
		select {
		case <-s.states:
		default:
		}
	}
}

// streamSet indexes open streams by id.
type streamSet struct {
	mu sync.Mutex
	m  map[string]*awardsStream
}

func newStreamSet() *streamSet {
	return &streamSet{m: make(map[string]*awardsStream)}
}

func (s *streamSet) add(st *awardsStream) (string, error) {
	id, err := nanoid.NumberLower()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = st
	return id, nil
}

func (s *streamSet) get(id string) (*awardsStream, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.m[id]
	return st, ok
}

func (s *streamSet) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
}

// AwardsStream pushes the auto-advanced carousel state as server-sent
// events until the client goes away. The timer starts on page and the
// first event names the stream for ResizeStream.
//
//	GET /api/awards/stream?width=1440&variant=homepage&page=2
func (h *Handler) AwardsStream(c *gin.Context) {
	if !h.streams.TryAcquire() {
		resp.Fail(c.Writer, resp.TooManyRequests("Too many open streams"))
		return
	}
	defer func() {
		if err := h.streams.Release(); err != nil {
			logger.Warnf(c.Request.Context(), "release stream slot: %v", err)
		}
	}()

	ctx := c.Request.Context()
	variant := content.ParseVariant(c.Query("variant"))
	width := h.svc.Showcase.ResolveWidth(queryInt(c, "width", "w"), c.Request.UserAgent())

	st := &awardsStream{variant: variant, states: make(chan carousel.State, 1)}
	st.aa = h.svc.Showcase.NewStream(variant, width, queryInt(c, "page"), st.publish)

	id, err := h.open.add(st)
	if err != nil {
		resp.FailWithError(c.Writer, err)
		return
	}
	defer h.open.remove(id)

	st.aa.Start(ctx)
	defer st.aa.Stop()

	logger.WithFields(ctx, logrus.Fields{
		"stream":  id,
		"variant": variant,
		"width":   width,
		"total":   st.aa.Controller().Total(),
	}).Debug("awards stream opened")

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent(streamEvent, gin.H{"id": id, "width": width})
	c.SSEvent(stateEvent, st.aa.Controller().Snapshot())
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case s := <-st.states:
			c.SSEvent(stateEvent, s)
			return true
		}
	})
}

// ResizeStream repartitions an open stream for a new viewport width. The
// reply carries the new pages so the client can rebuild its track; the
// stream itself continues with the new page count.
//
//	POST /api/awards/stream/:id/resize {"width": 900}
func (h *Handler) ResizeStream(c *gin.Context) {
	var body structs.ResizeBody
	if !bind(c, &body) {
		return
	}
	if errs := validator.Validate(&body); !errs.Empty() {
		resp.Fail(c.Writer, resp.BadRequest("Invalid width", errs.Messages))
		return
	}

	st, ok := h.open.get(c.Param("id"))
	if !ok {
		resp.Fail(c.Writer, resp.NotFound("Stream not found"))
		return
	}

	view := h.svc.Showcase.Resize(st.aa, st.variant, body.Width)
	st.publish(view.State)

	logger.WithFields(c.Request.Context(), logrus.Fields{
		"stream": c.Param("id"),
		"width":  body.Width,
		"total":  view.State.Total,
	}).Debug("awards stream resized")
	resp.Success(c.Writer, view)
}
