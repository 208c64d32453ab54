package carousel

import "sync"

// State is a read-only view of the controller used by render surfaces.
type State struct {
	Current     int  `json:"current"`
	Total       int  `json:"total"`
	CanPrevious bool `json:"can_previous"`
	CanNext     bool `json:"can_next"`
}

// Controller tracks the current page of a carousel.
//
// Invariant: 0 <= current < total, or current == 0 when total == 0.
// Manual navigation clamps; Advance wraps.
type Controller struct {
	mu      sync.Mutex
	current int
	total   int
}

// NewController returns a controller positioned on the first page.
func NewController(totalPages int) *Controller {
	return &Controller{total: max(totalPages, 0)}
}

// Current returns the current page index.
func (c *Controller) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Total returns the number of pages.
func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Previous moves one page back, stopping at the first page.
// It reports whether the page changed.
func (c *Controller) Previous() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == 0 {
		return false
	}
	c.current--
	return true
}

// Next moves one page forward, stopping at the last page.
// It reports whether the page changed.
func (c *Controller) Next() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current >= c.total-1 {
		return false
	}
	c.current++
	return true
}

// Advance is the timer transition: like Next, but the last page wraps to 0.
func (c *Controller) Advance() int {
	return c.advance().Current
}

// advance wraps forward and returns the resulting state under one lock.
func (c *Controller) advance() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.total > 0 {
		c.current = (c.current + 1) % c.total
	}
	return c.stateLocked()
}

// GoTo jumps to page, clamped into the valid range.
func (c *Controller) GoTo(page int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = clamp(page, c.total)
	return c.current
}

// SetTotal changes the page count after a repartition and clamps the cursor.
func (c *Controller) SetTotal(totalPages int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total = max(totalPages, 0)
	c.current = clamp(c.current, c.total)
}

// CanPrevious reports whether the previous control is enabled.
func (c *Controller) CanPrevious() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current > 0
}

// CanNext reports whether the next control is enabled.
func (c *Controller) CanNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current < c.total-1
}

// Offset returns the track translation for the current page.
func (c *Controller) Offset(pageWidth float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(c.current) * pageWidth
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	return State{
		Current:     c.current,
		Total:       c.total,
		CanPrevious: c.current > 0,
		CanNext:     c.current < c.total-1,
	}
}

func clamp(page, total int) int {
	if total <= 0 || page < 0 {
		return 0
	}
	if page > total-1 {
		return total - 1
	}
	return page
}
