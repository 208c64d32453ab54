package service

import (
	"time"

	"github.com/lapisvisuals/lapis/carousel"
	"github.com/lapisvisuals/lapis/config"
	"github.com/lapisvisuals/lapis/content"
	"github.com/lapisvisuals/lapis/ctxutil"
)

// Carousel navigation actions accepted alongside a page number.
const (
	ActionNext     = "next"
	ActionPrevious = "previous"
)

// AwardsView is one rendered carousel position.
type AwardsView struct {
	Variant  content.Variant                `json:"variant"`
	Width    int                            `json:"width"`
	PageSize int                            `json:"page_size"`
	Items    []content.Award                `json:"items"`
	State    carousel.State                 `json:"state"`
	PrevPage int                            `json:"prev_page"`
	NextPage int                            `json:"next_page"`
	Pages    []carousel.Page[content.Award] `json:"pages"`
}

// ShowcaseService serves the awards carousel from the static catalog.
type ShowcaseService struct {
	catalog      *content.Catalog
	breakpoints  carousel.Breakpoints
	period       time.Duration
	defaultWidth int
	mobileWidth  int
}

// NewShowcaseService creates the showcase service. A nil cfg uses the
// standard breakpoints and a 5s period.
func NewShowcaseService(catalog *content.Catalog, cfg *config.Carousel) *ShowcaseService {
	s := &ShowcaseService{
		catalog:      catalog,
		breakpoints:  carousel.DefaultBreakpoints(),
		period:       carousel.DefaultPeriod,
		defaultWidth: 1280,
		mobileWidth:  375,
	}
	if cfg != nil {
		if cfg.NarrowWidth > 0 && cfg.MediumWidth > cfg.NarrowWidth {
			s.breakpoints = carousel.Breakpoints{Narrow: cfg.NarrowWidth, Medium: cfg.MediumWidth}
		}
		if cfg.Period > 0 {
			s.period = cfg.Period
		}
		if cfg.DefaultWidth > 0 {
			s.defaultWidth = cfg.DefaultWidth
		}
		if cfg.MobileWidth > 0 {
			s.mobileWidth = cfg.MobileWidth
		}
	}
	return s
}

// Catalog returns the static content.
func (s *ShowcaseService) Catalog() *content.Catalog {
	return s.catalog
}

// Period returns the auto-advance interval.
func (s *ShowcaseService) Period() time.Duration {
	return s.period
}

// ResolveWidth picks the viewport width for a request: the width the
// client sent, else a phone width for mobile user agents, else a desktop
// width.
func (s *ShowcaseService) ResolveWidth(requested int, userAgent string) int {
	switch {
	case requested > 0:
		return requested
	case ctxutil.IsMobileUserAgent(userAgent):
		return s.mobileWidth
	default:
		return s.defaultWidth
	}
}

// TitleSchedules returns the typewriter reveal offsets, in milliseconds, of
// every video section title keyed by section id. seed drives the randomized
// pacing.
func (s *ShowcaseService) TitleSchedules(seed uint64) map[string][]int64 {
	out := make(map[string][]int64, len(s.catalog.VideoSections))
	for i, v := range s.catalog.VideoSections {
		offsets := content.NewTypewriter(v.Animation, seed+uint64(i)).Schedule(v.Title)
		ms := make([]int64, len(offsets))
		for j, d := range offsets {
			ms[j] = d.Milliseconds()
		}
		out[v.ID] = ms
	}
	return out
}

// Pages partitions the variant's awards for width.
func (s *ShowcaseService) Pages(variant content.Variant, width int) []carousel.Page[content.Award] {
	return carousel.Partition(s.catalog.AwardsFor(variant), s.breakpoints.PageSize(width))
}

// View positions a carousel on page, then applies action. Out of range
// pages clamp; next and previous clamp at the ends.
func (s *ShowcaseService) View(variant content.Variant, width, page int, action string) *AwardsView {
	pages := s.Pages(variant, width)
	ctrl := carousel.NewController(len(pages))
	ctrl.GoTo(page)

	switch action {
	case ActionNext:
		ctrl.Next()
	case ActionPrevious:
		ctrl.Previous()
	}
	return s.view(variant, width, pages, ctrl.Snapshot())
}

// NewStream returns a stopped auto-advancer over the variant's pages for
// width, positioned on page. onAdvance receives each new state.
func (s *ShowcaseService) NewStream(variant content.Variant, width, page int, onAdvance func(carousel.State)) *carousel.AutoAdvancer {
	ctrl := carousel.NewController(len(s.Pages(variant, width)))
	ctrl.GoTo(page)
	return carousel.NewAutoAdvancer(ctrl, s.period, carousel.WithOnAdvance(onAdvance))
}

// Resize repartitions the advancer's pages for a new width. A running
// timer is cancelled and rescheduled and the current page clamps into the
// new range.
func (s *ShowcaseService) Resize(aa *carousel.AutoAdvancer, variant content.Variant, width int) *AwardsView {
	pages := s.Pages(variant, width)
	aa.Reset(len(pages))
	return s.view(variant, width, pages, aa.Controller().Snapshot())
}

func (s *ShowcaseService) view(variant content.Variant, width int, pages []carousel.Page[content.Award], state carousel.State) *AwardsView {
	v := &AwardsView{
		Variant:  variant,
		Width:    width,
		PageSize: s.breakpoints.PageSize(width),
		Items:    []content.Award{},
		State:    state,
		PrevPage: max(state.Current-1, 0),
		NextPage: state.Current,
		Pages:    pages,
	}
	if state.CanNext {
		v.NextPage = state.Current + 1
	}
	if len(pages) > 0 {
		v.Items = pages[state.Current].Items
	}
	return v
}
