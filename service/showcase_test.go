package service

import (
	"context"
	"testing"
	"time"

	"github.com/lapisvisuals/lapis/carousel"
	"github.com/lapisvisuals/lapis/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWidth(t *testing.T) {
	s := NewShowcaseService(content.MustLoad(), testConfig().Carousel)

	assert.Equal(t, 800, s.ResolveWidth(800, "iPhone"))
	assert.Equal(t, 375, s.ResolveWidth(0, "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile"))
	assert.Equal(t, 1280, s.ResolveWidth(0, "Mozilla/5.0 (X11; Linux x86_64)"))
}

func TestViewTwentyAwardsDesktop(t *testing.T) {
	s := NewShowcaseService(content.MustLoad(), nil)

	v := s.View(content.VariantAwards, 1440, 0, "")
	assert.Equal(t, 3, v.PageSize)
	assert.Len(t, v.Pages, 7)
	assert.Len(t, v.Items, 3)
	assert.False(t, v.State.CanPrevious)
	assert.Equal(t, 1, v.NextPage)

	last := s.View(content.VariantAwards, 1440, 6, ActionNext)
	assert.Equal(t, 6, last.State.Current)
	assert.False(t, last.State.CanNext)
	assert.Len(t, last.Items, 2)
	assert.Equal(t, 6, last.NextPage)
	assert.Equal(t, 5, last.PrevPage)
}

func TestViewClampsAndNavigates(t *testing.T) {
	s := NewShowcaseService(content.MustLoad(), nil)

	v := s.View(content.VariantHomepage, 375, 99, "")
	assert.Equal(t, 5, v.State.Current)
	assert.Equal(t, 6, v.State.Total)

	v = s.View(content.VariantHomepage, 375, 0, ActionPrevious)
	assert.Equal(t, 0, v.State.Current)

	v = s.View(content.VariantHomepage, 800, 1, ActionNext)
	assert.Equal(t, 2, v.State.Current)
	assert.Equal(t, 3, v.State.Total)
}

func TestViewEmptyCatalog(t *testing.T) {
	s := NewShowcaseService(&content.Catalog{}, nil)

	v := s.View(content.VariantAwards, 1440, 3, ActionNext)
	assert.Equal(t, carousel.State{}, v.State)
	assert.NotNil(t, v.Items)
	assert.Empty(t, v.Items)
}

func TestNewStreamWrapsAround(t *testing.T) {
	cfg := testConfig().Carousel
	cfg.Period = 2 * time.Millisecond
	s := NewShowcaseService(content.MustLoad(), cfg)

	states := make(chan carousel.State, 16)
	aa := s.NewStream(content.VariantHomepage, 1440, 0, func(st carousel.State) {
		select {
		case states <- st:
		default:
		}
	})
	require.Equal(t, 2, aa.Controller().Total())
	assert.Equal(t, 2*time.Millisecond, aa.Period())

	aa.Start(context.Background())
	defer aa.Stop()

	first := <-states
	second := <-states
	assert.Equal(t, 1, first.Current)
	assert.Equal(t, 0, second.Current)
}

func TestNewStreamStartsOnPage(t *testing.T) {
	s := NewShowcaseService(content.MustLoad(), nil)

	aa := s.NewStream(content.VariantAwards, 1440, 4, nil)
	assert.Equal(t, carousel.State{Current: 4, Total: 7, CanPrevious: true, CanNext: true}, aa.Controller().Snapshot())

	aa = s.NewStream(content.VariantAwards, 1440, 40, nil)
	assert.Equal(t, 6, aa.Controller().Current())
}

func TestResizeRepartitionsAndReschedules(t *testing.T) {
	cfg := testConfig().Carousel
	cfg.Period = 2 * time.Millisecond
	s := NewShowcaseService(content.MustLoad(), cfg)

	states := make(chan carousel.State, 64)
	aa := s.NewStream(content.VariantAwards, 375, 19, func(st carousel.State) {
		select {
		case states <- st:
		default:
		}
	})
	require.Equal(t, 20, aa.Controller().Total())

	aa.Start(context.Background())
	defer aa.Stop()
	<-states

	v := s.Resize(aa, content.VariantAwards, 1440)
	assert.Equal(t, 7, v.State.Total)
	assert.Len(t, v.Pages, 7)
	assert.Equal(t, 3, v.PageSize)
	assert.LessOrEqual(t, v.State.Current, 6)
	assert.True(t, aa.Running())

	// ticks from before the resize may still be buffered
	for len(states) > 0 {
		<-states
	}
	for i := 0; i < 3; i++ {
		st := <-states
		assert.Equal(t, 7, st.Total)
		assert.Less(t, st.Current, 7)
	}
}

func TestResizeStoppedStreamClamps(t *testing.T) {
	s := NewShowcaseService(content.MustLoad(), nil)

	aa := s.NewStream(content.VariantAwards, 375, 19, nil)
	v := s.Resize(aa, content.VariantAwards, 1440)
	assert.Equal(t, carousel.State{Current: 6, Total: 7, CanPrevious: true, CanNext: false}, v.State)
	assert.Len(t, v.Items, 2)
	assert.False(t, aa.Running())
}

func TestTitleSchedules(t *testing.T) {
	s := NewShowcaseService(content.MustLoad(), nil)
	sections := s.Catalog().VideoSections
	require.NotEmpty(t, sections)

	a := s.TitleSchedules(42)
	b := s.TitleSchedules(42)
	assert.Equal(t, a, b)

	for _, v := range sections {
		ms := a[v.ID]
		require.Len(t, ms, len([]rune(v.Title)), v.ID)
		for i := 1; i < len(ms); i++ {
			assert.GreaterOrEqual(t, ms[i], ms[i-1])
		}
	}
}
