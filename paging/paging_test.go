package paging

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID string
	At time.Time
}

func rows(n int) []row {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]row, n)
	for i := range out {
		// newest first, two rows per timestamp to exercise the tie breaker
		out[i] = row{ID: fmt.Sprintf("r%02d", i), At: base.Add(-time.Duration(i/2) * time.Minute)}
	}
	return out
}

func fetcher(all []row) PagingFunc[row] {
	return func(c *Cursor, limit int) ([]row, int, error) {
		start := 0
		if c != nil {
			for i, r := range all {
				if r.At.Equal(c.At) && r.ID == c.ID {
					start = i + 1
					break
				}
			}
		}
		end := min(start+limit, len(all))
		return all[start:end], len(all), nil
	}
}

func cursorOf(r row) string { return EncodeCursor(r.At, r.ID) }

func TestNormalizeParams(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeParams(Params{}).Limit)
	assert.Equal(t, MaxLimit, NormalizeParams(Params{Limit: 5000}).Limit)
	assert.Equal(t, 10, NormalizeParams(Params{Limit: 10}).Limit)
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2025, 3, 4, 5, 6, 7, 890, time.UTC)
	c, err := DecodeCursor(EncodeCursor(at, "abc|def"))
	require.NoError(t, err)
	assert.True(t, at.Equal(c.At))
	assert.Equal(t, "abc|def", c.ID)

	c, err = DecodeCursor("")
	require.NoError(t, err)
	assert.Nil(t, c)

	for _, bad := range []string{"!!!", "bm9waXBl"} {
		_, err = DecodeCursor(bad)
		assert.ErrorIs(t, err, ErrInvalidCursor, bad)
	}
}

func TestPaginateWalksAllPages(t *testing.T) {
	all := rows(7)
	var seen []string
	params := Params{Limit: 3}

	for pages := 0; pages < 10; pages++ {
		res, err := Paginate(params, fetcher(all), cursorOf)
		require.NoError(t, err)
		assert.Equal(t, 7, res.Total)
		for _, r := range res.Items {
			seen = append(seen, r.ID)
		}
		if !res.HasNextPage {
			assert.Empty(t, res.NextCursor)
			break
		}
		params.Cursor = res.NextCursor
	}

	assert.Equal(t, []string{"r00", "r01", "r02", "r03", "r04", "r05", "r06"}, seen)
}

func TestPaginateEmpty(t *testing.T) {
	res, err := Paginate(Params{}, fetcher(nil), cursorOf)
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.False(t, res.HasNextPage)
}

func TestPaginateErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := Paginate(Params{}, func(*Cursor, int) ([]row, int, error) { return nil, 0, boom }, cursorOf)
	assert.ErrorIs(t, err, boom)

	_, err = Paginate(Params{Cursor: "%%%"}, fetcher(nil), cursorOf)
	assert.ErrorIs(t, err, ErrInvalidCursor)
}
