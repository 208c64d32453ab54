package paging

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ErrInvalidCursor is returned for cursors this package did not produce.
var ErrInvalidCursor = errors.New("invalid cursor")

// Params holds the unified pagination parameters
type Params struct {
	Cursor string `json:"cursor" form:"cursor"`
	Limit  int    `json:"limit" form:"limit"`
}

// Result holds the pagination result
type Result[T any] struct {
	Items       []T    `json:"items"`
	Total       int    `json:"total"`
	NextCursor  string `json:"next,omitempty"`
	HasNextPage bool   `json:"has_next"`
}

// Cursor is a keyset position: the sort timestamp and the row id that
// breaks ties between equal timestamps.
type Cursor struct {
	At time.Time
	ID string
}

// NormalizeParams ensures that Limit is within an acceptable range
func NormalizeParams(params Params) Params {
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}
	if params.Limit > MaxLimit {
		params.Limit = MaxLimit
	}
	return params
}

// EncodeCursor encodes a keyset position to an opaque string
func EncodeCursor(at time.Time, id string) string {
	raw := at.UTC().Format(time.RFC3339Nano) + "|" + id
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor decodes a cursor string. An empty string yields nil.
func DecodeCursor(cursor string) (*Cursor, error) {
	if cursor == "" {
		return nil, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	at, id, ok := strings.Cut(string(b), "|")
	if !ok || id == "" {
		return nil, ErrInvalidCursor
	}
	t, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	return &Cursor{At: t, ID: id}, nil
}

// PagingFunc loads up to limit items after cursor (nil for the first page)
// and the total item count.
type PagingFunc[T any] func(cursor *Cursor, limit int) (items []T, total int, err error)

// Paginate fetches one extra row to learn whether another page exists and
// builds the next cursor from the last returned item with cursorOf.
func Paginate[T any](params Params, fn PagingFunc[T], cursorOf func(T) string) (*Result[T], error) {
	params = NormalizeParams(params)
	cursor, err := DecodeCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	items, total, err := fn(cursor, params.Limit+1)
	if err != nil {
		return nil, fmt.Errorf("pagination error: %w", err)
	}

	hasNextPage := false
	if len(items) > params.Limit {
		hasNextPage = true
		items = items[:params.Limit]
	}

	if items == nil {
		items = make([]T, 0)
	}

	result := &Result[T]{
		Items:       items,
		Total:       total,
		HasNextPage: hasNextPage,
	}
	if hasNextPage {
		result.NextCursor = cursorOf(items[len(items)-1])
	}
	return result, nil
}
