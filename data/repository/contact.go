package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lapisvisuals/lapis/data"
	"github.com/lapisvisuals/lapis/paging"
	"github.com/lapisvisuals/lapis/structs"
)

// ContactRepository stores contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, c *structs.Contact) error
	List(ctx context.Context, params paging.Params) (*paging.Result[*structs.Contact], error)
	Count(ctx context.Context) (int, error)
}

type contactRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewContactRepository returns a ContactRepository backed by db.
func NewContactRepository(db *sql.DB) ContactRepository {
	return &contactRepository{db: db, now: time.Now}
}

// Create assigns an id and timestamp when missing and inserts the row.
func (r *contactRepository) Create(ctx context.Context, c *structs.Contact) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.now()
	}
	c.CreatedAt = c.CreatedAt.UTC()

	_, err := data.Conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO contacts (id, name, email, message, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Email, c.Message, formatTime(c.CreatedAt))
	return mapErr(err)
}

// List returns contacts newest first.
func (r *contactRepository) List(ctx context.Context, params paging.Params) (*paging.Result[*structs.Contact], error) {
	return paging.Paginate(params, func(cursor *paging.Cursor, limit int) ([]*structs.Contact, int, error) {
		total, err := r.Count(ctx)
		if err != nil {
			return nil, 0, err
		}
		items, err := r.listAfter(ctx, cursor, limit)
		return items, total, err
	}, func(c *structs.Contact) string {
		return paging.EncodeCursor(c.CreatedAt, c.ID)
	})
}

func (r *contactRepository) listAfter(ctx context.Context, cursor *paging.Cursor, limit int) ([]*structs.Contact, error) {
	q := data.Conn(ctx, r.db)

	var (
		rows *sql.Rows
		err  error
	)
	if cursor == nil {
		rows, err = q.QueryContext(ctx, `
			SELECT id, name, email, message, created_at FROM contacts
			ORDER BY created_at DESC, id DESC LIMIT ?
		`, limit)
	} else {
		at := formatTime(cursor.At)
		rows, err = q.QueryContext(ctx, `
			SELECT id, name, email, message, created_at FROM contacts
			WHERE created_at < ? OR (created_at = ? AND id < ?)
			ORDER BY created_at DESC, id DESC LIMIT ?
		`, at, at, cursor.ID, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*structs.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Count returns the number of stored contacts.
func (r *contactRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := data.Conn(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n)
	return n, err
}

func scanContact(s scanner) (*structs.Contact, error) {
	var createdAt string
	c := &structs.Contact{}
	if err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &createdAt); err != nil {
		return nil, mapErr(err)
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = t
	return c, nil
}
