package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lapisvisuals/lapis/data"
	"github.com/lapisvisuals/lapis/structs"
)

// CompanyRepository stores blast recipients.
type CompanyRepository interface {
	Create(ctx context.Context, c *structs.Company) error
	ListOrderedByName(ctx context.Context) ([]*structs.Company, error)
	Count(ctx context.Context) (int, error)
	FindByEmail(ctx context.Context, email string) (*structs.Company, error)
}

type companyRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewCompanyRepository returns a CompanyRepository backed by db.
func NewCompanyRepository(db *sql.DB) CompanyRepository {
	return &companyRepository{db: db, now: time.Now}
}

// Create inserts c and sets its id. A second company with the same email
// (case-insensitive) fails with ErrDuplicate.
func (r *companyRepository) Create(ctx context.Context, c *structs.Company) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.now()
	}
	c.CreatedAt = c.CreatedAt.UTC()

	res, err := data.Conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO companies (name, email, created_at) VALUES (?, ?, ?)
	`, c.Name, c.Email, formatTime(c.CreatedAt))
	if err != nil {
		return mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// ListOrderedByName returns every company sorted by name.
func (r *companyRepository) ListOrderedByName(ctx context.Context) ([]*structs.Company, error) {
	rows, err := data.Conn(ctx, r.db).QueryContext(ctx, `
		SELECT id, name, email, created_at FROM companies
		ORDER BY name COLLATE NOCASE, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*structs.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Count returns the number of companies.
func (r *companyRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := data.Conn(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM companies`).Scan(&n)
	return n, err
}

// FindByEmail looks a company up by address, ignoring case.
func (r *companyRepository) FindByEmail(ctx context.Context, email string) (*structs.Company, error) {
	row := data.Conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, name, email, created_at FROM companies WHERE email = ? COLLATE NOCASE
	`, strings.TrimSpace(email))
	return scanCompany(row)
}

func scanCompany(s scanner) (*structs.Company, error) {
	var createdAt string
	c := &structs.Company{}
	if err := s.Scan(&c.ID, &c.Name, &c.Email, &createdAt); err != nil {
		return nil, mapErr(err)
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = t
	return c, nil
}
