package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lapisvisuals/lapis/data"
	"github.com/lapisvisuals/lapis/structs"
)

// AdminRepository stores back-office accounts.
type AdminRepository interface {
	Create(ctx context.Context, a *structs.Admin) error
	FindByUsername(ctx context.Context, username string) (*structs.Admin, error)
	Count(ctx context.Context) (int, error)
}

type adminRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewAdminRepository returns an AdminRepository backed by db.
func NewAdminRepository(db *sql.DB) AdminRepository {
	return &adminRepository{db: db, now: time.Now}
}

func (r *adminRepository) Create(ctx context.Context, a *structs.Admin) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = r.now()
	}
	a.CreatedAt = a.CreatedAt.UTC()

	res, err := data.Conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO admins (username, password_hash, created_at) VALUES (?, ?, ?)
	`, a.Username, a.PasswordHash, formatTime(a.CreatedAt))
	if err != nil {
		return mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (r *adminRepository) FindByUsername(ctx context.Context, username string) (*structs.Admin, error) {
	var createdAt string
	a := &structs.Admin{}
	err := data.Conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at FROM admins WHERE username = ?
	`, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &createdAt)
	if err != nil {
		return nil, mapErr(err)
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *adminRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := data.Conn(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n)
	return n, err
}
