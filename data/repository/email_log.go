package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lapisvisuals/lapis/data"
	"github.com/lapisvisuals/lapis/structs"
)

// EmailLogRepository records send attempts.
type EmailLogRepository interface {
	Create(ctx context.Context, l *structs.EmailLog) error
	CountSentSince(ctx context.Context, since time.Time) (int, error)
	CountRecipients(ctx context.Context) (int, error)
}

type emailLogRepository struct {
	db *sql.DB
}

// NewEmailLogRepository returns an EmailLogRepository backed by db.
func NewEmailLogRepository(db *sql.DB) EmailLogRepository {
	return &emailLogRepository{db: db}
}

func (r *emailLogRepository) Create(ctx context.Context, l *structs.EmailLog) error {
	if l.SentAt.IsZero() {
		l.SentAt = time.Now()
	}
	l.SentAt = l.SentAt.UTC()

	res, err := data.Conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO email_logs (message_id, recipient, subject, sender_name, status, error, sent_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, l.MessageID, l.Recipient, l.Subject, l.SenderName, string(l.Status), l.Error, formatTime(l.SentAt))
	if err != nil {
		return mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = id
	return nil
}

// CountSentSince counts successful sends at or after since.
func (r *emailLogRepository) CountSentSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := data.Conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT COUNT(*) FROM email_logs WHERE status = ? AND sent_at >= ?
	`, string(structs.EmailSent), formatTime(since)).Scan(&n)
	return n, err
}

// CountRecipients counts distinct addresses ever sent to successfully.
func (r *emailLogRepository) CountRecipients(ctx context.Context) (int, error) {
	var n int
	err := data.Conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT lower(recipient)) FROM email_logs WHERE status = ?
	`, string(structs.EmailSent)).Scan(&n)
	return n, err
}
