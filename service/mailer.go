package service

import (
	"context"
	"strings"
	"time"

	"github.com/lapisvisuals/lapis/concurrency/worker"
	"github.com/lapisvisuals/lapis/config"
	"github.com/lapisvisuals/lapis/ctxutil"
	"github.com/lapisvisuals/lapis/data/repository"
	"github.com/lapisvisuals/lapis/logging/logger"
	"github.com/lapisvisuals/lapis/messaging/email"
	"github.com/lapisvisuals/lapis/net/resp"
	"github.com/lapisvisuals/lapis/structs"
	"github.com/lapisvisuals/lapis/validation/validator"
	"github.com/sirupsen/logrus"
)

// DefaultBlastTimeout bounds a whole blast once it has been accepted.
const DefaultBlastTimeout = 10 * time.Minute

const (
	msgSendMissing  = "Missing required fields: to, subject, content"
	msgBlastMissing = "Missing required fields: subject, content"
	msgInvalidEmail = "Invalid email address"
	msgSendFailed   = "Failed to send email. Please try again."
	msgNoRecipients = "No recipients to send to"
)

// MailerService composes and sends emails and records every attempt.
type MailerService struct {
	sender       email.Sender
	logs         repository.EmailLogRepository
	companies    repository.CompanyRepository
	pool         *worker.Pool
	senderName   string
	blastTimeout time.Duration
	now          func() time.Time
	log          *logger.Logger
}

// NewMailerService creates the mailer. pool runs blast fan-out.
func NewMailerService(
	sender email.Sender,
	logs repository.EmailLogRepository,
	companies repository.CompanyRepository,
	pool *worker.Pool,
	cfg *config.Email,
	log *logger.Logger,
) *MailerService {
	senderName := email.DefaultSenderName
	if cfg != nil && cfg.SenderName != "" {
		senderName = cfg.SenderName
	}
	return &MailerService{
		sender:       sender,
		logs:         logs,
		companies:    companies,
		pool:         pool,
		senderName:   senderName,
		blastTimeout: DefaultBlastTimeout,
		now:          time.Now,
		log:          log,
	}
}

// QueueMetrics returns the counters of the blast worker pool.
func (s *MailerService) QueueMetrics() map[string]int64 {
	if s.pool == nil {
		return nil
	}
	return s.pool.GetMetrics()
}

// Send delivers one email.
func (s *MailerService) Send(ctx context.Context, body *structs.SendEmailBody) (*structs.SentEmailInfo, error) {
	body.To = strings.TrimSpace(body.To)
	body.Subject = strings.TrimSpace(body.Subject)

	if errs := validator.Validate(body); !errs.Empty() {
		if errs.HasTag("required") {
			return nil, resp.MissingFields(msgSendMissing)
		}
		return nil, resp.InvalidEmail(msgInvalidEmail)
	}

	id, err := s.deliver(ctx, body.To, body.Subject, body.Content, body.SenderName)
	if err != nil {
		return nil, resp.SendFailed(msgSendFailed)
	}
	return &structs.SentEmailInfo{
		To:        body.To,
		Subject:   body.Subject,
		SentAt:    s.now().UTC(),
		MessageID: id,
	}, nil
}

// Preview renders the email body without sending it.
func (s *MailerService) Preview(body *structs.SendEmailBody) (*structs.PreviewReply, error) {
	if strings.TrimSpace(body.Content) == "" {
		return nil, resp.MissingFields("Missing required fields: content")
	}
	html, text, err := email.Render(body.Content)
	if err != nil {
		return nil, err
	}
	return &structs.PreviewReply{HTML: html, Text: text}, nil
}

// Blast sends one email to every listed recipient, or to every company
// when none are listed. Invalid addresses are reported without sending.
// The blast keeps running if the caller goes away.
func (s *MailerService) Blast(ctx context.Context, body *structs.BlastBody) (*structs.BlastReply, error) {
	body.Subject = strings.TrimSpace(body.Subject)
	if body.Subject == "" || strings.TrimSpace(body.Content) == "" {
		return nil, resp.MissingFields(msgBlastMissing)
	}

	recipients, err := s.recipients(ctx, body.Recipients)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, resp.BadRequest(msgNoRecipients)
	}

	bctx, cancel := ctxutil.WithAsyncContext(ctx, s.blastTimeout)
	defer cancel()

	results := make([]structs.BlastResult, len(recipients))
	batch := s.pool.NewBatch(bctx)
	for i, to := range recipients {
		results[i].To = to
		if !validator.IsEmail(to) {
			results[i].Error = msgInvalidEmail
			continue
		}
		batch.Go(func(ctx context.Context) {
			id, err := s.deliver(ctx, to, body.Subject, body.Content, body.SenderName)
			if err != nil {
				results[i].Error = msgSendFailed
				return
			}
			results[i].MessageID = id
		}, func(err error) {
			s.log.WithFieldsCtx(ctx, logrus.Fields{"to": to, logrus.ErrorKey: err}).Warn("blast send not queued")
			results[i].Error = msgSendFailed
		})
	}
	batch.Wait()

	reply := &structs.BlastReply{Total: len(results), Results: results}
	for _, r := range results {
		if r.Error == "" {
			reply.Sent++
		} else {
			reply.Failed++
		}
	}
	s.log.WithFieldsCtx(ctx, logrus.Fields{
		"total":  reply.Total,
		"sent":   reply.Sent,
		"failed": reply.Failed,
	}).Info("email blast finished")
	return reply, nil
}

// recipients trims and de-duplicates listed addresses, ignoring case.
// An empty list selects every company.
func (s *MailerService) recipients(ctx context.Context, listed []string) ([]string, error) {
	if len(listed) == 0 {
		companies, err := s.companies.ListOrderedByName(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range companies {
			listed = append(listed, c.Email)
		}
	}

	seen := make(map[string]struct{}, len(listed))
	out := make([]string, 0, len(listed))
	for _, to := range listed {
		to = strings.TrimSpace(to)
		key := strings.ToLower(to)
		if to == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, to)
	}
	return out, nil
}

// Stats feeds the blast dashboard. Open and click tracking do not exist,
// so those rates are always zero.
func (s *MailerService) Stats(ctx context.Context) (*structs.EmailStats, error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	sent, err := s.logs.CountSentSince(ctx, midnight)
	if err != nil {
		return nil, err
	}
	recipients, err := s.companies.Count(ctx)
	if err != nil {
		return nil, err
	}
	reached, err := s.logs.CountRecipients(ctx)
	if err != nil {
		return nil, err
	}
	return &structs.EmailStats{
		SentToday:         sent,
		TotalRecipients:   recipients,
		ReachedRecipients: reached,
	}, nil
}

// deliver composes, sends and records one email.
func (s *MailerService) deliver(ctx context.Context, to, subject, content, senderName string) (string, error) {
	if strings.TrimSpace(senderName) == "" {
		senderName = s.senderName
	}

	s.log.WithFieldsCtx(ctx, logrus.Fields{
		"to":             to,
		"subject":        subject,
		"sender_name":    senderName,
		"content_length": len(content),
		"provider":       s.sender.Name(),
	}).Info("email send attempt")

	msg, err := email.Compose(to, subject, content, senderName)
	if err != nil {
		return "", err
	}

	id, sendErr := s.sender.Send(ctx, msg)

	entry := &structs.EmailLog{
		MessageID:  id,
		Recipient:  to,
		Subject:    subject,
		SenderName: msg.SenderName,
		Status:     structs.EmailSent,
		SentAt:     s.now(),
	}
	if sendErr != nil {
		entry.Status = structs.EmailFailed
		entry.Error = sendErr.Error()
		s.log.WithFieldsCtx(ctx, logrus.Fields{"to": to, logrus.ErrorKey: sendErr}).Error("email send failed")
	}
	// the log row must survive a caller that has already gone away
	if err := s.logs.Create(context.WithoutCancel(ctx), entry); err != nil {
		s.log.WithFieldsCtx(ctx, logrus.Fields{logrus.ErrorKey: err}).Warn("failed to record email log")
	}
	return id, sendErr
}
