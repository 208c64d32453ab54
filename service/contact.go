package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lapisvisuals/lapis/data/repository"
	"github.com/lapisvisuals/lapis/logging/logger"
	"github.com/lapisvisuals/lapis/net/resp"
	"github.com/lapisvisuals/lapis/paging"
	"github.com/lapisvisuals/lapis/structs"
	"github.com/lapisvisuals/lapis/validation/validator"
	"github.com/sirupsen/logrus"
)

// ContactService stores contact form submissions.
type ContactService struct {
	contacts repository.ContactRepository
	log      *logger.Logger
}

// NewContactService creates the contact service.
func NewContactService(contacts repository.ContactRepository, log *logger.Logger) *ContactService {
	return &ContactService{contacts: contacts, log: log}
}

// Submit validates and stores a contact message. Name and message are
// trimmed; the email is checked as sent, so surrounding spaces reject it.
func (s *ContactService) Submit(ctx context.Context, body *structs.ContactBody) (*structs.Contact, error) {
	body.Name = strings.TrimSpace(body.Name)
	body.Message = strings.TrimSpace(body.Message)

	if errs := validator.Validate(body); !errs.Empty() {
		if errs.HasTag("required") {
			return nil, resp.MissingFields("Missing required fields", errs.Messages)
		}
		return nil, resp.InvalidEmail("Invalid email format", errs.Messages)
	}

	c := &structs.Contact{Name: body.Name, Email: body.Email, Message: body.Message}
	if err := s.contacts.Create(ctx, c); err != nil {
		s.log.WithFieldsCtx(ctx, logrus.Fields{logrus.ErrorKey: err}).Error("failed to save contact")
		return nil, resp.DBQuery("Failed to save contact information")
	}

	s.log.WithFieldsCtx(ctx, logrus.Fields{"contact_id": c.ID}).Info("contact saved")
	return c, nil
}

// List pages through contacts, newest first.
func (s *ContactService) List(ctx context.Context, params paging.Params) (*paging.Result[*structs.Contact], error) {
	out, err := s.contacts.List(ctx, params)
	if errors.Is(err, paging.ErrInvalidCursor) {
		return nil, resp.BadRequest("invalid cursor")
	}
	return out, err
}
