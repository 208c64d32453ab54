package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lapisvisuals/lapis/data/repository"
	"github.com/lapisvisuals/lapis/logging/logger"
	"github.com/lapisvisuals/lapis/net/resp"
	"github.com/lapisvisuals/lapis/structs"
	"github.com/lapisvisuals/lapis/validation/validator"
	"github.com/sirupsen/logrus"
)

// CompanyService manages blast recipients.
type CompanyService struct {
	companies repository.CompanyRepository
	log       *logger.Logger
}

// NewCompanyService creates the company service.
func NewCompanyService(companies repository.CompanyRepository, log *logger.Logger) *CompanyService {
	return &CompanyService{companies: companies, log: log}
}

// List returns every company ordered by name.
func (s *CompanyService) List(ctx context.Context) ([]*structs.Company, error) {
	return s.companies.ListOrderedByName(ctx)
}

// Create validates and stores a company. Emails are unique ignoring case.
func (s *CompanyService) Create(ctx context.Context, body *structs.CompanyBody) (*structs.Company, error) {
	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.TrimSpace(body.Email)

	if errs := validator.Validate(body); !errs.Empty() {
		if errs.HasTag("required") {
			return nil, resp.MissingFields("Missing required fields", errs.Messages)
		}
		if errs.HasTag("address") {
			return nil, resp.InvalidEmail("Invalid email format", errs.Messages)
		}
		return nil, resp.BadRequest("Invalid company", errs.Messages)
	}

	c := &structs.Company{Name: body.Name, Email: body.Email}
	if err := s.companies.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, resp.Conflict("A company with this email already exists")
		}
		return nil, err
	}
	s.log.WithFieldsCtx(ctx, logrus.Fields{"company_id": c.ID}).Info("company added")
	return c, nil
}

// Count returns the number of companies.
func (s *CompanyService) Count(ctx context.Context) (int, error) {
	return s.companies.Count(ctx)
}
