// Package service implements the site's business logic on top of the
// repositories and providers.
package service

import (
	"github.com/lapisvisuals/lapis/concurrency/worker"
	"github.com/lapisvisuals/lapis/config"
	"github.com/lapisvisuals/lapis/content"
	"github.com/lapisvisuals/lapis/data"
	"github.com/lapisvisuals/lapis/data/repository"
	"github.com/lapisvisuals/lapis/logging/logger"
	"github.com/lapisvisuals/lapis/messaging/email"
)

// Service groups the services a handler needs.
type Service struct {
	Auth     *AuthService
	Contact  *ContactService
	Company  *CompanyService
	Mailer   *MailerService
	Showcase *ShowcaseService
}

// Deps are the collaborators New wires together.
type Deps struct {
	Config  *config.Config
	Data    *data.Data
	Catalog *content.Catalog
	Sender  email.Sender
	Pool    *worker.Pool
	Logger  *logger.Logger
}

// New builds every service from d.
func New(d Deps) *Service {
	db := d.Data.DB()
	log := d.Logger
	if log == nil {
		log = logger.StdLogger()
	}

	admins := repository.NewAdminRepository(db)
	contacts := repository.NewContactRepository(db)
	companies := repository.NewCompanyRepository(db)
	emailLogs := repository.NewEmailLogRepository(db)

	auth := NewAuthService(admins, d.Config.Auth, log)
	auth.tx = d.Data.WithTx

	return &Service{
		Auth:     auth,
		Contact:  NewContactService(contacts, log),
		Company:  NewCompanyService(companies, log),
		Mailer:   NewMailerService(d.Sender, emailLogs, companies, d.Pool, d.Config.Email, log),
		Showcase: NewShowcaseService(d.Catalog, d.Config.Carousel),
	}
}
