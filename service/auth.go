package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lapisvisuals/lapis/config"
	"github.com/lapisvisuals/lapis/crypto"
	"github.com/lapisvisuals/lapis/data/repository"
	"github.com/lapisvisuals/lapis/logging/logger"
	"github.com/lapisvisuals/lapis/net/resp"
	securityjwt "github.com/lapisvisuals/lapis/security/jwt"
	"github.com/lapisvisuals/lapis/structs"
	"github.com/sirupsen/logrus"
)

// ErrNoAdminPassword is returned when a bootstrap admin has no password.
var ErrNoAdminPassword = errors.New("bootstrap admin password is empty")

// LoginResult is a successful login.
type LoginResult struct {
	Admin   *structs.Admin
	Token   string
	Expires time.Time
}

// AuthService checks admin credentials and issues session tokens.
type AuthService struct {
	admins repository.AdminRepository
	tokens *securityjwt.TokenManager
	ttl    time.Duration
	cost   int
	tx     TxFunc
	log    *logger.Logger
}

// TxFunc runs fn inside one database transaction.
type TxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

// NewAuthService creates the auth service. cfg.JWT.Expire is in hours.
func NewAuthService(admins repository.AdminRepository, cfg *config.Auth, log *logger.Logger) *AuthService {
	var (
		secret string
		ttl    time.Duration
	)
	if cfg != nil && cfg.JWT != nil {
		secret = cfg.JWT.Secret
		ttl = time.Duration(cfg.JWT.Expire) * time.Hour
	}
	if ttl <= 0 {
		ttl = securityjwt.DefaultSessionExpire
	}
	return &AuthService{
		admins: admins,
		tokens: securityjwt.NewTokenManager(secret),
		ttl:    ttl,
		cost:   crypto.DefaultCost,
		log:    log,
	}
}

// HashPassword hashes password with bcrypt.
func (s *AuthService) HashPassword(ctx context.Context, password string) (string, error) {
	return crypto.HashPassword(ctx, password, s.cost)
}

// Login verifies the credentials and signs a session token.
func (s *AuthService) Login(ctx context.Context, body *structs.LoginBody) (*LoginResult, error) {
	username := strings.TrimSpace(body.Username)
	if username == "" || body.Password == "" {
		return nil, resp.MissingFields("Username and password are required")
	}

	admin, err := s.admins.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.WithFieldsCtx(ctx, logrus.Fields{"username": username}).Warn("login rejected: unknown user")
		return nil, resp.InvalidCredentials("invalid credentials")
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}

	if !crypto.ComparePassword(admin.PasswordHash, body.Password) {
		s.log.WithFieldsCtx(ctx, logrus.Fields{"username": username}).Warn("login rejected: wrong password")
		return nil, resp.InvalidCredentials("invalid credentials")
	}

	token, expires, err := s.tokens.GenerateSessionToken(uuid.NewString(), admin.ID, admin.Username, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}

	s.log.WithFieldsCtx(ctx, logrus.Fields{"admin_id": admin.ID, "username": admin.Username}).Info("admin logged in")
	return &LoginResult{Admin: admin, Token: token, Expires: expires}, nil
}

// Authenticate parses a session token.
func (s *AuthService) Authenticate(token string) (*securityjwt.Session, error) {
	if token == "" {
		return nil, securityjwt.ErrInvalidToken
	}
	return s.tokens.ParseSession(token)
}

// EnsureAdmin creates username with password unless it already exists.
// It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, errors.New("bootstrap admin username is empty")
	}
	created := false
	err := s.inTx(ctx, func(ctx context.Context) error {
		if _, err := s.admins.FindByUsername(ctx, username); err == nil {
			return nil
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if password == "" {
			return ErrNoAdminPassword
		}

		hash, err := s.HashPassword(ctx, password)
		if err != nil {
			return err
		}
		if err := s.admins.Create(ctx, &structs.Admin{Username: username, PasswordHash: hash}); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil
			}
			return err
		}
		created = true
		return nil
	})
	if err != nil || !created {
		return false, err
	}
	s.log.WithFieldsCtx(ctx, logrus.Fields{"username": username}).Info("admin account created")
	return true, nil
}

func (s *AuthService) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx(ctx, fn)
}

// HasAdmins reports whether any admin account exists.
func (s *AuthService) HasAdmins(ctx context.Context) (bool, error) {
	n, err := s.admins.Count(ctx)
	return n > 0, err
}
