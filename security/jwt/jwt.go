package jwt

import (
	"fmt"
	"time"

	jwtstd "github.com/golang-jwt/jwt/v5"
)

// TokenError represents JWT token related errors
type TokenError string

func (e TokenError) Error() string {
	return string(e)
}

const (
	DefaultSessionExpire = time.Hour * 24

	ErrNeedTokenProvider = TokenError("cannot sign token without token provider")
	ErrInvalidToken      = TokenError("invalid token")
	ErrTokenParsing      = TokenError("token parsing error")

	sessionSubject = "admin_session"
)

// Session is the payload of an admin session token.
type Session struct {
	JTI      string
	AdminID  int64
	Username string
	Expires  time.Time
}

// TokenManager handles JWT token operations
type TokenManager struct {
	key string
	now func() time.Time
}

// NewTokenManager creates a new TokenManager instance
func NewTokenManager(key string) *TokenManager {
	return &TokenManager{key: key, now: time.Now}
}

// validateKey validates the token key
func (jtm *TokenManager) validateKey() error {
	if jtm.key == "" {
		return ErrNeedTokenProvider
	}
	return nil
}

// GenerateSessionToken signs an HS256 session token for an admin.
// A non-positive expiry uses DefaultSessionExpire.
func (jtm *TokenManager) GenerateSessionToken(jti string, adminID int64, username string, expiry time.Duration) (string, time.Time, error) {
	if err := jtm.validateKey(); err != nil {
		return "", time.Time{}, err
	}
	if expiry <= 0 {
		expiry = DefaultSessionExpire
	}
	now := jtm.now()
	exp := now.Add(expiry)

	claims := jwtstd.MapClaims{
		"jti": jti,
		"sub": sessionSubject,
		"iat": now.Unix(),
		"exp": exp.Unix(),
		"payload": map[string]any{
			"admin_id": adminID,
			"username": username,
		},
	}

	t := jwtstd.NewWithClaims(jwtstd.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(jtm.key))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ValidateToken validates a JWT token
func (jtm *TokenManager) ValidateToken(tokenString string) (*jwtstd.Token, error) {
	if err := jtm.validateKey(); err != nil {
		return nil, err
	}

	return jwtstd.Parse(tokenString, func(token *jwtstd.Token) (any, error) {
		if _, ok := token.Method.(*jwtstd.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(jtm.key), nil
	}, jwtstd.WithTimeFunc(jtm.now), jwtstd.WithExpirationRequired())
}

// DecodeToken decodes a JWT token into its claims
func (jtm *TokenManager) DecodeToken(tokenString string) (map[string]any, error) {
	token, err := jtm.ValidateToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenParsing, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwtstd.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseSession validates a session token and returns its payload.
func (jtm *TokenManager) ParseSession(tokenString string) (*Session, error) {
	claims, err := jtm.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}
	if sub, _ := claims["sub"].(string); sub != sessionSubject {
		return nil, ErrInvalidToken
	}
	payload, ok := claims["payload"].(map[string]any)
	if !ok {
		return nil, ErrInvalidToken
	}

	// json numbers decode as float64
	id, ok := payload["admin_id"].(float64)
	if !ok || id <= 0 {
		return nil, ErrInvalidToken
	}
	username, _ := payload["username"].(string)
	jti, _ := claims["jti"].(string)

	s := &Session{JTI: jti, AdminID: int64(id), Username: username}
	if exp, err := jwtstd.MapClaims(claims).GetExpirationTime(); err == nil && exp != nil {
		s.Expires = exp.Time
	}
	return s, nil
}
