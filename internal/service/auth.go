package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/routr/backend/internal/domain"
	"github.com/routr/backend/internal/repo"
)

// minPasswordLen is the shortest password CreateUser accepts.
const minPasswordLen = 8

// Claims is the JWT payload issued at login.
type Claims struct {
	IsStaff bool `json:"staff,omitempty"`
	jwt.RegisteredClaims
}

// Session is a freshly issued token and the user it belongs to.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

// AuthService checks credentials and issues and verifies HS256 tokens.
type AuthService struct {
	users  repo.UserRepo
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthService constructs an AuthService. ttl defaults to 24h when not positive.
func NewAuthService(users repo.UserRepo, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{users: users, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Login verifies email and password and issues a token.
// Unknown emails and wrong passwords both return domain.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Session{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
		}
		return Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Session{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
	}

	now := s.now()
	expires := now.Add(s.ttl)
	claims := Claims{
		IsStaff: user.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, fmt.Errorf("service.AuthService.Login: sign token: %w", err)
	}
	return Session{Token: token, ExpiresAt: expires, User: user}, nil
}

// ParseToken verifies a token's signature and expiry and returns its claims.
// Any failure returns domain.ErrUnauthorized.
func (s *AuthService) ParseToken(token string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("service.AuthService.ParseToken: %w: %w", domain.ErrUnauthorized, err)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return Claims{}, fmt.Errorf("service.AuthService.ParseToken: %w: bad subject", domain.ErrUnauthorized)
	}
	return claims, nil
}

// CreateUser registers a login. Returns domain.ErrValidation for a malformed
// email or short password and domain.ErrConflict if the email is taken.
func (s *AuthService) CreateUser(ctx context.Context, email, password string, staff bool) (domain.User, error) {
	email = NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, "@") {
		return domain.User{}, fmt.Errorf("%w: email is not valid", domain.ErrValidation)
	}
	if len(password) < minPasswordLen {
		return domain.User{}, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.CreateUser: hash: %w", err)
	}
	user, err := s.users.Create(ctx, domain.User{Email: email, PasswordHash: string(hash), IsStaff: staff})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.CreateUser: %w", err)
	}
	return user, nil
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
