// Package services composes repositories and infrastructure into the
// operations the presentation layer calls.
package services

import (
	"context"
	"time"

	"github.com/menumanagerpro/menumanager/app/models"
	"github.com/menumanagerpro/menumanager/app/repositories"
	"github.com/menumanagerpro/menumanager/pkg/auth"
	apperr "github.com/menumanagerpro/menumanager/pkg/errors"
	"github.com/menumanagerpro/menumanager/pkg/logger"
	"github.com/menumanagerpro/menumanager/pkg/metrics"
	"github.com/menumanagerpro/menumanager/pkg/rbac"
)

// ErrInvalidCredentials is returned by Verify for an unknown username and
// for a wrong password alike.
var ErrInvalidCredentials = apperr.New(apperr.CodeAuthentication, "invalid username or password")

// Identity is the outcome of a successful credential check.
type Identity struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// Session is a signed-in identity plus its token.
type Session struct {
	Identity  Identity  `json:"identity"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthService verifies credentials and issues session tokens.
type AuthService struct {
	users  *repositories.UserRepository
	hasher *auth.Hasher
	issuer *auth.Issuer

	dummy string
}

func NewAuthService(users *repositories.UserRepository, hasher *auth.Hasher, issuer *auth.Issuer) *AuthService {
	// Unknown usernames are compared against this hash so both failure
	// paths cost one bcrypt comparison.
	dummy, _ := hasher.Hash("menumanager-dummy-password")
	return &AuthService{users: users, hasher: hasher, issuer: issuer, dummy: dummy}
}

// Verify checks username and password against the stored hash.
func (s *AuthService) Verify(ctx context.Context, username, password string) (_ *Identity, err error) {
	defer func() { metrics.RecordAuth(err) }()

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	hash := s.dummy
	if user != nil {
		hash = user.Password
	}
	ok, cmpErr := s.hasher.Compare(hash, password)
	if cmpErr != nil {
		logger.Warn("stored password hash unreadable", "username", username, "error", cmpErr)
		return nil, ErrInvalidCredentials
	}
	if user == nil || !ok {
		logger.Info("credential check failed", "username", username)
		return nil, ErrInvalidCredentials
	}

	return &Identity{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// Login verifies the credentials and returns a signed session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	id, err := s.Verify(ctx, username, password)
	if err != nil {
		return nil, err
	}
	token, expires, err := s.issuer.Issue(id.ID, id.Username, string(id.Role))
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeAuthentication, err, "issue session token")
	}
	logger.Info("user signed in", "username", id.Username, "role", id.Role)
	return &Session{Identity: *id, Token: token, ExpiresAt: expires}, nil
}

// Authorize validates token and, when roles are given, requires the
// session's role to be one of them.
func (s *AuthService) Authorize(token string, roles ...models.Role) (*Identity, error) {
	if token == "" {
		return nil, apperr.New(apperr.CodeAuthentication, "no session token")
	}
	claims, err := s.issuer.Validate(token)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeAuthentication, err, "invalid or expired session token")
	}

	allowed := make([]string, len(roles))
	for i, r := range roles {
		allowed[i] = string(r)
	}
	if err := rbac.HasRole(claims.Role, allowed...); err != nil {
		return nil, err
	}
	return &Identity{ID: claims.UserID, Username: claims.Username, Role: models.Role(claims.Role)}, nil
}

// Hash returns a fresh salted hash of plain.
func (s *AuthService) Hash(plain string) (string, error) {
	return s.hasher.Hash(plain)
}
