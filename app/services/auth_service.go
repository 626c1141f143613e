package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/eduportal/app/models"
	"github.com/shashiranjanraj/eduportal/app/repositories"
	"github.com/shashiranjanraj/eduportal/pkg/apperr"
	"github.com/shashiranjanraj/eduportal/pkg/auth"
	"github.com/shashiranjanraj/eduportal/pkg/logger"
	"github.com/shashiranjanraj/eduportal/pkg/metrics"
)

// SignupInput is the POST /signup body.
type SignupInput struct {
	Fullname             string `json:"fullname" validate:"required"`
	Username             string `json:"username" validate:"required"`
	Password             string `json:"password" validate:"required"`
	PasswordConfirmation string `json:"passwordConfirmation"`
	Role                 string `json:"role"`
}

// Credentials is the body of both login routes.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminAccount is the single configured admin. PasswordHash (bcrypt) wins
// over Password when both are set.
type AdminAccount struct {
	Username     string
	Password     string
	PasswordHash string
}

// SignupResult is what POST /signup echoes back.
type SignupResult struct {
	Role     string
	Username string
	Approved bool
}

// AdminSession is returned by a successful admin login.
type AdminSession struct {
	Username  string
	SessionID string
}

type AuthService struct {
	users  repositories.UserRepository
	hasher *auth.Hasher
	tokens *auth.Issuer
	admin  AdminAccount
}

func NewAuthService(users repositories.UserRepository, hasher *auth.Hasher, tokens *auth.Issuer, admin AdminAccount) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, admin: admin}
}

// Signup registers an account. Students start unapproved; lecturers and
// admins are approved immediately.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (SignupResult, error) {
	_, err := s.users.FindByUsername(ctx, in.Username)
	switch {
	case err == nil:
		return SignupResult{}, apperr.ErrUsernameTaken
	case !errors.Is(err, repositories.ErrNotFound):
		return SignupResult{}, err
	}

	if !models.ValidRole(in.Role) {
		return SignupResult{}, apperr.ErrInvalidRole
	}
	if in.Password != in.PasswordConfirmation {
		return SignupResult{}, apperr.ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return SignupResult{}, err
	}

	user := &models.User{
		Fullname:     in.Fullname,
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		Approved:     in.Role != models.RoleStudent,
	}

	// The unique index catches a concurrent signup that passed the lookup above.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return SignupResult{}, apperr.ErrUsernameTaken
		}
		return SignupResult{}, err
	}

	metrics.SignupsTotal.WithLabelValues(user.Role).Inc()
	logger.WithCtx(ctx).Info("account created", "username", user.Username, "role", user.Role)

	return SignupResult{Role: user.Role, Username: user.Username, Approved: user.Approved}, nil
}

// Login checks credentials of an approved account. An unapproved account is
// rejected before its password is compared.
func (s *AuthService) Login(ctx context.Context, in Credentials) (models.User, error) {
	user, err := s.users.FindByUsername(ctx, in.Username)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.User{}, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}

	if !user.Approved {
		return models.User{}, apperr.ErrNotApproved
	}
	if !s.hasher.Check(user.PasswordHash, in.Password) {
		return models.User{}, apperr.ErrInvalidCredentials
	}
	return user, nil
}

// AdminLogin checks in against the configured admin account and issues a
// signed session token.
func (s *AuthService) AdminLogin(ctx context.Context, in Credentials) (AdminSession, error) {
	if !s.adminMatches(in) {
		logger.WithCtx(ctx).Warn("admin login rejected", "username", in.Username)
		return AdminSession{}, apperr.ErrInvalidAdmin
	}

	token, err := s.tokens.Issue(s.admin.Username, models.RoleAdmin)
	if err != nil {
		return AdminSession{}, err
	}
	return AdminSession{Username: s.admin.Username, SessionID: token}, nil
}

func (s *AuthService) adminMatches(in Credentials) bool {
	if s.admin.Username == "" || !auth.EqualConstantTime(in.Username, s.admin.Username) {
		return false
	}
	switch {
	case s.admin.PasswordHash != "":
		return s.hasher.Check(s.admin.PasswordHash, in.Password)
	case s.admin.Password != "":
		return auth.EqualConstantTime(in.Password, s.admin.Password)
	default:
		return false
	}
}
