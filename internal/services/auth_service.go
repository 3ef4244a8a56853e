package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"cafepos/internal/domain"
	"cafepos/internal/repos"
	"cafepos/internal/validate"
)

type AuthService struct {
	Users *repos.UserRepo
}

// Authenticate checks credentials without binding a session id.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.Session, error) {
	u, err := s.Users.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repos.ErrUserNotFound) {
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, domain.ErrBadCredentials
	}
	return &domain.Session{User: u}, nil
}

func (s *AuthService) Login(ctx context.Context, sid, username, password string) (*domain.Session, error) {
	sess, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := s.Users.BindSession(ctx, sid, sess.User.ID); err != nil {
		return nil, err
	}
	sess.ID = sid
	return sess, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.Users.UnbindSession(ctx, sid)
}

func (s *AuthService) CurrentSession(ctx context.Context, sid string) (*domain.Session, error) {
	u, err := s.Users.SessionUser(ctx, sid)
	if err != nil {
		if errors.Is(err, repos.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	return &domain.Session{ID: sid, User: u}, nil
}

// CreateUser hashes the password with bcrypt and stores a new user.
func (s *AuthService) CreateUser(ctx context.Context, username, name, password string, role domain.Role) (*domain.User, error) {
	username, ok := validate.Username(username)
	if !ok {
		return nil, domain.NewValidationError("username", "3-32 letters, digits, dot, dash or underscore", username)
	}
	if name == "" {
		name = username
	}
	if !validate.StrongPassword(password) {
		return nil, domain.NewValidationError("password", "8-72 chars with lower, upper, digit and symbol", "***")
	}
	role, ok = domain.ParseRole(string(role))
	if !ok {
		return nil, domain.NewValidationError("role", "must be ADMIN or VENDEDOR", role)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.Users.Create(ctx, username, name, string(h), role)
}
