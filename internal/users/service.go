package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pharmaware/pharmacare/pkg/config"
	"github.com/pharmaware/pharmacare/pkg/db"
	"github.com/pharmaware/pharmacare/pkg/db/models"
	"github.com/pharmaware/pharmacare/pkg/enums"
	pkgerrors "github.com/pharmaware/pharmacare/pkg/errors"
	"github.com/pharmaware/pharmacare/pkg/security"
)

// CreateUserInput captures a new staff account.
type CreateUserInput struct {
	Username string `validate:"required,min=3,max=64"`
	Password string `validate:"required,min=6"`
	FullName string `validate:"required,max=128"`
	Role     string `validate:"required"`
}

// Service exposes staff-account operations.
type Service struct {
	repo        Repository
	passwordCfg config.PasswordConfig
	validate    *validator.Validate
}

// NewService builds a users service.
func NewService(repo Repository, passwordCfg config.PasswordConfig) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &Service{
		repo:        repo,
		passwordCfg: passwordCfg,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// Create registers a new account. Usernames are unique; duplicates surface
// as a uniqueness error without touching the table.
func (s *Service) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user input")
	}
	role, err := enums.ParseRole(input.Role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, db.Translate(err, "create user")
	}
	return user, nil
}

// Authenticate verifies the credentials of an active account.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid credentials")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "account is deactivated")
	}
	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid credentials")
	}
	return user, nil
}

// Deactivate soft-disables an account. Sales owned by the user stay intact.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.setActive(ctx, id, false)
}

// Activate re-enables a previously deactivated account.
func (s *Service) Activate(ctx context.Context, id int64) error {
	return s.setActive(ctx, id, true)
}

func (s *Service) setActive(ctx context.Context, id int64, active bool) error {
	found, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return db.Translate(err, "update user active flag")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("user %d not found", id))
	}
	return nil
}

// ChangePassword replaces the stored hash.
func (s *Service) ChangePassword(ctx context.Context, id int64, newPassword string) error {
	if len(newPassword) < 6 {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 6 characters")
	}
	hash, err := security.HashPassword(newPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	found, err := s.repo.UpdatePasswordHash(ctx, id, hash)
	if err != nil {
		return db.Translate(err, "update password")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("user %d not found", id))
	}
	return nil
}

// GetByID loads one account.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, db.Translate(err, "load user")
	}
	return user, nil
}

// List returns every account, active or not.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, db.Translate(err, "list users")
	}
	return users, nil
}
