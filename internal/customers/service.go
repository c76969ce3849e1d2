package customers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pharmaware/pharmacare/pkg/db"
	"github.com/pharmaware/pharmacare/pkg/db/models"
	pkgerrors "github.com/pharmaware/pharmacare/pkg/errors"
)

// CreateCustomerInput captures a new buyer record.
type CreateCustomerInput struct {
	Name    string `validate:"required,max=128"`
	Phone   string `validate:"omitempty,max=20"`
	Email   string `validate:"omitempty,email"`
	Address string
}

// UpdateCustomerPatch carries optional field updates. Nil means untouched.
type UpdateCustomerPatch struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

// Service exposes customer operations.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

func (s *Service) Create(ctx context.Context, input CreateCustomerInput) (*models.Customer, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer input")
	}

	customer := &models.Customer{
		Name:    strings.TrimSpace(input.Name),
		Phone:   optional(input.Phone),
		Email:   optional(input.Email),
		Address: optional(input.Address),
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, db.Translate(err, "create customer")
	}
	return customer, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch UpdateCustomerPatch) (*models.Customer, error) {
	fields := map[string]any{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name cannot be blank")
		}
		fields["name"] = name
	}
	setOptional(fields, "phone", patch.Phone)
	setOptional(fields, "email", patch.Email)
	setOptional(fields, "address", patch.Address)
	if len(fields) == 0 {
		return s.GetByID(ctx, id)
	}
	fields["updated_at"] = time.Now().UTC()

	found, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, db.Translate(err, "update customer")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("customer %d not found", id))
	}
	return s.GetByID(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, db.Translate(err, "load customer")
	}
	return customer, nil
}

// Search matches customer name or phone number.
func (s *Service) Search(ctx context.Context, query string) ([]models.Customer, error) {
	customers, err := s.repo.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, db.Translate(err, "search customers")
	}
	return customers, nil
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func setOptional(fields map[string]any, column string, value *string) {
	if value == nil {
		return
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		fields[column] = nil
		return
	}
	fields[column] = trimmed
}
