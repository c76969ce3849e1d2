package prescriptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pharmaware/pharmacare/pkg/db"
	"github.com/pharmaware/pharmacare/pkg/db/models"
	pkgerrors "github.com/pharmaware/pharmacare/pkg/errors"
	"gorm.io/gorm"
)

type customerSource interface {
	FindByID(ctx context.Context, id int64) (*models.Customer, error)
}

// CreatePrescriptionInput captures a doctor's script for a customer.
type CreatePrescriptionInput struct {
	CustomerID       int64  `validate:"required,gt=0"`
	DoctorName       string `validate:"required,max=128"`
	RxNumber         string
	PrescriptionDate time.Time
	Notes            string
}

// Service exposes prescription operations.
type Service struct {
	repo      Repository
	customers customerSource
	validate  *validator.Validate
}

func NewService(repo Repository, customers customerSource) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("prescriptions repository required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customers source required")
	}
	return &Service{
		repo:      repo,
		customers: customers,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// Create records a prescription. The customer must exist; a zero date
// defaults to now.
func (s *Service) Create(ctx context.Context, input CreatePrescriptionInput) (*models.Prescription, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid prescription input")
	}
	if _, err := s.customers.FindByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeReferential,
				fmt.Sprintf("customer %d does not exist", input.CustomerID))
		}
		return nil, db.Translate(err, "check customer")
	}

	date := input.PrescriptionDate
	if date.IsZero() {
		date = time.Now().UTC()
	}
	prescription := &models.Prescription{
		CustomerID:       input.CustomerID,
		DoctorName:       strings.TrimSpace(input.DoctorName),
		RxNumber:         optional(input.RxNumber),
		PrescriptionDate: date,
		Notes:            optional(input.Notes),
	}
	if err := s.repo.Create(ctx, prescription); err != nil {
		return nil, db.Translate(err, "create prescription")
	}
	return prescription, nil
}

// AttachSale links a prescription to the sale that dispensed it.
func (s *Service) AttachSale(ctx context.Context, id, saleID int64) error {
	found, err := s.repo.AttachSale(ctx, id, saleID)
	if err != nil {
		return db.Translate(err, "attach sale to prescription")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("prescription %d not found", id))
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*models.Prescription, error) {
	prescription, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, db.Translate(err, "load prescription")
	}
	return prescription, nil
}

// ListByCustomer returns a customer's prescriptions, most recent first.
func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]models.Prescription, error) {
	prescriptions, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, db.Translate(err, "list prescriptions")
	}
	return prescriptions, nil
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
