package suppliers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pharmaware/pharmacare/pkg/db"
	"github.com/pharmaware/pharmacare/pkg/db/models"
	"github.com/pharmaware/pharmacare/pkg/enums"
	pkgerrors "github.com/pharmaware/pharmacare/pkg/errors"
	"gorm.io/gorm"
)

// CreateSupplierInput captures a new supplier.
type CreateSupplierInput struct {
	Name          string `validate:"required,max=128"`
	Phone         string `validate:"omitempty,max=20"`
	Email         string `validate:"omitempty,email"`
	Address       string
	GstIN         string `validate:"omitempty,max=15"`
	DrugLicenseNo string `validate:"omitempty,max=64"`
}

// RecordPaymentInput captures one settlement against a supplier.
type RecordPaymentInput struct {
	SupplierID  int64 `validate:"required,gt=0"`
	AmountPaise int64 `validate:"required,gt=0"`
	PaymentDate time.Time
	PaymentMode string `validate:"required"`
	Reference   string
	Notes       string
}

// Service exposes supplier operations.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("suppliers repository required")
	}
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

func (s *Service) Create(ctx context.Context, input CreateSupplierInput) (*models.Supplier, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid supplier input")
	}

	supplier := &models.Supplier{
		Name:          strings.TrimSpace(input.Name),
		Phone:         optional(input.Phone),
		Email:         optional(input.Email),
		Address:       optional(input.Address),
		GstIN:         optional(input.GstIN),
		DrugLicenseNo: optional(input.DrugLicenseNo),
	}
	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, db.Translate(err, "create supplier")
	}
	return supplier, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*models.Supplier, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, db.Translate(err, "load supplier")
	}
	return supplier, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]models.Supplier, error) {
	suppliers, err := s.repo.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, db.Translate(err, "search suppliers")
	}
	return suppliers, nil
}

// RecordPayment logs a settlement. The supplier must exist; a zero payment
// date defaults to now.
func (s *Service) RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.SupplierPayment, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment input")
	}
	mode, err := enums.ParsePaymentMode(input.PaymentMode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment mode")
	}
	if _, err := s.repo.FindByID(ctx, input.SupplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeReferential,
				fmt.Sprintf("supplier %d does not exist", input.SupplierID))
		}
		return nil, db.Translate(err, "check supplier")
	}

	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now().UTC()
	}
	payment := &models.SupplierPayment{
		SupplierID:  input.SupplierID,
		AmountPaise: input.AmountPaise,
		PaymentDate: paymentDate,
		PaymentMode: mode,
		Reference:   optional(input.Reference),
		Notes:       optional(input.Notes),
	}
	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		return nil, db.Translate(err, "record supplier payment")
	}
	return payment, nil
}

// ListPayments returns a supplier's payments, most recent first.
func (s *Service) ListPayments(ctx context.Context, supplierID int64) ([]models.SupplierPayment, error) {
	payments, err := s.repo.ListPayments(ctx, supplierID)
	if err != nil {
		return nil, db.Translate(err, "list supplier payments")
	}
	return payments, nil
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
