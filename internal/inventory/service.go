package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pharmaware/pharmacare/pkg/db"
	"github.com/pharmaware/pharmacare/pkg/db/models"
	pkgerrors "github.com/pharmaware/pharmacare/pkg/errors"
	"gorm.io/gorm"
)

type medicineSource interface {
	FindMedicineByID(ctx context.Context, id int64) (*models.Medicine, error)
}

type settingsSource interface {
	Load(ctx context.Context) (*models.PharmacySettings, error)
}

// ReceiveBatchInput captures one incoming stock lot.
type ReceiveBatchInput struct {
	MedicineID        int64     `validate:"required,gt=0"`
	BatchNumber       string    `validate:"required,max=64"`
	ExpiryDate        time.Time `validate:"required"`
	CostPricePaise    int64
	MRPPaise          int64
	SellingPricePaise int64
	Quantity          int64
	ManufacturingDate *time.Time
}

// Service exposes stock operations.
type Service struct {
	repo     Repository
	catalog  medicineSource
	settings settingsSource
	validate *validator.Validate
}

func NewService(repo Repository, catalog medicineSource, settings settingsSource) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings source required")
	}
	return &Service{
		repo:     repo,
		catalog:  catalog,
		settings: settings,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// ReceiveBatch records an incoming lot after price and quantity checks.
// The target medicine must exist and be active.
func (s *Service) ReceiveBatch(ctx context.Context, input ReceiveBatchInput) (*models.Batch, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid batch input")
	}
	if input.MRPPaise <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mrp must be positive")
	}
	if input.SellingPricePaise <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "selling price must be positive")
	}
	if input.SellingPricePaise > input.MRPPaise {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "selling price cannot exceed mrp")
	}
	if input.CostPricePaise < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost price cannot be negative")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	medicine, err := s.catalog.FindMedicineByID(ctx, input.MedicineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeReferential,
				fmt.Sprintf("medicine %d does not exist", input.MedicineID))
		}
		return nil, db.Translate(err, "check medicine")
	}
	if !medicine.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("medicine %d is deactivated", input.MedicineID))
	}

	batch := &models.Batch{
		MedicineID:        input.MedicineID,
		BatchNumber:       input.BatchNumber,
		ExpiryDate:        input.ExpiryDate,
		CostPricePaise:    input.CostPricePaise,
		MRPPaise:          input.MRPPaise,
		SellingPricePaise: input.SellingPricePaise,
		Quantity:          input.Quantity,
		ManufacturingDate: input.ManufacturingDate,
	}
	if err := s.repo.Create(ctx, batch); err != nil {
		return nil, db.Translate(err, "create batch")
	}
	return s.GetBatch(ctx, batch.ID)
}

// AdjustQuantity applies a manual stock correction. Decrements that would
// take the batch below zero are rejected without touching the row.
func (s *Service) AdjustQuantity(ctx context.Context, batchID, delta int64) (*models.Batch, error) {
	if delta == 0 {
		return s.GetBatch(ctx, batchID)
	}
	if _, err := s.GetBatch(ctx, batchID); err != nil {
		return nil, err
	}

	applied, err := s.repo.AdjustQuantity(ctx, batchID, delta)
	if err != nil {
		return nil, db.Translate(err, "adjust batch quantity")
	}
	if !applied {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock,
			fmt.Sprintf("batch %d holds less than %d units", batchID, -delta))
	}
	return s.GetBatch(ctx, batchID)
}

// GetBatch loads one batch with its medicine.
func (s *Service) GetBatch(ctx context.Context, id int64) (*models.Batch, error) {
	batch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, db.Translate(err, "load batch")
	}
	return batch, nil
}

// ListBatches returns a medicine's batches, earliest expiry first.
func (s *Service) ListBatches(ctx context.Context, medicineID int64, inStockOnly bool) ([]models.Batch, error) {
	batches, err := s.repo.ListByMedicine(ctx, medicineID, inStockOnly)
	if err != nil {
		return nil, db.Translate(err, "list batches")
	}
	return batches, nil
}

// LowStock reports active medicines whose total on-hand quantity sits at
// or below their reorder level.
func (s *Service) LowStock(ctx context.Context) ([]LowStockRow, error) {
	rows, err := s.repo.LowStock(ctx)
	if err != nil {
		return nil, db.Translate(err, "low stock report")
	}
	return rows, nil
}

// NearExpiry reports in-stock batches expiring within the configured
// warning window.
func (s *Service) NearExpiry(ctx context.Context) ([]models.Batch, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	until := time.Now().UTC().AddDate(0, 0, int(settings.NearExpiryDays))
	batches, err := s.repo.NearExpiry(ctx, until)
	if err != nil {
		return nil, db.Translate(err, "near expiry report")
	}
	return batches, nil
}
