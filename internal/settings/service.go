package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/pharmaware/pharmacare/pkg/db"
	"github.com/pharmaware/pharmacare/pkg/db/models"
	pkgerrors "github.com/pharmaware/pharmacare/pkg/errors"
)

// Patch carries the settings fields a caller may change. Nil fields are left
// untouched. The invoice counter is deliberately absent: it is owned by the
// sale-recording transaction.
type Patch struct {
	Name              *string
	Address           *string
	Phone             *string
	Email             *string
	GSTIN             *string
	DrugLicenseNo     *string
	StateCode         *string
	InvoicePrefix     *string
	LowStockThreshold *int64
	NearExpiryDays    *int64
}

// Service exposes the singleton settings record.
type Service struct {
	repo Repository
}

// NewService builds a settings service.
func NewService(repo Repository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &Service{repo: repo}, nil
}

// Load returns the one settings row.
func (s *Service) Load(ctx context.Context) (*models.PharmacySettings, error) {
	row, err := s.repo.Load(ctx)
	if err != nil {
		return nil, db.Translate(err, "load settings")
	}
	return row, nil
}

// Update applies the patch to the singleton row. There is no create path:
// the row is seeded by migration and its primary key is fixed at 1, so a
// second row can never come into existence through this service.
func (s *Service) Update(ctx context.Context, patch Patch) (*models.PharmacySettings, error) {
	updates := map[string]any{}

	setString := func(column string, value *string, allowEmpty bool) error {
		if value == nil {
			return nil
		}
		trimmed := strings.TrimSpace(*value)
		if !allowEmpty && trimmed == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, column+" cannot be blank")
		}
		updates[column] = trimmed
		return nil
	}

	if err := setString("name", patch.Name, false); err != nil {
		return nil, err
	}
	if err := setString("address", patch.Address, true); err != nil {
		return nil, err
	}
	if err := setString("phone", patch.Phone, true); err != nil {
		return nil, err
	}
	if err := setString("email", patch.Email, true); err != nil {
		return nil, err
	}
	if err := setString("gstin", patch.GSTIN, true); err != nil {
		return nil, err
	}
	if err := setString("drug_license_no", patch.DrugLicenseNo, true); err != nil {
		return nil, err
	}
	if err := setString("state_code", patch.StateCode, true); err != nil {
		return nil, err
	}
	if err := setString("invoice_prefix", patch.InvoicePrefix, false); err != nil {
		return nil, err
	}

	if patch.LowStockThreshold != nil {
		if *patch.LowStockThreshold < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "low stock threshold cannot be negative")
		}
		updates["low_stock_threshold"] = *patch.LowStockThreshold
	}
	if patch.NearExpiryDays != nil {
		if *patch.NearExpiryDays < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "near expiry days cannot be negative")
		}
		updates["near_expiry_days"] = *patch.NearExpiryDays
	}

	if err := s.repo.Update(ctx, updates); err != nil {
		return nil, db.Translate(err, "update settings")
	}
	return s.Load(ctx)
}
