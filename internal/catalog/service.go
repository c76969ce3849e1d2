package catalog

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
	"github.com/pharmaware/pharmacare/pkg/logger"
	"gorm.io/gorm"
)

// CreateMedicineInput captures a new catalog entry.
type CreateMedicineInput struct {
	Name         string `validate:"required,max=256"`
	GenericName  string
	BrandName    string
	Manufacturer string
	DosageForm   string
	Strength     string
	Category     string
	HSNCode      string
	GstSlabID    int64 `validate:"required,gt=0"`
	ReorderLevel int64 `validate:"gte=0"`
}

// UpdateMedicinePatch carries optional field updates. Nil means untouched.
type UpdateMedicinePatch struct {
	Name         *string
	GenericName  *string
	BrandName    *string
	Manufacturer *string
	DosageForm   *string
	Strength     *string
	Category     *string
	HSNCode      *string
	GstSlabID    *int64
	ReorderLevel *int64
}

// Service exposes catalog operations.
type Service struct {
	repo     Repository
	logg     *logger.Logger
	validate *validator.Validate
}

func NewService(repo Repository, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &Service{
		repo:     repo,
		logg:     logg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// CreateMedicine inserts a catalog entry. The GST slab must already exist;
// a dangling slab id is rejected before anything is written.
func (s *Service) CreateMedicine(ctx context.Context, input CreateMedicineInput) (*models.Medicine, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid medicine input")
	}
	if _, err := s.repo.FindSlabByID(ctx, input.GstSlabID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeReferential,
				fmt.Sprintf("gst slab %d does not exist", input.GstSlabID))
		}
		return nil, db.Translate(err, "check gst slab")
	}

	medicine := &models.Medicine{
		Name:         strings.TrimSpace(input.Name),
		GenericName:  optional(input.GenericName),
		BrandName:    optional(input.BrandName),
		Manufacturer: optional(input.Manufacturer),
		DosageForm:   defaulted(input.DosageForm, "tablet"),
		Strength:     optional(input.Strength),
		Category:     optional(input.Category),
		HSNCode:      defaulted(input.HSNCode, "3004"),
		GstSlabID:    input.GstSlabID,
		ReorderLevel: input.ReorderLevel,
		IsActive:     true,
	}
	if medicine.ReorderLevel == 0 {
		medicine.ReorderLevel = 20
	}
	if err := s.repo.CreateMedicine(ctx, medicine); err != nil {
		return nil, db.Translate(err, "create medicine")
	}
	return s.GetMedicine(ctx, medicine.ID)
}

// UpdateMedicine applies a partial update and returns the refreshed row.
func (s *Service) UpdateMedicine(ctx context.Context, id int64, patch UpdateMedicinePatch) (*models.Medicine, error) {
	fields := map[string]any{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "medicine name cannot be blank")
		}
		fields["name"] = name
	}
	setOptional(fields, "generic_name", patch.GenericName)
	setOptional(fields, "brand_name", patch.BrandName)
	setOptional(fields, "manufacturer", patch.Manufacturer)
	setOptional(fields, "strength", patch.Strength)
	setOptional(fields, "category", patch.Category)
	if patch.DosageForm != nil {
		if strings.TrimSpace(*patch.DosageForm) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "dosage form cannot be blank")
		}
		fields["dosage_form"] = strings.TrimSpace(*patch.DosageForm)
	}
	if patch.HSNCode != nil {
		if strings.TrimSpace(*patch.HSNCode) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "hsn code cannot be blank")
		}
		fields["hsn_code"] = strings.TrimSpace(*patch.HSNCode)
	}
	if patch.GstSlabID != nil {
		if _, err := s.repo.FindSlabByID(ctx, *patch.GstSlabID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeReferential,
					fmt.Sprintf("gst slab %d does not exist", *patch.GstSlabID))
			}
			return nil, db.Translate(err, "check gst slab")
		}
		fields["gst_slab_id"] = *patch.GstSlabID
	}
	if patch.ReorderLevel != nil {
		if *patch.ReorderLevel < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "reorder level cannot be negative")
		}
		fields["reorder_level"] = *patch.ReorderLevel
	}
	if len(fields) == 0 {
		return s.GetMedicine(ctx, id)
	}
	fields["updated_at"] = time.Now().UTC()

	found, err := s.repo.UpdateMedicine(ctx, id, fields)
	if err != nil {
		return nil, db.Translate(err, "update medicine")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("medicine %d not found", id))
	}
	return s.GetMedicine(ctx, id)
}

// DeactivateMedicine hides an entry from active lookups. Existing batches
// and historical sale lines stay untouched.
func (s *Service) DeactivateMedicine(ctx context.Context, id int64) error {
	found, err := s.repo.UpdateMedicine(ctx, id, map[string]any{
		"is_active":  false,
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return db.Translate(err, "deactivate medicine")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("medicine %d not found", id))
	}
	return nil
}

// GetMedicine loads one catalog entry with its slab.
func (s *Service) GetMedicine(ctx context.Context, id int64) (*models.Medicine, error) {
	medicine, err := s.repo.FindMedicineByID(ctx, id)
	if err != nil {
		return nil, db.Translate(err, "load medicine")
	}
	return medicine, nil
}

// SearchMedicines matches name, generic name and brand name.
func (s *Service) SearchMedicines(ctx context.Context, query string, activeOnly bool) ([]models.Medicine, error) {
	medicines, err := s.repo.SearchMedicines(ctx, strings.TrimSpace(query), activeOnly)
	if err != nil {
		return nil, db.Translate(err, "search medicines")
	}
	return medicines, nil
}

// ListGstSlabs returns the seeded tax slabs ordered by rate.
func (s *Service) ListGstSlabs(ctx context.Context) ([]models.GstSlab, error) {
	slabs, err := s.repo.ListSlabs(ctx)
	if err != nil {
		return nil, db.Translate(err, "list gst slabs")
	}
	return slabs, nil
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func defaulted(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
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
