package settings

import (
	"context"

	"github.com/pharmaware/pharmacare/pkg/db/models"
	pkgerrors "github.com/pharmaware/pharmacare/pkg/errors"
	"gorm.io/gorm"
)

// Repository owns the singleton pharmacy_settings row.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Load(ctx context.Context) (*models.PharmacySettings, error)
	Update(ctx context.Context, updates map[string]any) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a settings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Load(ctx context.Context) (*models.PharmacySettings, error) {
	var row models.PharmacySettings
	err := r.db.WithContext(ctx).
		Where("id = ?", models.SettingsID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) Update(ctx context.Context, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.PharmacySettings{}).
		Where("id = ?", models.SettingsID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "settings row is missing; run migrations")
	}
	return nil
}
