package prescriptions

import (
	"context"

	"github.com/pharmaware/pharmacare/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists prescription records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, prescription *models.Prescription) error
	FindByID(ctx context.Context, id int64) (*models.Prescription, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]models.Prescription, error)
	AttachSale(ctx context.Context, id, saleID int64) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, prescription *models.Prescription) error {
	return r.db.WithContext(ctx).Create(prescription).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Prescription, error) {
	var prescription models.Prescription
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&prescription, id).Error
	if err != nil {
		return nil, err
	}
	return &prescription, nil
}

func (r *repository) ListByCustomer(ctx context.Context, customerID int64) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("prescription_date DESC, id DESC").
		Find(&prescriptions).Error
	return prescriptions, err
}

func (r *repository) AttachSale(ctx context.Context, id, saleID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Prescription{}).
		Where("id = ?", id).
		Update("sale_id", saleID)
	return res.RowsAffected > 0, res.Error
}
