package suppliers

import (
	"context"

	"github.com/pharmaware/pharmacare/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists suppliers and their payment ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, supplier *models.Supplier) error
	FindByID(ctx context.Context, id int64) (*models.Supplier, error)
	Update(ctx context.Context, id int64, fields map[string]any) (bool, error)
	Search(ctx context.Context, query string) ([]models.Supplier, error)
	CreatePayment(ctx context.Context, payment *models.SupplierPayment) error
	ListPayments(ctx context.Context, supplierID int64) ([]models.SupplierPayment, error)
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

func (r *repository) Create(ctx context.Context, supplier *models.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *repository) Update(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Supplier{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) Search(ctx context.Context, query string) ([]models.Supplier, error) {
	q := r.db.WithContext(ctx)
	if query != "" {
		q = q.Where("name LIKE ?", "%"+query+"%")
	}

	var suppliers []models.Supplier
	err := q.Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *repository) CreatePayment(ctx context.Context, payment *models.SupplierPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) ListPayments(ctx context.Context, supplierID int64) ([]models.SupplierPayment, error) {
	var payments []models.SupplierPayment
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("payment_date DESC, id DESC").
		Find(&payments).Error
	return payments, err
}
