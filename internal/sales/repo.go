package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/pharmaware/pharmacare/pkg/db/models"
	pkgerrors "github.com/pharmaware/pharmacare/pkg/errors"
	"gorm.io/gorm"
)

// Repository persists sales and owns the invoice-number counter.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, sale *models.Sale) error
	FindByID(ctx context.Context, id int64) (*models.Sale, error)
	FindByInvoice(ctx context.Context, invoiceNumber string) (*models.Sale, error)
	List(ctx context.Context, from, to time.Time) ([]models.Sale, error)
	AllocateInvoiceNumber(ctx context.Context) (string, error)
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

// Create inserts the sale header and its line items in one go.
func (r *repository) Create(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Sale, error) {
	var sale models.Sale
	err := r.saleQuery(ctx).First(&sale, id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *repository) FindByInvoice(ctx context.Context, invoiceNumber string) (*models.Sale, error) {
	var sale models.Sale
	err := r.saleQuery(ctx).
		Where("invoice_number = ?", invoiceNumber).
		First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *repository) List(ctx context.Context, from, to time.Time) ([]models.Sale, error) {
	q := r.db.WithContext(ctx).Preload("Items")
	if !from.IsZero() {
		q = q.Where("sale_date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("sale_date < ?", to)
	}

	var sales []models.Sale
	err := q.Order("sale_date DESC, id DESC").Find(&sales).Error
	return sales, err
}

func (r *repository) saleQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Medicine").
		Preload("Items.Batch").
		Preload("Customer").
		Preload("User")
}

// AllocateInvoiceNumber reads the counter and advances it with a guarded
// update. The counter value in the WHERE clause makes a lost race visible
// as zero affected rows instead of a silently reused number.
func (r *repository) AllocateInvoiceNumber(ctx context.Context) (string, error) {
	var row models.PharmacySettings
	err := r.db.WithContext(ctx).
		Where("id = ?", models.SettingsID).
		First(&row).Error
	if err != nil {
		return "", err
	}

	res := r.db.WithContext(ctx).
		Model(&models.PharmacySettings{}).
		Where("id = ? AND next_invoice_number = ?", models.SettingsID, row.NextInvoiceNumber).
		Updates(map[string]any{
			"next_invoice_number": row.NextInvoiceNumber + 1,
			"updated_at":          time.Now().UTC(),
		})
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", pkgerrors.New(pkgerrors.CodeConcurrency, "invoice counter moved underneath this sale")
	}
	return fmt.Sprintf("%s-%06d", row.InvoicePrefix, row.NextInvoiceNumber), nil
}
