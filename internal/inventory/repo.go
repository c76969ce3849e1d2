package inventory

import (
	"context"
	"time"

	"github.com/pharmaware/pharmacare/pkg/db/models"
	"gorm.io/gorm"
)

// LowStockRow aggregates on-hand quantity per medicine against its
// reorder level.
type LowStockRow struct {
	MedicineID   int64  `gorm:"column:medicine_id"`
	MedicineName string `gorm:"column:medicine_name"`
	ReorderLevel int64  `gorm:"column:reorder_level"`
	TotalOnHand  int64  `gorm:"column:total_on_hand"`
}

// Repository persists stock batches.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, batch *models.Batch) error
	FindByID(ctx context.Context, id int64) (*models.Batch, error)
	ListByMedicine(ctx context.Context, medicineID int64, inStockOnly bool) ([]models.Batch, error)
	AdjustQuantity(ctx context.Context, id int64, delta int64) (bool, error)
	LowStock(ctx context.Context) ([]LowStockRow, error)
	NearExpiry(ctx context.Context, until time.Time) ([]models.Batch, error)
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

func (r *repository) Create(ctx context.Context, batch *models.Batch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Batch, error) {
	var batch models.Batch
	err := r.db.WithContext(ctx).
		Preload("Medicine").
		Preload("Medicine.GstSlab").
		First(&batch, id).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// ListByMedicine returns batches first-expiry-first so dispensing naturally
// drains the oldest stock.
func (r *repository) ListByMedicine(ctx context.Context, medicineID int64, inStockOnly bool) ([]models.Batch, error) {
	q := r.db.WithContext(ctx).Where("medicine_id = ?", medicineID)
	if inStockOnly {
		q = q.Where("quantity > 0")
	}

	var batches []models.Batch
	err := q.Order("expiry_date ASC, id ASC").Find(&batches).Error
	return batches, err
}

// AdjustQuantity applies a guarded delta. A decrement only lands when the
// batch still holds enough stock; the caller learns about a lost race from
// the false return.
func (r *repository) AdjustQuantity(ctx context.Context, id int64, delta int64) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Batch{}).
		Where("id = ?", id)
	if delta < 0 {
		q = q.Where("quantity >= ?", -delta)
	}
	res := q.Update("quantity", gorm.Expr("quantity + ?", delta))
	return res.RowsAffected > 0, res.Error
}

func (r *repository) LowStock(ctx context.Context) ([]LowStockRow, error) {
	var rows []LowStockRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT m.id AS medicine_id,
		       m.name AS medicine_name,
		       m.reorder_level AS reorder_level,
		       COALESCE(SUM(b.quantity), 0) AS total_on_hand
		FROM medicines m
		LEFT JOIN batches b ON b.medicine_id = m.id
		WHERE m.is_active = 1
		GROUP BY m.id, m.name, m.reorder_level
		HAVING COALESCE(SUM(b.quantity), 0) <= m.reorder_level
		ORDER BY total_on_hand ASC, m.name ASC`).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) NearExpiry(ctx context.Context, until time.Time) ([]models.Batch, error) {
	var batches []models.Batch
	err := r.db.WithContext(ctx).
		Preload("Medicine").
		Where("quantity > 0 AND expiry_date <= ?", until).
		Order("expiry_date ASC").
		Find(&batches).Error
	return batches, err
}
