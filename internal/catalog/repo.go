package catalog

import (
	"context"

	"github.com/pharmaware/pharmacare/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists the medicine catalog and its tax-slab reference data.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateMedicine(ctx context.Context, medicine *models.Medicine) error
	FindMedicineByID(ctx context.Context, id int64) (*models.Medicine, error)
	UpdateMedicine(ctx context.Context, id int64, fields map[string]any) (bool, error)
	SearchMedicines(ctx context.Context, query string, activeOnly bool) ([]models.Medicine, error)
	FindSlabByID(ctx context.Context, id int64) (*models.GstSlab, error)
	FindSlabByRate(ctx context.Context, rate float64) (*models.GstSlab, error)
	ListSlabs(ctx context.Context) ([]models.GstSlab, error)
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

func (r *repository) CreateMedicine(ctx context.Context, medicine *models.Medicine) error {
	return r.db.WithContext(ctx).Create(medicine).Error
}

func (r *repository) FindMedicineByID(ctx context.Context, id int64) (*models.Medicine, error) {
	var medicine models.Medicine
	err := r.db.WithContext(ctx).
		Preload("GstSlab").
		First(&medicine, id).Error
	if err != nil {
		return nil, err
	}
	return &medicine, nil
}

func (r *repository) UpdateMedicine(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Medicine{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) SearchMedicines(ctx context.Context, query string, activeOnly bool) ([]models.Medicine, error) {
	q := r.db.WithContext(ctx).Preload("GstSlab")
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"name LIKE ? OR generic_name LIKE ? OR brand_name LIKE ?",
			like, like, like,
		)
	}
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var medicines []models.Medicine
	err := q.Order("name ASC").Find(&medicines).Error
	return medicines, err
}

func (r *repository) FindSlabByID(ctx context.Context, id int64) (*models.GstSlab, error) {
	var slab models.GstSlab
	if err := r.db.WithContext(ctx).First(&slab, id).Error; err != nil {
		return nil, err
	}
	return &slab, nil
}

func (r *repository) FindSlabByRate(ctx context.Context, rate float64) (*models.GstSlab, error) {
	var slab models.GstSlab
	err := r.db.WithContext(ctx).
		Where("rate = ?", rate).
		First(&slab).Error
	if err != nil {
		return nil, err
	}
	return &slab, nil
}

func (r *repository) ListSlabs(ctx context.Context) ([]models.GstSlab, error) {
	var slabs []models.GstSlab
	err := r.db.WithContext(ctx).
		Order("rate ASC").
		Find(&slabs).Error
	return slabs, err
}
