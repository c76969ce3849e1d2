package customers

import (
	"context"

	"github.com/pharmaware/pharmacare/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists customer records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, id int64) (*models.Customer, error)
	Update(ctx context.Context, id int64, fields map[string]any) (bool, error)
	Search(ctx context.Context, query string) ([]models.Customer, error)
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

func (r *repository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) Update(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected > 0, res.Error
}

// Search matches name or phone; both columns are indexed.
func (r *repository) Search(ctx context.Context, query string) ([]models.Customer, error) {
	q := r.db.WithContext(ctx)
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("name LIKE ? OR phone LIKE ?", like, like)
	}

	var customers []models.Customer
	err := q.Order("name ASC").Find(&customers).Error
	return customers, err
}
