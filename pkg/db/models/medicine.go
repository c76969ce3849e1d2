package models

import "time"

// Medicine is a catalog entry. Stock lives on its batches, not here.
type Medicine struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string    `gorm:"column:name;not null;index"`
	GenericName  *string   `gorm:"column:generic_name"`
	BrandName    *string   `gorm:"column:brand_name"`
	Manufacturer *string   `gorm:"column:manufacturer"`
	DosageForm   string    `gorm:"column:dosage_form;not null;default:tablet"`
	Strength     *string   `gorm:"column:strength"`
	Category     *string   `gorm:"column:category"`
	HSNCode      string    `gorm:"column:hsn_code;not null;default:3004"`
	GstSlabID    int64     `gorm:"column:gst_slab_id;not null"`
	GstSlab      *GstSlab  `gorm:"foreignKey:GstSlabID"`
	ReorderLevel int64     `gorm:"column:reorder_level;not null;default:20"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
