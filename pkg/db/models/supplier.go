package models

import "time"

// Supplier carries the GSTIN and drug-license identifiers required for
// purchase-side compliance.
type Supplier struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string    `gorm:"column:name;not null;index"`
	Phone         *string   `gorm:"column:phone"`
	Email         *string   `gorm:"column:email"`
	Address       *string   `gorm:"column:address"`
	GstIN         *string   `gorm:"column:gst_in"`
	DrugLicenseNo *string   `gorm:"column:drug_license_no"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
