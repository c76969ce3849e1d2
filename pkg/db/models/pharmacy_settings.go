package models

import "time"

// SettingsID is the only primary key a pharmacy_settings row may carry.
const SettingsID int64 = 1

// PharmacySettings is the singleton store-identity and invoice-counter row.
type PharmacySettings struct {
	ID                int64     `gorm:"column:id;primaryKey"`
	Name              string    `gorm:"column:name;not null;default:My Pharmacy"`
	Address           string    `gorm:"column:address;not null;default:''"`
	Phone             string    `gorm:"column:phone;not null;default:''"`
	Email             *string   `gorm:"column:email"`
	GSTIN             string    `gorm:"column:gstin;not null;default:''"`
	DrugLicenseNo     string    `gorm:"column:drug_license_no;not null;default:''"`
	StateCode         string    `gorm:"column:state_code;not null;default:''"`
	InvoicePrefix     string    `gorm:"column:invoice_prefix;not null;default:INV"`
	NextInvoiceNumber int64     `gorm:"column:next_invoice_number;not null;default:1"`
	LowStockThreshold int64     `gorm:"column:low_stock_threshold;not null;default:20"`
	NearExpiryDays    int64     `gorm:"column:near_expiry_days;not null;default:90"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
