package models

import "time"

// Batch is one physical stock lot of a medicine with its own expiry and
// pricing. Quantity only moves through guarded updates.
type Batch struct {
	ID                int64      `gorm:"column:id;primaryKey;autoIncrement"`
	MedicineID        int64      `gorm:"column:medicine_id;not null;index"`
	Medicine          *Medicine  `gorm:"foreignKey:MedicineID"`
	BatchNumber       string     `gorm:"column:batch_number;not null"`
	ExpiryDate        time.Time  `gorm:"column:expiry_date;not null;index"`
	CostPricePaise    int64      `gorm:"column:cost_price_paise;not null"`
	MRPPaise          int64      `gorm:"column:mrp_paise;not null"`
	SellingPricePaise int64      `gorm:"column:selling_price_paise;not null"`
	Quantity          int64      `gorm:"column:quantity;not null;default:0"`
	ManufacturingDate *time.Time `gorm:"column:manufacturing_date"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
}
