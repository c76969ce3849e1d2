package models

// SaleItem is one line of a sale, with the CGST/SGST halves broken out.
type SaleItem struct {
	ID                 int64     `gorm:"column:id;primaryKey;autoIncrement"`
	SaleID             int64     `gorm:"column:sale_id;not null;index"`
	BatchID            int64     `gorm:"column:batch_id;not null"`
	Batch              *Batch    `gorm:"foreignKey:BatchID"`
	MedicineID         int64     `gorm:"column:medicine_id;not null"`
	Medicine           *Medicine `gorm:"foreignKey:MedicineID"`
	Quantity           int64     `gorm:"column:quantity;not null"`
	UnitPricePaise     int64     `gorm:"column:unit_price_paise;not null"`
	DiscountPaise      int64     `gorm:"column:discount_paise;not null;default:0"`
	TaxableAmountPaise int64     `gorm:"column:taxable_amount_paise;not null"`
	CGSTRate           float64   `gorm:"column:cgst_rate;not null;default:0"`
	CGSTAmountPaise    int64     `gorm:"column:cgst_amount_paise;not null;default:0"`
	SGSTRate           float64   `gorm:"column:sgst_rate;not null;default:0"`
	SGSTAmountPaise    int64     `gorm:"column:sgst_amount_paise;not null;default:0"`
	TotalPaise         int64     `gorm:"column:total_paise;not null"`
}
