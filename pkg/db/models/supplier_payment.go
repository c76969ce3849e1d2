package models

import (
	"time"

	"github.com/pharmaware/pharmacare/pkg/enums"
)

// SupplierPayment records a settlement against a supplier.
type SupplierPayment struct {
	ID          int64             `gorm:"column:id;primaryKey;autoIncrement"`
	SupplierID  int64             `gorm:"column:supplier_id;not null"`
	Supplier    *Supplier         `gorm:"foreignKey:SupplierID"`
	AmountPaise int64             `gorm:"column:amount_paise;not null"`
	PaymentDate time.Time         `gorm:"column:payment_date;not null"`
	PaymentMode enums.PaymentMode `gorm:"column:payment_mode;not null"`
	Reference   *string           `gorm:"column:reference"`
	Notes       *string           `gorm:"column:notes"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
}
