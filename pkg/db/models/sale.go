package models

import (
	"time"

	"github.com/pharmaware/pharmacare/pkg/enums"
)

// Sale is one invoice. Rows are write-once: corrections are new sales.
type Sale struct {
	ID              int64             `gorm:"column:id;primaryKey;autoIncrement"`
	InvoiceNumber   string            `gorm:"column:invoice_number;not null;uniqueIndex"`
	CustomerID      *int64            `gorm:"column:customer_id"`
	Customer        *Customer         `gorm:"foreignKey:CustomerID"`
	UserID          int64             `gorm:"column:user_id;not null"`
	User            *User             `gorm:"foreignKey:UserID"`
	SaleDate        time.Time         `gorm:"column:sale_date;not null;index"`
	SubtotalPaise   int64             `gorm:"column:subtotal_paise;not null;default:0"`
	DiscountPaise   int64             `gorm:"column:discount_paise;not null;default:0"`
	TotalCGSTPaise  int64             `gorm:"column:total_cgst_paise;not null;default:0"`
	TotalSGSTPaise  int64             `gorm:"column:total_sgst_paise;not null;default:0"`
	TotalGSTPaise   int64             `gorm:"column:total_gst_paise;not null;default:0"`
	GrandTotalPaise int64             `gorm:"column:grand_total_paise;not null;default:0"`
	PaymentMode     enums.PaymentMode `gorm:"column:payment_mode;not null;default:cash"`
	Notes           *string           `gorm:"column:notes"`
	Items           []SaleItem        `gorm:"foreignKey:SaleID"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
}
