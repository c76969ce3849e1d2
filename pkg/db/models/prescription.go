package models

import "time"

// Prescription links a customer to a doctor's script, optionally tied to the
// sale that dispensed it.
type Prescription struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID       int64     `gorm:"column:customer_id;not null;index"`
	Customer         *Customer `gorm:"foreignKey:CustomerID"`
	SaleID           *int64    `gorm:"column:sale_id"`
	Sale             *Sale     `gorm:"foreignKey:SaleID"`
	DoctorName       string    `gorm:"column:doctor_name;not null"`
	RxNumber         *string   `gorm:"column:rx_number"`
	PrescriptionDate time.Time `gorm:"column:prescription_date;not null"`
	Notes            *string   `gorm:"column:notes"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}
