package models

// GstSlab is an immutable tax-rate reference row, seeded at initialization.
type GstSlab struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Rate        float64 `gorm:"column:rate;not null;uniqueIndex"`
	Description string  `gorm:"column:description;not null"`
}
