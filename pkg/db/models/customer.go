package models

import "time"

// Customer is a walk-in or registered buyer.
type Customer struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;not null;index"`
	Phone     *string   `gorm:"column:phone;index"`
	Email     *string   `gorm:"column:email"`
	Address   *string   `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
