package domain

import (
	"time"
)

// User is an account in the ledger. Seeded at provisioning time; only
// BUY and SELL touch the cash balance afterwards.
type User struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	CashBalance float64   `gorm:"column:cash_balance;type:decimal(18,2);not null;default:0" json:"cash_balance"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "Users"
}
