package domain

import (
	"time"
)

// Holding is a user's position in one stock symbol. The auto-increment
// ID doubles as creation order for LIST. Quantity may reach exactly
// zero but never goes negative; the row is kept once created.
type Holding struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_symbol" json:"user_id"`
	Symbol    string    `gorm:"column:symbol;type:varchar(10);not null;uniqueIndex:idx_user_symbol" json:"symbol"`
	Quantity  float64   `gorm:"column:quantity;type:decimal(18,2);not null;default:0" json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Holding) TableName() string {
	return "Holdings"
}
