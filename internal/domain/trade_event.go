package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TradeEvent is an audit row recorded in the same transaction as the
// trade it describes. Not part of the wire protocol; exposed through
// the admin snapshot only.
type TradeEvent struct {
	EventID   uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	UserID    int64          `gorm:"column:user_id;not null" json:"user_id"`
	EventType string         `gorm:"column:event_type;type:varchar(30);not null" json:"event_type"`
	EventData datatypes.JSON `gorm:"column:event_data;not null" json:"event_data"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (TradeEvent) TableName() string {
	return "TradeEvents"
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (e *TradeEvent) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}
