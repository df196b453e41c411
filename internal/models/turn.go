package models

import (
	"time"

	"gorm.io/datatypes"
)

// CallTurn is the archived form of a transcript entry in Postgres.
type CallTurn struct {
	ID        string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	RoomName  string         `gorm:"column:room_name;type:text;index" json:"room_name"`
	Role      string         `gorm:"column:role;type:text" json:"role"` // "user" | "assistant"
	Content   string         `gorm:"column:content;type:text" json:"content"`
	Timestamp time.Time      `gorm:"column:timestamp;type:timestamptz;index" json:"timestamp"`
	Metadata  datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`
}

func (CallTurn) TableName() string { return "call_turns" }
