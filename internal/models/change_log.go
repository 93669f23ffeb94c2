package models

import "time"

// ChangeLog records one field-level change observed during an upsert.
// Rows are immutable once written; this subsystem never updates or
// deletes them.
type ChangeLog struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ListingKey string    `gorm:"type:varchar(64);not null;index" json:"listing_key"`
	Field      string    `gorm:"type:varchar(80);not null" json:"field"`
	OldValue   string    `gorm:"type:text" json:"old_value,omitempty"`
	NewValue   string    `gorm:"type:text" json:"new_value,omitempty"`
	ObservedAt time.Time `gorm:"type:datetime;not null;autoCreateTime;index" json:"observed_at"`
}

// TableName specifies the table name
func (ChangeLog) TableName() string {
	return "change_logs"
}
