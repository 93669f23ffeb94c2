package models

import "time"

// OpenHouse represents a scheduled open house for a listing.
// Like media, the set for a listing is fully replaced per enrichment pass.
type OpenHouse struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ListingKey   string     `gorm:"type:varchar(64);not null;index" json:"listing_key"`
	OpenHouseKey string     `gorm:"type:varchar(64)" json:"open_house_key,omitempty"`
	StartTime    *time.Time `gorm:"type:datetime" json:"start_time,omitempty"`
	EndTime      *time.Time `gorm:"type:datetime" json:"end_time,omitempty"`
	Remarks      string     `gorm:"type:text" json:"remarks,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (OpenHouse) TableName() string {
	return "open_houses"
}
