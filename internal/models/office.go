package models

import "time"

// Office represents a brokerage office, keyed by the provider id
type Office struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	OfficeKey  string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"office_key"`
	MlsID      string    `gorm:"type:varchar(64)" json:"mls_id,omitempty"`
	Name       string    `gorm:"type:varchar(255)" json:"name,omitempty"`
	Phone      string    `gorm:"type:varchar(40)" json:"phone,omitempty"`
	Email      string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	Address    string    `gorm:"type:varchar(500)" json:"address,omitempty"`
	City       string    `gorm:"type:varchar(120)" json:"city,omitempty"`
	PostalCode string    `gorm:"type:varchar(20)" json:"postal_code,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Office) TableName() string {
	return "offices"
}
