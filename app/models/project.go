package models

import "time"

// Project is a user's program project with its tracked-time links.
type Project struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Name      string     `gorm:"type:varchar(200);not null;default:''" json:"name"`
	Shipped   bool       `gorm:"default:false" json:"shipped"`
	Viral     bool       `gorm:"default:false" json:"viral"`
	Links     []TimeLink `gorm:"foreignKey:ProjectID" json:"links"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
