package models

import "time"

// ProjectApproval holds the credited hours the review subsystem granted a
// project. This service only reads it.
type ProjectApproval struct {
	ProjectID     uint      `gorm:"primaryKey;autoIncrement:false" json:"project_id"`
	ApprovedHours float64   `gorm:"type:double;not null;default:0" json:"approved_hours"`
	ReviewerID    *uint     `gorm:"default:null" json:"reviewer_id,omitempty"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
