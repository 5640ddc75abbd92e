package models

import "time"

// TimeLink connects a project to one tracked-time source. RawHours is written
// by the time-tracking sync job, HoursOverride only by privileged reviewers.
type TimeLink struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProjectID     uint      `gorm:"not null;index" json:"project_id"`
	ExternalKey   string    `gorm:"type:varchar(191);not null;default:''" json:"external_key"`
	RawHours      *float64  `gorm:"type:double;default:null" json:"raw_hours"`
	HoursOverride *float64  `gorm:"type:double;default:null" json:"hours_override"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// HasOverride reports whether a reviewer pinned the hour value of this link.
func (l *TimeLink) HasOverride() bool {
	return l.HoursOverride != nil
}
