package models

import (
	"time"
)

// Energy levels for a daily check-in.
const (
	EnergyLow  = "low"
	EnergyMid  = "mid"
	EnergyHigh = "high"
)

// DailyLog is a user's daily check-in: self-reported mood, energy and sleep,
// plus a lazily generated end-of-day summary. At most one log per user per
// calendar day is maintained via upsert; mood/energy/sleep are overwritten in
// place on a same-day re-check-in.
type DailyLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Mood      int       `gorm:"not null" json:"mood"`   // 1-5
	Energy    string    `gorm:"not null" json:"energy"` // low, mid or high
	Sleep     bool      `gorm:"not null" json:"sleep"`
	Summary   *string   `gorm:"type:text" json:"summary"` // nil until generated
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasSummary reports whether a non-empty summary has been generated.
func (d *DailyLog) HasSummary() bool {
	return d.Summary != nil && *d.Summary != ""
}

// CheckinRequest is the request body for recording a daily check-in. The
// pointer fields distinguish "absent" from zero values so that mood=0 or
// sleep=false are not mistaken for missing input. Value validation (mood
// range, energy level) lives in the service so each field gets its own
// message; binding only checks presence.
type CheckinRequest struct {
	Mood   *int   `json:"mood" binding:"required"`
	Energy string `json:"energy" binding:"required"`
	Sleep  *bool  `json:"sleep" binding:"required"`
}
