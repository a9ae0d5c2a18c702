package models

import (
	"time"
)

// Chat message roles.
const (
	RoleUser = "user"
	RoleAI   = "ai"
)

// ChatMessage is a single turn in a user's conversation with the companion.
// Messages are immutable once written; they are only ever removed in bulk by
// the day-range purge.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Role      string    `gorm:"not null" json:"role"` // user or ai
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// ChatRequest is the request body for sending a message to the companion.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	Mode    string `json:"mode,omitempty"`
}
