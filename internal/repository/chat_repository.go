package repository

import (
	"time"

	"github.com/Rama-lab79/Chatbot-AI/internal/models"

	"gorm.io/gorm"
)

// ChatRepository persists conversation turns. Range queries are inclusive on
// both bounds and ordered ascending by creation time, which is the sole
// conversation ordering key.
type ChatRepository interface {
	Create(message *models.ChatMessage) error
	FindByUserInRange(userID uint, start, end time.Time) ([]models.ChatMessage, error)
	DeleteByUserInRange(userID uint, start, end time.Time) error
}

type GormChatRepository struct {
	db *gorm.DB
}

func NewGormChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

func (r *GormChatRepository) Create(message *models.ChatMessage) error {
	return r.db.Create(message).Error
}

func (r *GormChatRepository) FindByUserInRange(userID uint, start, end time.Time) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, start, end).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *GormChatRepository) DeleteByUserInRange(userID uint, start, end time.Time) error {
	return r.db.Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, start, end).
		Delete(&models.ChatMessage{}).Error
}
