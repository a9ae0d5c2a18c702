package repository

import (
	"time"

	"github.com/Rama-lab79/Chatbot-AI/internal/models"

	"gorm.io/gorm"
)

// DailyLogRepository persists daily check-ins. Lookups that find nothing
// return gorm.ErrRecordNotFound; services map that to their own not-found
// conditions.
type DailyLogRepository interface {
	Create(log *models.DailyLog) error
	Save(log *models.DailyLog) error
	FindByUserInRange(userID uint, start, end time.Time) (*models.DailyLog, error)
	FindLatestByUser(userID uint) (*models.DailyLog, error)
}

type GormDailyLogRepository struct {
	db *gorm.DB
}

func NewGormDailyLogRepository(db *gorm.DB) *GormDailyLogRepository {
	return &GormDailyLogRepository{db: db}
}

func (r *GormDailyLogRepository) Create(log *models.DailyLog) error {
	return r.db.Create(log).Error
}

func (r *GormDailyLogRepository) Save(log *models.DailyLog) error {
	return r.db.Save(log).Error
}

// FindByUserInRange returns the most recently created log in the window, so
// that a stray same-day duplicate resolves to the newest record.
func (r *GormDailyLogRepository) FindByUserInRange(userID uint, start, end time.Time) (*models.DailyLog, error) {
	var log models.DailyLog
	err := r.db.Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, start, end).
		Order("created_at DESC").
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *GormDailyLogRepository) FindLatestByUser(userID uint) (*models.DailyLog, error) {
	var log models.DailyLog
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}
