package api

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Rama-lab79/Chatbot-AI/ai"
	"github.com/Rama-lab79/Chatbot-AI/internal/models"
	"github.com/Rama-lab79/Chatbot-AI/internal/service"
	"github.com/Rama-lab79/Chatbot-AI/pkg/jwt"
	"github.com/Rama-lab79/Chatbot-AI/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// In-memory repositories standing in for the gorm-backed ones.

type memChatRepo struct {
	messages []models.ChatMessage
	nextID   uint
}

func (m *memChatRepo) Create(message *models.ChatMessage) error {
	m.nextID++
	message.ID = m.nextID
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	m.messages = append(m.messages, *message)
	return nil
}

func (m *memChatRepo) FindByUserInRange(userID uint, start, end time.Time) ([]models.ChatMessage, error) {
	var result []models.ChatMessage
	for _, msg := range m.messages {
		if msg.UserID == userID && !msg.CreatedAt.Before(start) && !msg.CreatedAt.After(end) {
			result = append(result, msg)
		}
	}
	return result, nil
}

func (m *memChatRepo) DeleteByUserInRange(userID uint, start, end time.Time) error {
	var kept []models.ChatMessage
	for _, msg := range m.messages {
		if msg.UserID == userID && !msg.CreatedAt.Before(start) && !msg.CreatedAt.After(end) {
			continue
		}
		kept = append(kept, msg)
	}
	m.messages = kept
	return nil
}

type memLogRepo struct {
	logs   []*models.DailyLog
	nextID uint
}

func (m *memLogRepo) Create(log *models.DailyLog) error {
	m.nextID++
	log.ID = m.nextID
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	copied := *log
	m.logs = append(m.logs, &copied)
	return nil
}

func (m *memLogRepo) Save(log *models.DailyLog) error {
	for i, existing := range m.logs {
		if existing.ID == log.ID {
			copied := *log
			m.logs[i] = &copied
			return nil
		}
	}
	return m.Create(log)
}

func (m *memLogRepo) FindByUserInRange(userID uint, start, end time.Time) (*models.DailyLog, error) {
	var newest *models.DailyLog
	for _, log := range m.logs {
		if log.UserID == userID && !log.CreatedAt.Before(start) && !log.CreatedAt.After(end) {
			if newest == nil || log.CreatedAt.After(newest.CreatedAt) {
				newest = log
			}
		}
	}
	if newest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *newest
	return &copied, nil
}

func (m *memLogRepo) FindLatestByUser(userID uint) (*models.DailyLog, error) {
	var newest *models.DailyLog
	for _, log := range m.logs {
		if log.UserID == userID {
			if newest == nil || log.CreatedAt.After(newest.CreatedAt) {
				newest = log
			}
		}
	}
	if newest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *newest
	return &copied, nil
}

type memUserRepo struct {
	users  []*models.User
	nextID uint
}

func (m *memUserRepo) Create(user *models.User) error {
	m.nextID++
	user.ID = m.nextID
	hashed, err := models.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed
	copied := *user
	m.users = append(m.users, &copied)
	return nil
}

func (m *memUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserRepo) GetByID(id uint) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// stubCompletion answers every request with a fixed reply or error.
type stubCompletion struct {
	reply string
	err   error
	calls int
}

func (s *stubCompletion) Complete(_ context.Context, _ []ai.Message, _ ai.Options) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

type testEnv struct {
	router      *gin.Engine
	users       *memUserRepo
	chats       *memChatRepo
	logs        *memLogRepo
	completions *stubCompletion
}

// newTestEnv wires handlers behind a stub auth middleware that fixes the
// caller's identity to user 1. Auth routes register on the public group with
// the same stub guarding /me.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		users:       &memUserRepo{},
		chats:       &memChatRepo{},
		logs:        &memLogRepo{},
		completions: &stubCompletion{reply: "I hear you."},
	}

	log := logger.New(logger.Config{Level: "error", JSON: false})
	userService := service.NewUserService(env.users, jwt.NewService("test-secret", time.Hour))
	chatService := service.NewChatService(env.chats, env.logs, env.completions, nil, log, service.DefaultChatOptions())
	checkinService := service.NewCheckinService(env.logs)

	stubAuth := func(c *gin.Context) {
		c.Set("userId", uint(1))
		c.Next()
	}

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewAuthHandler(userService, log).RegisterRoutes(v1, stubAuth)

	protected := v1.Group("/")
	protected.Use(stubAuth)
	NewChatHandler(chatService, log).RegisterRoutes(protected)
	NewCheckinHandler(checkinService, log).RegisterRoutes(protected)

	env.router = router
	return env
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
