package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rama-lab79/Chatbot-AI/ai"
	"github.com/Rama-lab79/Chatbot-AI/internal/models"
	"github.com/Rama-lab79/Chatbot-AI/internal/repository"
	"github.com/Rama-lab79/Chatbot-AI/pkg/cache"
	"github.com/Rama-lab79/Chatbot-AI/pkg/logger"
	"github.com/Rama-lab79/Chatbot-AI/pkg/observability"

	"gorm.io/gorm"
)

var (
	ErrEmptyMessage   = errors.New("message is required")
	ErrInvalidMode    = errors.New("mode must be listening or solution")
	ErrNoCheckinToday = errors.New("no check-in found for today")
)

// ChatOptions carries the generation constraints for the two completion
// call sites.
type ChatOptions struct {
	ChatMaxTokens      int
	ChatTemperature    float64
	SummaryMaxTokens   int
	SummaryTemperature float64
	SummaryCacheTTL    time.Duration
}

// DefaultChatOptions returns the constraints used in production.
func DefaultChatOptions() ChatOptions {
	return ChatOptions{
		ChatMaxTokens:      200,
		ChatTemperature:    0.7,
		SummaryMaxTokens:   150,
		SummaryTemperature: 0.5,
		SummaryCacheTTL:    24 * time.Hour,
	}
}

// ChatService assembles conversation context for the completion client and
// generates end-of-day summaries. Each call is an independent unit of work;
// the read-then-write sequences are not wrapped in a transaction, so two
// concurrent turns for the same user can interleave their message ordering.
type ChatService struct {
	chats       repository.ChatRepository
	logs        repository.DailyLogRepository
	completions ai.Client
	summaries   cache.Store
	log         *logger.Logger
	opts        ChatOptions
	now         func() time.Time
}

// NewChatService creates a chat service. The cache may be nil to disable
// summary caching.
func NewChatService(
	chats repository.ChatRepository,
	logs repository.DailyLogRepository,
	completions ai.Client,
	summaries cache.Store,
	log *logger.Logger,
	opts ChatOptions,
) *ChatService {
	return &ChatService{
		chats:       chats,
		logs:        logs,
		completions: completions,
		summaries:   summaries,
		log:         log,
		opts:        opts,
		now:         time.Now,
	}
}

// HandleTurn processes one conversation turn: it validates the input,
// assembles [system prompt, today's prior turns, new user turn], invokes the
// completion client and persists both sides of the exchange.
//
// The user turn is written before the completion call and is not rolled back
// if that call fails; the caller sees an error while the user message stays
// recorded. That partial-failure state is deliberate.
func (s *ChatService) HandleTurn(ctx context.Context, userID uint, rawMessage, mode string) (*models.ChatMessage, *models.ChatMessage, error) {
	trimmed := strings.TrimSpace(rawMessage)
	if trimmed == "" {
		return nil, nil, ErrEmptyMessage
	}
	if !ai.IsValidMode(mode) {
		return nil, nil, ErrInvalidMode
	}

	today := s.now()
	start, end := dayRange(today)
	history, err := s.chats.FindByUserInRange(userID, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load today's messages: %w", err)
	}

	yesterdaySummary, err := s.lookupYesterdaySummary(ctx, userID, today)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load yesterday's log: %w", err)
	}

	userMessage := &models.ChatMessage{
		UserID:  userID,
		Role:    models.RoleUser,
		Message: trimmed,
	}
	if err := s.chats.Create(userMessage); err != nil {
		return nil, nil, fmt.Errorf("failed to save user message: %w", err)
	}

	messages := assembleMessages(mode, yesterdaySummary, history, rawMessage)

	response, err := s.completions.Complete(ctx, messages, ai.Options{
		MaxTokens:   s.opts.ChatMaxTokens,
		Temperature: s.opts.ChatTemperature,
	})
	observability.RecordCompletion(ctx, "chat", err)
	if err != nil {
		// User turn stays recorded; only the reply is missing.
		return nil, nil, fmt.Errorf("completion failed: %w", err)
	}

	aiMessage := &models.ChatMessage{
		UserID:  userID,
		Role:    models.RoleAI,
		Message: response,
	}
	if err := s.chats.Create(aiMessage); err != nil {
		return nil, nil, fmt.Errorf("failed to save AI message: %w", err)
	}

	observability.RecordChatTurn(ctx)
	return userMessage, aiMessage, nil
}

// assembleMessages builds the sequence sent to the completion client. History
// roles map ai->assistant; the final turn carries the raw (untrimmed) input.
func assembleMessages(mode, yesterdaySummary string, history []models.ChatMessage, rawMessage string) []ai.Message {
	messages := make([]ai.Message, 0, len(history)+2)
	messages = append(messages, ai.Message{
		Role:    "system",
		Content: ai.BuildSystemPrompt(mode, yesterdaySummary),
	})
	for _, msg := range history {
		role := "user"
		if msg.Role == models.RoleAI {
			role = "assistant"
		}
		messages = append(messages, ai.Message{Role: role, Content: msg.Message})
	}
	messages = append(messages, ai.Message{Role: "user", Content: rawMessage})
	return messages
}

// TodayMessages returns today's conversation in chronological order.
func (s *ChatService) TodayMessages(userID uint) ([]models.ChatMessage, error) {
	start, end := dayRange(s.now())
	return s.chats.FindByUserInRange(userID, start, end)
}

// ClearToday purges today's conversation for the user.
func (s *ChatService) ClearToday(userID uint) error {
	start, end := dayRange(s.now())
	return s.chats.DeleteByUserInRange(userID, start, end)
}

// GenerateSummary builds a prompt from today's transcript and check-in,
// invokes the completion client and persists the result onto the check-in
// record. A missing check-in is a not-found condition detected before any
// external call. A completion failure is swallowed: the summary comes back
// absent rather than as an error, unlike HandleTurn's hard failure.
func (s *ChatService) GenerateSummary(ctx context.Context, userID uint) (*models.DailyLog, error) {
	today := s.now()
	start, end := dayRange(today)

	checkin, err := s.logs.FindByUserInRange(userID, start, end)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCheckinToday
		}
		return nil, fmt.Errorf("failed to load today's check-in: %w", err)
	}

	messages, err := s.chats.FindByUserInRange(userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's messages: %w", err)
	}

	prompt := ai.BuildSummaryPrompt(ai.SummaryInput{
		Mood:       checkin.Mood,
		Energy:     checkin.Energy,
		Sleep:      checkin.Sleep,
		Transcript: RenderTranscript(messages),
	})

	summary, err := s.completions.Complete(ctx, []ai.Message{{Role: "user", Content: prompt}}, ai.Options{
		MaxTokens:   s.opts.SummaryMaxTokens,
		Temperature: s.opts.SummaryTemperature,
	})
	observability.RecordCompletion(ctx, "summary", err)
	if err != nil {
		s.log.LogError(err, "summary generation failed", "user_id", userID)
		checkin.Summary = nil
		if saveErr := s.logs.Save(checkin); saveErr != nil {
			return nil, fmt.Errorf("failed to save check-in: %w", saveErr)
		}
		if s.summaries != nil {
			s.summaries.Delete(ctx, summaryCacheKey(userID, today))
		}
		return checkin, nil
	}

	checkin.Summary = &summary
	if err := s.logs.Save(checkin); err != nil {
		return nil, fmt.Errorf("failed to save summary: %w", err)
	}
	if s.summaries != nil {
		s.summaries.Set(ctx, summaryCacheKey(userID, today), summary, s.opts.SummaryCacheTTL)
	}

	return checkin, nil
}

// RenderTranscript joins a day's messages as role-prefixed lines. An empty
// day renders as the empty string; the prompt builder substitutes its
// placeholder.
func RenderTranscript(messages []models.ChatMessage) string {
	lines := make([]string, len(messages))
	for i, msg := range messages {
		lines[i] = fmt.Sprintf("%s: %s", msg.Role, msg.Message)
	}
	return strings.Join(lines, "\n")
}

// lookupYesterdaySummary returns yesterday's summary, going through the cache
// when one is configured. A missing log or absent summary yields "".
func (s *ChatService) lookupYesterdaySummary(ctx context.Context, userID uint, today time.Time) (string, error) {
	key := summaryCacheKey(userID, today.AddDate(0, 0, -1))
	if s.summaries != nil {
		if summary, ok := s.summaries.Get(ctx, key); ok {
			return summary, nil
		}
	}

	start, end := yesterdayRange(today)
	log, err := s.logs.FindByUserInRange(userID, start, end)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	if !log.HasSummary() {
		return "", nil
	}

	if s.summaries != nil {
		s.summaries.Set(ctx, key, *log.Summary, s.opts.SummaryCacheTTL)
	}
	return *log.Summary, nil
}

func summaryCacheKey(userID uint, day time.Time) string {
	return fmt.Sprintf("summary:%d:%s", userID, day.Format("2006-01-02"))
}
