package api

import (
	"net/http"

	"github.com/Rama-lab79/Chatbot-AI/internal/models"
	"github.com/Rama-lab79/Chatbot-AI/internal/service"
	"github.com/Rama-lab79/Chatbot-AI/pkg/logger"

	"github.com/gin-gonic/gin"
)

// CheckinHandler handles daily check-in endpoints. All routes require a
// resolved user identity from the JWT middleware.
type CheckinHandler struct {
	service *service.CheckinService
	logger  *logger.Logger
}

// NewCheckinHandler creates a new check-in handler
func NewCheckinHandler(service *service.CheckinService, logger *logger.Logger) *CheckinHandler {
	return &CheckinHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the check-in routes on an authenticated group.
func (h *CheckinHandler) RegisterRoutes(group *gin.RouterGroup) {
	checkin := group.Group("/checkin")
	{
		checkin.POST("", h.Upsert)
		checkin.GET("/last", h.Last)
		checkin.GET("/today", h.Today)
	}
}

// Upsert records or updates today's check-in. The response status reports
// which path was taken: 201 for a fresh record, 200 for a same-day overwrite.
func (h *CheckinHandler) Upsert(c *gin.Context) {
	var req models.CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required (mood, energy, sleep)"})
		return
	}

	checkin, created, err := h.service.Upsert(c.Request.Context(), currentUserID(c), *req.Mood, req.Energy, *req.Sleep)
	if err != nil {
		switch err {
		case service.ErrInvalidMood:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mood must be between 1 and 5"})
		case service.ErrInvalidEnergy:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Energy must be low, mid, or high"})
		default:
			h.logger.Error("Check-in failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record check-in"})
		}
		return
	}

	if created {
		c.JSON(http.StatusCreated, gin.H{"message": "Check-in recorded", "checkin": checkin})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Check-in updated", "checkin": checkin})
}

// Last returns the most recent check-in regardless of day.
func (h *CheckinHandler) Last(c *gin.Context) {
	checkin, err := h.service.Last(currentUserID(c))
	if err != nil {
		switch err {
		case service.ErrNoCheckin:
			c.JSON(http.StatusNotFound, gin.H{"error": "No check-in found"})
		default:
			h.logger.Error("Failed to get last check-in", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get check-in"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkin": checkin})
}

// Today returns today's check-in, if any.
func (h *CheckinHandler) Today(c *gin.Context) {
	checkin, err := h.service.Today(currentUserID(c))
	if err != nil {
		switch err {
		case service.ErrNoCheckin:
			c.JSON(http.StatusNotFound, gin.H{"error": "No check-in today"})
		default:
			h.logger.Error("Failed to get today's check-in", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get check-in"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkin": checkin})
}

// currentUserID reads the user ID placed in the context by the JWT
// middleware. Routes registered behind that middleware can rely on it.
func currentUserID(c *gin.Context) uint {
	userID, _ := c.Get("userId")
	id, _ := userID.(uint)
	return id
}
