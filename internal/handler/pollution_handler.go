package handler

import (
	"errors"
	"net/http"
	"time"

	"pollution_tracker/internal/model"
	"pollution_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// PollutionHandler handles location updates, AQI lookups and history requests
type PollutionHandler struct {
	service          service.PollutionService
	testSMSRecipient string
}

// NewPollutionHandler creates a new PollutionHandler
func NewPollutionHandler(s service.PollutionService, testSMSRecipient string) *PollutionHandler {
	return &PollutionHandler{service: s, testSMSRecipient: testSMSRecipient}
}

func (h *PollutionHandler) UpdateLocation(c *gin.Context) {
	var req model.LocationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reading, smsTriggered, err := h.service.UpdateLocation(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, service.ErrAQIUnavailable):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch AQI"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Location and AQI updated",
		"aqi_data":      reading,
		"sms_triggered": smsTriggered,
	})
}

func (h *PollutionHandler) GetAQIByCity(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city query parameter is required"})
		return
	}

	result, err := h.service.AQIByCity(c.Request.Context(), city)
	if err != nil {
		if errors.Is(err, service.ErrCityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "City not found or AQI unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch AQI"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PollutionHandler) History(c *gin.Context) {
	logs, err := h.service.History(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	records := make([]gin.H, 0, len(logs))
	for _, l := range logs {
		records = append(records, gin.H{
			"id":         l.ID,
			"aqi":        l.AQI,
			"category":   l.Category,
			"advice":     l.Advice,
			"lat":        l.Lat,
			"lon":        l.Lon,
			"created_at": l.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, records)
}

func (h *PollutionHandler) ClearHistory(c *gin.Context) {
	if err := h.service.ClearHistory(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "History cleared successfully."})
}

// TestSMS dispatches a fixed diagnostic SMS. Operational utility.
func (h *PollutionHandler) TestSMS(c *gin.Context) {
	h.service.SendTestSMS(h.testSMSRecipient)
	c.JSON(http.StatusOK, gin.H{"message": "Test SMS sent"})
}

// RegisterPollutionRoutes registers pollution tracking routes
func (h *PollutionHandler) RegisterPollutionRoutes(rg *gin.RouterGroup) {
	rg.POST("/update_location", h.UpdateLocation)
	rg.GET("/get_aqi_by_city", h.GetAQIByCity)
	rg.GET("/history", h.History)
	rg.DELETE("/clear_history", h.ClearHistory)
	rg.GET("/test_sms", h.TestSMS)
}
