package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swasthyam/internal/repository"
	"swasthyam/internal/service/tracker"
)

type TrackerHandler struct {
	tracker *tracker.Service
	logger  *zap.Logger
}

func NewTrackerHandler(trackerService *tracker.Service, logger *zap.Logger) *TrackerHandler {
	return &TrackerHandler{tracker: trackerService, logger: logger}
}

// Vaccinations handles GET /children/:id/vaccinations
func (h *TrackerHandler) Vaccinations(c *gin.Context) {
	userID := c.GetInt("user_id")
	childID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	overview, err := h.tracker.VaccinationOverview(c.Request.Context(), childID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "child not found"})
			return
		}
		h.logger.Error("Vaccinations failed", zap.Int("child_id", childID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch vaccinations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"child":         overview.Child,
		"age_in_months": overview.AgeInMonths,
		"completed":     overview.Completed,
		"due":           overview.Due,
		"upcoming":      overview.Upcoming,
		"total":         len(overview.Items),
	})
}

// ToggleVaccination handles POST /children/:id/vaccinations/:recordId/toggle
func (h *TrackerHandler) ToggleVaccination(c *gin.Context) {
	userID := c.GetInt("user_id")
	childID, ok := paramInt(c, "id")
	if !ok {
		return
	}
	recordID, ok := paramInt(c, "recordId")
	if !ok {
		return
	}

	var req struct {
		AdministeredBy  string `json:"administered_by"`
		BatchNumber     string `json:"batch_number"`
		HadReaction     bool   `json:"had_reaction"`
		ReactionDetails string `json:"reaction_details"`
		Notes           string `json:"notes"`
	}
	// Body is optional for a plain toggle.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
	}

	rec, err := h.tracker.ToggleVaccination(c.Request.Context(), childID, userID, recordID, tracker.ToggleVaccinationInput{
		AdministeredBy:  req.AdministeredBy,
		BatchNumber:     req.BatchNumber,
		HadReaction:     req.HadReaction,
		ReactionDetails: req.ReactionDetails,
		Notes:           req.Notes,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		h.logger.Error("ToggleVaccination failed", zap.Int("record_id", recordID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"record": rec})
}

// Milestones handles GET /children/:id/milestones
func (h *TrackerHandler) Milestones(c *gin.Context) {
	userID := c.GetInt("user_id")
	childID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	overview, err := h.tracker.MilestoneOverview(c.Request.Context(), childID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "child not found"})
			return
		}
		h.logger.Error("Milestones failed", zap.Int("child_id", childID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch milestones"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"child":         overview.Child,
		"age_in_months": overview.AgeInMonths,
		"by_category":   overview.ByCategory,
		"achieved":      overview.Achieved,
		"total":         overview.Total,
	})
}

// SetMilestone handles POST /children/:id/milestones/:recordId
func (h *TrackerHandler) SetMilestone(c *gin.Context) {
	userID := c.GetInt("user_id")
	childID, ok := paramInt(c, "id")
	if !ok {
		return
	}
	recordID, ok := paramInt(c, "recordId")
	if !ok {
		return
	}

	var req struct {
		Achieved bool   `json:"achieved"`
		Notes    string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	rec, err := h.tracker.SetMilestoneAchievement(c.Request.Context(), childID, userID, recordID, req.Achieved, req.Notes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		h.logger.Error("SetMilestone failed", zap.Int("record_id", recordID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"record": rec})
}
