package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swasthyam/internal/model"
	"swasthyam/internal/repository"
)

type ProfileHandler struct {
	profiles *repository.ProfileRepository
	logger   *zap.Logger
}

func NewProfileHandler(profiles *repository.ProfileRepository, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("GetProfile failed", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
		return
	}

	bmi, _ := profile.BMI()
	c.JSON(http.StatusOK, gin.H{
		"profile":            profile,
		"bmi":                bmi,
		"bmi_category":       profile.BMICategory(),
		"trimester":          profile.Trimester(),
		"completion_percent": profile.CompletionPercentage(),
	})
}

// UpdateProfile handles PUT /profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req struct {
		Age                *int       `json:"age" binding:"omitempty,min=13,max=100"`
		Gender             string     `json:"gender"`
		HeightCm           *float64   `json:"height_cm" binding:"omitempty,gt=0"`
		WeightKg           *float64   `json:"weight_kg" binding:"omitempty,gt=0"`
		Profession         string     `json:"profession"`
		Location           string     `json:"location"`
		PregnancyStatus    string     `json:"pregnancy_status"`
		PregnancyWeeks     *int       `json:"pregnancy_weeks" binding:"omitempty,min=1,max=42"`
		DueDate            *time.Time `json:"due_date"`
		PreferredLanguage  string     `json:"preferred_language"`
		EmailNotifications bool       `json:"email_notifications"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.PregnancyStatus != "" && !validPregnancyStatus(req.PregnancyStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pregnancy_status"})
		return
	}

	current, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("UpdateProfile load failed", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	profile := &model.Profile{
		UserID:             userID,
		Age:                req.Age,
		Gender:             req.Gender,
		HeightCm:           req.HeightCm,
		WeightKg:           req.WeightKg,
		Profession:         req.Profession,
		Location:           req.Location,
		PregnancyStatus:    req.PregnancyStatus,
		PregnancyWeeks:     req.PregnancyWeeks,
		DueDate:            req.DueDate,
		PreferredLanguage:  req.PreferredLanguage,
		EmailNotifications: req.EmailNotifications,
		DisclaimerAccepted: current.DisclaimerAccepted,
	}
	if profile.PregnancyStatus == "" {
		profile.PregnancyStatus = model.PregnancyStatusNotApplicable
	}
	profile.ProfileCompleted = profile.CompletionPercentage() == 100

	if err := h.profiles.Update(c.Request.Context(), profile); err != nil {
		h.logger.Error("UpdateProfile failed", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":            profile,
		"completion_percent": profile.CompletionPercentage(),
	})
}

// AcceptDisclaimer handles POST /profile/disclaimer
func (h *ProfileHandler) AcceptDisclaimer(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	acceptance := &model.DisclaimerAcceptance{
		UserID:    userID,
		Text:      req.Text,
		IPAddress: c.ClientIP(),
	}
	if err := h.profiles.RecordDisclaimer(c.Request.Context(), acceptance); err != nil {
		h.logger.Error("AcceptDisclaimer failed", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record acceptance"})
		return
	}

	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if err == nil && !profile.DisclaimerAccepted {
		profile.DisclaimerAccepted = true
		if err := h.profiles.Update(c.Request.Context(), profile); err != nil {
			h.logger.Warn("Failed to flag profile disclaimer", zap.Int("user_id", userID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"accepted": true, "id": acceptance.ID})
}

func validPregnancyStatus(s string) bool {
	switch s {
	case model.PregnancyStatusNotPregnant, model.PregnancyStatusPregnant,
		model.PregnancyStatusPostpartum, model.PregnancyStatusNotApplicable:
		return true
	}
	return false
}
