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

type GrowthHandler struct {
	children *repository.ChildRepository
	growth   *repository.GrowthRepository
	logger   *zap.Logger
}

func NewGrowthHandler(children *repository.ChildRepository, growth *repository.GrowthRepository, logger *zap.Logger) *GrowthHandler {
	return &GrowthHandler{children: children, growth: growth, logger: logger}
}

// ownedChild resolves :id under the current user, replying 404 on any
// miss so foreign children are indistinguishable from absent ones.
func (h *GrowthHandler) ownedChild(c *gin.Context) (int, bool) {
	userID := c.GetInt("user_id")
	childID, ok := paramInt(c, "id")
	if !ok {
		return 0, false
	}
	if _, err := h.children.FindByID(c.Request.Context(), childID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "child not found"})
			return 0, false
		}
		h.logger.Error("Child lookup failed", zap.Int("child_id", childID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch child"})
		return 0, false
	}
	return childID, true
}

// AddGrowthRecord handles POST /children/:id/growth
func (h *GrowthHandler) AddGrowthRecord(c *gin.Context) {
	childID, ok := h.ownedChild(c)
	if !ok {
		return
	}

	var req struct {
		MeasuredOn          string   `json:"measured_on" binding:"required"`
		WeightKg            float64  `json:"weight_kg" binding:"required,gt=0"`
		HeightCm            float64  `json:"height_cm" binding:"required,gt=0"`
		HeadCircumferenceCm *float64 `json:"head_circumference_cm" binding:"omitempty,gt=0"`
		MeasuredBy          string   `json:"measured_by"`
		Notes               string   `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	measuredOn, err := time.Parse("2006-01-02", req.MeasuredOn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid measured_on"})
		return
	}

	record := &model.GrowthRecord{
		ChildID:             childID,
		MeasuredOn:          measuredOn,
		WeightKg:            req.WeightKg,
		HeightCm:            req.HeightCm,
		HeadCircumferenceCm: req.HeadCircumferenceCm,
		MeasuredBy:          req.MeasuredBy,
		Notes:               req.Notes,
	}
	if err := h.growth.Create(c.Request.Context(), record); err != nil {
		h.logger.Error("AddGrowthRecord failed", zap.Int("child_id", childID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save record"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"record": record})
}

// ListGrowthRecords handles GET /children/:id/growth
func (h *GrowthHandler) ListGrowthRecords(c *gin.Context) {
	childID, ok := h.ownedChild(c)
	if !ok {
		return
	}

	records, err := h.growth.ListByChild(c.Request.Context(), childID)
	if err != nil {
		h.logger.Error("ListGrowthRecords failed", zap.Int("child_id", childID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

// GrowthChart is the plotting series for a child, oldest measurement first.
type GrowthChart struct {
	Dates   []string  `json:"dates"`
	Weights []float64 `json:"weights"`
	Heights []float64 `json:"heights"`
}

// GrowthChartData handles GET /children/:id/growth/chart
func (h *GrowthHandler) GrowthChartData(c *gin.Context) {
	childID, ok := h.ownedChild(c)
	if !ok {
		return
	}

	records, err := h.growth.ListByChild(c.Request.Context(), childID)
	if err != nil {
		h.logger.Error("GrowthChartData failed", zap.Int("child_id", childID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch records"})
		return
	}

	chart := GrowthChart{
		Dates:   make([]string, 0, len(records)),
		Weights: make([]float64, 0, len(records)),
		Heights: make([]float64, 0, len(records)),
	}
	for i := len(records) - 1; i >= 0; i-- {
		chart.Dates = append(chart.Dates, records[i].MeasuredOn.Format("2006-01-02"))
		chart.Weights = append(chart.Weights, records[i].WeightKg)
		chart.Heights = append(chart.Heights, records[i].HeightCm)
	}

	c.JSON(http.StatusOK, chart)
}
