package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swasthyam/internal/model"
	"swasthyam/internal/repository"
	"swasthyam/internal/service/assistant"
	"swasthyam/internal/service/calculator"
)

type CalculatorHandler struct {
	logs      *repository.CalcLogRepository
	assistant *assistant.Service
	logger    *zap.Logger
}

func NewCalculatorHandler(logs *repository.CalcLogRepository, assistantService *assistant.Service, logger *zap.Logger) *CalculatorHandler {
	return &CalculatorHandler{logs: logs, assistant: assistantService, logger: logger}
}

// BMI handles POST /calculators/bmi. The result is logged and returned
// with the user's recent history.
func (h *CalculatorHandler) BMI(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req struct {
		HeightCm float64 `json:"height_cm" binding:"required,gt=0"`
		WeightKg float64 `json:"weight_kg" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := calculator.BMI(req.HeightCm, req.WeightKg)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logEntry := &model.BMILog{
		UserID:   userID,
		HeightCm: req.HeightCm,
		WeightKg: req.WeightKg,
		BMI:      result.BMI,
		Category: result.Category,
	}
	if err := h.logs.CreateBMILog(c.Request.Context(), logEntry); err != nil {
		h.logger.Warn("BMI log failed", zap.Int("user_id", userID), zap.Error(err))
	}

	history, err := h.logs.ListRecentBMILogs(c.Request.Context(), userID, 5)
	if err != nil {
		h.logger.Warn("BMI history failed", zap.Int("user_id", userID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"bmi":      result.BMI,
		"category": result.Category,
		"history":  history,
	})
}

// DueDate handles POST /calculators/due-date
func (h *CalculatorHandler) DueDate(c *gin.Context) {
	var req struct {
		LastPeriodDate  string `json:"last_period_date" binding:"required"`
		CycleLengthDays int    `json:"cycle_length_days"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	lmp, err := time.Parse("2006-01-02", req.LastPeriodDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid last_period_date"})
		return
	}
	if req.CycleLengthDays == 0 {
		req.CycleLengthDays = 28
	}

	result, err := calculator.DueDate(lmp, req.CycleLengthDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"estimated_due_date": result.EstimatedDueDate.Format("2006-01-02"),
		"conception_date":    result.ConceptionDate.Format("2006-01-02"),
		"trimester_1_end":    result.Trimester1End.Format("2006-01-02"),
		"trimester_2_end":    result.Trimester2End.Format("2006-01-02"),
	})
}

// Ovulation handles POST /calculators/ovulation
func (h *CalculatorHandler) Ovulation(c *gin.Context) {
	var req struct {
		LastPeriodDate  string `json:"last_period_date" binding:"required"`
		CycleLengthDays int    `json:"cycle_length_days"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	lmp, err := time.Parse("2006-01-02", req.LastPeriodDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid last_period_date"})
		return
	}
	if req.CycleLengthDays == 0 {
		req.CycleLengthDays = 28
	}

	result, err := calculator.Ovulation(lmp, req.CycleLengthDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ovulation_date": result.OvulationDate.Format("2006-01-02"),
		"fertile_start":  result.FertileStart.Format("2006-01-02"),
		"fertile_end":    result.FertileEnd.Format("2006-01-02"),
		"next_period":    result.NextPeriod.Format("2006-01-02"),
	})
}

// PregnancyWeight handles POST /calculators/pregnancy-weight
func (h *CalculatorHandler) PregnancyWeight(c *gin.Context) {
	var req struct {
		PreWeightKg     float64 `json:"pre_weight_kg" binding:"required,gt=0"`
		CurrentWeightKg float64 `json:"current_weight_kg" binding:"required,gt=0"`
		Week            int     `json:"week" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := calculator.PregnancyWeightGain(req.PreWeightKg, req.CurrentWeightKg, req.Week)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"gain_kg": result.GainKg, "message": result.Message})
}

// AnalyzeFood handles POST /nutrition/analyze. The estimate is returned
// without saving so the client can confirm before logging.
func (h *CalculatorHandler) AnalyzeFood(c *gin.Context) {
	var req struct {
		Food string `json:"food" binding:"required,max=200"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	analysis, err := h.assistant.AnalyzeFood(c.Request.Context(), req.Food)
	if err != nil {
		h.logger.Warn("AnalyzeFood failed", zap.String("food", req.Food), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not analyze that food, try simpler text"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

// LogMeal handles POST /nutrition/log
func (h *CalculatorHandler) LogMeal(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req struct {
		FoodName string `json:"food_name" binding:"required,max=200"`
		Calories int    `json:"calories" binding:"min=0"`
		ProteinG int    `json:"protein_g" binding:"min=0"`
		CarbsG   int    `json:"carbs_g" binding:"min=0"`
		FatsG    int    `json:"fats_g" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	entry := &model.NutritionLog{
		UserID:   userID,
		FoodName: req.FoodName,
		Calories: req.Calories,
		ProteinG: req.ProteinG,
		CarbsG:   req.CarbsG,
		FatsG:    req.FatsG,
		LoggedOn: time.Now(),
	}
	if err := h.logs.CreateNutritionLog(c.Request.Context(), entry); err != nil {
		h.logger.Error("LogMeal failed", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log meal"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"log": entry})
}

// NutritionToday handles GET /nutrition/today
func (h *CalculatorHandler) NutritionToday(c *gin.Context) {
	userID := c.GetInt("user_id")
	today := time.Now()

	logs, err := h.logs.ListNutritionLogsByDay(c.Request.Context(), userID, today)
	if err != nil {
		h.logger.Error("NutritionToday failed", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch logs"})
		return
	}
	totals, err := h.logs.NutritionTotalsByDay(c.Request.Context(), userID, today)
	if err != nil {
		h.logger.Error("NutritionToday totals failed", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch totals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs, "totals": totals})
}
