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

type MedicationHandler struct {
	children    *repository.ChildRepository
	medications *repository.MedicationRepository
	logger      *zap.Logger
}

func NewMedicationHandler(children *repository.ChildRepository, medications *repository.MedicationRepository, logger *zap.Logger) *MedicationHandler {
	return &MedicationHandler{children: children, medications: medications, logger: logger}
}

func (h *MedicationHandler) ownedChild(c *gin.Context) (int, bool) {
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

// AddMedication handles POST /children/:id/medications
func (h *MedicationHandler) AddMedication(c *gin.Context) {
	childID, ok := h.ownedChild(c)
	if !ok {
		return
	}

	var req struct {
		Name          string `json:"name" binding:"required,max=200"`
		Dosage        string `json:"dosage" binding:"required"`
		Frequency     string `json:"frequency" binding:"required"`
		StartDate     string `json:"start_date" binding:"required"`
		EndDate       string `json:"end_date"`
		PrescribedFor string `json:"prescribed_for"`
		PrescribedBy  string `json:"prescribed_by"`
		Instructions  string `json:"instructions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	var endDate *time.Time
	if req.EndDate != "" {
		d, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
			return
		}
		if d.Before(startDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date before start_date"})
			return
		}
		endDate = &d
	}

	med := &model.Medication{
		ChildID:       childID,
		Name:          req.Name,
		Dosage:        req.Dosage,
		Frequency:     req.Frequency,
		StartDate:     startDate,
		EndDate:       endDate,
		PrescribedFor: req.PrescribedFor,
		PrescribedBy:  req.PrescribedBy,
		Instructions:  req.Instructions,
		IsActive:      true,
	}
	if err := h.medications.Create(c.Request.Context(), med); err != nil {
		h.logger.Error("AddMedication failed", zap.Int("child_id", childID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save medication"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"medication": med})
}

// ListMedications handles GET /children/:id/medications
func (h *MedicationHandler) ListMedications(c *gin.Context) {
	childID, ok := h.ownedChild(c)
	if !ok {
		return
	}

	meds, err := h.medications.ListByChild(c.Request.Context(), childID)
	if err != nil {
		h.logger.Error("ListMedications failed", zap.Int("child_id", childID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch medications"})
		return
	}

	active := make([]model.Medication, 0, len(meds))
	past := make([]model.Medication, 0)
	for _, m := range meds {
		if m.IsActive {
			active = append(active, m)
		} else {
			past = append(past, m)
		}
	}

	c.JSON(http.StatusOK, gin.H{"active": active, "past": past})
}

// StopMedication handles POST /children/:id/medications/:medId/stop
func (h *MedicationHandler) StopMedication(c *gin.Context) {
	childID, ok := h.ownedChild(c)
	if !ok {
		return
	}
	medID, ok := paramInt(c, "medId")
	if !ok {
		return
	}

	if err := h.medications.Deactivate(c.Request.Context(), medID, childID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "medication not found"})
			return
		}
		h.logger.Error("StopMedication failed", zap.Int("medication_id", medID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stop medication"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "stopped"})
}
