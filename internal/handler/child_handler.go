package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swasthyam/internal/model"
	"swasthyam/internal/repository"
	"swasthyam/internal/service/tracker"
)

type ChildHandler struct {
	children *repository.ChildRepository
	tracker  *tracker.Service
	logger   *zap.Logger
}

func NewChildHandler(children *repository.ChildRepository, trackerService *tracker.Service, logger *zap.Logger) *ChildHandler {
	return &ChildHandler{children: children, tracker: trackerService, logger: logger}
}

type childRequest struct {
	Name              string   `json:"name" binding:"required,max=100"`
	Gender            string   `json:"gender" binding:"required,oneof=M F O"`
	DateOfBirth       string   `json:"date_of_birth" binding:"required"`
	BirthWeightKg     *float64 `json:"birth_weight_kg" binding:"omitempty,gt=0"`
	BirthHeightCm     *float64 `json:"birth_height_cm" binding:"omitempty,gt=0"`
	BloodGroup        string   `json:"blood_group"`
	Allergies         string   `json:"allergies"`
	MedicalConditions string   `json:"medical_conditions"`
}

func (r *childRequest) toModel(parentID int) (*model.Child, error) {
	dob, err := time.Parse("2006-01-02", r.DateOfBirth)
	if err != nil {
		return nil, err
	}
	if dob.After(time.Now()) {
		return nil, errors.New("date_of_birth is in the future")
	}
	return &model.Child{
		ParentID:          parentID,
		Name:              r.Name,
		Gender:            r.Gender,
		DateOfBirth:       dob,
		BirthWeightKg:     r.BirthWeightKg,
		BirthHeightCm:     r.BirthHeightCm,
		BloodGroup:        r.BloodGroup,
		Allergies:         r.Allergies,
		MedicalConditions: r.MedicalConditions,
	}, nil
}

// CreateChild handles POST /children. Tracking records for the full
// catalog are provisioned right away so the tracker pages are populated
// on first visit.
func (h *ChildHandler) CreateChild(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req childRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	child, err := req.toModel(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.children.Create(c.Request.Context(), child); err != nil {
		h.logger.Error("CreateChild failed", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create child"})
		return
	}

	vacc, mile, err := h.tracker.Reconcile(c.Request.Context(), child.ID)
	if err != nil {
		// The record will self-heal on the next tracker read.
		h.logger.Warn("Initial provisioning failed", zap.Int("child_id", child.ID), zap.Error(err))
	}

	c.JSON(http.StatusCreated, gin.H{
		"child":                   child,
		"vaccinations_provisioned": vacc,
		"milestones_provisioned":   mile,
	})
}

// ListChildren handles GET /children
func (h *ChildHandler) ListChildren(c *gin.Context) {
	userID := c.GetInt("user_id")

	children, err := h.children.ListByParent(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("ListChildren failed", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch children"})
		return
	}

	now := time.Now()
	out := make([]gin.H, 0, len(children))
	for _, child := range children {
		out = append(out, gin.H{
			"child":         child,
			"age_in_months": child.AgeInMonths(now),
			"age_display":   child.AgeDisplay(now),
		})
	}
	c.JSON(http.StatusOK, gin.H{"children": out})
}

// GetChild handles GET /children/:id
func (h *ChildHandler) GetChild(c *gin.Context) {
	userID := c.GetInt("user_id")
	childID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	child, err := h.children.FindByID(c.Request.Context(), childID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "child not found"})
			return
		}
		h.logger.Error("GetChild failed", zap.Int("child_id", childID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch child"})
		return
	}

	now := time.Now()
	c.JSON(http.StatusOK, gin.H{
		"child":         child,
		"age_in_months": child.AgeInMonths(now),
		"age_display":   child.AgeDisplay(now),
	})
}

// UpdateChild handles PUT /children/:id
func (h *ChildHandler) UpdateChild(c *gin.Context) {
	userID := c.GetInt("user_id")
	childID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req childRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	child, err := req.toModel(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	child.ID = childID

	if err := h.children.Update(c.Request.Context(), child); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "child not found"})
			return
		}
		h.logger.Error("UpdateChild failed", zap.Int("child_id", childID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update child"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"child": child})
}

// DeleteChild handles DELETE /children/:id. Tracking records go with the
// child via the cascade.
func (h *ChildHandler) DeleteChild(c *gin.Context) {
	userID := c.GetInt("user_id")
	childID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	if err := h.children.Delete(c.Request.Context(), childID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "child not found"})
			return
		}
		h.logger.Error("DeleteChild failed", zap.Int("child_id", childID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete child"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// paramInt parses an integer path parameter, writing the 400 itself so
// handlers can just bail out.
func paramInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}
