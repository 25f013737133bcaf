package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swasthyam/internal/repository"
	"swasthyam/internal/service/dashboard"
)

type DashboardHandler struct {
	dashboard *dashboard.Service
	logger    *zap.Logger
}

func NewDashboardHandler(dashboardService *dashboard.Service, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboardService, logger: logger}
}

// Summary handles GET /dashboard
func (h *DashboardHandler) Summary(c *gin.Context) {
	userID := c.GetInt("user_id")

	summary, err := h.dashboard.Summarize(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("Summary failed", zap.Int("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":             summary.Profile,
		"bmi":                 summary.BMI,
		"bmi_category":        summary.BMICategory,
		"trimester":           summary.Trimester,
		"profile_completion":  summary.ProfileCompletion,
		"total_chats":         summary.TotalChats,
		"helpful_chats":       summary.HelpfulChats,
		"recent_chats":        summary.RecentChats,
		"recent_posts":        summary.RecentPosts,
		"children":            summary.Children,
		"upcoming_milestones": summary.UpcomingMilestones,
	})
}

// Catalog handles GET /catalog, the public reference list of vaccines
// and milestones.
type CatalogHandler struct {
	catalog *repository.CatalogRepository
	logger  *zap.Logger
}

func NewCatalogHandler(catalog *repository.CatalogRepository, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

func (h *CatalogHandler) Catalog(c *gin.Context) {
	vaccines, err := h.catalog.ListVaccineSchedules(c.Request.Context())
	if err != nil {
		h.logger.Error("Catalog vaccines failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch catalog"})
		return
	}
	milestones, err := h.catalog.ListMilestones(c.Request.Context())
	if err != nil {
		h.logger.Error("Catalog milestones failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch catalog"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vaccines": vaccines, "milestones": milestones})
}
