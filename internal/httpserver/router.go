package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"swasthyam/internal/handler"
)

type Router struct {
	Engine *gin.Engine
}

type Handlers struct {
	Auth       *handler.AuthHandler
	Profile    *handler.ProfileHandler
	Child      *handler.ChildHandler
	Tracker    *handler.TrackerHandler
	Growth     *handler.GrowthHandler
	Medication *handler.MedicationHandler
	Forum      *handler.ForumHandler
	Calculator *handler.CalculatorHandler
	Chat       *handler.ChatHandler
	Dashboard  *handler.DashboardHandler
	Catalog    *handler.CatalogHandler
}

func NewRouter(h Handlers, jwtSecret string, db *pgxpool.Pool, logger *zap.Logger) *Router {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))

	// Health endpoints
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/register", h.Auth.Register)
	r.POST("/login", h.Auth.Login)
	r.GET("/catalog", h.Catalog.Catalog)

	// Protected
	auth := r.Group("/")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		auth.GET("/dashboard", h.Dashboard.Summary)

		auth.GET("/profile", h.Profile.GetProfile)
		auth.PUT("/profile", h.Profile.UpdateProfile)
		auth.POST("/profile/disclaimer", h.Profile.AcceptDisclaimer)

		auth.POST("/children", h.Child.CreateChild)
		auth.GET("/children", h.Child.ListChildren)
		auth.GET("/children/:id", h.Child.GetChild)
		auth.PUT("/children/:id", h.Child.UpdateChild)
		auth.DELETE("/children/:id", h.Child.DeleteChild)

		auth.GET("/children/:id/vaccinations", h.Tracker.Vaccinations)
		auth.POST("/children/:id/vaccinations/:recordId/toggle", h.Tracker.ToggleVaccination)
		auth.GET("/children/:id/milestones", h.Tracker.Milestones)
		auth.POST("/children/:id/milestones/:recordId", h.Tracker.SetMilestone)

		auth.POST("/children/:id/growth", h.Growth.AddGrowthRecord)
		auth.GET("/children/:id/growth", h.Growth.ListGrowthRecords)
		auth.GET("/children/:id/growth/chart", h.Growth.GrowthChartData)

		auth.POST("/children/:id/medications", h.Medication.AddMedication)
		auth.GET("/children/:id/medications", h.Medication.ListMedications)
		auth.POST("/children/:id/medications/:medId/stop", h.Medication.StopMedication)

		auth.GET("/forum/categories", h.Forum.Categories)
		auth.GET("/forum/posts", h.Forum.ListPosts)
		auth.POST("/forum/posts", h.Forum.CreatePost)
		auth.GET("/forum/posts/:slug", h.Forum.GetPost)
		auth.POST("/forum/posts/:slug/comments", h.Forum.AddComment)
		auth.POST("/forum/likes/posts/:id", h.Forum.ToggleLike)
		auth.POST("/forum/likes/comments/:id", h.Forum.ToggleCommentLike)
		auth.POST("/forum/bookmarks/:id", h.Forum.ToggleBookmark)
		auth.POST("/forum/report", h.Forum.Report)

		auth.POST("/calculators/bmi", h.Calculator.BMI)
		auth.POST("/calculators/due-date", h.Calculator.DueDate)
		auth.POST("/calculators/ovulation", h.Calculator.Ovulation)
		auth.POST("/calculators/pregnancy-weight", h.Calculator.PregnancyWeight)

		auth.POST("/nutrition/analyze", h.Calculator.AnalyzeFood)
		auth.POST("/nutrition/log", h.Calculator.LogMeal)
		auth.GET("/nutrition/today", h.Calculator.NutritionToday)

		auth.POST("/chat", h.Chat.Ask)
		auth.GET("/chat/history", h.Chat.History)
		auth.POST("/chat/:id/rate", h.Chat.Rate)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(":" + port)
}
