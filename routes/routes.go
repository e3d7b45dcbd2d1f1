package routes

import (
	"time"

	"slate/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPlanRoutes registers the evening planner endpoints.
func RegisterPlanRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/plan", hb.Plan.CreatePlanHandler)
		api.POST("/plan/stream", hb.Plan.StreamPlanHandler)
		api.GET("/plan/:planId", hb.Plan.GetPlanHandler)
		api.GET("/plans", hb.Plan.ListPlansHandler)
		api.POST("/book", hb.Booking.BookHandler)
		api.GET("/search", hb.Search.SearchHandler)
	}
}

// RegisterGroupRoutes registers group session endpoints.
func RegisterGroupRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/group")
	{
		api.POST("/create", hb.Group.CreateSessionHandler)
		api.GET("/:sessionId", hb.Group.GetSessionHandler)
		api.POST("/:sessionId/join", hb.Group.JoinSessionHandler)
		api.PUT("/:sessionId/constraints", hb.Group.UpdateConstraintsHandler)
		api.POST("/:sessionId/solve", hb.Group.SolveHandler)
		api.POST("/:sessionId/book", hb.Group.BookHandler)
		api.POST("/:sessionId/invite", hb.Group.InviteHandler)
	}
}

// RegisterProfileRoutes registers vibe profile endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/vibe")
	{
		api.GET("/profile", hb.Profile.GetProfileHandler)
		api.POST("/profile", hb.Profile.SaveProfileHandler)
		api.GET("/photos", hb.Profile.PhotosHandler)
		api.POST("/extract", hb.Profile.ExtractHandler)
	}
}

// RegisterMessagingRoutes registers phone verification and SMS endpoints.
func RegisterMessagingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	verify := r.Group("/api/verify")
	{
		verify.POST("/send", hb.Verify.SendCodeHandler)
		verify.POST("/check", hb.Verify.CheckCodeHandler)
	}
	sms := r.Group("/api/sms")
	{
		sms.POST("/inbound", hb.SMS.InboundHandler)
		sms.POST("/send", hb.SMS.SendHandler)
	}
}

// RegisterAutonomyRoutes registers autonomous planning endpoints.
func RegisterAutonomyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/autonomy")
	{
		api.GET("/config", hb.Autonomy.GetConfigHandler)
		api.POST("/config", hb.Autonomy.SaveConfigHandler)
		api.POST("/run/:userId", hb.Autonomy.RunHandler)
	}
	r.GET("/api/cron/autonomy", hb.Autonomy.CheckHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
// Groups whose handlers are nil are skipped.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPlanRoutes(r, hb)
	RegisterGroupRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	if hb.Verify != nil && hb.SMS != nil {
		RegisterMessagingRoutes(r, hb)
	}
	if hb.Autonomy != nil {
		RegisterAutonomyRoutes(r, hb)
	}
}
