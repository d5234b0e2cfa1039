package main

import (
	"log"
	"os"

	controller "github.com/morichal/MeetingPortal/controller"
	"github.com/morichal/MeetingPortal/initializers"
	middleware "github.com/morichal/MeetingPortal/middleware"
	service "github.com/morichal/MeetingPortal/service"

	"github.com/gin-gonic/gin"
)

func init() {
	if err := initializers.LoadEnv(); err != nil {
		log.Printf("Warning: no .env file loaded: %s", err)
	}
	if err := initializers.ConnectDB(); err != nil {
		log.Fatalf("[CRITICAL] Failed to initialize database connection: %s", err)
	}
	if err := initializers.Migrate(); err != nil {
		log.Fatalf("[CRITICAL] Failed to run database migrations: %s", err)
	}
}

func main() {
	portalService, err := service.NewPortalService(initializers.DB)
	if err != nil {
		log.Fatalf("Failed to initialize portal service: %s", err)
	}

	portal := controller.NewPortalController(portalService)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())

	// Global rate limiter for most routes
	router.Use(middleware.GlobalRateLimiter.Limit())

	// Healthcheck endpoint
	router.GET("/health", portal.Health)

	api := router.Group("/api")

	// Client workspace management
	api.GET("/clients", portal.ListClients)
	api.POST("/clients", middleware.StrictRateLimiter.Limit(), portal.CreateClient)
	api.PATCH("/clients/:client", portal.UpdateClient)
	api.DELETE("/clients/:client", middleware.StrictRateLimiter.Limit(), portal.DeleteClient)

	// All remaining routes are scoped to one client workspace
	client := api.Group("/:client")

	client.GET("/all", portal.AllData)
	client.GET("/export", portal.ExportData)
	client.GET("/search", portal.Search)

	client.GET("/meetings", portal.ListMeetings)
	client.POST("/meetings", portal.CreateMeeting)
	client.GET("/meetings/:id", portal.GetMeeting)
	client.PATCH("/meetings/:id", portal.UpdateMeeting)
	client.DELETE("/meetings/:id", portal.DeleteMeeting)
	client.GET("/meetings/:id/suggestions", portal.MeetingSuggestions)
	client.GET("/meetings/:id/attachments", portal.ListAttachments)
	client.POST("/meetings/:id/attachments",
		middleware.StrictRateLimiter.Limit(),
		portal.UploadAttachment)

	client.GET("/questions", portal.ListQuestions)
	client.POST("/questions", portal.CreateQuestion)
	client.GET("/questions/:id", portal.GetQuestion)
	client.PATCH("/questions/:id", portal.UpdateQuestion)
	client.POST("/questions/:id/answer", portal.AnswerQuestion)
	client.DELETE("/questions/:id", portal.DeleteQuestion)

	client.GET("/rules", portal.ListBusinessRules)
	client.POST("/rules", portal.CreateBusinessRule)
	client.PATCH("/rules/:id", portal.UpdateBusinessRule)
	client.DELETE("/rules/:id", portal.DeleteBusinessRule)

	client.GET("/decisions", portal.ListDecisions)
	client.POST("/decisions", portal.CreateDecision)
	client.PATCH("/decisions/:id", portal.UpdateDecision)
	client.DELETE("/decisions/:id", portal.DeleteDecision)

	client.GET("/action-items", portal.ListActionItems)
	client.POST("/action-items", portal.CreateActionItem)
	client.GET("/action-items/:id", portal.GetActionItem)
	client.PATCH("/action-items/:id", portal.UpdateActionItem)
	client.PUT("/action-items/:id/complete", portal.CompleteActionItem)
	client.DELETE("/action-items/:id", portal.DeleteActionItem)

	// Suggestion review mutates target records, so it gets the strict limiter
	client.GET("/suggestions", portal.ListSuggestions)
	client.POST("/suggestions/:id/review",
		middleware.StrictRateLimiter.Limit(),
		portal.ReviewSuggestion)
	client.POST("/suggestions/batch-approve",
		middleware.StrictRateLimiter.Limit(),
		portal.BatchApprove)
	client.DELETE("/suggestions/:id", portal.DeleteSuggestion)

	client.GET("/updates", portal.ListUpdates)
	client.POST("/updates", portal.CreateUpdate)
	client.DELETE("/updates/:id", portal.DeleteUpdate)

	client.GET("/blockers", portal.ListBlockers)
	client.POST("/blockers", portal.CreateBlocker)
	client.PATCH("/blockers/:id", portal.UpdateBlocker)
	client.PUT("/blockers/:id/resolve", portal.ResolveBlocker)
	client.DELETE("/blockers/:id", portal.DeleteBlocker)

	client.GET("/sprints", portal.ListSprints)
	client.POST("/sprints", portal.CreateSprint)
	client.GET("/sprints/:id", portal.GetSprint)
	client.PATCH("/sprints/:id", portal.UpdateSprint)
	client.DELETE("/sprints/:id", portal.DeleteSprint)
	client.GET("/sprints/:id/items", portal.ListSprintItems)
	client.POST("/sprints/:id/items", portal.CreateSprintItem)
	client.PATCH("/sprint-items/:id", portal.UpdateSprintItem)
	client.DELETE("/sprint-items/:id", portal.DeleteSprintItem)

	client.GET("/settings", portal.GetSettings)
	client.PATCH("/settings", portal.UpdateSettings)
	client.POST("/settings/reset-usage",
		middleware.StrictRateLimiter.Limit(),
		portal.ResetUsage)
	client.GET("/settings/providers", portal.ListProviders)

	client.DELETE("/attachments/:id", portal.DeleteAttachment)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	router.Run(":" + port)
}
