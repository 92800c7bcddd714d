package routes

import (
	"time"

	"lexdesk/handlers"
	"lexdesk/middleware"
	"lexdesk/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options carries the settings route registration needs.
type Options struct {
	AllowedOrigins []string
	AdminSecret    []byte
}

// RegisterCallableRoutes registers task, case and user creation plus the
// session endpoints.
func RegisterCallableRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	sessions := r.Group("/api/sessions")
	{
		sessions.POST("", hb.Callable.CreateSession)
		sessions.GET("/verify", hb.Callable.VerifySession)
		sessions.DELETE("", hb.Callable.RevokeSession)
	}

	api := r.Group("/api")
	{
		api.Use(middleware.SessionAuthMiddleware(hb.Callable.Svc))
		api.POST("/tasks", middleware.RequireRole(models.RoleAdmin, models.RoleLawyer), hb.Callable.CreateTask)
		api.POST("/cases", middleware.RequireRole(models.RoleAdmin, models.RoleLawyer), hb.Callable.CreateCase)
		api.POST("/users", middleware.RequireRole(models.RoleAdmin), hb.Callable.CreateUser)
	}
}

// RegisterChatRoutes registers messaging, groups and the live stream.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.Use(middleware.SessionAuthMiddleware(hb.Callable.Svc))
		api.POST("/messages", hb.Chat.SendMessage)
		api.PATCH("/messages/:id", hb.Chat.EditMessage)
		api.DELETE("/messages/:id", hb.Chat.DeleteMessage)
		api.POST("/seen", hb.Chat.MarkSeen)
		api.GET("/unseen", hb.Chat.Unseen)
		api.GET("/history", hb.Chat.History)
		api.GET("/ws/:conversationId", hb.Chat.Watch)

		api.GET("/groups", hb.Chat.ListGroups)
		api.POST("/groups", hb.Chat.CreateGroup)
		api.PATCH("/groups/:id", hb.Chat.UpdateGroup)
		api.DELETE("/groups/:id", hb.Chat.DeleteGroup)
	}
}

// RegisterNotificationRoutes registers the inbox.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.SessionAuthMiddleware(hb.Callable.Svc))
		api.GET("", hb.Inbox.List)
		api.POST("/:id/seen", hb.Inbox.MarkSeen)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, secret []byte) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware(secret))
		adminGroup.GET("/users", hb.Admin.GetAllUsersHandler)
		adminGroup.GET("/jobs", hb.Admin.ListJobsHandler)
		adminGroup.POST("/jobs/:name/run", hb.Admin.RunJobHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	// Credentialed requests need explicit origins.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCallableRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterAdminRoutes(r, hb, opts.AdminSecret)
	RegisterHealthRoute(r, hb)
}
