package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/TutorPal-F-2025/tutorpal-service/internal/models"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/services"
	"github.com/TutorPal-F-2025/tutorpal-service/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	directoryHandler *DirectoryHandler
	sessionHandler   *SessionHandler
	messageHandler   *MessageHandler
	adminHandler     *AdminHandler
	authMiddleware   *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
) *HandlerManager {
	authMiddleware := NewJWTAuthMiddleware(serviceManager.Account())

	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Account(), logger),
		directoryHandler: NewDirectoryHandler(serviceManager.Directory(), logger),
		sessionHandler:   NewSessionHandler(serviceManager.Session(), logger),
		messageHandler:   NewMessageHandler(serviceManager.Message(), logger),
		adminHandler:     NewAdminHandler(serviceManager.Seed(), serviceManager.Export(), logger),
		authMiddleware:   authMiddleware,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// Auth routes - registration and login are public
		auth := v1.Group("/auth")
		{
			auth.POST("/register/student", hm.authHandler.RegisterStudent)
			auth.POST("/register/tutor", hm.authHandler.RegisterTutor)
			auth.POST("/login", hm.authHandler.Login)
			auth.POST("/logout", hm.authMiddleware.AuthMiddleware(), hm.authHandler.Logout)
			auth.GET("/me", hm.authMiddleware.AuthMiddleware(), hm.authHandler.Me)
		}

		// Everything below requires an active session
		protected := v1.Group("")
		protected.Use(hm.authMiddleware.AuthMiddleware())
		{
			// Directory routes - all authenticated users
			tutors := protected.Group("/tutors")
			{
				tutors.GET("", hm.directoryHandler.SearchTutors)
				tutors.GET("/:id", hm.directoryHandler.GetTutor)
			}

			// Session routes - Students only
			sessions := protected.Group("/sessions")
			sessions.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent))
			{
				sessions.POST("", hm.sessionHandler.BookSession)
				sessions.GET("/upcoming", hm.sessionHandler.GetUpcomingSessions)
				sessions.GET("/past", hm.sessionHandler.GetPastSessions)
				sessions.POST("/:id/complete", hm.sessionHandler.CompleteSession)
				sessions.POST("/:id/rate", hm.sessionHandler.RateSession)
			}

			// Chat routes - all authenticated users
			chats := protected.Group("/chats")
			{
				chats.GET("", hm.messageHandler.ListChats)
				chats.GET("/:id/messages", hm.messageHandler.GetChatMessages)
				chats.POST("/:id/messages", hm.messageHandler.SendMessage)
			}

			// Admin routes
			admin := protected.Group("/admin")
			{
				admin.POST("/seed", hm.adminHandler.SeedDemoData)
				admin.GET("/export", hm.adminHandler.ExportDirectory)
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "tutorpal-service",
		})
	})
}
