package routes

import (
	"time"

	"tabletalk/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the chat widget endpoints and the health check.
func RegisterRoutes(r *gin.Engine, assistant *handlers.AssistantHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.POST("/chat", assistant.ChatHandler)
	}

	r.GET("/health", handlers.HealthHandler)
}
