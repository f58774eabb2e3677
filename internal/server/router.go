package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oshokin/spot-grabber/internal/config"
	"github.com/oshokin/spot-grabber/internal/service/grabber"
)

// NewRouter sets up the HTTP routes.
func NewRouter(
	ctx context.Context,
	cfg *config.Config,
	service grabber.Service,
	broadcaster *Broadcaster,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(requestLogger())
	router.Use(recovery())

	healthHandler := NewHealthHandler(service)
	router.GET("/health", healthHandler.Health)

	taskHandler := NewTaskHandler(ctx, cfg, service, broadcaster)

	v1 := router.Group("/api/v1")
	{
		tasks := v1.Group("/tasks")
		{
			tasks.POST("", taskHandler.StartTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("/cancel", taskHandler.CancelAllTasks)
			tasks.POST("/:id/cancel", taskHandler.CancelTask)
		}

		v1.GET("/validate", taskHandler.Validate)
		v1.GET("/version", taskHandler.Version)
		v1.GET("/events", taskHandler.Events)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}
