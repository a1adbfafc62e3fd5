package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/songminho/ragconsole/internal/api/middleware"
	"github.com/songminho/ragconsole/internal/console"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	AllowOrigins []string
}

// SetupRouter wires the console pages and actions into a Gin engine.
func SetupRouter(
	adminConsole *console.AdminConsole,
	appConsole *console.AppConsole,
	logger *zap.Logger,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Gateway liveness (the backend's /health is proxied through the
	// user console's status indicator instead).
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/", func(c *gin.Context) {
		c.Redirect(303, "/app")
	})

	adminHandler := NewAdminHandler(adminConsole)
	adminHandler.RegisterRoutes(r)

	appHandler := NewAppHandler(appConsole)
	appHandler.RegisterRoutes(r)

	return r
}
