package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and configures the Gin router.
func SetupRouter() *gin.Engine {
	r := gin.Default() // Logger and Recovery middleware included

	// CORS middleware configuration
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	r.Use(cors.New(config))

	// Health check endpoint
	r.GET("/health", HealthCheckHandler)

	// Status endpoint with pool and database information
	r.GET("/status", StatusHandler)

	r.POST("/shorten", ShortenHandler)
	r.POST("/validate", ValidateHandler)
	r.GET("/:shortString", RedirectHandler)

	return r
}
