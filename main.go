package main

import (
	"log"
	"time"

	"github.com/spendlens/insight-api/config"
	"github.com/spendlens/insight-api/middleware"
	"github.com/spendlens/insight-api/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	router := gin.Default()

	allowedOrigins := []string{cfg.FrontendURL, "http://localhost:3000"}

	log.Printf("🌍 CORS: Allowing origins:")
	for _, origin := range allowedOrigins {
		log.Printf("   - %s", origin)
	}

	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(func(c *gin.Context) {
		start := time.Now()
		log.Printf("📨 %s %s from %s", c.Request.Method, c.Request.URL.Path, c.ClientIP())
		c.Next()
		duration := time.Since(start)
		log.Printf("✅ %s %s - %d (%v)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), duration)
	})

	router.Use(middleware.RateLimiter(cfg.RateLimit, cfg.RateWindow))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.BearerAuth(cfg.AuthSecret))
	{
		routes.SetupAnalysisRoutes(v1, cfg)
		routes.SetupCategorizationRoutes(v1)
		routes.SetupBudgetRoutes(v1)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "insight-api",
			"endpoints": []string{
				"/api/v1/analysis/cluster",
				"/api/v1/analysis/anomalies",
				"/api/v1/analysis/score-transaction",
				"/api/v1/analysis/forecast",
				"/api/v1/analysis/categorize",
				"/api/v1/analysis/optimize-budget",
			},
			"version": "1.0.0",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	log.Printf("🚀 Server starting on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
