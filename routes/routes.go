package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/spendlens/insight-api/config"
	"github.com/spendlens/insight-api/handlers"
	"github.com/spendlens/insight-api/services"
)

// SetupAnalysisRoutes registers the analysis engines.
func SetupAnalysisRoutes(rg *gin.RouterGroup, cfg *config.Config) {
	clustering := services.NewClusteringService(cfg.DefaultClusters)
	anomaly := services.NewAnomalyService(cfg.DefaultContamination)
	forecast := services.NewForecastService(cfg.DefaultForecastDays)

	h := handlers.NewAnalysisHandler(clustering, anomaly, forecast)

	rg.POST("/analysis/cluster", h.Cluster)
	rg.POST("/analysis/anomalies", h.Anomalies)
	rg.POST("/analysis/score-transaction", h.ScoreTransaction)
	rg.POST("/analysis/forecast", h.ExpenseForecast)
}

// SetupCategorizationRoutes registers the dictionary categorizer.
func SetupCategorizationRoutes(rg *gin.RouterGroup) {
	h := handlers.NewCategorizationHandler(services.NewCategorizerService())

	rg.POST("/analysis/categorize", h.Categorize)
}

// SetupBudgetRoutes registers the budget allocator.
func SetupBudgetRoutes(rg *gin.RouterGroup) {
	h := handlers.NewBudgetHandler(services.NewBudgetService())

	rg.POST("/analysis/optimize-budget", h.OptimizeBudget)
}
