package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendlens/insight-api/middleware"
	"github.com/spendlens/insight-api/models"
	"github.com/spendlens/insight-api/services"
	"github.com/spendlens/insight-api/utils"
)

// AnalysisHandler exposes the three analysis engines over HTTP. Handlers
// only bind, log and translate errors; all semantics live in services.
type AnalysisHandler struct {
	Clustering *services.ClusteringService
	Anomaly    *services.AnomalyService
	Forecast   *services.ForecastService
}

func NewAnalysisHandler(clustering *services.ClusteringService, anomaly *services.AnomalyService, forecast *services.ForecastService) *AnalysisHandler {
	return &AnalysisHandler{
		Clustering: clustering,
		Anomaly:    anomaly,
		Forecast:   forecast,
	}
}

// requestUserID attributes log lines to the authenticated token subject
// when auth is on, falling back to the client-supplied body field.
func requestUserID(c *gin.Context, bodyID string) string {
	if id := middleware.GetUserID(c); id != "" {
		return id
	}
	return bodyID
}

// respondError maps the error taxonomy onto HTTP: validation failures
// carry their message to the caller, anything else is logged and surfaced
// as a generic internal failure (retrying deterministic input would only
// reproduce it).
func respondError(c *gin.Context, analysis string, err error) {
	if models.IsValidation(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	utils.SafeError("%s failed: %v", analysis, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
}

// Cluster segments transactions into spending personas.
func (h *AnalysisHandler) Cluster(c *gin.Context) {
	var req models.ClusterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	utils.LogAnalysis("clustering", requestUserID(c, req.UserID), len(req.Transactions))

	resp, err := h.Clustering.Analyze(req)
	if err != nil {
		respondError(c, "clustering", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Anomalies runs batch outlier detection.
func (h *AnalysisHandler) Anomalies(c *gin.Context) {
	var req models.AnomalyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	utils.LogAnalysis("anomaly detection", requestUserID(c, req.UserID), len(req.Transactions))

	resp, err := h.Anomaly.Detect(req)
	if err != nil {
		respondError(c, "anomaly detection", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ScoreTransaction scores a single transaction against history.
func (h *AnalysisHandler) ScoreTransaction(c *gin.Context) {
	var req models.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	utils.LogAnalysis("transaction scoring", requestUserID(c, req.UserID), len(req.HistoricalTransactions))

	resp, err := h.Anomaly.Score(req)
	if err != nil {
		respondError(c, "transaction scoring", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExpenseForecast projects future daily expenses.
func (h *AnalysisHandler) ExpenseForecast(c *gin.Context) {
	var req models.ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	utils.LogAnalysis("forecasting", requestUserID(c, req.UserID), len(req.Transactions))

	resp, err := h.Forecast.Forecast(req)
	if err != nil {
		respondError(c, "forecasting", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
