package models

// ClusterRequest asks for spending-pattern segmentation.
type ClusterRequest struct {
	UserID       string        `json:"userId"`
	Transactions []Transaction `json:"transactions" binding:"required"`
	NumClusters  int           `json:"n_clusters"`
}

// ClusterTransaction is one transaction echoed back inside a cluster.
type ClusterTransaction struct {
	Index    int     `json:"index"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
}

// ClusterInfo describes one cluster with its persona label.
type ClusterInfo struct {
	ID            int                  `json:"id"`
	Label         string               `json:"label"`
	Description   string               `json:"description"`
	Count         int                  `json:"count"`
	AvgAmount     float64              `json:"avg_amount"`
	TopCategories []string             `json:"top_categories"`
	Transactions  []ClusterTransaction `json:"transactions"`
}

// ClusterResponse is the full segmentation result.
type ClusterResponse struct {
	UserID            string             `json:"userId"`
	Clusters          []ClusterInfo      `json:"clusters"`
	FeatureImportance map[string]float64 `json:"feature_importance"`
	Summary           string             `json:"summary"`
}

// AnomalyRequest asks for batch outlier detection.
type AnomalyRequest struct {
	UserID        string        `json:"userId"`
	Transactions  []Transaction `json:"transactions" binding:"required"`
	Contamination float64       `json:"contamination"`
}

// AnomalyRecord is one flagged transaction with its explanation.
type AnomalyRecord struct {
	ID           string  `json:"id"`
	Index        int     `json:"index"`
	Amount       float64 `json:"amount"`
	Category     string  `json:"category"`
	Date         string  `json:"date"`
	AnomalyScore float64 `json:"anomaly_score"`
	Reason       string  `json:"reason"`
}

// AnomalyResponse is the batch detection result. HighRiskTransactions are
// sorted by descending anomaly score.
type AnomalyResponse struct {
	UserID               string          `json:"userId"`
	Anomalies            []int           `json:"anomalies"`
	Scores               []float64       `json:"scores"`
	HighRiskTransactions []AnomalyRecord `json:"high_risk_transactions"`
	Summary              string          `json:"summary"`
}

// ScoreRequest asks for a single-transaction risk score against history.
type ScoreRequest struct {
	UserID                 string        `json:"userId"`
	NewTransaction         Transaction   `json:"new_transaction" binding:"required"`
	HistoricalTransactions []Transaction `json:"historical_transactions"`
}

// ScoreResponse is the heuristic risk verdict for one transaction.
type ScoreResponse struct {
	AnomalyScore float64 `json:"anomaly_score"`
	IsAnomaly    bool    `json:"is_anomaly"`
	Reason       string  `json:"reason"`
	RiskLevel    string  `json:"risk_level"`
}

// ForecastRequest asks for a daily expense forecast.
type ForecastRequest struct {
	UserID       string        `json:"userId"`
	Transactions []Transaction `json:"transactions" binding:"required"`
	ForecastDays int           `json:"forecast_days"`
}

// ForecastPoint is one predicted future day.
type ForecastPoint struct {
	Date             string  `json:"date"`
	PredictedExpense float64 `json:"predicted_expense"`
	Confidence       float64 `json:"confidence"`
	RangeLow         float64 `json:"range_low"`
	RangeHigh        float64 `json:"range_high"`
	SeasonalDay      string  `json:"seasonal_day"`
}

// ForecastResponse is the projected expense sequence with trend advice.
type ForecastResponse struct {
	UserID   string          `json:"userId"`
	Forecast []ForecastPoint `json:"forecast"`
	Trend    string          `json:"trend"`
	Summary  string          `json:"summary"`
}
