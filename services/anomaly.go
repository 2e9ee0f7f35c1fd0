package services

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spendlens/insight-api/models"
	"github.com/spendlens/insight-api/utils"
)

// MinAnomalyTransactions is the hard precondition for batch detection.
const MinAnomalyTransactions = 5

// Contamination bounds: out-of-range values are rejected rather than
// silently passed to the detector, since a contamination at or above 0.5
// would declare half the history anomalous.
const maxContamination = 0.5

// AnomalyService flags unusual transactions, in batch via an isolation
// forest and per-transaction via a closed-form heuristic.
type AnomalyService struct {
	defaultContamination float64
}

func NewAnomalyService(defaultContamination float64) *AnomalyService {
	if defaultContamination <= 0 || defaultContamination > maxContamination {
		defaultContamination = 0.1
	}
	return &AnomalyService{defaultContamination: defaultContamination}
}

// Detect runs batch outlier detection over the full transaction list.
func (s *AnomalyService) Detect(req models.AnomalyRequest) (*models.AnomalyResponse, error) {
	if len(req.Transactions) < MinAnomalyTransactions {
		return nil, models.Validationf("need at least %d transactions for anomaly detection", MinAnomalyTransactions)
	}
	contamination := req.Contamination
	if contamination == 0 {
		contamination = s.defaultContamination
	}
	if contamination < 0 || contamination > maxContamination {
		return nil, models.Validationf("contamination must be in (0, %g]", maxContamination)
	}
	rows, err := parseRows(req.Transactions)
	if err != nil {
		return nil, err
	}

	scaled := utils.StandardizeColumns(anomalyFeatures(rows))
	forest := fitIsolationForest(scaled, rand.New(rand.NewSource(isolationSeed)))
	scores := forest.scoreAll(scaled)

	// Rows above the (1-contamination) quantile of the score distribution
	// are outliers, mirroring a contamination-calibrated threshold.
	threshold := utils.Quantile(scores, 1-contamination)
	var flagged []int
	for i, score := range scores {
		if score > threshold {
			flagged = append(flagged, i)
		}
	}
	sort.Slice(flagged, func(i, j int) bool {
		return scores[flagged[i]] > scores[flagged[j]]
	})

	indices := make([]int, len(flagged))
	flaggedScores := make([]float64, len(flagged))
	records := make([]models.AnomalyRecord, len(flagged))
	for i, idx := range flagged {
		indices[i] = idx
		flaggedScores[i] = scores[idx]
		records[i] = models.AnomalyRecord{
			ID:           uuid.New().String(),
			Index:        idx,
			Amount:       rows[idx].amount,
			Category:     rows[idx].category,
			Date:         req.Transactions[idx].Date,
			AnomalyScore: scores[idx],
			Reason:       explainAnomaly(rows[idx], rows),
		}
	}

	summary := fmt.Sprintf("Detected %d anomalous transactions (%.1f%% of total). ",
		len(flagged), float64(len(flagged))/float64(len(rows))*100)
	if len(records) > 0 {
		summary += fmt.Sprintf("Highest risk: %s spending of %.0f. ",
			records[0].Category, records[0].Amount)
		summary += "Consider reviewing these transactions for potential fraud or misclassification."
	}

	return &models.AnomalyResponse{
		UserID:               req.UserID,
		Anomalies:            indices,
		Scores:               flaggedScores,
		HighRiskTransactions: records,
		Summary:              summary,
	}, nil
}

// explainAnomaly generates the human-readable reason a transaction was
// flagged: category comparison first, then the global tail, then generic.
func explainAnomaly(tx txRow, rows []txRow) string {
	var categoryAmounts, allAmounts []float64
	for _, r := range rows {
		allAmounts = append(allAmounts, r.amount)
		if r.category == tx.category {
			categoryAmounts = append(categoryAmounts, r.amount)
		}
	}
	if len(categoryAmounts) > 1 {
		mean := utils.Mean(categoryAmounts)
		if mean > 0 && tx.amount > mean*2 {
			return fmt.Sprintf("Amount %.0f is %.0f%% above category average",
				tx.amount, (tx.amount/mean-1)*100)
		}
		if tx.amount < mean*0.5 {
			return fmt.Sprintf("Amount %.0f is unusually low for %s", tx.amount, tx.category)
		}
	}
	if tx.amount > utils.Quantile(allAmounts, 0.95) {
		return "Top 5% highest transaction by amount"
	}
	return "Unusual spending pattern detected"
}

// Risk level thresholds for single-transaction scoring.
const (
	highRiskThreshold   = 0.6
	mediumRiskThreshold = 0.3
	anomalyThreshold    = 0.5
)

// Score applies the closed-form heuristic to one candidate transaction.
// Retraining the ensemble per call would be wasteful for a single point,
// so the score is assembled from category z-scores and global quantiles.
func (s *AnomalyService) Score(req models.ScoreRequest) (*models.ScoreResponse, error) {
	if len(req.HistoricalTransactions) == 0 {
		return &models.ScoreResponse{
			AnomalyScore: 0,
			IsAnomaly:    false,
			Reason:       "Not enough historical data to assess",
			RiskLevel:    "low",
		}, nil
	}

	amount := req.NewTransaction.Amount
	category := req.NewTransaction.Category

	var categoryAmounts, expenseAmounts []float64
	for _, tx := range req.HistoricalTransactions {
		if tx.Category == category {
			categoryAmounts = append(categoryAmounts, tx.Amount)
		}
		if tx.IsExpense() {
			expenseAmounts = append(expenseAmounts, tx.Amount)
		}
	}

	score := 0.0
	var reasons []string

	if len(categoryAmounts) > 0 {
		mean := utils.Mean(categoryAmounts)
		std := utils.StdDev(categoryAmounts)
		if std > 0 {
			z := math.Abs(amount-mean) / std
			if z > 3 {
				score += 0.6
				reasons = append(reasons, fmt.Sprintf("Amount is %.1fσ away from %s average", z, category))
			} else if z > 2 {
				score += 0.3
				reasons = append(reasons, fmt.Sprintf("Amount is %.1fσ above %s mean", z, category))
			}
		} else if amount > mean*2 {
			score += 0.4
			reasons = append(reasons, fmt.Sprintf("Amount %.0f is 2x the %s average", amount, category))
		}
	} else {
		score += 0.2
		reasons = append(reasons, fmt.Sprintf("First transaction in %s category", category))
	}

	if len(expenseAmounts) > 0 {
		q95 := utils.Quantile(expenseAmounts, 0.95)
		if amount > q95*1.5 {
			score += 0.3
			reasons = append(reasons, "Top 1% highest transaction amount")
		} else if amount > q95 {
			score += 0.15
			reasons = append(reasons, "Top 5% by amount")
		}
	}

	if score > 1 {
		score = 1
	}

	riskLevel := "low"
	switch {
	case score >= highRiskThreshold:
		riskLevel = "high"
	case score >= mediumRiskThreshold:
		riskLevel = "medium"
	}

	reason := "Normal spending pattern"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, "; ")
	}

	return &models.ScoreResponse{
		AnomalyScore: score,
		IsAnomaly:    score > anomalyThreshold,
		Reason:       reason,
		RiskLevel:    riskLevel,
	}, nil
}
