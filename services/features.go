package services

import (
	"math"
	"time"

	"github.com/spendlens/insight-api/models"
	"github.com/spendlens/insight-api/utils"
)

// txRow is a transaction with its parsed date and original position. All
// derived feature tables reference rows by this index.
type txRow struct {
	index    int
	date     time.Time
	amount   float64
	txType   string
	category string
	merchant string
}

// parseRows validates and parses the raw transaction list once at the
// engine boundary. A malformed date is a caller mistake, not a
// computation failure.
func parseRows(txs []models.Transaction) ([]txRow, error) {
	rows := make([]txRow, len(txs))
	for i, tx := range txs {
		ts, err := models.ParseDate(tx.Date)
		if err != nil {
			return nil, models.Validationf("transaction %d: %v", i, err)
		}
		rows[i] = txRow{
			index:    i,
			date:     ts,
			amount:   tx.Amount,
			txType:   tx.Type,
			category: tx.Category,
			merchant: tx.MerchantName,
		}
	}
	return rows, nil
}

// Feature column names, in table order. The clustering response reports
// feature importance under these keys.
var (
	clusteringFeatureNames = []string{
		"avg_amount", "std_amount", "num_categories", "expense_ratio",
		"amount", "is_expense", "category_id",
	}
	anomalyFeatureNames = []string{
		"amount", "log_amount", "amount_zscore", "category_deviation",
		"is_income", "day_of_week",
	}
)

// clusteringFeatures builds one feature vector per transaction: global
// aggregates broadcast onto every row plus per-row amount, expense flag
// and a first-appearance category encoding.
func clusteringFeatures(rows []txRow) [][]float64 {
	amounts := make([]float64, len(rows))
	for i, r := range rows {
		amounts[i] = r.amount
	}
	avgAmount := utils.Mean(amounts)
	stdAmount := utils.StdDev(amounts)

	categoryIDs := make(map[string]int)
	expenses := 0
	for _, r := range rows {
		if _, seen := categoryIDs[r.category]; !seen {
			categoryIDs[r.category] = len(categoryIDs)
		}
		if r.txType == models.TypeExpense {
			expenses++
		}
	}
	numCategories := float64(len(categoryIDs))
	expenseRatio := float64(expenses) / float64(len(rows))

	table := make([][]float64, len(rows))
	for i, r := range rows {
		isExpense := 0.0
		if r.txType == models.TypeExpense {
			isExpense = 1
		}
		table[i] = []float64{
			avgAmount, stdAmount, numCategories, expenseRatio,
			r.amount, isExpense, float64(categoryIDs[r.category]),
		}
	}
	return table
}

// anomalyFeatures builds the outlier-detection feature table. log1p
// compresses the heavy-tailed amount distribution so isolation splits are
// not dominated by a few large values; the "+1" in the category deviation
// guards against near-zero category means.
func anomalyFeatures(rows []txRow) [][]float64 {
	amounts := make([]float64, len(rows))
	for i, r := range rows {
		amounts[i] = r.amount
	}
	mean := utils.Mean(amounts)
	std := utils.StdDev(amounts)

	catSums := make(map[string]float64)
	catCounts := make(map[string]int)
	for _, r := range rows {
		catSums[r.category] += r.amount
		catCounts[r.category]++
	}

	table := make([][]float64, len(rows))
	for i, r := range rows {
		zscore := 0.0
		if std > 0 {
			zscore = (r.amount - mean) / std
		}
		catMean := catSums[r.category] / float64(catCounts[r.category])
		isIncome := 0.0
		if r.txType == models.TypeIncome {
			isIncome = 1
		}
		table[i] = []float64{
			r.amount,
			math.Log1p(r.amount),
			zscore,
			(r.amount - catMean) / (catMean + 1),
			isIncome,
			float64(utils.WeekdayIndex(r.date)),
		}
	}
	return table
}
