package services

import (
	"testing"

	"github.com/spendlens/insight-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(date string, amount float64, txType, category string) models.Transaction {
	return models.Transaction{
		Date:         date,
		Amount:       amount,
		Type:         txType,
		Category:     category,
		MerchantName: "Test Merchant",
	}
}

func TestParseRows(t *testing.T) {
	rows, err := parseRows([]models.Transaction{
		tx("2025-01-01", 100, models.TypeExpense, "Groceries"),
		tx("2025-01-02T10:30:00", 200, models.TypeIncome, "Salary"),
	})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].index)
	assert.Equal(t, 1, rows[1].index)

	_, err = parseRows([]models.Transaction{tx("not-a-date", 1, models.TypeExpense, "X")})
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
}

func TestClusteringFeatures(t *testing.T) {
	rows, err := parseRows([]models.Transaction{
		tx("2025-01-01", 100, models.TypeExpense, "Groceries"),
		tx("2025-01-02", 200, models.TypeIncome, "Salary"),
		tx("2025-01-03", 300, models.TypeExpense, "Groceries"),
	})
	require.NoError(t, err)

	table := clusteringFeatures(rows)
	require.Len(t, table, 3)
	for _, row := range table {
		assert.Len(t, row, len(clusteringFeatureNames))
	}

	// Global aggregates broadcast onto every row.
	assert.InDelta(t, 200.0, table[0][0], 1e-9)
	assert.InDelta(t, table[0][0], table[2][0], 1e-9)
	assert.InDelta(t, 2.0, table[0][2], 1e-9)            // two distinct categories
	assert.InDelta(t, 2.0/3.0, table[0][3], 1e-9)        // expense ratio
	assert.Equal(t, []float64{1, 0, 1}, []float64{table[0][5], table[1][5], table[2][5]})

	// Category IDs follow first appearance: Groceries=0, Salary=1.
	assert.Equal(t, 0.0, table[0][6])
	assert.Equal(t, 1.0, table[1][6])
	assert.Equal(t, 0.0, table[2][6])
}

func TestClusteringFeaturesSingleRowStdIsZero(t *testing.T) {
	rows, err := parseRows([]models.Transaction{
		tx("2025-01-01", 100, models.TypeExpense, "Groceries"),
	})
	require.NoError(t, err)

	table := clusteringFeatures(rows)
	assert.Equal(t, 0.0, table[0][1])
}

func TestAnomalyFeatures(t *testing.T) {
	rows, err := parseRows([]models.Transaction{
		tx("2025-01-06", 100, models.TypeExpense, "Groceries"), // Monday
		tx("2025-01-07", 300, models.TypeExpense, "Groceries"),
		tx("2025-01-12", 500, models.TypeIncome, "Salary"), // Sunday
	})
	require.NoError(t, err)

	table := anomalyFeatures(rows)
	require.Len(t, table, 3)
	for _, row := range table {
		assert.Len(t, row, len(anomalyFeatureNames))
	}

	// Category deviation: Groceries mean is 200.
	assert.InDelta(t, (100.0-200.0)/201.0, table[0][3], 1e-9)
	assert.InDelta(t, (300.0-200.0)/201.0, table[1][3], 1e-9)

	assert.Equal(t, 0.0, table[0][4])
	assert.Equal(t, 1.0, table[2][4])

	assert.Equal(t, 0.0, table[0][5]) // Monday
	assert.Equal(t, 6.0, table[2][5]) // Sunday
}

func TestAnomalyFeaturesIdenticalAmountsZScoreZero(t *testing.T) {
	rows, err := parseRows([]models.Transaction{
		tx("2025-01-01", 50, models.TypeExpense, "A"),
		tx("2025-01-02", 50, models.TypeExpense, "A"),
		tx("2025-01-03", 50, models.TypeExpense, "A"),
	})
	require.NoError(t, err)

	for _, row := range anomalyFeatures(rows) {
		assert.Equal(t, 0.0, row[2])
	}
}
