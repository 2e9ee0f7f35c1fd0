package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/insight-api/models"
)

func TestClusteringRejectsTooFewTransactions(t *testing.T) {
	svc := NewClusteringService(5)

	_, err := svc.Analyze(models.ClusterRequest{
		UserID: "u1",
		Transactions: []models.Transaction{
			tx("2024-01-01", 10, models.TypeExpense, "Food & Dining"),
			tx("2024-01-02", 20, models.TypeExpense, "Food & Dining"),
		},
	})

	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
}

func TestClusteringClampsClusterCount(t *testing.T) {
	svc := NewClusteringService(5)

	resp, err := svc.Analyze(models.ClusterRequest{
		UserID:      "u1",
		NumClusters: 5,
		Transactions: []models.Transaction{
			tx("2024-01-01", 10, models.TypeExpense, "Food & Dining"),
			tx("2024-01-02", 5000, models.TypeExpense, "Rent"),
			tx("2024-01-03", 12, models.TypeExpense, "Food & Dining"),
		},
	})

	require.NoError(t, err)
	assert.LessOrEqual(t, len(resp.Clusters), 2)
	assert.Equal(t, "u1", resp.UserID)
}

func TestClusteringPartitionsEveryTransaction(t *testing.T) {
	svc := NewClusteringService(5)
	txs := []models.Transaction{
		tx("2024-01-01", 12, models.TypeExpense, "Food & Dining"),
		tx("2024-01-02", 15, models.TypeExpense, "Food & Dining"),
		tx("2024-01-03", 18, models.TypeExpense, "Groceries"),
		tx("2024-01-04", 2500, models.TypeExpense, "Rent"),
		tx("2024-01-05", 2600, models.TypeExpense, "Rent"),
		tx("2024-01-06", 90, models.TypeExpense, "Entertainment"),
		tx("2024-01-07", 3000, models.TypeIncome, "Salary"),
		tx("2024-01-08", 22, models.TypeExpense, "Groceries"),
	}

	resp, err := svc.Analyze(models.ClusterRequest{UserID: "u1", NumClusters: 3, Transactions: txs})
	require.NoError(t, err)

	seen := make(map[int]bool)
	for clusterID, cluster := range resp.Clusters {
		assert.Equal(t, clusterID, cluster.ID)
		assert.NotEmpty(t, cluster.Label)
		assert.NotEmpty(t, cluster.Description)
		assert.Equal(t, len(cluster.Transactions), cluster.Count)
		for _, ct := range cluster.Transactions {
			assert.False(t, seen[ct.Index], "transaction %d assigned twice", ct.Index)
			seen[ct.Index] = true
			assert.Equal(t, txs[ct.Index].Amount, ct.Amount)
			assert.Equal(t, txs[ct.Index].Date, ct.Date)
		}
	}
	assert.Len(t, seen, len(txs))

	require.Len(t, resp.FeatureImportance, len(clusteringFeatureNames))
	assert.Contains(t, resp.Summary, "spending pattern clusters")
}

func TestClusteringDeterministic(t *testing.T) {
	svc := NewClusteringService(5)
	txs := []models.Transaction{
		tx("2024-01-01", 12, models.TypeExpense, "Food & Dining"),
		tx("2024-01-02", 15, models.TypeExpense, "Groceries"),
		tx("2024-01-03", 2500, models.TypeExpense, "Rent"),
		tx("2024-01-04", 95, models.TypeExpense, "Entertainment"),
		tx("2024-01-05", 3000, models.TypeIncome, "Salary"),
		tx("2024-01-06", 20, models.TypeExpense, "Food & Dining"),
	}
	req := models.ClusterRequest{UserID: "u1", NumClusters: 3, Transactions: txs}

	first, err := svc.Analyze(req)
	require.NoError(t, err)
	second, err := svc.Analyze(req)
	require.NoError(t, err)

	require.Len(t, second.Clusters, len(first.Clusters))
	for i := range first.Clusters {
		assert.Equal(t, first.Clusters[i].Label, second.Clusters[i].Label)
		assert.Equal(t, first.Clusters[i].Count, second.Clusters[i].Count)
	}
	assert.Equal(t, first.Summary, second.Summary)
}

func TestTopFactors(t *testing.T) {
	importance := map[string]float64{
		"amount":        2.0,
		"is_expense":    0.5,
		"avg_amount":    1.5,
		"category_id":   0.5,
		"std_amount":    0.1,
		"expense_ratio": 3.0,
	}

	top := topFactors(importance, 3)
	assert.Equal(t, []string{"expense_ratio", "amount", "avg_amount"}, top)
}
