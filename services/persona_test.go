package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/insight-api/models"
)

func TestAssignPersonaCascade(t *testing.T) {
	tests := []struct {
		name  string
		stats clusterStats
		want  string
	}{
		{
			name: "lifestyle spender on entertainment share",
			stats: clusterStats{
				count: 10, expenseCount: 10, avgAmount: 800,
				frequency: 2, entertainmentRatio: 0.5,
				topCategories:    []string{"Entertainment", "Shopping"},
				dominantCategory: "Entertainment",
			},
			want: "Lifestyle Spender",
		},
		{
			name: "lifestyle spender on frequent dining",
			stats: clusterStats{
				count: 12, expenseCount: 12, avgAmount: 600,
				frequency: 6, entertainmentRatio: 0.1,
				topCategories:    []string{"Food & Dining", "Utilities"},
				dominantCategory: "Food & Dining",
			},
			want: "Lifestyle Spender",
		},
		{
			name: "conscious saver",
			stats: clusterStats{
				count: 15, expenseCount: 15, avgAmount: 200,
				frequency: 5, essentialsRatio: 0.8,
				topCategories:    []string{"Groceries"},
				dominantCategory: "Groceries",
			},
			want: "Conscious Saver",
		},
		{
			name: "big ticket buyer",
			stats: clusterStats{
				count: 2, expenseCount: 2, avgAmount: 5000,
				frequency:        1,
				topCategories:    []string{"Travel"},
				dominantCategory: "Travel",
			},
			want: "Big Ticket Buyer",
		},
		{
			name: "essentials first",
			stats: clusterStats{
				count: 8, expenseCount: 8, avgAmount: 1500,
				frequency: 2.5, essentialsRatio: 0.9, entertainmentRatio: 0.1,
				topCategories:    []string{"Utilities", "Groceries"},
				dominantCategory: "Utilities",
			},
			want: "Essentials-First",
		},
		{
			name: "frequent small spender",
			stats: clusterStats{
				count: 30, expenseCount: 30, avgAmount: 50,
				frequency: 10, essentialsRatio: 0.3, entertainmentRatio: 0.2,
				topCategories:    []string{"Coffee", "Snacks"},
				dominantCategory: "Coffee",
			},
			want: "Frequent Small Spender",
		},
		{
			name: "occasional high spender",
			stats: clusterStats{
				count: 3, expenseCount: 3, avgAmount: 2500,
				frequency: 0.5, essentialsRatio: 0.3, entertainmentRatio: 0.2,
				topCategories:    []string{"Electronics"},
				dominantCategory: "Electronics",
			},
			want: "Occasional High Spender",
		},
		{
			name: "dominant category fallback",
			stats: clusterStats{
				count: 5, expenseCount: 5, avgAmount: 1200,
				frequency: 3, essentialsRatio: 0.4, entertainmentRatio: 0.2,
				topCategories:    []string{"Pets", "Garden"},
				dominantCategory: "Pets",
			},
			want: "Pets Focused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, description := assignPersona(tt.stats)
			assert.Equal(t, tt.want, label)
			assert.NotEmpty(t, description)
		})
	}
}

func TestComputeClusterStats(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
	}
	rows := []txRow{
		{date: day(1), amount: 100, txType: models.TypeExpense, category: "Groceries"},
		{date: day(5), amount: 200, txType: models.TypeExpense, category: "Groceries"},
		{date: day(10), amount: 300, txType: models.TypeExpense, category: "Entertainment"},
		{date: day(31), amount: 400, txType: models.TypeIncome, category: "Salary"},
	}

	stats := computeClusterStats(rows)

	assert.Equal(t, 4, stats.count)
	assert.Equal(t, 3, stats.expenseCount)
	assert.InDelta(t, 250.0, stats.avgAmount, 1e-9)
	assert.InDelta(t, 0.75, stats.expenseRatio, 1e-9)
	assert.InDelta(t, 2.0/3.0, stats.essentialsRatio, 1e-9)
	assert.InDelta(t, 1.0/3.0, stats.entertainmentRatio, 1e-9)

	// 4 transactions over a 30-day span, scaled to a monthly rate.
	assert.InDelta(t, 4.0, stats.frequency, 1e-9)

	require.Equal(t, []string{"Groceries", "Entertainment", "Salary"}, stats.topCategories)
	assert.Equal(t, "Groceries", stats.dominantCategory)
}

func TestComputeClusterStatsSingleDay(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	rows := []txRow{
		{date: day, amount: 50, txType: models.TypeExpense, category: "Food & Dining"},
		{date: day, amount: 70, txType: models.TypeExpense, category: "Food & Dining"},
	}

	stats := computeClusterStats(rows)

	// Span clamps to one day so the monthly rate stays finite.
	assert.InDelta(t, 60.0, stats.frequency, 1e-9)
	assert.InDelta(t, 1.0, stats.essentialsRatio, 1e-9)
	assert.Equal(t, []string{"Food & Dining"}, stats.topCategories)
}
