package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/insight-api/models"
	"github.com/spendlens/insight-api/services"
)

func budgetRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/categorization/categorize", NewCategorizationHandler(services.NewCategorizerService()).Categorize)
	router.POST("/budget/optimize-budget", NewBudgetHandler(services.NewBudgetService()).OptimizeBudget)
	return router
}

func TestCategorizeEndpoint(t *testing.T) {
	router := budgetRouter()

	body := `{"description":"Concert tickets and cinema movie night","amount":600,"type":"Expense"}`
	w := postJSON(router, "/categorization/categorize", body)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.CategorizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Entertainment", resp.PredictedCategory)
	assert.NotEmpty(t, resp.AlternativeCategories)
}

func TestCategorizeEndpointRequiresDescription(t *testing.T) {
	router := budgetRouter()

	w := postJSON(router, "/categorization/categorize", `{"amount":20,"type":"Expense"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOptimizeBudgetEndpoint(t *testing.T) {
	router := budgetRouter()

	body := `{
		"userId": "u1",
		"monthly_income": 5000,
		"expense_categories": {"Rent": 1500, "Groceries": 500},
		"savings_goals": [
			{"name": "Emergency Fund", "target_amount": 6000, "deadline_months": 12, "priority": 3}
		]
	}`
	w := postJSON(router, "/budget/optimize-budget", body)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.OptimizeBudgetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp.UserID)
	assert.InDelta(t, 3000.0, resp.TotalSavingsPotential, 1e-9)
	assert.Contains(t, resp.GoalAchievementProbability, "Emergency Fund")
}

func TestOptimizeBudgetEndpointRejectsZeroIncome(t *testing.T) {
	router := budgetRouter()

	w := postJSON(router, "/budget/optimize-budget", `{"userId":"u1","monthly_income":0}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "income")
}
