package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendlens/insight-api/models"
	"github.com/spendlens/insight-api/services"
	"github.com/spendlens/insight-api/utils"
)

// BudgetHandler exposes the budget allocator.
type BudgetHandler struct {
	Budget *services.BudgetService
}

func NewBudgetHandler(budget *services.BudgetService) *BudgetHandler {
	return &BudgetHandler{Budget: budget}
}

// OptimizeBudget builds a goal allocation plan from monthly figures.
func (h *BudgetHandler) OptimizeBudget(c *gin.Context) {
	var req models.OptimizeBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	utils.SafeInfo("[Budget] optimizing for user %s (%d goals)",
		utils.MaskID(requestUserID(c, req.UserID)), len(req.SavingsGoals))

	resp, err := h.Budget.Optimize(req)
	if err != nil {
		respondError(c, "budget optimization", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
