package services

import (
	"fmt"
	"sort"

	"github.com/spendlens/insight-api/models"
	"github.com/spendlens/insight-api/utils"
)

// BudgetService allocates the income left after expenses across savings
// goals, proportional to goal priority.
type BudgetService struct{}

func NewBudgetService() *BudgetService {
	return &BudgetService{}
}

// Optimize builds the allocation plan. Expense categories are echoed in
// name order so the plan is stable regardless of map iteration.
func (s *BudgetService) Optimize(req models.OptimizeBudgetRequest) (*models.OptimizeBudgetResponse, error) {
	if req.MonthlyIncome <= 0 {
		return nil, models.Validationf("monthly income must be positive")
	}

	categories := make([]string, 0, len(req.ExpenseCategories))
	var totalExpenses float64
	for name, amount := range req.ExpenseCategories {
		categories = append(categories, name)
		totalExpenses += amount
	}
	sort.Strings(categories)

	plan := make([]models.BudgetAllocation, 0, len(categories)+len(req.SavingsGoals))
	for _, name := range categories {
		amount := req.ExpenseCategories[name]
		plan = append(plan, models.BudgetAllocation{
			Category:        name,
			AllocatedAmount: amount,
			Percentage:      amount / req.MonthlyIncome * 100,
		})
	}

	available := req.MonthlyIncome - totalExpenses
	if available < 0 {
		utils.SafeWarn("User %s is overspending: income=%s, expenses=%s",
			utils.MaskID(req.UserID), utils.MaskAmount(req.MonthlyIncome), utils.MaskAmount(totalExpenses))
		return &models.OptimizeBudgetResponse{
			UserID:                     req.UserID,
			AllocationPlan:             plan,
			TotalIncome:                req.MonthlyIncome,
			TotalAllocated:             totalExpenses,
			TotalSavingsPotential:      0,
			GoalAchievementProbability: map[string]float64{},
			Summary: fmt.Sprintf(
				"Current expenses (%.0f) exceed income (%.0f). Reduce spending first.",
				totalExpenses, req.MonthlyIncome),
		}, nil
	}

	goals := append([]models.SavingsGoal(nil), req.SavingsGoals...)
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].Priority > goals[j].Priority
	})

	probabilities := make(map[string]float64, len(goals))
	if len(goals) > 0 {
		totalPriority := 0
		for _, g := range goals {
			totalPriority += g.Priority
		}
		for _, g := range goals {
			allocation := 0.0
			if totalPriority > 0 {
				allocation = float64(g.Priority) / float64(totalPriority) * available
			}

			months := g.DeadlineMonths
			if months < 1 {
				months = 1
			}
			monthlyNeeded := g.TargetAmount / float64(months)
			probability := 0.5
			if monthlyNeeded > 0 {
				probability = allocation / monthlyNeeded
				if probability > 0.99 {
					probability = 0.99
				}
			}
			probabilities[g.Name] = probability

			plan = append(plan, models.BudgetAllocation{
				Category:        "Goal: " + g.Name,
				AllocatedAmount: allocation,
				Percentage:      allocation / req.MonthlyIncome * 100,
			})
		}
	}

	var totalAllocated float64
	for _, a := range plan {
		totalAllocated += a.AllocatedAmount
	}

	summary := fmt.Sprintf("Income: %.0f | Current Expenses: %.0f | Savings Potential: %.0f. ",
		req.MonthlyIncome, totalExpenses, available)
	if len(goals) > 0 {
		var probSum float64
		for _, p := range probabilities {
			probSum += p
		}
		summary += fmt.Sprintf("Average goal achievement probability: %.0f%%",
			probSum/float64(len(probabilities))*100)
	} else {
		summary += "No savings goals defined."
	}

	return &models.OptimizeBudgetResponse{
		UserID:                     req.UserID,
		AllocationPlan:             plan,
		TotalIncome:                req.MonthlyIncome,
		TotalAllocated:             totalAllocated,
		TotalSavingsPotential:      available,
		GoalAchievementProbability: probabilities,
		Summary:                    summary,
	}, nil
}
