package models

// CategorizeRequest asks the dictionary categorizer for a label.
type CategorizeRequest struct {
	Description  string  `json:"description" binding:"required"`
	Amount       float64 `json:"amount"`
	MerchantName string  `json:"merchantName"`
	Type         string  `json:"type" binding:"required"`
}

// CategoryScore pairs a category with its confidence.
type CategoryScore struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// CategorizeResponse is the predicted category with alternatives.
type CategorizeResponse struct {
	PredictedCategory     string          `json:"predicted_category"`
	Confidence            float64         `json:"confidence"`
	AlternativeCategories []CategoryScore `json:"alternative_categories"`
	Explanation           string          `json:"explanation"`
}

// SavingsGoal is a user-supplied savings target.
type SavingsGoal struct {
	Name           string  `json:"name" binding:"required"`
	TargetAmount   float64 `json:"target_amount"`
	Priority       int     `json:"priority"`
	DeadlineMonths int     `json:"deadline_months"`
}

// OptimizeBudgetRequest asks for a budget allocation plan.
type OptimizeBudgetRequest struct {
	UserID              string             `json:"userId"`
	MonthlyIncome       float64            `json:"monthly_income"`
	ExpenseCategories   map[string]float64 `json:"expense_categories"`
	SavingsGoals        []SavingsGoal      `json:"savings_goals"`
	MinimumExpenseRatio float64            `json:"minimum_expense_ratio"`
}

// BudgetAllocation is one row of the allocation plan.
type BudgetAllocation struct {
	Category        string  `json:"category"`
	AllocatedAmount float64 `json:"allocated_amount"`
	Percentage      float64 `json:"percentage"`
}

// OptimizeBudgetResponse is the proportional-split allocation result.
type OptimizeBudgetResponse struct {
	UserID                     string             `json:"userId"`
	AllocationPlan             []BudgetAllocation `json:"allocation_plan"`
	TotalIncome                float64            `json:"total_income"`
	TotalAllocated             float64            `json:"total_allocated"`
	TotalSavingsPotential      float64            `json:"total_savings_potential"`
	GoalAchievementProbability map[string]float64 `json:"goal_achievement_probability"`
	Summary                    string             `json:"summary"`
}
