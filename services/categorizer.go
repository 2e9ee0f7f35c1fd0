package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spendlens/insight-api/models"
)

// CategorizerService predicts a transaction category from keyword rules
// plus amount heuristics. Declaration order is the tie-break for equal
// scores, so repeated calls categorize identically.
type CategorizerService struct{}

func NewCategorizerService() *CategorizerService {
	return &CategorizerService{}
}

// --- STATIC DICTIONARY ---
var categoryKeywords = []struct {
	name     string
	keywords []string
}{
	{"Food & Dining", []string{"restaurant", "food", "café", "pizza", "burger", "dinner", "lunch", "breakfast", "dine"}},
	{"Groceries", []string{"grocery", "supermarket", "market", "walmart", "costco", "trader", "whole foods", "publix"}},
	{"Shopping", []string{"amazon", "shop", "retail", "mall", "store", "buy", "purchase", "ebay", "target"}},
	{"Transportation", []string{"uber", "taxi", "gas", "fuel", "petrol", "parking", "toll", "transit", "car", "metro"}},
	{"Utilities", []string{"electric", "water", "internet", "phone", "bill", "gas company", "utility"}},
	{"Entertainment", []string{"cinema", "movie", "concert", "theater", "game", "netflix", "spotify", "gaming"}},
	{"Healthcare", []string{"hospital", "doctor", "pharmacy", "medical", "health", "clinic", "dental"}},
	{"Education", []string{"school", "university", "course", "education", "tuition", "udemy", "coursera", "books"}},
	{"Insurance", []string{"insurance", "premium", "policy"}},
	{"Travel", []string{"flight", "hotel", "airbnb", "booking", "travel", "airline", "resort"}},
	{"Salary", []string{"salary", "wage", "income", "paycheck", "employer"}},
	{"Rent", []string{"rent", "landlord", "tenancy", "housing"}},
}

const (
	salaryAmountThreshold = 5000
	smallExpenseThreshold = 500
)

// Categorize scores every category by keyword hits in the description and
// merchant name, lifts amount-typical categories, and picks the best.
func (s *CategorizerService) Categorize(req models.CategorizeRequest) (*models.CategorizeResponse, error) {
	description := strings.ToLower(req.Description)
	merchant := strings.ToLower(req.MerchantName)

	scores := make(map[string]int, len(categoryKeywords))
	order := make([]string, 0, len(categoryKeywords))
	for _, entry := range categoryKeywords {
		count := 0
		for _, kw := range entry.keywords {
			if strings.Contains(description, kw) || strings.Contains(merchant, kw) {
				count++
			}
		}
		scores[entry.name] = count
		order = append(order, entry.name)
	}

	// Amount heuristics: large incomes are almost always salary; small
	// expenses skew toward food and groceries.
	if req.Type == models.TypeIncome {
		if req.Amount > salaryAmountThreshold && scores["Salary"] < 5 {
			scores["Salary"] = 5
		}
	} else if req.Amount < smallExpenseThreshold {
		if scores["Food & Dining"] < 2 {
			scores["Food & Dining"] = 2
		}
		if scores["Groceries"] < 2 {
			scores["Groceries"] = 2
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	var predicted string
	var confidence float64
	if scores[order[0]] == 0 {
		predicted = "Other"
		confidence = 0.3
	} else {
		predicted = order[0]
		confidence = float64(scores[order[0]]+1) / 10
		if confidence < 0.5 {
			confidence = 0.5
		}
		if confidence > 0.99 {
			confidence = 0.99
		}
	}

	alternatives := make([]models.CategoryScore, 0, 3)
	for _, name := range order[1:4] {
		alt := float64(scores[name]+1) / 10
		if alt > 0.99 {
			alt = 0.99
		}
		alternatives = append(alternatives, models.CategoryScore{
			Category:   name,
			Confidence: alt,
		})
	}

	return &models.CategorizeResponse{
		PredictedCategory:     predicted,
		Confidence:            confidence,
		AlternativeCategories: alternatives,
		Explanation: fmt.Sprintf(
			"Matched keywords in description and merchant. Amount %.0f is typical for %s.",
			req.Amount, predicted),
	}, nil
}
