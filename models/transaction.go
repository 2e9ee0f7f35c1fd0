package models

import (
	"fmt"
	"strings"
	"time"
)

// Transaction types as they arrive from the budget gateway.
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// Transaction is an immutable input record. Dates arrive as strings so the
// API accepts both plain calendar dates and full timestamps; engines parse
// them once at the boundary and never mutate the record afterwards.
type Transaction struct {
	Date         string  `json:"date" binding:"required"`
	Amount       float64 `json:"amount"`
	Type         string  `json:"type" binding:"required"`
	Category     string  `json:"category"`
	MerchantName string  `json:"merchantName"`
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool { return t.Type == TypeExpense }

// IsIncome reports whether the transaction is an income.
func (t Transaction) IsIncome() bool { return t.Type == TypeIncome }

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDate parses a transaction date string.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
