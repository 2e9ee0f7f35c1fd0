package services

import (
	"fmt"
	"sort"

	"github.com/spendlens/insight-api/models"
	"github.com/spendlens/insight-api/utils"
)

// Fixed category groupings behind the spending-ratio features.
var essentialsCategories = map[string]bool{
	"Food & Dining":  true,
	"Groceries":      true,
	"Utilities":      true,
	"Transportation": true,
	"Healthcare":     true,
	"Medical":        true,
	"Insurance":      true,
}

var entertainmentCategories = map[string]bool{
	"Entertainment": true,
	"Shopping":      true,
	"Travel":        true,
	"Dining":        true,
	"Subscriptions": true,
}

// clusterStats are the derived per-cluster characteristics the persona
// cascade decides on.
type clusterStats struct {
	count              int
	expenseCount       int
	avgAmount          float64
	frequency          float64
	expenseRatio       float64
	essentialsRatio    float64
	entertainmentRatio float64
	topCategories      []string
	dominantCategory   string
}

// computeClusterStats derives the persona inputs for one cluster's rows.
func computeClusterStats(rows []txRow) clusterStats {
	stats := clusterStats{count: len(rows)}
	if len(rows) == 0 {
		return stats
	}

	amounts := make([]float64, len(rows))
	catCounts := make(map[string]int)
	var catOrder []string
	essentials, entertainment := 0, 0
	minDate, maxDate := rows[0].date, rows[0].date

	for i, r := range rows {
		amounts[i] = r.amount
		if _, seen := catCounts[r.category]; !seen {
			catOrder = append(catOrder, r.category)
		}
		catCounts[r.category]++
		if r.txType == models.TypeExpense {
			stats.expenseCount++
			if essentialsCategories[r.category] {
				essentials++
			}
			if entertainmentCategories[r.category] {
				entertainment++
			}
		}
		if r.date.Before(minDate) {
			minDate = r.date
		}
		if r.date.After(maxDate) {
			maxDate = r.date
		}
	}

	stats.avgAmount = utils.Mean(amounts)
	stats.expenseRatio = float64(stats.expenseCount) / float64(stats.count)
	if stats.expenseCount > 0 {
		stats.essentialsRatio = float64(essentials) / float64(stats.expenseCount)
		stats.entertainmentRatio = float64(entertainment) / float64(stats.expenseCount)
	}

	spanDays := int(maxDate.Sub(minDate).Hours() / 24)
	if spanDays < 1 {
		spanDays = 1
	}
	stats.frequency = float64(stats.count) / float64(spanDays) * 30

	// Top 3 categories by count, ties broken by first appearance.
	sorted := append([]string(nil), catOrder...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return catCounts[sorted[i]] > catCounts[sorted[j]]
	})
	if len(sorted) > 3 {
		sorted = sorted[:3]
	}
	stats.topCategories = sorted
	if len(sorted) > 0 {
		stats.dominantCategory = sorted[0]
	} else {
		stats.dominantCategory = "Unknown"
	}
	return stats
}

func containsCategory(cats []string, name string) bool {
	for _, c := range cats {
		if c == name {
			return true
		}
	}
	return false
}

// assignPersona maps cluster characteristics onto a persona label and
// description. The rules form an ordered cascade: the first match wins and
// the fallback always fires, so every cluster gets exactly one persona.
func assignPersona(s clusterStats) (label, description string) {
	switch {
	case (s.entertainmentRatio > 0.3 || (containsCategory(s.topCategories, "Food & Dining") && s.frequency > 5)) && s.avgAmount > 500:
		return "Lifestyle Spender", fmt.Sprintf(
			"Makes frequent discretionary purchases with an average transaction of %.0f. "+
				"Tends to spend on entertainment and dining. %d expense transactions.",
			s.avgAmount, s.expenseCount)

	case s.avgAmount < 500 && s.essentialsRatio > 0.6 && s.frequency > 3:
		return "Conscious Saver", fmt.Sprintf(
			"Focuses on essential spending with small, frequent purchases averaging %.0f. "+
				"Majority of spending (%.0f%%) on necessities.",
			s.avgAmount, s.essentialsRatio*100)

	case s.avgAmount > 3000 && s.frequency < 2:
		return "Big Ticket Buyer", fmt.Sprintf(
			"Makes occasional large purchases (avg %.0f) in %s. "+
				"Low transaction frequency suggests planned, strategic spending.",
			s.avgAmount, s.dominantCategory)

	case len(s.topCategories) >= 3 && s.avgAmount > 500 && s.avgAmount < 3000 &&
		s.entertainmentRatio > 0.3 && s.entertainmentRatio < 0.6:
		return "Balanced Spender", fmt.Sprintf(
			"Diversified spending across %d categories with moderate amounts (%.0f). "+
				"Balanced mix of essentials and discretionary spending.",
			len(s.topCategories), s.avgAmount)

	case s.essentialsRatio > 0.7 && s.entertainmentRatio < 0.15 && s.avgAmount < 2000:
		return "Essentials-First", fmt.Sprintf(
			"Prioritizes essential expenses in %s. %.0f%% of spending on necessities. "+
				"Minimal discretionary purchases.",
			s.dominantCategory, s.essentialsRatio*100)

	case s.frequency > 8 && s.avgAmount < 1000:
		return "Frequent Small Spender", fmt.Sprintf(
			"Makes %d frequent small purchases (avg %.0f). "+
				"Consistent, daily spending pattern.",
			s.count, s.avgAmount)

	case s.frequency < 1 && s.avgAmount > 2000:
		return "Occasional High Spender", fmt.Sprintf(
			"Few but significant purchases averaging %.0f. "+
				"Infrequent, high-value transactions.",
			s.avgAmount)

	default:
		return s.dominantCategory + " Focused", fmt.Sprintf(
			"Primary spending in %s with %d transactions averaging %.0f. "+
				"%.0f%% essentials, %.0f%% entertainment.",
			s.dominantCategory, s.count, s.avgAmount,
			s.essentialsRatio*100, s.entertainmentRatio*100)
	}
}
