package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/spendlens/insight-api/models"
	"github.com/spendlens/insight-api/utils"
)

// Forecasting preconditions and bounds.
const (
	MinForecastTransactions = 10
	maxForecastDays         = 365
	minSeasonalityDays      = 14
	minDailySpend           = 100
)

// ForecastService projects daily expenses from an EMA level, a short-term
// trend slope and a weekly seasonality table.
type ForecastService struct {
	defaultDays int
}

func NewForecastService(defaultDays int) *ForecastService {
	if defaultDays <= 0 {
		defaultDays = 30
	}
	return &ForecastService{defaultDays: defaultDays}
}

// Forecast produces one point per future day, starting the day after the
// latest historical date.
func (s *ForecastService) Forecast(req models.ForecastRequest) (*models.ForecastResponse, error) {
	if len(req.Transactions) < MinForecastTransactions {
		return nil, models.Validationf("need at least %d transactions for forecasting", MinForecastTransactions)
	}
	rows, err := parseRows(req.Transactions)
	if err != nil {
		return nil, err
	}

	var expenses []txRow
	for _, r := range rows {
		if r.txType == models.TypeExpense {
			expenses = append(expenses, r)
		}
	}
	if len(expenses) < MinForecastTransactions {
		return nil, models.Validationf("need at least %d expense transactions", MinForecastTransactions)
	}

	days, totals := dailyTotals(expenses)
	meanDaily := utils.Mean(totals)
	stdDaily := utils.StdDev(totals)

	span := 7
	if len(totals) < span {
		span = len(totals)
	}
	smoothed := utils.EMA(totals, span)
	level := smoothed[len(smoothed)-1]

	trend := 0.0
	if len(smoothed) >= 7 {
		trend = utils.Slope(smoothed[len(smoothed)-7:])
	}

	factors, seasonal := weekdayFactors(days, totals)

	horizon := req.ForecastDays
	if horizon <= 0 {
		horizon = s.defaultDays
	}
	if horizon > maxForecastDays {
		horizon = maxForecastDays
	}

	lastDate := days[len(days)-1]
	forecast := make([]models.ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		date := lastDate.AddDate(0, 0, i)
		weekday := utils.WeekdayIndex(date)

		predicted := level + trend*float64(i)
		if predicted < 0 {
			predicted = 0
		}
		predicted *= factors[weekday]
		if predicted < minDailySpend {
			predicted = minDailySpend
		}

		// Confidence decays with horizon distance; the seasonal table adds
		// a boost because weekly rhythm narrows the plausible range.
		confidence := 1 - float64(i)/float64(horizon)*0.3
		if confidence < 0.6 {
			confidence = 0.6
		}
		if seasonal {
			confidence += 0.1
		}
		if confidence > 0.95 {
			confidence = 0.95
		}

		halfWidth := stdDaily * (1 - confidence) * 1.5
		low := predicted - halfWidth
		if low < 0 {
			low = 0
		}

		forecast = append(forecast, models.ForecastPoint{
			Date:             date.Format("2006-01-02"),
			PredictedExpense: predicted,
			Confidence:       confidence,
			RangeLow:         low,
			RangeHigh:        predicted + halfWidth,
			SeasonalDay:      utils.WeekdayLabels[weekday],
		})
	}

	trendLabel, trendMsg := classifyTrend(trend, stdDaily)

	summary := fmt.Sprintf("EMA-based %d-day forecast using %d days of history. ", horizon, len(days))
	summary += fmt.Sprintf("Average daily expense: %.0f. ", meanDaily)
	if seasonal {
		summary += "Adjusted for weekly seasonality. "
	}
	summary += trendMsg

	return &models.ForecastResponse{
		UserID:   req.UserID,
		Forecast: forecast,
		Trend:    trendLabel,
		Summary:  summary,
	}, nil
}

// dailyTotals sums expense amounts per calendar day, ordered by date.
func dailyTotals(expenses []txRow) ([]time.Time, []float64) {
	byDay := make(map[string]float64)
	for _, r := range expenses {
		byDay[r.date.Format("2006-01-02")] += r.amount
	}
	keys := make([]string, 0, len(byDay))
	for key := range byDay {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	days := make([]time.Time, len(keys))
	totals := make([]float64, len(keys))
	for i, key := range keys {
		day, _ := time.Parse("2006-01-02", key)
		days[i] = day
		totals[i] = byDay[key]
	}
	return days, totals
}

// weekdayFactors derives the multiplicative seasonality table: each
// weekday's mean daily total relative to the mean of the weekday means.
// With under two weeks of history there is no weekly signal and all
// factors stay at 1.
func weekdayFactors(days []time.Time, totals []float64) ([7]float64, bool) {
	factors := [7]float64{1, 1, 1, 1, 1, 1, 1}
	if len(days) < minSeasonalityDays {
		return factors, false
	}

	sums := [7]float64{}
	counts := [7]int{}
	for i, day := range days {
		wd := utils.WeekdayIndex(day)
		sums[wd] += totals[i]
		counts[wd]++
	}

	var meanSum float64
	present := 0
	means := [7]float64{}
	for wd := 0; wd < 7; wd++ {
		if counts[wd] > 0 {
			means[wd] = sums[wd] / float64(counts[wd])
			meanSum += means[wd]
			present++
		}
	}
	if present == 0 {
		return factors, false
	}
	overall := meanSum / float64(present)
	if overall <= 0 {
		return factors, false
	}
	for wd := 0; wd < 7; wd++ {
		if counts[wd] > 0 {
			factors[wd] = means[wd] / overall
		}
	}
	return factors, true
}

// classifyTrend maps the slope onto a label and advisory message, using a
// tenth of the daily standard deviation as the stability band.
func classifyTrend(trend, stdDaily float64) (string, string) {
	switch {
	case trend > stdDaily*0.1:
		return "increasing", "Your spending is trending upward. Consider budgeting more carefully."
	case trend < -stdDaily*0.1:
		return "decreasing", "Your spending is trending downward. Great job!"
	default:
		return "stable", "Your spending patterns are stable."
	}
}
