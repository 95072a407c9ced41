package analytics

import (
	"fmt"
	"math"

	"github.com/vfg2006/finance-automation-api/internal/domain"
	"github.com/vfg2006/finance-automation-api/pkg/utils"
)

const (
	DefaultProjectionMonths = 12
	MinHistoricalMonths     = 3
	growthWindowMonths      = 6
	ErrInsufficientHistory  = "Insufficient historical data for projection"
)

// DefaultScenarios são usados quando o chamador não informa cenários
var DefaultScenarios = []domain.ProjectionScenario{
	{Name: "conservative", RevenueMultiplier: 0.9, ExpenseMultiplier: 1.05},
	{Name: "base", RevenueMultiplier: 1, ExpenseMultiplier: 1},
	{Name: "optimistic", RevenueMultiplier: 1.15, ExpenseMultiplier: 0.95},
}

// Project extrapola o desempenho mensal a partir das taxas de crescimento dos últimos seis meses
func Project(history []domain.HistoricalMonth, months int) domain.ProjectionResult {
	if len(history) < MinHistoricalMonths {
		return domain.ProjectionResult{
			Projections: []domain.ProjectedMonth{},
			Confidence:  domain.ConfidenceLow,
			Error:       ErrInsufficientHistory,
		}
	}

	if months <= 0 {
		months = DefaultProjectionMonths
	}

	window := history[max(0, len(history)-growthWindowMonths):]

	windowRevenues := make([]float64, 0, len(window))
	windowExpenses := make([]float64, 0, len(window))
	for _, month := range window {
		windowRevenues = append(windowRevenues, month.Revenue)
		windowExpenses = append(windowExpenses, month.Expenses)
	}

	revenueGrowth := GrowthRate(windowRevenues)
	expenseGrowth := GrowthRate(windowExpenses)

	last := history[len(history)-1]

	projections := make([]domain.ProjectedMonth, 0, months)
	for i := 1; i <= months; i++ {
		revenue := last.Revenue * math.Pow(1+revenueGrowth, float64(i))
		expenses := last.Expenses * math.Pow(1+expenseGrowth, float64(i))
		projections = append(projections, projectedMonth(i, revenue, expenses))
	}

	allRevenues := make([]float64, 0, len(history))
	for _, month := range history {
		allRevenues = append(allRevenues, month.Revenue)
	}

	return domain.ProjectionResult{
		Projections:       projections,
		RevenueGrowthRate: revenueGrowth,
		ExpenseGrowthRate: expenseGrowth,
		Confidence:        ProjectionConfidence(allRevenues),
	}
}

func projectedMonth(index int, revenue, expenses float64) domain.ProjectedMonth {
	profit := revenue - expenses
	return domain.ProjectedMonth{
		Month:        index,
		Revenue:      revenue,
		Expenses:     expenses,
		Profit:       profit,
		ProfitMargin: utils.Percent(profit, revenue),
	}
}

// SeasonalFactors calcula, para cada mês do calendário (0 = janeiro), a média daquele mês
// dividida pela média geral. Meses sem dados ou rótulos inválidos resultam em fator 1.
func SeasonalFactors(history []domain.HistoricalMonth) []float64 {
	factors := make([]float64, 12)
	for i := range factors {
		factors[i] = 1
	}

	var (
		totals [12]float64
		counts [12]int
		sum    float64
		n      int
	)

	for _, month := range history {
		parsed, err := utils.ParseMonth(month.Month)
		if err != nil {
			continue
		}

		idx := int(parsed.Month()) - 1
		totals[idx] += month.Revenue
		counts[idx]++
		sum += month.Revenue
		n++
	}

	if n == 0 || sum == 0 {
		return factors
	}

	overall := sum / float64(n)
	for i := range factors {
		if counts[i] > 0 {
			factors[i] = (totals[i] / float64(counts[i])) / overall
		}
	}

	return factors
}

// ProjectSeasonal ajusta a projeção base pelo fator do mês (índice da projeção − 1) mod 12
func ProjectSeasonal(history []domain.HistoricalMonth, months int) domain.ProjectionResult {
	result := Project(history, months)
	if result.Error != "" {
		return result
	}

	factors := SeasonalFactors(history)
	for i, projection := range result.Projections {
		factor := factors[(projection.Month-1)%12]
		result.Projections[i] = projectedMonth(projection.Month, projection.Revenue*factor, projection.Expenses*factor)
	}
	result.SeasonalFactors = factors

	return result
}

// ProjectScenarios reexecuta a projeção base com o histórico multiplicado pelos fatores de cada cenário
func ProjectScenarios(history []domain.HistoricalMonth, months int, scenarios []domain.ProjectionScenario) []domain.ScenarioProjection {
	if len(scenarios) == 0 {
		scenarios = DefaultScenarios
	}

	results := make([]domain.ScenarioProjection, 0, len(scenarios))
	for _, scenario := range scenarios {
		adjusted := make([]domain.HistoricalMonth, 0, len(history))
		for _, month := range history {
			adjusted = append(adjusted, domain.HistoricalMonth{
				Month:    month.Month,
				Revenue:  month.Revenue * scenario.RevenueMultiplier,
				Expenses: month.Expenses * scenario.ExpenseMultiplier,
			})
		}

		results = append(results, domain.ScenarioProjection{
			Scenario: scenario,
			Result:   Project(adjusted, months),
		})
	}

	return results
}

// GenerateInsights transforma o resultado da projeção em frases curtas
func GenerateInsights(result domain.ProjectionResult) []string {
	if result.Error != "" {
		return []string{result.Error}
	}

	insights := make([]string, 0, 4)

	revenuePct := result.RevenueGrowthRate * 100
	switch {
	case result.RevenueGrowthRate > 0:
		insights = append(insights, fmt.Sprintf("Revenue is projected to grow %.1f%% per month", revenuePct))
	case result.RevenueGrowthRate < 0:
		insights = append(insights, fmt.Sprintf("Revenue is projected to decline %.1f%% per month; review sales strategy", math.Abs(revenuePct)))
	default:
		insights = append(insights, "Revenue is projected to remain flat")
	}

	if result.ExpenseGrowthRate > result.RevenueGrowthRate {
		insights = append(insights, fmt.Sprintf("Expenses are growing faster than revenue (%.1f%% vs %.1f%% per month)", result.ExpenseGrowthRate*100, revenuePct))
	}

	if len(result.Projections) > 0 {
		profitable := 0
		for _, projection := range result.Projections {
			if projection.Profit > 0 {
				profitable++
			}
		}
		share := utils.Percent(float64(profitable), float64(len(result.Projections)))
		insights = append(insights, fmt.Sprintf("%.0f%% of projected months are profitable (%d of %d)", share, profitable, len(result.Projections)))
	}

	switch result.Confidence {
	case domain.ConfidenceHigh:
		insights = append(insights, "High confidence: historical revenue has been stable")
	case domain.ConfidenceMedium:
		insights = append(insights, "Medium confidence: historical revenue shows moderate variation")
	default:
		insights = append(insights, "Low confidence: historical revenue is volatile, treat projections with caution")
	}

	return insights
}
