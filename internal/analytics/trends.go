package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/vfg2006/finance-automation-api/internal/domain"
	"github.com/vfg2006/finance-automation-api/pkg/utils"
)

const (
	minSeasonalityPoints = 12
	seasonalityCVLimit   = 0.15
	highConfidenceCV     = 0.1
	mediumConfidenceCV   = 0.3
)

type weekBucket struct {
	revenue  float64
	cost     float64
	expenses float64
}

// WeekKey monta a chave yyyy-Www contando semanas a partir de 1º de janeiro
func WeekKey(date time.Time) string {
	jan1 := time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location())
	days := date.Sub(jan1).Hours() / 24
	week := int(math.Ceil((days + 1) / 7))

	return fmt.Sprintf("%d-W%02d", date.Year(), week)
}

// WeeklyTrends agrupa vendas e despesas por semana, ordenadas pela chave do período
func WeeklyTrends(sales []domain.Sale, expenses []domain.Expense) []domain.TrendPoint {
	buckets := make(map[string]*weekBucket)

	bucketFor := func(date time.Time) *weekBucket {
		key := WeekKey(date)
		bucket, exists := buckets[key]
		if !exists {
			bucket = &weekBucket{}
			buckets[key] = bucket
		}
		return bucket
	}

	for _, sale := range sales {
		bucket := bucketFor(sale.Date)
		bucket.revenue += sale.Amount
		bucket.cost += sale.Cost
	}

	for _, expense := range expenses {
		bucketFor(expense.Date).expenses += expense.Amount
	}

	trends := make([]domain.TrendPoint, 0, len(buckets))
	for period, bucket := range buckets {
		profit := bucket.revenue - bucket.cost - bucket.expenses
		trends = append(trends, domain.TrendPoint{
			Period:  period,
			Revenue: bucket.revenue,
			Profit:  profit,
			Margin:  utils.Percent(profit, bucket.revenue),
		})
	}

	// A chave tem a semana com dois dígitos, então a ordem de string é cronológica
	sort.Slice(trends, func(i, j int) bool {
		return trends[i].Period < trends[j].Period
	})

	return trends
}

// GrowthRate calcula a taxa de crescimento geométrica por período
func GrowthRate(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	first := values[0]
	last := values[len(values)-1]
	if first <= 0 {
		return 0
	}

	rate := math.Pow(last/first, 1/float64(len(values)-1)) - 1
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0
	}

	return rate
}

// CoefficientOfVariation usa o desvio padrão populacional; retorna 0 quando a média é zero
func CoefficientOfVariation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}

	var squares float64
	for _, v := range values {
		squares += (v - mean) * (v - mean)
	}

	return math.Sqrt(squares/float64(len(values))) / mean
}

// ProjectionConfidence classifica a estabilidade da série de receitas
func ProjectionConfidence(revenues []float64) domain.Confidence {
	if len(revenues) == 0 || mean(revenues) == 0 {
		return domain.ConfidenceLow
	}

	cv := CoefficientOfVariation(revenues)
	switch {
	case cv < highConfidenceCV:
		return domain.ConfidenceHigh
	case cv < mediumConfidenceCV:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// DetectSeasonality agrupa as tendências pelos dois últimos caracteres da chave do período.
// Esses caracteres são o número da semana, não o mês do calendário; consumidores dependem desse agrupamento.
func DetectSeasonality(trends []domain.TrendPoint) domain.SeasonalityResult {
	if len(trends) < minSeasonalityPoints {
		return domain.SeasonalityResult{
			PeakPeriods: []string{},
			LowPeriods:  []string{},
			Reason:      fmt.Sprintf("insufficient data: at least %d trend points required", minSeasonalityPoints),
		}
	}

	totals := make(map[string]float64)
	counts := make(map[string]int)
	for _, trend := range trends {
		key := trend.Period
		if len(key) >= 2 {
			key = key[len(key)-2:]
		}
		totals[key] += trend.Revenue
		counts[key]++
	}

	type monthAverage struct {
		month   string
		average float64
	}

	averages := make([]monthAverage, 0, len(totals))
	values := make([]float64, 0, len(totals))
	for month, total := range totals {
		avg := total / float64(counts[month])
		averages = append(averages, monthAverage{month: month, average: avg})
		values = append(values, avg)
	}

	sort.Slice(averages, func(i, j int) bool {
		if averages[i].average == averages[j].average {
			return averages[i].month < averages[j].month
		}
		return averages[i].average > averages[j].average
	})

	cv := CoefficientOfVariation(values)

	peaks := make([]string, 0, 2)
	for i := 0; i < len(averages) && i < 2; i++ {
		peaks = append(peaks, averages[i].month)
	}

	lows := make([]string, 0, 2)
	for i := len(averages) - 1; i >= 0 && len(lows) < 2; i-- {
		lows = append(lows, averages[i].month)
	}

	return domain.SeasonalityResult{
		HasSeasonality: cv > seasonalityCVLimit,
		Variation:      cv,
		PeakPeriods:    peaks,
		LowPeriods:     lows,
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
