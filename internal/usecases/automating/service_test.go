package automating

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-automation-api/internal/analytics"
	"github.com/vfg2006/finance-automation-api/internal/domain"
)

var fixedNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func newTestService(opts ...Option) FinancialAutomation {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewService(domain.Thresholds{LowProfitabilityThreshold: 20}, opts...)
}

func TestAnalyzeFinancialHealth(t *testing.T) {
	service := newTestService()

	sales := []domain.Sale{
		{Date: fixedNow.AddDate(0, 0, -2), Amount: 1000, Cost: 900},
		{Date: fixedNow.AddDate(0, 0, -10), Amount: 1000, Cost: 900},
		// fora da janela de 30 dias
		{Date: fixedNow.AddDate(0, 0, -45), Amount: 100000, Cost: 10},
	}
	expenses := []domain.Expense{
		{Date: fixedNow.AddDate(0, 0, -3), Amount: 500, Category: "rent"},
		{Date: fixedNow.AddDate(0, 0, -60), Amount: 99999, Category: "rent"},
	}
	inventory := []domain.StockItem{
		{ID: "1", Name: "flour", CurrentStock: 10, PricePerUnit: 10, UpdatedAt: fixedNow},
	}

	report := service.AnalyzeFinancialHealth(sales, expenses, inventory)

	require.NotNil(t, report)
	assert.Equal(t, 2000.0, report.Snapshot.Revenue)
	assert.Equal(t, 500.0, report.Snapshot.TotalExpenses)
	assert.Equal(t, -300.0, report.Snapshot.NetProfit)
	assert.Equal(t, 100.0, report.Snapshot.InventoryValue)
	assert.NotEmpty(t, report.Trends)
	require.NotEmpty(t, report.Alerts)
	assert.Equal(t, domain.SeverityCritical, report.Alerts[0].Severity)
	assert.NotEmpty(t, report.Recommendations)

	var trendRevenue float64
	for _, trend := range report.Trends {
		trendRevenue += trend.Revenue
	}
	assert.Equal(t, report.Snapshot.Revenue, trendRevenue)
}

func TestAnalyzeFinancialHealthLookback(t *testing.T) {
	service := newTestService(WithLookbackDays(60))

	sales := []domain.Sale{
		{Date: fixedNow.AddDate(0, 0, -45), Amount: 100, Cost: 10},
	}

	report := service.AnalyzeFinancialHealth(sales, nil, nil)

	assert.Equal(t, 100.0, report.Snapshot.Revenue)
}

func TestCalculateROI(t *testing.T) {
	service := newTestService()

	tests := []struct {
		name               string
		investment         float64
		benefit            float64
		years              int
		expectedROI        float64
		expectedNPV        float64
		expectedPayback    *float64
		expectedViable     bool
		expectedYears      int
		recommendationWord string
	}{
		{
			name:               "Cenário de referência",
			investment:         10000000,
			benefit:            5000000,
			years:              3,
			expectedROI:        50,
			expectedNPV:        2434259.955,
			expectedPayback:    paybackOf(2),
			expectedViable:     true,
			expectedYears:      3,
			recommendationWord: "Good",
		},
		{
			name:               "Anos não informados assumem três",
			investment:         1000,
			benefit:            800,
			years:              0,
			expectedROI:        140,
			expectedNPV:        989.48,
			expectedPayback:    paybackOf(1.25),
			expectedViable:     true,
			expectedYears:      3,
			recommendationWord: "Excellent",
		},
		{
			name:               "Retorno baixo com VPL positivo",
			investment:         1000,
			benefit:            420,
			years:              3,
			expectedROI:        26,
			expectedNPV:        44.48,
			expectedPayback:    paybackOf(2.380952),
			expectedViable:     true,
			expectedYears:      3,
			recommendationWord: "Good",
		},
		{
			name:               "VPL negativo em prazo longo",
			investment:         1000,
			benefit:            210,
			years:              6,
			expectedROI:        26,
			expectedNPV:        -85.40,
			expectedPayback:    paybackOf(4.761905),
			expectedViable:     false,
			expectedYears:      6,
			recommendationWord: "Poor",
		},
		{
			name:               "Sem benefício",
			investment:         1000,
			benefit:            0,
			years:              3,
			expectedROI:        -100,
			expectedNPV:        -1000,
			expectedPayback:    nil,
			expectedViable:     false,
			expectedYears:      3,
			recommendationWord: "Poor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := service.CalculateROI(tt.investment, tt.benefit, tt.years)

			assert.InDelta(t, tt.expectedROI, result.SimpleROI, 1e-6)
			assert.InDelta(t, tt.expectedNPV, result.NetPresentValue, 0.01)
			if tt.expectedPayback == nil {
				assert.Nil(t, result.PaybackPeriodYears)
			} else {
				require.NotNil(t, result.PaybackPeriodYears)
				assert.InDelta(t, *tt.expectedPayback, *result.PaybackPeriodYears, 1e-6)
			}
			assert.Equal(t, tt.expectedViable, result.IsViable)
			assert.Equal(t, tt.expectedYears, result.Years)
			assert.Equal(t, ROIDiscountRate, result.DiscountRate)
			assert.Contains(t, result.Recommendation, tt.recommendationWord)
		})
	}
}

func TestOptimizePricingDefaultsElasticity(t *testing.T) {
	service := newTestService()

	result := service.OptimizePricing(10000, 100, 6000, 0)

	assert.Equal(t, analytics.DefaultElasticity, result.Elasticity)
	assert.GreaterOrEqual(t, result.OptimalOption.Profit, 440000.0)
}

func TestAnalyzeBusinessStage(t *testing.T) {
	service := newTestService()

	sales := []domain.Sale{{Date: fixedNow.AddDate(0, 0, -1), Amount: 1000, Cost: 900}}
	expenses := []domain.Expense{{Date: fixedNow.AddDate(0, 0, -1), Amount: 400, Category: "rent"}}

	t.Run("Estágio válido", func(t *testing.T) {
		business := domain.Business{ID: "biz-1", Stage: domain.BusinessStageGrowth, Active: true}

		report, err := service.AnalyzeBusinessStage(business, sales, expenses, nil)

		require.NoError(t, err)
		assert.Equal(t, "biz-1", report.BusinessID)
		require.NotEmpty(t, report.Alerts)
		assert.Equal(t, domain.SeverityCritical, report.Alerts[0].Severity)
		assert.NotEmpty(t, report.Guidance)
	})

	t.Run("Estágio inválido", func(t *testing.T) {
		business := domain.Business{ID: "biz-2", Stage: "unknown"}

		report, err := service.AnalyzeBusinessStage(business, sales, expenses, nil)

		assert.Nil(t, report)
		assert.True(t, errors.Is(err, ErrInvalidStage))

		var stageErr *StageError
		require.True(t, errors.As(err, &stageErr))
		assert.Equal(t, "biz-2", stageErr.BusinessID)
	})
}

func TestAnalyzeInventoryUsesClock(t *testing.T) {
	service := newTestService()

	alerts := service.AnalyzeInventory([]domain.StockItem{
		{ID: "1", CurrentStock: 5, PricePerUnit: 2, UpdatedAt: fixedNow.AddDate(0, 0, -91)},
	})

	require.Len(t, alerts, 1)
	assert.Equal(t, 10.0, alerts[0].Value)
}

func TestThresholdsAreKept(t *testing.T) {
	service := NewService(domain.Thresholds{LowProfitabilityThreshold: 35})

	assert.Equal(t, 35.0, service.Thresholds().LowProfitabilityThreshold)
}

func paybackOf(years float64) *float64 {
	return &years
}
