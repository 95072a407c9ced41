package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizePricing(t *testing.T) {
	result := OptimizePricing(10000, 100, 6000, DefaultElasticity)

	require.Len(t, result.Options, 11)
	assert.Equal(t, 400000.0, result.CurrentProfit)

	best := result.OptimalOption
	assert.InDelta(t, 20, best.PriceChangePercent, 1e-9)
	assert.InDelta(t, 12000, best.Price, 1e-6)
	assert.InDelta(t, 76, best.Volume, 1e-6)
	assert.InDelta(t, 456000, best.Profit, 1e-6)
	assert.GreaterOrEqual(t, best.Profit, 440000.0)
	assert.InDelta(t, 14, best.ProfitChangePercent, 1e-6)
	assert.Contains(t, result.Recommendation, "Increase price by 20%")

	for _, option := range result.Options {
		assert.LessOrEqual(t, option.Profit, best.Profit)
	}

	for i := 1; i < len(result.Options); i++ {
		assert.GreaterOrEqual(t, result.Options[i-1].Profit, result.Options[i].Profit)
	}
}

func TestOptimizePricingEdgeCases(t *testing.T) {
	t.Run("Volume nunca fica negativo", func(t *testing.T) {
		result := OptimizePricing(100, 10, 50, -5)

		for _, option := range result.Options {
			assert.GreaterOrEqual(t, option.Volume, 0.0)
		}
	})

	t.Run("Empate mantém o primeiro máximo", func(t *testing.T) {
		result := OptimizePricing(100, 0, 50, DefaultElasticity)

		assert.InDelta(t, -20, result.OptimalOption.PriceChangePercent, 1e-9)
		assert.Zero(t, result.OptimalOption.ProfitChangePercent)
	})

	t.Run("Variação de lucro é relativa ao lucro atual mesmo negativo", func(t *testing.T) {
		result := OptimizePricing(100, 100, 120, DefaultElasticity)

		require.Equal(t, -2000.0, result.CurrentProfit)
		assert.InDelta(t, 30, result.OptimalOption.PriceChangePercent, 1e-9)
		assert.InDelta(t, 640, result.OptimalOption.Profit, 1e-6)
		assert.InDelta(t, -132, result.OptimalOption.ProfitChangePercent, 1e-6)

		for _, option := range result.Options {
			expected := (option.Profit - result.CurrentProfit) / result.CurrentProfit * 100
			assert.InDelta(t, expected, option.ProfitChangePercent, 1e-6)
		}
	})
}
