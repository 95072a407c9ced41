package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-automation-api/internal/domain"
)

func TestBreakEven(t *testing.T) {
	tests := []struct {
		name     string
		fixed    float64
		variable float64
		price    float64
		expected domain.BreakEvenResult
	}{
		{
			name:     "Padaria com margem de contribuição positiva",
			fixed:    1000000,
			variable: 4000,
			price:    10000,
			expected: domain.BreakEvenResult{
				BreakEvenUnits:          167,
				BreakEvenRevenue:        1670000,
				ContributionMargin:      6000,
				ContributionMarginRatio: 60,
				SafetyMargin:            domain.SafetyMargin{Units: 201, Revenue: 2004000},
			},
		},
		{
			name:     "Preço abaixo do custo variável",
			fixed:    1000000,
			variable: 4000,
			price:    3000,
			expected: domain.BreakEvenResult{Error: ErrNonPositiveContribution},
		},
		{
			name:     "Preço igual ao custo variável",
			fixed:    500,
			variable: 10,
			price:    10,
			expected: domain.BreakEvenResult{Error: ErrNonPositiveContribution},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BreakEven(tt.fixed, tt.variable, tt.price)

			assert.Equal(t, tt.expected.Error, result.Error)
			assert.Equal(t, tt.expected.BreakEvenUnits, result.BreakEvenUnits)
			assert.InDelta(t, tt.expected.BreakEvenRevenue, result.BreakEvenRevenue, 1e-6)
			assert.Equal(t, tt.expected.ContributionMargin, result.ContributionMargin)
			assert.InDelta(t, tt.expected.ContributionMarginRatio, result.ContributionMarginRatio, 1e-9)
			assert.Equal(t, tt.expected.SafetyMargin.Units, result.SafetyMargin.Units)
			assert.InDelta(t, tt.expected.SafetyMargin.Revenue, result.SafetyMargin.Revenue, 1e-6)
		})
	}
}

func TestBreakEvenCoversFixedCosts(t *testing.T) {
	for _, fixed := range []float64{0, 1, 999, 1000000, 12345.67} {
		for _, variable := range []float64{0, 1.5, 4000} {
			for _, price := range []float64{2, 4001, 10000} {
				result := BreakEven(fixed, variable, price)
				if price <= variable {
					assert.NotEmpty(t, result.Error)
					continue
				}

				cm := price - variable
				assert.GreaterOrEqual(t, result.BreakEvenUnits*cm, fixed)
				if result.BreakEvenUnits > 0 {
					assert.Less(t, (result.BreakEvenUnits-1)*cm, fixed)
				}
			}
		}
	}
}

func TestMultiProductBreakEven(t *testing.T) {
	t.Run("Pondera a margem pelo mix de vendas", func(t *testing.T) {
		products := []domain.ProductLine{
			{Name: "bread", Price: 100, VariableCost: 60, ExpectedVolume: 300},
			{Name: "cake", Price: 50, VariableCost: 30, ExpectedVolume: 100},
		}

		result := MultiProductBreakEven(100000, products)

		require.Empty(t, result.Error)
		assert.InDelta(t, 35, result.WeightedContributionMargin, 1e-9)
		assert.InDelta(t, 87.5, result.WeightedPrice, 1e-9)
		assert.Equal(t, 2858.0, result.BreakEvenUnits)
		assert.InDelta(t, 250075, result.BreakEvenRevenue, 1e-6)

		require.Len(t, result.Products, 2)
		assert.Equal(t, 2144.0, result.Products[0].MixUnits)
		assert.InDelta(t, 75, result.Products[0].SalesMix, 1e-9)
		assert.Equal(t, 1875.0, result.Products[0].Standalone.BreakEvenUnits)
		assert.Equal(t, 715.0, result.Products[1].MixUnits)
		assert.Equal(t, 1250.0, result.Products[1].Standalone.BreakEvenUnits)
	})

	t.Run("Usa a parcela de custos fixos informada", func(t *testing.T) {
		products := []domain.ProductLine{
			{Name: "bread", Price: 100, VariableCost: 60, ExpectedVolume: 300, FixedCostShare: 0.5},
			{Name: "cake", Price: 50, VariableCost: 30, ExpectedVolume: 100, FixedCostShare: 0.5},
		}

		result := MultiProductBreakEven(100000, products)

		require.Len(t, result.Products, 2)
		assert.Equal(t, 1250.0, result.Products[0].Standalone.BreakEvenUnits)
		assert.Equal(t, 2500.0, result.Products[1].Standalone.BreakEvenUnits)
	})

	t.Run("Sem volume esperado", func(t *testing.T) {
		result := MultiProductBreakEven(1000, []domain.ProductLine{{Name: "bread", Price: 10, VariableCost: 5}})

		assert.Equal(t, ErrNoProductVolume, result.Error)
		assert.Zero(t, result.BreakEvenUnits)
	})

	t.Run("Margem ponderada não positiva", func(t *testing.T) {
		result := MultiProductBreakEven(1000, []domain.ProductLine{{Name: "bread", Price: 10, VariableCost: 12, ExpectedVolume: 5}})

		assert.Equal(t, ErrNonPositiveContribution, result.Error)
	})
}

func TestSensitivity(t *testing.T) {
	t.Run("Gera cenários simétricos de preço e custo fixo", func(t *testing.T) {
		result := Sensitivity(1000000, 4000, 10000, 0, 0)

		require.Empty(t, result.Error)
		assert.Equal(t, 167.0, result.Baseline.BreakEvenUnits)
		assert.Len(t, result.PriceScenarios, 2*DefaultSensitivitySteps)
		assert.Len(t, result.FixedCostScenarios, 2*DefaultSensitivitySteps)

		lowestPrice := result.PriceScenarios[0]
		assert.InDelta(t, -10, lowestPrice.ChangePercent, 1e-9)
		assert.InDelta(t, 9000, lowestPrice.Value, 1e-6)
		assert.Equal(t, 200.0, lowestPrice.BreakEvenUnits)
		assert.InDelta(t, 19.76, lowestPrice.ImpactPercent, 0.01)

		// Custo fixo maior nunca reduz o ponto de equilíbrio
		for i := 1; i < len(result.FixedCostScenarios); i++ {
			assert.GreaterOrEqual(t, result.FixedCostScenarios[i].BreakEvenUnits, result.FixedCostScenarios[i-1].BreakEvenUnits)
		}
	})

	t.Run("Descarta cenários sem equilíbrio", func(t *testing.T) {
		result := Sensitivity(100000, 9500, 10000, 0.1, 5)

		assert.Len(t, result.PriceScenarios, 7)
		assert.Len(t, result.FixedCostScenarios, 10)
	})

	t.Run("Linha de base sem equilíbrio", func(t *testing.T) {
		result := Sensitivity(100000, 12000, 10000, 0.1, 5)

		assert.Equal(t, ErrNonPositiveContribution, result.Error)
		assert.Empty(t, result.PriceScenarios)
	})
}
