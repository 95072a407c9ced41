package analytics

import (
	"math"

	"github.com/vfg2006/finance-automation-api/internal/domain"
	"github.com/vfg2006/finance-automation-api/pkg/utils"
)

const (
	safetyMarginFactor         = 1.2
	DefaultSensitivityRange    = 0.10
	DefaultSensitivitySteps    = 5
	ErrNonPositiveContribution = "Cannot break even: price must exceed variable cost per unit. Raise the price or reduce variable costs"
	ErrNoProductVolume         = "Cannot break even: expected sales volume is required for at least one product"
)

// BreakEven calcula o ponto de equilíbrio em unidades (arredondado para cima) e receita
func BreakEven(fixedCosts, variableCostPerUnit, pricePerUnit float64) domain.BreakEvenResult {
	contributionMargin := pricePerUnit - variableCostPerUnit
	if contributionMargin <= 0 {
		return domain.BreakEvenResult{Error: ErrNonPositiveContribution}
	}

	units := math.Ceil(fixedCosts / contributionMargin)
	revenue := units * pricePerUnit

	return domain.BreakEvenResult{
		BreakEvenUnits:          units,
		BreakEvenRevenue:        revenue,
		ContributionMargin:      contributionMargin,
		ContributionMarginRatio: utils.Percent(contributionMargin, pricePerUnit),
		SafetyMargin: domain.SafetyMargin{
			Units:   math.Ceil(units * safetyMarginFactor),
			Revenue: revenue * safetyMarginFactor,
		},
	}
}

// MultiProductBreakEven pondera a margem de contribuição pelo volume esperado de cada produto.
// Cada produto também recebe um ponto de equilíbrio isolado usando sua parcela dos custos fixos;
// quando nenhuma parcela é informada, os custos fixos são rateados pelo mix de vendas.
func MultiProductBreakEven(fixedCosts float64, products []domain.ProductLine) domain.MultiProductBreakEvenResult {
	var totalVolume, totalShare float64
	for _, product := range products {
		totalVolume += product.ExpectedVolume
		totalShare += product.FixedCostShare
	}

	if totalVolume <= 0 {
		return domain.MultiProductBreakEvenResult{Error: ErrNoProductVolume, Products: []domain.ProductBreakEven{}}
	}

	var weightedMargin, weightedPrice float64
	for _, product := range products {
		mix := product.ExpectedVolume / totalVolume
		weightedMargin += (product.Price - product.VariableCost) * mix
		weightedPrice += product.Price * mix
	}

	if weightedMargin <= 0 {
		return domain.MultiProductBreakEvenResult{Error: ErrNonPositiveContribution, Products: []domain.ProductBreakEven{}}
	}

	units := math.Ceil(fixedCosts / weightedMargin)

	breakdown := make([]domain.ProductBreakEven, 0, len(products))
	for _, product := range products {
		mix := product.ExpectedVolume / totalVolume

		share := mix
		if totalShare > 0 {
			share = product.FixedCostShare
		}

		breakdown = append(breakdown, domain.ProductBreakEven{
			Name:       product.Name,
			SalesMix:   mix * 100,
			MixUnits:   math.Ceil(units * mix),
			Standalone: BreakEven(fixedCosts*share, product.VariableCost, product.Price),
		})
	}

	return domain.MultiProductBreakEvenResult{
		WeightedContributionMargin: weightedMargin,
		WeightedPrice:              weightedPrice,
		BreakEvenUnits:             units,
		BreakEvenRevenue:           units * weightedPrice,
		Products:                   breakdown,
	}
}

// Sensitivity varia preço e custos fixos de forma independente em ±rangePct, com `steps` passos para cada lado.
// Cenários que não atingem o equilíbrio são descartados.
func Sensitivity(fixedCosts, variableCostPerUnit, pricePerUnit, rangePct float64, steps int) domain.SensitivityResult {
	if rangePct <= 0 {
		rangePct = DefaultSensitivityRange
	}
	if steps <= 0 {
		steps = DefaultSensitivitySteps
	}

	baseline := BreakEven(fixedCosts, variableCostPerUnit, pricePerUnit)
	result := domain.SensitivityResult{
		Baseline:           baseline,
		PriceScenarios:     make([]domain.SensitivityPoint, 0, 2*steps),
		FixedCostScenarios: make([]domain.SensitivityPoint, 0, 2*steps),
	}

	if baseline.Error != "" {
		result.Error = baseline.Error
		return result
	}

	for i := -steps; i <= steps; i++ {
		if i == 0 {
			continue
		}

		change := rangePct * float64(i) / float64(steps)

		price := pricePerUnit * (1 + change)
		if scenario := BreakEven(fixedCosts, variableCostPerUnit, price); scenario.Error == "" {
			result.PriceScenarios = append(result.PriceScenarios, sensitivityPoint(change, price, scenario, baseline))
		}

		fixed := fixedCosts * (1 + change)
		if scenario := BreakEven(fixed, variableCostPerUnit, pricePerUnit); scenario.Error == "" {
			result.FixedCostScenarios = append(result.FixedCostScenarios, sensitivityPoint(change, fixed, scenario, baseline))
		}
	}

	return result
}

func sensitivityPoint(change, value float64, scenario, baseline domain.BreakEvenResult) domain.SensitivityPoint {
	return domain.SensitivityPoint{
		ChangePercent:    change * 100,
		Value:            value,
		BreakEvenUnits:   scenario.BreakEvenUnits,
		BreakEvenRevenue: scenario.BreakEvenRevenue,
		ImpactPercent:    utils.Percent(scenario.BreakEvenUnits-baseline.BreakEvenUnits, baseline.BreakEvenUnits),
	}
}
