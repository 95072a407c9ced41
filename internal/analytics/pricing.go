package analytics

import (
	"fmt"
	"sort"

	"github.com/vfg2006/finance-automation-api/internal/domain"
	"github.com/vfg2006/finance-automation-api/pkg/utils"
)

// DefaultElasticity é a elasticidade-preço assumida quando o chamador não informa uma
const DefaultElasticity = -1.2

const (
	minPriceChangeStep = -4 // -20%
	maxPriceChangeStep = 6  // +30%
	priceChangeStep    = 0.05
)

// OptimizePricing testa variações de preço de -20% a +30% (passos de 5%) sob um modelo linear de elasticidade
func OptimizePricing(currentPrice, currentVolume, costPerUnit, elasticity float64) domain.PricingOptimizationResult {
	currentProfit := (currentPrice - costPerUnit) * currentVolume

	options := make([]domain.PriceOption, 0, maxPriceChangeStep-minPriceChangeStep+1)
	for step := minPriceChangeStep; step <= maxPriceChangeStep; step++ {
		priceChange := float64(step) * priceChangeStep
		volumeChange := elasticity * priceChange

		price := currentPrice * (1 + priceChange)
		volume := max(currentVolume*(1+volumeChange), 0)
		profit := (price - costPerUnit) * volume

		options = append(options, domain.PriceOption{
			Price:               price,
			PriceChangePercent:  priceChange * 100,
			Volume:              volume,
			VolumeChangePercent: utils.Percent(volume-currentVolume, currentVolume),
			Profit:              profit,
			ProfitChangePercent: utils.Percent(profit-currentProfit, currentProfit),
		})
	}

	// O primeiro máximo encontrado vence
	best := options[0]
	for _, option := range options[1:] {
		if option.Profit > best.Profit {
			best = option
		}
	}

	sorted := make([]domain.PriceOption, len(options))
	copy(sorted, options)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Profit > sorted[j].Profit
	})

	return domain.PricingOptimizationResult{
		CurrentPrice:   currentPrice,
		CurrentVolume:  currentVolume,
		CostPerUnit:    costPerUnit,
		Elasticity:     elasticity,
		CurrentProfit:  currentProfit,
		OptimalOption:  best,
		Options:        sorted,
		Recommendation: pricingRecommendation(best),
	}
}

func pricingRecommendation(best domain.PriceOption) string {
	switch {
	case best.PriceChangePercent > 0:
		return fmt.Sprintf("Increase price by %.0f%% to %.2f; expected profit change %+.1f%%", best.PriceChangePercent, best.Price, best.ProfitChangePercent)
	case best.PriceChangePercent < 0:
		return fmt.Sprintf("Decrease price by %.0f%% to %.2f; expected profit change %+.1f%%", -best.PriceChangePercent, best.Price, best.ProfitChangePercent)
	default:
		return "Current price is already optimal under the assumed elasticity"
	}
}
