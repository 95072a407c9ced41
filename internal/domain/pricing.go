package domain

type PriceOption struct {
	Price               float64 `json:"price"`
	PriceChangePercent  float64 `json:"price_change_percent"`
	Volume              float64 `json:"volume"`
	VolumeChangePercent float64 `json:"volume_change_percent"`
	Profit              float64 `json:"profit"`
	ProfitChangePercent float64 `json:"profit_change_percent"`
}

type PricingOptimizationResult struct {
	CurrentPrice   float64       `json:"current_price"`
	CurrentVolume  float64       `json:"current_volume"`
	CostPerUnit    float64       `json:"cost_per_unit"`
	Elasticity     float64       `json:"elasticity"`
	CurrentProfit  float64       `json:"current_profit"`
	OptimalOption  PriceOption   `json:"optimal_option"`
	Options        []PriceOption `json:"options"`
	Recommendation string        `json:"recommendation"`
}
