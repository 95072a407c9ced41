package domain

type SafetyMargin struct {
	Units   float64 `json:"units"`
	Revenue float64 `json:"revenue"`
}

// BreakEvenResult traz Error preenchido (e os campos numéricos zerados) quando a margem de contribuição não é positiva
type BreakEvenResult struct {
	BreakEvenUnits          float64      `json:"break_even_units"`
	BreakEvenRevenue        float64      `json:"break_even_revenue"`
	ContributionMargin      float64      `json:"contribution_margin"`
	ContributionMarginRatio float64      `json:"contribution_margin_ratio"`
	SafetyMargin            SafetyMargin `json:"safety_margin"`
	Error                   string       `json:"error,omitempty"`
}

type ProductLine struct {
	Name           string  `json:"name" validate:"required"`
	Price          float64 `json:"price" validate:"gt=0"`
	VariableCost   float64 `json:"variable_cost" validate:"gte=0"`
	ExpectedVolume float64 `json:"expected_volume" validate:"gte=0"`
	FixedCostShare float64 `json:"fixed_cost_share" validate:"gte=0,lte=1"`
}

type ProductBreakEven struct {
	Name       string          `json:"name"`
	SalesMix   float64         `json:"sales_mix"`
	MixUnits   float64         `json:"mix_units"`
	Standalone BreakEvenResult `json:"standalone"`
}

type MultiProductBreakEvenResult struct {
	WeightedContributionMargin float64            `json:"weighted_contribution_margin"`
	WeightedPrice              float64            `json:"weighted_price"`
	BreakEvenUnits             float64            `json:"break_even_units"`
	BreakEvenRevenue           float64            `json:"break_even_revenue"`
	Products                   []ProductBreakEven `json:"products"`
	Error                      string             `json:"error,omitempty"`
}

type SensitivityPoint struct {
	ChangePercent    float64 `json:"change_percent"`
	Value            float64 `json:"value"`
	BreakEvenUnits   float64 `json:"break_even_units"`
	BreakEvenRevenue float64 `json:"break_even_revenue"`
	ImpactPercent    float64 `json:"impact_percent"`
}

type SensitivityResult struct {
	Baseline           BreakEvenResult    `json:"baseline"`
	PriceScenarios     []SensitivityPoint `json:"price_scenarios"`
	FixedCostScenarios []SensitivityPoint `json:"fixed_cost_scenarios"`
	Error              string             `json:"error,omitempty"`
}
