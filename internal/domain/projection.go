package domain

type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

type ProjectedMonth struct {
	Month        int     `json:"month"`
	Revenue      float64 `json:"revenue"`
	Expenses     float64 `json:"expenses"`
	Profit       float64 `json:"profit"`
	ProfitMargin float64 `json:"profit_margin"`
}

// ProjectionResult traz Error preenchido quando não há histórico suficiente
type ProjectionResult struct {
	Projections       []ProjectedMonth `json:"projections"`
	RevenueGrowthRate float64          `json:"revenue_growth_rate"`
	ExpenseGrowthRate float64          `json:"expense_growth_rate"`
	Confidence        Confidence       `json:"confidence"`
	SeasonalFactors   []float64        `json:"seasonal_factors,omitempty"`
	Error             string           `json:"error,omitempty"`
}

type ProjectionScenario struct {
	Name              string  `json:"name" validate:"required"`
	RevenueMultiplier float64 `json:"revenue_multiplier" validate:"gt=0"`
	ExpenseMultiplier float64 `json:"expense_multiplier" validate:"gt=0"`
}

type ScenarioProjection struct {
	Scenario ProjectionScenario `json:"scenario"`
	Result   ProjectionResult   `json:"result"`
}

// ProjectionReport é a resposta da API de projeção
type ProjectionReport struct {
	History  []HistoricalMonth `json:"history"`
	Result   ProjectionResult  `json:"result"`
	Insights []string          `json:"insights"`
}
