package domain

// FinancialSnapshot é recalculado a cada chamada e nunca é armazenado
type FinancialSnapshot struct {
	Revenue        float64 `json:"revenue"`
	COGS           float64 `json:"cogs"`
	GrossProfit    float64 `json:"gross_profit"`
	TotalExpenses  float64 `json:"total_expenses"`
	NetProfit      float64 `json:"net_profit"`
	GrossMargin    float64 `json:"gross_margin"`
	NetMargin      float64 `json:"net_margin"`
	InventoryValue float64 `json:"inventory_value"`
}

// TrendPoint representa uma semana com dados (Period no formato yyyy-Www)
type TrendPoint struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
	Margin  float64 `json:"margin"`
}

type SeasonalityResult struct {
	HasSeasonality bool     `json:"has_seasonality"`
	Variation      float64  `json:"variation"`
	PeakPeriods    []string `json:"peak_periods"`
	LowPeriods     []string `json:"low_periods"`
	Reason         string   `json:"reason,omitempty"`
}

// FinancialHealthReport agrupa o resultado da análise de saúde financeira
type FinancialHealthReport struct {
	Snapshot        FinancialSnapshot `json:"snapshot"`
	Trends          []TrendPoint      `json:"trends"`
	Alerts          []Alert           `json:"alerts"`
	Recommendations []string          `json:"recommendations"`
}
