package domain

// ROIResult descreve o retorno de um investimento. PaybackPeriodYears é nil quando o benefício anual
// não é positivo e o investimento nunca se paga.
type ROIResult struct {
	SimpleROI          float64 `json:"simple_roi"`
	NetPresentValue    float64 `json:"net_present_value"`
	PaybackPeriodYears *float64 `json:"payback_period_years"`
	IsViable           bool    `json:"is_viable"`
	Recommendation     string  `json:"recommendation"`
	Years              int     `json:"years"`
	DiscountRate       float64 `json:"discount_rate"`
}
