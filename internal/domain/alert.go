package domain

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Weight retorna o peso usado na ordenação dos alertas
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

type Alert struct {
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	Metric    string   `json:"metric"`
	Value     float64  `json:"value"`
	Threshold float64  `json:"threshold"`
}

// Thresholds é a configuração de limites consumida pelo gerador de alertas
type Thresholds struct {
	LowProfitabilityThreshold float64 `json:"low_profitability_threshold"`
}
