package domain

type BusinessStage string

const (
	BusinessStageStartup BusinessStage = "startup"
	BusinessStageGrowth  BusinessStage = "growth"
	BusinessStageMature  BusinessStage = "mature"
)

// IsValid verifica se o estágio é um dos estágios conhecidos
func (s BusinessStage) IsValid() bool {
	switch s {
	case BusinessStageStartup, BusinessStageGrowth, BusinessStageMature:
		return true
	}
	return false
}

type Business struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Stage  BusinessStage `json:"stage"`
	Active bool          `json:"active"`
}

// StageReport combina alertas e orientações específicos do estágio do negócio
type StageReport struct {
	BusinessID string            `json:"business_id"`
	Stage      BusinessStage     `json:"stage"`
	Snapshot   FinancialSnapshot `json:"snapshot"`
	Alerts     []Alert           `json:"alerts"`
	Guidance   []string          `json:"guidance"`
}
