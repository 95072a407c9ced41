package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/vfg2006/finance-automation-api/internal/domain"
	"github.com/vfg2006/finance-automation-api/pkg/utils"
)

const (
	inventoryToRevenueLimit = 2.0
	cashFlowInventoryFactor = 0.1
	cashFlowRevenueFactor   = 0.1
	DeadStockDays           = 90
)

// alertRule é um par (predicado, construtor de alerta) avaliado em ordem
type alertRule struct {
	applies func(s domain.FinancialSnapshot) bool
	build   func(s domain.FinancialSnapshot) domain.Alert
}

func healthRules(thresholds domain.Thresholds) []alertRule {
	return []alertRule{
		{
			applies: func(s domain.FinancialSnapshot) bool {
				return s.GrossMargin < thresholds.LowProfitabilityThreshold
			},
			build: func(s domain.FinancialSnapshot) domain.Alert {
				return domain.Alert{
					Severity:  domain.SeverityWarning,
					Message:   fmt.Sprintf("Gross margin of %.1f%% is below the %.1f%% profitability threshold", s.GrossMargin, thresholds.LowProfitabilityThreshold),
					Metric:    "grossMargin",
					Value:     s.GrossMargin,
					Threshold: thresholds.LowProfitabilityThreshold,
				}
			},
		},
		{
			applies: func(s domain.FinancialSnapshot) bool {
				return s.NetProfit < 0
			},
			build: func(s domain.FinancialSnapshot) domain.Alert {
				return domain.Alert{
					Severity:  domain.SeverityCritical,
					Message:   "Business is operating at a loss",
					Metric:    "netProfit",
					Value:     s.NetProfit,
					Threshold: 0,
				}
			},
		},
		{
			applies: func(s domain.FinancialSnapshot) bool {
				return s.Revenue != 0 && s.InventoryValue/s.Revenue > inventoryToRevenueLimit
			},
			build: func(s domain.FinancialSnapshot) domain.Alert {
				return domain.Alert{
					Severity:  domain.SeverityWarning,
					Message:   "Inventory value is high relative to revenue",
					Metric:    "inventoryToRevenue",
					Value:     utils.SafeDivide(s.InventoryValue, s.Revenue),
					Threshold: inventoryToRevenueLimit,
				}
			},
		},
		{
			// Proxy simplificado de fluxo de caixa operacional; constantes preservadas como regra de negócio
			applies: func(s domain.FinancialSnapshot) bool {
				return cashFlowProxy(s) < cashFlowRevenueFactor*s.Revenue
			},
			build: func(s domain.FinancialSnapshot) domain.Alert {
				return domain.Alert{
					Severity:  domain.SeverityWarning,
					Message:   "Operating cash flow is low relative to revenue",
					Metric:    "cashFlow",
					Value:     cashFlowProxy(s),
					Threshold: cashFlowRevenueFactor * s.Revenue,
				}
			},
		},
	}
}

func cashFlowProxy(s domain.FinancialSnapshot) float64 {
	return s.NetProfit + cashFlowInventoryFactor*s.InventoryValue
}

// GenerateAlerts avalia o snapshot contra os limites configurados.
// O estoque é aceito para manter o contrato; as regras usam o valor já agregado no snapshot.
func GenerateAlerts(snapshot domain.FinancialSnapshot, _ []domain.StockItem, thresholds domain.Thresholds) []domain.Alert {
	return evaluate(healthRules(thresholds), snapshot)
}

func evaluate(rules []alertRule, snapshot domain.FinancialSnapshot) []domain.Alert {
	alerts := make([]domain.Alert, 0, len(rules))
	for _, rule := range rules {
		if rule.applies(snapshot) {
			alerts = append(alerts, rule.build(snapshot))
		}
	}

	return SortAlerts(alerts)
}

// SortAlerts ordena por severidade decrescente mantendo a ordem de geração nos empates
func SortAlerts(alerts []domain.Alert) []domain.Alert {
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity.Weight() > alerts[j].Severity.Weight()
	})

	return alerts
}

func stageRules(stage domain.BusinessStage) []alertRule {
	switch stage {
	case domain.BusinessStageStartup:
		return []alertRule{
			{
				applies: func(s domain.FinancialSnapshot) bool { return s.Revenue == 0 },
				build: func(s domain.FinancialSnapshot) domain.Alert {
					return domain.Alert{Severity: domain.SeverityWarning, Message: "No revenue recorded yet; validate product-market fit", Metric: "revenue", Value: s.Revenue, Threshold: 0}
				},
			},
			{
				applies: func(s domain.FinancialSnapshot) bool { return s.Revenue > 0 && s.NetMargin < -20 },
				build: func(s domain.FinancialSnapshot) domain.Alert {
					return domain.Alert{Severity: domain.SeverityWarning, Message: "Losses exceed 20% of revenue; review cash runway", Metric: "netMargin", Value: s.NetMargin, Threshold: -20}
				},
			},
			{
				applies: func(s domain.FinancialSnapshot) bool { return s.Revenue > 0 && s.GrossMargin < 30 },
				build: func(s domain.FinancialSnapshot) domain.Alert {
					return domain.Alert{Severity: domain.SeverityInfo, Message: "Gross margin below 30% leaves little room to scale", Metric: "grossMargin", Value: s.GrossMargin, Threshold: 30}
				},
			},
		}
	case domain.BusinessStageGrowth:
		return []alertRule{
			{
				applies: func(s domain.FinancialSnapshot) bool { return s.NetProfit < 0 },
				build: func(s domain.FinancialSnapshot) domain.Alert {
					return domain.Alert{Severity: domain.SeverityCritical, Message: "Growth is not yet profitable; losses may outpace funding", Metric: "netProfit", Value: s.NetProfit, Threshold: 0}
				},
			},
			{
				applies: func(s domain.FinancialSnapshot) bool { return s.GrossMargin < 40 },
				build: func(s domain.FinancialSnapshot) domain.Alert {
					return domain.Alert{Severity: domain.SeverityWarning, Message: "Gross margin below 40% is too thin to fund growth", Metric: "grossMargin", Value: s.GrossMargin, Threshold: 40}
				},
			},
			{
				applies: func(s domain.FinancialSnapshot) bool { return s.InventoryValue > s.Revenue },
				build: func(s domain.FinancialSnapshot) domain.Alert {
					return domain.Alert{Severity: domain.SeverityWarning, Message: "Inventory build-up is outpacing sales", Metric: "inventoryValue", Value: s.InventoryValue, Threshold: s.Revenue}
				},
			},
			{
				applies: func(s domain.FinancialSnapshot) bool { return s.NetProfit >= 0 && s.NetMargin < 5 },
				build: func(s domain.FinancialSnapshot) domain.Alert {
					return domain.Alert{Severity: domain.SeverityInfo, Message: "Net margin below 5%; reinvestment capacity is limited", Metric: "netMargin", Value: s.NetMargin, Threshold: 5}
				},
			},
		}
	case domain.BusinessStageMature:
		return []alertRule{
			{
				applies: func(s domain.FinancialSnapshot) bool { return s.NetProfit < 0 },
				build: func(s domain.FinancialSnapshot) domain.Alert {
					return domain.Alert{Severity: domain.SeverityCritical, Message: "Mature business operating at a loss", Metric: "netProfit", Value: s.NetProfit, Threshold: 0}
				},
			},
			{
				applies: func(s domain.FinancialSnapshot) bool { return s.NetProfit >= 0 && s.NetMargin < 10 },
				build: func(s domain.FinancialSnapshot) domain.Alert {
					return domain.Alert{Severity: domain.SeverityWarning, Message: "Net margin below 10% for a mature business", Metric: "netMargin", Value: s.NetMargin, Threshold: 10}
				},
			},
			{
				applies: func(s domain.FinancialSnapshot) bool { return s.GrossMargin < 50 },
				build: func(s domain.FinancialSnapshot) domain.Alert {
					return domain.Alert{Severity: domain.SeverityInfo, Message: "Gross margin below 50%; look for supplier efficiencies", Metric: "grossMargin", Value: s.GrossMargin, Threshold: 50}
				},
			},
		}
	default:
		return nil
	}
}

// GenerateStageAlerts aplica as heurísticas do estágio do negócio (startup, growth, mature)
func GenerateStageAlerts(snapshot domain.FinancialSnapshot, stage domain.BusinessStage) []domain.Alert {
	return evaluate(stageRules(stage), snapshot)
}

// GenerateInventoryAlerts detecta estoque parado (sem atualização há mais de 90 dias) e itens zerados
func GenerateInventoryAlerts(inventory []domain.StockItem, now time.Time) []domain.Alert {
	cutoff := now.AddDate(0, 0, -DeadStockDays)

	var (
		deadCount  int
		deadValue  float64
		emptyCount int
	)

	for _, item := range inventory {
		if item.CurrentStock <= 0 {
			emptyCount++
			continue
		}

		if item.UpdatedAt.Before(cutoff) {
			deadCount++
			deadValue += item.Value()
		}
	}

	alerts := make([]domain.Alert, 0, 2)
	if deadCount > 0 {
		alerts = append(alerts, domain.Alert{
			Severity:  domain.SeverityWarning,
			Message:   fmt.Sprintf("%d item(s) have not moved in over %d days, tying up %.2f in dead stock", deadCount, DeadStockDays, deadValue),
			Metric:    "deadStock",
			Value:     deadValue,
			Threshold: DeadStockDays,
		})
	}

	if emptyCount > 0 {
		alerts = append(alerts, domain.Alert{
			Severity:  domain.SeverityInfo,
			Message:   fmt.Sprintf("%d item(s) are out of stock", emptyCount),
			Metric:    "outOfStock",
			Value:     float64(emptyCount),
			Threshold: 0,
		})
	}

	return SortAlerts(alerts)
}
