package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-automation-api/internal/domain"
)

func TestGenerateAlerts(t *testing.T) {
	thresholds := domain.Thresholds{LowProfitabilityThreshold: 20}

	tests := []struct {
		name            string
		snapshot        domain.FinancialSnapshot
		expectedMetrics []string
	}{
		{
			name: "Prejuízo aparece primeiro mesmo sendo gerado depois da margem",
			snapshot: domain.FinancialSnapshot{
				Revenue:        1000,
				COGS:           900,
				GrossProfit:    100,
				TotalExpenses:  300,
				NetProfit:      -200,
				GrossMargin:    10,
				NetMargin:      -20,
				InventoryValue: 2500,
			},
			expectedMetrics: []string{"netProfit", "grossMargin", "inventoryToRevenue", "cashFlow"},
		},
		{
			name:            "Snapshot zerado gera apenas o alerta de margem",
			snapshot:        domain.FinancialSnapshot{},
			expectedMetrics: []string{"grossMargin"},
		},
		{
			name: "Negócio saudável não gera alertas",
			snapshot: domain.FinancialSnapshot{
				Revenue:        10000,
				COGS:           4000,
				GrossProfit:    6000,
				TotalExpenses:  2000,
				NetProfit:      4000,
				GrossMargin:    60,
				NetMargin:      40,
				InventoryValue: 5000,
			},
			expectedMetrics: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := GenerateAlerts(tt.snapshot, nil, thresholds)

			metrics := make([]string, 0, len(alerts))
			for _, alert := range alerts {
				metrics = append(metrics, alert.Metric)
			}
			assert.Equal(t, tt.expectedMetrics, metrics)
		})
	}
}

func TestGenerateAlertsOrdering(t *testing.T) {
	thresholds := domain.Thresholds{LowProfitabilityThreshold: 20}

	snapshots := []domain.FinancialSnapshot{
		{Revenue: 1000, GrossMargin: 5, NetProfit: -10, InventoryValue: 5000},
		{Revenue: 0, NetProfit: -50},
		{Revenue: 100, GrossMargin: 80, NetProfit: 1, InventoryValue: 1000},
	}

	for _, snapshot := range snapshots {
		alerts := GenerateAlerts(snapshot, nil, thresholds)
		for i := 1; i < len(alerts); i++ {
			assert.GreaterOrEqual(t, alerts[i-1].Severity.Weight(), alerts[i].Severity.Weight())
		}
	}
}

func TestGenerateStageAlerts(t *testing.T) {
	snapshot := domain.FinancialSnapshot{
		Revenue:        1000,
		GrossMargin:    10,
		NetProfit:      -100,
		NetMargin:      -10,
		InventoryValue: 2000,
	}

	alerts := GenerateStageAlerts(snapshot, domain.BusinessStageGrowth)

	require.Len(t, alerts, 3)
	assert.Equal(t, domain.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, "grossMargin", alerts[1].Metric)
	assert.Equal(t, "inventoryValue", alerts[2].Metric)

	assert.Empty(t, GenerateStageAlerts(snapshot, domain.BusinessStage("unknown")))
}

func TestGenerateInventoryAlerts(t *testing.T) {
	now := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	stale := now.AddDate(0, 0, -100)

	inventory := []domain.StockItem{
		{ID: "1", Name: "flour", CurrentStock: 10, PricePerUnit: 5, UpdatedAt: stale},
		{ID: "2", Name: "sugar", CurrentStock: 2, PricePerUnit: 10, UpdatedAt: stale},
		{ID: "3", Name: "butter", CurrentStock: 3, PricePerUnit: 8, UpdatedAt: now.AddDate(0, 0, -10)},
		{ID: "4", Name: "yeast", CurrentStock: 0, PricePerUnit: 3, UpdatedAt: stale},
	}

	alerts := GenerateInventoryAlerts(inventory, now)

	require.Len(t, alerts, 2)
	assert.Equal(t, domain.SeverityWarning, alerts[0].Severity)
	assert.Equal(t, "deadStock", alerts[0].Metric)
	assert.Equal(t, 70.0, alerts[0].Value)
	assert.Equal(t, domain.SeverityInfo, alerts[1].Severity)
	assert.Equal(t, 1.0, alerts[1].Value)

	assert.Empty(t, GenerateInventoryAlerts(nil, now))
}
