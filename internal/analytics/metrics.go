// Package analytics implementa o motor de análise financeira: métricas, tendências,
// alertas, recomendações, ponto de equilíbrio, projeções e otimização de preços.
//
// Todas as funções são puras: recebem cópias dos registros e devolvem estruturas novas.
package analytics

import (
	"time"

	"github.com/vfg2006/finance-automation-api/internal/domain"
	"github.com/vfg2006/finance-automation-api/pkg/utils"
)

// DefaultRecentDays é a janela usada para snapshots "recentes"
const DefaultRecentDays = 30

// Dated é implementado pelos registros com data (vendas e despesas)
type Dated interface {
	OccurredAt() time.Time
}

// ComputeSnapshot agrega vendas, despesas e estoque em um snapshot financeiro
func ComputeSnapshot(sales []domain.Sale, expenses []domain.Expense, inventory []domain.StockItem) domain.FinancialSnapshot {
	var revenue, cogs, totalExpenses, inventoryValue float64

	for _, sale := range sales {
		revenue += sale.Amount
		cogs += sale.Cost
	}

	for _, expense := range expenses {
		totalExpenses += expense.Amount
	}

	for _, item := range inventory {
		inventoryValue += item.Value()
	}

	grossProfit := revenue - cogs
	netProfit := grossProfit - totalExpenses

	return domain.FinancialSnapshot{
		Revenue:        revenue,
		COGS:           cogs,
		GrossProfit:    grossProfit,
		TotalExpenses:  totalExpenses,
		NetProfit:      netProfit,
		GrossMargin:    utils.Percent(grossProfit, revenue),
		NetMargin:      utils.Percent(netProfit, revenue),
		InventoryValue: inventoryValue,
	}
}

// FilterRecent mantém apenas os registros dos últimos `days` dias em relação a now
func FilterRecent[T Dated](records []T, days int, now time.Time) []T {
	if days <= 0 {
		days = DefaultRecentDays
	}

	cutoff := now.AddDate(0, 0, -days)

	recent := make([]T, 0, len(records))
	for _, record := range records {
		if !record.OccurredAt().Before(cutoff) {
			recent = append(recent, record)
		}
	}

	return recent
}
