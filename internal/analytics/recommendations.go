package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/vfg2006/finance-automation-api/internal/domain"
	"github.com/vfg2006/finance-automation-api/pkg/utils"
)

const (
	lowAverageSaleAmount     = 50000.0
	monthlyRevenueCVLimit    = 0.3
	topExpenseShareLimit     = 30.0
	recentExpenseShareLimit  = 80.0
	growthNetMarginThreshold = 20.0
)

// recommendationInput concentra os dados derivados que as regras consultam
type recommendationInput struct {
	snapshot          domain.FinancialSnapshot
	averageSale       float64
	salesCount        int
	monthlyRevenueCV  float64
	monthsWithSales   int
	topCategory       string
	topCategoryAmount float64
	recentExpenses    float64
}

type recommendationRule struct {
	applies func(in recommendationInput) bool
	message func(in recommendationInput) string
}

// Ordem fixa: lucratividade, receita, custos, crescimento e gestão de caixa
var recommendationRules = []recommendationRule{
	// lucratividade
	{
		applies: func(in recommendationInput) bool { return in.snapshot.GrossMargin < 50 },
		message: func(in recommendationInput) string {
			return fmt.Sprintf("Gross margin is %.1f%%: review pricing or negotiate lower cost of goods", in.snapshot.GrossMargin)
		},
	},
	{
		applies: func(in recommendationInput) bool { return in.snapshot.NetMargin < 10 },
		message: func(in recommendationInput) string {
			return fmt.Sprintf("Net margin is %.1f%%: review operating expenses for savings", in.snapshot.NetMargin)
		},
	},
	{
		applies: func(in recommendationInput) bool { return in.snapshot.NetProfit < 0 },
		message: func(in recommendationInput) string {
			return "The business is losing money: take urgent corrective action on costs and pricing"
		},
	},
	// receita
	{
		applies: func(in recommendationInput) bool { return in.salesCount > 0 && in.averageSale < lowAverageSaleAmount },
		message: func(in recommendationInput) string {
			return fmt.Sprintf("Average sale is %.0f: consider upselling, bundles or minimum order values", in.averageSale)
		},
	},
	{
		applies: func(in recommendationInput) bool { return in.monthsWithSales > 1 && in.monthlyRevenueCV > monthlyRevenueCVLimit },
		message: func(in recommendationInput) string {
			return "Monthly revenue varies significantly: plan inventory and cash around seasonal peaks"
		},
	},
	// custos
	{
		applies: func(in recommendationInput) bool {
			return in.topCategory != "" && in.snapshot.Revenue > 0 && utils.Percent(in.topCategoryAmount, in.snapshot.Revenue) > topExpenseShareLimit
		},
		message: func(in recommendationInput) string {
			return fmt.Sprintf("Expense category %q represents %.1f%% of revenue: investigate this cost", in.topCategory, utils.Percent(in.topCategoryAmount, in.snapshot.Revenue))
		},
	},
	{
		applies: func(in recommendationInput) bool {
			return in.snapshot.Revenue > 0 && utils.Percent(in.recentExpenses, in.snapshot.Revenue) > recentExpenseShareLimit
		},
		message: func(in recommendationInput) string {
			return "Expenses over the last 30 days exceed 80% of revenue: tighten cost controls"
		},
	},
	// crescimento
	{
		applies: func(in recommendationInput) bool { return in.snapshot.NetMargin > growthNetMarginThreshold },
		message: func(in recommendationInput) string {
			return "Net margin above 20%: consider scaling production or expanding sales channels"
		},
	},
	// gestão de caixa
	{
		applies: func(in recommendationInput) bool { return in.snapshot.InventoryValue > 2*in.snapshot.Revenue },
		message: func(in recommendationInput) string {
			return "Inventory value exceeds twice revenue: stock is turning over slowly, reduce purchasing"
		},
	},
}

// GenerateRecommendations produz orientações textuais a partir do snapshot e dos registros brutos.
// asOf define o fim da janela de 30 dias usada na regra de controle de despesas.
func GenerateRecommendations(snapshot domain.FinancialSnapshot, sales []domain.Sale, expenses []domain.Expense, asOf time.Time) []string {
	in := buildRecommendationInput(snapshot, sales, expenses, asOf)

	recommendations := make([]string, 0)
	for _, rule := range recommendationRules {
		if rule.applies(in) {
			recommendations = append(recommendations, rule.message(in))
		}
	}

	return recommendations
}

func buildRecommendationInput(snapshot domain.FinancialSnapshot, sales []domain.Sale, expenses []domain.Expense, asOf time.Time) recommendationInput {
	in := recommendationInput{
		snapshot:   snapshot,
		salesCount: len(sales),
	}

	if len(sales) > 0 {
		in.averageSale = snapshot.Revenue / float64(len(sales))
	}

	monthly := make(map[string]float64)
	for _, sale := range sales {
		monthly[sale.Date.Format(utils.MonthLayout)] += sale.Amount
	}

	monthlyRevenues := make([]float64, 0, len(monthly))
	for _, revenue := range monthly {
		monthlyRevenues = append(monthlyRevenues, revenue)
	}
	in.monthsWithSales = len(monthlyRevenues)
	in.monthlyRevenueCV = CoefficientOfVariation(monthlyRevenues)

	in.topCategory, in.topCategoryAmount = topExpenseCategory(expenses)

	for _, expense := range FilterRecent(expenses, DefaultRecentDays, asOf) {
		in.recentExpenses += expense.Amount
	}

	return in
}

// topExpenseCategory retorna a categoria com maior total; empates resolvidos pelo nome
func topExpenseCategory(expenses []domain.Expense) (string, float64) {
	totals := make(map[string]float64)
	for _, expense := range expenses {
		totals[expense.Category] += expense.Amount
	}

	categories := make([]string, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var (
		top    string
		amount float64
	)
	for _, category := range categories {
		if totals[category] > amount {
			top = category
			amount = totals[category]
		}
	}

	return top, amount
}

// StrategicGuidance devolve orientações estratégicas do estágio, independentes da lista geral
func StrategicGuidance(snapshot domain.FinancialSnapshot, stage domain.BusinessStage) []string {
	guidance := make([]string, 0)

	switch stage {
	case domain.BusinessStageStartup:
		guidance = append(guidance,
			"Focus on validating demand before committing to large inventory purchases",
			"Track cash runway weekly and keep fixed costs variable where possible",
		)
		if snapshot.GrossMargin < 40 {
			guidance = append(guidance, "Raise gross margin above 40% before investing in growth")
		}
		if snapshot.NetProfit < 0 {
			guidance = append(guidance, "Define the sales volume needed to break even and monitor it monthly")
		}
	case domain.BusinessStageGrowth:
		guidance = append(guidance,
			"Standardize recipes and production batches to protect margins as volume grows",
			"Reinvest profits in the highest-margin products and channels",
		)
		if snapshot.InventoryValue > snapshot.Revenue {
			guidance = append(guidance, "Align purchasing with demand forecasts to avoid overstocking")
		}
		if snapshot.NetMargin > growthNetMarginThreshold {
			guidance = append(guidance, "Margins support expansion: evaluate new locations or wholesale customers")
		}
	case domain.BusinessStageMature:
		guidance = append(guidance,
			"Optimize operating costs and renegotiate supplier contracts annually",
			"Diversify revenue with new products to offset market saturation",
		)
		if snapshot.NetMargin < 10 {
			guidance = append(guidance, "Review underperforming products and consider discontinuing low-margin lines")
		}
		if snapshot.NetMargin >= 10 {
			guidance = append(guidance, "Build cash reserves and evaluate strategic investments using ROI analysis")
		}
	}

	return guidance
}
