package automating

import (
	"github.com/vfg2006/finance-automation-api/internal/domain"
)

// FinancialAutomation é o ponto de entrada do motor de análise financeira
type FinancialAutomation interface {
	// AnalyzeFinancialHealth calcula snapshot, tendências, alertas e recomendações dos últimos dias
	AnalyzeFinancialHealth(sales []domain.Sale, expenses []domain.Expense, inventory []domain.StockItem) *domain.FinancialHealthReport

	CalculateBreakEven(fixedCosts, variableCostPerUnit, pricePerUnit float64) domain.BreakEvenResult
	CalculateMultiProductBreakEven(fixedCosts float64, products []domain.ProductLine) domain.MultiProductBreakEvenResult
	AnalyzeBreakEvenSensitivity(fixedCosts, variableCostPerUnit, pricePerUnit, rangePct float64, steps int) domain.SensitivityResult

	ProjectFinancialPerformance(history []domain.HistoricalMonth, months int) domain.ProjectionResult
	ProjectSeasonalPerformance(history []domain.HistoricalMonth, months int) domain.ProjectionResult
	ProjectScenarios(history []domain.HistoricalMonth, months int, scenarios []domain.ProjectionScenario) []domain.ScenarioProjection
	ProjectionInsights(result domain.ProjectionResult) []string

	// CalculateROI usa taxa de desconto fixa de 10% ao ano; years <= 0 assume 3 anos
	CalculateROI(initialInvestment, expectedAnnualBenefit float64, years int) domain.ROIResult

	OptimizePricing(currentPrice, currentVolume, costPerUnit, elasticity float64) domain.PricingOptimizationResult

	// AnalyzeInventory detecta estoque parado e itens zerados
	AnalyzeInventory(inventory []domain.StockItem) []domain.Alert

	// AnalyzeBusinessStage aplica alertas e orientações do estágio informado
	AnalyzeBusinessStage(business domain.Business, sales []domain.Sale, expenses []domain.Expense, inventory []domain.StockItem) (*domain.StageReport, error)

	Thresholds() domain.Thresholds
}
