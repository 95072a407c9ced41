package automating

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-automation-api/internal/analytics"
	"github.com/vfg2006/finance-automation-api/internal/domain"
	"github.com/vfg2006/finance-automation-api/pkg/utils"
)

const (
	DefaultROIYears = 3
	ROIDiscountRate = 0.10

	excellentROIThreshold     = 20.0
	goodROIThreshold          = 10.0
	excellentPaybackThreshold = 2.0
)

// Service implementa FinancialAutomation; os limites são fixados na construção
type Service struct {
	thresholds   domain.Thresholds
	lookbackDays int
	now          func() time.Time
}

type Option func(*Service)

// WithClock substitui o relógio usado para definir a janela recente
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLookbackDays altera a janela recente da análise de saúde (padrão 30 dias)
func WithLookbackDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.lookbackDays = days
		}
	}
}

// NewService cria o orquestrador com limites imutáveis
func NewService(thresholds domain.Thresholds, opts ...Option) FinancialAutomation {
	s := &Service{
		thresholds:   thresholds,
		lookbackDays: analytics.DefaultRecentDays,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Thresholds() domain.Thresholds {
	return s.thresholds
}

func (s *Service) AnalyzeFinancialHealth(sales []domain.Sale, expenses []domain.Expense, inventory []domain.StockItem) *domain.FinancialHealthReport {
	now := s.now()

	recentSales := analytics.FilterRecent(sales, s.lookbackDays, now)
	recentExpenses := analytics.FilterRecent(expenses, s.lookbackDays, now)

	snapshot := analytics.ComputeSnapshot(recentSales, recentExpenses, inventory)

	report := &domain.FinancialHealthReport{
		Snapshot:        snapshot,
		Trends:          analytics.WeeklyTrends(recentSales, recentExpenses),
		Alerts:          analytics.GenerateAlerts(snapshot, inventory, s.thresholds),
		Recommendations: analytics.GenerateRecommendations(snapshot, recentSales, recentExpenses, now),
	}

	logrus.WithFields(logrus.Fields{
		"sales":    len(recentSales),
		"expenses": len(recentExpenses),
		"alerts":   len(report.Alerts),
	}).Debug("Análise de saúde financeira concluída")

	return report
}

func (s *Service) CalculateBreakEven(fixedCosts, variableCostPerUnit, pricePerUnit float64) domain.BreakEvenResult {
	return analytics.BreakEven(fixedCosts, variableCostPerUnit, pricePerUnit)
}

func (s *Service) CalculateMultiProductBreakEven(fixedCosts float64, products []domain.ProductLine) domain.MultiProductBreakEvenResult {
	return analytics.MultiProductBreakEven(fixedCosts, products)
}

func (s *Service) AnalyzeBreakEvenSensitivity(fixedCosts, variableCostPerUnit, pricePerUnit, rangePct float64, steps int) domain.SensitivityResult {
	return analytics.Sensitivity(fixedCosts, variableCostPerUnit, pricePerUnit, rangePct, steps)
}

func (s *Service) ProjectFinancialPerformance(history []domain.HistoricalMonth, months int) domain.ProjectionResult {
	return analytics.Project(history, months)
}

func (s *Service) ProjectSeasonalPerformance(history []domain.HistoricalMonth, months int) domain.ProjectionResult {
	return analytics.ProjectSeasonal(history, months)
}

func (s *Service) ProjectScenarios(history []domain.HistoricalMonth, months int, scenarios []domain.ProjectionScenario) []domain.ScenarioProjection {
	return analytics.ProjectScenarios(history, months, scenarios)
}

func (s *Service) ProjectionInsights(result domain.ProjectionResult) []string {
	return analytics.GenerateInsights(result)
}

func (s *Service) CalculateROI(initialInvestment, expectedAnnualBenefit float64, years int) domain.ROIResult {
	if years <= 0 {
		years = DefaultROIYears
	}

	totalBenefit := expectedAnnualBenefit * float64(years)
	simpleROI := utils.Percent(totalBenefit-initialInvestment, initialInvestment)

	npv := -initialInvestment
	for t := 1; t <= years; t++ {
		npv += expectedAnnualBenefit / math.Pow(1+ROIDiscountRate, float64(t))
	}

	result := domain.ROIResult{
		SimpleROI:       simpleROI,
		NetPresentValue: npv,
		Years:           years,
		DiscountRate:    ROIDiscountRate,
	}

	// Sem benefício positivo o investimento nunca se paga
	if expectedAnnualBenefit > 0 {
		payback := initialInvestment / expectedAnnualBenefit
		result.PaybackPeriodYears = &payback
		result.IsViable = npv > 0 && payback < float64(years)
	}
	result.Recommendation = roiRecommendation(result)

	return result
}

func roiRecommendation(r domain.ROIResult) string {
	switch {
	case r.NetPresentValue > 0 && r.SimpleROI > excellentROIThreshold && r.PaybackPeriodYears != nil && *r.PaybackPeriodYears < excellentPaybackThreshold:
		return "Excellent investment: strong return with a fast payback. Proceed"
	case r.NetPresentValue > 0 && r.SimpleROI > goodROIThreshold:
		return "Good investment: positive net present value and solid return"
	case r.NetPresentValue > 0:
		return "Marginal investment: positive net present value but low return; consider alternatives"
	default:
		return "Poor investment: the discounted benefits do not cover the investment"
	}
}

func (s *Service) OptimizePricing(currentPrice, currentVolume, costPerUnit, elasticity float64) domain.PricingOptimizationResult {
	if elasticity == 0 {
		elasticity = analytics.DefaultElasticity
	}

	return analytics.OptimizePricing(currentPrice, currentVolume, costPerUnit, elasticity)
}

func (s *Service) AnalyzeInventory(inventory []domain.StockItem) []domain.Alert {
	return analytics.GenerateInventoryAlerts(inventory, s.now())
}

func (s *Service) AnalyzeBusinessStage(business domain.Business, sales []domain.Sale, expenses []domain.Expense, inventory []domain.StockItem) (*domain.StageReport, error) {
	if !business.Stage.IsValid() {
		return nil, &StageError{BusinessID: business.ID, Stage: string(business.Stage)}
	}

	now := s.now()
	snapshot := analytics.ComputeSnapshot(
		analytics.FilterRecent(sales, s.lookbackDays, now),
		analytics.FilterRecent(expenses, s.lookbackDays, now),
		inventory,
	)

	return &domain.StageReport{
		BusinessID: business.ID,
		Stage:      business.Stage,
		Snapshot:   snapshot,
		Alerts:     analytics.GenerateStageAlerts(snapshot, business.Stage),
		Guidance:   analytics.StrategicGuidance(snapshot, business.Stage),
	}, nil
}
