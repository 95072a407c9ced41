package reporting

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-automation-api/infrastructure/repository"
	"github.com/vfg2006/finance-automation-api/internal/domain"
	"github.com/vfg2006/finance-automation-api/internal/usecases/automating"
	"github.com/vfg2006/finance-automation-api/pkg/apiErrors"
	"github.com/vfg2006/finance-automation-api/pkg/utils"
)

type Repositories struct {
	Business       repository.BusinessRepository
	Sale           repository.SaleRepository
	Expense        repository.ExpenseRepository
	Inventory      repository.InventoryRepository
	MonthlySummary repository.MonthlySummaryRepository
}

type Service struct {
	automation    automating.FinancialAutomation
	repos         Repositories
	lookbackDays  int
	historyMonths int
	now           func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithHistoryMonths define quantos meses de histórico alimentam as projeções
func WithHistoryMonths(months int) Option {
	return func(s *Service) {
		if months > 0 {
			s.historyMonths = months
		}
	}
}

func WithLookbackDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.lookbackDays = days
		}
	}
}

func NewService(automation automating.FinancialAutomation, repos Repositories, opts ...Option) Reporter {
	s := &Service{
		automation:    automation,
		repos:         repos,
		lookbackDays:  30,
		historyMonths: 24,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// records reúne os dados carregados em paralelo para um negócio
type records struct {
	sales     []domain.Sale
	expenses  []domain.Expense
	inventory []domain.StockItem
}

func (s *Service) GetFinancialHealth(ctx context.Context, businessID string) (*domain.FinancialHealthReport, error) {
	if _, err := s.activeBusiness(ctx, businessID); err != nil {
		return nil, err
	}

	data, err := s.loadRecords(ctx, businessID)
	if err != nil {
		return nil, err
	}

	return s.automation.AnalyzeFinancialHealth(data.sales, data.expenses, data.inventory), nil
}

func (s *Service) GetInventoryAlerts(ctx context.Context, businessID string) ([]domain.Alert, error) {
	if _, err := s.activeBusiness(ctx, businessID); err != nil {
		return nil, err
	}

	inventory, err := s.repos.Inventory.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, NewReportError(ErrLoadRecords, apiErrors.ErrDatabaseOperation, businessID, err.Error())
	}

	return s.automation.AnalyzeInventory(inventory), nil
}

func (s *Service) GetStageReport(ctx context.Context, businessID string) (*domain.StageReport, error) {
	business, err := s.activeBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	data, err := s.loadRecords(ctx, businessID)
	if err != nil {
		return nil, err
	}

	report, err := s.automation.AnalyzeBusinessStage(*business, data.sales, data.expenses, data.inventory)
	if err != nil {
		if errors.Is(err, automating.ErrInvalidStage) {
			return nil, NewReportError(err, apiErrors.ErrInvalidStage, businessID, string(business.Stage))
		}
		return nil, err
	}

	return report, nil
}

func (s *Service) GetProjection(ctx context.Context, businessID string, opts ProjectionOptions) (*domain.ProjectionReport, error) {
	if err := validateMonths(opts.Months); err != nil {
		return nil, err
	}

	history, err := s.loadHistory(ctx, businessID)
	if err != nil {
		return nil, err
	}

	var result domain.ProjectionResult
	if opts.Seasonal {
		result = s.automation.ProjectSeasonalPerformance(history, opts.Months)
	} else {
		result = s.automation.ProjectFinancialPerformance(history, opts.Months)
	}

	return &domain.ProjectionReport{
		History:  history,
		Result:   result,
		Insights: s.automation.ProjectionInsights(result),
	}, nil
}

func (s *Service) GetProjectionScenarios(ctx context.Context, businessID string, months int) ([]domain.ScenarioProjection, error) {
	if err := validateMonths(months); err != nil {
		return nil, err
	}

	history, err := s.loadHistory(ctx, businessID)
	if err != nil {
		return nil, err
	}

	return s.automation.ProjectScenarios(history, months, nil), nil
}

func validateMonths(months int) error {
	if months < 0 || months > MaxProjectionMonths {
		return NewReportError(ErrInvalidMonths, apiErrors.ErrInvalidMonths, "", fmt.Sprintf("months deve estar entre 0 e %d (0 = %d)", MaxProjectionMonths, DefaultProjectionMonths))
	}
	return nil
}

// activeBusiness garante que o negócio existe e está ativo
func (s *Service) activeBusiness(ctx context.Context, businessID string) (*domain.Business, error) {
	if businessID == "" {
		return nil, NewReportError(ErrBusinessIDRequired, apiErrors.ErrMissingBusiness, "", "")
	}

	business, err := s.repos.Business.GetByID(ctx, businessID)
	if err != nil {
		return nil, NewReportError(ErrLoadRecords, apiErrors.ErrDatabaseOperation, businessID, err.Error())
	}

	if business == nil || !business.Active {
		return nil, NewReportError(ErrBusinessNotFound, apiErrors.ErrBusinessNotFound, businessID, "")
	}

	return business, nil
}

func (s *Service) loadHistory(ctx context.Context, businessID string) ([]domain.HistoricalMonth, error) {
	if _, err := s.activeBusiness(ctx, businessID); err != nil {
		return nil, err
	}

	// O mês corrente ainda está em andamento e ficaria como base da projeção
	until := utils.FirstDayOfMonth(s.now())
	since := until.AddDate(0, -s.historyMonths, 0)

	history, err := s.repos.MonthlySummary.ListMonthly(ctx, businessID, since, until)
	if err != nil {
		return nil, NewReportError(ErrLoadRecords, apiErrors.ErrDatabaseOperation, businessID, err.Error())
	}

	return history, nil
}

// loadRecords busca vendas, despesas e estoque em paralelo
func (s *Service) loadRecords(ctx context.Context, businessID string) (*records, error) {
	since := s.now().AddDate(0, 0, -s.lookbackDays)

	var (
		wg                              sync.WaitGroup
		data                            records
		salesErr, expensesErr, stockErr error
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		data.sales, salesErr = s.repos.Sale.ListByBusiness(ctx, businessID, since)
	}()

	go func() {
		defer wg.Done()
		data.expenses, expensesErr = s.repos.Expense.ListByBusiness(ctx, businessID, since)
	}()

	go func() {
		defer wg.Done()
		data.inventory, stockErr = s.repos.Inventory.ListByBusiness(ctx, businessID)
	}()

	wg.Wait()

	if err := errors.Join(salesErr, expensesErr, stockErr); err != nil {
		logrus.WithFields(logrus.Fields{
			"business_id": businessID,
			"error":       err,
		}).Error("Erro ao carregar registros financeiros")
		return nil, NewReportError(ErrLoadRecords, apiErrors.ErrDatabaseOperation, businessID, err.Error())
	}

	return &data, nil
}
