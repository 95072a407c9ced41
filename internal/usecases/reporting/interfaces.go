package reporting

import (
	"context"

	"github.com/vfg2006/finance-automation-api/internal/analytics"
	"github.com/vfg2006/finance-automation-api/internal/domain"
)

const (
	MaxProjectionMonths = 60
	// DefaultProjectionMonths é usado quando months = 0
	DefaultProjectionMonths = analytics.DefaultProjectionMonths
)

type ProjectionOptions struct {
	Months   int
	Seasonal bool
}

// Reporter carrega os registros de um negócio e executa as análises do motor financeiro
type Reporter interface {
	GetFinancialHealth(ctx context.Context, businessID string) (*domain.FinancialHealthReport, error)
	GetInventoryAlerts(ctx context.Context, businessID string) ([]domain.Alert, error)
	GetStageReport(ctx context.Context, businessID string) (*domain.StageReport, error)
	GetProjection(ctx context.Context, businessID string, opts ProjectionOptions) (*domain.ProjectionReport, error)
	GetProjectionScenarios(ctx context.Context, businessID string, months int) ([]domain.ScenarioProjection, error)
}
