package handler

import (
	"net/http"

	"github.com/vfg2006/finance-automation-api/internal/api/handler/router"
	"github.com/vfg2006/finance-automation-api/internal/usecases/automating"
	"github.com/vfg2006/finance-automation-api/internal/usecases/reporting"
	"github.com/vfg2006/finance-automation-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Reports são as rotas que leem os registros do negócio associado ao token
func Reports(reporter reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/finance/health",
			Method:      http.MethodGet,
			Handler:     GetFinancialHealth(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/finance/inventory/alerts",
			Method:      http.MethodGet,
			Handler:     GetInventoryAlerts(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/finance/stage",
			Method:      http.MethodGet,
			Handler:     GetStageReport(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/finance/projection",
			Method:      http.MethodGet,
			Handler:     GetProjection(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/finance/projection/scenarios",
			Method:      http.MethodGet,
			Handler:     GetProjectionScenarios(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/finance/projection/export",
			Method:      http.MethodGet,
			Handler:     ExportProjection(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// Calculators são as rotas que operam apenas sobre os dados do corpo da requisição
func Calculators(automation automating.FinancialAutomation) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/finance/break-even",
			Method:      http.MethodPost,
			Handler:     CalculateBreakEven(automation),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOrManager()},
		},
		{
			Path:        "/v1/finance/break-even/multi-product",
			Method:      http.MethodPost,
			Handler:     CalculateMultiProductBreakEven(automation),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOrManager()},
		},
		{
			Path:        "/v1/finance/break-even/sensitivity",
			Method:      http.MethodPost,
			Handler:     AnalyzeBreakEvenSensitivity(automation),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOrManager()},
		},
		{
			Path:        "/v1/finance/roi",
			Method:      http.MethodPost,
			Handler:     CalculateROI(automation),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOrManager()},
		},
		{
			Path:        "/v1/finance/pricing/optimize",
			Method:      http.MethodPost,
			Handler:     OptimizePricing(automation),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOrManager()},
		},
		{
			Path:        "/v1/finance/projection/custom",
			Method:      http.MethodPost,
			Handler:     ProjectCustomHistory(automation),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
