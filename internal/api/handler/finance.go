package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/finance-automation-api/internal/domain"
	"github.com/vfg2006/finance-automation-api/internal/usecases/automating"
	"github.com/vfg2006/finance-automation-api/internal/usecases/reporting"
	"github.com/vfg2006/finance-automation-api/pkg/apiErrors"
	"github.com/vfg2006/finance-automation-api/pkg/log"
	"github.com/vfg2006/finance-automation-api/pkg/middleware"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary
	validate = validator.New()
)

type BreakEvenRequest struct {
	FixedCosts          float64 `json:"fixed_costs" validate:"gte=0"`
	VariableCostPerUnit float64 `json:"variable_cost_per_unit" validate:"gte=0"`
	PricePerUnit        float64 `json:"price_per_unit" validate:"gt=0"`
}

type MultiProductBreakEvenRequest struct {
	FixedCosts float64              `json:"fixed_costs" validate:"gte=0"`
	Products   []domain.ProductLine `json:"products" validate:"required,min=1,dive"`
}

// SensitivityRequest aceita range_percent como fração (0.10 = ±10%); zero usa os padrões
type SensitivityRequest struct {
	FixedCosts          float64 `json:"fixed_costs" validate:"gte=0"`
	VariableCostPerUnit float64 `json:"variable_cost_per_unit" validate:"gte=0"`
	PricePerUnit        float64 `json:"price_per_unit" validate:"gt=0"`
	RangePercent        float64 `json:"range_percent" validate:"gte=0,lt=1"`
	Steps               int     `json:"steps" validate:"gte=0,lte=20"`
}

type ROIRequest struct {
	InitialInvestment     float64 `json:"initial_investment" validate:"gt=0"`
	ExpectedAnnualBenefit float64 `json:"expected_annual_benefit"`
	Years                 int     `json:"years" validate:"gte=0,lte=50"`
}

type PricingRequest struct {
	CurrentPrice  float64 `json:"current_price" validate:"gt=0"`
	CurrentVolume float64 `json:"current_volume" validate:"gte=0"`
	CostPerUnit   float64 `json:"cost_per_unit" validate:"gte=0"`
	Elasticity    float64 `json:"elasticity" validate:"lte=0"`
}

type CustomProjectionRequest struct {
	History   []domain.HistoricalMonth    `json:"history" validate:"required,min=1,dive"`
	Months    int                         `json:"months" validate:"gte=0,lte=60"`
	Seasonal  bool                        `json:"seasonal"`
	Scenarios []domain.ProjectionScenario `json:"scenarios" validate:"omitempty,dive"`
}

type CustomProjectionResponse struct {
	domain.ProjectionReport
	Scenarios []domain.ScenarioProjection `json:"scenarios,omitempty"`
}

// GetFinancialHealth retorna snapshot, tendências, alertas e recomendações do negócio do token
func GetFinancialHealth(reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, ok := requireBusiness(w, r)
		if !ok {
			return
		}

		report, err := reporter.GetFinancialHealth(r.Context(), businessID)
		if err != nil {
			writeReportError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}

func GetInventoryAlerts(reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, ok := requireBusiness(w, r)
		if !ok {
			return
		}

		alerts, err := reporter.GetInventoryAlerts(r.Context(), businessID)
		if err != nil {
			writeReportError(w, r, err)
			return
		}
		if alerts == nil {
			alerts = []domain.Alert{}
		}

		writeJSON(w, r, http.StatusOK, map[string]any{"alerts": alerts})
	}
}

func GetStageReport(reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, ok := requireBusiness(w, r)
		if !ok {
			return
		}

		report, err := reporter.GetStageReport(r.Context(), businessID)
		if err != nil {
			writeReportError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}

// GetProjection projeta o desempenho a partir do histórico mensal armazenado
func GetProjection(reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, ok := requireBusiness(w, r)
		if !ok {
			return
		}

		opts, ok := parseProjectionOptions(w, r)
		if !ok {
			return
		}

		report, err := reporter.GetProjection(r.Context(), businessID, opts)
		if err != nil {
			writeReportError(w, r, err)
			return
		}
		if report.Result.Error != "" {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientHistory, report.Result.Error, nil)
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}

func GetProjectionScenarios(reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID, ok := requireBusiness(w, r)
		if !ok {
			return
		}

		opts, ok := parseProjectionOptions(w, r)
		if !ok {
			return
		}

		scenarios, err := reporter.GetProjectionScenarios(r.Context(), businessID, opts.Months)
		if err != nil {
			writeReportError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{"scenarios": scenarios})
	}
}

func CalculateBreakEven(automation automating.FinancialAutomation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BreakEvenRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		result := automation.CalculateBreakEven(req.FixedCosts, req.VariableCostPerUnit, req.PricePerUnit)
		writeJSON(w, r, http.StatusOK, result)
	}
}

func CalculateMultiProductBreakEven(automation automating.FinancialAutomation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MultiProductBreakEvenRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		result := automation.CalculateMultiProductBreakEven(req.FixedCosts, req.Products)
		writeJSON(w, r, http.StatusOK, result)
	}
}

func AnalyzeBreakEvenSensitivity(automation automating.FinancialAutomation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SensitivityRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		result := automation.AnalyzeBreakEvenSensitivity(req.FixedCosts, req.VariableCostPerUnit, req.PricePerUnit, req.RangePercent, req.Steps)
		writeJSON(w, r, http.StatusOK, result)
	}
}

func CalculateROI(automation automating.FinancialAutomation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ROIRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		result := automation.CalculateROI(req.InitialInvestment, req.ExpectedAnnualBenefit, req.Years)
		writeJSON(w, r, http.StatusOK, result)
	}
}

func OptimizePricing(automation automating.FinancialAutomation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PricingRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		result := automation.OptimizePricing(req.CurrentPrice, req.CurrentVolume, req.CostPerUnit, req.Elasticity)
		writeJSON(w, r, http.StatusOK, result)
	}
}

// ProjectCustomHistory projeta a partir de meses informados pelo chamador, sem consultar o banco
func ProjectCustomHistory(automation automating.FinancialAutomation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CustomProjectionRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		var result domain.ProjectionResult
		if req.Seasonal {
			result = automation.ProjectSeasonalPerformance(req.History, req.Months)
		} else {
			result = automation.ProjectFinancialPerformance(req.History, req.Months)
		}
		if result.Error != "" {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientHistory, result.Error, nil)
			return
		}

		response := CustomProjectionResponse{
			ProjectionReport: domain.ProjectionReport{
				History:  req.History,
				Result:   result,
				Insights: automation.ProjectionInsights(result),
			},
		}
		if len(req.Scenarios) > 0 {
			response.Scenarios = automation.ProjectScenarios(req.History, req.Months, req.Scenarios)
		}

		writeJSON(w, r, http.StatusOK, response)
	}
}

func requireBusiness(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return "", false
	}
	if claims.BusinessID == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingBusiness, "Token sem negócio associado", nil)
		return "", false
	}
	return claims.BusinessID, true
}

func parseProjectionOptions(w http.ResponseWriter, r *http.Request) (reporting.ProjectionOptions, bool) {
	var opts reporting.ProjectionOptions
	query := r.URL.Query()

	if raw := query.Get("months"); raw != "" {
		months, err := strconv.Atoi(raw)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro months inválido", nil)
			return opts, false
		}
		opts.Months = months
	}

	if raw := query.Get("seasonal"); raw != "" {
		seasonal, err := strconv.ParseBool(raw)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro seasonal inválido", nil)
			return opts, false
		}
		opts.Seasonal = seasonal
	}

	return opts, true
}

func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("Erro ao decodificar requisição")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Requisição inválida", validationDetails(err))
		return false
	}

	return true
}

func validationDetails(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make(map[string]string, len(validationErrors))
	for _, ve := range validationErrors {
		details[ve.Namespace()] = ve.Tag()
	}
	return details
}

func writeReportError(w http.ResponseWriter, r *http.Request, err error) {
	var reportErr *reporting.ReportError
	if errors.As(err, &reportErr) && reportErr.Code != "" {
		if apiErrors.StatusFor(reportErr.Code) >= http.StatusInternalServerError {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao gerar relatório financeiro")
			apiErrors.WriteError(w, reportErr.Code, "Erro ao gerar relatório financeiro", nil)
			return
		}
		apiErrors.WriteError(w, reportErr.Code, reportErr.Error(), nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("Erro inesperado ao gerar relatório financeiro")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar relatório financeiro", nil)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}
