package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/finance-automation-api/pkg/apiErrors"
	"github.com/vfg2006/finance-automation-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeHealthDigest = "health-digest"
)

// CronRunner é implementado pelos serviços agendados que aceitam execução manual
type CronRunner interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	HealthDigestService CronRunner
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		var runner CronRunner
		switch cronType {
		case CronJobTypeHealthDigest:
			runner = services.HealthDigestService
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: health-digest", nil)
			return
		}

		if runner == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de cron job não disponível", nil)
			return
		}

		if !runner.TriggerManualSync() {
			apiErrors.WriteError(w, apiErrors.ErrJobAlreadyRunning, "Cron job já em execução", nil)
			return
		}

		log.ForContext(r.Context()).WithField("job", cronType).Info("Cron job iniciada manualmente")

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.HealthDigestService != nil {
			status[CronJobTypeHealthDigest] = services.HealthDigestService.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
