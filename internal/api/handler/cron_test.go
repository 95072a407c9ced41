package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-automation-api/pkg/apiErrors"
)

type fakeCronRunner struct {
	started  bool
	triggers int
}

func (f *fakeCronRunner) TriggerManualSync() bool {
	f.triggers++
	return f.started
}

func (f *fakeCronRunner) GetStatus() map[string]any {
	return map[string]any{"running": !f.started}
}

func TestRunCronJob(t *testing.T) {
	tests := []struct {
		name       string
		cronType   string
		runner     *fakeCronRunner
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Execução manual iniciada",
			cronType:   CronJobTypeHealthDigest,
			runner:     &fakeCronRunner{started: true},
			wantStatus: http.StatusAccepted,
		},
		{
			name:       "Execução já em andamento",
			cronType:   CronJobTypeHealthDigest,
			runner:     &fakeCronRunner{started: false},
			wantStatus: http.StatusConflict,
			wantCode:   apiErrors.ErrJobAlreadyRunning,
		},
		{
			name:       "Tipo desconhecido",
			cronType:   "unknown-job",
			runner:     &fakeCronRunner{started: true},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := httprouter.New()
			rt.Handler(http.MethodPost, "/v1/cron/:type/run", RunCronJob(CronJobServices{HealthDigestService: tt.runner}))

			rr := httptest.NewRecorder()
			rt.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/cron/"+tt.cronType+"/run", nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rr).Code)
				return
			}
			assert.Equal(t, 1, tt.runner.triggers)
		})
	}
}

func TestGetCronStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	GetCronStatus(CronJobServices{HealthDigestService: &fakeCronRunner{started: true}}).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var status map[string]map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, false, status[CronJobTypeHealthDigest]["running"])
}
