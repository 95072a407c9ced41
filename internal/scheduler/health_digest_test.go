package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-automation-api/infrastructure/repository/mocks"
	"github.com/vfg2006/finance-automation-api/internal/config"
	"github.com/vfg2006/finance-automation-api/internal/domain"
	reportingmocks "github.com/vfg2006/finance-automation-api/internal/usecases/reporting/mocks"
	"go.uber.org/mock/gomock"
)

func newDigestConfig(maxJobs int, enabled bool) *config.Config {
	return &config.Config{
		HealthDigest: config.HealthDigest{
			CronSchedule:      "0 7 * * *",
			MaxConcurrentJobs: maxJobs,
			Enabled:           enabled,
		},
	}
}

type fakeLock struct {
	refreshes atomic.Int32
	released  atomic.Bool
}

func (l *fakeLock) Refresh(ctx context.Context, ttl time.Duration) error {
	l.refreshes.Add(1)
	return nil
}

func (l *fakeLock) Release(ctx context.Context) error {
	l.released.Store(true)
	return nil
}

type fakeLocker struct {
	lock *fakeLock
	err  error
}

func (l *fakeLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.lock, nil
}

func TestHealthDigestService_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	businessRepo := mocks.NewMockBusinessRepository(ctrl)
	reporter := reportingmocks.NewMockReporter(ctrl)

	businesses := []*domain.Business{
		{ID: "B1", Name: "Loja A", Stage: domain.BusinessStageGrowth, Active: true},
		{ID: "B2", Name: "Loja B", Stage: domain.BusinessStageMature, Active: true},
		{ID: "B3", Name: "Loja C", Stage: domain.BusinessStageStartup, Active: true},
	}

	businessRepo.EXPECT().ListActive(gomock.Any()).Return(businesses, nil)
	reporter.EXPECT().GetFinancialHealth(gomock.Any(), "B1").Return(&domain.FinancialHealthReport{
		Alerts: []domain.Alert{
			{Severity: domain.SeverityCritical, Message: "Business is operating at a loss", Metric: "netProfit"},
			{Severity: domain.SeverityWarning, Message: "Low gross margin", Metric: "grossMargin"},
		},
	}, nil)
	reporter.EXPECT().GetFinancialHealth(gomock.Any(), "B2").Return(&domain.FinancialHealthReport{}, nil)
	reporter.EXPECT().GetFinancialHealth(gomock.Any(), "B3").Return(nil, errors.New("falha no banco"))

	hook := logtest.NewGlobal()
	defer hook.Reset()

	service := NewHealthDigestService(businessRepo, reporter, nil, newDigestConfig(2, true))

	started := service.Run(context.Background())
	require.True(t, started)

	status := service.GetStatus()
	assert.Equal(t, false, status["running"])
	assert.Equal(t, 2, status["last_processed"])
	assert.Equal(t, 1, status["last_failed"])
	assert.NotEmpty(t, status["last_run_id"])

	var critical, warning *logrus.Entry
	for _, entry := range hook.AllEntries() {
		switch entry.Message {
		case "Business is operating at a loss":
			critical = entry
		case "Low gross margin":
			warning = entry
		}
	}
	require.NotNil(t, critical)
	require.NotNil(t, warning)
	assert.Equal(t, logrus.ErrorLevel, critical.Level)
	assert.Equal(t, logrus.WarnLevel, warning.Level)
	assert.Equal(t, "B1", critical.Data["business_id"])
	assert.Equal(t, status["last_run_id"], critical.Data["run_id"])
}

func TestHealthDigestService_Run_ListActiveError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	businessRepo := mocks.NewMockBusinessRepository(ctrl)
	reporter := reportingmocks.NewMockReporter(ctrl)

	businessRepo.EXPECT().ListActive(gomock.Any()).Return(nil, errors.New("conexão recusada"))

	service := NewHealthDigestService(businessRepo, reporter, nil, newDigestConfig(3, true))

	assert.True(t, service.Run(context.Background()))

	status := service.GetStatus()
	assert.Equal(t, 0, status["last_processed"])
	assert.Equal(t, 0, status["last_failed"])
}

func TestHealthDigestService_Run_AlreadyRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewHealthDigestService(
		mocks.NewMockBusinessRepository(ctrl),
		reportingmocks.NewMockReporter(ctrl),
		nil,
		newDigestConfig(1, true),
	)
	service.runRunning = true

	assert.False(t, service.Run(context.Background()))
	assert.False(t, service.TriggerManualSync())
}

func TestHealthDigestService_Start_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewHealthDigestService(
		mocks.NewMockBusinessRepository(ctrl),
		reportingmocks.NewMockReporter(ctrl),
		nil,
		newDigestConfig(0, false),
	)

	assert.NoError(t, service.Start(context.Background()))
	assert.Equal(t, 1, service.config.MaxConcurrentJobs)
	assert.Equal(t, false, service.GetStatus()["enabled"])
}

func TestHealthDigestService_Run_LockHeldElsewhere(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hook := logtest.NewGlobal()
	defer hook.Reset()

	// Sem expectativas: nenhum negócio pode ser consultado
	service := NewHealthDigestService(
		mocks.NewMockBusinessRepository(ctrl),
		reportingmocks.NewMockReporter(ctrl),
		&fakeLocker{err: redislock.ErrNotObtained},
		newDigestConfig(1, true),
	)

	assert.True(t, service.Run(context.Background()))

	status := service.GetStatus()
	assert.Equal(t, false, status["running"])
	assert.Empty(t, status["last_run_id"])
	assert.True(t, status["last_started_at"].(time.Time).IsZero())
	assert.True(t, status["last_completed_at"].(time.Time).IsZero())
	assert.Equal(t, "Resumo de saúde financeira em execução em outra instância, ignorando", hook.LastEntry().Message)

	// A instância continua livre para a próxima rodada
	assert.True(t, service.begin())
}

func TestHealthDigestService_Run_RefreshesLock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	businessRepo := mocks.NewMockBusinessRepository(ctrl)
	reporter := reportingmocks.NewMockReporter(ctrl)

	businessRepo.EXPECT().ListActive(gomock.Any()).Return([]*domain.Business{
		{ID: "B1", Name: "Loja A", Stage: domain.BusinessStageGrowth, Active: true},
	}, nil)
	reporter.EXPECT().GetFinancialHealth(gomock.Any(), "B1").
		DoAndReturn(func(ctx context.Context, businessID string) (*domain.FinancialHealthReport, error) {
			time.Sleep(50 * time.Millisecond)
			return &domain.FinancialHealthReport{}, nil
		})

	lock := &fakeLock{}
	service := NewHealthDigestService(businessRepo, reporter, &fakeLocker{lock: lock}, newDigestConfig(1, true))
	service.lockRefresh = 5 * time.Millisecond

	require.True(t, service.Run(context.Background()))

	assert.GreaterOrEqual(t, lock.refreshes.Load(), int32(1))
	assert.True(t, lock.released.Load())

	status := service.GetStatus()
	assert.Equal(t, 1, status["last_processed"])
	assert.NotEmpty(t, status["last_run_id"])
	assert.False(t, status["last_started_at"].(time.Time).IsZero())
}
