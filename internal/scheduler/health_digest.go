package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-automation-api/infrastructure/repository"
	"github.com/vfg2006/finance-automation-api/internal/config"
	"github.com/vfg2006/finance-automation-api/internal/domain"
	"github.com/vfg2006/finance-automation-api/internal/usecases/reporting"
	"github.com/vfg2006/finance-automation-api/pkg/utils"
)

const (
	HealthDigestLockKey = "lock:health-digest"
	HealthDigestLockTTL = 10 * time.Minute

	// O lock é renovado bem antes de expirar enquanto a rodada processa os negócios
	healthDigestLockRefreshInterval = HealthDigestLockTTL / 3
)

// HealthDigestConfig representa a configuração do agendador do resumo de saúde financeira
type HealthDigestConfig struct {
	CronSchedule      string
	MaxConcurrentJobs int
	Enabled           bool
}

// HealthDigestService executa periodicamente a análise de saúde de todos os negócios ativos
type HealthDigestService struct {
	scheduler       *gocron.Scheduler
	config          HealthDigestConfig
	businessRepo    repository.BusinessRepository
	reporter        reporting.Reporter
	locker          Locker
	lockRefresh     time.Duration
	runRunning      bool
	runMutex        sync.Mutex
	lastRunID       string
	lastStartedAt   time.Time
	lastCompletedAt time.Time
	lastProcessed   int
	lastFailed      int
}

// NewHealthDigestService cria o serviço. locker pode ser nil quando o Redis não está configurado
func NewHealthDigestService(
	businessRepo repository.BusinessRepository,
	reporter reporting.Reporter,
	locker Locker,
	appConfig *config.Config,
) *HealthDigestService {
	digestConfig := HealthDigestConfig{
		CronSchedule:      appConfig.HealthDigest.CronSchedule,
		MaxConcurrentJobs: appConfig.HealthDigest.MaxConcurrentJobs,
		Enabled:           appConfig.HealthDigest.Enabled,
	}
	if digestConfig.MaxConcurrentJobs <= 0 {
		digestConfig.MaxConcurrentJobs = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       digestConfig.CronSchedule,
		"max_concurrent_jobs": digestConfig.MaxConcurrentJobs,
		"enabled":             digestConfig.Enabled,
		"distributed_lock":    locker != nil,
	}).Info("Configuração do resumo de saúde financeira carregada")

	return &HealthDigestService{
		scheduler:    gocron.NewScheduler(time.Local),
		config:       digestConfig,
		businessRepo: businessRepo,
		reporter:     reporter,
		locker:       locker,
		lockRefresh:  healthDigestLockRefreshInterval,
	}
}

// Start inicia o agendador
func (s *HealthDigestService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Resumo de saúde financeira desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do resumo de saúde financeira")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar resumo de saúde financeira: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do resumo de saúde financeira")
		s.scheduler.Stop()
	}()

	return nil
}

// Run executa uma rodada completa. Retorna false se outra rodada já estava em andamento nesta instância.
// Rodadas ignoradas porque outra instância detém o lock não alteram o status.
func (s *HealthDigestService) Run(ctx context.Context) bool {
	if !s.begin() {
		logrus.Info("Resumo de saúde financeira já em andamento, ignorando")
		return false
	}

	runID := utils.NewRunID("health-digest")
	logger := logrus.WithFields(logrus.Fields{"job": "health-digest", "run_id": runID})

	var lock Lock
	if s.locker != nil {
		obtained, err := s.locker.Obtain(ctx, HealthDigestLockKey, HealthDigestLockTTL)
		if err != nil {
			s.abort()
			if errors.Is(err, redislock.ErrNotObtained) {
				logger.Info("Resumo de saúde financeira em execução em outra instância, ignorando")
			} else {
				logger.WithError(err).Error("Erro ao obter lock do resumo de saúde financeira")
			}
			return true
		}
		lock = obtained
	}

	s.markStarted()

	processed, failed := 0, 0
	defer func() {
		s.finish(runID, processed, failed)
	}()

	if lock != nil {
		stopRefresh := s.keepLockAlive(ctx, logger, lock)
		defer func() {
			stopRefresh()
			if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
				logger.WithError(err).Warn("Erro ao liberar lock do resumo de saúde financeira")
			}
		}()
	}

	logger.Info("Iniciando resumo de saúde financeira")

	businesses, err := s.businessRepo.ListActive(ctx)
	if err != nil {
		logger.WithError(err).Error("Erro ao listar negócios ativos")
		return true
	}

	processed, failed = s.processBusinesses(ctx, logger, businesses)

	logger.WithFields(logrus.Fields{
		"processed": processed,
		"failed":    failed,
	}).Info("Resumo de saúde financeira concluído")

	return true
}

// keepLockAlive renova o lock periodicamente até que a função retornada seja chamada
func (s *HealthDigestService) keepLockAlive(ctx context.Context, logger *logrus.Entry, lock Lock) func() {
	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		ticker := time.NewTicker(s.lockRefresh)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := lock.Refresh(ctx, HealthDigestLockTTL); err != nil {
					logger.WithError(err).Warn("Erro ao renovar lock do resumo de saúde financeira")
				}
			}
		}
	}()

	return func() {
		close(done)
		wg.Wait()
	}
}

func (s *HealthDigestService) begin() bool {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	if s.runRunning {
		return false
	}
	s.runRunning = true
	return true
}

func (s *HealthDigestService) markStarted() {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	s.lastStartedAt = time.Now()
}

// abort libera a rodada sem registrá-la como concluída
func (s *HealthDigestService) abort() {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	s.runRunning = false
}

func (s *HealthDigestService) finish(runID string, processed, failed int) {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	s.runRunning = false
	s.lastRunID = runID
	s.lastCompletedAt = time.Now()
	s.lastProcessed = processed
	s.lastFailed = failed
}

func (s *HealthDigestService) processBusinesses(ctx context.Context, logger *logrus.Entry, businesses []*domain.Business) (int, int) {
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		processed int
		failed    int
	)

	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)

	for _, business := range businesses {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(b *domain.Business) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			entry := logger.WithFields(logrus.Fields{
				"business_id":   b.ID,
				"business_name": b.Name,
			})

			report, err := s.reporter.GetFinancialHealth(ctx, b.ID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				entry.WithError(err).Error("Erro ao analisar saúde financeira do negócio")
				return
			}
			processed++
			logAlerts(entry, report)
		}(business)
	}

	wg.Wait()

	return processed, failed
}

func logAlerts(entry *logrus.Entry, report *domain.FinancialHealthReport) {
	if report == nil {
		return
	}

	entry.WithFields(logrus.Fields{
		"revenue":    report.Snapshot.Revenue,
		"net_profit": report.Snapshot.NetProfit,
		"alerts":     len(report.Alerts),
	}).Info("Saúde financeira analisada")

	for _, alert := range report.Alerts {
		alertEntry := entry.WithFields(logrus.Fields{
			"severity":  alert.Severity,
			"metric":    alert.Metric,
			"value":     alert.Value,
			"threshold": alert.Threshold,
		})

		switch alert.Severity {
		case domain.SeverityCritical:
			alertEntry.Error(alert.Message)
		case domain.SeverityWarning:
			alertEntry.Warn(alert.Message)
		default:
			alertEntry.Info(alert.Message)
		}
	}
}

// TriggerManualSync inicia manualmente uma rodada. Retorna false se já houver uma em andamento
func (s *HealthDigestService) TriggerManualSync() bool {
	s.runMutex.Lock()
	if s.runRunning {
		s.runMutex.Unlock()
		logrus.Info("Resumo de saúde financeira já em andamento, ignorando solicitação manual")
		return false
	}
	s.runMutex.Unlock()

	logrus.Info("Iniciando resumo de saúde financeira manual")
	go s.Run(context.Background())
	return true
}

// GetStatus retorna o status atual do agendador
func (s *HealthDigestService) GetStatus() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	return map[string]any{
		"running":           s.runRunning,
		"cron":              s.config.CronSchedule,
		"enabled":           s.config.Enabled,
		"last_run_id":       s.lastRunID,
		"last_started_at":   s.lastStartedAt,
		"last_completed_at": s.lastCompletedAt,
		"last_processed":    s.lastProcessed,
		"last_failed":       s.lastFailed,
	}
}
