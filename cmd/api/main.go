package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-automation-api/infrastructure/database/postgres"
	"github.com/vfg2006/finance-automation-api/infrastructure/database/redis"
	"github.com/vfg2006/finance-automation-api/infrastructure/repository"
	"github.com/vfg2006/finance-automation-api/internal/api"
	"github.com/vfg2006/finance-automation-api/internal/config"
	"github.com/vfg2006/finance-automation-api/internal/domain"
	"github.com/vfg2006/finance-automation-api/internal/scheduler"
	"github.com/vfg2006/finance-automation-api/internal/usecases/authenticating"
	"github.com/vfg2006/finance-automation-api/internal/usecases/automating"
	"github.com/vfg2006/finance-automation-api/internal/usecases/reporting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	redisConn, err := redis.NewConnection(ctx, cfg.Redis)
	if err != nil {
		logrus.WithError(err).Warn("Redis indisponível, resumo de saúde financeira seguirá sem lock distribuído")
	}
	defer redisConn.Close()

	repos := reporting.Repositories{
		Business:       repository.NewBusinessRepository(pgConn),
		Sale:           repository.NewSaleRepository(pgConn),
		Expense:        repository.NewExpenseRepository(pgConn),
		Inventory:      repository.NewInventoryRepository(pgConn),
		MonthlySummary: repository.NewMonthlySummaryRepository(pgConn),
	}

	automation := automating.NewService(
		domain.Thresholds{LowProfitabilityThreshold: cfg.Analysis.LowProfitabilityThreshold},
		automating.WithLookbackDays(cfg.Analysis.LookbackDays),
	)

	reporter := reporting.NewService(
		automation,
		repos,
		reporting.WithLookbackDays(cfg.Analysis.LookbackDays),
		reporting.WithHistoryMonths(cfg.Analysis.ProjectionHistoryMonths),
	)

	authenticator := authenticating.NewService(cfg.Auth.Secret)

	healthDigestService := scheduler.NewHealthDigestService(
		repos.Business,
		reporter,
		scheduler.NewRedisLocker(redisConn.LockerOrNil()),
		cfg,
	)

	if err := healthDigestService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do resumo de saúde financeira")
	} else {
		logrus.Info("Agendador do resumo de saúde financeira iniciado com sucesso")
	}

	server, err := api.New(cfg, reporter, automation, authenticator, healthDigestService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
