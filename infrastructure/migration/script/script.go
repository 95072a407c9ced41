package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-automation-api/infrastructure/database/postgres"
	"github.com/vfg2006/finance-automation-api/internal/config"
	"github.com/vfg2006/finance-automation-api/internal/domain"
)

const (
	idLength     = 10
	characters   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	seedMonths   = 18
	seedSalesDay = 2
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS businesses (
		id     VARCHAR(32) PRIMARY KEY,
		name   TEXT        NOT NULL,
		stage  VARCHAR(16) NOT NULL,
		active BOOLEAN     NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id          VARCHAR(32)    PRIMARY KEY,
		business_id VARCHAR(32)    NOT NULL REFERENCES businesses(id),
		sold_at     TIMESTAMPTZ    NOT NULL,
		amount      NUMERIC(14, 2) NOT NULL,
		cost        NUMERIC(14, 2) NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_business_sold_at ON sales (business_id, sold_at)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id          VARCHAR(32)    PRIMARY KEY,
		business_id VARCHAR(32)    NOT NULL REFERENCES businesses(id),
		spent_at    TIMESTAMPTZ    NOT NULL,
		amount      NUMERIC(14, 2) NOT NULL,
		category    TEXT           NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_business_spent_at ON expenses (business_id, spent_at)`,
	`CREATE TABLE IF NOT EXISTS inventory_items (
		id             VARCHAR(32)    PRIMARY KEY,
		business_id    VARCHAR(32)    NOT NULL REFERENCES businesses(id),
		name           TEXT           NOT NULL,
		current_stock  NUMERIC(14, 3) NOT NULL DEFAULT 0,
		price_per_unit NUMERIC(14, 2) NOT NULL DEFAULT 0,
		updated_at     TIMESTAMPTZ    NOT NULL DEFAULT NOW()
	)`,
}

// Sazonalidade da receita por mês do ano (janeiro primeiro)
var monthlyFactors = [12]float64{0.8, 0.85, 0.95, 1.0, 1.05, 1.1, 1.15, 1.1, 1.0, 0.95, 1.1, 1.35}

type expenseTemplate struct {
	Category string
	Amount   float64
}

var monthlyExpenses = []expenseTemplate{
	{"rent", 3500},
	{"payroll", 9000},
	{"utilities", 850},
	{"marketing", 1200},
}

func generateID() string {
	id, _ := gonanoid.Generate(characters, idLength)
	return id
}

func createSchema(ctx context.Context, tx *sql.Tx) error {
	logrus.Infof("Criando %d objetos do schema...", len(schema))
	for _, statement := range schema {
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			return err
		}
	}
	return nil
}

func insertBusiness(ctx context.Context, tx *sql.Tx, name string, stage domain.BusinessStage) (string, error) {
	id := generateID()
	_, err := tx.ExecContext(ctx, `INSERT INTO businesses (id, name, stage, active) VALUES ($1, $2, $3, TRUE)`, id, name, stage)
	return id, err
}

func insertSales(ctx context.Context, tx *sql.Tx, businessID string, now time.Time) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO sales (id, business_id, sold_at, amount, cost) VALUES ($1, $2, $3, $4, $5)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -seedMonths+1, 0)
	count := 0
	for day := start; !day.After(now); day = day.AddDate(0, 0, 1) {
		factor := monthlyFactors[int(day.Month())-1]
		for i := 0; i < seedSalesDay; i++ {
			amount := 450 * factor
			soldAt := day.Add(time.Duration(10+i*6) * time.Hour)
			if _, err := stmt.ExecContext(ctx, generateID(), businessID, soldAt, amount, amount*0.42); err != nil {
				return count, err
			}
			count++
		}
	}

	return count, nil
}

func insertExpenses(ctx context.Context, tx *sql.Tx, businessID string, now time.Time) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO expenses (id, business_id, spent_at, amount, category) VALUES ($1, $2, $3, $4, $5)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for m := seedMonths - 1; m >= 0; m-- {
		month := time.Date(now.Year(), now.Month(), 5, 9, 0, 0, 0, time.UTC).AddDate(0, -m, 0)
		if month.After(now) {
			continue
		}
		for _, expense := range monthlyExpenses {
			if _, err := stmt.ExecContext(ctx, generateID(), businessID, month, expense.Amount, expense.Category); err != nil {
				return count, err
			}
			count++
		}
	}

	return count, nil
}

func insertInventory(ctx context.Context, tx *sql.Tx, businessID string, now time.Time) (int, error) {
	items := []domain.StockItem{
		{Name: "Farinha de trigo 25kg", CurrentStock: 40, PricePerUnit: 95, UpdatedAt: now.AddDate(0, 0, -3)},
		{Name: "Fermento biológico", CurrentStock: 0, PricePerUnit: 12, UpdatedAt: now.AddDate(0, 0, -1)},
		{Name: "Forma de panetone", CurrentStock: 300, PricePerUnit: 2.5, UpdatedAt: now.AddDate(0, 0, -120)},
		{Name: "Açúcar refinado 5kg", CurrentStock: 25, PricePerUnit: 22, UpdatedAt: now.AddDate(0, 0, -10)},
	}

	for _, item := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO inventory_items (id, business_id, name, current_stock, price_per_unit, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			generateID(), businessID, item.Name, item.CurrentStock, item.PricePerUnit, item.UpdatedAt,
		)
		if err != nil {
			return 0, err
		}
	}

	return len(items), nil
}

func seed(ctx context.Context, tx *sql.Tx, now time.Time) error {
	businessID, err := insertBusiness(ctx, tx, "Padaria Central", domain.BusinessStageGrowth)
	if err != nil {
		return err
	}
	logrus.WithField("business_id", businessID).Info("Negócio de demonstração criado")

	sales, err := insertSales(ctx, tx, businessID, now)
	if err != nil {
		return err
	}

	expenses, err := insertExpenses(ctx, tx, businessID, now)
	if err != nil {
		return err
	}

	items, err := insertInventory(ctx, tx, businessID, now)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"sales":     sales,
		"expenses":  expenses,
		"inventory": items,
	}).Info("Registros de demonstração inseridos")

	return nil
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	logrus.Info("Iniciando script de migração...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	ctx := context.Background()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	startTime := time.Now()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao iniciar transação")
	}

	if err := createSchema(ctx, tx); err != nil {
		rollback(tx, err)
	}

	withSeed := len(os.Args) > 1 && os.Args[1] == "--seed"
	if withSeed {
		if err := seed(ctx, tx, time.Now().UTC()); err != nil {
			rollback(tx, err)
		}
	}

	if err := tx.Commit(); err != nil {
		rollback(tx, err)
	}

	logrus.WithFields(logrus.Fields{
		"elapsed": time.Since(startTime).String(),
		"seed":    withSeed,
	}).Info("Migração concluída")
}

func rollback(tx *sql.Tx, cause error) {
	logrus.WithError(cause).Error("Erro durante a migração, revertendo transação")
	if err := tx.Rollback(); err != nil {
		logrus.WithError(err).Fatal("Erro ao reverter transação")
	}
	os.Exit(1)
}
