package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/finance-automation-api/infrastructure/database/postgres"
	"github.com/vfg2006/finance-automation-api/internal/domain"
	"github.com/vfg2006/finance-automation-api/pkg/utils"
)

const monthExpression = "to_char(date_trunc('month', %s), 'YYYY-MM')"

type MonthlySummaryRepository interface {
	// ListMonthly agrega receita e despesas por mês (yyyy-mm) no intervalo [since, until).
	// Meses sem movimento entram com zero para manter a série contínua.
	ListMonthly(ctx context.Context, businessID string, since, until time.Time) ([]domain.HistoricalMonth, error)
}

type monthlySummaryRepository struct {
	conn postgres.Queryer
}

func NewMonthlySummaryRepository(conn postgres.Queryer) MonthlySummaryRepository {
	return &monthlySummaryRepository{
		conn: conn,
	}
}

func (r *monthlySummaryRepository) ListMonthly(ctx context.Context, businessID string, since, until time.Time) ([]domain.HistoricalMonth, error) {
	revenues, err := r.sumByMonth(ctx, salesTable, "s", "s.sold_at", businessID, since, until)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao agregar receita mensal")
	}

	expenses, err := r.sumByMonth(ctx, expensesTable, "e", "e.spent_at", businessID, since, until)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao agregar despesas mensais")
	}

	return mergeMonthly(revenues, expenses, since, until), nil
}

// mergeMonthly monta a série mês a mês de since até o mês anterior a until
func mergeMonthly(revenues, expenses map[string]float64, since, until time.Time) []domain.HistoricalMonth {
	history := make([]domain.HistoricalMonth, 0)

	for month := utils.FirstDayOfMonth(since); month.Before(until); month = month.AddDate(0, 1, 0) {
		label := month.Format(utils.MonthLayout)
		history = append(history, domain.HistoricalMonth{
			Month:    label,
			Revenue:  revenues[label],
			Expenses: expenses[label],
		})
	}

	return history
}

func monthlySumQuery(table, alias, dateColumn, businessID string, since, until time.Time) (string, []interface{}, error) {
	month := squirrel.Expr(fmt.Sprintf(monthExpression, dateColumn))

	return squirrel.
		Select().
		Column(squirrel.Alias(month, "month")).
		Column("COALESCE(SUM(" + alias + ".amount), 0)").
		From(table).
		Where(squirrel.Eq{alias + ".business_id": businessID}).
		Where(squirrel.GtOrEq{dateColumn: since}).
		Where(squirrel.Lt{dateColumn: until}).
		GroupBy("month").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *monthlySummaryRepository) sumByMonth(ctx context.Context, table, alias, dateColumn, businessID string, since, until time.Time) (map[string]float64, error) {
	query, args, err := monthlySumQuery(table, alias, dateColumn, businessID, since, until)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var (
			label string
			total decimal.Decimal
		)
		if err := rows.Scan(&label, &total); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear total mensal")
		}
		totals[label] = total.InexactFloat64()
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return totals, nil
}
