package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/finance-automation-api/infrastructure/database/postgres"
	"github.com/vfg2006/finance-automation-api/internal/domain"
)

const (
	expensesTable = "expenses e"
)

type ExpenseRepository interface {
	ListByBusiness(ctx context.Context, businessID string, since time.Time) ([]domain.Expense, error)
}

type expenseRepository struct {
	conn postgres.Queryer
}

func NewExpenseRepository(conn postgres.Queryer) ExpenseRepository {
	return &expenseRepository{
		conn: conn,
	}
}

func (r *expenseRepository) ListByBusiness(ctx context.Context, businessID string, since time.Time) ([]domain.Expense, error) {
	query, args, err := squirrel.
		Select("e.spent_at, e.amount, COALESCE(e.category, 'uncategorized')").
		From(expensesTable).
		Where(squirrel.Eq{"e.business_id": businessID}).
		Where(squirrel.GtOrEq{"e.spent_at": since}).
		OrderBy("e.spent_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query de despesas")
	}
	defer rows.Close()

	expenses := make([]domain.Expense, 0)
	for rows.Next() {
		var (
			expense domain.Expense
			amount  decimal.Decimal
		)
		if err := rows.Scan(&expense.Date, &amount, &expense.Category); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear despesa")
		}

		expense.Amount = amount.InexactFloat64()
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return expenses, nil
}
