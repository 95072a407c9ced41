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
	salesTable = "sales s"
)

type SaleRepository interface {
	// ListByBusiness retorna as vendas do negócio a partir de since, em ordem cronológica
	ListByBusiness(ctx context.Context, businessID string, since time.Time) ([]domain.Sale, error)
}

type saleRepository struct {
	conn postgres.Queryer
}

func NewSaleRepository(conn postgres.Queryer) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

func (r *saleRepository) ListByBusiness(ctx context.Context, businessID string, since time.Time) ([]domain.Sale, error) {
	query, args, err := squirrel.
		Select("s.sold_at, s.amount, s.cost").
		From(salesTable).
		Where(squirrel.Eq{"s.business_id": businessID}).
		Where(squirrel.GtOrEq{"s.sold_at": since}).
		OrderBy("s.sold_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query de vendas")
	}
	defer rows.Close()

	sales := make([]domain.Sale, 0)
	for rows.Next() {
		var (
			soldAt       time.Time
			amount, cost decimal.Decimal
		)
		if err := rows.Scan(&soldAt, &amount, &cost); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear venda")
		}

		sales = append(sales, domain.Sale{
			Date:   soldAt,
			Amount: amount.InexactFloat64(),
			Cost:   cost.InexactFloat64(),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return sales, nil
}
