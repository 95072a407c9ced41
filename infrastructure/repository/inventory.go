package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/finance-automation-api/infrastructure/database/postgres"
	"github.com/vfg2006/finance-automation-api/internal/domain"
)

const (
	inventoryItemsTable = "inventory_items i"
)

type InventoryRepository interface {
	ListByBusiness(ctx context.Context, businessID string) ([]domain.StockItem, error)
}

type inventoryRepository struct {
	conn postgres.Queryer
}

func NewInventoryRepository(conn postgres.Queryer) InventoryRepository {
	return &inventoryRepository{
		conn: conn,
	}
}

func (r *inventoryRepository) ListByBusiness(ctx context.Context, businessID string) ([]domain.StockItem, error) {
	query, args, err := squirrel.
		Select("i.id, i.name, i.current_stock, i.price_per_unit, i.updated_at").
		From(inventoryItemsTable).
		Where(squirrel.Eq{"i.business_id": businessID}).
		OrderBy("i.name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query de estoque")
	}
	defer rows.Close()

	items := make([]domain.StockItem, 0)
	for rows.Next() {
		var (
			item         domain.StockItem
			stock, price decimal.Decimal
		)
		if err := rows.Scan(&item.ID, &item.Name, &stock, &price, &item.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear item de estoque")
		}

		item.CurrentStock = stock.InexactFloat64()
		item.PricePerUnit = price.InexactFloat64()
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return items, nil
}
