package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/finance-automation-api/infrastructure/database/postgres"
	"github.com/vfg2006/finance-automation-api/internal/domain"
)

const (
	businessesTable = "businesses b"
)

type BusinessRepository interface {
	GetByID(ctx context.Context, businessID string) (*domain.Business, error)
	ListActive(ctx context.Context) ([]*domain.Business, error)
}

type businessRepository struct {
	conn postgres.Queryer
}

func NewBusinessRepository(conn postgres.Queryer) BusinessRepository {
	return &businessRepository{
		conn: conn,
	}
}

// GetByID retorna nil, nil quando o negócio não existe
func (r *businessRepository) GetByID(ctx context.Context, businessID string) (*domain.Business, error) {
	query, args, err := squirrel.
		Select("b.id, b.name, b.stage, b.active").
		From(businessesTable).
		Where(squirrel.Eq{"b.id": businessID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	business := &domain.Business{}
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&business.ID,
		&business.Name,
		&business.Stage,
		&business.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "erro ao buscar negócio %s", businessID)
	}

	return business, nil
}

func (r *businessRepository) ListActive(ctx context.Context) ([]*domain.Business, error) {
	query, args, err := squirrel.
		Select("b.id, b.name, b.stage, b.active").
		From(businessesTable).
		Where(squirrel.Eq{"b.active": true}).
		OrderBy("b.name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	businesses := make([]*domain.Business, 0)
	for rows.Next() {
		business := &domain.Business{}
		if err := rows.Scan(&business.ID, &business.Name, &business.Stage, &business.Active); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear negócio")
		}
		businesses = append(businesses, business)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return businesses, nil
}
