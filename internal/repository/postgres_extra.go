package repository

import (
	"context"
	"errors"

	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresOptionalExtraRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOptionalExtraRepository(db *pgxpool.Pool) *PostgresOptionalExtraRepository {
	return &PostgresOptionalExtraRepository{
		db: db,
	}
}

func (p *PostgresOptionalExtraRepository) GetByAccommodationId(
	ctx context.Context,
	accommodationId int) ([]domain.OptionalExtra, error) {

	query := `
		SELECT id, accommodation_id, name, description, price, price_type, created_at, version
		FROM optional_extras
		WHERE accommodation_id = $1
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, accommodationId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	extras := make([]domain.OptionalExtra, 0)

	for rows.Next() {
		var extra domain.OptionalExtra

		err := rows.Scan(
			&extra.ID,
			&extra.AccommodationID,
			&extra.Name,
			&extra.Description,
			&extra.Price,
			&extra.PriceType,
			&extra.CreatedAt,
			&extra.Version,
		)
		if err != nil {
			return nil, err
		}

		extras = append(extras, extra)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return extras, nil
}

func (p *PostgresOptionalExtraRepository) GetById(ctx context.Context, id int) (*domain.OptionalExtra, error) {
	query := `
		SELECT id, accommodation_id, name, description, price, price_type, created_at, version
		FROM optional_extras
		WHERE id = $1
	`

	var extra domain.OptionalExtra

	err := p.db.QueryRow(ctx, query, id).Scan(
		&extra.ID,
		&extra.AccommodationID,
		&extra.Name,
		&extra.Description,
		&extra.Price,
		&extra.PriceType,
		&extra.CreatedAt,
		&extra.Version,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &extra, nil
}

func (p *PostgresOptionalExtraRepository) Create(ctx context.Context, extra *domain.OptionalExtra) error {
	query := `
		INSERT INTO optional_extras (accommodation_id, name, description, price, price_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	return p.db.QueryRow(
		ctx,
		query,
		extra.AccommodationID,
		extra.Name,
		extra.Description,
		extra.Price,
		extra.PriceType,
	).Scan(&extra.ID, &extra.CreatedAt, &extra.Version)
}

func (p *PostgresOptionalExtraRepository) Update(ctx context.Context, extra *domain.OptionalExtra) error {
	query := `
		UPDATE optional_extras
		SET name = $1, description = $2, price = $3, price_type = $4,
			updated_at = NOW(), version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	err := p.db.QueryRow(
		ctx,
		query,
		extra.Name,
		extra.Description,
		extra.Price,
		extra.PriceType,
		extra.ID,
		extra.Version,
	).Scan(&extra.Version)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEditConflict
		}

		return err
	}

	return nil
}

func (p *PostgresOptionalExtraRepository) Delete(ctx context.Context, id int) error {
	result, err := p.db.Exec(ctx, `DELETE FROM optional_extras WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return domain.ErrExtraInUse
		}

		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
