package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dipika-maharjan/tripwise-nepal-api/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresAccommodationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAccommodationRepository(db *pgxpool.Pool) *PostgresAccommodationRepository {
	return &PostgresAccommodationRepository{
		db: db,
	}
}

func (p *PostgresAccommodationRepository) GetAll(
	ctx context.Context,
	filters domain.AccommodationFilters) ([]*domain.Accommodation, *domain.Metadata, error) {

	query := fmt.Sprintf(`SELECT count(*) OVER(), id, name, location, images
		FROM accommodations
		WHERE ((to_tsvector('english', name) @@ plainto_tsquery('english', $1)
			OR to_tsvector('english', location) @@ plainto_tsquery('english', $1)
			OR to_tsvector('english', description) @@ plainto_tsquery('english', $1))
			OR $1 = '')
		ORDER BY %s %s
		LIMIT $2 OFFSET $3`, filters.SortColumn(), filters.SortDirection())

	rows, err := p.db.Query(ctx, query, filters.Term, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	accommodations := []*domain.Accommodation{}

	for rows.Next() {
		var accommodation domain.Accommodation

		err := rows.Scan(
			&totalRecords,
			&accommodation.ID,
			&accommodation.Name,
			&accommodation.Location,
			&accommodation.Images,
		)

		if err != nil {
			return nil, nil, err
		}

		accommodations = append(accommodations, &accommodation)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return accommodations, metadata, nil
}

func (p *PostgresAccommodationRepository) GetById(ctx context.Context, id int) (*domain.Accommodation, error) {
	query := `
		SELECT id, name, location, description, amenities, images, created_at, version
		FROM accommodations
		WHERE id = $1
	`

	var accommodation domain.Accommodation

	err := p.db.QueryRow(ctx, query, id).Scan(
		&accommodation.ID,
		&accommodation.Name,
		&accommodation.Location,
		&accommodation.Description,
		&accommodation.Amenities,
		&accommodation.Images,
		&accommodation.CreatedAt,
		&accommodation.Version,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &accommodation, nil
}

func (p *PostgresAccommodationRepository) Create(ctx context.Context, accommodation *domain.Accommodation) error {
	query := `
		INSERT INTO accommodations (name, location, description, amenities, images)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	return p.db.QueryRow(
		ctx,
		query,
		accommodation.Name,
		accommodation.Location,
		accommodation.Description,
		accommodation.Amenities,
		accommodation.Images,
	).Scan(&accommodation.ID, &accommodation.CreatedAt, &accommodation.Version)
}

func (p *PostgresAccommodationRepository) Update(ctx context.Context, accommodation *domain.Accommodation) error {
	query := `
		UPDATE accommodations
		SET name = $1, location = $2, description = $3, amenities = $4, images = $5,
			updated_at = NOW(), version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	err := p.db.QueryRow(
		ctx,
		query,
		accommodation.Name,
		accommodation.Location,
		accommodation.Description,
		accommodation.Amenities,
		accommodation.Images,
		accommodation.ID,
		accommodation.Version,
	).Scan(&accommodation.Version)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEditConflict
		}

		return err
	}

	return nil
}

func (p *PostgresAccommodationRepository) Delete(ctx context.Context, id int) error {
	result, err := p.db.Exec(ctx, `DELETE FROM accommodations WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return domain.ErrAccommodationInUse
		}

		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
