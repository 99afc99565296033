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

type PostgresRoomTypeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRoomTypeRepository(db *pgxpool.Pool) *PostgresRoomTypeRepository {
	return &PostgresRoomTypeRepository{
		db: db,
	}
}

func (p *PostgresRoomTypeRepository) GetByAccommodationId(
	ctx context.Context,
	accommodationId int) ([]domain.RoomType, error) {

	query := `
		SELECT id, accommodation_id, name, price_per_night, max_guests, total_rooms, created_at, version
		FROM room_types
		WHERE accommodation_id = $1
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, accommodationId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roomTypes := make([]domain.RoomType, 0)

	for rows.Next() {
		var roomType domain.RoomType

		err := rows.Scan(
			&roomType.ID,
			&roomType.AccommodationID,
			&roomType.Name,
			&roomType.PricePerNight,
			&roomType.MaxGuests,
			&roomType.TotalRooms,
			&roomType.CreatedAt,
			&roomType.Version,
		)
		if err != nil {
			return nil, err
		}

		roomTypes = append(roomTypes, roomType)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return roomTypes, nil
}

func (p *PostgresRoomTypeRepository) GetById(ctx context.Context, id int) (*domain.RoomType, error) {
	query := `
		SELECT id, accommodation_id, name, price_per_night, max_guests, total_rooms, created_at, version
		FROM room_types
		WHERE id = $1
	`

	var roomType domain.RoomType

	err := p.db.QueryRow(ctx, query, id).Scan(
		&roomType.ID,
		&roomType.AccommodationID,
		&roomType.Name,
		&roomType.PricePerNight,
		&roomType.MaxGuests,
		&roomType.TotalRooms,
		&roomType.CreatedAt,
		&roomType.Version,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &roomType, nil
}

func (p *PostgresRoomTypeRepository) Create(ctx context.Context, roomType *domain.RoomType) error {
	query := `
		INSERT INTO room_types (accommodation_id, name, price_per_night, max_guests, total_rooms)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	return p.db.QueryRow(
		ctx,
		query,
		roomType.AccommodationID,
		roomType.Name,
		roomType.PricePerNight,
		roomType.MaxGuests,
		roomType.TotalRooms,
	).Scan(&roomType.ID, &roomType.CreatedAt, &roomType.Version)
}

func (p *PostgresRoomTypeRepository) Update(ctx context.Context, roomType *domain.RoomType) error {
	query := `
		UPDATE room_types
		SET name = $1, price_per_night = $2, max_guests = $3, total_rooms = $4,
			updated_at = NOW(), version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	err := p.db.QueryRow(
		ctx,
		query,
		roomType.Name,
		roomType.PricePerNight,
		roomType.MaxGuests,
		roomType.TotalRooms,
		roomType.ID,
		roomType.Version,
	).Scan(&roomType.Version)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEditConflict
		}

		return err
	}

	return nil
}

func (p *PostgresRoomTypeRepository) Delete(ctx context.Context, id int) error {
	result, err := p.db.Exec(ctx, `DELETE FROM room_types WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return domain.ErrRoomTypeInUse
		}

		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
