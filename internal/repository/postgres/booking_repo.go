package postgres

import (
	"context"
	"database/sql"

	"sixspa/internal/domain"
)

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

// CreateInSlot runs the occupancy check and the insert in one transaction,
// holding a per-slot advisory lock so concurrent requests for the same slot
// serialize. The lock is released when the transaction ends.
func (r *bookingRepository) CreateInSlot(ctx context.Context, b *domain.Booking, capacity int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, b.Date+"@"+b.Time); err != nil {
		return err
	}

	var occupancy int
	sumQuery := `
		SELECT COALESCE(SUM(people), 0)
		FROM bookings
		WHERE "date" = $1 AND "time" = $2
	`
	if err := tx.QueryRowContext(ctx, sumQuery, b.Date, b.Time).Scan(&occupancy); err != nil {
		return err
	}
	if occupancy+b.People > capacity {
		return domain.ErrSlotFull
	}

	insertQuery := `
		INSERT INTO bookings (name, email, "date", "time", people, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, insertQuery, b.Name, b.Email, b.Date, b.Time, b.People, b.CreatedAt).Scan(&b.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *bookingRepository) OccupancyByDate(ctx context.Context, date string) (map[string]int, error) {
	query := `
		SELECT "time", SUM(people)
		FROM bookings
		WHERE "date" = $1
		GROUP BY "time"
	`
	rows, err := r.DB.QueryContext(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	occupancy := make(map[string]int)
	for rows.Next() {
		var timeKey string
		var total int
		if err := rows.Scan(&timeKey, &total); err != nil {
			return nil, err
		}
		occupancy[timeKey] = total
	}
	return occupancy, rows.Err()
}

func (r *bookingRepository) ListAll(ctx context.Context) ([]*domain.Booking, error) {
	query := `
		SELECT id, name, email, "date", "time", people, created_at
		FROM bookings
		ORDER BY "date" DESC, "time" ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b := &domain.Booking{}
		if err := rows.Scan(&b.ID, &b.Name, &b.Email, &b.Date, &b.Time, &b.People, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM bookings WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
