package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"sixspa/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestBookingRepository_CreateInSlot(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		booking    *domain.Booking
		mock       func(mock sqlmock.Sqlmock)
		wantID     int64
		wantErr    bool
		isSlotFull bool
	}{
		{
			name:    "success empty slot",
			booking: domain.NewBooking("Alice", "alice@example.com", "2024-07-01", "14:00", 2, createdAt),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
					WithArgs("2024-07-01@14:00").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(`SELECT COALESCE\(SUM\(people\), 0\)`).
					WithArgs("2024-07-01", "14:00").
					WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))
				mock.ExpectQuery(`INSERT INTO bookings`).
					WithArgs("Alice", "alice@example.com", "2024-07-01", "14:00", 2, createdAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
				mock.ExpectCommit()
			},
			wantID:  1,
			wantErr: false,
		},
		{
			name:    "success exactly at capacity",
			booking: domain.NewBooking("Bob", "bob@example.com", "2024-07-01", "14:00", 2, createdAt),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
					WithArgs("2024-07-01@14:00").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(`SELECT COALESCE\(SUM\(people\), 0\)`).
					WithArgs("2024-07-01", "14:00").
					WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3))
				mock.ExpectQuery(`INSERT INTO bookings`).
					WithArgs("Bob", "bob@example.com", "2024-07-01", "14:00", 2, createdAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
				mock.ExpectCommit()
			},
			wantID:  7,
			wantErr: false,
		},
		{
			name:    "slot full not persisted",
			booking: domain.NewBooking("Carol", "carol@example.com", "2024-07-01", "14:00", 1, createdAt),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
					WithArgs("2024-07-01@14:00").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(`SELECT COALESCE\(SUM\(people\), 0\)`).
					WithArgs("2024-07-01", "14:00").
					WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(5))
				mock.ExpectRollback()
			},
			wantErr:    true,
			isSlotFull: true,
		},
		{
			name:    "db error on occupancy read",
			booking: domain.NewBooking("Dave", "dave@example.com", "2024-07-02", "09:00", 1, createdAt),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
					WithArgs("2024-07-02@09:00").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(`SELECT COALESCE\(SUM\(people\), 0\)`).
					WithArgs("2024-07-02", "09:00").
					WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			wantErr: true,
		},
		{
			name:    "db error on insert",
			booking: domain.NewBooking("Eve", "eve@example.com", "2024-07-02", "09:00", 1, createdAt),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
					WithArgs("2024-07-02@09:00").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(`SELECT COALESCE\(SUM\(people\), 0\)`).
					WithArgs("2024-07-02", "09:00").
					WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))
				mock.ExpectQuery(`INSERT INTO bookings`).
					WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewBookingRepository(db)
			err = repo.CreateInSlot(ctx, tt.booking, domain.SlotCapacity)
			if tt.wantErr {
				require.Error(t, err)
				if tt.isSlotFull {
					require.True(t, errors.Is(err, domain.ErrSlotFull))
				}
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.booking.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_OccupancyByDate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		date    string
		mock    func(mock sqlmock.Sqlmock)
		want    map[string]int
		wantErr bool
	}{
		{
			name: "success multiple slots",
			date: "2024-07-01",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"time", "sum"}).
					AddRow("10:00", 2).
					AddRow("14:00", 5)
				mock.ExpectQuery(`SELECT "time", SUM\(people\)`).
					WithArgs("2024-07-01").
					WillReturnRows(rows)
			},
			want: map[string]int{"10:00": 2, "14:00": 5},
		},
		{
			name: "empty date",
			date: "2024-12-24",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT "time", SUM\(people\)`).
					WithArgs("2024-12-24").
					WillReturnRows(sqlmock.NewRows([]string{"time", "sum"}))
			},
			want: map[string]int{},
		},
		{
			name: "db error",
			date: "2024-07-01",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT "time", SUM\(people\)`).
					WithArgs("2024-07-01").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewBookingRepository(db)
			got, err := repo.OccupancyByDate(ctx, tt.date)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_ListAll(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    []*domain.Booking
		wantErr bool
	}{
		{
			name: "success ordered date desc time asc",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "name", "email", "date", "time", "people", "created_at"}).
					AddRow(3, "Carol", "carol@example.com", "2024-06-02", "15:00", 1, createdAt).
					AddRow(2, "Bob", "bob@example.com", "2024-06-02", "09:00", 2, createdAt).
					AddRow(1, "Alice", "alice@example.com", "2024-06-01", "10:00", 3, createdAt)
				mock.ExpectQuery(`SELECT id, name, email, "date", "time", people, created_at`).
					WillReturnRows(rows)
			},
			want: []*domain.Booking{
				{ID: 3, Name: "Carol", Email: "carol@example.com", Date: "2024-06-02", Time: "15:00", People: 1, CreatedAt: createdAt},
				{ID: 2, Name: "Bob", Email: "bob@example.com", Date: "2024-06-02", Time: "09:00", People: 2, CreatedAt: createdAt},
				{ID: 1, Name: "Alice", Email: "alice@example.com", Date: "2024-06-01", Time: "10:00", People: 3, CreatedAt: createdAt},
			},
		},
		{
			name: "success empty",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, email, "date", "time", people, created_at`).
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "date", "time", "people", "created_at"}))
			},
			want: []*domain.Booking{},
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, email, "date", "time", people, created_at`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewBookingRepository(db)
			got, err := repo.ListAll(ctx)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         int64
		mock       func(mock sqlmock.Sqlmock)
		wantErr    bool
		isNotFound bool
	}{
		{
			name: "success",
			id:   1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			id:   99,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
					WithArgs(int64(99)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr:    true,
			isNotFound: true,
		},
		{
			name: "db error",
			id:   1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewBookingRepository(db)
			err = repo.Delete(ctx, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				if tt.isNotFound {
					require.True(t, errors.Is(err, domain.ErrNotFound))
				}
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
