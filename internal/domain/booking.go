package domain

import (
	"context"
	"errors"
	"time"
)

// SlotCapacity is the maximum total party size allowed per (date, time) slot.
const SlotCapacity = 5

// Sentinel errors for booking operations.
var (
	ErrNotFound     = errors.New("not found")
	ErrSlotFull     = errors.New("slot is fully booked")
	ErrInvalidInput = errors.New("invalid input")
)

// Booking represents a confirmed spa booking. Date and Time are opaque text
// keys with no timezone semantics; a slot is the set of bookings sharing both.
// swagger:model Booking
type Booking struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	People    int       `json:"people"`
	CreatedAt time.Time `json:"-"`
}

// NewBooking returns a new Booking with the given fields. ID is set by the
// repository on create.
func NewBooking(name, email, date, timeKey string, people int, createdAt time.Time) *Booking {
	return &Booking{
		Name:      name,
		Email:     email,
		Date:      date,
		Time:      timeKey,
		People:    people,
		CreatedAt: createdAt,
	}
}

// BookingRepository defines the interface for booking storage.
type BookingRepository interface {
	// CreateInSlot inserts the booking only if the slot's occupancy plus the
	// booking's party size stays within capacity. The occupancy check and the
	// insert must be atomic with respect to concurrent calls for the same
	// slot. Returns ErrSlotFull when the booking does not fit.
	CreateInSlot(ctx context.Context, booking *Booking, capacity int) error
	// OccupancyByDate returns time key -> total party size for the date.
	// Slots with no bookings are absent from the map.
	OccupancyByDate(ctx context.Context, date string) (map[string]int, error)
	// ListAll returns every booking ordered by date descending, time ascending.
	ListAll(ctx context.Context) ([]*Booking, error)
	// Delete removes the booking with the given id. Returns ErrNotFound when
	// no such booking exists.
	Delete(ctx context.Context, id int64) error
}

// BookingService defines the business logic for booking intake and admin access.
type BookingService interface {
	CreateBooking(ctx context.Context, booking *Booking) error
	GetAvailability(ctx context.Context, date string) (map[string]int, error)
	ListBookings(ctx context.Context) ([]*Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
}
