package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"sixspa/internal/domain"
)

// notificationTimeout bounds the background confirmation send; the request
// context cannot be used because the response has already been written.
const notificationTimeout = 30 * time.Second

type bookingService struct {
	bookingRepo    domain.BookingRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewBookingService returns a BookingService backed by the given repository.
// emailService may be nil, in which case no confirmations are sent.
func NewBookingService(bookingRepo domain.BookingRepository, emailService domain.EmailService, timeout time.Duration) domain.BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

// CreateBooking admits the booking if its slot has room, persists it, and
// dispatches a best-effort confirmation email. A failed or slow email never
// affects the admission result.
func (s *bookingService) CreateBooking(ctx context.Context, b *domain.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if b.Name == "" || b.Email == "" || b.Date == "" || b.Time == "" {
		return domain.ErrInvalidInput
	}
	if b.People <= 0 {
		return domain.ErrInvalidInput
	}
	b.CreatedAt = time.Now()

	if err := s.bookingRepo.CreateInSlot(ctx, b, domain.SlotCapacity); err != nil {
		if errors.Is(err, domain.ErrSlotFull) {
			return domain.ErrSlotFull
		}
		return fmt.Errorf("create booking: %w", err)
	}

	if s.emailService != nil {
		data := &domain.BookingConfirmationEmailData{
			Email:     b.Email,
			Name:      b.Name,
			Date:      displayDate(b.Date),
			Time:      b.Time,
			People:    b.People,
			BookingID: b.ID,
		}
		go func() {
			sendCtx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
			defer cancel()
			if err := s.emailService.SendBookingConfirmation(sendCtx, data); err != nil {
				log.Printf("[EMAIL] Booking confirmation to %s failed: %v", data.Email, err)
			}
		}()
	}
	return nil
}

func (s *bookingService) GetAvailability(ctx context.Context, date string) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if date == "" {
		return nil, domain.ErrInvalidInput
	}
	occupancy, err := s.bookingRepo.OccupancyByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("occupancy by date: %w", err)
	}
	if occupancy == nil {
		occupancy = map[string]int{}
	}
	return occupancy, nil
}

func (s *bookingService) ListBookings(ctx context.Context) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	bookings, err := s.bookingRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	return bookings, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if id <= 0 {
		return domain.ErrNotFound
	}
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

// displayDate renders a date key for the confirmation email. Keys that parse
// as 2006-01-02 are spelled out; anything else passes through verbatim since
// the key is opaque by contract.
func displayDate(key string) string {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return key
	}
	return t.Format("Monday, January 2, 2006")
}
