package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Domenick1991/metroticket/internal/domain"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrBookingExists   = errors.New("booking already exists")
	ErrBookingInactive = errors.New("booking is not active")
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	ExpireActiveBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error)
	MarkUsed(ctx context.Context, id string) (*domain.Booking, error)
}

// MemoryBookingRepository keeps bookings in process memory. Bookings are
// stored by value and copied on the way in and out.
type MemoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]domain.Booking
}

func NewBookingRepository(seed ...domain.Booking) *MemoryBookingRepository {
	r := &MemoryBookingRepository{bookings: make(map[string]domain.Booking, len(seed))}
	for _, b := range seed {
		r.bookings[b.ID] = clone(b)
	}
	return r
}

func (r *MemoryBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[booking.ID]; ok {
		return ErrBookingExists
	}
	r.bookings[booking.ID] = clone(*booking)
	return nil
}

func (r *MemoryBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	out := clone(b)
	return &out, nil
}

// ListByUser returns the user's bookings, newest first.
func (r *MemoryBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	list := make([]domain.Booking, 0)
	for _, b := range r.bookings {
		if b.UserID == userID {
			list = append(list, clone(b))
		}
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].BookingDate.Equal(list[j].BookingDate) {
			return list[i].ID < list[j].ID
		}
		return list[i].BookingDate.After(list[j].BookingDate)
	})
	return list, nil
}

// ExpireActiveBefore moves every active booking whose validity ended at or
// before deadline to expired and returns the changed bookings.
func (r *MemoryBookingRepository) ExpireActiveBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []domain.Booking
	for id, b := range r.bookings {
		if b.Status != domain.BookingStatusActive || b.ValidTill.After(deadline) {
			continue
		}
		b.Status = domain.BookingStatusExpired
		r.bookings[id] = b
		expired = append(expired, clone(b))
	}
	return expired, nil
}

func (r *MemoryBookingRepository) MarkUsed(ctx context.Context, id string) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	if b.Status != domain.BookingStatusActive {
		return nil, ErrBookingInactive
	}
	b.Status = domain.BookingStatusUsed
	r.bookings[id] = b

	out := clone(b)
	return &out, nil
}

func clone(b domain.Booking) domain.Booking {
	b.QRCodes = append([]string(nil), b.QRCodes...)
	return b
}

var _ BookingRepository = (*MemoryBookingRepository)(nil)
