package booking

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/metroticket/internal/domain"
	"github.com/Domenick1991/metroticket/internal/kafka"
	"github.com/Domenick1991/metroticket/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUserRequired          = errors.New("user id is required")
	ErrStationNotFound       = errors.New("station not found")
	ErrSameStation           = errors.New("source and destination cannot be the same")
	ErrStationClosed         = errors.New("station is closed")
	ErrInvalidPassengers     = errors.New("invalid passenger count")
	ErrDuplicateConfirmation = errors.New("booking confirmation already in progress")
	ErrTicketNotActive       = errors.New("ticket is not active")
	ErrBookingNotFound       = repository.ErrBookingNotFound
)

type BookingUseCase interface {
	Quote(ctx context.Context, input QuoteInput) (*Quote, error)
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	ListBookings(ctx context.Context, userID string) ([]domain.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	RedeemBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	ExpireActiveBookings(ctx context.Context) ([]domain.Booking, error)
}

type StationFinder interface {
	FindByID(id string) (domain.Station, bool)
}

type FareEngine interface {
	Distance(fromID, toID string) (int, bool)
	CalculateFare(fromID, toID string, passengers int) int
	TicketQRCodes(bookingID string, passengers int) []string
}

// Cache holds per-user booking history and idempotency state. SetBookings
// must drop the write when the history version moved past version.
type Cache interface {
	GetBookings(ctx context.Context, userID string) ([]domain.Booking, error)
	BookingsVersion(ctx context.Context, userID string) (int64, error)
	SetBookings(ctx context.Context, userID string, version int64, bookings []domain.Booking) error
	InvalidateBookings(ctx context.Context, userID string) error
	AcquireConfirmLock(ctx context.Context, userID, key string, ttl time.Duration) (bool, error)
	ReleaseConfirmLock(ctx context.Context, userID, key string) error
	ConfirmedBooking(ctx context.Context, userID, key string) (string, error)
	RememberConfirmedBooking(ctx context.Context, userID, key, bookingID string, ttl time.Duration) error
}

type Producer interface {
	PublishWithRetry(ctx context.Context, topic, key string, value interface{}, maxRetries int) error
}

// Settings are the ticketing rules applied to every new booking.
// IdempotencyTTL is how long an Idempotency-Key keeps answering with the
// booking it created; it defaults to ValidFor.
type Settings struct {
	ValidFor        time.Duration
	MaxPassengers   int
	PaymentProvider string
	ConfirmLockTTL  time.Duration
	IdempotencyTTL  time.Duration
	EventsTopic     string
	PublishRetries  int
}

type BookingService struct {
	bookings           repository.BookingRepository
	stations           StationFinder
	fares              FareEngine
	cache              Cache
	producer           Producer
	log                *zap.Logger
	settings           Settings
	notificationsTopic string
	now                func() time.Time
}

type QuoteInput struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Passengers int    `json:"passengers"`
}

type Quote struct {
	From       domain.Station `json:"from"`
	To         domain.Station `json:"to"`
	Distance   int            `json:"distance"`
	BaseFare   int            `json:"base_fare"`
	Passengers int            `json:"passengers"`
	Amount     int            `json:"amount"`
}

type CreateBookingInput struct {
	UserID         string `json:"user_id"`
	From           string `json:"from"`
	To             string `json:"to"`
	Passengers     int    `json:"passengers"`
	IdempotencyKey string `json:"idempotency_key"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

// NewBookingService wires the booking use cases. cache and producer may be
// nil; the service then skips history caching, confirmation locks and
// events.
func NewBookingService(
	bookings repository.BookingRepository,
	stations StationFinder,
	fares FareEngine,
	cache Cache,
	producer Producer,
	log *zap.Logger,
	settings Settings,
	opts ...BookingServiceOption,
) *BookingService {
	if settings.MaxPassengers <= 0 {
		settings.MaxPassengers = 10
	}
	if settings.ValidFor <= 0 {
		settings.ValidFor = 24 * time.Hour
	}
	if settings.IdempotencyTTL <= 0 {
		settings.IdempotencyTTL = settings.ValidFor
	}
	if settings.PublishRetries <= 0 {
		settings.PublishRetries = 3
	}
	service := &BookingService{
		bookings: bookings,
		stations: stations,
		fares:    fares,
		cache:    cache,
		producer: producer,
		log:      log,
		settings: settings,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Quote(ctx context.Context, input QuoteInput) (*Quote, error) {
	from, to, err := s.resolve(input.From, input.To, input.Passengers)
	if err != nil {
		return nil, err
	}

	distance, _ := s.fares.Distance(from.ID, to.ID)
	amount := s.fares.CalculateFare(from.ID, to.ID, input.Passengers)
	return &Quote{
		From:       from,
		To:         to,
		Distance:   distance,
		BaseFare:   amount / input.Passengers,
		Passengers: input.Passengers,
		Amount:     amount,
	}, nil
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.UserID == "" {
		return nil, ErrUserRequired
	}
	from, to, err := s.resolve(input.From, input.To, input.Passengers)
	if err != nil {
		return nil, err
	}
	if !from.IsOpen() {
		return nil, fmt.Errorf("%w: %s", ErrStationClosed, from.Name)
	}
	if !to.IsOpen() {
		return nil, fmt.Errorf("%w: %s", ErrStationClosed, to.Name)
	}

	locked := false
	if s.cache != nil && input.IdempotencyKey != "" {
		if existing, err := s.confirmedBooking(ctx, input.UserID, input.IdempotencyKey); err != nil || existing != nil {
			return existing, err
		}

		ok, err := s.cache.AcquireConfirmLock(ctx, input.UserID, input.IdempotencyKey, s.settings.ConfirmLockTTL)
		if err != nil {
			return nil, fmt.Errorf("acquire confirm lock: %w", err)
		}
		if !ok {
			// The holder may have finished between the lookup and the lock.
			if existing, err := s.confirmedBooking(ctx, input.UserID, input.IdempotencyKey); err != nil || existing != nil {
				return existing, err
			}
			return nil, ErrDuplicateConfirmation
		}
		locked = true
	}

	now := s.now()
	id := newBookingID()
	booking := &domain.Booking{
		ID:              id,
		UserID:          input.UserID,
		FromStation:     from,
		ToStation:       to,
		Passengers:      input.Passengers,
		Amount:          s.fares.CalculateFare(from.ID, to.ID, input.Passengers),
		BookingDate:     now,
		ValidTill:       now.Add(s.settings.ValidFor),
		Status:          domain.BookingStatusActive,
		TransactionID:   newTransactionID(),
		PaymentProvider: s.settings.PaymentProvider,
		QRCodes:         s.fares.TicketQRCodes(id, input.Passengers),
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		if locked {
			_ = s.cache.ReleaseConfirmLock(ctx, input.UserID, input.IdempotencyKey)
		}
		return nil, err
	}

	if locked {
		s.rememberConfirmation(ctx, input.UserID, input.IdempotencyKey, booking.ID)
	}

	s.invalidate(ctx, booking.UserID)
	if err := s.publish(ctx, kafka.EventTicketIssued, booking); err != nil {
		s.log.Warn("publish ticket_issued", zap.String("booking_id", booking.ID), zap.Error(err))
	}
	s.log.Info("ticket issued",
		zap.String("booking_id", booking.ID),
		zap.String("user_id", booking.UserID),
		zap.String("from", from.ID),
		zap.String("to", to.ID),
		zap.Int("passengers", booking.Passengers),
		zap.Int("amount", booking.Amount),
	)
	return booking, nil
}

func (s *BookingService) ListBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	if s.cache != nil {
		if cached, err := s.cache.GetBookings(ctx, userID); err == nil && cached != nil {
			return s.withCurrentStatus(cached), nil
		}
	}

	// The version is read before the store so a write that lands in between
	// makes SetBookings drop this list.
	cacheable := s.cache != nil
	var version int64
	if cacheable {
		v, err := s.cache.BookingsVersion(ctx, userID)
		if err != nil {
			s.log.Warn("read booking history version", zap.String("user_id", userID), zap.Error(err))
			cacheable = false
		}
		version = v
	}

	list, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cacheable {
		if err := s.cache.SetBookings(ctx, userID, version, list); err != nil {
			s.log.Warn("cache booking history", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return s.withCurrentStatus(list), nil
}

// GetBooking hides other users' bookings behind ErrBookingNotFound.
func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrBookingNotFound
	}
	b.Status = b.StatusAt(s.now())
	return b, nil
}

// RedeemBooking marks an active, unexpired ticket as used at a gate.
func (s *BookingService) RedeemBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	current, err := s.GetBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	if !current.IsValidAt(s.now()) {
		return nil, ErrTicketNotActive
	}

	used, err := s.bookings.MarkUsed(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingInactive) {
			return nil, ErrTicketNotActive
		}
		return nil, err
	}

	s.invalidate(ctx, userID)
	if err := s.publish(ctx, kafka.EventTicketUsed, used); err != nil {
		s.log.Warn("publish ticket_used", zap.String("booking_id", used.ID), zap.Error(err))
	}
	return used, nil
}

func (s *BookingService) ExpireActiveBookings(ctx context.Context) ([]domain.Booking, error) {
	expired, err := s.bookings.ExpireActiveBefore(ctx, s.now())
	if err != nil {
		return nil, err
	}

	users := make(map[string]struct{})
	for i := range expired {
		b := &expired[i]
		users[b.UserID] = struct{}{}
		if err := s.publish(ctx, kafka.EventTicketExpired, b); err != nil {
			s.log.Warn("publish ticket_expired", zap.String("booking_id", b.ID), zap.Error(err))
		}
	}
	for userID := range users {
		s.invalidate(ctx, userID)
	}
	return expired, nil
}

func (s *BookingService) resolve(fromID, toID string, passengers int) (domain.Station, domain.Station, error) {
	if passengers < 1 || passengers > s.settings.MaxPassengers {
		return domain.Station{}, domain.Station{}, fmt.Errorf("%w: must be between 1 and %d", ErrInvalidPassengers, s.settings.MaxPassengers)
	}
	from, ok := s.stations.FindByID(fromID)
	if !ok {
		return domain.Station{}, domain.Station{}, fmt.Errorf("%w: %q", ErrStationNotFound, fromID)
	}
	to, ok := s.stations.FindByID(toID)
	if !ok {
		return domain.Station{}, domain.Station{}, fmt.Errorf("%w: %q", ErrStationNotFound, toID)
	}
	// The fare engine prices identical stations; the booking rules do not allow them.
	if from.ID == to.ID {
		return domain.Station{}, domain.Station{}, ErrSameStation
	}
	return from, to, nil
}

// confirmedBooking returns the booking an idempotency key already produced,
// or nil when the key is unused.
func (s *BookingService) confirmedBooking(ctx context.Context, userID, key string) (*domain.Booking, error) {
	id, err := s.cache.ConfirmedBooking(ctx, userID, key)
	if err != nil {
		return nil, fmt.Errorf("lookup idempotency key: %w", err)
	}
	if id == "" {
		return nil, nil
	}

	b, err := s.bookings.GetByID(ctx, id)
	if errors.Is(err, repository.ErrBookingNotFound) {
		// The store was reset since the key was recorded.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, nil
	}
	b.Status = b.StatusAt(s.now())
	s.log.Info("idempotent replay", zap.String("booking_id", b.ID), zap.String("user_id", userID))
	return b, nil
}

// rememberConfirmation records key -> booking id. The lock is only released
// once the record exists, so a failed write still leaves the lock TTL as a
// guard.
func (s *BookingService) rememberConfirmation(ctx context.Context, userID, key, bookingID string) {
	if err := s.cache.RememberConfirmedBooking(ctx, userID, key, bookingID, s.settings.IdempotencyTTL); err != nil {
		s.log.Warn("record idempotency key", zap.String("booking_id", bookingID), zap.Error(err))
		return
	}
	if err := s.cache.ReleaseConfirmLock(ctx, userID, key); err != nil {
		s.log.Warn("release confirm lock", zap.String("booking_id", bookingID), zap.Error(err))
	}
}

// withCurrentStatus reports tickets past their validity as expired before the
// sweep has flipped them in the store.
func (s *BookingService) withCurrentStatus(list []domain.Booking) []domain.Booking {
	now := s.now()
	out := make([]domain.Booking, len(list))
	for i, b := range list {
		b.Status = b.StatusAt(now)
		out[i] = b
	}
	return out
}

func (s *BookingService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateBookings(ctx, userID); err != nil {
		s.log.Warn("invalidate booking history", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.settings.EventsTopic == "" {
		return nil
	}
	event := kafka.TicketEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		FromStation: booking.FromStation.Name,
		ToStation:   booking.ToStation.Name,
		Passengers:  booking.Passengers,
		Amount:      booking.Amount,
		Status:      string(booking.Status),
		ValidTill:   booking.ValidTill,
	}
	if err := s.producer.PublishWithRetry(ctx, s.settings.EventsTopic, booking.ID, event, s.settings.PublishRetries); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.PublishWithRetry(ctx, s.notificationsTopic, booking.ID, event, s.settings.PublishRetries)
	}
	return nil
}

func newBookingID() string {
	return "booking_" + uuid.NewString()
}

// newTransactionID returns a TXN-prefixed 12 digit reference.
func newTransactionID() string {
	id := uuid.New()
	return fmt.Sprintf("TXN%012d", binary.BigEndian.Uint64(id[:8])%1_000_000_000_000)
}

var _ BookingUseCase = (*BookingService)(nil)
