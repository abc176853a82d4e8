package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rmahat/seatledger/entity"
	"github.com/rmahat/seatledger/repository"
	"github.com/rmahat/seatledger/util"
)

// SeatService implements seat allocation and booking maintenance over the
// current month's partition. Historical partitions are read-only through
// ListBookings; writes always land in the current month.
type SeatService struct {
	bookings BookingStore
	members  MemberStore
}

func NewSeatService(bookings BookingStore, members MemberStore) *SeatService {
	return &SeatService{
		bookings: bookings,
		members:  members,
	}
}

type SeatUpdate struct {
	Registration string
	Status       string
	Seat         string
	Shift        string
}

// SeatResult is the outcome of SetSeatStatus: either the upserted booking or
// a tombstone for a released seat.
type SeatResult struct {
	Deleted      bool            `json:"deleted,omitempty"`
	Registration string          `json:"registration"`
	Booking      *entity.Booking `json:"booking,omitempty"`
}

// SeatState is one cell of the seat-grid projection.
type SeatState struct {
	Registration string `json:"registration"`
	Seat         string `json:"seat"`
	Status       string `json:"status"`
}

func (s *SeatService) ListBySeat(ctx context.Context, seat string) ([]*entity.Booking, error) {
	return s.bookings.FindBySeat(ctx, util.CurrentMonthKey(), seat)
}

// ListBookings serves the admin spreadsheet view. month accepts a partition
// key, a bare month name, "current" or "all".
func (s *SeatService) ListBookings(ctx context.Context, month string) ([]*entity.Booking, error) {
	if strings.EqualFold(month, "all") {
		var all []*entity.Booking
		for _, key := range util.MonthKeysForYear(time.Now().Year()) {
			bookings, err := s.bookings.FindAll(ctx, key)
			if err != nil {
				return nil, err
			}
			all = append(all, bookings...)
		}
		return all, nil
	}

	key, ok := util.ResolveMonthKey(month)
	if !ok {
		return nil, fmt.Errorf("unknown month %q", month)
	}
	return s.bookings.FindAll(ctx, key)
}

func (s *SeatService) GetBooking(ctx context.Context, registration string) (*entity.Booking, error) {
	return s.bookings.FindByRegistration(ctx, util.CurrentMonthKey(), registration)
}

func (s *SeatService) CreateBooking(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	if booking.Registration == "" {
		return nil, fmt.Errorf("%w: registration", ErrMissingField)
	}
	if booking.Date == "" {
		booking.Date = util.Today()
	}
	return s.bookings.Insert(ctx, util.CurrentMonthKey(), booking)
}

// UpdateBooking merges arbitrary admin-supplied fields into the booking
// keyed by registration, creating it if absent.
func (s *SeatService) UpdateBooking(ctx context.Context, registration string, fields bson.M) (*entity.Booking, error) {
	if registration == "" {
		return nil, fmt.Errorf("%w: registration", ErrMissingField)
	}
	delete(fields, "registration")
	return s.bookings.UpsertByRegistration(ctx, util.CurrentMonthKey(), registration, fields)
}

func (s *SeatService) DeleteBooking(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid booking id %q", repository.ErrNotFound, id)
	}
	return s.bookings.DeleteByID(ctx, util.CurrentMonthKey(), objID)
}

func (s *SeatService) SetAnnotation(ctx context.Context, id, column, color string) (*entity.Booking, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id %q", repository.ErrNotFound, id)
	}
	return s.bookings.MergeColor(ctx, util.CurrentMonthKey(), objID, column, color)
}

// SetSeatStatus is the allot/release entry point.
//
// Status "Empty" releases the seat: the booking row keyed by registration is
// deleted from the current partition and a tombstone is returned. Any other
// status allots the seat, and the stored status is always "Paid" no matter
// what the caller sent; Confirmed/discontinue are reachable only through
// SetNotificationStatus.
func (s *SeatService) SetSeatStatus(ctx context.Context, u SeatUpdate) (*SeatResult, error) {
	key := util.CurrentMonthKey()

	if strings.EqualFold(u.Status, entity.StatusEmpty) {
		if _, err := s.bookings.DeleteByRegistration(ctx, key, u.Registration); err != nil {
			return nil, err
		}
		return &SeatResult{Deleted: true, Registration: u.Registration}, nil
	}

	member, err := s.members.FindByRegistration(ctx, u.Registration)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.UpsertByRegistration(ctx, key, u.Registration, bson.M{
		"registration": u.Registration,
		"name":         member.Name,
		"seat":         u.Seat,
		"shift":        u.Shift,
		"status":       entity.StatusPaid,
		"date":         util.Today(),
	})
	if err != nil {
		return nil, err
	}
	return &SeatResult{Registration: u.Registration, Booking: booking}, nil
}

// SetNotificationStatus records the member's continue-next-month answer on
// the existing booking. It never creates a row.
func (s *SeatService) SetNotificationStatus(ctx context.Context, registration, status string) (*entity.Booking, error) {
	var canonical, color string
	switch {
	case strings.EqualFold(status, entity.StatusConfirmed):
		canonical, color = entity.StatusConfirmed, entity.ColorConfirmed
	case strings.EqualFold(status, entity.StatusDiscontinue):
		canonical, color = entity.StatusDiscontinue, entity.ColorDiscontinue
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	return s.bookings.UpdateByRegistration(ctx, util.CurrentMonthKey(), registration, bson.M{
		"status":          canonical,
		"nextMonthStatus": canonical,
		"date":            util.Today(),
		"colors.status":   color,
	})
}

// SeatStatus computes the read-side seat grid: live bookings of the current
// partition grouped by shift. Terminal rows do not occupy seats.
func (s *SeatService) SeatStatus(ctx context.Context) (map[string][]SeatState, error) {
	bookings, err := s.bookings.FindAll(ctx, util.CurrentMonthKey())
	if err != nil {
		return nil, err
	}

	grid := make(map[string][]SeatState)
	for _, b := range bookings {
		if b.IsTerminal() {
			continue
		}
		grid[b.Shift] = append(grid[b.Shift], SeatState{
			Registration: b.Registration,
			Seat:         b.Seat,
			Status:       b.Status,
		})
	}
	return grid, nil
}
