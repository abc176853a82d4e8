package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rmahat/seatledger/entity"
	"github.com/rmahat/seatledger/util"
)

// RolloverService inspects the previous month's partition at each cycle
// boundary and classifies its bookings as continuing or discontinued.
//
// The continuing-paid set is reported in the log only. Carrying those
// bookings forward into the new partition is a manual front-desk step today;
// this job deliberately writes nothing.
type RolloverService struct {
	bookings BookingStore
}

func NewRolloverService(bookings BookingStore) *RolloverService {
	return &RolloverService{
		bookings: bookings,
	}
}

type RolloverReport struct {
	Month        string
	Continuing   []*entity.Booking
	Unpaid       int
	Discontinued int
}

// Run executes one rollover cycle against the month before now.
func (s *RolloverService) Run(ctx context.Context, now time.Time) error {
	prev := util.PreviousMonth(now)
	bookings, err := s.bookings.FindAll(ctx, util.MonthKey(prev))
	if err != nil {
		return err
	}

	report := Classify(bookings)
	report.Month = util.MonthLabel(prev)

	for _, b := range report.Continuing {
		log.Info().
			Str("month", report.Month).
			Str("registration", b.Registration).
			Str("seat", b.Seat).
			Str("shift", b.Shift).
			Float64("cash", b.Cash).
			Float64("online", b.Online).
			Float64("fee", b.Fee).
			Float64("totalMoney", b.TotalMoney).
			Msg("paid booking continuing into new month")
	}
	log.Info().
		Str("month", report.Month).
		Int("continuingPaid", len(report.Continuing)).
		Int("continuingUnpaid", report.Unpaid).
		Int("discontinued", report.Discontinued).
		Msg("rollover report complete; carry-forward is manual")
	return nil
}

// Classify drops discontinued bookings (case-insensitive on the
// next-month marker) and splits the remainder by whether money was
// collected.
func Classify(bookings []*entity.Booking) *RolloverReport {
	report := &RolloverReport{}
	for _, b := range bookings {
		if strings.EqualFold(b.NextMonthStatus, entity.StatusDiscontinue) {
			report.Discontinued++
			continue
		}
		if b.HasMoney() {
			report.Continuing = append(report.Continuing, b)
		} else {
			report.Unpaid++
		}
	}
	return report
}
