package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmahat/seatledger/entity"
	"github.com/rmahat/seatledger/util"
)

func TestClassifyKeepsOnlyContinuingPaid(t *testing.T) {
	report := Classify([]*entity.Booking{
		{Registration: "X", NextMonthStatus: "Discontinue", Cash: 100},
		{Registration: "Y", NextMonthStatus: "Confirmed", Cash: 200},
	})

	// X is out despite the nonzero cash: the discontinue filter is
	// case-insensitive and runs first.
	require.Len(t, report.Continuing, 1)
	assert.Equal(t, "Y", report.Continuing[0].Registration)
	assert.Equal(t, float64(200), report.Continuing[0].Cash)
	assert.Equal(t, 1, report.Discontinued)
}

func TestClassifyCountsUnpaidContinuers(t *testing.T) {
	report := Classify([]*entity.Booking{
		{Registration: "A", NextMonthStatus: "Confirmed"},
		{Registration: "B", Online: 50},
		{Registration: "C", TotalMoney: 900},
		{Registration: "D", NextMonthStatus: "discontinue"},
		{Registration: "E", Fee: 800},
	})

	assert.Len(t, report.Continuing, 3)
	assert.Equal(t, 1, report.Unpaid)
	assert.Equal(t, 1, report.Discontinued)
}

func TestRolloverReadsPreviousPartition(t *testing.T) {
	now := time.Date(2026, time.January, 1, 2, 0, 0, 0, time.UTC)
	bookings := &mockBookingStore{findAll: map[string][]*entity.Booking{}}
	s := NewRolloverService(bookings)

	require.NoError(t, s.Run(context.Background(), now))

	require.Len(t, bookings.findAllKeys, 1)
	assert.Equal(t, "december_2025", bookings.findAllKeys[0])
	assert.Equal(t, bookings.findAllKeys[0], util.PreviousMonthKey(now))

	// The job is read-only: the carry-forward set is reported, never
	// written into the new partition.
	assert.Empty(t, bookings.insertCalls)
	assert.Empty(t, bookings.upsertCalls)
	assert.Empty(t, bookings.updateCalls)
}
