package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/rmahat/seatledger/service"
)

// SeatController serves the seat grid and the allot/release path.
type SeatController struct {
	SeatService *service.SeatService
}

// GetSeatStatus handles GET /library/getSeatStatus: live seats of the
// current month grouped by shift.
func (h *SeatController) GetSeatStatus(ctx *gin.Context) {
	grid, err := h.SeatService.SeatStatus(ctx.Request.Context())
	if err != nil {
		failErr(ctx, "could not read seat status", err)
		return
	}
	ok(ctx, "seat status", grid)
}

// GetStudentLibSeat handles GET /library/getStudentLibSeat/:id: the current
// booking for a member.
func (h *SeatController) GetStudentLibSeat(ctx *gin.Context) {
	booking, err := h.SeatService.GetBooking(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		failErr(ctx, "could not read seat", err)
		return
	}
	ok(ctx, "seat", booking)
}

// GetSeatBookings handles GET /library/getSeatBookings/:seat: everyone on a
// seat across shifts.
func (h *SeatController) GetSeatBookings(ctx *gin.Context) {
	bookings, err := h.SeatService.ListBySeat(ctx.Request.Context(), ctx.Param("seat"))
	if err != nil {
		failErr(ctx, "could not read seat bookings", err)
		return
	}
	ok(ctx, "seat bookings", bookings)
}

// UpdateSeatStatus handles PATCH /library/updateSeatStatus/:reg. "Empty"
// releases the seat; any other status allots it and stores "Paid".
func (h *SeatController) UpdateSeatStatus(ctx *gin.Context) {
	var body struct {
		Seat   string `json:"seat"`
		Status string `json:"status"`
		Shift  string `json:"shift"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		fail(ctx, 400, "bad seat payload", err)
		return
	}

	result, err := h.SeatService.SetSeatStatus(ctx.Request.Context(), service.SeatUpdate{
		Registration: ctx.Param("reg"),
		Status:       body.Status,
		Seat:         body.Seat,
		Shift:        body.Shift,
	})
	if err != nil {
		failErr(ctx, "could not update seat status", err)
		return
	}
	if result.Deleted {
		ok(ctx, "seat released", result)
		return
	}
	ok(ctx, "seat allotted", result)
}

// UpdateNotificationStatus handles PATCH /library/updateNotificationStatus/:reg,
// the continue-next-month answer.
func (h *SeatController) UpdateNotificationStatus(ctx *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		fail(ctx, 400, "bad status payload", err)
		return
	}

	booking, err := h.SeatService.SetNotificationStatus(ctx.Request.Context(), ctx.Param("reg"), body.Status)
	if err != nil {
		failErr(ctx, "could not update notification status", err)
		return
	}
	ok(ctx, "notification status updated", booking)
}
