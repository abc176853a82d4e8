package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/schema"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/rmahat/seatledger/entity"
	"github.com/rmahat/seatledger/service"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// BookingController serves the admin spreadsheet surface over the month
// partitions.
type BookingController struct {
	SeatService *service.SeatService
}

type bookingQuery struct {
	Month string `schema:"month"`
}

// GetBookingData handles GET /admin_library/getBookingData?month=<key|all>.
func (h *BookingController) GetBookingData(ctx *gin.Context) {
	var q bookingQuery
	if err := decoder.Decode(&q, ctx.Request.URL.Query()); err != nil {
		fail(ctx, 400, "bad query", err)
		return
	}

	bookings, err := h.SeatService.ListBookings(ctx.Request.Context(), q.Month)
	if err != nil {
		failErr(ctx, "could not list bookings", err)
		return
	}
	ok(ctx, "bookings", bookings)
}

// AddBooking handles POST /admin_library/addBooking.
func (h *BookingController) AddBooking(ctx *gin.Context) {
	var booking entity.Booking
	if err := ctx.ShouldBindJSON(&booking); err != nil {
		fail(ctx, 400, "bad booking payload", err)
		return
	}

	created, err := h.SeatService.CreateBooking(ctx.Request.Context(), &booking)
	if err != nil {
		failErr(ctx, "could not create booking", err)
		return
	}
	ok(ctx, "booking created", created)
}

// UpdateBooking handles POST /admin_library/updatebooking: an upsert keyed
// by registration, fields passed through as-is.
func (h *BookingController) UpdateBooking(ctx *gin.Context) {
	var body bson.M
	if err := ctx.ShouldBindJSON(&body); err != nil {
		fail(ctx, 400, "bad update payload", err)
		return
	}
	registration, _ := body["registration"].(string)

	booking, err := h.SeatService.UpdateBooking(ctx.Request.Context(), registration, body)
	if err != nil {
		failErr(ctx, "could not update booking", err)
		return
	}
	ok(ctx, "booking updated", booking)
}

// DeleteBooking handles DELETE /admin_library/deleteBooking/:id.
func (h *BookingController) DeleteBooking(ctx *gin.Context) {
	if err := h.SeatService.DeleteBooking(ctx.Request.Context(), ctx.Param("id")); err != nil {
		failErr(ctx, "could not delete booking", err)
		return
	}
	ok(ctx, "booking deleted", nil)
}

// UpdateColor handles PATCH /admin_library/updateColor: merges one key of
// the annotation map.
func (h *BookingController) UpdateColor(ctx *gin.Context) {
	var body struct {
		ID     string `json:"id"`
		Column string `json:"column"`
		Color  string `json:"color"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		fail(ctx, 400, "bad color payload", err)
		return
	}

	booking, err := h.SeatService.SetAnnotation(ctx.Request.Context(), body.ID, body.Column, body.Color)
	if err != nil {
		failErr(ctx, "could not update color", err)
		return
	}
	ok(ctx, "color updated", booking)
}
