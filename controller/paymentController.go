package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/rmahat/seatledger/service"
)

// PaymentController fronts the gateway-backed fee flow.
type PaymentController struct {
	PaymentService *service.PaymentService
}

// CreateFeeOrder handles POST /library/createFeeOrder.
func (h *PaymentController) CreateFeeOrder(ctx *gin.Context) {
	var body struct {
		Amount int64 `json:"amount"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || body.Amount <= 0 {
		fail(ctx, 400, "bad order payload", err)
		return
	}

	order, err := h.PaymentService.CreateOrder(ctx.Request.Context(), body.Amount)
	if err != nil {
		failErr(ctx, "could not create order", err)
		return
	}
	ok(ctx, "order created", order)
}

// VerifyFeePayment handles POST /library/verifyFeePayment. The signature
// gate runs before any write; a tampered signature commits nothing.
func (h *PaymentController) VerifyFeePayment(ctx *gin.Context) {
	var payment service.FeePayment
	if err := ctx.ShouldBindJSON(&payment); err != nil {
		fail(ctx, 400, "bad payment payload", err)
		return
	}

	booking, err := h.PaymentService.VerifyAndRecordFee(ctx.Request.Context(), payment)
	if err != nil {
		failErr(ctx, "payment not recorded", err)
		return
	}
	ok(ctx, "payment recorded", booking)
}
