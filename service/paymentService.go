package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/rmahat/seatledger/entity"
	"github.com/rmahat/seatledger/util"
)

// OrderCreator is the gateway order API. The Razorpay client's Order
// resource satisfies it.
type OrderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// FeeForm carries the booking fields submitted alongside a gateway payment.
type FeeForm struct {
	Registration string  `json:"registration"`
	Name         string  `json:"name"`
	Seat         string  `json:"seat"`
	Shift        string  `json:"shift"`
	Cash         float64 `json:"cash"`
	Online       float64 `json:"online"`
	Fee          float64 `json:"fee"`
	Due          float64 `json:"due"`
	Advance      float64 `json:"advance"`
	TotalMoney   float64 `json:"TotalMoney"`
	Remarks      string  `json:"remarks"`
}

type FeePayment struct {
	OrderID   string  `json:"order_id"`
	PaymentID string  `json:"payment_id"`
	Signature string  `json:"signature"`
	Form      FeeForm `json:"formData"`
}

// PaymentService gates "Paid" transitions behind gateway signature
// verification.
type PaymentService struct {
	orders   OrderCreator
	secret   string
	bookings BookingStore
}

func NewPaymentService(orders OrderCreator, secret string, bookings BookingStore) *PaymentService {
	return &PaymentService{
		orders:   orders,
		secret:   secret,
		bookings: bookings,
	}
}

// CreateOrder opens a gateway order for the given amount in minor units.
func (s *PaymentService) CreateOrder(ctx context.Context, amount int64) (*entity.Order, error) {
	receipt := "rcpt_" + uuid.NewString()
	body, err := s.orders.Create(map[string]interface{}{
		"amount":   amount,
		"currency": "INR",
		"receipt":  receipt,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("gateway order create: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("gateway order create: response missing order id")
	}
	return &entity.Order{ID: id, Amount: amount, Currency: "INR", Receipt: receipt}, nil
}

// VerifySignature recomputes the gateway HMAC over "orderID|paymentID" and
// compares in constant time. A mismatch is a false return, never an error.
func (s *PaymentService) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyAndRecordFee commits a fee payment. The signature check runs first
// and fails closed: on mismatch nothing is written anywhere and
// ErrInvalidSignature is returned. On success the booking is upserted in the
// current partition with status "Paid" and the gateway reference recorded.
func (s *PaymentService) VerifyAndRecordFee(ctx context.Context, p FeePayment) (*entity.Booking, error) {
	if !s.VerifySignature(p.OrderID, p.PaymentID, p.Signature) {
		return nil, ErrInvalidSignature
	}
	if p.Form.Registration == "" {
		return nil, fmt.Errorf("%w: registration", ErrMissingField)
	}

	return s.bookings.UpsertByRegistration(ctx, util.CurrentMonthKey(), p.Form.Registration, bson.M{
		"registration":   p.Form.Registration,
		"name":           p.Form.Name,
		"seat":           p.Form.Seat,
		"shift":          p.Form.Shift,
		"cash":           p.Form.Cash,
		"online":         p.Form.Online,
		"fee":            p.Form.Fee,
		"due":            p.Form.Due,
		"advance":        p.Form.Advance,
		"TotalMoney":     p.Form.TotalMoney,
		"remarks":        p.Form.Remarks,
		"status":         entity.StatusPaid,
		"Payment_detail": p.OrderID + "|" + p.PaymentID,
		"date":           util.Today(),
	})
}
