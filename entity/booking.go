package entity

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking statuses as they appear on the wire and in the store. A seat is
// occupied while its booking carries any status other than Left/discontinue.
const (
	StatusUnpaid      = "Unpaid"
	StatusPaid        = "Paid"
	StatusConfirmed   = "Confirmed"
	StatusDiscontinue = "discontinue"
	StatusLeft        = "Left"

	// StatusEmpty is accepted as input only: it releases the seat by
	// deleting the booking row, it is never stored.
	StatusEmpty = "Empty"
)

const (
	ColorConfirmed   = "green"
	ColorDiscontinue = "red"
)

var Shifts = []string{
	"6:30 AM to 2 PM",
	"2 PM to 9:30 PM",
	"9:30 PM to 6:30 AM",
	"24*7",
}

// Booking is one occupancy/payment record inside a month partition.
// Registration is the natural key: at most one live booking per registration
// per partition. Field names mirror the stored documents.
type Booking struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Registration    string             `bson:"registration" json:"registration"`
	Name            string             `bson:"name,omitempty" json:"name,omitempty"`
	Seat            string             `bson:"seat,omitempty" json:"seat,omitempty"`
	Shift           string             `bson:"shift,omitempty" json:"shift,omitempty"`
	Status          string             `bson:"status,omitempty" json:"status,omitempty"`
	Date            string             `bson:"date,omitempty" json:"date,omitempty"`
	Cash            float64            `bson:"cash,omitempty" json:"cash,omitempty"`
	Online          float64            `bson:"online,omitempty" json:"online,omitempty"`
	Fee             float64            `bson:"fee,omitempty" json:"fee,omitempty"`
	Due             float64            `bson:"due,omitempty" json:"due,omitempty"`
	Advance         float64            `bson:"advance,omitempty" json:"advance,omitempty"`
	TotalMoney      float64            `bson:"TotalMoney,omitempty" json:"TotalMoney,omitempty"`
	Remarks         string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
	PaymentDetail   string             `bson:"Payment_detail,omitempty" json:"Payment_detail,omitempty"`
	NextMonthStatus string             `bson:"nextMonthStatus,omitempty" json:"nextMonthStatus,omitempty"`
	Colors          map[string]string  `bson:"colors,omitempty" json:"colors,omitempty"`
}

// IsTerminal reports whether the booking no longer occupies its seat.
func (b *Booking) IsTerminal() bool {
	return strings.EqualFold(b.Status, StatusLeft) || strings.EqualFold(b.Status, StatusDiscontinue)
}

// HasMoney reports whether any fee was collected on the booking.
func (b *Booking) HasMoney() bool {
	return b.Fee != 0 || b.Cash != 0 || b.Online != 0 || b.TotalMoney != 0
}
