package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking status values. Checked-out and cancelled are terminal.
const (
	BookingPending    = "pending"
	BookingConfirmed  = "confirmed"
	BookingCheckedIn  = "checked-in"
	BookingCheckedOut = "checked-out"
	BookingCancelled  = "cancelled"
)

// Payment status values.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentPartial  = "partial"
	PaymentRefunded = "refunded"
)

// Booking is one reservation of RoomsBooked instances of a room type for a
// half-open [CheckIn, CheckOut) interval. The attached rooms are recorded in
// the booking_rooms join table.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:64" json:"referenceCode"`
	ClientID      uint   `gorm:"column:client_id;index" json:"clientId"`
	RoomTypeID    uint   `gorm:"column:room_type_id;index" json:"roomTypeId"`

	CheckIn  time.Time `gorm:"column:check_in" json:"checkIn"`
	CheckOut time.Time `gorm:"column:check_out" json:"checkOut"`

	Adults      int `gorm:"column:adults;default:1" json:"adults"`
	Children    int `gorm:"column:children;default:0" json:"children"`
	RoomsBooked int `gorm:"column:rooms_booked;default:1" json:"roomsBooked"`

	PricePerNight float64 `gorm:"column:price_per_night" json:"pricePerNight"`
	Nights        int     `gorm:"column:nights" json:"nights"`
	TotalPrice    float64 `gorm:"column:total_price" json:"totalPrice"`

	Status        string `gorm:"column:status;size:32;index" json:"status"`
	PaymentStatus string `gorm:"column:payment_status;size:32" json:"paymentStatus"`

	PaymentMethod    string     `gorm:"column:payment_method;size:32" json:"paymentMethod,omitempty"`
	AdvancePayment   float64    `gorm:"column:advance_payment" json:"advancePayment,omitempty"`
	PaymentSessionID string     `gorm:"column:payment_session_id;size:128" json:"paymentSessionId,omitempty"`
	PaidAt           *time.Time `gorm:"column:paid_at" json:"paidAt,omitempty"`

	SpecialRequests datatypes.JSON `gorm:"column:special_requests" json:"specialRequests,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Client   Client        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	RoomType RoomType      `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
	Rooms    []BookingRoom `gorm:"foreignKey:BookingID" json:"rooms"`
}

// ActiveBookingStatuses are the statuses that hold rooms against a date
// interval; only these count when computing availability.
var ActiveBookingStatuses = []string{BookingConfirmed, BookingCheckedIn}

func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentPartial, PaymentRefunded:
		return true
	}
	return false
}

// IsTerminal reports whether the booking can no longer change status.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingCheckedOut || b.Status == BookingCancelled
}

// RoomIDs returns the ids of the attached room instances.
func (b *Booking) RoomIDs() []uint {
	ids := make([]uint, 0, len(b.Rooms))
	for _, br := range b.Rooms {
		ids = append(ids, br.RoomID)
	}
	return ids
}
