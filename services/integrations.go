package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"innkeeper-backend/models"
)

// External collaborators the booking flow calls into. All of them are
// best-effort side channels: a failure is logged and never rolls back a
// committed booking. The room-reservation write itself never goes through
// these.

// Notifier delivers a preformatted message to the staff channel.
type Notifier interface {
	Notify(message string) error
}

// Mailer sends transactional mail to guests.
type Mailer interface {
	SendBookingConfirmation(details BookingEmail) error
}

// PaymentGateway creates and looks up checkout sessions keyed by booking.
type PaymentGateway interface {
	CreateCheckoutSession(booking *models.Booking) (PaymentSession, error)
}

// BookingEmail is the structured payload handed to the mail sender.
type BookingEmail struct {
	To            string
	GuestName     string
	ReferenceCode string
	CheckIn       string
	CheckOut      string
	RoomNumbers   []string
	TotalPrice    float64
}

// PaymentSession is the external gateway's handle for collecting payment.
type PaymentSession struct {
	ID  string `json:"sessionId"`
	URL string `json:"url"`
}

// LogNotifier, LogMailer and LogPaymentGateway are the default wiring when
// no real integration is configured: they log the call and succeed, so the
// core flow can run without the external services.

type LogNotifier struct {
	Log zerolog.Logger
}

func (n LogNotifier) Notify(message string) error {
	n.Log.Info().Str("channel", "staff").Msg(message)
	return nil
}

type LogMailer struct {
	Log zerolog.Logger
}

func (m LogMailer) SendBookingConfirmation(details BookingEmail) error {
	m.Log.Info().
		Str("to", details.To).
		Str("reference", details.ReferenceCode).
		Msg("booking confirmation email")
	return nil
}

type LogPaymentGateway struct {
	Log zerolog.Logger
}

func (g LogPaymentGateway) CreateCheckoutSession(booking *models.Booking) (PaymentSession, error) {
	id := "cs_" + uuid.NewString()
	g.Log.Info().
		Str("session_id", id).
		Uint("booking_id", booking.ID).
		Float64("amount", booking.TotalPrice).
		Msg("payment checkout session created")
	return PaymentSession{
		ID:  id,
		URL: fmt.Sprintf("https://pay.example.com/session/%s", id),
	}, nil
}
