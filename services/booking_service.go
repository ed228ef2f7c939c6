package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"innkeeper-backend/models"
	"innkeeper-backend/utils"
)

// BookingService turns validated booking requests into committed room
// reservations and drives status transitions afterwards. Both the guest
// flow and the staff manual flow go through the same allocator; they only
// differ in identity resolution and payment mode, carried in BookingOptions.
type BookingService struct {
	DB       *gorm.DB
	Log      zerolog.Logger
	Notifier Notifier
	Mailer   Mailer
	Payments PaymentGateway
}

func NewBookingService(db *gorm.DB, log zerolog.Logger, notifier Notifier, mailer Mailer, payments PaymentGateway) *BookingService {
	return &BookingService{DB: db, Log: log, Notifier: notifier, Mailer: mailer, Payments: payments}
}

// BookingInput is one booking request after HTTP binding.
type BookingInput struct {
	RoomTypeID      uint
	CheckIn         time.Time
	CheckOut        time.Time
	Adults          int
	Children        int
	RoomsBooked     int
	QuotedTotal     float64 // client-supplied, advisory only
	SpecialRequests datatypes.JSON
	RequirePayment  bool
}

// BookingOptions parameterizes the allocator per entry path.
type BookingOptions struct {
	ReferencePrefix string // utils.GuestBookingPrefix or utils.StaffBookingPrefix
	PaymentStatus   string // empty means pending
	PaymentMethod   string
	AdvancePayment  float64
}

// Create allocates rooms for a client and commits the booking.
//
// Selection and claim happen in one transaction with the candidate rooms
// and overlapping bookings read under row locks, closing the check-then-act
// window between the public availability check and the commit. The total
// price is always recomputed from the room type's nightly rate; a client
// quote that disagrees is logged and ignored.
//
// Notification and email are dispatched after commit as fire-and-forget
// goroutines. Payment-session creation is attempted inline so the response
// can carry the checkout URL, but its failure never fails the booking.
func (s *BookingService) Create(clientID uint, in BookingInput, opts BookingOptions) (*models.Booking, *PaymentSession, error) {
	if in.RoomsBooked <= 0 {
		return nil, nil, ErrInvalidRoomCount
	}
	ci, co, err := validateStay(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, nil, err
	}
	if in.Adults <= 0 {
		in.Adults = 1
	}
	if in.Children < 0 {
		in.Children = 0
	}

	paymentStatus := opts.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentPending
	}
	if !models.ValidPaymentStatus(paymentStatus) {
		return nil, nil, ErrInvalidStatus
	}

	var booking models.Booking

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var roomType models.RoomType
		if err := tx.First(&roomType, in.RoomTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomTypeNotFound
			}
			return fmt.Errorf("load room type %d: %w", in.RoomTypeID, err)
		}
		if !roomType.IsBookable() {
			return ErrRoomTypeInactive
		}

		// Hard capacity ceiling per room, not a soft warning.
		if in.Adults > roomType.MaxAdults || in.Children > roomType.MaxChildren {
			return ErrCapacityExceeded
		}

		free, err := freeRoomsForStay(tx, in.RoomTypeID, ci, co, true)
		if err != nil {
			return err
		}
		if len(free) < in.RoomsBooked {
			return ErrNotEnoughRooms
		}
		selected := free[:in.RoomsBooked]

		nights := StayNights(ci, co)
		total := TotalPrice(roomType.PricePerNight, nights, in.RoomsBooked)
		if in.QuotedTotal != 0 && in.QuotedTotal != total {
			s.Log.Warn().
				Float64("quoted", in.QuotedTotal).
				Float64("computed", total).
				Uint("room_type_id", roomType.ID).
				Msg("client-quoted total differs from computed price, using computed")
		}

		booking = models.Booking{
			ReferenceCode:   utils.NewBookingReference(opts.ReferencePrefix),
			ClientID:        clientID,
			RoomTypeID:      roomType.ID,
			CheckIn:         ci,
			CheckOut:        co,
			Adults:          in.Adults,
			Children:        in.Children,
			RoomsBooked:     in.RoomsBooked,
			PricePerNight:   roomType.PricePerNight,
			Nights:          nights,
			TotalPrice:      total,
			Status:          models.BookingConfirmed,
			PaymentStatus:   paymentStatus,
			PaymentMethod:   opts.PaymentMethod,
			AdvancePayment:  opts.AdvancePayment,
			SpecialRequests: in.SpecialRequests,
		}
		if paymentStatus == models.PaymentPaid {
			now := time.Now().UTC()
			booking.PaidAt = &now
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		roomIDs := make([]uint, 0, len(selected))
		for _, room := range selected {
			roomIDs = append(roomIDs, room.ID)
			br := models.BookingRoom{BookingID: booking.ID, RoomID: room.ID}
			if err := tx.Create(&br).Error; err != nil {
				return fmt.Errorf("attach room %d: %w", room.ID, err)
			}
		}

		if err := tx.Model(&models.Room{}).
			Where("id IN ?", roomIDs).
			Update("occupancy_status", models.OccupancyReserved).Error; err != nil {
			return fmt.Errorf("reserve rooms: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, nil, txErr
	}

	full, err := s.GetByID(booking.ID)
	if err != nil {
		return nil, nil, err
	}

	s.dispatchBookingSideEffects(full)

	var session *PaymentSession
	if in.RequirePayment {
		sess, err := s.Payments.CreateCheckoutSession(full)
		if err != nil {
			// Guest retries payment later; the booking stands.
			s.Log.Error().Err(err).Uint("booking_id", full.ID).Msg("payment session creation failed")
		} else {
			session = &sess
			if err := s.DB.Model(full).Update("payment_session_id", sess.ID).Error; err != nil {
				s.Log.Error().Err(err).Uint("booking_id", full.ID).Msg("failed to store payment session id")
			} else {
				full.PaymentSessionID = sess.ID
			}
		}
	}

	return full, session, nil
}

// dispatchBookingSideEffects fires the staff notification and guest email.
// Failures are logged only; nothing here can sink a committed booking.
func (s *BookingService) dispatchBookingSideEffects(booking *models.Booking) {
	numbers := roomNumbers(booking)

	go func() {
		msg := fmt.Sprintf("New booking %s: %d x %s, %s to %s, rooms %s",
			booking.ReferenceCode, booking.RoomsBooked, booking.RoomType.Name,
			booking.CheckIn.Format("2006-01-02"), booking.CheckOut.Format("2006-01-02"),
			strings.Join(numbers, ", "))
		if err := s.Notifier.Notify(msg); err != nil {
			s.Log.Error().Err(err).Uint("booking_id", booking.ID).Msg("staff notification failed")
		}
	}()

	go func() {
		email := BookingEmail{
			To:            booking.Client.Email,
			GuestName:     booking.Client.FullName,
			ReferenceCode: booking.ReferenceCode,
			CheckIn:       booking.CheckIn.Format("2006-01-02"),
			CheckOut:      booking.CheckOut.Format("2006-01-02"),
			RoomNumbers:   numbers,
			TotalPrice:    booking.TotalPrice,
		}
		if err := s.Mailer.SendBookingConfirmation(email); err != nil {
			s.Log.Error().Err(err).Uint("booking_id", booking.ID).Msg("confirmation email failed")
		}
	}()
}

func roomNumbers(booking *models.Booking) []string {
	numbers := make([]string, 0, len(booking.Rooms))
	for _, br := range booking.Rooms {
		if br.Room.ID != 0 {
			numbers = append(numbers, br.Room.RoomNumber)
		}
	}
	return numbers
}

// GetByID loads a booking with its client, room type and rooms.
func (s *BookingService) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.
		Preload("Client").
		Preload("RoomType").
		Preload("Rooms").
		Preload("Rooms.Room").
		First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("load booking %d: %w", id, err)
	}
	if booking.Rooms == nil {
		booking.Rooms = []models.BookingRoom{}
	}
	return &booking, nil
}

// GetAll lists bookings newest first with relations loaded.
func (s *BookingService) GetAll() ([]models.Booking, error) {
	var list []models.Booking
	err := s.DB.
		Preload("Client").
		Preload("RoomType").
		Preload("Rooms").
		Preload("Rooms.Room").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	for i := range list {
		if list[i].Rooms == nil {
			list[i].Rooms = []models.BookingRoom{}
		}
	}
	return list, nil
}

// Legal forward moves of the booking state machine. Cancelled is reachable
// from every non-terminal status via the same table.
var nextStatuses = map[string][]string{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingCheckedIn, models.BookingCancelled},
	models.BookingCheckedIn: {models.BookingCheckedOut, models.BookingCancelled},
}

func canTransition(from, to string) bool {
	for _, allowed := range nextStatuses[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// UpdateStatus applies a staff-driven status and/or payment-status change.
//
// Payment updates are idempotent: re-marking a paid booking paid is a no-op
// success, and the paid timestamp is stamped exactly once. Entering
// checked-out fires a best-effort cleaning alert listing the booking's room
// numbers; the rooms themselves are not released here, the front desk flips
// occupancy through the room endpoints.
func (s *BookingService) UpdateStatus(id uint, status, paymentStatus string) (*models.Booking, error) {
	booking, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	checkedOut := false

	if status != "" && status != booking.Status {
		if !models.ValidBookingStatus(status) {
			return nil, ErrInvalidStatus
		}
		if !canTransition(booking.Status, status) {
			return nil, ErrInvalidTransition
		}
		updates["status"] = status
		checkedOut = status == models.BookingCheckedOut
	}

	if paymentStatus != "" {
		if !models.ValidPaymentStatus(paymentStatus) {
			return nil, ErrInvalidStatus
		}
		if paymentStatus != booking.PaymentStatus {
			updates["payment_status"] = paymentStatus
			if paymentStatus == models.PaymentPaid && booking.PaidAt == nil {
				updates["paid_at"] = time.Now().UTC()
			}
		}
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&models.Booking{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update booking %d: %w", id, err)
		}
	}

	booking, err = s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if checkedOut {
		numbers := roomNumbers(booking)
		go func() {
			msg := fmt.Sprintf("Booking %s checked out, rooms need cleaning: %s",
				booking.ReferenceCode, strings.Join(numbers, ", "))
			if err := s.Notifier.Notify(msg); err != nil {
				s.Log.Error().Err(err).Uint("booking_id", booking.ID).Msg("cleaning alert failed")
			}
		}()
	}

	return booking, nil
}

// Cancel is the guest-facing cancellation. It is only permitted while the
// booking is unpaid and check-in has not arrived. Released rooms go back to
// available without being dirtied: the guest never occupied them.
func (s *BookingService) Cancel(id, clientID uint) (*models.Booking, error) {
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		err := tx.Clauses(lockingClause(tx)...).Preload("Rooms").First(&booking, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("load booking %d: %w", id, err)
		}
		if booking.ClientID != clientID {
			// Do not reveal other guests' bookings.
			return ErrBookingNotFound
		}
		if booking.IsTerminal() {
			return ErrNotCancellable
		}
		if booking.PaymentStatus != models.PaymentPending {
			return ErrNotCancellable
		}
		if !booking.CheckIn.After(utils.Today()) {
			return ErrNotCancellable
		}

		if err := tx.Model(&booking).Update("status", models.BookingCancelled).Error; err != nil {
			return fmt.Errorf("cancel booking %d: %w", id, err)
		}
		return releaseRooms(tx, booking.RoomIDs())
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetByID(id)
}

// Delete is the staff-only hard delete, legal only from pending or
// cancelled. Attached rooms are released before the record goes away.
func (s *BookingService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		err := tx.Preload("Rooms").First(&booking, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("load booking %d: %w", id, err)
		}
		if booking.Status != models.BookingPending && booking.Status != models.BookingCancelled {
			return ErrDeleteNotAllowed
		}

		if err := releaseRooms(tx, booking.RoomIDs()); err != nil {
			return err
		}
		if err := tx.Unscoped().Where("booking_id = ?", id).Delete(&models.BookingRoom{}).Error; err != nil {
			return fmt.Errorf("delete booking rooms: %w", err)
		}
		if err := tx.Unscoped().Delete(&models.Booking{}, id).Error; err != nil {
			return fmt.Errorf("delete booking %d: %w", id, err)
		}
		return nil
	})
}

// releaseRooms flips occupancy back to available without touching the
// cleaning axis. The dirty-on-release rule lives in the room service's
// general occupancy-update path, not here.
func releaseRooms(tx *gorm.DB, roomIDs []uint) error {
	if len(roomIDs) == 0 {
		return nil
	}
	if err := tx.Model(&models.Room{}).
		Where("id IN ?", roomIDs).
		Update("occupancy_status", models.OccupancyAvailable).Error; err != nil {
		return fmt.Errorf("release rooms: %w", err)
	}
	return nil
}

// lockingClause returns a FOR UPDATE clause on dialects that support it.
func lockingClause(tx *gorm.DB) []clause.Expression {
	if tx.Dialector.Name() == "mysql" {
		return []clause.Expression{clause.Locking{Strength: "UPDATE"}}
	}
	return nil
}
