package services

import "errors"

// Expected business conditions. Controllers map these with errors.Is:
// validation and rule conflicts to 400, not-found to 404; anything else is a
// 500. Services never panic on expected conditions.
var (
	ErrInvalidDateRange = errors.New("check-out must be after check-in")
	ErrCheckInPast      = errors.New("check-in date cannot be in the past")
	ErrInvalidRoomCount = errors.New("rooms requested must be a positive number")

	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrRoomTypeInactive = errors.New("room type is not active")
	ErrRoomNotFound     = errors.New("room not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrClientNotFound   = errors.New("client not found")

	ErrCapacityExceeded = errors.New("guest count exceeds room type capacity")
	ErrNotEnoughRooms   = errors.New("not enough rooms available for the requested dates")

	ErrInvalidTransition = errors.New("illegal booking status transition")
	ErrInvalidStatus     = errors.New("unknown status value")
	ErrNotCancellable    = errors.New("booking can no longer be cancelled")
	ErrDeleteNotAllowed  = errors.New("only pending or cancelled bookings can be deleted")
	ErrRoomInUse         = errors.New("room is attached to an active booking")

	ErrDuplicateRoomNumber = errors.New("room number already exists")
	ErrDuplicateRoomType   = errors.New("room type name already exists")
	ErrDuplicateAccount    = errors.New("account with this email or username already exists")
	ErrBadCredentials      = errors.New("invalid username or password")
)
