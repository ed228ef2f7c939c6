package services

import (
	"time"

	"innkeeper-backend/utils"
)

// StayNights is the number of nights billed for a half-open
// [checkIn, checkOut) stay.
func StayNights(checkIn, checkOut time.Time) int {
	return utils.Nights(checkIn, checkOut)
}

// TotalPrice is the authoritative stay price: nightly rate times nights
// times rooms. No taxes, discounts or seasonal rates.
func TotalPrice(pricePerNight float64, nights, rooms int) float64 {
	return pricePerNight * float64(nights) * float64(rooms)
}
