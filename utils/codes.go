package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Booking reference prefixes. Staff-entered bookings are distinguishable by
// their RB prefix.
const (
	GuestBookingPrefix = "BK"
	StaffBookingPrefix = "RB"
)

// NewBookingReference builds a reference code like "RB-1A2B3C4D". The suffix
// comes from a v4 UUID, which keeps collisions below the unique-index retry
// threshold in practice.
func NewBookingReference(prefix string) string {
	if prefix == "" {
		prefix = GuestBookingPrefix
	}
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("%s-%s", prefix, raw[:10])
}
