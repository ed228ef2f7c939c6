package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBookingReference(t *testing.T) {
	staff := NewBookingReference(StaffBookingPrefix)
	assert.True(t, strings.HasPrefix(staff, "RB-"))
	assert.Len(t, staff, 13)

	guest := NewBookingReference("")
	assert.True(t, strings.HasPrefix(guest, "BK-"))

	assert.NotEqual(t, NewBookingReference("BK"), NewBookingReference("BK"))
}
