package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStayNights(t *testing.T) {
	jun1 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	jun3 := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, StayNights(jun1, jun3))
	assert.Equal(t, 1, StayNights(jun1, jun1.AddDate(0, 0, 1)))
	// Partial days round up.
	assert.Equal(t, 2, StayNights(jun1, jun3.Add(-time.Hour)))
}

func TestTotalPrice(t *testing.T) {
	assert.Equal(t, 20000.0, TotalPrice(5000, 2, 2))
	assert.Equal(t, 5000.0, TotalPrice(5000, 1, 1))
	assert.Equal(t, 0.0, TotalPrice(5000, 0, 2))
}
