package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, status := range []BookingStatus{
		BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled,
	} {
		assert.True(t, ValidStatus(status), string(status))
	}
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
}

func TestValidServiceType(t *testing.T) {
	for _, serviceType := range []ServiceType{
		ServiceTypePlumbing, ServiceTypeElectrical, ServiceTypeACRepair,
		ServiceTypeCleaning, ServiceTypePainting, ServiceTypeCarpentry,
	} {
		assert.True(t, ValidServiceType(serviceType), string(serviceType))
	}
	assert.False(t, ValidServiceType("roofing"))
}

func TestValidTimeSlotAndUrgency(t *testing.T) {
	assert.True(t, ValidTimeSlot(TimeSlotMorning))
	assert.True(t, ValidTimeSlot(TimeSlotEvening))
	assert.False(t, ValidTimeSlot("midnight"))

	assert.True(t, ValidUrgency(UrgencyEmergency))
	assert.False(t, ValidUrgency("urgent"))
}

func TestRegularTransition(t *testing.T) {
	regular := []struct{ from, to BookingStatus }{
		{BookingStatusPending, BookingStatusConfirmed},
		{BookingStatusPending, BookingStatusCancelled},
		{BookingStatusConfirmed, BookingStatusInProgress},
		{BookingStatusConfirmed, BookingStatusCancelled},
		{BookingStatusInProgress, BookingStatusCompleted},
		{BookingStatusInProgress, BookingStatusCancelled},
		{BookingStatusPending, BookingStatusPending},
	}
	for _, tc := range regular {
		assert.True(t, RegularTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	irregular := []struct{ from, to BookingStatus }{
		{BookingStatusPending, BookingStatusCompleted},
		{BookingStatusCompleted, BookingStatusPending},
		{BookingStatusCancelled, BookingStatusConfirmed},
		{BookingStatusConfirmed, BookingStatusPending},
	}
	for _, tc := range irregular {
		assert.False(t, RegularTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
