package domain

import "time"

// BookingStatus enumerates lifecycle states for bookings.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in-progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// ServiceType enumerates the offered home services.
type ServiceType string

const (
	ServiceTypePlumbing   ServiceType = "plumbing"
	ServiceTypeElectrical ServiceType = "electrical"
	ServiceTypeACRepair   ServiceType = "ac-repair"
	ServiceTypeCleaning   ServiceType = "cleaning"
	ServiceTypePainting   ServiceType = "painting"
	ServiceTypeCarpentry  ServiceType = "carpentry"
)

// TimeSlot enumerates preferred visit windows.
type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
	TimeSlotEvening   TimeSlot = "evening"
)

// Urgency is the customer-declared priority; informational only.
type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyMedium    Urgency = "medium"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

// Address holds the service location.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// Booking is the aggregate for customer service requests. Customer-supplied
// fields are immutable after creation; only Status, EstimatedCost and Notes
// are admin-mutable.
type Booking struct {
	ID                 string
	CustomerName       string
	Email              string
	Phone              string
	Address            Address
	ServiceType        ServiceType
	ServiceDescription string
	PreferredDate      time.Time
	PreferredTime      TimeSlot
	Urgency            Urgency
	Status             BookingStatus
	EstimatedCost      *float64
	Notes              *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

var bookingStatuses = map[BookingStatus]struct{}{
	BookingStatusPending:    {},
	BookingStatusConfirmed:  {},
	BookingStatusInProgress: {},
	BookingStatusCompleted:  {},
	BookingStatusCancelled:  {},
}

var serviceTypes = map[ServiceType]struct{}{
	ServiceTypePlumbing:   {},
	ServiceTypeElectrical: {},
	ServiceTypeACRepair:   {},
	ServiceTypeCleaning:   {},
	ServiceTypePainting:   {},
	ServiceTypeCarpentry:  {},
}

var timeSlots = map[TimeSlot]struct{}{
	TimeSlotMorning:   {},
	TimeSlotAfternoon: {},
	TimeSlotEvening:   {},
}

var urgencies = map[Urgency]struct{}{
	UrgencyLow:       {},
	UrgencyMedium:    {},
	UrgencyHigh:      {},
	UrgencyEmergency: {},
}

// ValidStatus reports whether s is one of the five lifecycle states.
func ValidStatus(s BookingStatus) bool {
	_, ok := bookingStatuses[s]
	return ok
}

// ValidServiceType reports whether t is an offered service.
func ValidServiceType(t ServiceType) bool {
	_, ok := serviceTypes[t]
	return ok
}

// ValidTimeSlot reports whether t is a recognized visit window.
func ValidTimeSlot(t TimeSlot) bool {
	_, ok := timeSlots[t]
	return ok
}

// ValidUrgency reports whether u is a recognized urgency level.
func ValidUrgency(u Urgency) bool {
	_, ok := urgencies[u]
	return ok
}

// statusTransitions is the regular lifecycle graph. Writes are not restricted
// to it; irregular transitions are permitted and logged by the caller.
var statusTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusInProgress, BookingStatusCancelled},
	BookingStatusInProgress: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCompleted:  nil,
	BookingStatusCancelled:  nil,
}

// RegularTransition reports whether moving from one status to another follows
// the expected lifecycle. Same-status writes count as regular.
func RegularTransition(from, to BookingStatus) bool {
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
