package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/quickfix/booking-service/internal/domain"
	apperrors "github.com/quickfix/booking-service/pkg/util"
)

var (
	emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)
	phonePattern = regexp.MustCompile(`^[+]?[1-9]\d{0,15}$`)
)

// BookingSubmission carries the raw fields of a customer booking request.
type BookingSubmission struct {
	CustomerName       string
	Email              string
	Phone              string
	Address            domain.Address
	ServiceType        string
	ServiceDescription string
	PreferredDate      string
	PreferredTime      string
	Urgency            string
}

// BookingDraft is a normalized, validated submission ready for persistence.
type BookingDraft struct {
	CustomerName       string
	Email              string
	Phone              string
	Address            domain.Address
	ServiceType        domain.ServiceType
	ServiceDescription string
	PreferredDate      time.Time
	PreferredTime      domain.TimeSlot
	Urgency            domain.Urgency
}

// ValidateBooking checks every rule independently so all violations are
// reported together. On success it returns the normalized draft: fields
// trimmed, email lower-cased, urgency defaulted to medium.
func ValidateBooking(sub BookingSubmission, now time.Time) (*BookingDraft, error) {
	var fields []apperrors.FieldError
	draft := &BookingDraft{}

	// Length bounds count characters, not bytes.
	name := strings.TrimSpace(sub.CustomerName)
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		fields = append(fields, apperrors.FieldError{
			Field:   "customerName",
			Message: "Customer name must be between 2 and 100 characters",
		})
	}
	draft.CustomerName = name

	email := strings.ToLower(strings.TrimSpace(sub.Email))
	if !emailPattern.MatchString(email) {
		fields = append(fields, apperrors.FieldError{
			Field:   "email",
			Message: "Please provide a valid email address",
		})
	}
	draft.Email = email

	phone := strings.TrimSpace(sub.Phone)
	if !phonePattern.MatchString(phone) {
		fields = append(fields, apperrors.FieldError{
			Field:   "phone",
			Message: "Please provide a valid phone number",
		})
	}
	draft.Phone = phone

	draft.Address = domain.Address{
		Street:  strings.TrimSpace(sub.Address.Street),
		City:    strings.TrimSpace(sub.Address.City),
		State:   strings.TrimSpace(sub.Address.State),
		ZipCode: strings.TrimSpace(sub.Address.ZipCode),
	}
	for _, part := range []struct {
		field, value, label string
	}{
		{"address.street", draft.Address.Street, "Street address"},
		{"address.city", draft.Address.City, "City"},
		{"address.state", draft.Address.State, "State"},
		{"address.zipCode", draft.Address.ZipCode, "ZIP code"},
	} {
		if part.value == "" {
			fields = append(fields, apperrors.FieldError{
				Field:   part.field,
				Message: fmt.Sprintf("%s is required", part.label),
			})
		}
	}

	serviceType := domain.ServiceType(strings.TrimSpace(sub.ServiceType))
	if !domain.ValidServiceType(serviceType) {
		fields = append(fields, apperrors.FieldError{
			Field:   "serviceType",
			Message: "Please select a valid service type",
		})
	}
	draft.ServiceType = serviceType

	description := strings.TrimSpace(sub.ServiceDescription)
	if n := utf8.RuneCountInString(description); n < 10 || n > 500 {
		fields = append(fields, apperrors.FieldError{
			Field:   "serviceDescription",
			Message: "Service description must be between 10 and 500 characters",
		})
	}
	draft.ServiceDescription = description

	date, err := parseDate(sub.PreferredDate)
	switch {
	case err != nil:
		fields = append(fields, apperrors.FieldError{
			Field:   "preferredDate",
			Message: "Preferred date must be a valid date",
		})
	case !date.After(now):
		fields = append(fields, apperrors.FieldError{
			Field:   "preferredDate",
			Message: "Preferred date must be in the future",
		})
	default:
		draft.PreferredDate = date
	}

	slot := domain.TimeSlot(strings.TrimSpace(sub.PreferredTime))
	if !domain.ValidTimeSlot(slot) {
		fields = append(fields, apperrors.FieldError{
			Field:   "preferredTime",
			Message: "Please select a valid time slot",
		})
	}
	draft.PreferredTime = slot

	urgency := domain.Urgency(strings.TrimSpace(sub.Urgency))
	if urgency == "" {
		urgency = domain.UrgencyMedium
	}
	if !domain.ValidUrgency(urgency) {
		fields = append(fields, apperrors.FieldError{
			Field:   "urgency",
			Message: "Please select a valid urgency level",
		})
	}
	draft.Urgency = urgency

	if len(fields) > 0 {
		return nil, apperrors.NewValidationError("Validation failed", fields)
	}
	return draft, nil
}

// StatusUpdate carries an admin mutation with field presence tracked, so an
// omitted field is distinguishable from an explicit empty value.
type StatusUpdate struct {
	Status        domain.BookingStatus
	Notes         *string
	EstimatedCost *float64
}

// ValidateStatusUpdate checks the admin-mutable fields.
func ValidateStatusUpdate(update StatusUpdate) error {
	var fields []apperrors.FieldError

	if !domain.ValidStatus(update.Status) {
		fields = append(fields, apperrors.FieldError{
			Field:   "status",
			Message: "Please provide a valid status",
		})
	}
	if update.EstimatedCost != nil && *update.EstimatedCost < 0 {
		fields = append(fields, apperrors.FieldError{
			Field:   "estimatedCost",
			Message: "Cost cannot be negative",
		})
	}
	if update.Notes != nil && utf8.RuneCountInString(*update.Notes) > 1000 {
		fields = append(fields, apperrors.FieldError{
			Field:   "notes",
			Message: "Notes cannot exceed 1000 characters",
		})
	}

	if len(fields) > 0 {
		return apperrors.NewValidationError("Validation failed", fields)
	}
	return nil
}

// parseDate accepts RFC3339 timestamps and bare dates.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
