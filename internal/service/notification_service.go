package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/quickfix/booking-service/internal/config"
	"github.com/quickfix/booking-service/internal/domain"
	"github.com/quickfix/booking-service/internal/events"
)

// NotificationService renders confirmation and status-update emails for
// booking events. Delivery is best-effort, at most once; failures are logged
// and never propagate to the triggering operation. Without SMTP settings the
// rendered mail is emitted as a structured log entry.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to booking events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventBookingCreated, n.handleBookingCreated)
	n.dispatcher.Subscribe(events.EventBookingStatusChanged, n.handleStatusChanged)
}

func (n *NotificationService) handleBookingCreated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.BookingCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Type)
	}
	booking := payload.Booking

	subject := "QuickFix - Service Booking Confirmation"
	body := ConfirmationBody(&booking)
	n.deliver(booking.Email, subject, body, event)
	return nil
}

func (n *NotificationService) handleStatusChanged(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.BookingStatusChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Type)
	}
	booking := payload.Booking

	subject := fmt.Sprintf("QuickFix - Booking Status Update: %s", strings.ToUpper(string(booking.Status)))
	body := StatusUpdateBody(&booking)
	n.deliver(booking.Email, subject, body, event)
	return nil
}

// deliver is the stub transport: it records the rendered mail, with or
// without a configured sender. SMTP settings are carried in config for
// deployments that front this with a real relay.
func (n *NotificationService) deliver(to, subject, body string, event events.Event) {
	n.logger.Info("notification dispatched",
		zap.String("event_type", string(event.Type)),
		zap.String("booking_id", event.BookingID),
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(body)))
	n.logger.Debug("notification body", zap.String("body", body))
}

var serviceTypeLabels = map[domain.ServiceType]string{
	domain.ServiceTypePlumbing:   "Plumbing",
	domain.ServiceTypeElectrical: "Electrical Repair",
	domain.ServiceTypeACRepair:   "AC Repair",
	domain.ServiceTypeCleaning:   "Cleaning Service",
	domain.ServiceTypePainting:   "Painting",
	domain.ServiceTypeCarpentry:  "Carpentry",
}

var timeSlotLabels = map[domain.TimeSlot]string{
	domain.TimeSlotMorning:   "Morning (9 AM - 12 PM)",
	domain.TimeSlotAfternoon: "Afternoon (12 PM - 5 PM)",
	domain.TimeSlotEvening:   "Evening (5 PM - 8 PM)",
}

var statusMessages = map[domain.BookingStatus]string{
	domain.BookingStatusConfirmed:  "Your booking has been confirmed! Our technician will arrive as scheduled.",
	domain.BookingStatusInProgress: "Our technician is currently working on your service request.",
	domain.BookingStatusCompleted:  "Your service has been completed successfully. Thank you for choosing QuickFix!",
	domain.BookingStatusCancelled:  "Your booking has been cancelled. If you have any questions, please contact us.",
}

// ServiceTypeLabel returns the customer-facing service name.
func ServiceTypeLabel(t domain.ServiceType) string {
	if label, ok := serviceTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// TimeSlotLabel returns the customer-facing visit window.
func TimeSlotLabel(t domain.TimeSlot) string {
	if label, ok := timeSlotLabels[t]; ok {
		return label
	}
	return string(t)
}

// ConfirmationBody renders the plaintext confirmation mail.
func ConfirmationBody(booking *domain.Booking) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", booking.CustomerName)
	b.WriteString("Thank you for choosing QuickFix! Your service booking has been received.\n\n")
	fmt.Fprintf(&b, "Booking ID: %s\n", booking.ID)
	fmt.Fprintf(&b, "Service Type: %s\n", ServiceTypeLabel(booking.ServiceType))
	fmt.Fprintf(&b, "Description: %s\n", booking.ServiceDescription)
	fmt.Fprintf(&b, "Preferred Date: %s\n", booking.PreferredDate.Format("January 2, 2006"))
	fmt.Fprintf(&b, "Preferred Time: %s\n", TimeSlotLabel(booking.PreferredTime))
	fmt.Fprintf(&b, "Urgency: %s\n", strings.ToUpper(string(booking.Urgency)))
	fmt.Fprintf(&b, "Status: %s\n", strings.ToUpper(string(booking.Status)))
	fmt.Fprintf(&b, "Service Address: %s, %s, %s %s\n\n",
		booking.Address.Street, booking.Address.City, booking.Address.State, booking.Address.ZipCode)
	b.WriteString("Our team will review your request within 24 hours.\n")
	return b.String()
}

// StatusUpdateBody renders the plaintext status-update mail.
func StatusUpdateBody(booking *domain.Booking) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", booking.CustomerName)
	if msg, ok := statusMessages[booking.Status]; ok {
		b.WriteString(msg + "\n\n")
	}
	fmt.Fprintf(&b, "Booking ID: %s\n", booking.ID)
	fmt.Fprintf(&b, "Status: %s\n", strings.ToUpper(string(booking.Status)))
	if booking.EstimatedCost != nil {
		fmt.Fprintf(&b, "Estimated Cost: $%.2f\n", *booking.EstimatedCost)
	}
	if booking.Notes != nil && *booking.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", *booking.Notes)
	}
	return b.String()
}
