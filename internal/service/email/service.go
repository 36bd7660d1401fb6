package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/domain"
)

// Provider defines the interface for email providers
type Provider interface {
	Send(ctx context.Context, to, subject, body string, isHTML bool) error
}

// Config holds email service configuration
type Config struct {
	// Provider type: "sendgrid" or "smtp"
	Provider string

	// From email address
	FromEmail string
	FromName  string

	// SendGrid configuration
	SendGridAPIKey string

	// SMTP configuration (for Mailhog or other SMTP servers)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPUseTLS   bool

	// HotelName appears in subjects and template headers
	HotelName string
	BaseURL   string
}

// DefaultConfig returns a default configuration for development (Mailhog)
func DefaultConfig() *Config {
	return &Config{
		Provider:   "smtp",
		FromEmail:  "reservations@grandpalace.example",
		FromName:   "Grand Palace Hotel",
		HotelName:  "Grand Palace Hotel",
		SMTPHost:   "localhost",
		SMTPPort:   1025, // Mailhog default port
		SMTPUseTLS: false,
		BaseURL:    "http://localhost:3000",
	}
}

// Service implements the EmailService interface
type Service struct {
	config    *Config
	provider  Provider
	templates map[string]*template.Template
	log       *zap.Logger
}

// NewService creates a new email service
func NewService(config *Config, log *zap.Logger) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}

	s := &Service{
		config:    config,
		templates: make(map[string]*template.Template),
		log:       log,
	}

	// Initialize provider
	switch config.Provider {
	case "sendgrid":
		if config.SendGridAPIKey == "" {
			return nil, fmt.Errorf("SendGrid API key is required")
		}
		s.provider = NewSendGridProvider(config.SendGridAPIKey, config.FromEmail, config.FromName)
	case "smtp":
		s.provider = NewSMTPProvider(
			config.SMTPHost,
			config.SMTPPort,
			config.SMTPUsername,
			config.SMTPPassword,
			config.FromEmail,
			config.FromName,
			config.SMTPUseTLS,
		)
	default:
		return nil, fmt.Errorf("unknown email provider: %s", config.Provider)
	}

	// Load templates
	s.loadTemplates()

	return s, nil
}

// loadTemplates loads all email templates
func (s *Service) loadTemplates() {
	s.templates["booking_confirmation"] = template.Must(template.New("booking_confirmation").Parse(bookingConfirmationTemplate))
	s.templates["booking_cancelled"] = template.Must(template.New("booking_cancelled").Parse(bookingCancelledTemplate))
	s.templates["reservation_confirmation"] = template.Must(template.New("reservation_confirmation").Parse(reservationConfirmationTemplate))
}

// Send sends a generic email
func (s *Service) Send(ctx context.Context, to, subject, body string) error {
	s.log.Info("Sending email",
		zap.String("to", to),
		zap.String("subject", subject),
	)

	if err := s.provider.Send(ctx, to, subject, body, false); err != nil {
		s.log.Error("Failed to send email",
			zap.String("to", to),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SendHTML sends an HTML email
func (s *Service) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	s.log.Info("Sending HTML email",
		zap.String("to", to),
		zap.String("subject", subject),
	)

	if err := s.provider.Send(ctx, to, subject, htmlBody, true); err != nil {
		s.log.Error("Failed to send HTML email",
			zap.String("to", to),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send HTML email: %w", err)
	}

	return nil
}

// SendTemplate sends an email using a template
func (s *Service) SendTemplate(ctx context.Context, to, templateName string, data map[string]interface{}) error {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return fmt.Errorf("template not found: %s", templateName)
	}

	if data == nil {
		data = make(map[string]interface{})
	}
	data["BaseURL"] = s.config.BaseURL
	data["HotelName"] = s.config.HotelName

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject, ok := data["Subject"].(string)
	if !ok {
		subject = fmt.Sprintf("Notification from %s", s.config.HotelName)
	}

	return s.SendHTML(ctx, to, subject, buf.String())
}

// SendBookingConfirmation notifies the guest that a room booking went
// through, with the reference and the stay details.
func (s *Service) SendBookingConfirmation(ctx context.Context, guest *domain.Guest, booking *domain.Booking, roomType string) error {
	if guest.Email == "" {
		return nil
	}
	data := map[string]interface{}{
		"Subject":     fmt.Sprintf("Booking Confirmed: %s", booking.BookingReference),
		"GuestName":   guest.Name,
		"Reference":   booking.BookingReference,
		"RoomType":    roomType,
		"CheckIn":     booking.CheckInDate.Format("Monday, 02 Jan 2006"),
		"CheckOut":    booking.CheckOutDate.Format("Monday, 02 Jan 2006"),
		"Nights":      booking.NumberOfNights,
		"Guests":      booking.NumberOfGuests,
		"Total":       fmt.Sprintf("%.2f", booking.TotalAmount),
		"Tax":         fmt.Sprintf("%.2f", booking.TaxAmount),
		"FinalAmount": fmt.Sprintf("%.2f", booking.FinalAmount),
	}

	return s.SendTemplate(ctx, guest.Email, "booking_confirmation", data)
}

// SendBookingCancellation confirms a cancellation to the guest
func (s *Service) SendBookingCancellation(ctx context.Context, guest *domain.Guest, booking *domain.Booking) error {
	if guest.Email == "" {
		return nil
	}
	data := map[string]interface{}{
		"Subject":   fmt.Sprintf("Booking Cancelled: %s", booking.BookingReference),
		"GuestName": guest.Name,
		"Reference": booking.BookingReference,
		"CheckIn":   booking.CheckInDate.Format("Monday, 02 Jan 2006"),
	}

	return s.SendTemplate(ctx, guest.Email, "booking_cancelled", data)
}

// SendReservationConfirmation covers dining and event reservations
func (s *Service) SendReservationConfirmation(ctx context.Context, to string, r *domain.Reservation) error {
	if to == "" {
		return nil
	}
	kind := "Dining Reservation"
	if r.Kind == domain.ReservationEvent {
		kind = "Event Hall Booking"
	}
	data := map[string]interface{}{
		"Subject":   fmt.Sprintf("%s Confirmed: %s", kind, r.Reference),
		"GuestName": r.GuestName,
		"Kind":      kind,
		"Reference": r.Reference,
		"Date":      r.Date.Format("Monday, 02 Jan 2006"),
		"Detail":    r.Detail,
		"PartySize": r.PartySize,
	}

	return s.SendTemplate(ctx, to, "reservation_confirmation", data)
}
