package ports

import (
	"context"
	"time"

	"github.com/seu-repo/concierge-ai/internal/domain"
)

// LanguageDetector classifies the language of an utterance. Pure; never
// fails. Unrecognized input yields the configured default language with
// Fallback set.
type LanguageDetector interface {
	Detect(text string) domain.DetectionResult
}

// IntentClassifier labels an utterance with an intent via the tiered
// rule / provider / default pipeline.
type IntentClassifier interface {
	Classify(ctx context.Context, text string, session *domain.Session) domain.IntentResult
	Specs() []domain.IntentSpec
}

// ClassificationProvider is the narrow contract the classifier's assisted
// fallback tier requires from an external model provider. Implementations
// must honor ctx cancellation; an unknown label or malformed payload is a
// provider error.
type ClassificationProvider interface {
	Classify(ctx context.Context, prompt string) (label string, confidence float64, err error)
}

// EntityExtractor pulls typed, validated values out of raw text. The
// reference clock comes from the caller so extraction stays deterministic.
type EntityExtractor interface {
	Extract(text string, activeIntent *domain.IntentSpec, language string, ref time.Time) []domain.EntityMatch
}

// TurnRequest is one utterance handed to the engine
type TurnRequest struct {
	SessionID string
	Utterance string
	// ReferenceClock anchors relative temporal expressions
	ReferenceClock time.Time
}

// TurnResult is the engine's per-turn contract with the transport layer
type TurnResult struct {
	ResponseText string               `json:"message"`
	IntentLabel  string               `json:"intent"`
	Confidence   float64              `json:"confidence"`
	LanguageCode string               `json:"language"`
	MissingSlots []string             `json:"missing_slots"`
	State        domain.DialogueState `json:"state"`
	SessionID    string               `json:"session_id"`
	TurnCount    int                  `json:"turn_count"`
}

// DialogueEngine drives the slot-filling conversation turn by turn
type DialogueEngine interface {
	ProcessTurn(ctx context.Context, req TurnRequest) (*TurnResult, error)
	CloseSession(ctx context.Context, sessionID string) error
}

// Executor is the external execution collaborator invoked when a confirmed
// intent must be carried out (booking creation, cancellation, ...).
type Executor interface {
	Execute(ctx context.Context, intentLabel string, slots map[string]domain.SlotValue) (*domain.ExecutionResult, error)
}

// TurnEvent is published per processed turn for analytics. The engine never
// blocks on logger success.
type TurnEvent struct {
	SessionID     string               `json:"session_id"`
	Turn          int                  `json:"turn"`
	Utterance     string               `json:"utterance"`
	Intent        domain.IntentResult  `json:"intent"`
	Entities      []domain.EntityMatch `json:"entities"`
	StateFrom     domain.DialogueState `json:"state_from"`
	StateTo       domain.DialogueState `json:"state_to"`
	Language      string               `json:"language"`
	ProcessedAt   time.Time            `json:"processed_at"`
	ProcessTimeMs int64                `json:"process_time_ms"`
}

// TurnLogger receives per-turn analytics events
type TurnLogger interface {
	LogTurn(event TurnEvent)
}

// EmailService sends transactional mail (booking confirmations)
type EmailService interface {
	Send(ctx context.Context, to, subject, body string) error
	SendTemplate(ctx context.Context, to, templateName string, data map[string]interface{}) error
}

// BookingService is the booking-side business surface exposed to the HTTP
// adapter alongside the engine's Executor role.
type BookingService interface {
	Executor
	GetBooking(ctx context.Context, reference string) (*domain.Booking, error)
	ListBookings(ctx context.Context, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error)
	CancelBooking(ctx context.Context, reference string) error
}

// RoomService answers availability and catalog questions
type RoomService interface {
	CheckAvailability(ctx context.Context, checkIn, checkOut time.Time, roomType string) ([]domain.Room, error)
	RoomTypes() map[string]RoomTypeInfo
}

// RoomTypeInfo describes one bookable room category
type RoomTypeInfo struct {
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Capacity  int      `json:"capacity"`
	Amenities []string `json:"amenities"`
}
