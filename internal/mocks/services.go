package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/seu-repo/concierge-ai/internal/domain"
	"github.com/seu-repo/concierge-ai/internal/ports"
)

// MockLanguageDetector is a mock implementation of LanguageDetector interface
type MockLanguageDetector struct {
	DetectFunc func(text string) domain.DetectionResult
}

func (m *MockLanguageDetector) Detect(text string) domain.DetectionResult {
	if m.DetectFunc != nil {
		return m.DetectFunc(text)
	}
	return domain.DetectionResult{Language: domain.LangEnglish, Confidence: 1.0}
}

// MockIntentClassifier is a mock implementation of IntentClassifier interface
type MockIntentClassifier struct {
	ClassifyFunc func(ctx context.Context, text string, session *domain.Session) domain.IntentResult
	SpecsFunc    func() []domain.IntentSpec
}

func (m *MockIntentClassifier) Classify(ctx context.Context, text string, session *domain.Session) domain.IntentResult {
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, text, session)
	}
	return domain.IntentResult{
		Label:      domain.IntentInformationRequest,
		Confidence: 0.5,
		Provenance: domain.ProvenanceDefault,
	}
}

func (m *MockIntentClassifier) Specs() []domain.IntentSpec {
	if m.SpecsFunc != nil {
		return m.SpecsFunc()
	}
	return domain.DefaultIntentSpecs()
}

// MockClassificationProvider is a mock implementation of ClassificationProvider interface
type MockClassificationProvider struct {
	ClassifyFunc func(ctx context.Context, prompt string) (string, float64, error)
	Calls        int
}

func (m *MockClassificationProvider) Classify(ctx context.Context, prompt string) (string, float64, error) {
	m.Calls++
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, prompt)
	}
	return domain.IntentInformationRequest, 0.6, nil
}

// MockEntityExtractor is a mock implementation of EntityExtractor interface
type MockEntityExtractor struct {
	ExtractFunc func(text string, activeIntent *domain.IntentSpec, language string, ref time.Time) []domain.EntityMatch
}

func (m *MockEntityExtractor) Extract(text string, activeIntent *domain.IntentSpec, language string, ref time.Time) []domain.EntityMatch {
	if m.ExtractFunc != nil {
		return m.ExtractFunc(text, activeIntent, language, ref)
	}
	return nil
}

// MockExecutor is a mock implementation of Executor interface
type MockExecutor struct {
	ExecuteFunc func(ctx context.Context, intentLabel string, slots map[string]domain.SlotValue) (*domain.ExecutionResult, error)
	Calls       []string
}

func (m *MockExecutor) Execute(ctx context.Context, intentLabel string, slots map[string]domain.SlotValue) (*domain.ExecutionResult, error) {
	m.Calls = append(m.Calls, intentLabel)
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, intentLabel, slots)
	}
	return &domain.ExecutionResult{Success: true, Reference: "BK2603150AF1"}, nil
}

// MockTurnLogger is a mock implementation of TurnLogger interface.
// Events are recorded under a mutex because the engine logs asynchronously.
type MockTurnLogger struct {
	mu     sync.Mutex
	Events []ports.TurnEvent
}

func (m *MockTurnLogger) LogTurn(event ports.TurnEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

func (m *MockTurnLogger) Logged() []ports.TurnEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.TurnEvent, len(m.Events))
	copy(out, m.Events)
	return out
}

// MockBookingService is a mock implementation of BookingService interface
type MockBookingService struct {
	ExecuteFunc       func(ctx context.Context, intentLabel string, slots map[string]domain.SlotValue) (*domain.ExecutionResult, error)
	GetBookingFunc    func(ctx context.Context, reference string) (*domain.Booking, error)
	ListBookingsFunc  func(ctx context.Context, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error)
	CancelBookingFunc func(ctx context.Context, reference string) error
}

func (m *MockBookingService) Execute(ctx context.Context, intentLabel string, slots map[string]domain.SlotValue) (*domain.ExecutionResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, intentLabel, slots)
	}
	return &domain.ExecutionResult{Success: true}, nil
}

func (m *MockBookingService) GetBooking(ctx context.Context, reference string) (*domain.Booking, error) {
	if m.GetBookingFunc != nil {
		return m.GetBookingFunc(ctx, reference)
	}
	return nil, nil
}

func (m *MockBookingService) ListBookings(ctx context.Context, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error) {
	if m.ListBookingsFunc != nil {
		return m.ListBookingsFunc(ctx, status, limit, offset)
	}
	return []domain.Booking{}, nil
}

func (m *MockBookingService) CancelBooking(ctx context.Context, reference string) error {
	if m.CancelBookingFunc != nil {
		return m.CancelBookingFunc(ctx, reference)
	}
	return nil
}

// MockDialogueEngine is a mock implementation of DialogueEngine interface
type MockDialogueEngine struct {
	ProcessTurnFunc  func(ctx context.Context, req ports.TurnRequest) (*ports.TurnResult, error)
	CloseSessionFunc func(ctx context.Context, sessionID string) error
}

func (m *MockDialogueEngine) ProcessTurn(ctx context.Context, req ports.TurnRequest) (*ports.TurnResult, error) {
	if m.ProcessTurnFunc != nil {
		return m.ProcessTurnFunc(ctx, req)
	}
	return &ports.TurnResult{
		SessionID:    req.SessionID,
		ResponseText: "ok",
		State:        domain.StateGreeting,
	}, nil
}

func (m *MockDialogueEngine) CloseSession(ctx context.Context, sessionID string) error {
	if m.CloseSessionFunc != nil {
		return m.CloseSessionFunc(ctx, sessionID)
	}
	return nil
}
