package intent

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/domain"
	"github.com/seu-repo/concierge-ai/internal/mocks"
)

func newTestClassifier(t *testing.T, provider *mocks.MockClassificationProvider, cfg Config) *Classifier {
	t.Helper()
	var c *Classifier
	var err error
	if provider != nil {
		c, err = NewClassifier(domain.DefaultIntentSpecs(), provider, cfg, zap.NewNop())
	} else {
		c, err = NewClassifier(domain.DefaultIntentSpecs(), nil, cfg, zap.NewNop())
	}
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	return c
}

func TestClassify_RuleTier(t *testing.T) {
	classifier := newTestClassifier(t, nil, Config{})
	ctx := context.Background()

	tests := []struct {
		text string
		want string
	}{
		{"Hello there", domain.IntentGreeting},
		{"I want to book a room for tonight", domain.IntentRoomBooking},
		{"what rooms do you have available", domain.IntentRoomInquiry},
		{"I need a dinner reservation", domain.IntentDiningReservation},
		{"can I rent a hall for a wedding event", domain.IntentEventBooking},
		{"cancel my booking please", domain.IntentBookingCancellation},
		{"I want to change my booking", domain.IntentBookingModification},
		{"this is terrible, I have a complaint", domain.IntentComplaint},
		{"thanks, goodbye", domain.IntentFarewell},
		{"do you allow pets", domain.IntentInformationRequest},
	}

	for _, tt := range tests {
		result := classifier.Classify(ctx, tt.text, nil)
		if result.Label != tt.want {
			t.Errorf("text %q: expected %q, got %q", tt.text, tt.want, result.Label)
		}
		if result.Provenance != domain.ProvenanceRule {
			t.Errorf("text %q: expected rule provenance, got %q", tt.text, result.Provenance)
		}
		if result.Confidence != 0.95 {
			t.Errorf("text %q: expected confidence 0.95, got %f", tt.text, result.Confidence)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	classifier := newTestClassifier(t, nil, Config{})
	ctx := context.Background()
	text := "I want to book a room and also cancel my booking"

	first := classifier.Classify(ctx, text, nil)
	for i := 0; i < 20; i++ {
		got := classifier.Classify(ctx, text, nil)
		if got != first {
			t.Fatalf("classification not deterministic: %+v vs %+v", first, got)
		}
	}
}

func TestClassify_PriorityTieBreak(t *testing.T) {
	// "cancel my booking" matches both cancellation (priority 15) and,
	// via "booking", nothing higher; the higher priority must win over
	// the greeting pattern triggered by "hello".
	classifier := newTestClassifier(t, nil, Config{})

	result := classifier.Classify(context.Background(), "hello, cancel my booking", nil)
	if result.Label != domain.IntentBookingCancellation {
		t.Errorf("expected cancellation to outrank greeting, got %q", result.Label)
	}
}

func TestClassify_DefaultTierWithoutProvider(t *testing.T) {
	classifier := newTestClassifier(t, nil, Config{})

	result := classifier.Classify(context.Background(), "xyzzy qwerty plugh", nil)
	if result.Label != DefaultFallbackIntent {
		t.Errorf("expected default intent, got %q", result.Label)
	}
	if result.Provenance != domain.ProvenanceDefault {
		t.Errorf("expected default provenance, got %q", result.Provenance)
	}
	if result.Confidence != 0.5 {
		t.Errorf("expected confidence 0.5, got %f", result.Confidence)
	}
}

func TestClassify_ProviderTier(t *testing.T) {
	provider := &mocks.MockClassificationProvider{
		ClassifyFunc: func(ctx context.Context, prompt string) (string, float64, error) {
			return domain.IntentRoomBooking, 0.8, nil
		},
	}
	classifier := newTestClassifier(t, provider, Config{})

	result := classifier.Classify(context.Background(), "какие-то неоднозначные слова", nil)
	if result.Label != domain.IntentRoomBooking {
		t.Errorf("expected provider label, got %q", result.Label)
	}
	if result.Provenance != domain.ProvenanceFallback {
		t.Errorf("expected fallback provenance, got %q", result.Provenance)
	}
	if provider.Calls != 1 {
		t.Errorf("expected one provider call, got %d", provider.Calls)
	}
}

func TestClassify_ProviderNotCalledWhenRulesMatch(t *testing.T) {
	provider := &mocks.MockClassificationProvider{}
	classifier := newTestClassifier(t, provider, Config{})

	classifier.Classify(context.Background(), "I want to book a room", nil)
	if provider.Calls != 0 {
		t.Errorf("provider must not be called when a rule matches, got %d calls", provider.Calls)
	}
}

func TestClassify_ProviderErrorFallsToDefault(t *testing.T) {
	provider := &mocks.MockClassificationProvider{
		ClassifyFunc: func(ctx context.Context, prompt string) (string, float64, error) {
			return "", 0, errors.New("upstream 500")
		},
	}
	classifier := newTestClassifier(t, provider, Config{})

	result := classifier.Classify(context.Background(), "mumble mumble", nil)
	if result.Label != DefaultFallbackIntent {
		t.Errorf("expected default intent after provider error, got %q", result.Label)
	}
	if result.Provenance != domain.ProvenanceDefault {
		t.Errorf("expected default provenance, got %q", result.Provenance)
	}
}

func TestClassify_ProviderTimeoutFallsToDefault(t *testing.T) {
	provider := &mocks.MockClassificationProvider{
		ClassifyFunc: func(ctx context.Context, prompt string) (string, float64, error) {
			select {
			case <-ctx.Done():
				return "", 0, ctx.Err()
			case <-time.After(2 * time.Second):
				return domain.IntentRoomBooking, 0.9, nil
			}
		},
	}
	classifier := newTestClassifier(t, provider, Config{ProviderTimeout: 50 * time.Millisecond})

	started := time.Now()
	result := classifier.Classify(context.Background(), "mumble mumble", nil)
	elapsed := time.Since(started)

	if result.Label != DefaultFallbackIntent {
		t.Errorf("expected default intent after timeout, got %q", result.Label)
	}
	if elapsed > time.Second {
		t.Errorf("classification blocked for %v; timeout not enforced", elapsed)
	}
}

func TestClassify_ProviderUnknownLabelRejected(t *testing.T) {
	provider := &mocks.MockClassificationProvider{
		ClassifyFunc: func(ctx context.Context, prompt string) (string, float64, error) {
			return "order_pizza", 0.99, nil
		},
	}
	classifier := newTestClassifier(t, provider, Config{})

	result := classifier.Classify(context.Background(), "mumble mumble", nil)
	if result.Label != DefaultFallbackIntent {
		t.Errorf("unknown provider label must fall to default, got %q", result.Label)
	}
}

func TestClassify_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	provider := &mocks.MockClassificationProvider{
		ClassifyFunc: func(ctx context.Context, prompt string) (string, float64, error) {
			return "", 0, errors.New("upstream down")
		},
	}
	classifier := newTestClassifier(t, provider, Config{})

	for i := 0; i < 10; i++ {
		classifier.Classify(context.Background(), "mumble mumble", nil)
	}
	// default ReadyToTrip opens after 3 requests with >=60% failures,
	// so the provider stops being exercised well before 10 calls
	if provider.Calls >= 10 {
		t.Errorf("breaker never opened, provider called %d times", provider.Calls)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hello,   World!  ", "hello world"},
		{"Book a ROOM?!", "book a room"},
		{"reach me at guest@example.com", "reach me at guest@example.com"},
		{"call +91-9876543210", "call +91-9876543210"},
		{"check in 2026-09-15", "check in 2026-09-15"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in, ""); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
