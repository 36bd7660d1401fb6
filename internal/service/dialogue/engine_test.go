package dialogue

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/domain"
	"github.com/seu-repo/concierge-ai/internal/mocks"
	"github.com/seu-repo/concierge-ai/internal/ports"
	"github.com/seu-repo/concierge-ai/internal/service/entity"
)

var testClock = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// keywordClassify stands in for the rule tier with a handful of fixed
// triggers, so engine behavior stays deterministic under test.
func keywordClassify(_ context.Context, text string, _ *domain.Session) domain.IntentResult {
	lower := strings.ToLower(text)
	rule := func(label string) domain.IntentResult {
		return domain.IntentResult{Label: label, Confidence: 0.95, Provenance: domain.ProvenanceRule}
	}
	switch {
	case strings.Contains(lower, "book a room"):
		return rule(domain.IntentRoomBooking)
	case strings.Contains(lower, "cancel"):
		return rule(domain.IntentBookingCancellation)
	case strings.Contains(lower, "what rooms"):
		return rule(domain.IntentRoomInquiry)
	case strings.Contains(lower, "goodbye"):
		return rule(domain.IntentFarewell)
	case strings.Contains(lower, "hello"):
		return rule(domain.IntentGreeting)
	default:
		return domain.IntentResult{
			Label:      domain.IntentInformationRequest,
			Confidence: 0.5,
			Provenance: domain.ProvenanceDefault,
		}
	}
}

type engineFixture struct {
	engine   *Engine
	store    *mocks.MockSessionStore
	executor *mocks.MockExecutor
}

func newEngineFixture(cfg Config) *engineFixture {
	store := mocks.NewMockSessionStore()
	executor := &mocks.MockExecutor{}
	composer := NewComposer("en", "Grand Palace Hotel", "2:00 PM", "11:00 AM",
		map[string]ports.RoomTypeInfo{
			"single": {Name: "Single Room", Price: 1500, Capacity: 1},
			"deluxe": {Name: "Deluxe Room", Price: 3500, Capacity: 2},
		})
	engine := NewEngine(
		&mocks.MockLanguageDetector{},
		&mocks.MockIntentClassifier{ClassifyFunc: keywordClassify},
		entity.NewExtractor(entity.Config{DefaultRegion: "IN"}, zap.NewNop()),
		composer,
		store,
		executor,
		&mocks.MockTurnLogger{},
		cfg,
		zap.NewNop(),
	)
	return &engineFixture{engine: engine, store: store, executor: executor}
}

func (f *engineFixture) turn(t *testing.T, sessionID, utterance string) *ports.TurnResult {
	t.Helper()
	res, err := f.engine.ProcessTurn(context.Background(), ports.TurnRequest{
		SessionID:      sessionID,
		Utterance:      utterance,
		ReferenceClock: testClock,
	})
	if err != nil {
		t.Fatalf("ProcessTurn(%q): %v", utterance, err)
	}
	return res
}

func TestProcessTurn_FullRoomBookingFlow(t *testing.T) {
	f := newEngineFixture(Config{})
	id := "sess-booking"

	res := f.turn(t, id, "I want to book a room")
	if res.State != domain.StateCollectingInfo {
		t.Fatalf("turn 1: expected collecting_info, got %q", res.State)
	}
	if res.IntentLabel != domain.IntentRoomBooking {
		t.Fatalf("turn 1: expected room_booking, got %q", res.IntentLabel)
	}
	if len(res.MissingSlots) != 6 {
		t.Fatalf("turn 1: expected 6 missing slots, got %v", res.MissingSlots)
	}
	if !strings.Contains(res.ResponseText, "name") {
		t.Errorf("turn 1: expected a prompt for the first missing slot, got %q", res.ResponseText)
	}

	res = f.turn(t, id, "My name is Rajesh Kumar. 9876543210")
	if res.State != domain.StateCollectingInfo {
		t.Fatalf("turn 2: expected collecting_info, got %q", res.State)
	}
	if len(res.MissingSlots) != 4 {
		t.Fatalf("turn 2: expected 4 missing slots, got %v", res.MissingSlots)
	}

	res = f.turn(t, id, "check in 2026-04-01 and check out 2026-04-05")
	if len(res.MissingSlots) != 2 {
		t.Fatalf("turn 3: expected 2 missing slots, got %v", res.MissingSlots)
	}

	res = f.turn(t, id, "a deluxe room for 2 guests")
	if res.State != domain.StateAwaitingConfirmation {
		t.Fatalf("turn 4: expected awaiting_confirmation, got %q", res.State)
	}
	if !strings.Contains(res.ResponseText, "Rajesh Kumar") {
		t.Errorf("turn 4: summary must list collected values, got %q", res.ResponseText)
	}

	res = f.turn(t, id, "yes")
	if res.State != domain.StateExecuted {
		t.Fatalf("turn 5: expected executed, got %q", res.State)
	}
	if len(f.executor.Calls) != 1 || f.executor.Calls[0] != domain.IntentRoomBooking {
		t.Errorf("expected one room_booking execution, got %v", f.executor.Calls)
	}
	if res.TurnCount != 5 {
		t.Errorf("expected 5 turns, got %d", res.TurnCount)
	}
}

func TestProcessTurn_TurnCountAlwaysIncrements(t *testing.T) {
	f := newEngineFixture(Config{})
	id := "sess-count"

	utterances := []string{"hello", "do you allow pets?", "what rooms do you have", "???"}
	for i, u := range utterances {
		res := f.turn(t, id, u)
		if res.TurnCount != i+1 {
			t.Fatalf("turn %d: expected count %d, got %d", i+1, i+1, res.TurnCount)
		}
	}
}

func TestProcessTurn_AssignsSessionID(t *testing.T) {
	f := newEngineFixture(Config{})

	res := f.turn(t, "", "hello")
	if res.SessionID == "" {
		t.Fatal("expected a generated session id")
	}

	// the assigned id is durable: a second turn continues the session
	res2 := f.turn(t, res.SessionID, "do you allow pets?")
	if res2.TurnCount != 2 {
		t.Errorf("expected second turn on the same session, got count %d", res2.TurnCount)
	}
}

func TestProcessTurn_NegationClearsNamedSlot(t *testing.T) {
	f := newEngineFixture(Config{})
	id := "sess-negate"

	f.turn(t, id, "I want to book a room")
	f.turn(t, id, "My name is Rajesh Kumar. 9876543210")
	f.turn(t, id, "check in 2026-04-01 and check out 2026-04-05")
	res := f.turn(t, id, "a deluxe room for 2 guests")
	if res.State != domain.StateAwaitingConfirmation {
		t.Fatalf("setup: expected awaiting_confirmation, got %q", res.State)
	}

	res = f.turn(t, id, "no, change the check in date")
	if res.State != domain.StateCollectingInfo {
		t.Fatalf("expected collecting_info after rejection, got %q", res.State)
	}
	found := false
	for _, s := range res.MissingSlots {
		if s == "check_in_date" {
			found = true
		}
	}
	if !found {
		t.Errorf("rejected slot must be missing again, got %v", res.MissingSlots)
	}
	if len(f.executor.Calls) != 0 {
		t.Error("nothing may execute after a rejected confirmation")
	}

	// refill and confirm
	f.turn(t, id, "check in 2026-04-02")
	res = f.turn(t, id, "yes")
	if res.State != domain.StateExecuted {
		t.Fatalf("expected executed after refill, got %q", res.State)
	}
}

func TestProcessTurn_InvalidSlotValueReprompts(t *testing.T) {
	f := newEngineFixture(Config{})
	id := "sess-invalid"

	f.turn(t, id, "I want to book a room")
	f.turn(t, id, "My name is Rajesh Kumar. 9876543210")

	// a check-in before the reference clock fails validation
	res := f.turn(t, id, "check in 2026-03-01")
	if res.State != domain.StateCollectingInfo {
		t.Fatalf("expected collecting_info, got %q", res.State)
	}
	if !strings.Contains(res.ResponseText, "past") {
		t.Errorf("expected the validation reason in the response, got %q", res.ResponseText)
	}
	for _, s := range res.MissingSlots {
		if s == "check_in_date" {
			return
		}
	}
	t.Errorf("invalid value must not fill the slot, missing=%v", res.MissingSlots)
}

func TestProcessTurn_ValidSlotNotOverwrittenByEqualConfidence(t *testing.T) {
	f := newEngineFixture(Config{})
	id := "sess-immutable"

	f.turn(t, id, "I want to book a room")
	f.turn(t, id, "My name is Rajesh Kumar.")
	f.turn(t, id, "My name is Priya Sharma.")

	sess := f.store.Sessions[id]
	if sess == nil {
		t.Fatal("session not persisted")
	}
	got := sess.Slots["guest_name"]
	if got.Value != "Rajesh Kumar" {
		t.Errorf("equal-confidence re-extraction must not replace a valid slot, got %q", got.Value)
	}
}

func TestProcessTurn_IntentSwitchAndResume(t *testing.T) {
	f := newEngineFixture(Config{})
	id := "sess-switch"

	f.turn(t, id, "I want to book a room")
	f.turn(t, id, "My name is Rajesh Kumar. 9876543210")

	// a high-confidence executable intent interrupts the room flow
	res := f.turn(t, id, "actually, first cancel my old booking BK2603010A1F")
	if res.State != domain.StateAwaitingConfirmation {
		t.Fatalf("expected cancellation confirmation, got %q state", res.State)
	}
	if res.IntentLabel != domain.IntentBookingCancellation {
		t.Fatalf("expected booking_cancellation, got %q", res.IntentLabel)
	}

	res = f.turn(t, id, "yes")
	if res.State != domain.StateCollectingInfo {
		t.Fatalf("expected resumed collection, got %q", res.State)
	}
	if len(f.executor.Calls) != 1 || f.executor.Calls[0] != domain.IntentBookingCancellation {
		t.Fatalf("expected the cancellation to execute, got %v", f.executor.Calls)
	}

	// the restored frame keeps the previously collected slots
	sess := f.store.Sessions[id]
	if sess.ActiveIntent != domain.IntentRoomBooking {
		t.Errorf("expected room_booking resumed, got %q", sess.ActiveIntent)
	}
	if sess.Slots["guest_name"].Value != "Rajesh Kumar" {
		t.Error("interrupted flow must keep its partially filled slots")
	}
}

func TestProcessTurn_MidFlowInquiryAnsweredInline(t *testing.T) {
	f := newEngineFixture(Config{})
	id := "sess-inline"

	f.turn(t, id, "I want to book a room")
	res := f.turn(t, id, "what rooms do you have?")

	if res.State != domain.StateCollectingInfo {
		t.Fatalf("inquiry must not disturb the flow, got %q", res.State)
	}
	if !strings.Contains(res.ResponseText, "Deluxe Room") {
		t.Errorf("expected the catalog inline, got %q", res.ResponseText)
	}
	if !strings.Contains(res.ResponseText, "name") {
		t.Errorf("expected the pending slot prompt after the answer, got %q", res.ResponseText)
	}
}

func TestProcessTurn_RecoverableFailureReturnsToCollection(t *testing.T) {
	f := newEngineFixture(Config{})
	f.executor.ExecuteFunc = func(ctx context.Context, intentLabel string, slots map[string]domain.SlotValue) (*domain.ExecutionResult, error) {
		return &domain.ExecutionResult{
			Success:       false,
			FailureReason: "no rooms available for those dates",
			Recoverable:   true,
			ClearSlots:    []string{"check_in_date", "check_out_date"},
		}, nil
	}
	id := "sess-recover"

	f.turn(t, id, "I want to book a room")
	f.turn(t, id, "My name is Rajesh Kumar. 9876543210")
	f.turn(t, id, "check in 2026-04-01 and check out 2026-04-05")
	f.turn(t, id, "a deluxe room for 2 guests")
	res := f.turn(t, id, "yes")

	if res.State != domain.StateCollectingInfo {
		t.Fatalf("recoverable failure must return to collection, got %q", res.State)
	}
	var hasCheckIn bool
	for _, s := range res.MissingSlots {
		if s == "check_in_date" {
			hasCheckIn = true
		}
	}
	if !hasCheckIn {
		t.Errorf("cleared slots must be missing again, got %v", res.MissingSlots)
	}
}

func TestProcessTurn_UnrecoverableFailureTerminates(t *testing.T) {
	f := newEngineFixture(Config{})
	f.executor.ExecuteFunc = func(ctx context.Context, intentLabel string, slots map[string]domain.SlotValue) (*domain.ExecutionResult, error) {
		return nil, errors.New("database gone")
	}
	id := "sess-fail"

	f.turn(t, id, "I want to book a room")
	f.turn(t, id, "My name is Rajesh Kumar. 9876543210")
	f.turn(t, id, "check in 2026-04-01 and check out 2026-04-05")
	f.turn(t, id, "a deluxe room for 2 guests")
	res := f.turn(t, id, "yes")

	if res.State != domain.StateFailed {
		t.Fatalf("expected failed, got %q", res.State)
	}
}

func TestProcessTurn_TerminalSessionStartsFresh(t *testing.T) {
	f := newEngineFixture(Config{})
	id := "sess-terminal"

	sess := domain.NewSession(id, testClock)
	sess.State = domain.StateExecuted
	sess.TurnCount = 7
	f.store.Sessions[id] = sess

	res := f.turn(t, id, "hello")
	if res.TurnCount != 1 {
		t.Errorf("a turn on a terminal session must start fresh, got count %d", res.TurnCount)
	}
	if res.State.IsTerminal() {
		t.Errorf("fresh session must not be terminal, got %q", res.State)
	}
}

func TestProcessTurn_MaxTurnsAbandons(t *testing.T) {
	f := newEngineFixture(Config{MaxTurns: 3})
	id := "sess-long"

	sess := domain.NewSession(id, testClock)
	sess.TurnCount = 3
	f.store.Sessions[id] = sess

	res := f.turn(t, id, "and another thing")
	if res.State != domain.StateAbandoned {
		t.Fatalf("expected abandoned past the turn budget, got %q", res.State)
	}
}

func TestProcessTurn_FarewellAbandons(t *testing.T) {
	f := newEngineFixture(Config{})
	id := "sess-bye"

	f.turn(t, id, "hello")
	res := f.turn(t, id, "goodbye")
	if res.State != domain.StateAbandoned {
		t.Fatalf("expected abandoned after farewell, got %q", res.State)
	}
}

func TestProcessTurn_SaveFailureDoesNotCommit(t *testing.T) {
	f := newEngineFixture(Config{})
	f.store.SaveFunc = func(ctx context.Context, session *domain.Session) error {
		return errors.New("redis down")
	}
	id := "sess-savefail"

	_, err := f.engine.ProcessTurn(context.Background(), ports.TurnRequest{
		SessionID:      id,
		Utterance:      "I want to book a room",
		ReferenceClock: testClock,
	})
	if err == nil {
		t.Fatal("expected an error when the store rejects the save")
	}
	if !errors.Is(err, domain.ErrPersistence) {
		t.Errorf("expected ErrPersistence, got %v", err)
	}
	if f.store.Sessions[id] != nil {
		t.Error("failed turn must not commit the session")
	}
}

func TestProcessTurn_LoadFailureSurfacesPersistenceError(t *testing.T) {
	f := newEngineFixture(Config{})
	f.store.LoadFunc = func(ctx context.Context, id string) (*domain.Session, error) {
		return nil, errors.New("redis down")
	}

	_, err := f.engine.ProcessTurn(context.Background(), ports.TurnRequest{
		SessionID:      "sess-loadfail",
		Utterance:      "hello",
		ReferenceClock: testClock,
	})
	if !errors.Is(err, domain.ErrPersistence) {
		t.Errorf("expected ErrPersistence, got %v", err)
	}
}

func TestCloseSession(t *testing.T) {
	f := newEngineFixture(Config{})
	id := "sess-close"

	f.turn(t, id, "hello")
	if err := f.engine.CloseSession(context.Background(), id); err != nil {
		t.Fatalf("CloseSession: %v", err)
	}
	if f.store.Sessions[id] != nil {
		t.Error("closed session must be deleted from the store")
	}

	// closing an unknown session is not an error
	if err := f.engine.CloseSession(context.Background(), "never-existed"); err != nil {
		t.Errorf("closing an unknown session: %v", err)
	}
}

func TestIsAffirmation(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"yes", true},
		{"Yes!", true},
		{"yeah sure", true},
		{"ok", true},
		{"да", true},
		{"haan", true},
		{"go ahead", true},
		{"no", false},
		{"no, ok wait", false},
		{"change the date", false},
		{"yes I also want to add breakfast and parking", false},
	}
	for _, tt := range tests {
		if got := isAffirmation(tt.in); got != tt.want {
			t.Errorf("isAffirmation(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNegationTarget(t *testing.T) {
	spec := domain.IntentSpecByLabel(domain.DefaultIntentSpecs(), domain.IntentRoomBooking)

	tests := []struct {
		in       string
		slot     string
		negative bool
	}{
		{"no, change the check in date", "check_in_date", true},
		{"no, the phone is wrong", "phone_number", true},
		{"wrong room", "room_type", true},
		{"no", "", true},
		{"yes", "", false},
	}
	for _, tt := range tests {
		slot, negative := negationTarget(tt.in, spec)
		if negative != tt.negative || slot != tt.slot {
			t.Errorf("negationTarget(%q) = (%q, %v), want (%q, %v)",
				tt.in, slot, negative, tt.slot, tt.negative)
		}
	}
}
