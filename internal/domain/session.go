package domain

import (
	"time"
)

// DialogueState represents where a conversation is in its lifecycle
type DialogueState string

const (
	StateGreeting             DialogueState = "greeting"
	StateIntentIdentified     DialogueState = "intent_identified"
	StateCollectingInfo       DialogueState = "collecting_info"
	StateAwaitingConfirmation DialogueState = "awaiting_confirmation"
	StateConfirmed            DialogueState = "confirmed"
	StateExecuted             DialogueState = "executed"
	StateFailed               DialogueState = "failed"
	StateAbandoned            DialogueState = "abandoned"
)

// IsTerminal returns true if no further turns may mutate the session
func (s DialogueState) IsTerminal() bool {
	return s == StateExecuted || s == StateFailed || s == StateAbandoned
}

// stateTransitions is the complete transition table. Every mutation of
// Session.State goes through Session.Transition, which validates against
// this table.
var stateTransitions = map[DialogueState][]DialogueState{
	StateGreeting: {
		StateGreeting, StateIntentIdentified, StateAbandoned, StateFailed,
	},
	StateIntentIdentified: {
		StateIntentIdentified, StateCollectingInfo, StateAwaitingConfirmation,
		StateAbandoned, StateFailed,
	},
	StateCollectingInfo: {
		StateCollectingInfo, StateAwaitingConfirmation, StateIntentIdentified,
		StateAbandoned, StateFailed,
	},
	StateAwaitingConfirmation: {
		StateConfirmed, StateCollectingInfo, StateIntentIdentified,
		StateAwaitingConfirmation, StateAbandoned, StateFailed,
	},
	StateConfirmed: {
		StateExecuted, StateCollectingInfo, StateFailed,
	},
	StateExecuted:  {},
	StateFailed:    {},
	StateAbandoned: {},
}

// CanTransition reports whether moving from s to next is allowed
func (s DialogueState) CanTransition(next DialogueState) bool {
	for _, allowed := range stateTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// SlotStatus is the validation status of a slot value
type SlotStatus string

const (
	SlotUnvalidated SlotStatus = "unvalidated"
	SlotValid       SlotStatus = "valid"
	SlotInvalid     SlotStatus = "invalid"
)

// SlotValue is one collected piece of booking-relevant information.
// Once validated and merged into a session it is immutable; a later
// extraction may only replace it while the session is not yet confirmed.
type SlotValue struct {
	Name          string     `json:"name"`
	Value         string     `json:"value"`
	Raw           string     `json:"raw"`
	EntityType    EntityType `json:"entity_type"`
	Confidence    float64    `json:"confidence"`
	Status        SlotStatus `json:"status"`
	InvalidReason string     `json:"invalid_reason,omitempty"`
}

// Turn is one user utterance / system response pair
type Turn struct {
	Number    int       `json:"number"`
	Utterance string    `json:"utterance"`
	Response  string    `json:"response"`
	Intent    string    `json:"intent"`
	Timestamp time.Time `json:"timestamp"`
}

// IntentFrame preserves an interrupted flow so it can be resumed after the
// interrupting intent completes. Partially filled slots are kept.
type IntentFrame struct {
	Intent string               `json:"intent"`
	State  DialogueState        `json:"state"`
	Slots  map[string]SlotValue `json:"slots"`
}

// Session is the durable context of one conversation. It is owned
// exclusively by the dialogue engine; all access is serialized per session.
type Session struct {
	ID             string               `json:"id"`
	Language       string               `json:"language"`
	ActiveIntent   string               `json:"active_intent"`
	IntentStack    []IntentFrame        `json:"intent_stack,omitempty"`
	Slots          map[string]SlotValue `json:"slots"`
	State          DialogueState        `json:"state"`
	Turns          []Turn               `json:"turns"`
	TurnCount      int                  `json:"turn_count"`
	CreatedAt      time.Time            `json:"created_at"`
	LastActivityAt time.Time            `json:"last_activity_at"`
}

// NewSession creates a fresh session in the initial state. Language stays
// empty until the first utterance is classified.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:             id,
		Slots:          make(map[string]SlotValue),
		State:          StateGreeting,
		CreatedAt:      now,
		LastActivityAt: now,
	}
}

// Transition moves the session to next, enforcing the transition table.
// A violation is a programming error, surfaced as StateTransitionError.
func (s *Session) Transition(next DialogueState) error {
	if s.State == next {
		return nil
	}
	if !s.State.CanTransition(next) {
		return &StateTransitionError{From: s.State, To: next}
	}
	s.State = next
	return nil
}

// AddTurn appends a completed turn and advances the turn counter
func (s *Session) AddTurn(utterance, response, intent string, at time.Time) {
	s.TurnCount++
	s.Turns = append(s.Turns, Turn{
		Number:    s.TurnCount,
		Utterance: utterance,
		Response:  response,
		Intent:    intent,
		Timestamp: at,
	})
	s.LastActivityAt = at
}

// IdleFor reports how long the session has been without a turn
func (s *Session) IdleFor(now time.Time) time.Duration {
	return now.Sub(s.LastActivityAt)
}

// MissingSlots returns the required slots of spec not yet validly filled,
// in the spec's declared order.
func (s *Session) MissingSlots(spec *IntentSpec) []string {
	if spec == nil {
		return nil
	}
	missing := make([]string, 0, len(spec.RequiredSlots))
	for _, name := range spec.RequiredSlots {
		if sv, ok := s.Slots[name]; !ok || sv.Status != SlotValid {
			missing = append(missing, name)
		}
	}
	return missing
}

// PushIntent stores the current flow on the stack before switching to a new
// intent. The stack is bounded; the oldest frame is dropped past the bound.
func (s *Session) PushIntent(maxDepth int) {
	if s.ActiveIntent == "" {
		return
	}
	slots := make(map[string]SlotValue, len(s.Slots))
	for k, v := range s.Slots {
		slots[k] = v
	}
	s.IntentStack = append(s.IntentStack, IntentFrame{
		Intent: s.ActiveIntent,
		State:  s.State,
		Slots:  slots,
	})
	if maxDepth > 0 && len(s.IntentStack) > maxDepth {
		s.IntentStack = s.IntentStack[len(s.IntentStack)-maxDepth:]
	}
}

// PopIntent restores the most recently interrupted flow. Returns false when
// the stack is empty.
func (s *Session) PopIntent() bool {
	if len(s.IntentStack) == 0 {
		return false
	}
	frame := s.IntentStack[len(s.IntentStack)-1]
	s.IntentStack = s.IntentStack[:len(s.IntentStack)-1]
	s.ActiveIntent = frame.Intent
	s.Slots = frame.Slots
	return true
}
