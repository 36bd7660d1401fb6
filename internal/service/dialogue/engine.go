package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/domain"
	"github.com/seu-repo/concierge-ai/internal/observability/telemetry"
	"github.com/seu-repo/concierge-ai/internal/ports"
	"github.com/seu-repo/concierge-ai/internal/service/entity"
)

type Config struct {
	DefaultLanguage string
	// IntentOverrideThreshold is the minimum confidence at which a newly
	// classified intent interrupts the active flow.
	IntentOverrideThreshold float64
	MaxIntentStackDepth     int
	MaxTurns                int
	IdleTimeout             time.Duration
}

// Engine is the dialogue state tracker: it owns sessions, orchestrates
// detection, classification and extraction per turn, and drives the
// slot-filling state machine to a confirmable action.
type Engine struct {
	detector   ports.LanguageDetector
	classifier ports.IntentClassifier
	extractor  ports.EntityExtractor
	composer   *Composer
	store      ports.SessionStore
	executor   ports.Executor
	turnLog    ports.TurnLogger
	cfg        Config
	log        *zap.Logger

	// one mutex per session id; turns within a session are serialized
	locks sync.Map
}

func NewEngine(
	detector ports.LanguageDetector,
	classifier ports.IntentClassifier,
	extractor ports.EntityExtractor,
	composer *Composer,
	store ports.SessionStore,
	executor ports.Executor,
	turnLog ports.TurnLogger,
	cfg Config,
	log *zap.Logger,
) *Engine {
	if cfg.IntentOverrideThreshold == 0 {
		cfg.IntentOverrideThreshold = 0.85
	}
	if cfg.MaxIntentStackDepth == 0 {
		cfg.MaxIntentStackDepth = 3
	}
	return &Engine{
		detector:   detector,
		classifier: classifier,
		extractor:  extractor,
		composer:   composer,
		store:      store,
		executor:   executor,
		turnLog:    turnLog,
		cfg:        cfg,
		log:        log,
	}
}

func (e *Engine) lockFor(sessionID string) *sync.Mutex {
	v, _ := e.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// ProcessTurn handles one utterance. The session is mutated only in
// memory during the turn; it is persisted once, at the end, so an aborted
// or failed turn leaves the stored session untouched.
func (e *Engine) ProcessTurn(ctx context.Context, req ports.TurnRequest) (*ports.TurnResult, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	mu := e.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	now := req.ReferenceClock
	if now.IsZero() {
		now = time.Now()
	}
	started := time.Now()

	sess, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: load session %s: %v", domain.ErrPersistence, sessionID, err)
	}
	switch {
	case sess == nil:
		sess = domain.NewSession(sessionID, now)
		telemetry.ActiveSessions.Inc()
	case sess.State.IsTerminal():
		// terminal sessions accept no further mutation; a new turn on the
		// same id starts a fresh conversation context
		sess = domain.NewSession(sessionID, now)
		telemetry.ActiveSessions.Inc()
	case e.cfg.IdleTimeout > 0 && sess.IdleFor(now) > e.cfg.IdleTimeout:
		e.log.Info("session abandoned after idle timeout",
			zap.String("session_id", sessionID),
			zap.Duration("idle", sess.IdleFor(now)))
		telemetry.ActiveSessions.Dec()
		sess = domain.NewSession(sessionID, now)
		telemetry.ActiveSessions.Inc()
	}

	stateBefore := sess.State

	if e.cfg.MaxTurns > 0 && sess.TurnCount >= e.cfg.MaxTurns {
		e.transition(sess, domain.StateAbandoned)
		telemetry.ActiveSessions.Dec()
		response := e.composer.Render(sess.Language, keyConversationTooLong, nil)
		sess.AddTurn(req.Utterance, response, sess.ActiveIntent, now)
		if err := e.store.Save(ctx, sess); err != nil {
			return nil, fmt.Errorf("%w: save session %s: %v", domain.ErrPersistence, sessionID, err)
		}
		return e.result(sess, domain.IntentResult{Label: sess.ActiveIntent}, response), nil
	}

	// language is pinned on the first classified utterance and never
	// changes implicitly mid-flow
	if sess.Language == "" {
		det := e.detector.Detect(req.Utterance)
		sess.Language = det.Language
		if det.Fallback {
			e.log.Debug("language detection degraded, default applied",
				zap.String("session_id", sessionID),
				zap.String("language", det.Language))
		}
	}

	intentRes := e.classifier.Classify(ctx, req.Utterance, sess)

	response, matches := e.advance(ctx, sess, req.Utterance, intentRes, now)

	sess.AddTurn(req.Utterance, response, sess.ActiveIntent, now)
	telemetry.TurnsProcessed.WithLabelValues(sess.Language, string(sess.State)).Inc()

	if e.turnLog != nil {
		event := ports.TurnEvent{
			SessionID:     sess.ID,
			Turn:          sess.TurnCount,
			Utterance:     req.Utterance,
			Intent:        intentRes,
			Entities:      matches,
			StateFrom:     stateBefore,
			StateTo:       sess.State,
			Language:      sess.Language,
			ProcessedAt:   now,
			ProcessTimeMs: time.Since(started).Milliseconds(),
		}
		// analytics must never block or fail the turn
		go e.turnLog.LogTurn(event)
	}

	if err := e.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("%w: save session %s: %v", domain.ErrPersistence, sessionID, err)
	}
	return e.result(sess, intentRes, response), nil
}

// CloseSession deletes the stored session. Closing an unknown session is
// not an error.
func (e *Engine) CloseSession(ctx context.Context, sessionID string) error {
	mu := e.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	sess, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("%w: load session %s: %v", domain.ErrPersistence, sessionID, err)
	}
	if sess == nil {
		return nil
	}
	if !sess.State.IsTerminal() {
		telemetry.ActiveSessions.Dec()
	}
	if err := e.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("%w: delete session %s: %v", domain.ErrPersistence, sessionID, err)
	}
	e.locks.Delete(sessionID)
	return nil
}

// advance runs the per-turn state machine and returns the rendered
// response plus the entity matches of this turn.
func (e *Engine) advance(ctx context.Context, sess *domain.Session, utterance string, intentRes domain.IntentResult, now time.Time) (string, []domain.EntityMatch) {
	lang := sess.Language
	specs := e.classifier.Specs()

	// confirmation answers take precedence over reclassification: "yes"
	// or "no, change the date" must act on the pending summary
	if sess.State == domain.StateAwaitingConfirmation {
		if isAffirmation(utterance) {
			return e.executeFlow(ctx, sess, now), nil
		}
		if target, negative := negationTarget(utterance, domain.IntentSpecByLabel(specs, sess.ActiveIntent)); negative {
			if target == "" {
				return e.composer.Render(lang, keyClarifyChange, nil), nil
			}
			delete(sess.Slots, target)
			if !e.transition(sess, domain.StateCollectingInfo) {
				return e.composer.Render(lang, keyTurnError, nil), nil
			}
			return e.composer.AskSlot(lang, target), nil
		}
	}

	newSpec := domain.IntentSpecByLabel(specs, intentRes.Label)
	sideAnswer := e.resolveIntent(sess, intentRes, newSpec)

	activeSpec := domain.IntentSpecByLabel(specs, sess.ActiveIntent)
	matches := e.extractor.Extract(utterance, activeSpec, lang, now)
	invalid := e.mergeEntities(sess, activeSpec, matches, now)

	if activeSpec == nil || len(activeSpec.RequiredSlots) == 0 {
		return e.respondNonFlow(sess, utterance, intentRes), matches
	}

	missing := sess.MissingSlots(activeSpec)
	if len(missing) > 0 {
		if !e.transition(sess, domain.StateCollectingInfo) {
			return e.composer.Render(lang, keyTurnError, nil), matches
		}
		var parts []string
		if sideAnswer != "" {
			parts = append(parts, sideAnswer)
		}
		if invalid != nil {
			parts = append(parts,
				e.composer.Render(lang, keySlotInvalid, map[string]string{"reason": invalid.Reason}))
			parts = append(parts, e.composer.AskSlot(lang, invalid.Slot))
		} else {
			parts = append(parts, e.composer.AskSlot(lang, missing[0]))
		}
		return strings.Join(parts, " "), matches
	}

	if !e.transition(sess, domain.StateAwaitingConfirmation) {
		return e.composer.Render(lang, keyTurnError, nil), matches
	}
	return e.composer.Render(lang, keyConfirmSummary, map[string]string{
		"intent":  e.composer.IntentLabel(lang, sess.ActiveIntent),
		"summary": e.composer.Summary(lang, activeSpec, sess.Slots),
	}), matches
}

// resolveIntent applies step one of the turn algorithm: adopt an intent
// when none is active, or interrupt the current flow when a different
// slot-filling intent arrives above the override threshold. Returns a
// side answer to prepend when a non-flow question was asked mid-flow.
func (e *Engine) resolveIntent(sess *domain.Session, intentRes domain.IntentResult, newSpec *domain.IntentSpec) string {
	isFlow := newSpec != nil && len(newSpec.RequiredSlots) > 0

	if sess.ActiveIntent == "" {
		if isFlow {
			sess.ActiveIntent = intentRes.Label
			e.transition(sess, domain.StateIntentIdentified)
		}
		return ""
	}

	if intentRes.Label == sess.ActiveIntent {
		return ""
	}

	if isFlow && intentRes.Confidence >= e.cfg.IntentOverrideThreshold {
		sess.PushIntent(e.cfg.MaxIntentStackDepth)
		sess.ActiveIntent = intentRes.Label
		e.transition(sess, domain.StateIntentIdentified)
		e.log.Info("intent switched mid-flow",
			zap.String("session_id", sess.ID),
			zap.String("intent", intentRes.Label),
			zap.Int("stack_depth", len(sess.IntentStack)))
		return ""
	}

	// a low-stakes question mid-flow is answered inline without
	// disturbing the collection
	switch intentRes.Label {
	case domain.IntentInformationRequest:
		return ""
	case domain.IntentRoomInquiry:
		return e.composer.Render(sess.Language, keyRoomInquiry, map[string]string{
			"catalog": e.composer.RoomCatalog(sess.Language),
		})
	}
	return ""
}

// mergeEntities validates this turn's matches and commits them in one
// step: either every validated value lands in the slot map, or none does.
// Returns the first validation failure for the reprompt message.
func (e *Engine) mergeEntities(sess *domain.Session, spec *domain.IntentSpec, matches []domain.EntityMatch, now time.Time) *domain.SlotValidationError {
	staged := make(map[string]domain.SlotValue, len(matches))
	var invalid *domain.SlotValidationError

	for _, m := range matches {
		slot := resolveSlotTarget(m, spec, sess, staged)
		if slot == "" {
			continue
		}
		if existing, ok := sess.Slots[slot]; ok && existing.Status == domain.SlotValid {
			// a validated slot may only be replaced by a strictly more
			// confident extraction, and never after confirmation
			if sess.State == domain.StateConfirmed || m.Confidence <= existing.Confidence {
				continue
			}
		}
		if verr := entity.Validate(m, now); verr != nil {
			verr.Slot = slot
			if invalid == nil {
				invalid = verr
			}
			continue
		}
		staged[slot] = domain.SlotValue{
			Name:       slot,
			Value:      m.Value,
			Raw:        m.Raw,
			EntityType: m.Type,
			Confidence: m.Confidence,
			Status:     domain.SlotValid,
		}
	}

	for k, v := range staged {
		sess.Slots[k] = v
	}
	return invalid
}

// resolveSlotTarget decides which session slot an entity match feeds.
// Unrouted dates go to the first unfilled date slot in declared order.
func resolveSlotTarget(m domain.EntityMatch, spec *domain.IntentSpec, sess *domain.Session, staged map[string]domain.SlotValue) string {
	if m.Slot == "phone_number" || m.Slot == "email" {
		return m.Slot
	}
	if spec == nil {
		return ""
	}
	required := make(map[string]bool, len(spec.RequiredSlots))
	for _, name := range spec.RequiredSlots {
		required[name] = true
	}
	if m.Type == domain.EntityDate && !required[m.Slot] {
		for _, name := range spec.RequiredSlots {
			if !strings.HasSuffix(name, "_date") {
				continue
			}
			if _, ok := staged[name]; ok {
				continue
			}
			if sv, ok := sess.Slots[name]; ok && sv.Status == domain.SlotValid {
				continue
			}
			return name
		}
		return ""
	}
	if required[m.Slot] {
		return m.Slot
	}
	return ""
}

// executeFlow carries out a confirmed intent and resolves what happens
// next: terminal success, recoverable retry, or resumption of an
// interrupted flow from the intent stack.
func (e *Engine) executeFlow(ctx context.Context, sess *domain.Session, now time.Time) string {
	lang := sess.Language
	if !e.transition(sess, domain.StateConfirmed) {
		return e.composer.Render(lang, keyTurnError, nil)
	}

	res, err := e.executor.Execute(ctx, sess.ActiveIntent, sess.Slots)
	if err != nil || res == nil || !res.Success {
		reason := "service unavailable"
		recoverable := false
		var clearSlots []string
		if res != nil {
			reason = res.FailureReason
			recoverable = res.Recoverable
			clearSlots = res.ClearSlots
		}
		var execErr *domain.ExecutionError
		if errors.As(err, &execErr) {
			reason = execErr.Reason
			recoverable = execErr.Recoverable
		}
		telemetry.BookingsExecuted.WithLabelValues(sess.ActiveIntent, "failed").Inc()
		e.log.Warn("execution failed",
			zap.String("session_id", sess.ID),
			zap.String("intent", sess.ActiveIntent),
			zap.String("reason", reason),
			zap.Bool("recoverable", recoverable),
			zap.Error(err))

		if recoverable {
			for _, slot := range clearSlots {
				delete(sess.Slots, slot)
			}
			if !e.transition(sess, domain.StateCollectingInfo) {
				return e.composer.Render(lang, keyTurnError, nil)
			}
			msg := e.composer.Render(lang, keyExecutionRetry, map[string]string{"reason": reason})
			spec := domain.IntentSpecByLabel(e.classifier.Specs(), sess.ActiveIntent)
			if missing := sess.MissingSlots(spec); len(missing) > 0 {
				msg += " " + e.composer.AskSlot(lang, missing[0])
			}
			return msg
		}
		e.transition(sess, domain.StateFailed)
		telemetry.ActiveSessions.Dec()
		return e.composer.Render(lang, keyExecutionFailed, map[string]string{"reason": reason})
	}

	telemetry.BookingsExecuted.WithLabelValues(sess.ActiveIntent, "success").Inc()
	done := e.composer.Render(lang, keyExecuted, map[string]string{"reference": res.Reference})

	if len(sess.IntentStack) == 0 {
		e.transition(sess, domain.StateExecuted)
		telemetry.ActiveSessions.Dec()
		return done
	}

	// resume the interrupted flow; values collected in the meantime fill
	// gaps in the restored frame but never overwrite it
	current := sess.Slots
	sess.PopIntent()
	for k, v := range current {
		if _, ok := sess.Slots[k]; !ok {
			sess.Slots[k] = v
		}
	}
	if !e.transition(sess, domain.StateCollectingInfo) {
		return e.composer.Render(lang, keyTurnError, nil)
	}
	resumed := e.composer.Render(lang, keyResumed, map[string]string{
		"intent": e.composer.IntentLabel(lang, sess.ActiveIntent),
	})
	spec := domain.IntentSpecByLabel(e.classifier.Specs(), sess.ActiveIntent)
	missing := sess.MissingSlots(spec)
	if len(missing) == 0 {
		if !e.transition(sess, domain.StateAwaitingConfirmation) {
			return e.composer.Render(lang, keyTurnError, nil)
		}
		return done + " " + resumed + " " + e.composer.Render(lang, keyConfirmSummary, map[string]string{
			"intent":  e.composer.IntentLabel(lang, sess.ActiveIntent),
			"summary": e.composer.Summary(lang, spec, sess.Slots),
		})
	}
	return done + " " + resumed + " " + e.composer.AskSlot(lang, missing[0])
}

// respondNonFlow answers intents that collect no slots
func (e *Engine) respondNonFlow(sess *domain.Session, utterance string, intentRes domain.IntentResult) string {
	lang := sess.Language
	switch intentRes.Label {
	case domain.IntentGreeting:
		return e.composer.Render(lang, keyGreeting, nil)
	case domain.IntentFarewell:
		if sess.State.CanTransition(domain.StateAbandoned) {
			e.transition(sess, domain.StateAbandoned)
			telemetry.ActiveSessions.Dec()
		}
		return e.composer.Render(lang, keyFarewell, nil)
	case domain.IntentComplaint:
		return e.composer.Render(lang, keyComplaintAck, nil)
	case domain.IntentRoomInquiry:
		return e.composer.Render(lang, keyRoomInquiry, map[string]string{
			"catalog": e.composer.RoomCatalog(lang),
		})
	default:
		if answer, ok := e.composer.KnowledgeAnswer(lang, utterance); ok {
			return answer
		}
		return e.composer.Render(lang, keyFallback, nil)
	}
}

// transition moves the session state, treating a table violation as a
// defect: it is logged, the session is failed, and the turn degrades to
// an apologetic response instead of corrupting state.
func (e *Engine) transition(sess *domain.Session, to domain.DialogueState) bool {
	from := sess.State
	if err := sess.Transition(to); err != nil {
		e.log.Error("state transition invariant violated",
			zap.String("session_id", sess.ID),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
			zap.Error(err))
		sess.State = domain.StateFailed
		telemetry.ActiveSessions.Dec()
		return false
	}
	if from != to {
		telemetry.StateTransitions.WithLabelValues(string(from), string(to)).Inc()
	}
	return true
}

func (e *Engine) result(sess *domain.Session, intentRes domain.IntentResult, response string) *ports.TurnResult {
	spec := domain.IntentSpecByLabel(e.classifier.Specs(), sess.ActiveIntent)
	return &ports.TurnResult{
		ResponseText: response,
		IntentLabel:  intentRes.Label,
		Confidence:   intentRes.Confidence,
		LanguageCode: sess.Language,
		MissingSlots: sess.MissingSlots(spec),
		State:        sess.State,
		SessionID:    sess.ID,
		TurnCount:    sess.TurnCount,
	}
}

var affirmationWords = map[string]bool{
	"yes": true, "yeah": true, "yep": true, "sure": true, "ok": true,
	"okay": true, "confirm": true, "confirmed": true, "correct": true,
	"right": true, "haan": true, "हाँ": true, "हां": true, "да": true,
	"oui": true, "sí": true, "si": true, "ja": true,
}

var negationWords = map[string]bool{
	"no": true, "nope": true, "nah": true, "wrong": true, "change": true,
	"not": true, "नहीं": true, "нет": true, "non": true, "nein": true,
}

func isAffirmation(utterance string) bool {
	lower := strings.ToLower(strings.TrimSpace(utterance))
	if strings.Contains(lower, "go ahead") || strings.Contains(lower, "sounds good") {
		return true
	}
	fields := strings.Fields(strings.Trim(lower, ".,!?"))
	if len(fields) == 0 || len(fields) > 3 {
		return false
	}
	// a short reply that leads with a negation is not an affirmation
	// even when it also contains "ok"
	if negationWords[strings.Trim(fields[0], ".,!?")] {
		return false
	}
	for _, f := range fields {
		if affirmationWords[strings.Trim(f, ".,!?")] {
			return true
		}
	}
	return false
}

// slotKeywords maps correction wording onto slot names; check-in/out are
// matched before the generic "date"
var slotKeywords = []struct {
	keyword string
	slot    string
}{
	{"check in", "check_in_date"},
	{"check-in", "check_in_date"},
	{"check out", "check_out_date"},
	{"check-out", "check_out_date"},
	{"name", "guest_name"},
	{"phone", "phone_number"},
	{"number", "phone_number"},
	{"room", "room_type"},
	{"meal", "meal_type"},
	{"hall", "hall_type"},
	{"guest", "guest_count"},
	{"people", "guest_count"},
	{"duration", "duration"},
	{"hours", "duration"},
	{"date", ""},
	{"reference", "booking_reference"},
}

// negationTarget reports whether the utterance rejects the pending
// confirmation and, when a slot is named, which one to clear. The "date"
// keyword resolves against the active intent's declared date slot.
func negationTarget(utterance string, spec *domain.IntentSpec) (string, bool) {
	lower := strings.ToLower(utterance)
	negative := false
	for _, f := range strings.Fields(lower) {
		if negationWords[strings.Trim(f, ".,!?")] {
			negative = true
			break
		}
	}
	if !negative {
		return "", false
	}
	for _, sk := range slotKeywords {
		if !strings.Contains(lower, sk.keyword) {
			continue
		}
		slot := sk.slot
		if slot == "" && spec != nil {
			for _, name := range spec.RequiredSlots {
				if strings.HasSuffix(name, "_date") {
					slot = name
					break
				}
			}
		}
		if slot == "" {
			continue
		}
		if spec != nil {
			for _, name := range spec.RequiredSlots {
				if name == slot {
					return slot, true
				}
			}
			continue
		}
		return slot, true
	}
	return "", true
}
