package entity

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/domain"
	"github.com/seu-repo/concierge-ai/internal/ports"
)

// Candidate patterns run most-specific first; a candidate that fails
// type-specific validation is discarded, not returned low-confidence.
var (
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+\d{1,3}[\s-]?\d{10}\b`),
		regexp.MustCompile(`\b\d{3}[-.\s]\d{3}[-.\s]\d{4}\b`),
		regexp.MustCompile(`\b\d{10}\b`),
	}
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{4}[-/]\d{1,2}[-/]\d{1,2}\b`),
		regexp.MustCompile(`\b\d{1,2}[-/]\d{1,2}[-/]\d{4}\b`),
	}
	referencePattern = regexp.MustCompile(`\b(BK\d{6}[0-9A-F]{4})\b`)
	guestCountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d+)\s*(?:people|persons?|guests?|pax|adults?)\b`),
		regexp.MustCompile(`(?i)\bfor\s+(\d+)\b`),
	}
	durationPattern = regexp.MustCompile(`(?i)\b(\d+)\s*hours?\b`)
	namePatterns    = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:my\s+name\s+is|i\s+am|i'm|this\s+is)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
		regexp.MustCompile(`^\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,3})\s*$`),
	}
)

// relativeDates resolve temporal expressions against the reference clock
// supplied by the caller; the extractor never reads the system clock.
var relativeDates = []struct {
	phrase string
	offset func(ref time.Time) time.Time
}{
	{"day after tomorrow", func(ref time.Time) time.Time { return ref.AddDate(0, 0, 2) }},
	{"tomorrow", func(ref time.Time) time.Time { return ref.AddDate(0, 0, 1) }},
	{"today", func(ref time.Time) time.Time { return ref }},
	{"next week", func(ref time.Time) time.Time { return ref.AddDate(0, 0, 7) }},
	{"next month", func(ref time.Time) time.Time { return ref.AddDate(0, 1, 0) }},
	{"this weekend", func(ref time.Time) time.Time {
		days := (int(time.Saturday) - int(ref.Weekday()) + 7) % 7
		return ref.AddDate(0, 0, days)
	}},
}

// Controlled vocabularies with aliases; matched case-insensitively with
// tolerance for one-character typos.
var (
	roomTypes = map[string][]string{
		"single": {"single", "solo"},
		"double": {"double", "couple", "twin"},
		"deluxe": {"deluxe", "luxury", "premium"},
		"suite":  {"suite", "executive", "family"},
	}
	mealTypes = map[string][]string{
		"breakfast": {"breakfast"},
		"lunch":     {"lunch"},
		"dinner":    {"dinner", "supper"},
	}
	hallTypes = map[string][]string{
		"small":  {"small", "intimate"},
		"medium": {"medium", "moderate"},
		"large":  {"large", "big", "grand"},
	}
)

const (
	confPhone         = 0.95
	confEmail         = 0.9
	confAbsoluteDate  = 0.9
	confRelativeDate  = 0.85
	confVocabExact    = 0.9
	confVocabFuzzy    = 0.7
	confGuestCount    = 0.85
	confNameIntro     = 0.9
	confNameBare      = 0.75
	confBookingRef    = 0.95
	confDurationHours = 0.85
)

type Config struct {
	// DefaultRegion is the locale used for phone-number plausibility
	DefaultRegion string
	MinConfidence float64
}

type Extractor struct {
	cfg Config
	log *zap.Logger
}

func NewExtractor(cfg Config, log *zap.Logger) ports.EntityExtractor {
	if cfg.DefaultRegion == "" {
		cfg.DefaultRegion = "IN"
	}
	return &Extractor{cfg: cfg, log: log}
}

// Extract runs the per-type strategies independently. Only entity types
// feeding the active intent's required slots are attempted, plus the
// always-checked phone/email set; matches below the confidence floor are
// dropped before they reach the tracker.
func (e *Extractor) Extract(text string, activeIntent *domain.IntentSpec, language string, ref time.Time) []domain.EntityMatch {
	var matches []domain.EntityMatch

	wanted := requiredEntityTypes(activeIntent)

	// phone and email are always worth checking: they are cheap, precise
	// and shared across every bookable intent
	if m, ok := e.extractPhone(text); ok {
		matches = append(matches, m)
	}
	if m, ok := extractEmail(text); ok {
		matches = append(matches, m)
	}

	if wanted[domain.EntityBookingReference] {
		if m := referencePattern.FindString(text); m != "" {
			matches = append(matches, domain.EntityMatch{
				Type:       domain.EntityBookingReference,
				Raw:        m,
				Value:      m,
				Slot:       "booking_reference",
				Confidence: confBookingRef,
			})
		}
	}

	if wanted[domain.EntityDate] {
		matches = append(matches, extractDates(text, activeIntent, ref)...)
	}
	if wanted[domain.EntityRoomType] {
		if m, ok := extractVocab(text, roomTypes, domain.EntityRoomType, "room_type"); ok {
			matches = append(matches, m)
		}
	}
	if wanted[domain.EntityMealType] {
		if m, ok := extractVocab(text, mealTypes, domain.EntityMealType, "meal_type"); ok {
			matches = append(matches, m)
		}
	}
	if wanted[domain.EntityHallType] {
		if m, ok := extractVocab(text, hallTypes, domain.EntityHallType, "hall_type"); ok {
			matches = append(matches, m)
		}
	}
	if wanted[domain.EntityGuestCount] {
		if m, ok := extractGuestCount(text); ok {
			matches = append(matches, m)
		}
	}
	if wanted[domain.EntityDuration] {
		if m, ok := extractDuration(text); ok {
			matches = append(matches, m)
		}
	}
	if wanted[domain.EntityPersonName] {
		if m, ok := extractName(text, activeIntent); ok {
			matches = append(matches, m)
		}
	}

	filtered := matches[:0]
	for _, m := range matches {
		if m.Confidence >= e.cfg.MinConfidence {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// requiredEntityTypes maps the active intent's required slots onto the
// entity types worth attempting for this turn
func requiredEntityTypes(spec *domain.IntentSpec) map[domain.EntityType]bool {
	wanted := make(map[domain.EntityType]bool)
	if spec == nil {
		return wanted
	}
	for _, slot := range spec.RequiredSlots {
		switch {
		case strings.HasSuffix(slot, "_date"):
			wanted[domain.EntityDate] = true
		case slot == "guest_name" || slot == "organizer_name":
			wanted[domain.EntityPersonName] = true
		case slot == "room_type":
			wanted[domain.EntityRoomType] = true
		case slot == "meal_type":
			wanted[domain.EntityMealType] = true
		case slot == "hall_type":
			wanted[domain.EntityHallType] = true
		case slot == "guest_count":
			wanted[domain.EntityGuestCount] = true
		case slot == "duration":
			wanted[domain.EntityDuration] = true
		case slot == "booking_reference":
			wanted[domain.EntityBookingReference] = true
		}
	}
	return wanted
}

func (e *Extractor) extractPhone(text string) (domain.EntityMatch, bool) {
	for _, p := range phonePatterns {
		raw := p.FindString(text)
		if raw == "" {
			continue
		}
		parsed, err := phonenumbers.Parse(raw, e.cfg.DefaultRegion)
		if err != nil || !phonenumbers.IsValidNumber(parsed) {
			// implausible for the locale: discard the candidate
			continue
		}
		return domain.EntityMatch{
			Type:       domain.EntityPhoneNumber,
			Raw:        raw,
			Value:      phonenumbers.Format(parsed, phonenumbers.E164),
			Slot:       "phone_number",
			Confidence: confPhone,
		}, true
	}
	return domain.EntityMatch{}, false
}

func extractEmail(text string) (domain.EntityMatch, bool) {
	raw := emailPattern.FindString(text)
	if raw == "" {
		return domain.EntityMatch{}, false
	}
	return domain.EntityMatch{
		Type:       domain.EntityEmail,
		Raw:        raw,
		Value:      strings.ToLower(raw),
		Slot:       "email",
		Confidence: confEmail,
	}, true
}

// extractDates finds every temporal mention, relative expressions first.
// Slot assignment is contextual: explicit check-in/check-out wording wins,
// otherwise dates are left unrouted for the tracker to map onto its first
// missing date slot in order of appearance.
func extractDates(text string, spec *domain.IntentSpec, ref time.Time) []domain.EntityMatch {
	lower := strings.ToLower(text)
	var out []domain.EntityMatch

	for _, rel := range relativeDates {
		if idx := strings.Index(lower, rel.phrase); idx >= 0 {
			resolved := rel.offset(ref)
			out = append(out, domain.EntityMatch{
				Type:       domain.EntityDate,
				Raw:        rel.phrase,
				Value:      resolved.Format("2006-01-02"),
				Slot:       dateSlotFromContext(lower, idx, spec),
				Confidence: confRelativeDate,
			})
			break
		}
	}

	for _, p := range datePatterns {
		absolute := 0
		for _, loc := range p.FindAllStringIndex(text, -1) {
			raw := text[loc[0]:loc[1]]
			parsed, ok := parseAbsoluteDate(raw)
			if !ok {
				continue
			}
			absolute++
			out = append(out, domain.EntityMatch{
				Type:       domain.EntityDate,
				Raw:        raw,
				Value:      parsed.Format("2006-01-02"),
				Slot:       dateSlotFromContext(lower, loc[0], spec),
				Confidence: confAbsoluteDate,
			})
		}
		if absolute > 0 {
			// the higher-priority pattern already consumed these digits;
			// the next pattern would re-match fragments of the same span
			break
		}
	}
	return out
}

func parseAbsoluteDate(raw string) (time.Time, bool) {
	raw = strings.ReplaceAll(raw, "/", "-")
	for _, layout := range []string{"2006-01-02", "02-01-2006", "2006-1-2", "2-1-2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func dateSlotFromContext(lower string, pos int, spec *domain.IntentSpec) string {
	// only the text leading up to the mention disambiguates it
	window := lower[:pos]
	if len(window) > 40 {
		window = window[len(window)-40:]
	}
	switch {
	case strings.Contains(window, "check out") || strings.Contains(window, "check-out") ||
		strings.Contains(window, "checkout") || strings.Contains(window, "until") ||
		strings.Contains(window, "leaving"):
		return "check_out_date"
	case strings.Contains(window, "check in") || strings.Contains(window, "check-in") ||
		strings.Contains(window, "checkin") || strings.Contains(window, "arriving") ||
		strings.Contains(window, "from"):
		return "check_in_date"
	}
	if spec != nil {
		switch spec.Label {
		case domain.IntentDiningReservation:
			return "reservation_date"
		case domain.IntentEventBooking:
			return "event_date"
		}
	}
	return ""
}

func extractVocab(text string, vocab map[string][]string, entityType domain.EntityType, slot string) (domain.EntityMatch, bool) {
	words := strings.Fields(strings.ToLower(text))
	// exact alias pass before the fuzzy pass so a clean mention is never
	// claimed by a typo-tolerant near-miss of another category
	for canonical, aliases := range vocab {
		for _, alias := range aliases {
			for _, w := range words {
				if w == alias {
					return domain.EntityMatch{
						Type: entityType, Raw: w, Value: canonical,
						Slot: slot, Confidence: confVocabExact,
					}, true
				}
			}
		}
	}
	for canonical, aliases := range vocab {
		for _, alias := range aliases {
			for _, w := range words {
				if len(w) > 3 && levenshtein(w, alias) == 1 {
					return domain.EntityMatch{
						Type: entityType, Raw: w, Value: canonical,
						Slot: slot, Confidence: confVocabFuzzy,
					}, true
				}
			}
		}
	}
	return domain.EntityMatch{}, false
}

func extractGuestCount(text string) (domain.EntityMatch, bool) {
	for _, p := range guestCountPatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return domain.EntityMatch{
			Type:       domain.EntityGuestCount,
			Raw:        m[0],
			Value:      strconv.Itoa(n),
			Slot:       "guest_count",
			Confidence: confGuestCount,
		}, true
	}
	// a bare number while guests are the topic
	lower := strings.ToLower(text)
	if strings.Contains(lower, "guest") || strings.Contains(lower, "people") || strings.Contains(lower, "person") {
		if m := regexp.MustCompile(`\b(\d+)\b`).FindStringSubmatch(text); m != nil {
			return domain.EntityMatch{
				Type:       domain.EntityGuestCount,
				Raw:        m[0],
				Value:      m[1],
				Slot:       "guest_count",
				Confidence: confGuestCount,
			}, true
		}
	}
	return domain.EntityMatch{}, false
}

func extractDuration(text string) (domain.EntityMatch, bool) {
	m := durationPattern.FindStringSubmatch(text)
	if m == nil {
		return domain.EntityMatch{}, false
	}
	return domain.EntityMatch{
		Type:       domain.EntityDuration,
		Raw:        m[0],
		Value:      m[1],
		Slot:       "duration",
		Confidence: confDurationHours,
	}, true
}

var nameStopwords = map[string]bool{
	"yes": true, "no": true, "thank": true, "thanks": true,
	"please": true, "hello": true, "okay": true,
}

// extractName uses position/context heuristics: an introduction phrase
// anywhere, or an utterance that is nothing but a capitalized name while a
// name slot is being collected.
func extractName(text string, spec *domain.IntentSpec) (domain.EntityMatch, bool) {
	slot := "guest_name"
	if spec != nil && spec.Label == domain.IntentEventBooking {
		slot = "organizer_name"
	}

	for i, p := range namePatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if nameStopwords[strings.ToLower(strings.Fields(name)[0])] {
			continue
		}
		conf := confNameIntro
		if i > 0 {
			conf = confNameBare
		}
		return domain.EntityMatch{
			Type:       domain.EntityPersonName,
			Raw:        m[0],
			Value:      name,
			Slot:       slot,
			Confidence: conf,
		}, true
	}
	return domain.EntityMatch{}, false
}

// Validate applies type-specific semantic checks to an extracted match.
// Returns nil when the value may be merged into the session.
func Validate(m domain.EntityMatch, ref time.Time) *domain.SlotValidationError {
	switch m.Type {
	case domain.EntityDate:
		parsed, err := time.Parse("2006-01-02", m.Value)
		if err != nil {
			return &domain.SlotValidationError{Slot: m.Slot, Reason: "unrecognized date"}
		}
		refDay := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
		if parsed.Before(refDay) {
			return &domain.SlotValidationError{Slot: m.Slot, Reason: "date must not be in the past"}
		}
	case domain.EntityGuestCount:
		n, err := strconv.Atoi(m.Value)
		if err != nil || n < 1 || n > 100 {
			return &domain.SlotValidationError{Slot: m.Slot, Reason: "guest count must be between 1 and 100"}
		}
	case domain.EntityDuration:
		n, err := strconv.Atoi(m.Value)
		if err != nil || n < 1 || n > 24 {
			return &domain.SlotValidationError{Slot: m.Slot, Reason: "duration must be between 1 and 24 hours"}
		}
	}
	return nil
}

func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
