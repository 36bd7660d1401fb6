package entity

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/domain"
)

var refClock = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestExtractor() *Extractor {
	e := NewExtractor(Config{DefaultRegion: "IN", MinConfidence: 0.6}, zap.NewNop())
	return e.(*Extractor)
}

func roomBookingSpec() *domain.IntentSpec {
	return domain.IntentSpecByLabel(domain.DefaultIntentSpecs(), domain.IntentRoomBooking)
}

func findMatch(matches []domain.EntityMatch, typ domain.EntityType) (domain.EntityMatch, bool) {
	for _, m := range matches {
		if m.Type == typ {
			return m, true
		}
	}
	return domain.EntityMatch{}, false
}

func TestExtract_ValidPhoneNumber(t *testing.T) {
	extractor := newTestExtractor()

	matches := extractor.Extract("my number is 9876543210", roomBookingSpec(), "en", refClock)

	m, ok := findMatch(matches, domain.EntityPhoneNumber)
	if !ok {
		t.Fatal("expected a phone number match")
	}
	if m.Value != "+919876543210" {
		t.Errorf("expected E.164 value +919876543210, got %q", m.Value)
	}
	if m.Slot != "phone_number" {
		t.Errorf("expected slot phone_number, got %q", m.Slot)
	}
	if m.Confidence < 0.9 {
		t.Errorf("expected high confidence, got %f", m.Confidence)
	}
}

func TestExtract_ImplausiblePhoneDiscarded(t *testing.T) {
	extractor := newTestExtractor()

	// ten digits but not a valid number for the locale
	matches := extractor.Extract("my number is 0000000000", roomBookingSpec(), "en", refClock)

	if _, ok := findMatch(matches, domain.EntityPhoneNumber); ok {
		t.Error("implausible phone number must be discarded, not returned")
	}
}

func TestExtract_NothingFromGarbage(t *testing.T) {
	extractor := newTestExtractor()

	matches := extractor.Extract("abc", roomBookingSpec(), "en", refClock)
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %+v", matches)
	}
}

func TestExtract_Email(t *testing.T) {
	extractor := newTestExtractor()

	matches := extractor.Extract("reach me at Guest.One@Example.COM", nil, "en", refClock)

	m, ok := findMatch(matches, domain.EntityEmail)
	if !ok {
		t.Fatal("expected an email match")
	}
	if m.Value != "guest.one@example.com" {
		t.Errorf("expected lowercased value, got %q", m.Value)
	}
}

func TestExtract_AbsoluteDate(t *testing.T) {
	extractor := newTestExtractor()

	matches := extractor.Extract("check in on 2026-04-01", roomBookingSpec(), "en", refClock)

	m, ok := findMatch(matches, domain.EntityDate)
	if !ok {
		t.Fatal("expected a date match")
	}
	if m.Value != "2026-04-01" {
		t.Errorf("expected 2026-04-01, got %q", m.Value)
	}
	if m.Slot != "check_in_date" {
		t.Errorf("expected contextual slot check_in_date, got %q", m.Slot)
	}
}

func TestExtract_RelativeDatesAgainstReferenceClock(t *testing.T) {
	extractor := newTestExtractor()

	tests := []struct {
		text string
		want string
	}{
		{"arriving tomorrow", "2026-03-11"},
		{"arriving day after tomorrow", "2026-03-12"},
		{"arriving today", "2026-03-10"},
		{"arriving next week", "2026-03-17"},
	}

	for _, tt := range tests {
		matches := extractor.Extract(tt.text, roomBookingSpec(), "en", refClock)
		m, ok := findMatch(matches, domain.EntityDate)
		if !ok {
			t.Errorf("text %q: expected a date match", tt.text)
			continue
		}
		if m.Value != tt.want {
			t.Errorf("text %q: expected %q, got %q", tt.text, tt.want, m.Value)
		}
	}
}

func TestExtract_CheckInAndCheckOutRouting(t *testing.T) {
	extractor := newTestExtractor()

	matches := extractor.Extract(
		"check in 2026-04-01 and check out 2026-04-05",
		roomBookingSpec(), "en", refClock,
	)

	var gotIn, gotOut bool
	for _, m := range matches {
		if m.Type != domain.EntityDate {
			continue
		}
		switch m.Slot {
		case "check_in_date":
			gotIn = true
			if m.Value != "2026-04-01" {
				t.Errorf("check_in_date: expected 2026-04-01, got %q", m.Value)
			}
		case "check_out_date":
			gotOut = true
			if m.Value != "2026-04-05" {
				t.Errorf("check_out_date: expected 2026-04-05, got %q", m.Value)
			}
		}
	}
	if !gotIn || !gotOut {
		t.Errorf("expected both date slots routed, got %+v", matches)
	}
}

func TestExtract_RoomTypeVocab(t *testing.T) {
	extractor := newTestExtractor()

	tests := []struct {
		text     string
		want     string
		wantConf float64
	}{
		{"a deluxe room please", "deluxe", confVocabExact},
		{"a luxury room please", "deluxe", confVocabExact},
		{"a delux room please", "deluxe", confVocabFuzzy}, // one-char typo
	}

	for _, tt := range tests {
		matches := extractor.Extract(tt.text, roomBookingSpec(), "en", refClock)
		m, ok := findMatch(matches, domain.EntityRoomType)
		if !ok {
			t.Errorf("text %q: expected a room type match", tt.text)
			continue
		}
		if m.Value != tt.want {
			t.Errorf("text %q: expected %q, got %q", tt.text, tt.want, m.Value)
		}
		if m.Confidence != tt.wantConf {
			t.Errorf("text %q: expected confidence %f, got %f", tt.text, tt.wantConf, m.Confidence)
		}
	}
}

func TestExtract_GuestCount(t *testing.T) {
	extractor := newTestExtractor()

	matches := extractor.Extract("a room for 2 guests", roomBookingSpec(), "en", refClock)

	m, ok := findMatch(matches, domain.EntityGuestCount)
	if !ok {
		t.Fatal("expected a guest count match")
	}
	if m.Value != "2" {
		t.Errorf("expected 2, got %q", m.Value)
	}
}

func TestExtract_NameIntroduction(t *testing.T) {
	extractor := newTestExtractor()

	matches := extractor.Extract("My name is Rajesh Kumar", roomBookingSpec(), "en", refClock)

	m, ok := findMatch(matches, domain.EntityPersonName)
	if !ok {
		t.Fatal("expected a person name match")
	}
	if m.Value != "Rajesh Kumar" {
		t.Errorf("expected Rajesh Kumar, got %q", m.Value)
	}
	if m.Slot != "guest_name" {
		t.Errorf("expected slot guest_name, got %q", m.Slot)
	}
	if m.Confidence != confNameIntro {
		t.Errorf("expected intro confidence, got %f", m.Confidence)
	}
}

func TestExtract_BareNameLowerConfidence(t *testing.T) {
	extractor := newTestExtractor()

	matches := extractor.Extract("Priya Sharma", roomBookingSpec(), "en", refClock)

	m, ok := findMatch(matches, domain.EntityPersonName)
	if !ok {
		t.Fatal("expected a person name match")
	}
	if m.Confidence != confNameBare {
		t.Errorf("bare name must carry reduced confidence, got %f", m.Confidence)
	}
}

func TestExtract_OrganizerNameForEvents(t *testing.T) {
	extractor := newTestExtractor()
	spec := domain.IntentSpecByLabel(domain.DefaultIntentSpecs(), domain.IntentEventBooking)

	matches := extractor.Extract("I am Amit Verma", spec, "en", refClock)

	m, ok := findMatch(matches, domain.EntityPersonName)
	if !ok {
		t.Fatal("expected a person name match")
	}
	if m.Slot != "organizer_name" {
		t.Errorf("expected slot organizer_name, got %q", m.Slot)
	}
}

func TestExtract_BookingReference(t *testing.T) {
	extractor := newTestExtractor()
	spec := domain.IntentSpecByLabel(domain.DefaultIntentSpecs(), domain.IntentBookingCancellation)

	matches := extractor.Extract("my reference is BK2603100A1F", spec, "en", refClock)

	m, ok := findMatch(matches, domain.EntityBookingReference)
	if !ok {
		t.Fatal("expected a booking reference match")
	}
	if m.Value != "BK2603100A1F" {
		t.Errorf("expected BK2603100A1F, got %q", m.Value)
	}
}

func TestExtract_GatedByActiveIntent(t *testing.T) {
	extractor := newTestExtractor()

	// no active intent: dates and room types are not attempted
	matches := extractor.Extract("a deluxe room tomorrow", nil, "en", refClock)
	if _, ok := findMatch(matches, domain.EntityRoomType); ok {
		t.Error("room type must not be extracted without an active intent needing it")
	}
	if _, ok := findMatch(matches, domain.EntityDate); ok {
		t.Error("date must not be extracted without an active intent needing it")
	}

	// phone is always attempted regardless of intent
	matches = extractor.Extract("9876543210", nil, "en", refClock)
	if _, ok := findMatch(matches, domain.EntityPhoneNumber); !ok {
		t.Error("phone must be extracted even without an active intent")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		match   domain.EntityMatch
		wantErr bool
	}{
		{
			"future date ok",
			domain.EntityMatch{Type: domain.EntityDate, Value: "2026-03-11", Slot: "check_in_date"},
			false,
		},
		{
			"same day ok",
			domain.EntityMatch{Type: domain.EntityDate, Value: "2026-03-10", Slot: "check_in_date"},
			false,
		},
		{
			"past date rejected",
			domain.EntityMatch{Type: domain.EntityDate, Value: "2026-03-09", Slot: "check_in_date"},
			true,
		},
		{
			"guest count in range",
			domain.EntityMatch{Type: domain.EntityGuestCount, Value: "4", Slot: "guest_count"},
			false,
		},
		{
			"guest count too large",
			domain.EntityMatch{Type: domain.EntityGuestCount, Value: "500", Slot: "guest_count"},
			true,
		},
		{
			"duration out of range",
			domain.EntityMatch{Type: domain.EntityDuration, Value: "48", Slot: "duration"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.match, refClock)
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"deluxe", "deluxe", 0},
		{"delux", "deluxe", 1},
		{"dinner", "dinnar", 1},
		{"suite", "single", 4},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
