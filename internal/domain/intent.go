package domain

// Provenance records which classification tier produced a result
type Provenance string

const (
	ProvenanceRule     Provenance = "rule"
	ProvenanceFallback Provenance = "fallback-classifier"
	ProvenanceDefault  Provenance = "default"
)

// Well-known intent labels
const (
	IntentGreeting            = "greeting"
	IntentRoomBooking         = "room_booking"
	IntentRoomInquiry         = "room_inquiry"
	IntentDiningReservation   = "dining_reservation"
	IntentEventBooking        = "event_booking"
	IntentInformationRequest  = "information_request"
	IntentBookingModification = "booking_modification"
	IntentBookingCancellation = "booking_cancellation"
	IntentComplaint           = "complaint"
	IntentFarewell            = "farewell"
)

// IntentResult is the outcome of classifying one utterance
type IntentResult struct {
	Label      string     `json:"label"`
	Confidence float64    `json:"confidence"`
	Provenance Provenance `json:"provenance"`
}

// IntentSpec declares an intent: the slots it needs, the deterministic
// trigger patterns that identify it, and the confidence assigned to a rule
// match. Priority breaks ties between intents whose patterns both match;
// equal priorities fall back to declaration order.
type IntentSpec struct {
	Label             string   `json:"label"`
	RequiredSlots     []string `json:"required_slots"`
	Patterns          []string `json:"patterns"`
	DefaultConfidence float64  `json:"default_confidence"`
	Priority          int      `json:"priority"`
	// Executable marks intents that end in a call to the execution
	// collaborator once confirmed.
	Executable bool `json:"executable"`
}

// DefaultIntentSpecs is the intent catalog of the hotel concierge.
// Declaration order matters: it is the final tie-break for rule matches.
func DefaultIntentSpecs() []IntentSpec {
	return []IntentSpec{
		{
			Label:    IntentGreeting,
			Priority: 0,
			Patterns: []string{
				`\b(hello|hi|hey|good\s+(morning|afternoon|evening)|namaste|vanakkam)\b`,
				`\b(नमस्ते|हॅलो)\b`,
				`\b(வணக்கம்|ஹலோ)\b`,
				`\b(привет|здравствуйте)\b`,
				`\b(hola|bonjour|hallo|ciao)\b`,
			},
			DefaultConfidence: 0.95,
		},
		{
			Label:    IntentRoomBooking,
			Priority: 10,
			RequiredSlots: []string{
				"guest_name", "phone_number", "check_in_date",
				"check_out_date", "room_type", "guest_count",
			},
			Patterns: []string{
				`\b(book|reserve|want|need)\s+(a\s+)?(room|accommodation)\b`,
				`\b(room|कमरा|அறை)\s+(booking|बुकिंग|பதிவு)\b`,
				`\b(забронировать|бронировать)\s+(номер)?\b`,
				`\bcheck\s+in\b.*\bstay\b`,
			},
			DefaultConfidence: 0.95,
			Executable:        true,
		},
		{
			Label:    IntentRoomInquiry,
			Priority: 5,
			Patterns: []string{
				`\b(available|availability)\s+(of\s+)?(rooms?)\b`,
				`\b(room\s+)?(types|prices?|rates?|costs?)\b`,
				`\b(what|which|how\s+much)\s+(rooms?)\b`,
			},
			DefaultConfidence: 0.95,
		},
		{
			Label:    IntentDiningReservation,
			Priority: 10,
			RequiredSlots: []string{
				"guest_name", "phone_number", "reservation_date",
				"meal_type", "guest_count",
			},
			Patterns: []string{
				`\b(dining|dinner|lunch|breakfast|restaurant)\s+(reservation|booking)\b`,
				`\b(table|reserve|book)\s+.*\b(dinner|lunch|breakfast)\b`,
				`\b(भोजन|खाना)\s+(बुकिंग)\b`,
			},
			DefaultConfidence: 0.95,
			Executable:        true,
		},
		{
			Label:    IntentEventBooking,
			Priority: 10,
			RequiredSlots: []string{
				"organizer_name", "phone_number", "event_date",
				"hall_type", "guest_count", "duration",
			},
			Patterns: []string{
				`\b(party\s+hall|event\s+hall|conference\s+room|banquet)\b`,
				`\b(book|rent|need)\s+(a\s+)?(hall|venue)\b`,
				`\b(wedding|birthday|corporate)\s+(event|party)\b`,
			},
			DefaultConfidence: 0.95,
			Executable:        true,
		},
		{
			Label:    IntentBookingModification,
			Priority: 15,
			RequiredSlots: []string{
				"booking_reference",
			},
			Patterns: []string{
				`\b(change|modify|update)\s+(my\s+)?(booking|reservation)\b`,
				`\b(reschedule|postpone)\b`,
			},
			DefaultConfidence: 0.95,
			Executable:        true,
		},
		{
			Label:    IntentBookingCancellation,
			Priority: 15,
			RequiredSlots: []string{
				"booking_reference",
			},
			Patterns: []string{
				`\bcancel\s+(my\s+)?(booking|reservation)\b`,
				`\b(отменить)\s+(бронь|бронирование)\b`,
			},
			DefaultConfidence: 0.95,
			Executable:        true,
		},
		{
			Label:    IntentComplaint,
			Priority: 5,
			Patterns: []string{
				`\b(complaint|problem|issue|not\s+happy|disappointed|terrible|bad)\b`,
				`\b(शिकायत|समस्या)\b`,
				`\b(жалоба|проблема)\b`,
			},
			DefaultConfidence: 0.95,
		},
		{
			Label:    IntentFarewell,
			Priority: 0,
			Patterns: []string{
				`\b(bye|goodbye|thanks|thank\s+you|धन्यवाद|спасибо|merci|gracias|danke)\b`,
			},
			DefaultConfidence: 0.95,
		},
		{
			Label:    IntentInformationRequest,
			Priority: 1,
			Patterns: []string{
				`\b(tell\s+me|information|details|know)\s+(about)\b`,
				`\b(amenities|facilities|services)\b`,
				`\b(check\s+in|check\s+out)\s+(time|timing)\b`,
				`\b(pets?|parking|wifi|internet|payment)\b`,
			},
			DefaultConfidence: 0.95,
		},
	}
}

// IntentSpecByLabel returns the spec for label, or nil when unknown
func IntentSpecByLabel(specs []IntentSpec, label string) *IntentSpec {
	for i := range specs {
		if specs[i].Label == label {
			return &specs[i]
		}
	}
	return nil
}

// KnownIntentLabels lists every catalog label; used to validate output of
// the external classification provider.
func KnownIntentLabels(specs []IntentSpec) []string {
	labels := make([]string, 0, len(specs))
	for _, s := range specs {
		labels = append(labels, s.Label)
	}
	return labels
}
