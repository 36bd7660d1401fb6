package dialogue

import (
	"fmt"
	"sort"
	"strings"

	"github.com/seu-repo/concierge-ai/internal/domain"
	"github.com/seu-repo/concierge-ai/internal/ports"
)

// Composer renders system messages from templates selected by
// (language, key). It is pure: no session mutation, no business logic.
// A missing (language, key) pair falls back to the default language and
// finally to English, never to an empty response.
type Composer struct {
	defaultLang string
	hotelName   string
	checkIn     string
	checkOut    string
	roomTypes   map[string]ports.RoomTypeInfo
}

func NewComposer(defaultLang, hotelName, checkIn, checkOut string, roomTypes map[string]ports.RoomTypeInfo) *Composer {
	if defaultLang == "" {
		defaultLang = "en"
	}
	return &Composer{
		defaultLang: defaultLang,
		hotelName:   hotelName,
		checkIn:     checkIn,
		checkOut:    checkOut,
		roomTypes:   roomTypes,
	}
}

// Render resolves the template for key in lang and interpolates data.
// Hotel-level placeholders are always available.
func (c *Composer) Render(lang, key string, data map[string]string) string {
	tmpl := c.lookup(lang, key)
	if tmpl == "" {
		return c.lookup("en", keyFallback)
	}
	out := tmpl
	out = strings.ReplaceAll(out, "{hotel}", c.hotelName)
	out = strings.ReplaceAll(out, "{check_in}", c.checkIn)
	out = strings.ReplaceAll(out, "{check_out}", c.checkOut)
	for k, v := range data {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}

func (c *Composer) lookup(lang, key string) string {
	for _, l := range []string{lang, c.defaultLang, "en"} {
		if byKey, ok := templates[l]; ok {
			if tmpl, ok := byKey[key]; ok {
				return tmpl
			}
		}
	}
	return ""
}

// AskSlot prompts for one missing slot
func (c *Composer) AskSlot(lang, slot string) string {
	return c.Render(lang, "ask_slot."+slot, nil)
}

// Summary lists collected slots in the intent's declared order, rendered
// with localized labels.
func (c *Composer) Summary(lang string, spec *domain.IntentSpec, slots map[string]domain.SlotValue) string {
	if spec == nil {
		return ""
	}
	var b strings.Builder
	for _, name := range spec.RequiredSlots {
		sv, ok := slots[name]
		if !ok || sv.Status != domain.SlotValid {
			continue
		}
		fmt.Fprintf(&b, "  %s: %s\n", c.slotLabel(lang, name), sv.Value)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (c *Composer) slotLabel(lang, slot string) string {
	for _, l := range []string{lang, c.defaultLang, "en"} {
		if labels, ok := slotLabels[l]; ok {
			if label, ok := labels[slot]; ok {
				return label
			}
		}
	}
	return slot
}

// IntentLabel renders a human-readable name for an intent
func (c *Composer) IntentLabel(lang, intent string) string {
	for _, l := range []string{lang, c.defaultLang, "en"} {
		if labels, ok := intentLabels[l]; ok {
			if label, ok := labels[intent]; ok {
				return label
			}
		}
	}
	return strings.ReplaceAll(intent, "_", " ")
}

// RoomCatalog lists the bookable room categories, cheapest first
func (c *Composer) RoomCatalog(lang string) string {
	keys := make([]string, 0, len(c.roomTypes))
	for k := range c.roomTypes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return c.roomTypes[keys[i]].Price < c.roomTypes[keys[j]].Price
	})
	var b strings.Builder
	for _, k := range keys {
		rt := c.roomTypes[k]
		fmt.Fprintf(&b, "  %s: ₹%.0f/night, up to %d guests (%s)\n",
			rt.Name, rt.Price, rt.Capacity, strings.Join(rt.Amenities, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// KnowledgeAnswer matches the utterance against the hotel knowledge topics.
// Returns false when no topic applies.
func (c *Composer) KnowledgeAnswer(lang, utterance string) (string, bool) {
	lower := strings.ToLower(utterance)
	for _, topic := range knowledgeTopics {
		for _, kw := range topic.keywords {
			if strings.Contains(lower, kw) {
				return c.Render(lang, topic.key, nil), true
			}
		}
	}
	return "", false
}
