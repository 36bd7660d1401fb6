package language

import (
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/domain"
	"github.com/seu-repo/concierge-ai/internal/ports"
)

// scriptRange maps a contiguous Unicode block to a language. Script
// membership is the most reliable signal for the supported non-Latin
// languages, so it is checked first.
type scriptRange struct {
	lo, hi rune
	lang   string
}

var scriptRanges = []scriptRange{
	{0x0900, 0x097F, domain.LangHindi},   // Devanagari
	{0x0B80, 0x0BFF, domain.LangTamil},   // Tamil
	{0x0C00, 0x0C7F, domain.LangTelugu},  // Telugu
	{0x0C80, 0x0CFF, domain.LangKannada}, // Kannada
	{0x0400, 0x04FF, domain.LangRussian}, // Cyrillic
}

// phraseIndicators catch high-frequency greetings and domain words for
// Latin-script languages the script check cannot separate.
var phraseIndicators = map[string][]string{
	domain.LangFrench:  {"bonjour", "merci", "chambre", "réserver", "hôtel"},
	domain.LangGerman:  {"hallo", "danke", "zimmer", "buchen", "übernachtung"},
	domain.LangSpanish: {"hola", "gracias", "habitación", "reservar", "huéspedes"},
}

type Config struct {
	DefaultLanguage string
	Supported       []string
	MinConfidence   float64
}

type Detector struct {
	cfg       Config
	supported map[string]bool
	log       *zap.Logger
}

func NewDetector(cfg Config, log *zap.Logger) ports.LanguageDetector {
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = domain.LangEnglish
	}
	supported := make(map[string]bool, len(cfg.Supported))
	for _, code := range cfg.Supported {
		supported[code] = true
	}
	if len(supported) == 0 {
		supported[domain.LangEnglish] = true
	}
	return &Detector{cfg: cfg, supported: supported, log: log}
}

// Detect resolves the language of text: script ranges, then phrase
// indicators, then the statistical classifier. Unrecognized input degrades
// to the default language with zero confidence, never an error.
func (d *Detector) Detect(text string) domain.DetectionResult {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < 2 {
		return d.fallback()
	}

	if lang, ok := d.detectByScript(trimmed); ok {
		return domain.DetectionResult{Language: lang, Confidence: 0.99}
	}

	if lang, ok := d.detectByPhrase(trimmed); ok {
		return domain.DetectionResult{Language: lang, Confidence: 0.9}
	}

	info := whatlanggo.Detect(trimmed)
	code := info.Lang.Iso6391()
	if d.supported[code] && info.Confidence >= d.cfg.MinConfidence {
		return domain.DetectionResult{Language: code, Confidence: info.Confidence}
	}

	return d.fallback()
}

func (d *Detector) detectByScript(text string) (string, bool) {
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		for _, sr := range scriptRanges {
			if r >= sr.lo && r <= sr.hi {
				if d.supported[sr.lang] {
					return sr.lang, true
				}
				return "", false
			}
		}
	}
	return "", false
}

func (d *Detector) detectByPhrase(text string) (string, bool) {
	lower := strings.ToLower(text)
	for lang, indicators := range phraseIndicators {
		if !d.supported[lang] {
			continue
		}
		for _, indicator := range indicators {
			if strings.Contains(lower, indicator) {
				return lang, true
			}
		}
	}
	return "", false
}

func (d *Detector) fallback() domain.DetectionResult {
	return domain.DetectionResult{
		Language: d.cfg.DefaultLanguage,
		Fallback: true,
	}
}
