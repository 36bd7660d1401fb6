package domain

// Language codes supported by the engine. The detector may emit any of
// these; anything else degrades to the configured default.
const (
	LangEnglish = "en"
	LangHindi   = "hi"
	LangTamil   = "ta"
	LangTelugu  = "te"
	LangKannada = "kn"
	LangRussian = "ru"
	LangFrench  = "fr"
	LangGerman  = "de"
	LangSpanish = "es"
)

var languageNames = map[string]string{
	LangEnglish: "English",
	LangHindi:   "Hindi",
	LangTamil:   "Tamil",
	LangTelugu:  "Telugu",
	LangKannada: "Kannada",
	LangRussian: "Russian",
	LangFrench:  "French",
	LangGerman:  "German",
	LangSpanish: "Spanish",
}

// LanguageName returns the display name for a language code
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return "English"
}

// DetectionResult is the outcome of language detection. Fallback marks a
// degraded result where the default language was substituted.
type DetectionResult struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
	Fallback   bool    `json:"fallback"`
}
