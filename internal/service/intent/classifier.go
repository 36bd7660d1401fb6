package intent

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/domain"
	"github.com/seu-repo/concierge-ai/internal/observability/telemetry"
	"github.com/seu-repo/concierge-ai/internal/ports"
)

// DefaultFallbackIntent is returned by the default tier when both the rule
// tier and the provider tier produce nothing usable.
const DefaultFallbackIntent = domain.IntentInformationRequest

const defaultFallbackConfidence = 0.5

type Config struct {
	ProviderTimeout time.Duration
	Breaker         gobreaker.Settings
}

type compiledSpec struct {
	spec     domain.IntentSpec
	patterns []*regexp.Regexp
	// declIndex is the position in the catalog; the final tie-break for
	// simultaneous rule matches, so classification stays deterministic.
	declIndex int
}

// Classifier implements the three-tier intent pipeline: deterministic rule
// matching, an external provider fallback, and a fixed default.
type Classifier struct {
	specs    []compiledSpec
	catalog  []domain.IntentSpec
	known    map[string]bool
	provider ports.ClassificationProvider
	breaker  *gobreaker.CircuitBreaker
	timeout  time.Duration
	log      *zap.Logger
}

// NewClassifier compiles the trigger patterns of every spec. Provider may
// be nil, in which case tier 2 is skipped entirely.
func NewClassifier(specs []domain.IntentSpec, provider ports.ClassificationProvider, cfg Config, log *zap.Logger) (*Classifier, error) {
	compiled := make([]compiledSpec, 0, len(specs))
	known := make(map[string]bool, len(specs))
	for i, spec := range specs {
		cs := compiledSpec{spec: spec, declIndex: i}
		for _, p := range spec.Patterns {
			re, err := regexp.Compile(`(?i)` + p)
			if err != nil {
				return nil, fmt.Errorf("intent %q: compile pattern %q: %w", spec.Label, p, err)
			}
			cs.patterns = append(cs.patterns, re)
		}
		compiled = append(compiled, cs)
		known[spec.Label] = true
	}

	timeout := cfg.ProviderTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	var breaker *gobreaker.CircuitBreaker
	if provider != nil {
		settings := cfg.Breaker
		if settings.Name == "" {
			settings.Name = "intent-provider"
		}
		if settings.ReadyToTrip == nil {
			settings.ReadyToTrip = func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			}
		}
		breaker = gobreaker.NewCircuitBreaker(settings)
	}

	return &Classifier{
		specs:    compiled,
		catalog:  specs,
		known:    known,
		provider: provider,
		breaker:  breaker,
		timeout:  timeout,
		log:      log,
	}, nil
}

func (c *Classifier) Specs() []domain.IntentSpec {
	return c.catalog
}

// Classify runs the tiered pipeline. The provider call is the only step
// that can block; it is bounded by the configured timeout and isolated
// behind a circuit breaker so its failure can never corrupt the turn.
func (c *Classifier) Classify(ctx context.Context, text string, session *domain.Session) domain.IntentResult {
	language := ""
	if session != nil {
		language = session.Language
	}
	normalized := Normalize(text, language)

	if result, ok := c.classifyByRules(normalized); ok {
		telemetry.IntentClassifications.WithLabelValues(result.Label, string(result.Provenance)).Inc()
		return result
	}

	if c.provider != nil {
		if result, err := c.classifyWithProvider(ctx, text, language); err == nil {
			telemetry.IntentClassifications.WithLabelValues(result.Label, string(result.Provenance)).Inc()
			return result
		} else if !errors.Is(err, context.Canceled) {
			c.log.Warn("provider classification failed, using default tier",
				zap.Error(err),
			)
			telemetry.ClassifierTierFallbacks.Inc()
		}
	}

	result := domain.IntentResult{
		Label:      DefaultFallbackIntent,
		Confidence: defaultFallbackConfidence,
		Provenance: domain.ProvenanceDefault,
	}
	telemetry.IntentClassifications.WithLabelValues(result.Label, string(result.Provenance)).Inc()
	return result
}

// classifyByRules evaluates every spec's trigger patterns against the
// normalized text. When multiple intents match, the higher priority wins;
// among equal priorities the longer literal match wins; remaining ties go
// to declaration order.
func (c *Classifier) classifyByRules(normalized string) (domain.IntentResult, bool) {
	type candidate struct {
		spec      *domain.IntentSpec
		matchLen  int
		declIndex int
	}
	var best *candidate

	for i := range c.specs {
		cs := &c.specs[i]
		for _, re := range cs.patterns {
			m := re.FindString(normalized)
			if m == "" {
				continue
			}
			cand := candidate{spec: &cs.spec, matchLen: len(m), declIndex: cs.declIndex}
			if best == nil || betterRuleMatch(cand.spec.Priority, cand.matchLen, cand.declIndex,
				best.spec.Priority, best.matchLen, best.declIndex) {
				best = &cand
			}
		}
	}

	if best == nil {
		return domain.IntentResult{}, false
	}
	return domain.IntentResult{
		Label:      best.spec.Label,
		Confidence: best.spec.DefaultConfidence,
		Provenance: domain.ProvenanceRule,
	}, true
}

func betterRuleMatch(p1, l1, d1, p2, l2, d2 int) bool {
	if p1 != p2 {
		return p1 > p2
	}
	if l1 != l2 {
		return l1 > l2
	}
	return d1 < d2
}

func (c *Classifier) classifyWithProvider(ctx context.Context, text, language string) (domain.IntentResult, error) {
	prompt := c.buildPrompt(text, language)

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	out, err := c.breaker.Execute(func() (interface{}, error) {
		label, confidence, err := c.provider.Classify(callCtx, prompt)
		if err != nil {
			return nil, err
		}
		return domain.IntentResult{Label: label, Confidence: confidence}, nil
	})
	telemetry.ProviderLatency.Observe(time.Since(started).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return domain.IntentResult{}, domain.ErrProviderUnavailable
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return domain.IntentResult{}, domain.ErrProviderTimeout
		}
		return domain.IntentResult{}, err
	}

	result := out.(domain.IntentResult)
	if !c.known[result.Label] {
		return domain.IntentResult{}, fmt.Errorf("provider returned unknown intent label %q", result.Label)
	}
	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}
	result.Provenance = domain.ProvenanceFallback
	return result, nil
}

func (c *Classifier) buildPrompt(text, language string) string {
	var b strings.Builder
	b.WriteString("Classify the intent of this hotel guest message.\n\n")
	fmt.Fprintf(&b, "Message: %q\n", text)
	if language != "" {
		fmt.Fprintf(&b, "Language: %s\n", language)
	}
	b.WriteString("\nPossible intents:\n")
	for _, spec := range c.catalog {
		fmt.Fprintf(&b, "- %s\n", spec.Label)
	}
	b.WriteString("\nRespond ONLY with a JSON object in this format:\n")
	b.WriteString(`{"intent": "intent_name", "confidence": 0.95}`)
	return b.String()
}

// Normalize case-folds text and strips punctuation while preserving
// letters in any script, so the rule patterns see a stable form.
// Identical input always yields identical output.
func Normalize(text, language string) string {
	_ = language // folding is script-agnostic for the supported set
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '@' || r == '.' || r == '+' || r == '-' || r == '/':
			// kept so emails, phones and dates survive normalization
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
