// Package sentiment scores inbound chat messages for polarity and urgency.
// The score drives the response tone and the ticket escalation priority; a
// failure here must never abort the chat pipeline, so every fallible step
// degrades to a neutral default instead of returning an error.
package sentiment

import (
	"context"
	"math"
	"regexp"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/jonreiter/govader"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/espacovida/clinic-chatbot/pkg/logging"
)

var sentimentTracer = otel.Tracer("clinic/sentiment")

// Sentiment classifies the overall emotional charge of a message.
type Sentiment string

const (
	SentimentPositive  Sentiment = "positive"
	SentimentNegative  Sentiment = "negative"
	SentimentNeutral   Sentiment = "neutral"
	SentimentEmergency Sentiment = "emergency"
)

// EmergencyLevel grades how many crisis keywords a message contains.
type EmergencyLevel string

const (
	LevelLow    EmergencyLevel = "low"
	LevelMedium EmergencyLevel = "medium"
	LevelHigh   EmergencyLevel = "high"
)

// KeywordMatch records one keyword hit and the list it came from.
type KeywordMatch struct {
	Category string `json:"category"`
	Keyword  string `json:"keyword"`
}

// Result is the full outcome of scoring a single message. It is computed
// fresh per message and attached to the user Message; it is never stored
// on its own.
type Result struct {
	Sentiment      Sentiment      `json:"sentiment"`
	Polarity       float64        `json:"polarity"`
	Subjectivity   float64        `json:"subjectivity"`
	Confidence     float64        `json:"confidence"`
	Language       string         `json:"language"`
	EmergencyLevel EmergencyLevel `json:"emergency_level"`
	KeywordsFound  []KeywordMatch `json:"keywords_found,omitempty"`
}

// HasEmergencyKeywords reports whether at least one crisis keyword matched.
func (r *Result) HasEmergencyKeywords() bool {
	if r == nil {
		return false
	}
	for _, match := range r.KeywordsFound {
		if match.Category == "emergency" {
			return true
		}
	}
	return false
}

var (
	urlPattern        = regexp.MustCompile(`http[s]?://\S+`)
	repeatedBang      = regexp.MustCompile(`[!]{2,}`)
	repeatedQuestion  = regexp.MustCompile(`[?]{2,}`)
	repeatedEllipsis  = regexp.MustCompile(`[.]{3,}`)
	repeatedWhitespce = regexp.MustCompile(`\s+`)
)

// Analyzer scores messages using a VADER lexicon for polarity plus fixed
// Portuguese keyword lists for crisis and mood detection.
type Analyzer struct {
	vader             *govader.SentimentIntensityAnalyzer
	logger            *logging.Logger
	emergencyKeywords []string
	positiveKeywords  []string
	negativeKeywords  []string
}

// NewAnalyzer creates a sentiment analyzer with the default keyword lists.
func NewAnalyzer(logger *logging.Logger) *Analyzer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Analyzer{
		vader:  govader.NewSentimentIntensityAnalyzer(),
		logger: logger,
		emergencyKeywords: []string{
			"suicídio", "suicidio", "matar", "morrer", "morte", "acabar com tudo",
			"não aguento mais", "nao aguento mais", "desespero", "desesperad",
			"overdose", "intoxicação", "intoxicacao", "crise", "emergência", "emergencia",
			"socorro", "ajuda urgente", "urgente", "agora", "imediatamente",
		},
		positiveKeywords: []string{
			"obrigado", "obrigada", "agradeco", "agradeço", "grato", "grata",
			"ajudou", "melhor", "bem", "feliz", "esperança", "esperanca",
			"otimista", "confiante", "motivado", "motivada", "positivo", "positiva",
		},
		negativeKeywords: []string{
			"triste", "deprimido", "deprimida", "ansioso", "ansiosa", "preocupado",
			"preocupada", "medo", "receio", "nervoso", "nervosa", "estressado",
			"estressada", "cansado", "cansada", "frustrado", "frustrada",
		},
	}
}

// DetectLanguage returns the ISO 639-1 code of the text's language.
// Detection is best-effort and defaults to Portuguese.
func (a *Analyzer) DetectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return "pt"
	}
	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" || !info.IsReliable() {
		return "pt"
	}
	return code
}

// cleanText strips URLs, collapses repeated punctuation and trims whitespace.
func cleanText(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = repeatedBang.ReplaceAllString(text, "!")
	text = repeatedQuestion.ReplaceAllString(text, "?")
	text = repeatedEllipsis.ReplaceAllString(text, "...")
	return strings.TrimSpace(repeatedWhitespce.ReplaceAllString(text, " "))
}

// Analyze scores a single message. It never returns an error: short or
// empty input yields a neutral zero-confidence result, and language
// detection failures fall back to Portuguese.
func (a *Analyzer) Analyze(ctx context.Context, text string) Result {
	_, span := sentimentTracer.Start(ctx, "sentiment.analyze")
	defer span.End()

	if len([]rune(strings.TrimSpace(text))) < 3 {
		return Result{
			Sentiment:      SentimentNeutral,
			Language:       "unknown",
			EmergencyLevel: LevelLow,
		}
	}

	cleaned := cleanText(text)
	language := a.DetectLanguage(cleaned)

	scores := a.vader.PolarityScores(cleaned)
	polarity := scores.Compound
	subjectivity := math.Min(scores.Positive+scores.Negative, 1.0)

	sentiment := SentimentNeutral
	switch {
	case polarity > 0.1:
		sentiment = SentimentPositive
	case polarity < -0.1:
		sentiment = SentimentNegative
	}

	confidence := math.Min(math.Abs(polarity)+subjectivity, 1.0)

	lowered := strings.ToLower(cleaned)
	emergencyLevel := a.emergencyLevel(lowered)
	keywords := a.findKeywords(lowered)

	// Keyword overrides. A high emergency level always wins; mood keyword
	// lists only adjust non-emergency results.
	switch {
	case emergencyLevel == LevelHigh:
		sentiment = SentimentEmergency
		confidence = math.Max(confidence, 0.8)
	case containsAny(lowered, a.positiveKeywords):
		sentiment = SentimentPositive
		confidence = math.Max(confidence, 0.6)
	case containsAny(lowered, a.negativeKeywords):
		sentiment = SentimentNegative
		confidence = math.Max(confidence, 0.6)
	}

	span.SetAttributes(
		attribute.String("sentiment.value", string(sentiment)),
		attribute.String("sentiment.emergency_level", string(emergencyLevel)),
		attribute.Float64("sentiment.polarity", polarity),
	)

	return Result{
		Sentiment:      sentiment,
		Polarity:       round3(polarity),
		Subjectivity:   round3(subjectivity),
		Confidence:     round3(confidence),
		Language:       language,
		EmergencyLevel: emergencyLevel,
		KeywordsFound:  keywords,
	}
}

// emergencyLevel counts distinct crisis keywords: two or more is high,
// exactly one is medium.
func (a *Analyzer) emergencyLevel(lowered string) EmergencyLevel {
	count := 0
	for _, keyword := range a.emergencyKeywords {
		if strings.Contains(lowered, keyword) {
			count++
		}
	}
	switch {
	case count >= 2:
		return LevelHigh
	case count == 1:
		return LevelMedium
	default:
		return LevelLow
	}
}

func (a *Analyzer) findKeywords(lowered string) []KeywordMatch {
	var found []KeywordMatch
	for _, keyword := range a.emergencyKeywords {
		if strings.Contains(lowered, keyword) {
			found = append(found, KeywordMatch{Category: "emergency", Keyword: keyword})
		}
	}
	for _, keyword := range a.positiveKeywords {
		if strings.Contains(lowered, keyword) {
			found = append(found, KeywordMatch{Category: "positive", Keyword: keyword})
		}
	}
	for _, keyword := range a.negativeKeywords {
		if strings.Contains(lowered, keyword) {
			found = append(found, KeywordMatch{Category: "negative", Keyword: keyword})
		}
	}
	return found
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
