package sentiment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeShortInputIsNeutral(t *testing.T) {
	a := NewAnalyzer(nil)

	for _, input := range []string{"", "  ", "oi", "a"} {
		result := a.Analyze(context.Background(), input)
		assert.Equal(t, SentimentNeutral, result.Sentiment, "input %q", input)
		assert.Equal(t, LevelLow, result.EmergencyLevel)
		assert.Equal(t, "unknown", result.Language)
		assert.Zero(t, result.Confidence)
		assert.Empty(t, result.KeywordsFound)
	}
}

func TestAnalyzeEmergencyOverride(t *testing.T) {
	a := NewAnalyzer(nil)

	result := a.Analyze(context.Background(), "estou em crise, é uma emergência")

	assert.Equal(t, SentimentEmergency, result.Sentiment)
	assert.Equal(t, LevelHigh, result.EmergencyLevel)
	assert.GreaterOrEqual(t, result.Confidence, 0.8)
	assert.True(t, result.HasEmergencyKeywords())
}

func TestAnalyzeSingleEmergencyKeywordIsMedium(t *testing.T) {
	a := NewAnalyzer(nil)

	result := a.Analyze(context.Background(), "preciso de socorro")

	assert.Equal(t, LevelMedium, result.EmergencyLevel)
	assert.NotEqual(t, SentimentEmergency, result.Sentiment)
	assert.True(t, result.HasEmergencyKeywords())
}

func TestAnalyzeKeywordMoodOverrides(t *testing.T) {
	a := NewAnalyzer(nil)

	positive := a.Analyze(context.Background(), "obrigado pela atenção, me ajudou muito")
	assert.Equal(t, SentimentPositive, positive.Sentiment)
	assert.GreaterOrEqual(t, positive.Confidence, 0.6)

	negative := a.Analyze(context.Background(), "estou muito triste e ansioso")
	assert.Equal(t, SentimentNegative, negative.Sentiment)
	assert.GreaterOrEqual(t, negative.Confidence, 0.6)
	assert.False(t, negative.HasEmergencyKeywords())
}

func TestAnalyzeRecordsKeywordMatches(t *testing.T) {
	a := NewAnalyzer(nil)

	result := a.Analyze(context.Background(), "socorro, estou com medo")

	categories := map[string]bool{}
	for _, match := range result.KeywordsFound {
		categories[match.Category] = true
	}
	assert.True(t, categories["emergency"])
	assert.True(t, categories["negative"])
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"strips urls", "veja https://example.com/page agora", "veja agora"},
		{"collapses bangs", "socorro!!!", "socorro!"},
		{"collapses questions", "como???", "como?"},
		{"collapses ellipsis", "não sei.....", "não sei..."},
		{"collapses whitespace", "  a   b  ", "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanText(tt.input))
		})
	}
}

func TestDetectLanguage(t *testing.T) {
	a := NewAnalyzer(nil)

	assert.Equal(t, "pt", a.DetectLanguage(""))
	assert.Equal(t, "pt", a.DetectLanguage("oi"))
	assert.Equal(t, "en", a.DetectLanguage("I would like to know more about the treatment options available at your clinic"))
}

func TestToneFor(t *testing.T) {
	tests := []struct {
		name         string
		result       Result
		wantTone     string
		wantPriority string
	}{
		{"emergency", Result{Sentiment: SentimentEmergency, EmergencyLevel: LevelHigh}, "urgent_supportive", "high"},
		{"medium level dominates neutral", Result{Sentiment: SentimentNeutral, EmergencyLevel: LevelMedium}, "empathetic_supportive", "medium"},
		{"negative", Result{Sentiment: SentimentNegative, EmergencyLevel: LevelLow}, "empathetic_supportive", "medium"},
		{"positive", Result{Sentiment: SentimentPositive, EmergencyLevel: LevelLow}, "encouraging_informative", "normal"},
		{"neutral", Result{Sentiment: SentimentNeutral, EmergencyLevel: LevelLow}, "informative_neutral", "normal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tone := ToneFor(tt.result)
			assert.Equal(t, tt.wantTone, tone.Tone)
			assert.Equal(t, tt.wantPriority, tone.Priority)
			assert.NotEmpty(t, tone.SuggestedActions)
		})
	}
}

func TestAnalyzeTrend(t *testing.T) {
	a := NewAnalyzer(nil)
	ctx := context.Background()

	empty := a.AnalyzeTrend(ctx, nil)
	assert.Equal(t, "stable", empty.Trend)
	assert.Empty(t, empty.Progression)

	emergency := a.AnalyzeTrend(ctx, []string{
		"bom dia, tudo bem?",
		"socorro, preciso de ajuda urgente",
	})
	assert.Equal(t, "emergency", emergency.Trend)
	assert.True(t, emergency.HasEmergency)
	require.Len(t, emergency.Progression, 2)

	improving := a.AnalyzeTrend(ctx, []string{
		"this is wonderful, thank you so much",
		"I love it, excellent support and great people",
	})
	assert.Equal(t, "improving", improving.Trend)
	assert.Greater(t, improving.AveragePolarity, 0.1)

	declining := a.AnalyzeTrend(ctx, []string{
		"this is terrible and horrible",
		"everything feels awful and hopeless",
	})
	assert.Equal(t, "declining", declining.Trend)
	assert.Less(t, declining.AveragePolarity, -0.1)
}
