package sentiment

import "context"

// Trend summarizes how a conversation's mood evolved across messages.
type Trend struct {
	Trend           string   `json:"trend"`
	AveragePolarity float64  `json:"average_polarity"`
	Progression     []Result `json:"progression"`
	HasEmergency    bool     `json:"has_emergency"`
}

// AnalyzeTrend scores each message in order and classifies the overall
// direction. An emergency anywhere in the conversation dominates the
// verdict regardless of the polarity average.
func (a *Analyzer) AnalyzeTrend(ctx context.Context, messages []string) Trend {
	if len(messages) == 0 {
		return Trend{Trend: "stable", Progression: []Result{}}
	}

	progression := make([]Result, 0, len(messages))
	hasEmergency := false
	var sum float64
	for _, message := range messages {
		result := a.Analyze(ctx, message)
		progression = append(progression, result)
		sum += result.Polarity
		if result.Sentiment == SentimentEmergency || result.EmergencyLevel == LevelHigh {
			hasEmergency = true
		}
	}

	average := sum / float64(len(progression))
	trend := "stable"
	switch {
	case hasEmergency:
		trend = "emergency"
	case average > 0.1:
		trend = "improving"
	case average < -0.1:
		trend = "declining"
	}

	return Trend{
		Trend:           trend,
		AveragePolarity: round3(average),
		Progression:     progression,
		HasEmergency:    hasEmergency,
	}
}
