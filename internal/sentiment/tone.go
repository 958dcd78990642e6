package sentiment

// ResponseTone tells the response layer how to phrase a reply and which
// follow-up actions the staff side should take.
type ResponseTone struct {
	Tone             string   `json:"tone"`
	Priority         string   `json:"priority"`
	SuggestedActions []string `json:"suggested_actions"`
}

// ToneFor maps an analysis result to a response tone. Emergencies always
// dominate; otherwise the tone follows the detected sentiment.
func ToneFor(result Result) ResponseTone {
	switch {
	case result.Sentiment == SentimentEmergency || result.EmergencyLevel == LevelHigh:
		return ResponseTone{
			Tone:     "urgent_supportive",
			Priority: "high",
			SuggestedActions: []string{
				"oferecer contato telefônico imediato",
				"acionar equipe de plantão",
				"informar canais de emergência",
			},
		}
	case result.Sentiment == SentimentNegative || result.EmergencyLevel == LevelMedium:
		return ResponseTone{
			Tone:     "empathetic_supportive",
			Priority: "medium",
			SuggestedActions: []string{
				"demonstrar acolhimento",
				"oferecer conversa com especialista",
			},
		}
	case result.Sentiment == SentimentPositive:
		return ResponseTone{
			Tone:     "encouraging_informative",
			Priority: "normal",
			SuggestedActions: []string{
				"reforçar o progresso",
				"apresentar próximos passos",
			},
		}
	default:
		return ResponseTone{
			Tone:     "informative_neutral",
			Priority: "normal",
			SuggestedActions: []string{
				"responder objetivamente",
				"oferecer mais informações",
			},
		}
	}
}
