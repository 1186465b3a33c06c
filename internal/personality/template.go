package personality

import "github.com/okanevale/temperament/internal/domain"

// DefaultTemplate returns a complete personality used whenever a
// configured file is missing or invalid. Every subsection is populated so
// the engine never has to guess at defaults.
func DefaultTemplate() *domain.Personality {
	return &domain.Personality{
		Name:             "Template Agent",
		Bio:              "A template agent personality.",
		Interests:        []string{"technology", "ai", "creativity"},
		Tone:             "friendly and helpful",
		InteractionStyle: "thoughtful",
		ContentPrefs: domain.ContentPreferences{
			Topics:              []string{"ai", "technology", "creativity"},
			ContentTypes:        []string{"articles", "discussions", "questions"},
			EngagementThreshold: 0.5,
		},
		EmotionalState: &domain.EmotionConfig{
			BaseState:    "curious",
			CurrentState: "curious",
			Intensity:    0.5,
			DecayRate:    0.1,
			Triggers: []domain.TriggerRule{
				{Emotion: "excited", Words: []string{"ai", "breakthrough"}},
				{Emotion: "thoughtful", Words: []string{"ethics", "philosophy"}},
			},
			Overrides: []domain.TriggerRule{
				{Emotion: "excited", Words: []string{"amazing"}},
			},
		},
		Memory: &domain.MemoryConfig{
			ShortTermCapacity: 20,
		},
		Learning: &domain.LearningConfig{
			AdaptationRate:     0.05,
			InterestEvolution:  true,
			EngagementLearning: true,
			Metrics: domain.MetricWeights{
				PositiveFeedback: 0.3,
				Amplification:    0.5,
				Responses:        0.2,
				Impressions:      0.1,
			},
		},
	}
}
