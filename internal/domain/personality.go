package domain

// ContentPreferences describe what the agent likes to consume and produce.
type ContentPreferences struct {
	Topics              []string `json:"topics"`
	ContentTypes        []string `json:"content_types"`
	EngagementThreshold float64  `json:"engagement_threshold"`
}

// Personality is the root configuration record for one agent. It is owned
// exclusively by the integration engine; subsystems receive their
// subsections at construction and all durable writes go through the
// engine's persistence path.
type Personality struct {
	Name             string             `json:"name"`
	Bio              string             `json:"bio"`
	Interests        []string           `json:"interests"` // ordered, front = highest priority
	Tone             string             `json:"tone"`
	InteractionStyle string             `json:"interaction_style"`
	ContentPrefs     ContentPreferences `json:"content_preferences"`

	EmotionalState *EmotionConfig  `json:"emotional_state,omitempty"`
	Memory         *MemoryConfig   `json:"memory,omitempty"`
	Learning       *LearningConfig `json:"learning,omitempty"`

	// TopicEngagement and ToneEngagement are accumulated by the learning
	// system and written back to storage with the rest of the record.
	TopicEngagement map[string]*EngagementStat `json:"topic_engagement,omitempty"`
	ToneEngagement  map[string]*EngagementStat `json:"tone_engagement,omitempty"`
}

// PersonalitySnapshot is the static slice of the personality included in a
// decision context.
type PersonalitySnapshot struct {
	Name             string   `json:"name"`
	Interests        []string `json:"interests"`
	Tone             string   `json:"tone"`
	InteractionStyle string   `json:"interaction_style"`
}
