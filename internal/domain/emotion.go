package domain

import "time"

// EmotionalState is the agent's current emotion at a moment in time.
// Intensity is clamped to [0,1]; ObservedAt anchors decay.
type EmotionalState struct {
	Name       string    `json:"name"`
	Intensity  float64   `json:"intensity"`
	ObservedAt time.Time `json:"observed_at"`
}

// TriggerRule maps an emotion to the words that evoke it. Rules are held
// in a slice so evaluation order is stable; the first rule whose word
// matches wins.
type TriggerRule struct {
	Emotion string   `json:"emotion"`
	Words   []string `json:"words"`
}

// EmotionConfig is the emotional subsection of a personality. Overrides
// are the high-priority trigger tier, checked before Triggers.
type EmotionConfig struct {
	BaseState    string        `json:"base_state"`
	CurrentState string        `json:"current_state"`
	Intensity    float64       `json:"intensity"`
	DecayRate    float64       `json:"decay_rate"` // intensity units per second
	Triggers     []TriggerRule `json:"triggers,omitempty"`
	Overrides    []TriggerRule `json:"overrides,omitempty"`
}

// EmotionInfluence is how the current emotion shapes behavior. The numeric
// weights are already scaled by intensity.
type EmotionInfluence struct {
	CurrentEmotion      string  `json:"current_emotion"`
	Intensity           float64 `json:"intensity"`
	ActionProbability   float64 `json:"action_probability"`
	EngagementThreshold float64 `json:"engagement_threshold"`
	ContentStyle        string  `json:"content_style"`
}
