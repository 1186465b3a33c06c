package domain

// ContentItem is one piece of external content fed into the engine.
type ContentItem struct {
	ID     string `json:"id,omitempty"`
	Source string `json:"source,omitempty"`
	Text   string `json:"text,omitempty"`
}

// Action kinds the decision cycle can produce.
const (
	ActionMessage  = "message"
	ActionPost     = "post"
	ActionResponse = "response"
	ActionNone     = "none"
)

// Action is the agent's chosen behavior for one decision cycle.
type Action struct {
	Kind    string `json:"type"`
	Content string `json:"content,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// ActionResult carries outcome details for a recorded action, such as the
// message a response action replied to.
type ActionResult struct {
	OriginalMessage *ContentItem `json:"original_message,omitempty"`
}

// DecisionContext is the unified state handed to prompt construction:
// static personality, current emotional influence, memory projection and
// learning insights.
type DecisionContext struct {
	Personality    PersonalitySnapshot `json:"personality"`
	EmotionalState EmotionInfluence    `json:"emotional_state"`
	Memory         MemoryContext       `json:"memory"`
	Learning       LearningInsights    `json:"learning"`
}
