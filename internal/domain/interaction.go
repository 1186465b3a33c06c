package domain

import "time"

// InteractionKind classifies how content crossed the agent's attention.
type InteractionKind string

const (
	InteractionView     InteractionKind = "view"
	InteractionMessage  InteractionKind = "message"
	InteractionPost     InteractionKind = "post"
	InteractionResponse InteractionKind = "response"
)

// CounterpartSelf marks interactions the agent originated itself. Self
// interactions never create or update a relationship entry.
const CounterpartSelf = "self"

// Interaction is one observed or produced exchange. Sentiment is in
// [-1,1], Engagement in [0,1].
type Interaction struct {
	ID          string          `json:"id"`
	Kind        InteractionKind `json:"type"`
	Counterpart string          `json:"user"`
	Text        string          `json:"content"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Sentiment   float64         `json:"sentiment"`
	Engagement  float64         `json:"engagement_score"`
}
