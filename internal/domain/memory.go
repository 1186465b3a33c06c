package domain

import "time"

// Relationship tracks what the agent knows about one counterpart. Created
// lazily on the first non-self interaction, updated on every one after,
// never deleted.
type Relationship struct {
	Familiarity       float64   `json:"familiarity"` // [0,1]
	Sentiment         float64   `json:"sentiment"`   // [-1,1]
	LastInteractionAt time.Time `json:"last_interaction"`
	InteractionCount  int       `json:"interaction_count"`
}

// TopicPreference tracks the agent's evolving interest in one topic.
type TopicPreference struct {
	InterestLevel     float64   `json:"interest_level"`  // [0,1]
	EngagementRate    float64   `json:"engagement_rate"` // [0,1]
	LastInteractionAt time.Time `json:"last_interaction"`
	InteractionCount  int       `json:"interaction_count"`
}

// MemoryConfig is the memory subsection of a personality.
type MemoryConfig struct {
	ShortTermCapacity int `json:"short_term_capacity"`
}

// InteractionSummary is a display-ready digest of one recent interaction.
type InteractionSummary struct {
	Kind        InteractionKind `json:"type"`
	Counterpart string          `json:"user"`
	Content     string          `json:"content"`
	TimeAgo     string          `json:"time_ago"`
}

// RelationshipSummary is a display-ready digest of one relationship.
type RelationshipSummary struct {
	Familiarity  string `json:"familiarity"`
	Sentiment    string `json:"sentiment"`
	Interactions int    `json:"interactions"`
}

// MemoryContext is the read-only memory projection fed into decisions:
// the 5 most recent interactions, the top 3 relationships by familiarity
// and the top 5 topics by interest level.
type MemoryContext struct {
	RecentInteractions []InteractionSummary           `json:"recent_interactions"`
	Relationships      map[string]RelationshipSummary `json:"relationships"`
	Interests          map[string]string              `json:"interests"`
}
