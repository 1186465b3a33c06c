package domain

import "context"

// MemoryStore persists the memory system's durable state. Every save is a
// whole-file replacement; a failed write must leave the previous snapshot
// intact. Load methods return empty collections when nothing has been
// persisted yet.
type MemoryStore interface {
	// AppendInteraction writes the per-interaction record. Records are
	// write-once: storing the same ID twice is a no-op.
	AppendInteraction(ctx context.Context, it Interaction) error

	SaveRecent(ctx context.Context, recent []Interaction) error
	LoadRecent(ctx context.Context) ([]Interaction, error)

	SaveRelationships(ctx context.Context, rels map[string]*Relationship) error
	LoadRelationships(ctx context.Context) (map[string]*Relationship, error)

	SaveTopics(ctx context.Context, topics map[string]*TopicPreference) error
	LoadTopics(ctx context.Context) (map[string]*TopicPreference, error)
}

// PersonalityStore persists the full personality record.
type PersonalityStore interface {
	SavePersonality(ctx context.Context, p *Personality) error
	LoadPersonality(ctx context.Context) (*Personality, error)
}

// LLMClient generates a free-form decision from a constructed prompt and a
// system description. Injected at construction, never via a late setter.
type LLMClient interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
}
