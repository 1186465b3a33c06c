package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/okanevale/temperament/internal/domain"
)

// PersonalityEngine wires the emotion, memory and learning subsystems
// behind one mutex. All access from concurrent callers goes through here;
// the subsystems themselves stay lock-free.
type PersonalityEngine struct {
	mu sync.Mutex

	personality *domain.Personality
	emotion     *EmotionEngine
	memory      *MemorySystem
	learning    *LearningSystem
	logger      *zap.Logger
}

// NewPersonalityEngine builds the full engine over one personality record
// and one backing store.
func NewPersonalityEngine(ctx context.Context, p *domain.Personality, memStore domain.MemoryStore, persStore domain.PersonalityStore, logger *zap.Logger) *PersonalityEngine {
	e := &PersonalityEngine{
		personality: p,
		emotion:     NewEmotionEngine(p.EmotionalState, logger),
		memory:      NewMemorySystem(ctx, p.Memory, memStore, logger),
		learning:    NewLearningSystem(p, persStore, logger),
		logger:      logger,
	}

	logger.Info("initialized personality engine", zap.String("name", p.Name))
	return e
}

// ProcessContent runs a batch of observed content through the emotion
// engine and stores a view interaction per item. When any item carries an
// override trigger word, items without one skip the emotion update so the
// stronger emotion is not immediately diluted.
func (e *PersonalityEngine) ProcessContent(ctx context.Context, items []domain.ContentItem) {
	e.mu.Lock()
	defer e.mu.Unlock()

	batchOverride := false
	for _, item := range items {
		if item.Text != "" && e.emotion.HasOverride(item.Text) {
			batchOverride = true
			break
		}
	}

	for _, item := range items {
		if item.Text != "" && (!batchOverride || e.emotion.HasOverride(item.Text)) {
			e.emotion.UpdateEmotion(item.Text)
		}

		if item.Source == "" || item.Text == "" {
			continue
		}
		e.memory.StoreInteraction(ctx, domain.Interaction{
			ID:          fmt.Sprintf("view_%s", uuid.NewString()),
			Kind:        domain.InteractionView,
			Counterpart: item.Source,
			Text:        item.Text,
			OccurredAt:  e.memory.now(),
		})
	}
}

// RecordAction stores the agent's own action as an interaction. Messages
// and posts are attributed to self; responses are attributed to the
// source of the message responded to.
func (e *PersonalityEngine) RecordAction(ctx context.Context, action domain.Action, result *domain.ActionResult) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch action.Kind {
	case domain.ActionMessage, domain.ActionPost:
		e.memory.StoreInteraction(ctx, domain.Interaction{
			ID:          fmt.Sprintf("%s_%s", action.Kind, uuid.NewString()),
			Kind:        domain.InteractionKind(action.Kind),
			Counterpart: domain.CounterpartSelf,
			Text:        action.Content,
			OccurredAt:  e.memory.now(),
		})

	case domain.ActionResponse:
		counterpart := "unknown"
		if result != nil && result.OriginalMessage != nil && result.OriginalMessage.Source != "" {
			counterpart = result.OriginalMessage.Source
		}
		e.memory.StoreInteraction(ctx, domain.Interaction{
			ID:          fmt.Sprintf("response_%s", uuid.NewString()),
			Kind:        domain.InteractionResponse,
			Counterpart: counterpart,
			Text:        action.Content,
			OccurredAt:  e.memory.now(),
		})
	}
}

// RecordEngagement forwards metrics to the learning system and persists
// the personality record when a store is configured, so accumulated
// engagement stats survive restarts.
func (e *PersonalityEngine) RecordEngagement(ctx context.Context, content string, metrics domain.EngagementMetrics, topics []string) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	score := e.learning.RecordEngagement(content, metrics, topics)
	if e.learning.HasStore() {
		e.learning.SavePersonality(ctx)
	}
	return score
}

// DecisionContext assembles the unified decision context from all three
// subsystems plus the static personality slice.
func (e *PersonalityEngine) DecisionContext() domain.DecisionContext {
	e.mu.Lock()
	defer e.mu.Unlock()

	return domain.DecisionContext{
		Personality: domain.PersonalitySnapshot{
			Name:             e.personality.Name,
			Interests:        append([]string(nil), e.personality.Interests...),
			Tone:             e.personality.Tone,
			InteractionStyle: e.personality.InteractionStyle,
		},
		EmotionalState: e.emotion.Influence(),
		Memory:         e.memory.Context(),
		Learning:       e.learning.Insights(),
	}
}

// Personality returns the shared personality record. Callers must not
// mutate it.
func (e *PersonalityEngine) Personality() *domain.Personality {
	return e.personality
}

// SaveState persists the personality record with all learning updates.
func (e *PersonalityEngine) SaveState(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.learning.SavePersonality(ctx)
}

// UpdateInterests promotes consistently high-performing topics into the
// interest list.
func (e *PersonalityEngine) UpdateInterests(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.learning.UpdateInterests(ctx)
}

// AdaptTone switches to the best-performing tone.
func (e *PersonalityEngine) AdaptTone(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.learning.AdaptTone(ctx)
}

// Relationship returns the stored relationship for a counterpart.
func (e *PersonalityEngine) Relationship(counterpart string) domain.Relationship {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.memory.Relationship(counterpart)
}

// UpdateRelationship sets relationship fields directly.
func (e *PersonalityEngine) UpdateRelationship(ctx context.Context, counterpart string, familiarity, sentiment *float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.memory.UpdateRelationship(ctx, counterpart, familiarity, sentiment)
}

// TopicPreference returns the stored preference for a topic.
func (e *PersonalityEngine) TopicPreference(topic string) (domain.TopicPreference, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.memory.TopicPreference(topic)
}

// UpdateTopicPreference sets topic preference fields directly.
func (e *PersonalityEngine) UpdateTopicPreference(ctx context.Context, topic string, interestLevel, engagementRate *float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.memory.UpdateTopicPreference(ctx, topic, interestLevel, engagementRate)
}

// InteractionsWith returns buffered interactions with one counterpart.
func (e *PersonalityEngine) InteractionsWith(counterpart string) []domain.Interaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.memory.InteractionsWith(counterpart)
}

// RecentInteractions returns up to limit recent interactions, oldest
// first.
func (e *PersonalityEngine) RecentInteractions(limit int) []domain.Interaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.memory.RecentInteractions(limit)
}

// CurrentEmotion returns the decayed emotional state.
func (e *PersonalityEngine) CurrentEmotion() domain.EmotionalState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.emotion.CurrentEmotion()
}
