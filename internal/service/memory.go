package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/okanevale/temperament/internal/domain"
)

// Topic vocabulary scanned for in interaction content. Matches are whole
// words on lowercased text.
var knownTopics = []string{
	"ai", "technology", "art", "design", "science", "ethics",
	"creativity", "innovation", "future", "philosophy", "education",
	"environment", "health", "business", "politics", "culture",
}

// extractTopics returns every known topic appearing as a whole word in
// content, in vocabulary order.
func extractTopics(content string) []string {
	padded := " " + strings.ToLower(content) + " "
	var found []string
	for _, topic := range knownTopics {
		if strings.Contains(padded, " "+topic+" ") {
			found = append(found, topic)
		}
	}
	return found
}

// MemorySystem keeps a bounded buffer of recent interactions plus
// long-lived relationship and topic tables, mirroring everything to the
// store. Storage failures are logged and swallowed so memory keeps
// working in-process. Not safe for concurrent use.
type MemorySystem struct {
	capacity      int
	recent        []domain.Interaction
	relationships map[string]*domain.Relationship
	topics        map[string]*domain.TopicPreference
	store         domain.MemoryStore
	logger        *zap.Logger

	now func() time.Time
}

// NewMemorySystem builds a memory system and loads any persisted state
// from the store. A missing config yields the default capacity of 20.
func NewMemorySystem(ctx context.Context, cfg *domain.MemoryConfig, store domain.MemoryStore, logger *zap.Logger) *MemorySystem {
	capacity := 20
	if cfg != nil && cfg.ShortTermCapacity > 0 {
		capacity = cfg.ShortTermCapacity
	}

	m := &MemorySystem{
		capacity:      capacity,
		relationships: make(map[string]*domain.Relationship),
		topics:        make(map[string]*domain.TopicPreference),
		store:         store,
		logger:        logger,
		now:           time.Now,
	}

	if store != nil {
		if rels, err := store.LoadRelationships(ctx); err != nil {
			logger.Error("failed to load relationships", zap.Error(err))
		} else if rels != nil {
			m.relationships = rels
		}

		if topics, err := store.LoadTopics(ctx); err != nil {
			logger.Error("failed to load topic preferences", zap.Error(err))
		} else if topics != nil {
			m.topics = topics
		}

		if recent, err := store.LoadRecent(ctx); err != nil {
			logger.Error("failed to load recent interactions", zap.Error(err))
		} else {
			m.recent = recent
		}
	}

	logger.Info("initialized memory system", zap.Int("capacity", capacity))
	return m
}

// StoreInteraction appends an interaction to the recent buffer, evicting
// the oldest entries past capacity, updates the relationship and topic
// tables and persists everything touched.
func (m *MemorySystem) StoreInteraction(ctx context.Context, it domain.Interaction) {
	m.recent = append(m.recent, it)
	if len(m.recent) > m.capacity {
		sort.SliceStable(m.recent, func(i, j int) bool {
			return m.recent[i].OccurredAt.Before(m.recent[j].OccurredAt)
		})
		m.recent = m.recent[len(m.recent)-m.capacity:]
	}

	relChanged := m.updateRelationship(it)
	m.updateTopics(it)
	m.persistInteraction(ctx, it, relChanged)

	m.logger.Debug("stored interaction",
		zap.String("type", string(it.Kind)),
		zap.String("user", it.Counterpart))
}

func (m *MemorySystem) updateRelationship(it domain.Interaction) bool {
	if it.Counterpart == domain.CounterpartSelf {
		return false
	}

	rel, ok := m.relationships[it.Counterpart]
	if !ok {
		rel = &domain.Relationship{
			Familiarity:       0.1,
			LastInteractionAt: it.OccurredAt,
		}
		m.relationships[it.Counterpart] = rel
	}

	increase := 0.1 / (1 + float64(rel.InteractionCount)*0.1)
	rel.Familiarity += increase
	if rel.Familiarity > 1 {
		rel.Familiarity = 1
	}

	if it.Sentiment != 0 {
		rel.Sentiment = rel.Sentiment*0.8 + it.Sentiment*0.2
	}

	rel.LastInteractionAt = it.OccurredAt
	rel.InteractionCount++
	return true
}

func (m *MemorySystem) updateTopics(it domain.Interaction) {
	for _, topic := range extractTopics(it.Text) {
		pref, ok := m.topics[topic]
		if !ok {
			pref = &domain.TopicPreference{
				InterestLevel:     0.5,
				LastInteractionAt: it.OccurredAt,
			}
			m.topics[topic] = pref
		}

		if it.Engagement > 0 {
			pref.EngagementRate = pref.EngagementRate*0.8 + it.Engagement*0.2

			change := (it.Engagement - 0.5) * 0.1
			level := pref.InterestLevel + change
			if level < 0.1 {
				level = 0.1
			}
			if level > 1 {
				level = 1
			}
			pref.InterestLevel = level
		}

		pref.LastInteractionAt = it.OccurredAt
		pref.InteractionCount++
	}
}

func (m *MemorySystem) persistInteraction(ctx context.Context, it domain.Interaction, relChanged bool) {
	if m.store == nil {
		return
	}

	if err := m.store.AppendInteraction(ctx, it); err != nil {
		m.logger.Error("failed to store interaction record", zap.Error(err))
	}
	if err := m.store.SaveRecent(ctx, m.recent); err != nil {
		m.logger.Error("failed to save recent interactions", zap.Error(err))
	}
	if relChanged {
		if err := m.store.SaveRelationships(ctx, m.relationships); err != nil {
			m.logger.Error("failed to save relationships", zap.Error(err))
		}
	}
	if err := m.store.SaveTopics(ctx, m.topics); err != nil {
		m.logger.Error("failed to save topic preferences", zap.Error(err))
	}
}

// RecentInteractions returns up to limit most recent interactions in
// chronological order, oldest first.
func (m *MemorySystem) RecentInteractions(limit int) []domain.Interaction {
	byNewest := append([]domain.Interaction(nil), m.recent...)
	sort.SliceStable(byNewest, func(i, j int) bool {
		return byNewest[i].OccurredAt.After(byNewest[j].OccurredAt)
	})
	if len(byNewest) > limit {
		byNewest = byNewest[:limit]
	}

	sort.SliceStable(byNewest, func(i, j int) bool {
		return byNewest[i].OccurredAt.Before(byNewest[j].OccurredAt)
	})
	return byNewest
}

// Relationship returns the relationship for a counterpart, or a zero
// familiarity default stamped with the current time when none exists.
func (m *MemorySystem) Relationship(counterpart string) domain.Relationship {
	if rel, ok := m.relationships[counterpart]; ok {
		return *rel
	}
	return domain.Relationship{LastInteractionAt: m.now()}
}

// TopicPreference returns the preference for a topic and whether it has
// been observed.
func (m *MemorySystem) TopicPreference(topic string) (domain.TopicPreference, bool) {
	if pref, ok := m.topics[topic]; ok {
		return *pref, true
	}
	return domain.TopicPreference{}, false
}

// InteractionsWith returns buffered interactions with one counterpart, in
// buffer order.
func (m *MemorySystem) InteractionsWith(counterpart string) []domain.Interaction {
	var out []domain.Interaction
	for _, it := range m.recent {
		if it.Counterpart == counterpart {
			out = append(out, it)
		}
	}
	return out
}

// UpdateRelationship sets relationship fields directly, clamping each to
// its valid range. Nil fields are left untouched. The entry is created at
// zero familiarity if absent, and the table is persisted immediately.
func (m *MemorySystem) UpdateRelationship(ctx context.Context, counterpart string, familiarity, sentiment *float64) {
	rel, ok := m.relationships[counterpart]
	if !ok {
		rel = &domain.Relationship{LastInteractionAt: m.now()}
		m.relationships[counterpart] = rel
	}

	if familiarity != nil {
		rel.Familiarity = clamp(*familiarity, 0, 1)
	}
	if sentiment != nil {
		rel.Sentiment = clamp(*sentiment, -1, 1)
	}

	if m.store != nil {
		if err := m.store.SaveRelationships(ctx, m.relationships); err != nil {
			m.logger.Error("failed to save relationships", zap.Error(err))
		}
	}
}

// UpdateTopicPreference sets topic preference fields directly, clamping
// each to [0,1]. Nil fields are left untouched. The entry is created at
// the default interest level if absent, and the table is persisted
// immediately.
func (m *MemorySystem) UpdateTopicPreference(ctx context.Context, topic string, interestLevel, engagementRate *float64) {
	pref, ok := m.topics[topic]
	if !ok {
		pref = &domain.TopicPreference{
			InterestLevel:     0.5,
			LastInteractionAt: m.now(),
		}
		m.topics[topic] = pref
	}

	if interestLevel != nil {
		pref.InterestLevel = clamp(*interestLevel, 0, 1)
	}
	if engagementRate != nil {
		pref.EngagementRate = clamp(*engagementRate, 0, 1)
	}

	if m.store != nil {
		if err := m.store.SaveTopics(ctx, m.topics); err != nil {
			m.logger.Error("failed to save topic preferences", zap.Error(err))
		}
	}
}

// Context assembles the memory projection for decision making: the 5 most
// recent interactions, the top 3 relationships by familiarity and the top
// 5 topics by interest level. Ties break on name so output is stable.
func (m *MemorySystem) Context() domain.MemoryContext {
	recent := m.RecentInteractions(5)
	summaries := make([]domain.InteractionSummary, 0, len(recent))
	now := m.now()
	for _, it := range recent {
		content := it.Text
		if len(content) > 100 {
			content = content[:100] + "..."
		}
		summaries = append(summaries, domain.InteractionSummary{
			Kind:        it.Kind,
			Counterpart: it.Counterpart,
			Content:     content,
			TimeAgo:     fmt.Sprintf("%d minutes ago", int(now.Sub(it.OccurredAt).Minutes())),
		})
	}

	relationships := make(map[string]domain.RelationshipSummary)
	for _, name := range topKeys(m.relationships, 3, func(r *domain.Relationship) float64 { return r.Familiarity }) {
		rel := m.relationships[name]
		relationships[name] = domain.RelationshipSummary{
			Familiarity:  fmt.Sprintf("%.2f", rel.Familiarity),
			Sentiment:    fmt.Sprintf("%.2f", rel.Sentiment),
			Interactions: rel.InteractionCount,
		}
	}

	interests := make(map[string]string)
	for _, name := range topKeys(m.topics, 5, func(t *domain.TopicPreference) float64 { return t.InterestLevel }) {
		interests[name] = fmt.Sprintf("%.2f", m.topics[name].InterestLevel)
	}

	return domain.MemoryContext{
		RecentInteractions: summaries,
		Relationships:      relationships,
		Interests:          interests,
	}
}

func topKeys[V any](m map[string]V, limit int, score func(V) float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		si, sj := score(m[keys[i]]), score(m[keys[j]])
		if si != sj {
			return si > sj
		}
		return keys[i] < keys[j]
	})
	if len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
