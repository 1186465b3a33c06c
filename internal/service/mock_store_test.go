package service

import (
	"context"
	"errors"

	"github.com/okanevale/temperament/internal/domain"
)

// memMockStore is an in-memory MemoryStore and PersonalityStore that
// records what was saved.
type memMockStore struct {
	interactions  map[string]domain.Interaction
	recent        []domain.Interaction
	relationships map[string]*domain.Relationship
	topics        map[string]*domain.TopicPreference
	personality   *domain.Personality

	saveRelationshipsCalls int
	saveTopicsCalls        int
	savePersonalityCalls   int
	failSaves              bool
}

func newMemMockStore() *memMockStore {
	return &memMockStore{
		interactions:  make(map[string]domain.Interaction),
		relationships: make(map[string]*domain.Relationship),
		topics:        make(map[string]*domain.TopicPreference),
	}
}

var errMockSave = errors.New("mock save failure")

func (s *memMockStore) AppendInteraction(_ context.Context, it domain.Interaction) error {
	if s.failSaves {
		return errMockSave
	}
	if _, exists := s.interactions[it.ID]; exists {
		return nil
	}
	s.interactions[it.ID] = it
	return nil
}

func (s *memMockStore) SaveRecent(_ context.Context, recent []domain.Interaction) error {
	if s.failSaves {
		return errMockSave
	}
	s.recent = append([]domain.Interaction(nil), recent...)
	return nil
}

func (s *memMockStore) LoadRecent(_ context.Context) ([]domain.Interaction, error) {
	return append([]domain.Interaction(nil), s.recent...), nil
}

func (s *memMockStore) SaveRelationships(_ context.Context, rels map[string]*domain.Relationship) error {
	if s.failSaves {
		return errMockSave
	}
	s.saveRelationshipsCalls++
	s.relationships = rels
	return nil
}

func (s *memMockStore) LoadRelationships(_ context.Context) (map[string]*domain.Relationship, error) {
	return s.relationships, nil
}

func (s *memMockStore) SaveTopics(_ context.Context, topics map[string]*domain.TopicPreference) error {
	if s.failSaves {
		return errMockSave
	}
	s.saveTopicsCalls++
	s.topics = topics
	return nil
}

func (s *memMockStore) LoadTopics(_ context.Context) (map[string]*domain.TopicPreference, error) {
	return s.topics, nil
}

func (s *memMockStore) SavePersonality(_ context.Context, p *domain.Personality) error {
	if s.failSaves {
		return errMockSave
	}
	s.savePersonalityCalls++
	s.personality = p
	return nil
}

func (s *memMockStore) LoadPersonality(_ context.Context) (*domain.Personality, error) {
	return s.personality, nil
}
