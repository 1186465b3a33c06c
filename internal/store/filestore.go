package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/okanevale/temperament/internal/domain"
)

const (
	relationshipsFile = "relationships.json"
	topicsFile        = "topics.json"
	recentFile        = "recent_interactions.json"
	personalityFile   = "personality.json"
	interactionsDir   = "interactions"
)

// FileStore persists engine state as human-readable JSON under a single
// data directory. Every save replaces the whole file via a temp file and
// rename, so a crash mid-write leaves the previous snapshot intact.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

// NewFileStore creates the data directory and its interactions
// subdirectory if they do not exist.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, interactionsDir), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

var _ domain.MemoryStore = (*FileStore)(nil)
var _ domain.PersonalityStore = (*FileStore)(nil)

func (s *FileStore) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *FileStore) readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return true, nil
}

// AppendInteraction writes one interaction record to its own file.
// Records are write-once: an existing file for the same ID is left alone.
func (s *FileStore) AppendInteraction(_ context.Context, it domain.Interaction) error {
	path := filepath.Join(s.dir, interactionsDir, it.ID+".json")
	if _, err := os.Stat(path); err == nil {
		s.logger.Debug("interaction already stored", zap.String("id", it.ID))
		return nil
	}
	return s.writeJSON(path, it)
}

func (s *FileStore) SaveRecent(_ context.Context, recent []domain.Interaction) error {
	return s.writeJSON(filepath.Join(s.dir, recentFile), recent)
}

func (s *FileStore) LoadRecent(_ context.Context) ([]domain.Interaction, error) {
	var recent []domain.Interaction
	if _, err := s.readJSON(filepath.Join(s.dir, recentFile), &recent); err != nil {
		return nil, err
	}
	return recent, nil
}

func (s *FileStore) SaveRelationships(_ context.Context, rels map[string]*domain.Relationship) error {
	return s.writeJSON(filepath.Join(s.dir, relationshipsFile), rels)
}

func (s *FileStore) LoadRelationships(_ context.Context) (map[string]*domain.Relationship, error) {
	rels := make(map[string]*domain.Relationship)
	if _, err := s.readJSON(filepath.Join(s.dir, relationshipsFile), &rels); err != nil {
		return nil, err
	}
	return rels, nil
}

func (s *FileStore) SaveTopics(_ context.Context, topics map[string]*domain.TopicPreference) error {
	return s.writeJSON(filepath.Join(s.dir, topicsFile), topics)
}

func (s *FileStore) LoadTopics(_ context.Context) (map[string]*domain.TopicPreference, error) {
	topics := make(map[string]*domain.TopicPreference)
	if _, err := s.readJSON(filepath.Join(s.dir, topicsFile), &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

func (s *FileStore) SavePersonality(_ context.Context, p *domain.Personality) error {
	return s.writeJSON(filepath.Join(s.dir, personalityFile), p)
}

// LoadPersonality returns (nil, nil) when no personality has been saved.
func (s *FileStore) LoadPersonality(_ context.Context) (*domain.Personality, error) {
	var p domain.Personality
	ok, err := s.readJSON(filepath.Join(s.dir, personalityFile), &p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &p, nil
}
