package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/okanevale/temperament/internal/domain"
)

const patternSeedConfidence = 0.1

// LearningSystem scores engagement, tracks per-topic performance,
// detects structural patterns in successful content and slowly evolves
// the personality's interests and tone. It mutates the shared personality
// record in place; durable writes go through the personality store. Not
// safe for concurrent use.
type LearningSystem struct {
	personality *domain.Personality
	cfg         domain.LearningConfig
	patterns    []domain.SuccessfulPattern
	performance map[string]*domain.TopicPerformance
	store       domain.PersonalityStore
	logger      *zap.Logger

	now func() time.Time
}

// NewLearningSystem builds a learning system over the shared personality
// record. A missing learning config yields defaults with learning and
// interest evolution enabled.
func NewLearningSystem(p *domain.Personality, store domain.PersonalityStore, logger *zap.Logger) *LearningSystem {
	cfg := domain.LearningConfig{
		AdaptationRate:     0.05,
		InterestEvolution:  true,
		EngagementLearning: true,
		Metrics: domain.MetricWeights{
			PositiveFeedback: 0.3,
			Amplification:    0.5,
			Responses:        0.2,
			Impressions:      0.1,
		},
	}
	if p.Learning != nil {
		cfg = *p.Learning
	}

	l := &LearningSystem{
		personality: p,
		cfg:         cfg,
		patterns:    append([]domain.SuccessfulPattern(nil), cfg.SuccessfulPatterns...),
		performance: make(map[string]*domain.TopicPerformance),
		store:       store,
		logger:      logger,
		now:         time.Now,
	}

	logger.Info("initialized learning system", zap.Float64("adaptation_rate", cfg.AdaptationRate))
	return l
}

// RecordEngagement scores the metrics, folds the score into topic
// performance and the personality's engagement stats, mines patterns from
// high scorers and nudges interests. Returns the score, or 0 when
// engagement learning is disabled.
func (l *LearningSystem) RecordEngagement(content string, metrics domain.EngagementMetrics, topics []string) float64 {
	if !l.cfg.EngagementLearning {
		return 0
	}

	score := metrics.Score(l.cfg.Metrics)

	if len(topics) > 0 && score > 0 {
		l.updateTopicPerformance(topics, score)
	}

	if score > 0.7 {
		l.identifyPatterns(content)
	}

	if l.cfg.InterestEvolution && len(topics) > 0 {
		l.evolveInterests(topics, score)
	}

	l.logger.Debug("recorded engagement", zap.Float64("score", score))
	return score
}

func (l *LearningSystem) updateTopicPerformance(topics []string, score float64) {
	if l.personality.TopicEngagement == nil {
		l.personality.TopicEngagement = make(map[string]*domain.EngagementStat)
	}

	for _, topic := range topics {
		perf, ok := l.performance[topic]
		if !ok {
			perf = &domain.TopicPerformance{}
			l.performance[topic] = perf
		}
		perf.TotalScore += score
		perf.Count++
		perf.Average = perf.TotalScore / float64(perf.Count)

		stat, ok := l.personality.TopicEngagement[topic]
		if !ok {
			stat = &domain.EngagementStat{}
			l.personality.TopicEngagement[topic] = stat
		}
		stat.Score = (stat.Score*float64(stat.Count) + score) / float64(stat.Count+1)
		stat.Count++
	}
}

func (l *LearningSystem) identifyPatterns(content string) {
	words := strings.Fields(strings.ToLower(content))

	if strings.Contains(content, "?") {
		l.addPattern(domain.PatternQuestions)
	}
	if strings.Contains(content, "!") {
		l.addPattern(domain.PatternExclamations)
	}
	if len(words) < 10 {
		l.addPattern(domain.PatternShortContent)
	} else if len(words) > 30 {
		l.addPattern(domain.PatternLongContent)
	}
}

func (l *LearningSystem) addPattern(pattern string) {
	for i := range l.patterns {
		if l.patterns[i].Pattern == pattern {
			l.patterns[i].Confidence = l.patterns[i].Confidence*0.8 + patternSeedConfidence*0.2
			l.patterns[i].Count++
			return
		}
	}

	l.patterns = append(l.patterns, domain.SuccessfulPattern{
		Pattern:         pattern,
		Confidence:      patternSeedConfidence,
		Count:           1,
		FirstObservedAt: l.now(),
	})
}

func (l *LearningSystem) evolveInterests(topics []string, score float64) {
	interests := l.personality.Interests
	adjustment := (score - 0.5) * l.cfg.AdaptationRate

	for _, topic := range topics {
		idx := indexOf(interests, topic)
		switch {
		case idx >= 0:
			if adjustment > 0 && idx > 0 {
				interests[idx-1], interests[idx] = interests[idx], interests[idx-1]
			}
		case adjustment > 0.05 && len(interests) < 10:
			interests = append(interests, topic)
			l.logger.Debug("added new interest", zap.String("topic", topic))
		}
	}

	l.personality.Interests = interests
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

// Insights returns the learning projection for decision making: the top 5
// topics by average score and top 3 patterns by confidence, each needing
// more than 2 observations, plus the current interest list.
func (l *LearningSystem) Insights() domain.LearningInsights {
	seasoned := make(map[string]*domain.TopicPerformance)
	for topic, perf := range l.performance {
		if perf.Count > 2 {
			seasoned[topic] = perf
		}
	}
	topTopics := make(map[string]float64)
	for _, topic := range topKeys(seasoned, 5, func(p *domain.TopicPerformance) float64 { return p.Average }) {
		topTopics[topic] = seasoned[topic].Average
	}

	withCount := make(map[string]*domain.SuccessfulPattern)
	for i := range l.patterns {
		if l.patterns[i].Count > 2 {
			withCount[l.patterns[i].Pattern] = &l.patterns[i]
		}
	}
	topPatterns := make(map[string]float64)
	for _, name := range topKeys(withCount, 3, func(p *domain.SuccessfulPattern) float64 { return p.Confidence }) {
		topPatterns[name] = withCount[name].Confidence
	}

	return domain.LearningInsights{
		TopPerformingTopics: topTopics,
		SuccessfulPatterns:  topPatterns,
		Interests:           l.personality.Interests,
	}
}

// UpdateInterests appends every topic with at least 2 samples and an
// average score above 0.7 that is not already an interest, then persists
// the personality. Topics are visited in sorted order so additions are
// deterministic.
func (l *LearningSystem) UpdateInterests(ctx context.Context) {
	topics := make([]string, 0, len(l.performance))
	for topic := range l.performance {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	for _, topic := range topics {
		perf := l.performance[topic]
		if perf.Count < 2 || perf.Average <= 0.7 {
			continue
		}
		if indexOf(l.personality.Interests, topic) >= 0 {
			continue
		}
		l.personality.Interests = append(l.personality.Interests, topic)
		l.logger.Debug("added new interest based on engagement", zap.String("topic", topic))
	}

	l.SavePersonality(ctx)
}

// AdaptTone switches the personality's tone to the tone with the highest
// engagement score among those with at least 2 samples, persisting when
// the tone changes.
func (l *LearningSystem) AdaptTone(ctx context.Context) {
	var best string
	highest := 0.0
	for _, tone := range topKeys(l.personality.ToneEngagement, len(l.personality.ToneEngagement), func(s *domain.EngagementStat) float64 { return s.Score }) {
		stat := l.personality.ToneEngagement[tone]
		if stat.Score > highest && stat.Count >= 2 {
			highest = stat.Score
			best = tone
		}
	}

	if best == "" || best == l.personality.Tone {
		return
	}

	l.personality.Tone = best
	l.logger.Debug("adapted tone based on engagement", zap.String("tone", best))
	l.SavePersonality(ctx)
}

// SavePersonality folds the observed patterns back into the learning
// config and writes the whole personality record. Returns false when no
// store is configured or the write fails.
func (l *LearningSystem) SavePersonality(ctx context.Context) bool {
	if l.store == nil {
		l.logger.Warn("no personality store configured, cannot save")
		return false
	}

	l.cfg.SuccessfulPatterns = append([]domain.SuccessfulPattern(nil), l.patterns...)
	cfg := l.cfg
	l.personality.Learning = &cfg

	if err := l.store.SavePersonality(ctx, l.personality); err != nil {
		l.logger.Error("failed to save personality", zap.Error(err))
		return false
	}

	l.logger.Info("saved updated personality", zap.String("name", l.personality.Name))
	return true
}

// HasStore reports whether durable personality persistence is configured.
func (l *LearningSystem) HasStore() bool {
	return l.store != nil
}
