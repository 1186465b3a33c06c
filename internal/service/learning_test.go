package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/okanevale/temperament/internal/domain"
)

func testWeights() domain.MetricWeights {
	return domain.MetricWeights{
		PositiveFeedback: 0.3,
		Amplification:    0.5,
		Responses:        0.2,
		Impressions:      0.1,
	}
}

func testLearningPersonality() *domain.Personality {
	return &domain.Personality{
		Name:      "Tester",
		Interests: []string{"ai", "art"},
		Tone:      "friendly",
		Learning: &domain.LearningConfig{
			AdaptationRate:     0.5,
			InterestEvolution:  true,
			EngagementLearning: true,
			Metrics:            testWeights(),
		},
	}
}

func newTestLearning(t *testing.T) (*LearningSystem, *memMockStore, *domain.Personality) {
	t.Helper()
	store := newMemMockStore()
	p := testLearningPersonality()
	l := NewLearningSystem(p, store, zap.NewNop())
	return l, store, p
}

func TestEngagementMetrics_Score(t *testing.T) {
	tests := []struct {
		name    string
		metrics domain.EngagementMetrics
		weights domain.MetricWeights
		want    float64
	}{
		{
			name:    "zero weights give zero score",
			metrics: domain.EngagementMetrics{PositiveFeedback: 100},
			weights: domain.MetricWeights{},
			want:    0,
		},
		{
			name:    "no impressions skips rate conversion",
			metrics: domain.EngagementMetrics{PositiveFeedback: 1, Amplification: 1},
			weights: testWeights(),
			// (0.3 + 0.5) / 1.1, clamped to 1
			want: 0.7272727272727273,
		},
		{
			name:    "impressions convert to rate",
			metrics: domain.EngagementMetrics{PositiveFeedback: 10, Impressions: 100},
			weights: testWeights(),
			// 3.0 / 100 * 0.1 / 1.1
			want: 0.002727272727272727,
		},
		{
			name:    "clamped to one",
			metrics: domain.EngagementMetrics{Amplification: 100},
			weights: testWeights(),
			want:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.metrics.Score(tt.weights), 1e-12)
		})
	}
}

func TestLearningSystem_DisabledReturnsZero(t *testing.T) {
	_, store, p := newTestLearning(t)
	p.Learning.EngagementLearning = false
	l := NewLearningSystem(p, store, zap.NewNop())

	score := l.RecordEngagement("big news!", domain.EngagementMetrics{Amplification: 50}, []string{"ai"})

	assert.Equal(t, 0.0, score)
	assert.Empty(t, l.performance)
}

func TestLearningSystem_TopicPerformanceAndPersonalityStats(t *testing.T) {
	l, _, p := newTestLearning(t)

	l.RecordEngagement("content", domain.EngagementMetrics{Amplification: 1}, []string{"science"})
	l.RecordEngagement("content", domain.EngagementMetrics{PositiveFeedback: 1}, []string{"science"})

	perf := l.performance["science"]
	require.NotNil(t, perf)
	assert.Equal(t, 2, perf.Count)
	assert.InDelta(t, perf.TotalScore/2, perf.Average, 1e-12)

	stat := p.TopicEngagement["science"]
	require.NotNil(t, stat)
	assert.Equal(t, 2, stat.Count)
	assert.InDelta(t, perf.Average, stat.Score, 1e-12)
}

func TestLearningSystem_PatternDetectionThreshold(t *testing.T) {
	l, _, _ := newTestLearning(t)

	// Score 1.0, short question with exclamation
	l.RecordEngagement("Really?!", domain.EngagementMetrics{Amplification: 100}, nil)

	names := make([]string, 0, len(l.patterns))
	for _, pat := range l.patterns {
		names = append(names, pat.Pattern)
	}
	assert.ElementsMatch(t, []string{domain.PatternQuestions, domain.PatternExclamations, domain.PatternShortContent}, names)

	// Low score content mines nothing new
	l.RecordEngagement("Boring?", domain.EngagementMetrics{Impressions: 1000, PositiveFeedback: 1}, nil)
	assert.Len(t, l.patterns, 3)
}

func TestLearningSystem_LongContentPattern(t *testing.T) {
	l, _, _ := newTestLearning(t)

	long := strings.Repeat("word ", 31)
	l.RecordEngagement(long, domain.EngagementMetrics{Amplification: 100}, nil)

	require.Len(t, l.patterns, 1)
	assert.Equal(t, domain.PatternLongContent, l.patterns[0].Pattern)
	assert.Equal(t, 0.1, l.patterns[0].Confidence)
}

func TestLearningSystem_PatternConfidenceSmoothing(t *testing.T) {
	l, _, _ := newTestLearning(t)

	l.RecordEngagement("Short win!", domain.EngagementMetrics{Amplification: 100}, nil)
	l.RecordEngagement("Another win!", domain.EngagementMetrics{Amplification: 100}, nil)

	for _, pat := range l.patterns {
		if pat.Pattern == domain.PatternExclamations {
			assert.Equal(t, 2, pat.Count)
			assert.InDelta(t, 0.1*0.8+0.1*0.2, pat.Confidence, 1e-12)
			return
		}
	}
	t.Fatal("exclamations pattern not found")
}

func TestLearningSystem_EvolveInterestsMovesTopicUp(t *testing.T) {
	l, _, p := newTestLearning(t)

	// adjustment = (1.0-0.5)*0.5 = 0.25 > 0, "art" moves up one slot
	l.RecordEngagement("great art", domain.EngagementMetrics{Amplification: 100}, []string{"art"})

	assert.Equal(t, []string{"art", "ai"}, p.Interests)
}

func TestLearningSystem_EvolveInterestsAddsNewTopic(t *testing.T) {
	l, _, p := newTestLearning(t)

	l.RecordEngagement("science rocks", domain.EngagementMetrics{Amplification: 100}, []string{"science"})

	assert.Equal(t, []string{"ai", "art", "science"}, p.Interests)
}

func TestLearningSystem_EvolveInterestsIgnoresLowEngagement(t *testing.T) {
	l, _, p := newTestLearning(t)

	// Score near zero, adjustment negative
	l.RecordEngagement("meh science", domain.EngagementMetrics{Impressions: 1000, PositiveFeedback: 1}, []string{"science"})

	assert.Equal(t, []string{"ai", "art"}, p.Interests)
}

func TestLearningSystem_InterestListCapped(t *testing.T) {
	l, _, p := newTestLearning(t)
	p.Interests = []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}

	l.RecordEngagement("science", domain.EngagementMetrics{Amplification: 100}, []string{"science"})

	assert.Len(t, p.Interests, 10, "capped at 10 interests")
}

func TestLearningSystem_Insights(t *testing.T) {
	l, _, p := newTestLearning(t)

	for i := 0; i < 3; i++ {
		l.RecordEngagement("x", domain.EngagementMetrics{Amplification: 1}, []string{"science"})
	}
	l.RecordEngagement("x", domain.EngagementMetrics{Amplification: 1}, []string{"culture"})

	for i := 0; i < 3; i++ {
		l.RecordEngagement("Hot take!", domain.EngagementMetrics{Amplification: 100}, nil)
	}

	insights := l.Insights()

	assert.Contains(t, insights.TopPerformingTopics, "science")
	assert.NotContains(t, insights.TopPerformingTopics, "culture", "needs more than 2 samples")
	assert.Contains(t, insights.SuccessfulPatterns, domain.PatternExclamations)
	assert.Equal(t, p.Interests, insights.Interests)
}

func TestLearningSystem_UpdateInterests(t *testing.T) {
	l, store, p := newTestLearning(t)

	l.performance["culture"] = &domain.TopicPerformance{TotalScore: 1.6, Count: 2, Average: 0.8}
	l.performance["politics"] = &domain.TopicPerformance{TotalScore: 0.8, Count: 2, Average: 0.4}
	l.performance["health"] = &domain.TopicPerformance{TotalScore: 0.9, Count: 1, Average: 0.9}

	l.UpdateInterests(context.Background())

	assert.Equal(t, []string{"ai", "art", "culture"}, p.Interests)
	assert.Equal(t, 1, store.savePersonalityCalls)
}

func TestLearningSystem_AdaptTone(t *testing.T) {
	l, store, p := newTestLearning(t)
	p.ToneEngagement = map[string]*domain.EngagementStat{
		"friendly":   {Score: 0.4, Count: 5},
		"witty":      {Score: 0.8, Count: 3},
		"passionate": {Score: 0.9, Count: 1},
	}

	l.AdaptTone(context.Background())

	assert.Equal(t, "witty", p.Tone, "highest score with at least 2 samples")
	assert.Equal(t, 1, store.savePersonalityCalls)
}

func TestLearningSystem_AdaptToneNoChange(t *testing.T) {
	l, store, p := newTestLearning(t)
	p.ToneEngagement = map[string]*domain.EngagementStat{
		"friendly": {Score: 0.8, Count: 5},
	}

	l.AdaptTone(context.Background())

	assert.Equal(t, "friendly", p.Tone)
	assert.Equal(t, 0, store.savePersonalityCalls, "no save when tone unchanged")
}

func TestLearningSystem_SavePersonalityFoldsPatterns(t *testing.T) {
	l, store, p := newTestLearning(t)
	l.RecordEngagement("Big news!", domain.EngagementMetrics{Amplification: 100}, nil)

	ok := l.SavePersonality(context.Background())

	require.True(t, ok)
	require.NotNil(t, store.personality)
	assert.NotEmpty(t, p.Learning.SuccessfulPatterns)
}

func TestLearningSystem_SavePersonalityWithoutStore(t *testing.T) {
	p := testLearningPersonality()
	l := NewLearningSystem(p, nil, zap.NewNop())

	assert.False(t, l.SavePersonality(context.Background()))
}

func TestLearningSystem_SavePersonalityFailure(t *testing.T) {
	l, store, _ := newTestLearning(t)
	store.failSaves = true

	assert.False(t, l.SavePersonality(context.Background()))
}
