package service

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/okanevale/temperament/internal/domain"
)

// Influence profiles per emotion. Unknown emotions fall back to neutral.
var emotionInfluences = map[string]domain.EmotionInfluence{
	"excited": {
		ActionProbability:   0.3,
		EngagementThreshold: -0.2,
		ContentStyle:        "enthusiastic, uses exclamation points, emoji",
	},
	"curious": {
		ActionProbability:   0.1,
		EngagementThreshold: -0.1,
		ContentStyle:        "asks questions, explores ideas, thoughtful",
	},
	"inspired": {
		ActionProbability:   0.2,
		EngagementThreshold: -0.1,
		ContentStyle:        "creative, visionary, shares insights",
	},
	"thoughtful": {
		ActionProbability:   0.0,
		EngagementThreshold: 0.0,
		ContentStyle:        "measured, analytical, nuanced",
	},
	"amused": {
		ActionProbability:   0.2,
		EngagementThreshold: -0.2,
		ContentStyle:        "witty, humorous, playful",
	},
	"concerned": {
		ActionProbability:   -0.1,
		EngagementThreshold: 0.1,
		ContentStyle:        "cautious, questioning, seeking clarity",
	},
	"neutral": {
		ActionProbability:   0.0,
		EngagementThreshold: 0.0,
		ContentStyle:        "balanced, objective, straightforward",
	},
}

const (
	genericTriggerBoost  = 0.1
	overrideTriggerBoost = 0.2
)

// EmotionEngine holds the agent's decaying emotional state. Intensity
// decays linearly with wall-clock time and the emotion snaps back to the
// base state once it fades below 0.1. Not safe for concurrent use; the
// owning engine serializes access.
type EmotionEngine struct {
	base      string
	decayRate float64
	overrides []domain.TriggerRule
	triggers  []domain.TriggerRule
	current   domain.EmotionalState
	logger    *zap.Logger

	now func() time.Time
}

// NewEmotionEngine builds an engine from the personality's emotional
// config. A missing config yields a neutral engine with default decay.
func NewEmotionEngine(cfg *domain.EmotionConfig, logger *zap.Logger) *EmotionEngine {
	if cfg == nil {
		cfg = &domain.EmotionConfig{
			BaseState: "neutral",
			Intensity: 0.5,
			DecayRate: 0.1,
		}
	}

	current := cfg.CurrentState
	if current == "" {
		current = cfg.BaseState
	}

	overrides := cfg.Overrides
	if overrides == nil {
		overrides = []domain.TriggerRule{
			{Emotion: "excited", Words: []string{"amazing"}},
		}
	}

	e := &EmotionEngine{
		base:      cfg.BaseState,
		decayRate: cfg.DecayRate,
		overrides: overrides,
		triggers:  cfg.Triggers,
		current: domain.EmotionalState{
			Name:       current,
			Intensity:  cfg.Intensity,
			ObservedAt: time.Now(),
		},
		logger: logger,
		now:    time.Now,
	}

	logger.Info("initialized emotion engine", zap.String("base_state", e.base))
	return e
}

// UpdateEmotion decays the current state, then scans text for trigger
// words. Override rules are checked before generic rules and grant a
// larger intensity boost. The first matching word wins; non-matching text
// still pays the decay.
func (e *EmotionEngine) UpdateEmotion(text string) {
	e.applyDecay()

	lower := strings.ToLower(text)

	for _, rule := range e.overrides {
		for _, word := range rule.Words {
			if strings.Contains(lower, strings.ToLower(word)) {
				e.shift(rule.Emotion, overrideTriggerBoost, word)
				return
			}
		}
	}

	for _, rule := range e.triggers {
		for _, word := range rule.Words {
			if strings.Contains(lower, strings.ToLower(word)) {
				e.shift(rule.Emotion, genericTriggerBoost, word)
				return
			}
		}
	}
}

func (e *EmotionEngine) shift(emotion string, boost float64, word string) {
	intensity := e.current.Intensity + boost
	if intensity > 1 {
		intensity = 1
	}
	e.current = domain.EmotionalState{
		Name:       emotion,
		Intensity:  intensity,
		ObservedAt: e.now(),
	}
	e.logger.Debug("emotion updated",
		zap.String("emotion", emotion),
		zap.Float64("intensity", intensity),
		zap.String("trigger_word", word))
}

func (e *EmotionEngine) applyDecay() {
	elapsed := e.now().Sub(e.current.ObservedAt).Seconds()
	intensity := e.current.Intensity - elapsed*e.decayRate
	if intensity < 0 {
		intensity = 0
	}

	if intensity < 0.1 && e.current.Name != e.base {
		e.current = domain.EmotionalState{
			Name:       e.base,
			Intensity:  0.5,
			ObservedAt: e.now(),
		}
		e.logger.Debug("emotion decayed to base state", zap.String("base_state", e.base))
		return
	}

	e.current = domain.EmotionalState{
		Name:       e.current.Name,
		Intensity:  intensity,
		ObservedAt: e.now(),
	}
}

// CurrentEmotion applies decay and returns the resulting state.
func (e *EmotionEngine) CurrentEmotion() domain.EmotionalState {
	e.applyDecay()
	return e.current
}

// Influence returns the decision-making influence of the current emotion,
// with numeric weights scaled by intensity.
func (e *EmotionEngine) Influence() domain.EmotionInfluence {
	current := e.CurrentEmotion()

	influence, ok := emotionInfluences[current.Name]
	if !ok {
		influence = emotionInfluences["neutral"]
	}

	influence.ActionProbability *= current.Intensity
	influence.EngagementThreshold *= current.Intensity
	influence.CurrentEmotion = current.Name
	influence.Intensity = current.Intensity
	return influence
}

// HasOverride reports whether text contains any override trigger word.
func (e *EmotionEngine) HasOverride(text string) bool {
	lower := strings.ToLower(text)
	for _, rule := range e.overrides {
		for _, word := range rule.Words {
			if strings.Contains(lower, strings.ToLower(word)) {
				return true
			}
		}
	}
	return false
}
