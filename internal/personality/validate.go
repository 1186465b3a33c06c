package personality

import (
	"fmt"

	"github.com/okanevale/temperament/internal/domain"
)

// Validate checks a personality record for structural completeness and
// range errors. It returns every problem found rather than stopping at
// the first one.
func Validate(p *domain.Personality) []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, fmt.Errorf("missing required field: name"))
	}
	if p.Bio == "" {
		errs = append(errs, fmt.Errorf("missing required field: bio"))
	}
	if len(p.Interests) == 0 {
		errs = append(errs, fmt.Errorf("missing required field: interests"))
	}
	if p.Tone == "" {
		errs = append(errs, fmt.Errorf("missing required field: tone"))
	}
	if p.InteractionStyle == "" {
		errs = append(errs, fmt.Errorf("missing required field: interaction_style"))
	}
	if len(p.ContentPrefs.Topics) == 0 {
		errs = append(errs, fmt.Errorf("missing required field: content_preferences.topics"))
	}
	if len(p.ContentPrefs.ContentTypes) == 0 {
		errs = append(errs, fmt.Errorf("missing required field: content_preferences.content_types"))
	}

	if p.EmotionalState == nil {
		errs = append(errs, fmt.Errorf("missing required field: emotional_state"))
	} else {
		es := p.EmotionalState
		if es.BaseState == "" {
			errs = append(errs, fmt.Errorf("missing required subfield: emotional_state.base_state"))
		}
		if es.CurrentState == "" {
			errs = append(errs, fmt.Errorf("missing required subfield: emotional_state.current_state"))
		}
		if es.Intensity < 0 || es.Intensity > 1 {
			errs = append(errs, fmt.Errorf("emotional_state.intensity must be in [0,1], got %v", es.Intensity))
		}
		if es.DecayRate < 0 {
			errs = append(errs, fmt.Errorf("emotional_state.decay_rate must not be negative, got %v", es.DecayRate))
		}
		for i, rule := range append(append([]domain.TriggerRule{}, es.Triggers...), es.Overrides...) {
			if rule.Emotion == "" {
				errs = append(errs, fmt.Errorf("trigger rule %d missing emotion", i))
			}
			if len(rule.Words) == 0 {
				errs = append(errs, fmt.Errorf("trigger rule %d for %q has no words", i, rule.Emotion))
			}
		}
	}

	if p.Memory == nil {
		errs = append(errs, fmt.Errorf("missing required field: memory"))
	} else if p.Memory.ShortTermCapacity <= 0 {
		errs = append(errs, fmt.Errorf("memory.short_term_capacity must be positive, got %d", p.Memory.ShortTermCapacity))
	}

	if p.Learning == nil {
		errs = append(errs, fmt.Errorf("missing required field: learning"))
	} else {
		lc := p.Learning
		if lc.AdaptationRate < 0 || lc.AdaptationRate > 1 {
			errs = append(errs, fmt.Errorf("learning.adaptation_rate must be in [0,1], got %v", lc.AdaptationRate))
		}
		if lc.Metrics.Total() <= 0 {
			errs = append(errs, fmt.Errorf("learning.metrics must configure at least one positive weight"))
		}
	}

	return errs
}
