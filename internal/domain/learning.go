package domain

import "time"

// EngagementMetrics are the raw audience-response counters for one piece
// of content.
type EngagementMetrics struct {
	PositiveFeedback int       `json:"positive_feedback"` // likes, upvotes
	Amplification    int       `json:"amplification"`     // shares, reposts
	Responses        int       `json:"responses"`         // replies, comments
	Clicks           int       `json:"clicks"`            // link clicks
	Impressions      int       `json:"impressions"`       // views
	ObservedAt       time.Time `json:"observed_at,omitempty"`
}

// MetricWeights weight the raw counters when computing an engagement
// score. A zero weight means the counter is not configured.
type MetricWeights struct {
	PositiveFeedback float64 `json:"positive_feedback_weight"`
	Amplification    float64 `json:"amplification_weight"`
	Responses        float64 `json:"responses_weight"`
	Clicks           float64 `json:"clicks_weight"`
	Impressions      float64 `json:"impressions_weight"`
}

// Total returns the sum of all configured weights.
func (w MetricWeights) Total() float64 {
	return w.PositiveFeedback + w.Amplification + w.Responses + w.Clicks + w.Impressions
}

// Score computes the normalized engagement score in [0,1]. The weighted sum
// of the counters is converted to a rate per impression when impressions are
// reported and an impressions weight is configured, then normalized by the
// total weight. A zero total weight yields a zero score.
func (m EngagementMetrics) Score(w MetricWeights) float64 {
	total := w.Total()
	if total <= 0 {
		return 0
	}

	score := w.PositiveFeedback*float64(m.PositiveFeedback) +
		w.Amplification*float64(m.Amplification) +
		w.Responses*float64(m.Responses) +
		w.Clicks*float64(m.Clicks)

	if m.Impressions > 0 && w.Impressions > 0 {
		score = score / float64(m.Impressions) * w.Impressions
	}

	score /= total

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// TopicPerformance is the learning system's own running aggregate per
// topic, independent of the memory system's topic table.
type TopicPerformance struct {
	TotalScore float64 `json:"total_score"`
	Count      int     `json:"count"`
	Average    float64 `json:"average"`
}

// Pattern identifiers form a fixed vocabulary.
const (
	PatternQuestions    = "questions"
	PatternExclamations = "exclamations"
	PatternShortContent = "short_content"
	PatternLongContent  = "long_content"
)

// SuccessfulPattern records a structural cue that keeps showing up in
// high-engagement content. Confidence moves by exponential smoothing and
// patterns are never removed.
type SuccessfulPattern struct {
	Pattern         string    `json:"pattern"`
	Confidence      float64   `json:"confidence"` // [0,1]
	Count           int       `json:"count"`
	FirstObservedAt time.Time `json:"first_observed"`
}

// EngagementStat is a running average engagement score with its sample
// count, kept per topic and per tone on the personality record.
type EngagementStat struct {
	Score float64 `json:"score"`
	Count int     `json:"count"`
}

// LearningConfig is the learning subsection of a personality.
type LearningConfig struct {
	AdaptationRate     float64             `json:"adaptation_rate"`
	InterestEvolution  bool                `json:"interest_evolution"`
	EngagementLearning bool                `json:"engagement_learning"`
	Metrics            MetricWeights       `json:"metrics"`
	SuccessfulPatterns []SuccessfulPattern `json:"successful_patterns,omitempty"`
}

// LearningInsights is the read-only learning projection fed into decisions.
type LearningInsights struct {
	TopPerformingTopics map[string]float64 `json:"top_performing_topics"`
	SuccessfulPatterns  map[string]float64 `json:"successful_patterns"`
	Interests           []string           `json:"interests"`
}
