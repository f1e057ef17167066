package scoring

import "github.com/creatorhub/matchengine/internal/domain/model"

// Topic similarity tuning.
const (
	topicNoSpecConfidence  = 0.3 // brand declared no match topics
	topicMissingConfidence = 0.4 // creator exposes no topics
	topicBaseConfidence    = 0.5
	topicConfidencePerItem = 0.1
	topicMaxConfidence     = 0.95
	topicBoostPerHit       = 0.1
	topicBoostCap          = 0.2
	topicReasonThreshold   = 0.3
)

// TopicModule measures how much of the brand's creator-native topic set the
// creator actually covers. MatchTopics must already be expressed in the same
// vocabulary as creator topic tags; the marketing-language campaign angles
// never feed this module.
type TopicModule struct{}

// NewTopicModule creates the topic similarity module.
func NewTopicModule() *TopicModule { return &TopicModule{} }

// Name implements Module.
func (m *TopicModule) Name() string { return ModuleTopics }

// Score implements Module.
func (m *TopicModule) Score(spec model.MatchSpec, creator model.CreatorProfile) Result {
	want := lowerSet(spec.MatchTopics)
	if len(want) == 0 {
		// Cannot assess without a brand-side anchor set.
		return Result{Score: 0, Confidence: topicNoSpecConfidence}
	}

	have := lowerSet(creator.Metrics.TopTopics)
	if len(have) == 0 {
		return Result{Score: 0, Confidence: topicMissingConfidence}
	}

	overlap, _ := overlapRatio(spec.MatchTopics, have)

	// Priority topics add a bounded additive nudge, never a multiplier.
	_, priorityHits := overlapRatio(spec.PriorityTopics, have)
	boost := topicBoostPerHit * float64(priorityHits)
	if boost > topicBoostCap {
		boost = topicBoostCap
	}

	score := clamp01(overlap + boost)

	confidence := topicBaseConfidence + topicConfidencePerItem*float64(len(want))
	if confidence > topicMaxConfidence {
		confidence = topicMaxConfidence
	}

	var reasons []Reason
	if overlap >= topicReasonThreshold {
		reasons = append(reasons, ReasonTopicOverlap)
	}
	if boost > 0 {
		reasons = append(reasons, ReasonPriorityTopic)
	}

	return Result{Score: score, Confidence: confidence, Reasons: reasons}
}
