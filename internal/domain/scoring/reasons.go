package scoring

// Reason is a tagged reason code emitted by a scoring module. Downstream
// consumers branch on the code; display text lives only in the presentation
// mapping below.
type Reason string

// The closed set of reason codes.
const (
	ReasonNicheMatch       Reason = "niche_match"
	ReasonTopicOverlap     Reason = "topic_overlap"
	ReasonPriorityTopic    Reason = "priority_topic"
	ReasonPlatformAligned  Reason = "platform_aligned"
	ReasonStrongEngagement Reason = "strong_engagement"
)

// reasonText maps reason codes to human-readable display strings.
var reasonText = map[Reason]string{
	ReasonNicheMatch:       "category/niche match",
	ReasonTopicOverlap:     "topic overlap",
	ReasonPriorityTopic:    "priority topic match",
	ReasonPlatformAligned:  "platform alignment",
	ReasonStrongEngagement: "strong engagement",
}

// Display returns the presentation text for a reason code. Unknown codes
// fall back to the code itself so nothing is silently dropped.
func (r Reason) Display() string {
	if t, ok := reasonText[r]; ok {
		return t
	}
	return string(r)
}

// DisplayAll maps a reason list to its presentation strings, preserving order.
func DisplayAll(reasons []Reason) []string {
	out := make([]string, len(reasons))
	for i, r := range reasons {
		out[i] = r.Display()
	}
	return out
}
