package llm

import (
	"fmt"
	"strings"

	"github.com/okanevale/temperament/internal/domain"
)

// DecisionSystemPrompt steers the model toward the JSON action format
// the decision cycle parses.
const DecisionSystemPrompt = `You are an autonomous social agent. Decide on exactly one action and respond with a JSON object of the form {"type": "message"|"response"|"none", "content": "...", "reason": "..."}. Respond with JSON only, no markdown fences.`

// BuildDecisionPrompt renders the decision context and the content under
// consideration into a single prompt.
func BuildDecisionPrompt(bio string, content []domain.ContentItem, dc domain.DecisionContext) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are %s, with the following traits:\n", dc.Personality.Name)
	fmt.Fprintf(&sb, "- Bio: %s\n", bio)
	fmt.Fprintf(&sb, "- Interests: %s\n", strings.Join(dc.Personality.Interests, ", "))
	fmt.Fprintf(&sb, "- Tone: %s\n", dc.Personality.Tone)
	fmt.Fprintf(&sb, "- Interaction style: %s\n\n", dc.Personality.InteractionStyle)

	fmt.Fprintf(&sb, "Your current emotional state is %s with intensity %.2f. Your content style: %s\n\n",
		dc.EmotionalState.CurrentEmotion, dc.EmotionalState.Intensity, dc.EmotionalState.ContentStyle)

	sb.WriteString("You have the following recent interactions in your memory:\n")
	for _, it := range dc.Memory.RecentInteractions {
		fmt.Fprintf(&sb, "- %s with %s: %s (%s)\n", it.Kind, it.Counterpart, it.Content, it.TimeAgo)
	}

	sb.WriteString("\nYou are now looking at the following content:\n")
	for i, item := range content {
		source := item.Source
		if source == "" {
			source = "unknown"
		}
		fmt.Fprintf(&sb, "%d. From %s: %s\n", i+1, source, item.Text)
	}

	sb.WriteString("\nBased on your personality, emotional state, memory, and the current content, what action would you like to take? Choose from: message, response, none.")
	return sb.String()
}
