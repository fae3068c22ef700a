package editor

import "strings"

const faceClause = "keep the person's face consistent with the reference face"

// EffectivePrompt is the prompt actually sent to the generator: the user
// prompt followed by clauses for the human-count and face-consistency
// controls.
func EffectivePrompt(prompt string, humans HumanCount, faceConsistency bool) string {
	parts := make([]string, 0, 3)
	if p := strings.TrimSpace(prompt); p != "" {
		parts = append(parts, p)
	}
	if c := humanClause(humans); c != "" {
		parts = append(parts, c)
	}
	if faceConsistency {
		parts = append(parts, faceClause)
	}
	return strings.Join(parts, ", ")
}

func humanClause(h HumanCount) string {
	switch h {
	case HumanNone:
		return ""
	case HumanOne:
		return "featuring exactly one person"
	case HumanTwo:
		return "featuring exactly two people"
	case HumanGroup:
		return "featuring a group of people"
	default:
		return "featuring " + strings.ToLower(strings.TrimSpace(string(h)))
	}
}
