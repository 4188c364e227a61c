package ai

import "strings"

// HealthPrompt is the trivial prompt used to check the model is reachable.
const HealthPrompt = "Say 'OK'"

const taskPromptHeader = `You are a senior product manager and software architect.

Generate:
1. User stories
2. Engineering tasks grouped into Frontend, Backend, Other
3. Risks or unknowns

Return clean MARKDOWN only, with no other commentary.
`

// BuildTaskPrompt renders the task-generation prompt. Inputs are substituted
// verbatim; an empty risks value becomes "None".
func BuildTaskPrompt(goal, users, constraints, template, risks string) string {
	if risks == "" {
		risks = "None"
	}

	var b strings.Builder
	b.WriteString(taskPromptHeader)

	section := func(label, value string) {
		b.WriteString("\n")
		b.WriteString(label)
		b.WriteString(":\n")
		b.WriteString(value)
		b.WriteString("\n")
	}

	section("Feature goal", goal)
	section("Target users", users)
	section("Constraints", constraints)
	section("Product type", template)
	section("Known risks", risks)

	return b.String()
}
