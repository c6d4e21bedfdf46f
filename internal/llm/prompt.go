package llm

import (
	"strings"
)

const maxPromptInput = 4000

var extractionRules = []string{
	"You extract actionable tasks from a voice note transcript.",
	"Output JSON only. No markdown, no code fences, no prose before or after the JSON.",
	`Use exactly these keys: "tasks" at the top level and "title", "due_time", "priority" for each task.`,
	`Set "due_time" to null when the transcript does not say when.`,
	`"priority" must be one of "low", "medium", "high".`,
	`If there are no tasks, output {"tasks":[]}.`,
	`Schema: {"tasks":[{"title":string,"due_time":string|null,"priority":"low"|"medium"|"high"}]}`,
}

// BuildExtractionPrompt composes the strict extraction prompt for a cleaned transcript.
func BuildExtractionPrompt(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > maxPromptInput {
		text = text[:maxPromptInput]
	}
	var b strings.Builder
	b.WriteString(strings.Join(extractionRules, "\n"))
	b.WriteString("\n\nTranscript:\n")
	b.WriteString(text)
	b.WriteString("\n\nJSON:")
	return b.String()
}

// BuildReinforcedPrompt appends an explicit JSON-only reminder to a prompt
// whose previous answer could not be parsed.
func BuildReinforcedPrompt(prompt string) string {
	prompt = strings.TrimSuffix(strings.TrimRight(prompt, " \n"), "JSON:")
	return strings.TrimRight(prompt, " \n") +
		"\n\nIMPORTANT: your previous answer was not valid JSON. " +
		"Respond with valid JSON only, starting with { and ending with }.\n\nJSON:"
}
