package llm

import (
	"fmt"
	"strings"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
)

// SanitizeTasks normalizes the loosely typed fields of a decoded task list in
// place so the document can still validate: priority labels are trimmed,
// lowercased and synonym-mapped, blank priorities become null, and scalar
// due times become strings. Structural problems are left for validation.
// It returns the keys it changed.
func SanitizeTasks(doc any) []string {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil
	}
	tasks, ok := root["tasks"].([]any)
	if !ok {
		return nil
	}
	var changed []string
	for i, item := range tasks {
		task, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if raw, ok := task["priority"].(string); ok {
			s := strings.TrimSpace(raw)
			switch {
			case s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "none"):
				task["priority"] = nil
				changed = append(changed, fmt.Sprintf("tasks[%d].priority", i))
			default:
				if p, ok := constants.CanonicalPriority(s); ok && string(p) != raw {
					task["priority"] = string(p)
					changed = append(changed, fmt.Sprintf("tasks[%d].priority", i))
				}
			}
		}
		switch v := task["due_time"].(type) {
		case string:
			if s := strings.TrimSpace(v); s == "" || strings.EqualFold(s, "null") {
				task["due_time"] = nil
				changed = append(changed, fmt.Sprintf("tasks[%d].due_time", i))
			}
		case float64, bool:
			task["due_time"] = fmt.Sprint(v)
			changed = append(changed, fmt.Sprintf("tasks[%d].due_time", i))
		}
	}
	return changed
}
