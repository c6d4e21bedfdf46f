package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/entity"
)

// Outcome is the result of parsing one model answer: either normalized tasks
// or a stable failure code with a human readable detail.
type Outcome struct {
	Tasks  []entity.Task
	Code   string
	Detail string
}

// OK reports whether the answer produced a valid task list.
func (o Outcome) OK() bool { return o.Code == "" }

// Reason renders the failure as "<code>: <detail>".
func (o Outcome) Reason() string {
	if o.Detail == "" {
		return o.Code
	}
	return o.Code + ": " + o.Detail
}

func failure(code, detail string) Outcome {
	return Outcome{Code: code, Detail: detail}
}

// ParseTaskList bounds, decodes, sanitizes, validates and normalizes a raw
// model answer.
func ParseTaskList(raw string) Outcome {
	if strings.TrimSpace(raw) == "" {
		return failure(constants.ReasonJSONParseError, "empty output")
	}
	candidate, err := ExtractJSONObject(raw)
	if err != nil {
		return failure(constants.ReasonJSONParseError, err.Error())
	}
	var doc any
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return failure(constants.ReasonJSONParseError, err.Error())
	}
	SanitizeTasks(doc)

	if code, detail := classify(doc); code != "" {
		return failure(code, detail)
	}
	if err := ValidateTaskList(doc); err != nil {
		return failure(constants.ReasonSchemaViolation, err.Error())
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return failure(constants.ReasonJSONParseError, err.Error())
	}
	var parsed struct {
		Tasks []entity.Task `json:"tasks"`
	}
	if err := json.Unmarshal(b, &parsed); err != nil {
		return failure(constants.ReasonSchemaViolation, err.Error())
	}
	return Outcome{Tasks: NormalizeTasks(parsed.Tasks)}
}

// classify names the first structural rule a decoded document breaks.
func classify(doc any) (string, string) {
	root, ok := doc.(map[string]any)
	if !ok {
		return constants.ReasonMissingTasksKey, "top-level value is not an object"
	}
	rawTasks, ok := root["tasks"]
	if !ok {
		return constants.ReasonMissingTasksKey, `no "tasks" key`
	}
	tasks, ok := rawTasks.([]any)
	if !ok {
		return constants.ReasonTasksNotList, fmt.Sprintf(`"tasks" is %T`, rawTasks)
	}
	for i, item := range tasks {
		task, ok := item.(map[string]any)
		if !ok {
			return constants.ReasonTaskMissingTitle, fmt.Sprintf("tasks[%d] is not an object", i)
		}
		title, ok := task["title"].(string)
		if !ok || strings.TrimSpace(title) == "" {
			return constants.ReasonTaskMissingTitle, fmt.Sprintf("tasks[%d] has no title", i)
		}
		if p, present := task["priority"]; present && p != nil {
			s, isString := p.(string)
			if _, known := constants.CanonicalPriority(s); !isString || !known || s != strings.ToLower(s) {
				return constants.ReasonInvalidPriority, fmt.Sprintf("tasks[%d].priority = %v", i, p)
			}
		}
	}
	return "", ""
}

// NormalizeTasks trims titles and resolves priorities. A missing priority is
// inferred from cues in the title.
func NormalizeTasks(tasks []entity.Task) []entity.Task {
	out := make([]entity.Task, 0, len(tasks))
	for _, t := range tasks {
		t.Title = strings.TrimSpace(t.Title)
		if p, ok := constants.CanonicalPriority(string(t.Priority)); ok {
			t.Priority = p
		} else {
			t.Priority = constants.InferPriority(t.Title)
		}
		out = append(out, t)
	}
	return out
}
