package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
)

// BuildTaskListJSONSchema returns the task-list JSON-Schema as a generic map.
// Priorities are compared after SanitizeTasks has canonicalized them.
func BuildTaskListJSONSchema() map[string]any {
	priorities := []any{nil}
	for _, p := range constants.AsStringSlice() {
		priorities = append(priorities, p)
	}
	task := map[string]any{
		"type":     "object",
		"required": []string{"title"},
		"properties": map[string]any{
			"title":    map[string]any{"type": "string", "minLength": 1, "pattern": `\S`},
			"due_time": map[string]any{"type": []string{"string", "null"}},
			"priority": map[string]any{"enum": priorities},
		},
	}
	return map[string]any{
		"type":     "object",
		"required": []string{"tasks"},
		"properties": map[string]any{
			"tasks": map[string]any{
				"type":  "array",
				"items": task,
			},
		},
	}
}

var taskListSchema = mustCompileSchema(BuildTaskListJSONSchema(), "tasks.schema.json")

func compileSchema(schemaMap map[string]any, name string) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

func mustCompileSchema(schemaMap map[string]any, name string) *jsonschema.Schema {
	schema, err := compileSchema(schemaMap, name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return schema
}
