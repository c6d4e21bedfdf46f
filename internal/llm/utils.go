package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

var (
	ErrNoJSONObject = errors.New("no JSON object found")
	ErrInvalidJSON  = errors.New("invalid JSON")
)

// ExtractJSONObject returns the substring between the first '{' and the last
// '}' of a model answer, provided it is syntactically valid JSON.
func ExtractJSONObject(out string) (string, error) {
	start := strings.IndexByte(out, '{')
	end := strings.LastIndexByte(out, '}')
	if start < 0 || end < start {
		return "", ErrNoJSONObject
	}
	candidate := out[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", ErrInvalidJSON
	}
	return candidate, nil
}
