package studygen

import (
	"encoding/json"
	"fmt"
	"strings"
)

const codeFence = "```"

// decodeLoose parses a model reply into an untyped JSON value. The reply
// is parsed as-is first; if that fails, one surrounding Markdown code
// fence is removed and the parse is retried exactly once.
func decodeLoose(raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v, nil
	}

	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &v); err != nil {
		return nil, fmt.Errorf("invalid JSON after fence cleanup: %w", err)
	}
	return v, nil
}

// stripCodeFence removes a leading ``` (with an optional json tag) and a
// trailing ```. Fences inside the payload are left alone.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)

	if rest, ok := strings.CutPrefix(s, codeFence); ok {
		if len(rest) >= 4 && strings.EqualFold(rest[:4], "json") {
			rest = rest[4:]
		}
		s = rest
	}
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutSuffix(s, codeFence); ok {
		s = rest
	}

	return strings.TrimSpace(s)
}

// unwrapQuestions returns the "questions" field when v is an object that
// has one, and v itself otherwise.
func unwrapQuestions(v any) any {
	if obj, ok := v.(map[string]any); ok {
		if qs, ok := obj["questions"]; ok {
			return qs
		}
	}
	return v
}
