package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeObject parses a model response expected to contain a single JSON
// object, tolerating Markdown fences and stray prose around the payload.
func DecodeObject(raw string) (map[string]interface{}, error) {
	clean := cleanModelJSON(raw, '{', '}')

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(clean), &obj); err != nil {
		return nil, fmt.Errorf("llm.DecodeObject: unmarshal JSON: %w\nraw response: %s", err, raw)
	}
	return obj, nil
}

// DecodeList parses a model response expected to contain a JSON array.
func DecodeList(raw string) ([]interface{}, error) {
	clean := cleanModelJSON(raw, '[', ']')

	var list []interface{}
	if err := json.Unmarshal([]byte(clean), &list); err != nil {
		return nil, fmt.Errorf("llm.DecodeList: unmarshal JSON: %w\nraw response: %s", err, raw)
	}
	return list, nil
}

// cleanModelJSON strips Markdown code fences and surrounding text the model
// sometimes emits despite being told to return raw JSON.
func cleanModelJSON(raw string, open, close byte) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers.
	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			// Single-line weirdness; just return as-is.
			return s
		}
		s = strings.TrimSpace(s)
	}

	// Remove trailing ``` if present.
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Extra safety: if there's still junk around the JSON payload, keep only
	// from the first opening delimiter to the last closing one.
	if start := strings.IndexByte(s, open); start != -1 {
		if end := strings.LastIndexByte(s, close); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
