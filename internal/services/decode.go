package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Lenient decoding of model responses. LLMs wrap JSON in markdown fences,
// prepend prose, or answer in free text; the fallback ladder here is
// strict parse -> fenced-block extraction -> brace extraction, and callers
// degrade to a raw-text wrapper when every rung fails.

// DecodeJSON unmarshals a model response into target, tolerating markdown
// fences and surrounding prose.
func DecodeJSON(response string, target interface{}) error {
	trimmed := strings.TrimSpace(response)

	if err := json.Unmarshal([]byte(trimmed), target); err == nil {
		return nil
	}

	extracted := ExtractJSON(trimmed)
	if err := json.Unmarshal([]byte(extracted), target); err != nil {
		return fmt.Errorf("failed to unmarshal model response: %w", err)
	}
	return nil
}

// ExtractJSON strips markdown code fences and returns the first JSON object
// or array found in the text.
func ExtractJSON(text string) string {
	text = stripCodeFence(text)

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	switch {
	case startObj != -1 && endObj > startObj && (startArr == -1 || startObj < startArr):
		return text[startObj : endObj+1]
	case startArr != -1 && endArr > startArr:
		return text[startArr : endArr+1]
	}

	return text
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	// Drop a language tag like "json" on the opening fence
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(text[:idx])
		if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

var scorePattern = regexp.MustCompile(`\b(10|[0-9])\b`)

// ExtractScore pulls the first integer in the 0-10 range out of a free-text
// scoring response. Returns false when the response contains none, which
// callers treat as a silent scoring miss rather than an error.
func ExtractScore(text string) (int, bool) {
	match := scorePattern.FindString(text)
	if match == "" {
		return 0, false
	}
	score, err := strconv.Atoi(match)
	if err != nil || score < 0 || score > 10 {
		return 0, false
	}
	return score, true
}
