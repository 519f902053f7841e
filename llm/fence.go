package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	jsonFenceRegex = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	bareFenceRegex = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// StripCodeFence returns the body of the first ```json fence, or of the first
// bare ``` fence when there is no json one. Text without a closed fence is
// returned unchanged.
func StripCodeFence(text string) string {
	if strings.Contains(text, "```json") {
		if m := jsonFenceRegex.FindStringSubmatch(text); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
		return text
	}

	if strings.Contains(text, "```") {
		if m := bareFenceRegex.FindStringSubmatch(text); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}

	return text
}

// extractJSONObject returns the first brace-balanced object in text that is
// valid JSON. Braces inside strings are ignored.
func extractJSONObject(text string) (string, bool) {
	startIdx := strings.Index(text, "{")
	for startIdx != -1 {
		braceCount := 0
		inString := false
		escaped := false

		for i := startIdx; i < len(text); i++ {
			char := text[i]

			if escaped {
				escaped = false
				continue
			}
			if char == '\\' && inString {
				escaped = true
				continue
			}
			if char == '"' {
				inString = !inString
				continue
			}
			if inString {
				continue
			}

			if char == '{' {
				braceCount++
			} else if char == '}' {
				braceCount--
				if braceCount == 0 {
					candidate := text[startIdx : i+1]
					if json.Valid([]byte(candidate)) {
						return candidate, true
					}
					break
				}
			}
		}

		next := strings.Index(text[startIdx+1:], "{")
		if next == -1 {
			break
		}
		startIdx += next + 1
	}

	return "", false
}
