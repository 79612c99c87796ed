package llm

import "strings"

// CleanJSONBlock extracts the JSON payload from a model response.
// Models often wrap JSON in ```json ... ``` blocks, or add a sentence before or after it,
// even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "{") {
		if obj := extractJSONObject(text); obj != "" {
			return obj
		}
		return text
	}
	if strings.HasPrefix(text, "[") {
		if arr := extractJSONArray(text); arr != "" {
			return arr
		}
		return text
	}

	// Preamble before the payload: start at the first opening brace or bracket
	objIdx := strings.Index(text, "{")
	arrIdx := strings.Index(text, "[")
	switch {
	case objIdx >= 0 && (arrIdx < 0 || objIdx < arrIdx):
		if obj := extractJSONObject(text[objIdx:]); obj != "" {
			return obj
		}
	case arrIdx >= 0:
		if arr := extractJSONArray(text[arrIdx:]); arr != "" {
			return arr
		}
	}

	return text
}

// extractJSONObject returns the balanced {...} prefix of text, or "" if there is none
func extractJSONObject(text string) string {
	return extractBalanced(text, '{', '}')
}

// extractJSONArray returns the balanced [...] prefix of text, or "" if there is none
func extractJSONArray(text string) string {
	return extractBalanced(text, '[', ']')
}

// extractBalanced scans from an opening delimiter to its matching close,
// ignoring delimiters inside JSON strings.
func extractBalanced(text string, open, closing byte) string {
	if len(text) == 0 || text[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
