package textblock

import "strings"

// Replace swaps the region between startMarker and endMarker (inclusive)
// for generated, or appends a new marked region when none exists.
func Replace(body, startMarker, endMarker, generated string) string {
	start := strings.Index(body, startMarker)
	end := strings.Index(body, endMarker)
	block := startMarker + "\n" + generated + "\n" + endMarker

	if start >= 0 && end > start {
		end += len(endMarker)
		return body[:start] + block + body[end:]
	}

	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return block + "\n"
	}
	if strings.HasSuffix(body, "\n") {
		return body + block + "\n"
	}
	return body + "\n" + block + "\n"
}

// Remove drops every marked region together with its trailing newline.
// A start marker without a matching end marker is left untouched.
func Remove(body, startMarker, endMarker string) string {
	for {
		start := strings.Index(body, startMarker)
		if start < 0 {
			return body
		}
		rel := strings.Index(body[start:], endMarker)
		if rel < 0 {
			return body
		}
		end := start + rel + len(endMarker)
		if end < len(body) && body[end] == '\n' {
			end++
		}
		body = body[:start] + body[end:]
	}
}
