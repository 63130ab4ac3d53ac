package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator checks a value after JSON extraction.
type SchemaValidator[T any] func(T) error

// ExtractJSON decodes the first JSON object embedded in raw model output.
// Code fences, surrounding prose and // or /* */ comments are tolerated.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	obj, ok := FindJSONObject(raw)
	if !ok {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var result T
	if err := json.Unmarshal([]byte(obj), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return result, nil
}

// FindJSONObject returns the first balanced {...} block in s with comments
// removed.
func FindJSONObject(s string) (string, bool) {
	s = stripCodeFences(s)
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	var out strings.Builder
	depth := 0
	sc := jsonScanner{}
	for i := start; i < len(s); i++ {
		c := s[i]
		if !sc.inString {
			if skip := commentLen(s[i:]); skip > 0 {
				i += skip - 1
				continue
			}
		}
		out.WriteByte(c)
		if sc.step(c) {
			continue
		}
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return out.String(), true
			}
		}
	}
	return "", false
}

// jsonScanner tracks whether the cursor is inside a string literal.
type jsonScanner struct {
	inString bool
	escaped  bool
}

// step consumes c and reports whether it was part of a string literal.
func (sc *jsonScanner) step(c byte) bool {
	switch {
	case sc.escaped:
		sc.escaped = false
		return true
	case sc.inString && c == '\\':
		sc.escaped = true
		return true
	case c == '"':
		sc.inString = !sc.inString
		return true
	}
	return sc.inString
}

// commentLen returns how many bytes of a leading comment to skip, or 0.
// A line comment keeps its newline.
func commentLen(s string) int {
	switch {
	case strings.HasPrefix(s, "//"):
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			return nl
		}
		return len(s)
	case strings.HasPrefix(s, "/*"):
		if end := strings.Index(s[2:], "*/"); end >= 0 {
			return end + 4
		}
		return len(s)
	}
	return 0
}

// stripCodeFences drops markdown fence lines (``` or ```json).
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
