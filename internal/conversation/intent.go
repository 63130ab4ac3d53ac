package conversation

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/alexanderramin/marty/internal/scheduler"
)

var planningKeywords = map[string]bool{
	"due": true, "deadline": true, "project": true, "assignment": true, "exam": true,
}

var cancelCommands = map[string]bool{
	"cancel": true, "/cancel": true, "stop planning": true,
}

// HasPlanningIntent reports whether text mentions a planning keyword as a
// whole word. Simple plurals count ("exams", "deadlines").
func HasPlanningIntent(text string) bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if planningKeywords[w] || planningKeywords[strings.TrimSuffix(w, "s")] {
			return true
		}
	}
	return false
}

// ParseHours reads a positive number from the first whitespace-delimited
// token. Amounts under a minute or beyond scheduler.MaxRequiredHours are
// rejected.
func ParseHours(text string) (float64, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, false
	}
	h, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || math.IsNaN(h) || math.IsInf(h, 0) || !scheduler.ValidHours(h) {
		return 0, false
	}
	return h, true
}

func isCancelCommand(text string) bool {
	return cancelCommands[strings.ToLower(strings.Join(strings.Fields(text), " "))]
}
