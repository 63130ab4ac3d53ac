package conversation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/marty/internal/domain"
)

// FormatBlock renders a block as "Monday 17:00–19:00 (2h)".
func FormatBlock(b domain.WorkBlock) string {
	return fmt.Sprintf("%s %s–%s (%sh)",
		b.Start.Weekday(), b.Start.Format("15:04"), b.End.Format("15:04"), FormatHours(b.Hours()))
}

// FormatPreview renders a numbered list of blocks, one per line.
func FormatPreview(blocks []domain.WorkBlock) string {
	lines := make([]string, len(blocks))
	for i, b := range blocks {
		lines[i] = fmt.Sprintf("%d. %s", i+1, FormatBlock(b))
	}
	return strings.Join(lines, "\n")
}

// FormatHours prints hours to at most two decimals without trailing zeros:
// 2, 1.5, 0.25.
func FormatHours(h float64) string {
	return strconv.FormatFloat(math.Round(h*100)/100, 'f', -1, 64)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
