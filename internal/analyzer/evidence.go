package analyzer

import (
	"strings"
	"unicode/utf8"

	"github.com/ludo-technologies/plagscan/domain"
)

// EvidenceLocator finds lines that appear verbatim in both submissions
type EvidenceLocator struct {
	minLineLength int
	maxBlocks     int
}

// NewEvidenceLocator creates a locator.
// Lines must be longer than minLineLength runes after trimming; maxBlocks <= 0 means unlimited.
func NewEvidenceLocator(minLineLength, maxBlocks int) *EvidenceLocator {
	return &EvidenceLocator{minLineLength: minLineLength, maxBlocks: maxBlocks}
}

// Locate returns one block for every pair of raw lines whose trimmed text is identical
// and long enough, ordered by the line in code1 and then the line in code2.
// Line numbers are 1-based and the text is trimmed.
func (l *EvidenceLocator) Locate(code1, code2 string) []domain.EvidenceBlock {
	lines2 := make(map[string][]int)
	for i, line := range splitLines(code2) {
		trimmed := strings.TrimSpace(line)
		if l.qualifies(trimmed) {
			lines2[trimmed] = append(lines2[trimmed], i+1)
		}
	}
	if len(lines2) == 0 {
		return []domain.EvidenceBlock{}
	}

	blocks := []domain.EvidenceBlock{}
	for i, line := range splitLines(code1) {
		trimmed := strings.TrimSpace(line)
		if !l.qualifies(trimmed) {
			continue
		}
		for _, line2 := range lines2[trimmed] {
			blocks = append(blocks, domain.EvidenceBlock{
				Line1:      i + 1,
				Line2:      line2,
				Text:       trimmed,
				Confidence: 1.0,
			})
			if l.maxBlocks > 0 && len(blocks) >= l.maxBlocks {
				return blocks
			}
		}
	}
	return blocks
}

func (l *EvidenceLocator) qualifies(trimmed string) bool {
	return utf8.RuneCountInString(trimmed) > l.minLineLength
}

func splitLines(code string) []string {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	return strings.Split(code, "\n")
}
