package dataset_prep

import (
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
)

const (
	// Documents at or under this many lines are assumed to carry no
	// boilerplate header.
	shortDocumentLines = 15
	// Number of leading lines dropped from everything longer.
	boilerplateLines = 40
)

var blankRunRegex = regexp.MustCompile(`\n\s*\n`)

// StripBoilerplate
// Removes the header boilerplate from a document. Documents with at most 15
// lines are returned untouched; anything longer loses its first 40 lines.
// Documents that fall entirely within the dropped region come back empty.
func StripBoilerplate(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= shortDocumentLines {
		return text
	}
	if len(lines) <= boilerplateLines {
		return ""
	}
	return strings.Join(lines[boilerplateLines:], "\n")
}

// NormalizeBlankLines
// Collapses each run of blank lines, including lines holding only
// whitespace, down to a single blank line. Idempotent.
func NormalizeBlankLines(text string) string {
	return blankRunRegex.ReplaceAllString(text, "\n\n")
}

// CleanText
// The full per-document cleaning pass: boilerplate stripping followed by
// blank-line normalization.
func CleanText(text string) string {
	return NormalizeBlankLines(StripBoilerplate(text))
}

// CleanupReport holds a before/after comparison of the boilerplate strip
// for a single file, for eyeballing the cleanup behavior on real data.
type CleanupReport struct {
	Path           string
	OriginalChars  int
	OriginalLines  int
	CleanedChars   int
	CleanedLines   int
	RemovedChars   int
	RemovedPercent float64
	RemovedLines   []string
	Preview        []string
}

// BuildCleanupReport
// Reads and strips a single file, returning a report of what the cleanup
// removed. RemovedLines holds the first 15 original lines truncated to 80
// characters, Preview the non-blank lines among the first 5 cleaned ones.
func BuildCleanupReport(path string,
	fallback encoding.Encoding) (*CleanupReport, error) {
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, readErr
	}
	original, _, decodeErr := DecodeText(data, fallback)
	if decodeErr != nil {
		return nil, decodeErr
	}
	cleaned := StripBoilerplate(original)
	originalLines := strings.Split(original, "\n")
	cleanedLines := strings.Split(cleaned, "\n")

	report := &CleanupReport{
		Path:          path,
		OriginalChars: utf8.RuneCountInString(original),
		OriginalLines: len(originalLines),
		CleanedChars:  utf8.RuneCountInString(cleaned),
		CleanedLines:  len(cleanedLines),
	}
	report.RemovedChars = report.OriginalChars - report.CleanedChars
	if report.OriginalChars > 0 {
		report.RemovedPercent = float64(report.RemovedChars) /
			float64(report.OriginalChars) * 100
	}
	for lineIdx := 0; lineIdx < len(originalLines) &&
		lineIdx < shortDocumentLines; lineIdx++ {
		report.RemovedLines = append(report.RemovedLines,
			truncateRunes(originalLines[lineIdx], 80))
	}
	for lineIdx := 0; lineIdx < len(cleanedLines) && lineIdx < 5; lineIdx++ {
		if strings.TrimSpace(cleanedLines[lineIdx]) != "" {
			report.Preview = append(report.Preview,
				truncateRunes(cleanedLines[lineIdx], 80))
		}
	}
	return report, nil
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
