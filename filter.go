package dataset_prep

import (
	"strings"
	"unicode/utf8"
)

// RejectReason is the category a skipped document is tallied under.
type RejectReason string

const (
	ReasonNonEnglish      RejectReason = "non_english"
	ReasonTooShort        RejectReason = "too_short"
	ReasonDecodeError     RejectReason = "decode_error"
	ReasonClassifierError RejectReason = "classifier_error"
	ReasonEmpty           RejectReason = "empty"
)

// FilterDecision is the outcome of a single acceptance check. Language
// carries the detected code whenever detection ran, accepted or not.
type FilterDecision struct {
	Accepted bool
	Reason   RejectReason
	Language string
}

// DocumentFilter holds the acceptance rules applied to each candidate
// document: language of the leading sample, and a minimum cleaned length
// measured in runes.
type DocumentFilter struct {
	Detector        LangDetector
	AcceptLanguage  string
	SampleRunes     int
	MinCleanedRunes int
}

// NewDocumentFilter
// Returns a DocumentFilter with the default acceptance rules.
func NewDocumentFilter(detector LangDetector) DocumentFilter {
	return DocumentFilter{detector, "en", 1000, 100}
}

// CheckLanguage
// Classifies the leading sample of a raw document. Whitespace-only
// documents are rejected outright without invoking the classifier.
func (df DocumentFilter) CheckLanguage(text string) FilterDecision {
	if strings.TrimSpace(text) == "" {
		return FilterDecision{Accepted: false, Reason: ReasonEmpty}
	}
	sample := sampleText(text, df.SampleRunes)
	language, detectErr := df.Detector.Detect(sample)
	if detectErr != nil {
		return FilterDecision{Accepted: false, Reason: ReasonClassifierError}
	}
	if language != df.AcceptLanguage {
		return FilterDecision{
			Accepted: false,
			Reason:   ReasonNonEnglish,
			Language: language,
		}
	}
	return FilterDecision{Accepted: true, Language: language}
}

// CheckLength
// Rejects documents whose cleaned text, ignoring surrounding whitespace,
// falls short of the minimum rune count.
func (df DocumentFilter) CheckLength(cleaned string) FilterDecision {
	length := utf8.RuneCountInString(strings.TrimSpace(cleaned))
	if length < df.MinCleanedRunes {
		return FilterDecision{Accepted: false, Reason: ReasonTooShort}
	}
	return FilterDecision{Accepted: true}
}

// sampleText
// Returns the first limit runes of text without copying the tail.
func sampleText(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	count := 0
	for idx := range text {
		if count == limit {
			return text[:idx]
		}
		count++
	}
	return text
}
