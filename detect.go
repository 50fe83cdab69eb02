package dataset_prep

import (
	"errors"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pemistahl/lingua-go"
)

// ErrLangUndetermined is returned when the classifier cannot settle on any
// language for a sample.
var ErrLangUndetermined = errors.New("language could not be determined")

// LangDetector classifies a text sample, returning a lowercase ISO 639-1
// code such as `en`.
type LangDetector interface {
	Detect(sample string) (string, error)
}

// LinguaDetector backs LangDetector with the lingua n-gram models across
// all supported languages.
type LinguaDetector struct {
	detector lingua.LanguageDetector
}

func NewLinguaDetector() *LinguaDetector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()
	return &LinguaDetector{detector: detector}
}

func (ld *LinguaDetector) Detect(sample string) (string, error) {
	language, exists := ld.detector.DetectLanguageOf(sample)
	if !exists {
		return "", ErrLangUndetermined
	}
	return strings.ToLower(language.IsoCode639_1().String()), nil
}

type langResult struct {
	code string
	err  error
}

// CachedLangDetector memoizes detection results keyed by the sample text,
// so a corpus scanned by a language report and then combined classifies
// each file once. Failed detections are cached alongside successes.
type CachedLangDetector struct {
	inner LangDetector
	cache *lru.ARCCache
}

func NewCachedLangDetector(inner LangDetector,
	size int) (*CachedLangDetector, error) {
	cache, err := lru.NewARC(size)
	if err != nil {
		return nil, err
	}
	return &CachedLangDetector{inner: inner, cache: cache}, nil
}

func (cd *CachedLangDetector) Detect(sample string) (string, error) {
	if cached, ok := cd.cache.Get(sample); ok {
		result := cached.(langResult)
		return result.code, result.err
	}
	code, err := cd.inner.Detect(sample)
	cd.cache.Add(sample, langResult{code: code, err: err})
	return code, err
}
