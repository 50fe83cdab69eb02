package dataset_prep

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// englishDocument builds a document long enough to survive boilerplate
// stripping and the length gate. The marker word steers MockDetector.
func englishDocument(marker string) string {
	var lines []string
	for idx := 0; idx < 40; idx++ {
		lines = append(lines, fmt.Sprintf("%s header line %d", marker, idx))
	}
	lines = append(lines, strings.Repeat("body text ", 20))
	return strings.Join(lines, "\n")
}

func writeInputFile(t *testing.T, dir string, name string,
	content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func newTestPipeline(t *testing.T,
	detector LangDetector) (*Pipeline, string) {
	t.Helper()
	outputDir := t.TempDir()
	writer, writerErr := NewShardWriter(outputDir, DefaultSeparator, 500)
	require.NoError(t, writerErr)
	fallback, encErr := ResolveEncoding("latin1")
	require.NoError(t, encErr)
	return &Pipeline{
		Filter:   NewDocumentFilter(detector),
		Fallback: fallback,
		Writer:   writer,
	}, outputDir
}

func TestPipelineRun(t *testing.T) {
	inputDir := t.TempDir()
	accepted := writeInputFile(t, inputDir, "accepted.txt",
		[]byte(englishDocument("PLAIN")))
	french := writeInputFile(t, inputDir, "french.txt",
		[]byte(englishDocument("FRENCH")))
	short := writeInputFile(t, inputDir, "short.txt",
		[]byte(strings.Join([]string{"a", "b", "c"}, "\n")))
	empty := writeInputFile(t, inputDir, "empty.txt", []byte("   \n  "))

	detector := &MockDetector{Languages: map[string]string{"FRENCH": "fr"}}
	pipeline, outputDir := newTestPipeline(t, detector)
	stats, runErr := pipeline.Run([]string{accepted, french, short, empty})
	require.NoError(t, runErr)

	assert.Equal(t, 4, stats.Processed)
	assert.Equal(t, 1, stats.Accepted)
	assert.Equal(t, 1, stats.Rejected[ReasonNonEnglish])
	assert.Equal(t, 1, stats.Rejected[ReasonTooShort])
	assert.Equal(t, 1, stats.Rejected[ReasonEmpty])
	assert.Equal(t, 3, stats.RejectedTotal())
	assert.Equal(t, 1, stats.ShardsWritten)

	data, readErr := os.ReadFile(filepath.Join(outputDir, "combined_1.txt"))
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "body text")
	assert.NotContains(t, string(data), "header line")
}

func TestPipelineRejectedByLanguageSkipsCleaning(t *testing.T) {
	// A short French file would also fail the length gate; the reason
	// must be the language rejection because cleaning never runs.
	inputDir := t.TempDir()
	french := writeInputFile(t, inputDir, "french.txt",
		[]byte("FRENCH petit texte"))

	detector := &MockDetector{Languages: map[string]string{"FRENCH": "fr"}}
	pipeline, _ := newTestPipeline(t, detector)
	stats, runErr := pipeline.Run([]string{french})
	require.NoError(t, runErr)
	assert.Equal(t, 1, stats.Rejected[ReasonNonEnglish])
	assert.Zero(t, stats.Rejected[ReasonTooShort])
}

func TestPipelineShortDocumentPassesVerbatim(t *testing.T) {
	// Fourteen lines stay under the stripping threshold, so a short but
	// dense document is combined untouched.
	var lines []string
	for idx := 0; idx < 14; idx++ {
		lines = append(lines, strings.Repeat("word ", 5))
	}
	content := strings.Join(lines, "\n")

	inputDir := t.TempDir()
	path := writeInputFile(t, inputDir, "dense.txt", []byte(content))
	pipeline, outputDir := newTestPipeline(t, &MockDetector{})
	stats, runErr := pipeline.Run([]string{path})
	require.NoError(t, runErr)
	assert.Equal(t, 1, stats.Accepted)

	data, readErr := os.ReadFile(filepath.Join(outputDir, "combined_1.txt"))
	require.NoError(t, readErr)
	assert.Equal(t, content, string(data))
}

func TestPipelineFallbackEncoding(t *testing.T) {
	// Latin-1 bytes are invalid UTF-8, so the fallback decoder kicks in
	// and the document is processed normally.
	var lines []string
	for idx := 0; idx < 45; idx++ {
		lines = append(lines, fmt.Sprintf("header %d", idx))
	}
	lines = append(lines, strings.Repeat("caf\xe9 body text ", 10))
	content := []byte(strings.Join(lines, "\n"))

	inputDir := t.TempDir()
	path := writeInputFile(t, inputDir, "latin1.txt", content)
	pipeline, outputDir := newTestPipeline(t, &MockDetector{})
	stats, runErr := pipeline.Run([]string{path})
	require.NoError(t, runErr)
	assert.Equal(t, 1, stats.Accepted)
	assert.Equal(t, 1, stats.FallbackDecodes)

	data, readErr := os.ReadFile(filepath.Join(outputDir, "combined_1.txt"))
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "café body text")
}

func TestPipelineUnreadableFileSkipped(t *testing.T) {
	inputDir := t.TempDir()
	good := writeInputFile(t, inputDir, "good.txt",
		[]byte(englishDocument("PLAIN")))
	missing := filepath.Join(inputDir, "missing.txt")

	pipeline, _ := newTestPipeline(t, &MockDetector{})
	stats, runErr := pipeline.Run([]string{missing, good})
	require.NoError(t, runErr)
	assert.Equal(t, 1, stats.Accepted)
	assert.Equal(t, 1, stats.Rejected[ReasonDecodeError])
	assert.Equal(t, 1, stats.ShardsWritten)
}

func TestPipelineNoInputFiles(t *testing.T) {
	pipeline, outputDir := newTestPipeline(t, &MockDetector{})
	stats, runErr := pipeline.Run(nil)
	require.NoError(t, runErr)
	assert.Zero(t, stats.Processed)
	assert.Zero(t, stats.ShardsWritten)
	entries, readErr := os.ReadDir(outputDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestScanLanguages(t *testing.T) {
	inputDir := t.TempDir()
	var paths []string
	for idx := 0; idx < 3; idx++ {
		paths = append(paths, writeInputFile(t, inputDir,
			fmt.Sprintf("en_%d.txt", idx),
			[]byte("plain english content")))
	}
	paths = append(paths, writeInputFile(t, inputDir, "fr.txt",
		[]byte("FRENCH contenu")))
	paths = append(paths, writeInputFile(t, inputDir, "de.txt",
		[]byte("GERMAN inhalt")))

	detector := &MockDetector{Languages: map[string]string{
		"FRENCH": "fr", "GERMAN": "de"}}
	filter := NewDocumentFilter(detector)
	report := ScanLanguages(paths, filter, nil)

	assert.Equal(t, 3, report.Counts["en"])
	assert.Equal(t, 1, report.Counts["fr"])
	assert.Equal(t, 1, report.Counts["de"])
	assert.Zero(t, report.Failures)
	assert.Len(t, report.NonEnglishSamples, 2)
	assert.Contains(t, report.NonEnglishSamples[0], "fr.txt")
}

func TestScanLanguagesSharedCacheAvoidsReclassification(t *testing.T) {
	inputDir := t.TempDir()
	path := writeInputFile(t, inputDir, "doc.txt",
		[]byte(englishDocument("PLAIN")))

	inner := &MockDetector{}
	cached, cacheErr := NewCachedLangDetector(inner, 16)
	require.NoError(t, cacheErr)
	pipeline, _ := newTestPipeline(t, cached)

	ScanLanguages([]string{path}, pipeline.Filter, nil)
	_, runErr := pipeline.Run([]string{path})
	require.NoError(t, runErr)
	assert.Equal(t, 1, inner.Calls)
}

func TestResolveEncodingForPipeline(t *testing.T) {
	fallback, encErr := ResolveEncoding("latin1")
	require.NoError(t, encErr)
	decoded, decodeErr := fallback.NewDecoder().Bytes([]byte{'c', 0xe9})
	require.NoError(t, decodeErr)
	assert.Equal(t, "cé", string(decoded))
}
