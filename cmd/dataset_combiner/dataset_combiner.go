package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/wbrown/dataset_prep"
)

// Distinct leading samples cached for language detection; the pre-scan and
// the combine pass share one cache so no file is classified twice.
const langCacheSize = 16384

func main() {
	dataDir := flag.String("data_dir", "gutenberg/data/raw",
		"directory containing the downloaded raw training data")
	maxSizeMB := flag.Int("max_size_mb", 500,
		"maximum size for each combined file, in megabytes")
	outputDir := flag.String("output_dir", "gutenberg_preprocessed",
		"directory where the combined data will be saved")
	checkLanguages := flag.Bool("check_languages", false,
		"report the language distribution and confirm before combining")
	testCleanup := flag.String("test_cleanup", "",
		"clean a single file, show a detailed comparison, and exit")
	separator := flag.String("separator", dataset_prep.DefaultSeparator,
		"separator written between combined documents")
	fallbackName := flag.String("fallback_encoding", "latin1",
		"encoding attempted when a file is not valid UTF-8")
	flag.Parse()

	fallback, encErr := dataset_prep.ResolveEncoding(*fallbackName)
	if encErr != nil {
		log.Fatal(encErr)
	}

	if *testCleanup != "" {
		report, reportErr := dataset_prep.BuildCleanupReport(*testCleanup,
			fallback)
		if reportErr != nil {
			log.Fatal(reportErr)
		}
		printCleanupReport(report)
		return
	}

	pathInfos, globErr := dataset_prep.GlobTexts(*dataDir)
	if globErr != nil {
		log.Fatal(globErr)
	}
	paths := dataset_prep.Paths(pathInfos)
	fmt.Printf("%d file(s) found (%s).\n", len(paths),
		humanize.Bytes(uint64(dataset_prep.TotalSize(pathInfos))))

	detector, cacheErr := dataset_prep.NewCachedLangDetector(
		dataset_prep.NewLinguaDetector(), langCacheSize)
	if cacheErr != nil {
		log.Fatal(cacheErr)
	}
	filter := dataset_prep.NewDocumentFilter(detector)

	if *checkLanguages {
		fmt.Printf("Checking language of all text files in %q...\n",
			*dataDir)
		report := dataset_prep.ScanLanguages(paths, filter, fallback)
		printLanguageReport(report, len(paths))
		if !confirm("\nContinue with processing and combining files? (y/n): ") {
			fmt.Println("Processing cancelled.")
			return
		}
	}

	writer, writerErr := dataset_prep.NewShardWriter(*outputDir, *separator,
		*maxSizeMB)
	if writerErr != nil {
		log.Fatal(writerErr)
	}
	pipeline := dataset_prep.Pipeline{
		Filter:   filter,
		Fallback: fallback,
		Writer:   writer,
	}
	stats, runErr := pipeline.Run(paths)
	if runErr != nil {
		log.Fatal(runErr)
	}
	printRunStatistics(stats, *outputDir)
}

// confirm reads one line from stdin and reports whether the operator
// answered yes.
func confirm(prompt string) bool {
	fmt.Print(prompt)
	answer, readErr := bufio.NewReader(os.Stdin).ReadString('\n')
	if readErr != nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(answer)) == "y"
}

func printLanguageReport(report dataset_prep.LanguageReport, total int) {
	fmt.Printf("\nLanguage Detection Summary:\n")
	fmt.Printf("Total files processed: %d\n", total)
	fmt.Printf("English files: %d\n", report.Counts["en"])
	fmt.Printf("Non-English files: %d\n", total-report.Counts["en"])

	type langCount struct {
		lang  string
		count int
	}
	counts := make([]langCount, 0, len(report.Counts))
	for lang, count := range report.Counts {
		counts = append(counts, langCount{lang, count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].lang < counts[j].lang
	})
	fmt.Printf("\nLanguage distribution:\n")
	for _, entry := range counts {
		fmt.Printf("- %s: %d files\n", entry.lang, entry.count)
	}
	if report.Failures > 0 {
		fmt.Printf("- unknown: %d files\n", report.Failures)
	}
	if len(report.NonEnglishSamples) > 0 {
		fmt.Printf("\nSample of non-English files:\n")
		for _, path := range report.NonEnglishSamples {
			fmt.Printf("- %s\n", filepath.Base(path))
		}
	}
}

func printRunStatistics(stats dataset_prep.RunStatistics, outputDir string) {
	fmt.Printf("\nLanguage statistics during processing:\n")
	fmt.Printf("English files processed: %d\n", stats.Accepted+
		stats.Rejected[dataset_prep.ReasonTooShort])
	fmt.Printf("Non-English files skipped: %d\n",
		stats.Rejected[dataset_prep.ReasonNonEnglish]+
			stats.Rejected[dataset_prep.ReasonClassifierError]+
			stats.Rejected[dataset_prep.ReasonEmpty])
	if skipped := stats.Rejected[dataset_prep.ReasonTooShort]; skipped > 0 {
		fmt.Printf("Files skipped as too short after cleaning: %d\n", skipped)
	}
	if failed := stats.Rejected[dataset_prep.ReasonDecodeError]; failed > 0 {
		fmt.Printf("Files skipped due to read/decode errors: %d\n", failed)
	}
	if stats.FallbackDecodes > 0 {
		fmt.Printf("Files decoded with the fallback encoding: %d\n",
			stats.FallbackDecodes)
	}
	absDir, absErr := filepath.Abs(outputDir)
	if absErr != nil {
		absDir = outputDir
	}
	fmt.Printf("%d file(s) saved in %s\n", stats.ShardsWritten, absDir)
	fmt.Printf("\nProcessing complete!\n")
}

func printCleanupReport(report *dataset_prep.CleanupReport) {
	fmt.Printf("\nFile: %s\n", filepath.Base(report.Path))
	fmt.Printf("Original length: %d characters, %d lines\n",
		report.OriginalChars, report.OriginalLines)
	fmt.Printf("Cleaned length: %d characters, %d lines\n",
		report.CleanedChars, report.CleanedLines)
	fmt.Printf("Removed %d characters (%.2f%%)\n",
		report.RemovedChars, report.RemovedPercent)
	fmt.Printf("\nRemoved lines:\n")
	for lineIdx, line := range report.RemovedLines {
		fmt.Printf("%02d. %s\n", lineIdx+1, line)
	}
	fmt.Printf("\nFirst lines of cleaned content:\n")
	for _, line := range report.Preview {
		fmt.Printf("> %s\n", line)
	}
}
