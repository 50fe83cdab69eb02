package dataset_prep

import (
	"log"
	"os"

	"golang.org/x/text/encoding"
)

// RunStatistics totals one combining run: how many files were read, how
// many documents made it into shards, and why the rest were skipped.
type RunStatistics struct {
	Processed       int
	Accepted        int
	Rejected        map[RejectReason]int
	FallbackDecodes int
	ShardsWritten   int
}

func NewRunStatistics() RunStatistics {
	return RunStatistics{Rejected: make(map[RejectReason]int)}
}

func (rs *RunStatistics) reject(reason RejectReason) {
	rs.Rejected[reason]++
}

// RejectedTotal returns the number of skipped files across all reasons.
func (rs *RunStatistics) RejectedTotal() (total int) {
	for _, count := range rs.Rejected {
		total += count
	}
	return total
}

// Pipeline runs the combining pass: each input file is decoded, gated on
// language, cleaned, gated on length, and handed to the shard writer.
// Per-file failures are logged and tallied, never propagated; only shard
// write failures abort the run.
type Pipeline struct {
	Filter   DocumentFilter
	Fallback encoding.Encoding
	Writer   *ShardWriter
}

// Run
// Processes the given files in order and finalizes the shard writer, so
// the tail shard is flushed exactly once. The returned statistics are
// valid even when individual files failed.
func (p *Pipeline) Run(paths []string) (stats RunStatistics, err error) {
	stats = NewRunStatistics()
	for _, path := range paths {
		stats.Processed++
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			log.Printf("Skipping %s: %v", path, readErr)
			stats.reject(ReasonDecodeError)
			continue
		}
		text, usedFallback, decodeErr := DecodeText(data, p.Fallback)
		if decodeErr != nil {
			log.Printf("Skipping %s: %v", path, decodeErr)
			stats.reject(ReasonDecodeError)
			continue
		}
		if usedFallback {
			stats.FallbackDecodes++
		}
		// Language is checked on the raw text, before any cleaning.
		if decision := p.Filter.CheckLanguage(text); !decision.Accepted {
			if decision.Language != "" {
				log.Printf("Skipping %s: detected language %q",
					path, decision.Language)
			} else {
				log.Printf("Skipping %s: %s", path, decision.Reason)
			}
			stats.reject(decision.Reason)
			continue
		}
		cleaned := CleanText(text)
		if decision := p.Filter.CheckLength(cleaned); !decision.Accepted {
			log.Printf("Skipping %s: cleaned text too short", path)
			stats.reject(decision.Reason)
			continue
		}
		if addErr := p.Writer.Add(cleaned); addErr != nil {
			return stats, addErr
		}
		stats.Accepted++
	}
	if finalizeErr := p.Writer.Finalize(); finalizeErr != nil {
		return stats, finalizeErr
	}
	stats.ShardsWritten = p.Writer.ShardsWritten()
	return stats, nil
}

// LanguageReport is the outcome of a pre-scan over the candidate files:
// file counts by detected language plus a sample of the non-English paths
// for eyeballing before the combine step runs.
type LanguageReport struct {
	Counts            map[string]int
	NonEnglishSamples []string
	Failures          int
}

// Number of non-English file paths retained in the pre-scan report.
const nonEnglishSampleLimit = 10

// ScanLanguages
// Classifies every candidate file without writing anything. Decode and
// classification failures are counted, not fatal. When the detector is
// shared with the subsequent combine pass, its cache means no file is
// classified twice.
func ScanLanguages(paths []string, filter DocumentFilter,
	fallback encoding.Encoding) (report LanguageReport) {
	report.Counts = make(map[string]int)
	for _, path := range paths {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			log.Printf("Could not read %s: %v", path, readErr)
			report.Failures++
			continue
		}
		text, _, decodeErr := DecodeText(data, fallback)
		if decodeErr != nil {
			log.Printf("Could not decode %s: %v", path, decodeErr)
			report.Failures++
			continue
		}
		decision := filter.CheckLanguage(text)
		switch {
		case decision.Language != "":
			report.Counts[decision.Language]++
		default:
			report.Failures++
		}
		if decision.Language != "" &&
			decision.Language != filter.AcceptLanguage &&
			len(report.NonEnglishSamples) < nonEnglishSampleLimit {
			report.NonEnglishSamples = append(report.NonEnglishSamples, path)
		}
	}
	return report
}
