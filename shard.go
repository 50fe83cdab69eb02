package dataset_prep

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// DefaultSeparator is written between concatenated documents and appended
// to each shard before tokenization.
const DefaultSeparator = "<|endoftext|>"

// ShardWriter accumulates cleaned documents and writes them out as
// `combined_<n>.txt` shards, starting a new shard whenever adding a
// document would push the current one past the size budget. Documents are
// never split across shards, so a document larger than the budget becomes
// a shard of its own.
type ShardWriter struct {
	OutputDir     string
	Separator     string
	MaxShardBytes int64

	docs          []string
	currentBytes  int64
	shardsWritten int
}

// NewShardWriter
// Creates the output directory if needed and returns a ShardWriter with a
// budget of maxSizeMB megabytes per shard.
func NewShardWriter(outputDir string, separator string,
	maxSizeMB int) (*ShardWriter, error) {
	if mkdirErr := os.MkdirAll(outputDir, 0755); mkdirErr != nil {
		return nil, fmt.Errorf("creating output directory: %w", mkdirErr)
	}
	return &ShardWriter{
		OutputDir:     outputDir,
		Separator:     separator,
		MaxShardBytes: int64(maxSizeMB) * 1024 * 1024,
	}, nil
}

// Add
// Appends a document to the pending shard, flushing the pending documents
// first when the addition would exceed the size budget. A sum exactly at
// the budget still fits.
func (sw *ShardWriter) Add(text string) error {
	docBytes := int64(len(text))
	if sw.currentBytes+docBytes > sw.MaxShardBytes && len(sw.docs) > 0 {
		if flushErr := sw.flush(); flushErr != nil {
			return flushErr
		}
	}
	sw.docs = append(sw.docs, text)
	sw.currentBytes += docBytes
	return nil
}

// Finalize
// Flushes any pending documents as the last shard. A writer that never
// accumulated anything writes nothing.
func (sw *ShardWriter) Finalize() error {
	if len(sw.docs) == 0 {
		return nil
	}
	return sw.flush()
}

// ShardsWritten returns the number of shard files written so far.
func (sw *ShardWriter) ShardsWritten() int {
	return sw.shardsWritten
}

func (sw *ShardWriter) flush() error {
	shardPath := filepath.Join(sw.OutputDir,
		fmt.Sprintf("combined_%d.txt", sw.shardsWritten+1))
	outFile, openErr := os.OpenFile(shardPath,
		os.O_TRUNC|os.O_RDWR|os.O_CREATE, 0755)
	if openErr != nil {
		return openErr
	}
	defer outFile.Close()
	for docIdx := range sw.docs {
		if docIdx > 0 {
			if _, writeErr := outFile.WriteString(sw.Separator); writeErr != nil {
				return writeErr
			}
		}
		if _, writeErr := outFile.WriteString(sw.docs[docIdx]); writeErr != nil {
			return writeErr
		}
	}
	totalBytes := sw.currentBytes +
		int64(len(sw.Separator))*int64(len(sw.docs)-1)
	log.Printf("Wrote %s: %d document(s), %s", shardPath, len(sw.docs),
		humanize.Bytes(uint64(totalBytes)))
	sw.shardsWritten++
	sw.docs = nil
	sw.currentBytes = 0
	return nil
}
