package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/wbrown/dataset_prep"
)

func main() {
	dataDir := flag.String("data_dir", "gutenberg/data",
		"directory containing the shard files to tokenize")
	outputDir := flag.String("output_dir", "tokenized_data",
		"directory where tokenized files will be saved")
	tokenizerId := flag.String("tokenizer", "gpt2",
		"tokenizer to use [gpt2, r50k_base, p50k_base, cl100k_base, "+
			"o200k_base, model-id]")
	endOfText := flag.String("eot", dataset_prep.DefaultSeparator,
		"end of text token appended to each shard")
	out32 := flag.Bool("out32", false,
		"force tokens to be written as 32-bit")
	flag.Parse()

	tokenizer, tokErr := dataset_prep.NewTiktokenTokenizer(*tokenizerId,
		[]string{*endOfText})
	if tokErr != nil {
		log.Fatal(tokErr)
	}

	pathInfos, globErr := dataset_prep.GlobTexts(*dataDir)
	if globErr != nil {
		log.Fatal(globErr)
	}
	paths := dataset_prep.Paths(pathInfos)
	fmt.Printf("Found %d text file(s) to tokenize (%s)\n", len(paths),
		humanize.Bytes(uint64(dataset_prep.TotalSize(pathInfos))))

	exporter, exporterErr := dataset_prep.NewTokenizingExporter(tokenizer,
		*outputDir, *endOfText, *out32)
	if exporterErr != nil {
		log.Fatal(exporterErr)
	}

	start := time.Now()
	totalTokens, exportErr := exporter.Export(paths)
	if exportErr != nil {
		log.Fatal(exportErr)
	}
	duration := time.Since(start).Seconds()
	log.Printf("Tokenized %d file(s) in %0.2fs, %0.2f tokens/s",
		len(paths), duration, float64(totalTokens)/duration)
	fmt.Printf("Tokenization complete! Processed %d files with %s tokens "+
		"total.\n", len(paths), humanize.Comma(totalTokens))
	fmt.Printf("Tokenized data saved to %s\n", *outputDir)
}
