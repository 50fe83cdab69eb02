package main

import (
	"flag"
	"log"
	"os"

	"github.com/wbrown/dataset_prep"
	"github.com/wbrown/dataset_prep/types"
)

func main() {
	tokenizerId := flag.String("tokenizer", "gpt2",
		"tokenizer the input file was tokenized with")
	inputFile := flag.String("input", "",
		"tokenized input file to decode")
	outputFile := flag.String("output", "detokenized.txt",
		"output file to write decoded text")
	in32 := flag.Bool("in32", false,
		"read input tokens as 32-bit")
	flag.Parse()

	if *inputFile == "" {
		flag.Usage()
		log.Fatal("Must provide -input")
	}
	if *outputFile == "" {
		flag.Usage()
		log.Fatal("Must provide -output")
	}
	if _, err := os.Stat(*inputFile); os.IsNotExist(err) {
		log.Fatal("Input file does not exist")
	}

	tokenizer, tokErr := dataset_prep.NewTiktokenTokenizer(*tokenizerId,
		[]string{dataset_prep.DefaultSeparator})
	if tokErr != nil {
		log.Fatal(tokErr)
	}

	binTokens, readErr := os.ReadFile(*inputFile)
	if readErr != nil {
		log.Fatal(readErr)
	}
	wide := *in32 || tokenizer.WideTokens()
	var tokens *types.Tokens
	if wide {
		tokens = types.TokensFromBin32(&binTokens)
	} else {
		tokens = types.TokensFromBin(&binTokens)
	}

	decoded, decodeErr := tokenizer.Decode(*tokens)
	if decodeErr != nil {
		log.Fatal(decodeErr)
	}
	if writeErr := os.WriteFile(*outputFile, []byte(decoded),
		0755); writeErr != nil {
		log.Fatal(writeErr)
	}
	log.Printf("Decoded %d token(s) from %s to %s", len(*tokens),
		*inputFile, *outputFile)
}
