package dataset_prep

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkoukk/tiktoken-go"

	"github.com/wbrown/dataset_prep/types"
)

// Tokenizer is the external text-to-token-ids capability. WideTokens
// reports whether the vocabulary has ids past 16 bits, which forces the
// 32-bit serialization width.
type Tokenizer interface {
	Encode(text string) (types.Tokens, error)
	Decode(tokens types.Tokens) (string, error)
	WideTokens() bool
}

// Encoding names whose vocabularies contain token ids past 16 bits.
var wideEncodings = map[string]bool{
	"cl100k_base": true,
	"o200k_base":  true,
}

// Identifiers accepted for historical reasons that tiktoken knows under a
// different encoding name.
var encodingAliases = map[string]string{
	"gpt2": "r50k_base",
}

// TiktokenTokenizer backs Tokenizer with a tiktoken BPE encoding. The
// configured special tokens are encoded to their reserved ids instead of
// being split like ordinary text.
type TiktokenTokenizer struct {
	encodingName   string
	tke            *tiktoken.Tiktoken
	allowedSpecial []string
}

// NewTiktokenTokenizer
// Resolves an identifier to a tiktoken encoding, trying it as an encoding
// name first and as a model name second.
func NewTiktokenTokenizer(id string,
	allowedSpecial []string) (*TiktokenTokenizer, error) {
	encodingName := id
	if alias, ok := encodingAliases[id]; ok {
		encodingName = alias
	}
	tke, encErr := tiktoken.GetEncoding(encodingName)
	if encErr != nil {
		// Fall back to model-name resolution.
		tke, encErr = tiktoken.EncodingForModel(id)
		if encErr != nil {
			return nil, fmt.Errorf("unknown tokenizer %q: %w", id, encErr)
		}
	}
	return &TiktokenTokenizer{
		encodingName:   encodingName,
		tke:            tke,
		allowedSpecial: allowedSpecial,
	}, nil
}

func (tt *TiktokenTokenizer) Encode(text string) (types.Tokens, error) {
	ids := tt.tke.Encode(text, tt.allowedSpecial, nil)
	tokens := make(types.Tokens, len(ids))
	for idx := range ids {
		tokens[idx] = types.Token(ids[idx])
	}
	return tokens, nil
}

func (tt *TiktokenTokenizer) Decode(tokens types.Tokens) (string, error) {
	ids := make([]int, len(tokens))
	for idx := range tokens {
		ids[idx] = int(tokens[idx])
	}
	return tt.tke.Decode(ids), nil
}

func (tt *TiktokenTokenizer) WideTokens() bool {
	return wideEncodings[tt.encodingName]
}

// TokenizingExporter turns finished shard files into flat little-endian
// token-id dumps, one `.bin` per shard. No filtering or size budgeting
// happens here.
type TokenizingExporter struct {
	Tokenizer     Tokenizer
	OutputDir     string
	EndOfText     string
	Wide          bool
	ProgressEvery int
}

// NewTokenizingExporter
// Creates the output directory if needed. Token width is 16-bit unless
// wide output is forced or the tokenizer's vocabulary requires it.
func NewTokenizingExporter(tokenizer Tokenizer, outputDir string,
	endOfText string, force32 bool) (*TokenizingExporter, error) {
	if mkdirErr := os.MkdirAll(outputDir, 0755); mkdirErr != nil {
		return nil, fmt.Errorf("creating output directory: %w", mkdirErr)
	}
	return &TokenizingExporter{
		Tokenizer:     tokenizer,
		OutputDir:     outputDir,
		EndOfText:     endOfText,
		Wide:          force32 || tokenizer.WideTokens(),
		ProgressEvery: 10,
	}, nil
}

// Export
// Tokenizes each shard file in order, appending the end-of-text token to
// the shard text, and writes the ids to `<base>.bin` in the output
// directory. Returns the token total across all shards.
func (te *TokenizingExporter) Export(paths []string) (totalTokens int64,
	err error) {
	for pathIdx, path := range paths {
		text, readErr := ReadTextMmap(path)
		if readErr != nil {
			return totalTokens, readErr
		}
		if te.EndOfText != "" {
			text += " " + te.EndOfText + " "
		}
		tokens, encodeErr := te.Tokenizer.Encode(text)
		if encodeErr != nil {
			return totalTokens, encodeErr
		}
		binTokens, binErr := tokens.ToBin(te.Wide)
		if binErr != nil {
			return totalTokens, fmt.Errorf(
				"%s: %w (use 32-bit output)", path, binErr)
		}
		outPath := filepath.Join(te.OutputDir, tokenFileName(path))
		if writeErr := os.WriteFile(outPath, *binTokens,
			0755); writeErr != nil {
			return totalTokens, writeErr
		}
		totalTokens += int64(len(tokens))
		if te.ProgressEvery > 0 && (pathIdx+1)%te.ProgressEvery == 0 {
			log.Printf("Tokenized %d/%d shards, %s tokens so far",
				pathIdx+1, len(paths), humanize.Comma(totalTokens))
		}
	}
	return totalTokens, nil
}

// tokenFileName maps a shard path such as `combined_3.txt` to
// `combined_3.bin`.
func tokenFileName(shardPath string) string {
	base := filepath.Base(shardPath)
	base = strings.TrimSuffix(base, ".utf8")
	base = strings.TrimSuffix(base, ".txt")
	return base + ".bin"
}
