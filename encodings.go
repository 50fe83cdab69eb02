package dataset_prep

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// ResolveEncoding
// Resolves a user-supplied encoding name such as `latin1` to a decoder via
// the IANA registry. Names the registry knows but has no decoder for are an
// error, so a bad flag value surfaces at startup rather than on the first
// non-UTF-8 file.
func ResolveEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("no decoder available for encoding %q", name)
	}
	return enc, nil
}

// DecodeText
// Decodes raw file bytes to a string, attempting UTF-8 first and falling
// back to the given encoding when the bytes are not valid UTF-8. Reports
// whether the fallback was used.
func DecodeText(data []byte, fallback encoding.Encoding) (text string,
	usedFallback bool, err error) {
	if utf8.Valid(data) {
		return string(data), false, nil
	}
	if fallback == nil {
		return "", false, errors.New(
			"data is not valid UTF-8 and no fallback encoding is configured")
	}
	decoded, decodeErr := fallback.NewDecoder().Bytes(data)
	if decodeErr != nil {
		return "", true, fmt.Errorf("fallback decode failed: %w", decodeErr)
	}
	return string(decoded), true, nil
}
