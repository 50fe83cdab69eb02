package types

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ToBin
// Serializes the tokens to little-endian binary, 32-bit wide if useUint32
// is set and 16-bit wide otherwise.
func (tokens *Tokens) ToBin(useUint32 bool) (*[]byte, error) {
	if useUint32 {
		return tokens.ToBinUint32()
	} else {
		return tokens.ToBinUint16()
	}
}

// ToBinUint16
// Serializes the tokens as little-endian unsigned 16-bit integers. Token
// ids that do not fit in 16 bits are an error rather than a silent
// truncation.
func (tokens *Tokens) ToBinUint16() (*[]byte, error) {
	buf := make([]byte, len(*tokens)*TokenSize16)
	for idx := range *tokens {
		token := (*tokens)[idx]
		if token > math.MaxUint16 {
			return nil, fmt.Errorf(
				"integer overflow: tried to write token ID %d as unsigned 16-bit",
				token)
		}
		binary.LittleEndian.PutUint16(buf[idx*TokenSize16:], uint16(token))
	}
	return &buf, nil
}

// ToBinUint32
// Serializes the tokens as little-endian unsigned 32-bit integers.
func (tokens *Tokens) ToBinUint32() (*[]byte, error) {
	buf := make([]byte, len(*tokens)*TokenSize32)
	for idx := range *tokens {
		binary.LittleEndian.PutUint32(buf[idx*TokenSize32:],
			uint32((*tokens)[idx]))
	}
	return &buf, nil
}

// TokensFromBin
// Decodes little-endian unsigned 16-bit tokens from binary. Trailing bytes
// that do not form a whole token are dropped.
func TokensFromBin(bin *[]byte) *Tokens {
	data := *bin
	tokens := make(Tokens, 0, len(data)/TokenSize16)
	for idx := 0; idx+TokenSize16 <= len(data); idx += TokenSize16 {
		tokens = append(tokens, Token(binary.LittleEndian.Uint16(data[idx:])))
	}
	return &tokens
}

// TokensFromBin32
// Decodes little-endian unsigned 32-bit tokens from binary.
func TokensFromBin32(bin *[]byte) *Tokens {
	data := *bin
	tokens := make(Tokens, 0, len(data)/TokenSize32)
	for idx := 0; idx+TokenSize32 <= len(data); idx += TokenSize32 {
		tokens = append(tokens, Token(binary.LittleEndian.Uint32(data[idx:])))
	}
	return &tokens
}
