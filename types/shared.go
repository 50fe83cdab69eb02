package types

type Token uint32
type Tokens []Token

// Serialized widths of a single token in bytes.
const (
	TokenSize16 = 2
	TokenSize32 = 4
)
