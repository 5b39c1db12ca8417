package tokenizer

import (
	"fmt"
)

// WordTokenizer converts a single word to model subtokens and maps subtokens
// to vocabulary ids. The feature builder tokenizes word by word so that
// word-level slot labels can be aligned to the produced subtokens.
type WordTokenizer interface {
	// Tokenize splits one whitespace-free word into ordered subword tokens.
	Tokenize(word string) ([]string, error)
	// TokenToID resolves a subtoken (including the sentinel tokens) to its
	// vocabulary id.
	TokenToID(token string) (int, error)
}

// Sentinel tokens bracketing every encoded sequence. Their ids are resolved
// through TokenToID like any other subtoken.
const (
	StartToken = "[CLS]"
	EndToken   = "[SEP]"
	UnkToken   = "[UNK]"
)

// Config holds basic tokenizer settings, consumed by every constructor in
// this package.
type Config struct {
	VocabPath string
	Lowercase bool
}

// ErrUnsupported indicates the tokenizer could not be initialized
var ErrUnsupported = fmt.Errorf("unsupported tokenizer configuration")

func (c Config) validate() error {
	if c.VocabPath == "" {
		return fmt.Errorf("%w: vocab path is required", ErrUnsupported)
	}
	return nil
}
