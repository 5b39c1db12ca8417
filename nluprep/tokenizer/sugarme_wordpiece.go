package tokenizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sugarme/tokenizer/model/wordpiece"
)

// SugarWordPiece wraps sugarme/tokenizer's WordPiece model (BERT-style) for
// per-word subtokenization.
type SugarWordPiece struct {
	model     wordpiece.WordPiece
	lowercase bool
}

// NewSugarWordPiece loads vocab.txt and builds a BERT WordPiece tokenizer.
// The configured vocab path may be the vocab file itself or a directory
// containing vocab.txt.
func NewSugarWordPiece(cfg Config) (*SugarWordPiece, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	vocabPath := cfg.VocabPath
	if fi, err := os.Stat(vocabPath); err != nil {
		return nil, err
	} else if fi.IsDir() {
		vocabPath = filepath.Join(vocabPath, "vocab.txt")
	}

	wp, err := wordpiece.NewWordPieceFromFile(vocabPath, UnkToken)
	if err != nil {
		return nil, fmt.Errorf("loading wordpiece vocab %s: %w", vocabPath, err)
	}
	return &SugarWordPiece{model: wp, lowercase: cfg.Lowercase}, nil
}

// Tokenize produces the WordPiece subtokens for a single word.
func (s *SugarWordPiece) Tokenize(word string) ([]string, error) {
	if s.lowercase {
		word = strings.ToLower(word)
	}
	toks, err := s.model.Tokenize(word)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Value
	}
	return out, nil
}

// TokenToID resolves a subtoken through the underlying vocab. Sentinel tokens
// missing from the vocab fall back to the canonical BERT ids.
func (s *SugarWordPiece) TokenToID(token string) (int, error) {
	if id, ok := s.model.TokenToId(token); ok {
		return id, nil
	}
	switch token {
	case UnkToken:
		return 100, nil
	case StartToken:
		return 101, nil
	case EndToken:
		return 102, nil
	}
	if id, ok := s.model.TokenToId(UnkToken); ok {
		return id, nil
	}
	return 0, fmt.Errorf("token %q not in vocabulary", token)
}
