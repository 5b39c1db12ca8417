package tokenizer

import (
	"bufio"
	"os"
	"strings"

	"github.com/armon/go-radix"
)

// Minimal greedy WordPiece tokenizer backed by radix trees for
// longest-match-first lookups. Intended for development and tests; production
// callers should prefer the sugarme/tokenizer adapter.
type WordPiece struct {
	vocab     map[string]int
	starts    *radix.Tree // word-initial pieces
	conts     *radix.Tree // continuation pieces, stored without the ## prefix
	unkID     int
	lowercase bool
	maxChars  int // words longer than this become [UNK] outright
}

// LoadWordPieceFromVocab reads a plain vocab file (one token per line, line
// number = id) and builds the lookup trees.
func LoadWordPieceFromVocab(cfg Config) (*WordPiece, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	f, err := os.Open(cfg.VocabPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wp := &WordPiece{
		vocab:     make(map[string]int, 60000),
		starts:    radix.New(),
		conts:     radix.New(),
		lowercase: cfg.Lowercase,
		maxChars:  100,
	}

	var idx int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		tok := strings.TrimSpace(scanner.Text())
		if tok == "" {
			continue
		}
		wp.vocab[tok] = idx
		if rest, ok := strings.CutPrefix(tok, "##"); ok {
			wp.conts.Insert(rest, idx)
		} else {
			wp.starts.Insert(tok, idx)
		}
		idx++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if id, ok := wp.vocab[UnkToken]; ok {
		wp.unkID = id
	} else {
		wp.unkID = 100
	}
	return wp, nil
}

// Tokenize splits one word into WordPiece subtokens by repeatedly taking the
// longest vocabulary entry matching the remaining characters. A word with any
// unmatchable remainder collapses to a single [UNK].
func (w *WordPiece) Tokenize(word string) ([]string, error) {
	if w.lowercase {
		word = strings.ToLower(word)
	}
	if word == "" || len(word) > w.maxChars {
		return []string{UnkToken}, nil
	}

	var pieces []string
	rest := word
	for len(rest) > 0 {
		tree := w.conts
		if len(rest) == len(word) {
			tree = w.starts
		}
		match, _, ok := tree.LongestPrefix(rest)
		if !ok || match == "" {
			return []string{UnkToken}, nil
		}
		if len(rest) == len(word) {
			pieces = append(pieces, match)
		} else {
			pieces = append(pieces, "##"+match)
		}
		rest = rest[len(match):]
	}
	return pieces, nil
}

// TokenToID resolves a subtoken to its vocab id, falling back to [UNK].
func (w *WordPiece) TokenToID(token string) (int, error) {
	if id, ok := w.vocab[token]; ok {
		return id, nil
	}
	return w.unkID, nil
}
