package tokenizer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVocab(t *testing.T, tokens []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vocab.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(tokens, "\n")+"\n"), 0o644))
	return path
}

func TestWordPiece(t *testing.T) {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{"LongestMatch", testWordPieceLongestMatch},
		{"WholeWord", testWordPieceWholeWord},
		{"UnknownWord", testWordPieceUnknownWord},
		{"Lowercase", testWordPieceLowercase},
		{"TokenToID", testWordPieceTokenToID},
		{"MissingVocabPath", testWordPieceMissingVocabPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.test)
	}
}

func testVocab() []string {
	return []string{"[PAD]", "[UNK]", "[CLS]", "[SEP]", "play", "##ing", "##s", "un", "##break", "##able", "hello"}
}

func testWordPieceLongestMatch(t *testing.T) {
	wp, err := LoadWordPieceFromVocab(Config{VocabPath: writeVocab(t, testVocab())})
	require.NoError(t, err)

	pieces, err := wp.Tokenize("playing")
	require.NoError(t, err)
	assert.Equal(t, []string{"play", "##ing"}, pieces)

	pieces, err = wp.Tokenize("unbreakable")
	require.NoError(t, err)
	assert.Equal(t, []string{"un", "##break", "##able"}, pieces)
}

func testWordPieceWholeWord(t *testing.T) {
	wp, err := LoadWordPieceFromVocab(Config{VocabPath: writeVocab(t, testVocab())})
	require.NoError(t, err)

	pieces, err := wp.Tokenize("hello")
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, pieces)
}

func testWordPieceUnknownWord(t *testing.T) {
	wp, err := LoadWordPieceFromVocab(Config{VocabPath: writeVocab(t, testVocab())})
	require.NoError(t, err)

	// No piece covers 'z'; the whole word collapses to [UNK].
	pieces, err := wp.Tokenize("zebra")
	require.NoError(t, err)
	assert.Equal(t, []string{UnkToken}, pieces)

	pieces, err = wp.Tokenize("")
	require.NoError(t, err)
	assert.Equal(t, []string{UnkToken}, pieces)
}

func testWordPieceLowercase(t *testing.T) {
	wp, err := LoadWordPieceFromVocab(Config{VocabPath: writeVocab(t, testVocab()), Lowercase: true})
	require.NoError(t, err)

	pieces, err := wp.Tokenize("Playing")
	require.NoError(t, err)
	assert.Equal(t, []string{"play", "##ing"}, pieces)
}

func testWordPieceTokenToID(t *testing.T) {
	wp, err := LoadWordPieceFromVocab(Config{VocabPath: writeVocab(t, testVocab())})
	require.NoError(t, err)

	id, err := wp.TokenToID(StartToken)
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	id, err = wp.TokenToID("##ing")
	require.NoError(t, err)
	assert.Equal(t, 5, id)

	// Unknown subtokens resolve to the [UNK] id.
	id, err = wp.TokenToID("nope")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func testWordPieceMissingVocabPath(t *testing.T) {
	_, err := LoadWordPieceFromVocab(Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupported)
}
