package features

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/nlu-dataprep/nluprep/tokenizer"
)

// ErrSlotCountMismatch reports a query whose word-level slot labels do not
// line up 1:1 with its words. This is a caller contract violation.
var ErrSlotCountMismatch = errors.New("slot label count does not match word count")

// Features holds the fixed-length numeric arrays for a batch of queries.
// Every sequence-valued row has exactly EffectiveLen entries.
type Features struct {
	InputIDs   [][]int  // subtoken vocabulary ids, zero padded
	SegmentIDs [][]int  // constant zero; single-segment task
	InputMasks [][]int  // 1 for real subtokens, 0 for padding
	StartMasks [][]bool // true at [CLS], [SEP] and each word-initial subtoken
	SlotIDs    [][]int  // nil for unlabeled batches; pad label at markers and padding

	// EffectiveLen is min(configured max length, longest raw sequence in the
	// batch). The configured cap relaxes downward to the longest actual
	// example; callers must not assume it equals the configured maximum.
	EffectiveLen int

	// Observational only; consumed by the length-stats observer.
	RawLengths []int // pre-truncation subtoken counts, markers included
	Truncated  int   // examples longer than EffectiveLen
}

// EncodeQuery tokenizes each word of a query independently, brackets the
// concatenated subtokens with [CLS]/[SEP], and aligns the word-level slot
// labels (when given) to the produced subtokens. Pure; no length policy is
// applied here.
func EncodeQuery(words []string, slotLabels []int, tok tokenizer.WordTokenizer, padLabel int) (subtokens []string, startMask []bool, slots []int, err error) {
	if slotLabels != nil && len(slotLabels) != len(words) {
		return nil, nil, nil, fmt.Errorf("%w: %d labels for %d words", ErrSlotCountMismatch, len(slotLabels), len(words))
	}

	subtokens = []string{tokenizer.StartToken}
	startMask = []bool{true}
	if slotLabels != nil {
		slots = []int{padLabel}
	}

	for i, word := range words {
		wordTokens, err := tok.Tokenize(word)
		if err != nil {
			return nil, nil, nil, err
		}
		subtokens = append(subtokens, wordTokens...)
		startMask = append(startMask, true)
		for j := 1; j < len(wordTokens); j++ {
			startMask = append(startMask, false)
		}
		if slotLabels != nil {
			for range wordTokens {
				slots = append(slots, slotLabels[i])
			}
		}
	}

	subtokens = append(subtokens, tokenizer.EndToken)
	startMask = append(startMask, true)
	if slotLabels != nil {
		slots = append(slots, padLabel)
	}
	return subtokens, startMask, slots, nil
}

// Build runs the full feature construction over a batch: encode every query,
// settle the effective length, then truncate tail-anchored and pad on the
// right. rawSlots is nil for unlabeled batches; otherwise it must carry one
// label sequence per query.
func Build(queries []string, maxSeqLen int, tok tokenizer.WordTokenizer, padLabel int, rawSlots [][]int) (*Features, error) {
	f := &Features{}
	if len(queries) == 0 {
		return f, nil
	}
	withLabel := rawSlots != nil

	allSubtokens := make([][]string, 0, len(queries))
	for i, query := range queries {
		var labels []int
		if withLabel {
			labels = rawSlots[i]
		}
		subtokens, startMask, slots, err := EncodeQuery(strings.Fields(query), labels, tok, padLabel)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		allSubtokens = append(allSubtokens, subtokens)
		f.StartMasks = append(f.StartMasks, startMask)
		if withLabel {
			f.SlotIDs = append(f.SlotIDs, slots)
		}
		f.RawLengths = append(f.RawLengths, len(subtokens))
	}

	// Relaxed-cap policy: the configured maximum is lowered to the longest
	// raw sequence when every example already fits.
	f.EffectiveLen = maxSeqLen
	maxRaw := 0
	for _, n := range f.RawLengths {
		if n > maxRaw {
			maxRaw = n
		}
	}
	if maxRaw < f.EffectiveLen {
		f.EffectiveLen = maxRaw
	}

	for i, subtokens := range allSubtokens {
		if len(subtokens) > f.EffectiveLen {
			// Tail-anchored truncation: keep [CLS] plus the most recent
			// context, discard older subtokens.
			tail := len(subtokens) - (f.EffectiveLen - 1)
			subtokens = append([]string{tokenizer.StartToken}, subtokens[tail:]...)
			f.StartMasks[i] = append([]bool{true}, f.StartMasks[i][tail:]...)
			if withLabel {
				f.SlotIDs[i] = append([]int{padLabel}, f.SlotIDs[i][tail:]...)
			}
			f.Truncated++
		}

		ids := make([]int, len(subtokens))
		for j, t := range subtokens {
			id, err := tok.TokenToID(t)
			if err != nil {
				return nil, err
			}
			ids[j] = id
		}

		mask := make([]int, len(subtokens))
		for j := range mask {
			mask[j] = 1
		}

		for n := len(subtokens); n < f.EffectiveLen; n++ {
			ids = append(ids, 0)
			mask = append(mask, 0)
			f.StartMasks[i] = append(f.StartMasks[i], false)
			if withLabel {
				f.SlotIDs[i] = append(f.SlotIDs[i], padLabel)
			}
		}

		f.InputIDs = append(f.InputIDs, ids)
		f.InputMasks = append(f.InputMasks, mask)
		f.SegmentIDs = append(f.SegmentIDs, make([]int, f.EffectiveLen))
	}

	return f, nil
}

// Len returns the number of encoded examples.
func (f *Features) Len() int {
	return len(f.InputIDs)
}
