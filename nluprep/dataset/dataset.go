package dataset

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	internal "github.com/ZanzyTHEbar/nlu-dataprep/nluprep"
	"github.com/ZanzyTHEbar/nlu-dataprep/nluprep/features"
	"github.com/ZanzyTHEbar/nlu-dataprep/nluprep/tokenizer"

	"github.com/ZanzyTHEbar/assert-lib"
	"github.com/google/uuid"
)

// Contract violations surfaced during construction. The dataset is
// all-or-nothing: any error leaves no partial dataset behind.
var (
	ErrZeroSamples       = errors.New("num samples has to be positive or -1")
	ErrLineCountMismatch = errors.New("slot file and input file line counts differ")
)

// Options control sampling and labeling during dataset construction.
type Options struct {
	// NumSamples limits the dataset to that many randomly drawn examples.
	// -1 keeps every example; 0 is rejected.
	NumSamples int
	// Shuffle randomly permutes the paired lines before feature building.
	Shuffle bool
	// PadLabel is the reserved slot id used at marker and padding positions.
	PadLabel int
	// Rand is the random source for shuffling/sampling. Nil falls back to a
	// time-seeded source; inject a fixed seed for deterministic pairing.
	Rand *rand.Rand
}

// DefaultOptions mirrors the product defaults: keep everything, shuffle, and
// reserve the standard pad label.
func DefaultOptions() Options {
	return Options{
		NumSamples: internal.DefaultNumSamples,
		Shuffle:    internal.DefaultShuffle,
		PadLabel:   internal.DefaultPadLabel,
	}
}

// Example is one retrieved record of a labeled dataset.
type Example struct {
	InputIDs   []int
	SegmentIDs []int
	InputMask  []float32
	StartMask  []bool
	Intent     int
	SlotIDs    []int
}

// InferenceExample is one retrieved record of an inference dataset.
type InferenceExample struct {
	InputIDs   []int
	SegmentIDs []int
	InputMask  []float32
	StartMask  []bool
}

// JointIntentSlot is the index-addressable training dataset for joint intent
// classification and slot tagging. Immutable once constructed; retrieval is a
// pure read and safe for concurrent readers.
type JointIntentSlot struct {
	feats   *features.Features
	intents []int
	labels  *LabelBitmaps

	BuildID       uuid.UUID
	AssertHandler *assert.AssertHandler
}

// NewJointIntentSlot loads paired input/slot files, applies shuffling and
// sampling, and materializes the full feature table.
//
// The input file carries a header line, then whitespace-separated lines where
// the trailing token is the integer intent id. The slot file has no header;
// line i holds one integer slot id per word of input line i.
func NewJointIntentSlot(inputFile, slotFile string, maxSeqLen int, tok tokenizer.WordTokenizer, opts Options) (*JointIntentSlot, error) {
	if opts.NumSamples == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrZeroSamples, opts.NumSamples)
	}

	buildID := uuid.New()
	logger := internal.GetLogger().With().
		Str("component", "dataset").
		Str("build_id", buildID.String()).
		Logger()

	slotLines, err := readLines(slotFile)
	if err != nil {
		return nil, err
	}
	inputLines, err := readLines(inputFile)
	if err != nil {
		return nil, err
	}
	if len(inputLines) > 0 {
		inputLines = inputLines[1:] // drop header
	}

	if len(slotLines) != len(inputLines) {
		return nil, fmt.Errorf("%w: %d slot lines, %d input lines",
			ErrLineCountMismatch, len(slotLines), len(inputLines))
	}

	type pair struct{ slot, input string }
	pairs := make([]pair, len(inputLines))
	for i := range inputLines {
		pairs[i] = pair{slot: slotLines[i], input: inputLines[i]}
	}

	if opts.Shuffle || opts.NumSamples > 0 {
		rng := opts.Rand
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		rng.Shuffle(len(pairs), func(i, j int) {
			pairs[i], pairs[j] = pairs[j], pairs[i]
		})
	}
	if opts.NumSamples > 0 && opts.NumSamples < len(pairs) {
		pairs = pairs[:opts.NumSamples]
	}

	rawSlots := make([][]int, 0, len(pairs))
	queries := make([]string, 0, len(pairs))
	intents := make([]int, 0, len(pairs))
	for i, p := range pairs {
		slots, err := parseIntFields(p.slot)
		if err != nil {
			return nil, fmt.Errorf("slot line %d: %w", i, err)
		}
		rawSlots = append(rawSlots, slots)

		parts := strings.Fields(p.input)
		if len(parts) == 0 {
			return nil, fmt.Errorf("input line %d: expected sentence and intent id, got blank line", i)
		}
		intent, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			return nil, fmt.Errorf("input line %d: parsing intent id: %w", i, err)
		}
		intents = append(intents, intent)
		queries = append(queries, strings.Join(parts[:len(parts)-1], " "))
	}

	feats, err := features.Build(queries, maxSeqLen, tok, opts.PadLabel, rawSlots)
	if err != nil {
		return nil, err
	}
	feats.LogStats(logger)

	d := &JointIntentSlot{
		feats:         feats,
		intents:       intents,
		labels:        NewLabelBitmaps(),
		BuildID:       buildID,
		AssertHandler: assert.NewAssertHandler(),
	}

	intentCounts := make(map[int]int)
	slotCounts := make(map[int]int)
	for i, intent := range intents {
		intentCounts[intent]++
		d.labels.AddIntent(intent, uint32(i))
		for _, sid := range feats.SlotIDs[i] {
			slotCounts[sid]++
			d.labels.AddSlot(sid, uint32(i))
		}
	}

	infold := filepath.Dir(inputFile)
	logger.Info().Msg("three most popular intents")
	if err := WriteLabelStats(filepath.Join(infold, internal.DefaultIntentStatsFile), intentCounts, logger); err != nil {
		return nil, err
	}
	logger.Info().Msg("three most popular slots")
	if err := WriteLabelStats(filepath.Join(infold, internal.DefaultSlotStatsFile), slotCounts, logger); err != nil {
		return nil, err
	}

	return d, nil
}

// Len returns the number of retained examples.
func (d *JointIntentSlot) Len() int {
	return d.feats.Len()
}

// Get returns the feature record at idx. Panics if idx is out of range,
// following slice semantics.
func (d *JointIntentSlot) Get(idx int) Example {
	return Example{
		InputIDs:   d.feats.InputIDs[idx],
		SegmentIDs: d.feats.SegmentIDs[idx],
		InputMask:  floatMask(d.feats.InputMasks[idx]),
		StartMask:  d.feats.StartMasks[idx],
		Intent:     d.intents[idx],
		SlotIDs:    d.feats.SlotIDs[idx],
	}
}

// Labels exposes the label -> example-index bitmaps built during
// construction.
func (d *JointIntentSlot) Labels() *LabelBitmaps {
	return d.labels
}

// Inference is the unlabeled counterpart of JointIntentSlot: raw queries in,
// feature records out, input order preserved.
type Inference struct {
	feats *features.Features
}

// NewInference builds features for raw queries with no labels attached.
func NewInference(queries []string, maxSeqLen int, tok tokenizer.WordTokenizer) (*Inference, error) {
	feats, err := features.Build(queries, maxSeqLen, tok, internal.DefaultPadLabel, nil)
	if err != nil {
		return nil, err
	}
	feats.LogStats(internal.GetLogger().With().Str("component", "inference_dataset").Logger())
	return &Inference{feats: feats}, nil
}

func (d *Inference) Len() int {
	return d.feats.Len()
}

func (d *Inference) Get(idx int) InferenceExample {
	return InferenceExample{
		InputIDs:   d.feats.InputIDs[idx],
		SegmentIDs: d.feats.SegmentIDs[idx],
		InputMask:  floatMask(d.feats.InputMasks[idx]),
		StartMask:  d.feats.StartMasks[idx],
	}
}

func floatMask(mask []int) []float32 {
	out := make([]float32, len(mask))
	for i, m := range mask {
		out[i] = float32(m)
	}
	return out
}

// readLines splits a file into lines, dropping the trailing empty line a
// final newline produces.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}

func parseIntFields(line string) ([]int, error) {
	fields := strings.Fields(line)
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
