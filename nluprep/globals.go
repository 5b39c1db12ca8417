package internal

import (
	"os"

	"github.com/rs/zerolog"
)

var (
	DefaultAppName = "nluprep"

	// Default featurization settings
	DefaultMaxSeqLen  = 128
	DefaultPadLabel   = 128
	DefaultNumSamples = -1 // -1 means use every example
	DefaultShuffle    = true

	// Sidecar file names written next to the input file
	DefaultIntentStatsFile = "intent_stats.tsv"
	DefaultSlotStatsFile   = "slot_stats.tsv"
)

// GetLogger returns a properly configured zerolog logger instance
func GetLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
