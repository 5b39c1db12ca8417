package dataset

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// WriteLabelStats writes one `<label-id>\t<relative-frequency>` line per
// label, ordered by descending frequency, and logs the three most frequent
// labels. counts is the occurrence multiset for one label kind.
func WriteLabelStats(path string, counts map[int]int, logger zerolog.Logger) error {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return os.WriteFile(path, nil, 0o644)
	}

	labels := make([]int, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	var sb strings.Builder
	for i, l := range labels {
		freq := float64(counts[l]) / float64(total)
		fmt.Fprintf(&sb, "%d\t%s\n", l, strconv.FormatFloat(freq, 'g', -1, 64))
		if i < 3 {
			logger.Info().
				Int("label", l).
				Int("count", counts[l]).
				Int("total", total).
				Float64("frequency", freq).
				Msg("frequent label")
		}
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
