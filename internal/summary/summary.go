// Package summary handles display of scan results and statistics
package summary

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/bethropolis/robotfiles/internal/walker"
)

// Logger defines the minimal logging interface required
type Logger interface {
	Info(format string, args ...any)
}

// DisplayResults logs the totals of a scan.
func DisplayResults(logger Logger, fileCount int64, duration time.Duration) {
	logger.Info("Found %d files.", fileCount)
	logger.Info("Scan complete in %v.", duration.Round(time.Millisecond))
}

// ReasonCount is the number of items skipped for one reason.
type ReasonCount struct {
	Reason walker.SkippedReason
	Count  int
}

// CountByReason tallies items per reason, most frequent first, ties by
// reason text.
func CountByReason(items []walker.SkippedItem) []ReasonCount {
	counts := make(map[walker.SkippedReason]int)
	for _, item := range items {
		counts[item.Reason]++
	}
	out := make([]ReasonCount, 0, len(counts))
	for reason, n := range counts {
		out = append(out, ReasonCount{Reason: reason, Count: n})
	}
	slices.SortFunc(out, func(a, b ReasonCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Reason, b.Reason)
	})
	return out
}

// DisplaySkippedItems writes every skipped item, sorted by path, followed by
// a per-reason tally. The items slice is not modified.
func DisplaySkippedItems(logger Logger, skippedItems []walker.SkippedItem, output io.Writer) {
	logger.Info("--- Skipped Items (%d) ---", len(skippedItems))
	if len(skippedItems) == 0 {
		logger.Info("No items were skipped.")
		return
	}

	items := slices.Clone(skippedItems)
	slices.SortFunc(items, func(a, b walker.SkippedItem) int {
		return cmp.Compare(a.Path, b.Path)
	})
	for _, item := range items {
		typeStr := "FILE"
		if item.IsDir {
			typeStr = "DIR " // Add space for alignment
		}
		fmt.Fprintf(output, "Skipped %s: %-50s [%s]\n", typeStr, item.Path, item.Reason)
	}
	for _, rc := range CountByReason(items) {
		fmt.Fprintf(output, "%6d  %s\n", rc.Count, rc.Reason)
	}
	logger.Info("--- End Skipped Items ---")
}
