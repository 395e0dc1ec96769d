package series

import (
	"fmt"
	"sort"

	"StockAgent/internal/model"
)

// MinPoints is the smallest cleaned series the pipeline accepts.
const MinPoints = 2

// InsufficientDataError reports a series too short to analyze after cleaning.
type InsufficientDataError struct {
	Valid int
	Min   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d valid points, need at least %d", e.Valid, e.Min)
}

// Normalize cleans a raw daily series: records with a zero timestamp or a
// non-positive close are dropped and counted, the remainder is sorted
// ascending by time, and duplicated timestamps keep the record that appeared
// last in the input. Weekend and holiday gaps stay as-is; the series is
// positional, not calendar-aligned.
func Normalize(raw []model.PricePoint) ([]model.PricePoint, int, error) {
	dropped := 0
	kept := make([]model.PricePoint, 0, len(raw))
	for _, p := range raw {
		if p.Time.IsZero() || p.Close <= 0 {
			dropped++
			continue
		}
		kept = append(kept, p)
	}

	// Stable sort keeps input order within equal timestamps, so the last
	// occurrence of a duplicate is the one that survives below.
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Time.Before(kept[j].Time) })

	points := make([]model.PricePoint, 0, len(kept))
	for i, p := range kept {
		if i+1 < len(kept) && kept[i+1].Time.Equal(p.Time) {
			continue
		}
		points = append(points, p)
	}

	if len(points) < MinPoints {
		return nil, dropped, &InsufficientDataError{Valid: len(points), Min: MinPoints}
	}
	return points, dropped, nil
}
