package calculator

import "StockAgent/internal/model"

// DetectCrosses scans the aligned SMA pair and reports every index where the
// short average crosses the long one, oldest first. Only indices where both
// averages are defined are compared, and the first overlapping index only
// seeds the side state, so no event can predate a real transition. Equality
// preserves the previous side: a touch that separates back to the same side
// emits nothing, while emerging from a flat open counts as the cross. The
// detector never extrapolates past the final bar.
func DetectCrosses(points []model.PricePoint, short, long model.Series) []model.CrossEvent {
	events := []model.CrossEvent{}
	if !short.Defined() || !long.Defined() {
		return events
	}

	start := short.Offset
	if long.Offset > start {
		start = long.Offset
	}
	last := len(points) - 1
	if start >= last {
		return events
	}

	side := pairSide(short, long, start)
	for i := start + 1; i <= last; i++ {
		s := pairSide(short, long, i)
		if s == 0 || s == side {
			continue
		}
		kind := model.CrossGolden
		if s < 0 {
			kind = model.CrossDeath
		}
		events = append(events, model.CrossEvent{
			Kind:           kind,
			OccurredAt:     points[i].Time,
			LookbackWindow: last - i,
		})
		side = s
	}

	return events
}

// pairSide reports where the short average sits relative to the long one at
// index i: +1 above, -1 below, 0 equal or undefined.
func pairSide(short, long model.Series, i int) int {
	s, ok1 := short.At(i)
	l, ok2 := long.At(i)
	if !ok1 || !ok2 {
		return 0
	}
	switch {
	case s > l:
		return 1
	case s < l:
		return -1
	}
	return 0
}
