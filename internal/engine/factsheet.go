package engine

import "StockAgent/internal/model"

// buildFactSheet assembles the fixed-schema record. Pure transform: every
// value was already computed, absence stays absence.
func buildFactSheet(ind model.IndicatorSet, crosses []model.CrossEvent, bands model.BandSummary,
	sig model.SentimentSignal, v model.Verdict, includeSeries bool) *model.FactSheet {
	return &model.FactSheet{
		Indicators:       indicatorSummary(ind, includeSeries),
		Crosses:          crossRecords(crosses),
		FundamentalBands: bands,
		Sentiment:        sig,
		Verdict:          v,
	}
}

func indicatorSummary(ind model.IndicatorSet, includeSeries bool) model.IndicatorSummary {
	out := model.IndicatorSummary{
		RSI14:  lastOf(ind.RSI14),
		SMA50:  lastOf(ind.SMA50),
		SMA200: lastOf(ind.SMA200),
	}
	if includeSeries {
		out.RSI14Series = seriesOf(ind.RSI14)
		out.SMA50Series = seriesOf(ind.SMA50)
		out.SMA200Series = seriesOf(ind.SMA200)
	}
	return out
}

func lastOf(s model.Series) *float64 {
	v, ok := s.Last()
	if !ok {
		return nil
	}
	return &v
}

func seriesOf(s model.Series) *model.Series {
	if !s.Defined() {
		return nil
	}
	c := s
	return &c
}

// crossRecords serializes events with calendar dates. The slice is always
// non-nil so the sheet renders "crosses": [] rather than null.
func crossRecords(events []model.CrossEvent) []model.CrossRecord {
	out := make([]model.CrossRecord, 0, len(events))
	for _, e := range events {
		out = append(out, model.CrossRecord{
			Kind:           e.Kind,
			OccurredAt:     e.OccurredAt.Format("2006-01-02"),
			LookbackWindow: e.LookbackWindow,
		})
	}
	return out
}
