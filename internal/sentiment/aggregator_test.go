package sentiment

import (
	"math"
	"testing"

	"StockAgent/internal/model"
)

func TestScore_Bullish(t *testing.T) {
	headlines := []string{
		"Shares surge after earnings beat",
		"Analysts upgrade on strong growth",
		"Board considers dividend",
	}
	got := Score(headlines)
	if got.Label != model.SentimentBullish {
		t.Errorf("label = %s, want BULLISH", got.Label)
	}
	// surge, beat, upgrade, strong, growth = 5 hits, net 5, capped at 1.
	if got.Confidence != 1 {
		t.Errorf("confidence = %v, want 1", got.Confidence)
	}
	if got.SampleSize != 3 {
		t.Errorf("sample size = %d, want 3", got.SampleSize)
	}
}

func TestScore_Bearish(t *testing.T) {
	headlines := []string{
		"Stock drops after downgrade",
		"Quarterly results steady",
		"Guidance unchanged",
	}
	got := Score(headlines)
	if got.Label != model.SentimentBearish {
		t.Errorf("label = %s, want BEARISH", got.Label)
	}
	// drops + downgrade = net -2 over 3 samples.
	if want := 2.0 / 3.0; math.Abs(got.Confidence-want) > 1e-12 {
		t.Errorf("confidence = %v, want %v", got.Confidence, want)
	}
}

func TestScore_MixedIsNeutral(t *testing.T) {
	got := Score([]string{"Shares jump then fall in volatile session"})
	if got.Label != model.SentimentNeutral {
		t.Errorf("label = %s, want NEUTRAL", got.Label)
	}
	if got.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", got.Confidence)
	}
}

func TestScore_WordBoundary(t *testing.T) {
	// "Bargain" contains "gain" but must not count as a hit.
	got := Score([]string{"Bargain hunters circle the retailer"})
	if got.Label != model.SentimentNeutral {
		t.Errorf("label = %s, want NEUTRAL", got.Label)
	}
}

func TestScore_CaseInsensitive(t *testing.T) {
	got := Score([]string{"SHARES SURGE ON RECORD PROFITS"})
	if got.Label != model.SentimentBullish {
		t.Errorf("label = %s, want BULLISH", got.Label)
	}
}

func TestScore_NoHeadlines(t *testing.T) {
	got := Score(nil)
	want := model.SentimentSignal{Label: model.SentimentNeutral, Confidence: 0, SampleSize: 0}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestOverride(t *testing.T) {
	cases := []struct {
		name       string
		conf       float64
		headlines  int
		wantConf   float64
		wantSample int
	}{
		{"in range", 0.8, 5, 0.8, 5},
		{"clamped high", 1.7, 5, 1, 5},
		{"clamped low", -0.2, 5, 0, 5},
		{"no headlines floors sample", 0.5, 0, 0.5, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Override(model.SentimentBearish, tc.conf, tc.headlines)
			if got.Label != model.SentimentBearish {
				t.Errorf("label = %s, want BEARISH", got.Label)
			}
			if got.Confidence != tc.wantConf {
				t.Errorf("confidence = %v, want %v", got.Confidence, tc.wantConf)
			}
			if got.SampleSize != tc.wantSample {
				t.Errorf("sample size = %d, want %d", got.SampleSize, tc.wantSample)
			}
		})
	}
}
