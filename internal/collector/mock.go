package collector

import (
	"context"
	"math"
	"time"

	"StockAgent/internal/model"
)

// MockFetcher returns controllable synthetic data for development and
// testing. Explicit Bars or Profile take precedence; otherwise a drifting
// wave around Price is generated.
type MockFetcher struct {
	Price   float64
	Bars    []model.PricePoint
	Profile model.FundamentalProfile
	Err     error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, days int) ([]model.PricePoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return generateMockBars(m.Price, days), nil
}

func (m *MockFetcher) FetchFundamentals(_ context.Context, _ string) (model.FundamentalProfile, error) {
	if m.Err != nil {
		return model.FundamentalProfile{}, m.Err
	}
	return m.Profile, nil
}

func generateMockBars(basePrice float64, count int) []model.PricePoint {
	if basePrice <= 0 {
		basePrice = 100
	}
	bars := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		drift := float64(i-count/2) * 0.0005
		wave := 0.03 * math.Sin(float64(i)/9)
		p := basePrice * (1 + drift + wave)
		bars[i] = model.PricePoint{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
