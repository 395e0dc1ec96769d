// Package news retrieves recent headlines per ticker for sentiment scoring
// and report context. Headline fetching is always optional: callers treat a
// failure as zero headlines, never as a fatal analysis error.
package news

import (
	"context"
	"time"
)

// Headline is one story reference.
type Headline struct {
	Title       string
	URL         string
	PublishedAt time.Time
}

// Provider returns up to limit recent headlines for a ticker.
type Provider interface {
	Headlines(ctx context.Context, ticker string, limit int) ([]Headline, error)
	Name() string
}

// StaticProvider serves fixed headlines for development and testing.
type StaticProvider struct {
	Items []Headline
	Err   error
}

func (s *StaticProvider) Name() string { return "static" }

func (s *StaticProvider) Headlines(_ context.Context, _ string, limit int) ([]Headline, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if limit > 0 && len(s.Items) > limit {
		return s.Items[:limit], nil
	}
	return s.Items, nil
}

// Titles extracts the headline titles for lexical scoring.
func Titles(headlines []Headline) []string {
	out := make([]string, len(headlines))
	for i, h := range headlines {
		out[i] = h.Title
	}
	return out
}
