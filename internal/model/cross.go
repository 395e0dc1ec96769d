package model

import "time"

// CrossKind labels an SMA50/SMA200 crossover.
type CrossKind string

const (
	CrossGolden CrossKind = "GOLDEN"
	CrossDeath  CrossKind = "DEATH"
)

// CrossEvent is one detected crossover within the analyzed window.
type CrossEvent struct {
	Kind       CrossKind
	OccurredAt time.Time
	// LookbackWindow is the event age in bars; 0 means the final bar.
	LookbackWindow int
}
