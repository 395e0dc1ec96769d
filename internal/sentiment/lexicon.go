package sentiment

import (
	"regexp"
	"strings"
)

// Keyword lexicons for headline scoring. Inflected forms are listed
// explicitly because matching is whole-word only.
var bullishWords = []string{
	"surge", "surges", "surged", "soar", "soars", "soared",
	"rally", "rallies", "rallied", "jump", "jumps", "jumped",
	"beat", "beats", "record", "upgrade", "upgraded", "bullish",
	"outperform", "strong", "growth", "profit", "profits",
	"gain", "gains", "breakout", "upbeat", "buyback",
}

var bearishWords = []string{
	"plunge", "plunges", "plunged", "sink", "sinks", "sank",
	"fall", "falls", "fell", "drop", "drops", "dropped",
	"slump", "slumps", "miss", "misses", "missed",
	"downgrade", "downgraded", "bearish", "weak", "loss", "losses",
	"lawsuit", "recall", "layoffs", "selloff", "warning",
}

var (
	bullishRe = compileLexicon(bullishWords)
	bearishRe = compileLexicon(bearishWords)
)

// compileLexicon builds a case-insensitive whole-word matcher, so "gain"
// never fires inside "Bargain".
func compileLexicon(words []string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(words, "|") + `)\b`)
}
