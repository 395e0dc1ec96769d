// Package narrative turns a finished analysis into an analyst-style report
// via a language model. Generation is strictly decorative: the verdict is
// computed before any model is called and never depends on this package.
package narrative

import "context"

// Generator produces free text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	HealthCheck(ctx context.Context) error
	Name() string
}
