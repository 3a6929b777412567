package ports

import "context"

// SummaryGenerator asks a language model to describe a post caption and
// returns the raw text of the first completion choice.
type SummaryGenerator interface {
	Complete(ctx context.Context, description string) (string, error)
}
