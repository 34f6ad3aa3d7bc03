package embed

import (
	"context"
)

// Embedder turns free text into a fixed-length vector. The vector length and
// scale are whatever the active provider produces; callers pass vectors
// through to the index untouched.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
