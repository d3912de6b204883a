// Package generation defines the boundary to the language-model
// backends under evaluation: prompt in, text or a classified error out.
// Retry policy belongs to the orchestrator, not to clients.
package generation

import (
	"context"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

// Response is a successful generation result.
type Response struct {
	Text  string
	Usage *models.TokenUsage
}

// Client is the external-collaborator interface for one backend call.
type Client interface {
	// Generate sends a prompt to the given model and returns the raw
	// completion text. Implementations must honor ctx cancellation and
	// deadlines; any returned error is classified by Classify.
	Generate(ctx context.Context, model models.ModelDescriptor, prompt string) (*Response, error)
}
