package driving

import (
	"context"

	"github.com/custodia-labs/typesense-mcp/internal/core/domain"
)

// PromptService generates prompt conversations about a collection.
type PromptService interface {
	// Render builds the named prompt for collection.
	Render(ctx context.Context, name, collection string) (domain.PromptResult, error)
}
