package generation

import (
	"context"

	"github.com/spacesedan/captionflow/internal/models"
)

// Client generates raw post objects from a generation request. Errors are
// either *TransportError or *MalformedResponseError; an empty slice is a
// valid success.
type Client interface {
	GeneratePosts(ctx context.Context, req models.GenerationRequest) ([]models.RawPost, error)
}
