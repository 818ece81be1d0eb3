package synthesis

import (
	"context"

	"github.com/studybuddy/pseo-engine/internal/types"
)

// Strategy produces a draft page for a keyword. existingContent carries the
// previously published body when a page is being refreshed, so strategies can
// preserve hand edits; it is empty for new pages. The variation descriptor is
// zero-valued on first attempts and populated by the retry controller.
type Strategy interface {
	Name() string
	Synthesize(ctx context.Context, kw types.KeywordRecord, existingContent string, v types.Variation) (*types.DraftPage, error)
}
