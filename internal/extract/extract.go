// Package extract turns case media and hints into an IntakeBundle. Two
// adapters exist: a deterministic offline extractor and a vision-service
// client that falls back to the offline extractor on any failure. Either
// way, extraction never fails a case because of absent or malformed hints.
package extract

import (
	"context"

	"github.com/estatedesk/intake/internal/config"
	"github.com/estatedesk/intake/pkg/catalog"
)

// Extractor maps a case's media paths and hint payload to a structured
// bundle of items.
type Extractor interface {
	Extract(ctx context.Context, caseID string, mediaPaths []string, hints map[string]any) (catalog.IntakeBundle, error)
}

// New selects the extractor for the configured mode: the vision client when
// llm.enabled is set, the offline extractor otherwise.
func New(cfg config.LLMConfig) Extractor {
	if cfg.Enabled {
		return NewVision(cfg)
	}
	return NewOffline()
}
