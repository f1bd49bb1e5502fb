package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/estatedesk/intake/internal/config"
	"github.com/estatedesk/intake/pkg/catalog"
)

// visionPrompt instructs the cataloging model. Kept conservative on
// purpose: over-claimed attributes are worse than missing ones in an
// estate report.
const visionPrompt = `You are an expert estate cataloger. Analyze the provided images and hints to create accurate product listings. Be conservative in your assessments. Populate at most one category block per item, matched to category_hint. Return a structured intake bundle with case_id, lot_metadata, and items.`

// VisionExtractor sends case photos and hints to an OpenAI-style vision
// endpoint that answers with an IntakeBundle. Every failure — request
// build, transport, bad status, undecodable body, invalid bundle — falls
// back to the offline extractor, so enabling the vision mode can never
// make a previously working case fail.
type VisionExtractor struct {
	endpoint string
	model    string
	client   *http.Client
	fallback *OfflineExtractor
}

// NewVision returns a vision-service extractor for the given settings.
func NewVision(cfg config.LLMConfig) *VisionExtractor {
	return &VisionExtractor{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		client:   &http.Client{Timeout: 120 * time.Second},
		fallback: NewOffline(),
	}
}

// visionRequest is the wire format sent to the vision service.
type visionRequest struct {
	Model  string         `json:"model"`
	Prompt string         `json:"prompt"`
	CaseID string         `json:"case_id"`
	Hints  map[string]any `json:"hints,omitempty"`
	Images []string       `json:"images"` // data URLs
}

// Extract calls the vision service and validates its bundle; any failure
// degrades to the offline extraction of the same inputs.
func (e *VisionExtractor) Extract(ctx context.Context, caseID string, mediaPaths []string, hints map[string]any) (catalog.IntakeBundle, error) {
	bundle, err := e.extractRemote(ctx, caseID, mediaPaths, hints)
	if err != nil {
		return e.fallback.Extract(ctx, caseID, mediaPaths, hints)
	}
	return bundle, nil
}

func (e *VisionExtractor) extractRemote(ctx context.Context, caseID string, mediaPaths []string, hints map[string]any) (catalog.IntakeBundle, error) {
	images := make([]string, 0, len(mediaPaths))
	for _, path := range mediaPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			// An unreadable photo weakens the extraction but should not
			// abort it.
			continue
		}
		images = append(images, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(data))
	}

	payload, err := json.Marshal(visionRequest{
		Model:  e.model,
		Prompt: visionPrompt,
		CaseID: caseID,
		Hints:  hints,
		Images: images,
	})
	if err != nil {
		return catalog.IntakeBundle{}, fmt.Errorf("failed to marshal vision request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return catalog.IntakeBundle{}, fmt.Errorf("failed to build vision request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return catalog.IntakeBundle{}, fmt.Errorf("vision request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return catalog.IntakeBundle{}, fmt.Errorf("vision service returned status %d", resp.StatusCode)
	}

	var bundle catalog.IntakeBundle
	if err := json.NewDecoder(resp.Body).Decode(&bundle); err != nil {
		return catalog.IntakeBundle{}, fmt.Errorf("failed to decode vision response: %w", err)
	}

	// The service does not get to rename the case or skip lot metadata.
	bundle.CaseID = caseID
	if bundle.LotMetadata.LotID == "" {
		bundle.LotMetadata = catalog.LotMetadata{
			LotID:        caseID,
			ListStrategy: catalog.ListStrategyIndividual,
		}
	}

	if err := bundle.Validate(); err != nil {
		return catalog.IntakeBundle{}, fmt.Errorf("vision service returned invalid bundle: %w", err)
	}
	return bundle, nil
}
