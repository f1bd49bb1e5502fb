// Package pipeline sequences discovery, caching, extraction, analysis and
// report writing for a batch of cases. Cases run strictly sequentially and
// fail independently: one broken case is recorded and the batch moves on.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/estatedesk/intake/internal/config"
	"github.com/estatedesk/intake/internal/discovery"
	"github.com/estatedesk/intake/internal/extract"
	"github.com/estatedesk/intake/internal/fingerprint"
	"github.com/estatedesk/intake/internal/images"
	"github.com/estatedesk/intake/internal/pricing"
	"github.com/estatedesk/intake/internal/report"
	"github.com/estatedesk/intake/pkg/catalog"
	"github.com/estatedesk/intake/pkg/comps"
)

// File names inside a case's results directory.
const (
	runMetaFilename      = "_run_meta.json"
	estateJSONFilename   = "estate_report.json"
	estateHTMLFilename   = "estate_report.html"
	manifestFilename     = "manifest.json"
	itemMetadataFilename = "metadata.json"
	itemReportFilename   = "item_report.json"
)

// Options tune a pipeline run and allow tests (or callers with a live
// market integration) to substitute the external collaborators.
type Options struct {
	Force  bool // bypass the fingerprint cache
	DryRun bool // compute everything, write nothing

	Extractor extract.Extractor // defaults from cfg.LLM
	Provider  comps.Provider    // defaults to the deterministic stub
}

// Pipeline processes cases. Construct with New; the zero value is not
// usable.
type Pipeline struct {
	cfg       config.Config
	extractor extract.Extractor
	provider  comps.Provider
	force     bool
	dryRun    bool
}

// New builds a pipeline from an immutable configuration value.
func New(cfg config.Config, opts Options) *Pipeline {
	extractor := opts.Extractor
	if extractor == nil {
		extractor = extract.New(cfg.LLM)
	}
	provider := opts.Provider
	if provider == nil {
		provider = comps.NewStub()
	}
	return &Pipeline{
		cfg:       cfg,
		extractor: extractor,
		provider:  provider,
		force:     opts.Force,
		dryRun:    opts.DryRun,
	}
}

// Run processes every discovered case in order and returns the batch
// manifest. Unless in dry-run mode the manifest is also persisted to
// results/manifest.json. Per-case failures are recorded in the manifest,
// never raised; the returned error covers driver-level problems only.
func (p *Pipeline) Run(ctx context.Context, productsDir, resultsDir string) (Manifest, error) {
	cases := discovery.Cases(productsDir, p.cfg.IO.IgnorePrefix)

	manifest := Manifest{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		ProductsDir: productsDir,
		ResultsDir:  resultsDir,
		TotalCases:  len(cases),
		Cases:       make([]CaseResult, 0, len(cases)),
	}

	for _, caseDir := range cases {
		manifest.Cases = append(manifest.Cases, p.ProcessCase(ctx, caseDir, resultsDir))
	}

	if !p.dryRun {
		if err := os.MkdirAll(resultsDir, 0o755); err != nil {
			return manifest, fmt.Errorf("failed to create results directory: %w", err)
		}
		if err := writeJSON(filepath.Join(resultsDir, manifestFilename), manifest); err != nil {
			return manifest, fmt.Errorf("failed to write manifest: %w", err)
		}
	}
	return manifest, nil
}

// ProcessCase runs one case through the state machine
// Discover → CacheCheck → Extract → PerItemAnalysis → Write → RunMetaPersist.
// Any error short-circuits to the Failed terminal state: the error is
// recorded in the case's RunMeta (unless dry-run) and in the returned
// result, and never propagated as a Go error.
func (p *Pipeline) ProcessCase(ctx context.Context, caseDir, resultsDir string) CaseResult {
	caseID := filepath.Base(caseDir)
	caseResultsDir := filepath.Join(resultsDir, caseID)
	startedAt := time.Now().UTC()

	result, warnings, err := p.runCase(ctx, caseID, caseDir, caseResultsDir, startedAt)
	if err == nil {
		return result
	}

	if !p.dryRun {
		failMeta := RunMeta{
			CaseID:      caseID,
			Fingerprint: result.Fingerprint,
			StartedAt:   startedAt.Format(time.RFC3339),
			EndedAt:     time.Now().UTC().Format(time.RFC3339),
			ItemCount:   0,
			CacheHit:    false,
			Warnings:    warnings,
			Errors:      []string{err.Error()},
		}
		// Best effort: a case that failed before its results directory
		// exists should still leave a record behind.
		if mkErr := os.MkdirAll(caseResultsDir, 0o755); mkErr == nil {
			_ = writeJSON(filepath.Join(caseResultsDir, runMetaFilename), failMeta)
		}
	}

	return CaseResult{
		CaseID:      caseID,
		Fingerprint: result.Fingerprint,
		Error:       err.Error(),
	}
}

// runCase is the happy path of the state machine. It returns the terminal
// result, accumulated warnings, and the first error encountered.
func (p *Pipeline) runCase(ctx context.Context, caseID, caseDir, caseResultsDir string, startedAt time.Time) (CaseResult, []string, error) {
	var warnings []string

	// Discover.
	mediaPaths := discovery.Media(caseDir, p.cfg.IO.IgnorePrefix)
	hints := discovery.Hints(caseDir)
	fp := fingerprint.Compute(caseID, mediaPaths, hints)

	partial := CaseResult{CaseID: caseID, Fingerprint: fp}

	// CacheCheck. A matching fingerprint means extraction, comps and
	// pricing are all skipped — unchanged inputs never re-trigger external
	// calls.
	runMetaPath := filepath.Join(caseResultsDir, runMetaFilename)
	if !p.force {
		if prior, ok := readRunMeta(runMetaPath); ok && prior.Fingerprint == fp && len(prior.Errors) == 0 {
			return CaseResult{
				CaseID:      caseID,
				CacheHit:    true,
				ItemCount:   prior.ItemCount,
				Fingerprint: fp,
			}, warnings, nil
		}
	}

	// Extract.
	bundle, err := p.extractor.Extract(ctx, caseID, mediaPaths, hints)
	if err != nil {
		return partial, warnings, fmt.Errorf("extraction failed: %w", err)
	}
	assignSKUs(&bundle, fp)
	if err := bundle.Validate(); err != nil {
		return partial, warnings, fmt.Errorf("invalid intake bundle: %w", err)
	}

	// PerItemAnalysis: comps concurrently, one task per item, joined
	// before any pricing happens.
	statsList, err := p.fetchComps(ctx, bundle.Items)
	if err != nil {
		return partial, warnings, err
	}

	reports := make([]report.ItemReport, 0, len(bundle.Items))
	for i, item := range bundle.Items {
		quotes := pricing.QuotesFromComps(
			statsList[i],
			p.cfg.Pricing.DefaultFeePct,
			0,
			p.cfg.Pricing.DOMCapDays,
		)
		reports = append(reports, report.BuildItemReport(item, statsList[i], quotes, p.cfg.Pricing.StorageCostPerMonth))
	}

	rollup := report.BuildEstateRollup(reports)

	// Write.
	var outputs *OutputPaths
	if !p.dryRun {
		w, writeWarnings, err := p.writeOutputs(caseResultsDir, bundle, reports, rollup)
		warnings = append(warnings, writeWarnings...)
		if err != nil {
			return partial, warnings, err
		}
		outputs = w
	}

	// RunMetaPersist: this record is the next run's cache oracle.
	if !p.dryRun {
		meta := RunMeta{
			CaseID:      caseID,
			Fingerprint: fp,
			StartedAt:   startedAt.Format(time.RFC3339),
			EndedAt:     time.Now().UTC().Format(time.RFC3339),
			ItemCount:   len(bundle.Items),
			CacheHit:    false,
			Warnings:    warnings,
			Errors:      []string{},
		}
		if err := writeJSON(runMetaPath, meta); err != nil {
			return partial, warnings, fmt.Errorf("failed to persist run meta: %w", err)
		}
	}

	return CaseResult{
		CaseID:      caseID,
		ItemCount:   len(bundle.Items),
		Fingerprint: fp,
		OutputPaths: outputs,
	}, warnings, nil
}

// fetchComps issues one concurrent lookup per item and joins before
// returning. Concurrency is bounded by the case's item count; there is no
// worker pool and no retry — a failed lookup fails the case.
func (p *Pipeline) fetchComps(ctx context.Context, items []catalog.Item) ([]comps.Stats, error) {
	statsList := make([]comps.Stats, len(items))

	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		g.Go(func() error {
			stats, err := p.provider.Stats(gctx, item, p.cfg.Comps.WindowDays)
			if err != nil {
				return fmt.Errorf("comp stats for %s: %w", item.SKU, err)
			}
			if err := stats.Validate(); err != nil {
				return fmt.Errorf("comp stats for %s: %w", item.SKU, err)
			}
			statsList[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return statsList, nil
}

// assignSKUs gives every item without a SKU a deterministic one derived
// from the case, its position and the fingerprint prefix. SKUs are stable
// across runs exactly as long as item ordering and the fingerprint are.
func assignSKUs(bundle *catalog.IntakeBundle, fp string) {
	prefix := fp
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	for i := range bundle.Items {
		if bundle.Items[i].SKU == "" {
			bundle.Items[i].SKU = fmt.Sprintf("%s-%03d-%s", bundle.CaseID, i+1, prefix)
		}
	}
}

// writeOutputs persists per-item metadata, reports and normalized photos,
// then the estate rollup JSON and HTML. Photo problems are demoted to
// warnings; everything else fails the case.
func (p *Pipeline) writeOutputs(caseResultsDir string, bundle catalog.IntakeBundle, reports []report.ItemReport, rollup report.EstateRollup) (*OutputPaths, []string, error) {
	var warnings []string

	for i, item := range bundle.Items {
		itemDir := filepath.Join(caseResultsDir, "products", item.SKU)
		if err := os.MkdirAll(itemDir, 0o755); err != nil {
			return nil, warnings, fmt.Errorf("failed to create item directory: %w", err)
		}
		if err := writeJSON(filepath.Join(itemDir, itemMetadataFilename), item); err != nil {
			return nil, warnings, err
		}
		if err := writeJSON(filepath.Join(itemDir, itemReportFilename), reports[i]); err != nil {
			return nil, warnings, err
		}

		imagesDir := filepath.Join(itemDir, "images")
		if err := os.MkdirAll(imagesDir, 0o755); err != nil {
			return nil, warnings, fmt.Errorf("failed to create images directory: %w", err)
		}
		for n, media := range item.Photos {
			if media.Source != catalog.MediaSourceFile || media.Path == "" {
				continue
			}
			if _, err := os.Stat(media.Path); err != nil {
				warnings = append(warnings, fmt.Sprintf("photo missing for %s: %s", item.SKU, media.Path))
				continue
			}
			dst := filepath.Join(imagesDir, fmt.Sprintf("%02d.jpg", n+1))
			if err := images.Normalize(media.Path, dst, p.cfg.IO.ImageMaxEdgePx); err != nil {
				warnings = append(warnings, fmt.Sprintf("failed to normalize photo for %s: %v", item.SKU, err))
			}
		}
	}

	if err := os.MkdirAll(caseResultsDir, 0o755); err != nil {
		return nil, warnings, fmt.Errorf("failed to create case results directory: %w", err)
	}

	jsonPath := filepath.Join(caseResultsDir, estateJSONFilename)
	if err := writeJSON(jsonPath, rollup); err != nil {
		return nil, warnings, err
	}

	htmlPath := filepath.Join(caseResultsDir, estateHTMLFilename)
	htmlFile, err := os.Create(htmlPath)
	if err != nil {
		return nil, warnings, fmt.Errorf("failed to create %s: %w", htmlPath, err)
	}
	defer htmlFile.Close()
	if err := report.RenderHTML(htmlFile, rollup); err != nil {
		return nil, warnings, err
	}

	return &OutputPaths{
		EstateReportJSON: jsonPath,
		EstateReportHTML: htmlPath,
		RunMeta:          filepath.Join(caseResultsDir, runMetaFilename),
	}, warnings, nil
}

// readRunMeta loads a previously persisted RunMeta. Corrupt or unreadable
// records report !ok so the caller reprocesses instead of trusting them.
func readRunMeta(path string) (RunMeta, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunMeta{}, false
	}
	var meta RunMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return RunMeta{}, false
	}
	return meta, true
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
