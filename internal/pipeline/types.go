package pipeline

// RunMeta is the per-case run record persisted at
// results/<case_id>/_run_meta.json. The latest record overwrites the
// previous one and is the sole cache-validity oracle for the next run.
type RunMeta struct {
	CaseID      string   `json:"case_id"`
	Fingerprint string   `json:"fingerprint"`
	StartedAt   string   `json:"started_at"` // RFC 3339, UTC
	EndedAt     string   `json:"ended_at"`   // RFC 3339, UTC
	ItemCount   int      `json:"item_count"`
	CacheHit    bool     `json:"cache_hit"`
	Warnings    []string `json:"warnings"`
	Errors      []string `json:"errors"`
}

// OutputPaths lists where a successfully processed case's reports were
// written. Nil in dry-run results and cache hits.
type OutputPaths struct {
	EstateReportJSON string `json:"estate_report_json"`
	EstateReportHTML string `json:"estate_report_html"`
	RunMeta          string `json:"run_meta"`
}

// CaseResult is one case's terminal outcome in the batch manifest:
// a cache hit, a success, or a failure carrying the causing error.
type CaseResult struct {
	CaseID      string       `json:"case_id"`
	CacheHit    bool         `json:"cache_hit"`
	ItemCount   int          `json:"item_count"`
	Fingerprint string       `json:"fingerprint,omitempty"`
	Error       string       `json:"error,omitempty"`
	OutputPaths *OutputPaths `json:"output_paths,omitempty"`
}

// Failed reports whether the case terminated in the Failed state.
func (r CaseResult) Failed() bool {
	return r.Error != ""
}

// Manifest is the whole batch's summary, written to results/manifest.json.
type Manifest struct {
	RunID       string       `json:"run_id"`
	GeneratedAt string       `json:"generated_at"` // RFC 3339, UTC
	ProductsDir string       `json:"products_dir"`
	ResultsDir  string       `json:"results_dir"`
	TotalCases  int          `json:"total_cases"`
	Cases       []CaseResult `json:"cases"`
}
