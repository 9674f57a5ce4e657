// Package analysis orchestrates one career analysis: report normalization, skill
// reconciliation, ranking, chart projection and persistence.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/career-pathway/internal/catalog"
	"github.com/jonathan/career-pathway/internal/charts"
	"github.com/jonathan/career-pathway/internal/db"
	"github.com/jonathan/career-pathway/internal/llm"
	"github.com/jonathan/career-pathway/internal/observability"
	"github.com/jonathan/career-pathway/internal/platform/logger"
	"github.com/jonathan/career-pathway/internal/ranking"
	"github.com/jonathan/career-pathway/internal/report"
	"github.com/jonathan/career-pathway/internal/skills"
	"github.com/jonathan/career-pathway/internal/types"
)

// DefaultTopN is the ranking length used when Options.TopN is not set.
const DefaultTopN = 10

// Progress steps reported through ProgressCallback.
const (
	StepGenerate  = "generate"
	StepNormalize = "normalize"
	StepReconcile = "reconcile"
	StepRank      = "rank"
	StepCharts    = "charts"
	StepPersist   = "persist"
)

// ProgressEvent represents a progress update during an analysis
type ProgressEvent struct {
	Step     string `json:"step"`
	Message  string `json:"message"`
	Analysis string `json:"analysis_id,omitempty"`
}

// ProgressCallback is called when analysis progress occurs
type ProgressCallback func(event ProgressEvent)

// Options configures a Service. Zero values fall back to defaults: an in-memory repository,
// the built-in catalog, the catalog's scales, fresh metrics and a no-op logger.
type Options struct {
	Repository db.Repository
	Catalog    *catalog.Catalog
	// Scales overrides or extends the catalog's scales.
	Scales     charts.Scales
	Metrics    *observability.Metrics
	Logger     *logger.Logger
	LLM        llm.Client
	TopN       int
	RadarSize  int
	OnProgress ProgressCallback
}

// Service runs analyses. It is safe for concurrent use when its repository is.
type Service struct {
	repo       db.Repository
	catalog    *catalog.Catalog
	scales     charts.Scales
	metrics    *observability.Metrics
	log        *logger.Logger
	llm        llm.Client
	topN       int
	radarSize  int
	onProgress ProgressCallback
}

// NewService creates a Service from opts.
func NewService(opts Options) (*Service, error) {
	s := &Service{
		repo:       opts.Repository,
		catalog:    opts.Catalog,
		metrics:    opts.Metrics,
		log:        opts.Logger,
		llm:        opts.LLM,
		topN:       opts.TopN,
		radarSize:  opts.RadarSize,
		onProgress: opts.OnProgress,
	}

	if s.catalog == nil {
		cat, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load default catalog: %w", err)
		}
		s.catalog = cat
	}
	s.scales = s.catalog.Scales().Merge(opts.Scales)

	if s.repo == nil {
		s.repo = db.NewMemoryStore()
	}
	if s.metrics == nil {
		s.metrics = observability.NewMetrics()
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.topN <= 0 {
		s.topN = DefaultTopN
	}
	if s.radarSize <= 0 {
		s.radarSize = charts.RadarSize
	}
	return s, nil
}

// Request is the input of one analysis.
type Request struct {
	// TargetRole selects the catalog role. When empty the report's profileOverview.targetRole is used.
	TargetRole string `json:"target_role"`
	// Report is the raw generator document. Anything, including nothing, is accepted.
	Report json.RawMessage `json:"report"`
	// Extra records are appended after the ones derived from the catalog and the report.
	FrameworkSkills []types.FrameworkSkillRecord `json:"framework_skills" validate:"dive"`
	Gaps            []types.GapRecord            `json:"gaps" validate:"dive"`
	Strengths       []types.StrengthRecord       `json:"strengths" validate:"dive"`
	// DryRun skips persistence.
	DryRun bool `json:"dry_run"`
}

// Result is a completed analysis. Everything after Inputs is derived and recomputable.
type Result struct {
	ID             uuid.UUID                 `json:"id"`
	TargetRole     string                    `json:"target_role"`
	CatalogMatched bool                      `json:"catalog_matched"`
	Report         types.NormalizedReport    `json:"report"`
	ReportDefects  report.Diagnostics        `json:"report_defects"`
	Inputs         types.SkillInputs         `json:"inputs"`
	Skills         []types.UnifiedSkillEntry `json:"skills"`
	SkillWarnings  skills.Diagnostics        `json:"skill_warnings"`
	Rankings       []types.RankedSkills      `json:"rankings"`
	Charts         []types.ChartProjection   `json:"charts"`
	// Unscaled lists frameworks that appeared in the data but have no configured scale.
	Unscaled []string `json:"unscaled_frameworks"`
	Stored   bool     `json:"stored"`
}

// Analyze normalizes the report, reconciles it with the role's catalog skills, ranks and
// projects every framework and stores the analysis unless req.DryRun is set.
func (s *Service) Analyze(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep, defects := report.NormalizeJSONWithDiagnostics(req.Report)
	s.metrics.ObserveReport(defects)
	if defects.Malformed() {
		s.log.Warn("report is not a JSON object, using defaults", "target_role", req.TargetRole)
	} else if !defects.Clean() {
		s.log.Debug("report normalized with defects", "count", len(defects))
	}
	s.emit(StepNormalize, fmt.Sprintf("Normalized report with %d defects", len(defects)), uuid.Nil)

	role := req.TargetRole
	if role == "" {
		role = rep.ProfileOverview.TargetRole
	}
	catalogSkills, matched := s.catalog.SkillsForRole(role)
	if !matched && role != "" {
		s.log.Info("role not in catalog, using report skills only", "target_role", role)
	}

	inputs := mergeInputs(catalogSkills, rep, req)

	res, err := s.derive(inputs)
	if err != nil {
		return nil, err
	}
	res.TargetRole = role
	res.CatalogMatched = matched
	res.Report = rep
	res.ReportDefects = defects
	if res.ReportDefects == nil {
		res.ReportDefects = report.Diagnostics{}
	}

	if req.DryRun {
		return res, nil
	}

	stored := &db.Analysis{TargetRole: role, Report: rep, Inputs: inputs}
	if err := s.repo.SaveAnalysis(ctx, stored); err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	s.metrics.ObserveStored()
	res.ID = stored.ID
	res.Stored = true
	s.emit(StepPersist, "Stored analysis", stored.ID)
	s.log.Info("analysis stored", "id", stored.ID.String(), "target_role", role, "skills", len(res.Skills))

	return res, nil
}

// Recompute rebuilds the registry, rankings and charts of a stored analysis from its inputs.
func (s *Service) Recompute(ctx context.Context, id uuid.UUID) (*Result, error) {
	stored, err := s.repo.GetAnalysis(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := s.derive(stored.Inputs)
	if err != nil {
		return nil, err
	}
	res.ID = stored.ID
	res.TargetRole = stored.TargetRole
	_, res.CatalogMatched = s.catalog.SkillsForRole(stored.TargetRole)
	res.Report = stored.Report
	res.ReportDefects = report.Diagnostics{}
	res.Stored = true
	return res, nil
}

// Get returns a stored analysis.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*db.Analysis, error) {
	return s.repo.GetAnalysis(ctx, id)
}

// List returns stored analysis summaries, newest first.
func (s *Service) List(ctx context.Context, filters db.ListFilters) ([]db.AnalysisSummary, error) {
	return s.repo.ListAnalyses(ctx, filters)
}

// Delete removes a stored analysis.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteAnalysis(ctx, id)
}

// Scales returns the effective chart scales.
func (s *Service) Scales() charts.Scales {
	return s.scales
}

// Catalog returns the framework catalog in use.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// TopN returns the configured ranking length.
func (s *Service) TopN() int {
	return s.topN
}

// RadarSize returns the configured radar size.
func (s *Service) RadarSize() int {
	return s.radarSize
}

// derive reconciles inputs and computes rankings and charts for every framework.
func (s *Service) derive(inputs types.SkillInputs) (*Result, error) {
	reg, warnings := skills.ReconcileInputs(inputs)
	s.metrics.ObserveReconcile(reg, warnings)
	for _, w := range warnings {
		s.log.Debug("reconcile warning", "kind", string(w.Kind), "source", w.Source, "index", w.Index, "skill", w.Skill)
	}
	s.emit(StepReconcile, fmt.Sprintf("Reconciled %d skills", reg.Len()), uuid.Nil)

	if warnings == nil {
		warnings = skills.Diagnostics{}
	}
	res := &Result{
		Inputs:        inputs,
		Skills:        reg.Entries(),
		SkillWarnings: warnings,
		Rankings:      []types.RankedSkills{},
		Charts:        []types.ChartProjection{},
		Unscaled:      []string{},
	}

	for _, fw := range reg.Frameworks() {
		res.Rankings = append(res.Rankings, ranking.TopN(reg, fw, s.topN))
	}
	projections, unscaled, err := charts.BuildForRegistry(reg, s.scales, s.radarSize)
	if err != nil {
		return nil, err
	}
	for _, fw := range unscaled {
		s.log.Warn("no scale for framework, skipping charts", "framework", fw)
	}
	res.Charts = projections
	res.Unscaled = unscaled
	s.emit(StepRank, fmt.Sprintf("Ranked %d frameworks", len(res.Rankings)), uuid.Nil)
	s.emit(StepCharts, fmt.Sprintf("Built %d chart projections", len(res.Charts)), uuid.Nil)

	return res, nil
}

// mergeInputs concatenates catalog, report and caller records in that order, so catalog
// records seed the registry and caller assertions are applied last.
func mergeInputs(catalogSkills []types.FrameworkSkillRecord, rep types.NormalizedReport, req Request) types.SkillInputs {
	gaps, strengths := report.SkillRecords(rep)

	in := types.SkillInputs{
		FrameworkSkills: make([]types.FrameworkSkillRecord, 0, len(catalogSkills)+len(req.FrameworkSkills)),
		Gaps:            make([]types.GapRecord, 0, len(gaps)+len(req.Gaps)),
		Strengths:       make([]types.StrengthRecord, 0, len(strengths)+len(req.Strengths)),
	}
	in.FrameworkSkills = append(in.FrameworkSkills, catalogSkills...)
	in.FrameworkSkills = append(in.FrameworkSkills, report.FrameworkSkills(rep)...)
	in.FrameworkSkills = append(in.FrameworkSkills, req.FrameworkSkills...)
	in.Gaps = append(in.Gaps, gaps...)
	in.Gaps = append(in.Gaps, req.Gaps...)
	in.Strengths = append(in.Strengths, strengths...)
	in.Strengths = append(in.Strengths, req.Strengths...)
	return in
}

func (s *Service) emit(step, message string, id uuid.UUID) {
	if s.onProgress == nil {
		return
	}
	event := ProgressEvent{Step: step, Message: message}
	if id != uuid.Nil {
		event.Analysis = id.String()
	}
	s.onProgress(event)
}
