package pipeline

import (
	"fmt"
	"time"

	"github.com/Yorkel/AM1-topic-modelling/internal/collect"
	"github.com/Yorkel/AM1-topic-modelling/internal/config"
	"github.com/Yorkel/AM1-topic-modelling/internal/database"
	"github.com/Yorkel/AM1-topic-modelling/internal/export"
	"github.com/Yorkel/AM1-topic-modelling/internal/fetch"
)

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the results of a full staging run.
type Result struct {
	Steps []StepResult
}

// Pipeline orchestrates the staging refresh: collect -> fetch -> export.
type Pipeline struct {
	cfg *config.Config
	db  *database.DB
}

// New creates a new staging pipeline.
func New(cfg *config.Config, db *database.DB) *Pipeline {
	return &Pipeline{cfg: cfg, db: db}
}

// Run executes the full staging pipeline.
func (p *Pipeline) Run(daysBack int, exportDir string) *Result {
	r := &Result{}

	step := p.runCollect(daysBack)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	r.Steps = append(r.Steps, p.runFetch())
	r.Steps = append(r.Steps, p.runExport(exportDir))
	return r
}

// DryRun shows what would be done without executing.
func (p *Pipeline) DryRun() *Result {
	r := &Result{}

	r.Steps = append(r.Steps, StepResult{
		Name:    "Collect",
		Summary: fmt.Sprintf("[dry-run] %d feeds configured", len(p.cfg.Sources.Feeds)),
	})

	needing, _ := p.db.GetArticlesNeedingFetch()
	r.Steps = append(r.Steps, StepResult{
		Name:    "Fetch",
		Summary: fmt.Sprintf("[dry-run] %d articles need content fetching", len(needing)),
	})

	unexported, _ := p.db.GetUnexportedArticles()
	r.Steps = append(r.Steps, StepResult{
		Name:    "Export",
		Summary: fmt.Sprintf("[dry-run] %d articles ready for labeling export", len(unexported)),
	})

	return r
}

func (p *Pipeline) runCollect(daysBack int) StepResult {
	collector := collect.NewCollector(p.cfg, p.db, daysBack)
	result := collector.Collect()
	return StepResult{
		Name: "Collect",
		Summary: fmt.Sprintf("%d found, %d new, %d duplicates",
			result.TotalFound, result.NewArticles, result.Duplicates),
	}
}

func (p *Pipeline) runFetch() StepResult {
	fetcher := fetch.NewContentFetcher(p.db, 0)
	result := fetcher.FetchMissingContent()
	return StepResult{
		Name:    "Fetch",
		Summary: fmt.Sprintf("%d fetched, %d failed", result.Fetched, result.Failed),
	}
}

func (p *Pipeline) runExport(exportDir string) StepResult {
	electionDate, err := time.Parse("2006-01-02", p.cfg.Analytics.ElectionDate)
	if err != nil {
		return StepResult{Name: "Export", Err: fmt.Errorf("invalid election_date: %w", err)}
	}

	exporter := export.New(p.db, exportDir, electionDate)
	result, err := exporter.Export()
	if err != nil {
		return StepResult{Name: "Export", Err: err}
	}
	summary := fmt.Sprintf("%d rows exported", result.Exported)
	if result.Path != "" {
		summary += " to " + result.Path
	}
	return StepResult{Name: "Export", Summary: summary}
}
