// Package export writes staged articles to a labeling-ready CSV. The file
// carries the same header as the labeled corpus; topic_name is left blank
// for the external topic-modelling pipeline to fill in.
package export

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Yorkel/AM1-topic-modelling/internal/analytics"
	"github.com/Yorkel/AM1-topic-modelling/internal/database"
)

var header = []string{"source", "topic_name", "election_period", "date", "article_id", "text_clean"}

// Result holds the results of an export run.
type Result struct {
	Exported int
	Skipped  int
	Path     string
}

// Exporter writes unexported staged articles to CSV.
type Exporter struct {
	db           *database.DB
	outDir       string
	electionDate time.Time
}

// New creates an Exporter. electionDate splits rows into pre_election and
// post_election periods; published dates strictly before it are pre.
func New(db *database.DB, outDir string, electionDate time.Time) *Exporter {
	return &Exporter{db: db, outDir: outDir, electionDate: electionDate}
}

// Export writes all fetched, not-yet-exported staged articles to a dated CSV
// and marks them exported. Articles without a published date are skipped,
// since the corpus requires one.
func (e *Exporter) Export() (*Result, error) {
	articles, err := e.db.GetUnexportedArticles()
	if err != nil {
		return nil, fmt.Errorf("listing unexported articles: %w", err)
	}
	if len(articles) == 0 {
		log.Println("No staged articles to export")
		return &Result{}, nil
	}

	if err := os.MkdirAll(e.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(e.outDir, "staged_"+time.Now().Format("2006-01-02")+".csv")

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	result := &Result{Path: path}
	var exported []int64
	for _, a := range articles {
		if a.PublishedDate == nil || *a.PublishedDate == "" {
			result.Skipped++
			log.Printf("Skipping %s: no published date", a.URL)
			continue
		}
		row := []string{
			a.Source,
			"", // topic_name assigned by the labeling pipeline
			e.period(*a.PublishedDate),
			*a.PublishedDate,
			"s" + strconv.FormatInt(a.ID, 10),
			deref(a.Content),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing row: %w", err)
		}
		exported = append(exported, a.ID)
		result.Exported++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing export: %w", err)
	}

	if err := e.db.MarkArticlesExported(exported); err != nil {
		return nil, fmt.Errorf("marking articles exported: %w", err)
	}

	log.Printf("Export complete: %d rows to %s (%d skipped)", result.Exported, path, result.Skipped)
	return result, nil
}

func (e *Exporter) period(published string) string {
	d, err := time.Parse("2006-01-02", published)
	if err != nil || !d.Before(e.electionDate) {
		return analytics.PeriodPost
	}
	return analytics.PeriodPre
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
