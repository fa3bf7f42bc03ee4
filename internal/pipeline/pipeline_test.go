package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/Yorkel/AM1-topic-modelling/internal/config"
	"github.com/Yorkel/AM1-topic-modelling/internal/database"
)

func TestDryRunEmptyStaging(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.Sources.Feeds = []config.Feed{{URL: "https://example.com/rss", Name: "Example"}}

	result := New(cfg, db).DryRun()
	if len(result.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(result.Steps))
	}
	for _, step := range result.Steps {
		if step.Err != nil {
			t.Errorf("dry run step %s errored: %v", step.Name, step.Err)
		}
	}
	if result.Steps[0].Name != "Collect" || result.Steps[2].Name != "Export" {
		t.Errorf("unexpected step order: %+v", result.Steps)
	}
}
