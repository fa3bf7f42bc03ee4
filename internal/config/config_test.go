package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}

	if len(cfg.Sources.Feeds) == 0 {
		t.Error("expected feeds to be populated")
	}

	if cfg.Analytics.ChartTopics != 6 {
		t.Errorf("expected 6 chart topics, got %d", cfg.Analytics.ChartTopics)
	}

	if cfg.Analytics.TableTopics != 10 {
		t.Errorf("expected 10 table topics, got %d", cfg.Analytics.TableTopics)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Server.Port)
	}
}

func TestParseMinimalConfig(t *testing.T) {
	data := []byte(`
corpus:
  path: /srv/corpus.csv
server:
  port: 9000
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse minimal config: %v", err)
	}

	if cfg.Corpus.Path != "/srv/corpus.csv" {
		t.Errorf("expected corpus path override, got %q", cfg.Corpus.Path)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	// Defaults should still be set for unspecified fields
	if cfg.Analytics.ChartTopics != 6 {
		t.Errorf("expected default chart_topics, got %d", cfg.Analytics.ChartTopics)
	}
	if cfg.Analytics.ElectionDate != "2024-07-01" {
		t.Errorf("expected default election_date, got %q", cfg.Analytics.ElectionDate)
	}
}

func TestParseRejectsBadTopicCounts(t *testing.T) {
	data := []byte(`
analytics:
  chart_topics: -1
`)
	if _, err := parse(data); err == nil {
		t.Error("expected error for negative chart_topics")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, DefaultConfigYAML, 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if len(cfg.Sources.Feeds) == 0 {
		t.Error("expected feeds to be populated from file")
	}
}

func TestGetDataDir(t *testing.T) {
	cfg := &Config{}
	defaultDir := cfg.GetDataDir()
	if defaultDir == "" {
		t.Error("expected non-empty default data dir")
	}

	cfg.Output.DataDir = "/custom/path"
	if cfg.GetDataDir() != "/custom/path" {
		t.Errorf("expected '/custom/path', got %q", cfg.GetDataDir())
	}
}
