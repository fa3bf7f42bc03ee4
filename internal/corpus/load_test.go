package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `source,topic_name,election_period,date,article_id,text_clean
Guardian,curriculum,pre_election,2024-01-01,a1,"Curriculum reform debate."
Guardian,funding,pre_election,2024-02-01,a2,"School funding gap widens."
DfE,curriculum,post_election,2024-08-01,a3,"New curriculum guidance."
TES,workforce,post_election,2024-09-01,a4,""
`

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write corpus file: %v", err)
	}
	return path
}

func TestLoadCorpus(t *testing.T) {
	store, err := Load(writeCorpus(t, sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Len() != 4 {
		t.Errorf("expected 4 records, got %d", store.Len())
	}

	rec := store.Records()[0]
	if rec.ID != "a1" {
		t.Errorf("expected id 'a1', got %q", rec.ID)
	}
	if rec.Date.Format("2006-01-02") != "2024-01-01" {
		t.Errorf("expected date 2024-01-01, got %s", rec.Date)
	}

	// text_clean may be empty
	if store.Records()[3].Text != "" {
		t.Errorf("expected empty text, got %q", store.Records()[3].Text)
	}
}

func TestLoadShuffledColumns(t *testing.T) {
	csv := `text_clean,article_id,date,election_period,topic_name,source
"Some text",x1,2024-03-01,pre_election,funding,BBC
`
	store, err := Load(writeCorpus(t, csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := store.Records()[0]
	if rec.Source != "BBC" || rec.Topic != "funding" || rec.ID != "x1" {
		t.Errorf("columns mapped wrong: %+v", rec)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadMissingColumn(t *testing.T) {
	csv := `source,topic_name,date,article_id,text_clean
Guardian,curriculum,2024-01-01,a1,"text"
`
	_, err := Load(writeCorpus(t, csv))
	if err == nil {
		t.Fatal("expected error for missing column")
	}
	if !strings.Contains(err.Error(), "election_period") {
		t.Errorf("expected error to name missing column, got %v", err)
	}
}

func TestLoadEmptyRequiredField(t *testing.T) {
	csv := `source,topic_name,election_period,date,article_id,text_clean
,curriculum,pre_election,2024-01-01,a1,"text"
`
	if _, err := Load(writeCorpus(t, csv)); err == nil {
		t.Error("expected error for empty source")
	}
}

func TestLoadBadDate(t *testing.T) {
	csv := `source,topic_name,election_period,date,article_id,text_clean
Guardian,curriculum,pre_election,not-a-date,a1,"text"
`
	if _, err := Load(writeCorpus(t, csv)); err == nil {
		t.Error("expected error for unparsable date")
	}
}

func TestLoadDuplicateID(t *testing.T) {
	csv := `source,topic_name,election_period,date,article_id,text_clean
Guardian,curriculum,pre_election,2024-01-01,a1,"text"
BBC,funding,post_election,2024-08-01,a1,"text"
`
	if _, err := Load(writeCorpus(t, csv)); err == nil {
		t.Error("expected error for duplicate article_id")
	}
}

func TestLoadMonthGranularity(t *testing.T) {
	csv := `source,topic_name,election_period,date,article_id,text_clean
Guardian,curriculum,pre_election,2024-03,a1,"text"
`
	store, err := Load(writeCorpus(t, csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.Records()[0].Date.Format("2006-01"); got != "2024-03" {
		t.Errorf("expected month 2024-03, got %s", got)
	}
}

func TestStoreDomains(t *testing.T) {
	store, err := Load(writeCorpus(t, sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSources := []string{"DfE", "Guardian", "TES"}
	if got := store.Sources(); len(got) != 3 || got[0] != "DfE" || got[2] != "TES" {
		t.Errorf("expected sorted sources %v, got %v", wantSources, got)
	}
	if got := store.Topics(); len(got) != 3 || got[0] != "curriculum" {
		t.Errorf("expected 3 sorted topics, got %v", got)
	}
	if got := store.Periods(); len(got) != 2 || got[0] != "post_election" {
		t.Errorf("expected sorted periods, got %v", got)
	}
}
