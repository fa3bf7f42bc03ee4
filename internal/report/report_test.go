package report

import (
	"strings"
	"testing"
	"time"

	"github.com/Yorkel/AM1-topic-modelling/internal/corpus"
)

func rec(id, source, topic, period, day string) corpus.Record {
	d, _ := time.Parse("2006-01-02", day)
	return corpus.Record{ID: id, Source: source, Topic: topic, Period: period, Date: d, Text: "text"}
}

func sampleSubset() []corpus.Record {
	return []corpus.Record{
		rec("a1", "Guardian", "school_funding", "pre_election", "2024-01-01"),
		rec("a2", "Guardian", "school_funding", "pre_election", "2024-02-01"),
		rec("a3", "BBC", "curriculum", "pre_election", "2024-03-01"),
		rec("a4", "BBC", "curriculum", "post_election", "2024-08-01"),
		rec("a5", "DfE", "school_funding", "post_election", "2024-09-01"),
	}
}

func TestComposeSections(t *testing.T) {
	md := Compose(sampleSubset(), Params{ChartTopics: 6, TableTopics: 10})

	for _, want := range []string{
		"## Agenda snapshot",
		"- Articles: 5",
		"- Topics: 2",
		"- Organisations: 3",
		"## Election shift",
		"## Top topics",
		"## Organisational focus",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("digest missing %q", want)
		}
	}

	if !strings.Contains(md, "School Funding") {
		t.Error("expected topic labels in display form")
	}
}

func TestComposeShiftDegrades(t *testing.T) {
	preOnly := sampleSubset()[:3]
	md := Compose(preOnly, Params{ChartTopics: 6, TableTopics: 10})

	if !strings.Contains(md, "Both pre- and post-election") {
		t.Error("expected degraded shift note without post_election records")
	}
	if strings.Contains(md, "Biggest riser") {
		t.Error("expected no riser line without both periods")
	}
}

func TestComposeEmptySubset(t *testing.T) {
	md := Compose(nil, Params{ChartTopics: 6, TableTopics: 10})

	if !strings.Contains(md, "- Articles: 0") {
		t.Error("expected zero article count")
	}
	if !strings.Contains(md, "No articles in the current selection.") {
		t.Error("expected empty-selection note")
	}
}

func TestComposeTableLimit(t *testing.T) {
	md := Compose(sampleSubset(), Params{ChartTopics: 6, TableTopics: 1})

	if !strings.Contains(md, "| School Funding | 3 |") {
		t.Error("expected the top topic row")
	}
	if strings.Contains(md, "| Curriculum | 2 |") {
		t.Error("expected table truncated to one topic")
	}
}
