package analytics

import (
	"testing"
	"time"

	"github.com/Yorkel/AM1-topic-modelling/internal/corpus"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func rec(id, source, topic, period, day string) corpus.Record {
	return corpus.Record{
		ID:     id,
		Source: source,
		Topic:  topic,
		Period: period,
		Date:   date(day),
		Text:   "text of " + id,
	}
}

func testRecords() []corpus.Record {
	return []corpus.Record{
		rec("a1", "Guardian", "curriculum", "pre_election", "2024-01-01"),
		rec("a2", "Guardian", "funding", "pre_election", "2024-02-01"),
		rec("a3", "BBC", "curriculum", "pre_election", "2024-03-01"),
		rec("a4", "BBC", "funding", "post_election", "2024-08-01"),
		rec("a5", "DfE", "workforce", "post_election", "2024-09-01"),
		rec("a6", "DfE", "curriculum", "post_election", "2024-09-01"),
	}
}

func TestFilterConjunctive(t *testing.T) {
	records := testRecords()
	sel := NewSelection(
		[]string{"Guardian", "BBC"},
		[]string{"curriculum"},
		[]string{"pre_election"},
	)

	got := Filter(records, sel)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	for _, r := range got {
		if r.Topic != "curriculum" || r.Period != "pre_election" {
			t.Errorf("record %s escaped the filter: %+v", r.ID, r)
		}
	}
}

func TestFilterMatchesBruteForce(t *testing.T) {
	records := testRecords()
	sel := NewSelection(
		[]string{"Guardian", "DfE"},
		[]string{"curriculum", "funding", "workforce"},
		[]string{"pre_election", "post_election"},
	)

	want := 0
	for _, r := range records {
		_, s := sel.Sources[r.Source]
		_, tp := sel.Topics[r.Topic]
		_, p := sel.Periods[r.Period]
		if s && tp && p {
			want++
		}
	}

	if got := len(Filter(records, sel)); got != want {
		t.Errorf("expected %d records, got %d", want, got)
	}
}

func TestFilterEmptyDimensionSelectsNothing(t *testing.T) {
	records := testRecords()
	sel := NewSelection(nil, []string{"curriculum"}, []string{"pre_election"})

	if got := Filter(records, sel); len(got) != 0 {
		t.Errorf("expected empty subset for empty source selection, got %d", len(got))
	}
}

func TestFilterUnknownValuesExcluded(t *testing.T) {
	records := testRecords()
	sel := NewSelection([]string{"Nonexistent"}, []string{"curriculum"}, []string{"pre_election"})

	if got := Filter(records, sel); len(got) != 0 {
		t.Errorf("expected no matches for unknown source, got %d", len(got))
	}
}

func TestAllSelectsEverything(t *testing.T) {
	records := testRecords()
	store := corpus.NewStore(records)

	if got := Filter(records, All(store)); len(got) != len(records) {
		t.Errorf("expected full corpus, got %d of %d", len(got), len(records))
	}
}
