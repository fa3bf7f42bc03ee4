// Package analytics implements the discourse aggregation engine: filtering,
// grouped counts, election rank shifts, top-k selection, and article lookup
// over the labeled corpus. Every operation is a pure function of the records
// it is handed; nothing here caches or mutates shared state.
package analytics

import (
	"github.com/Yorkel/AM1-topic-modelling/internal/corpus"
)

// Selection is the set of allowed values per filter dimension. All three
// conditions apply conjunctively. An empty set on any dimension deliberately
// selects nothing, so the consumer can show "no results" instead of falling
// back to the unfiltered corpus.
type Selection struct {
	Sources map[string]struct{}
	Topics  map[string]struct{}
	Periods map[string]struct{}
}

// NewSelection builds a Selection from explicit value lists.
func NewSelection(sources, topics, periods []string) Selection {
	return Selection{
		Sources: toSet(sources),
		Topics:  toSet(topics),
		Periods: toSet(periods),
	}
}

// All returns the full-domain selection for a store, the dashboard default.
func All(store *corpus.Store) Selection {
	return NewSelection(store.Sources(), store.Topics(), store.Periods())
}

// Filter returns the records whose source, topic, and period are all members
// of the selection. Unknown selection values simply match nothing.
func Filter(records []corpus.Record, sel Selection) []corpus.Record {
	var out []corpus.Record
	for _, r := range records {
		if _, ok := sel.Sources[r.Source]; !ok {
			continue
		}
		if _, ok := sel.Topics[r.Topic]; !ok {
			continue
		}
		if _, ok := sel.Periods[r.Period]; !ok {
			continue
		}
		out = append(out, r)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
