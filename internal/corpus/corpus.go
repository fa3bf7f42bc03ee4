package corpus

import (
	"sort"
	"time"
)

// Record is one labeled article. Records are immutable after load.
type Record struct {
	ID     string
	Source string
	Topic  string
	Period string
	Date   time.Time
	Text   string
}

// Store holds the full labeled corpus for the lifetime of the process.
// It is loaded once and never mutated, so it is safe to share freely.
type Store struct {
	records []Record
	sources []string
	topics  []string
	periods []string
}

// NewStore builds a Store from a slice of records.
func NewStore(records []Record) *Store {
	s := &Store{records: records}
	s.sources = distinctSorted(records, func(r Record) string { return r.Source })
	s.topics = distinctSorted(records, func(r Record) string { return r.Topic })
	s.periods = distinctSorted(records, func(r Record) string { return r.Period })
	return s
}

// Records returns the full corpus. Callers must not modify the slice.
func (s *Store) Records() []Record {
	return s.records
}

// Len returns the number of records in the corpus.
func (s *Store) Len() int {
	return len(s.records)
}

// Sources returns the distinct organisation names, sorted.
func (s *Store) Sources() []string {
	return s.sources
}

// Topics returns the distinct topic labels, sorted.
func (s *Store) Topics() []string {
	return s.topics
}

// Periods returns the distinct election-period tags, sorted.
func (s *Store) Periods() []string {
	return s.periods
}

func distinctSorted(records []Record, key func(Record) string) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[key(r)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
