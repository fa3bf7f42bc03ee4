package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Required CSV columns, matched by header name in any order.
var requiredColumns = []string{
	"source", "topic_name", "election_period", "date", "article_id", "text_clean",
}

// Date layouts accepted by the loader. The corpus is month-granular in
// practice, but any ISO-parsable date is tolerated.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01",
}

// Load reads the labeled corpus from a CSV file at path.
// A missing file, missing required column, blank required field, or
// unparsable date is a fatal load error; rows are never silently dropped.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus: %w", err)
	}
	defer f.Close()

	store, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("loading corpus %s: %w", path, err)
	}
	return store, nil
}

func read(r io.Reader) (*Store, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var records []Record
	seen := make(map[string]struct{})
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		line++

		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("row %d: duplicate article_id %q", line, rec.ID)
		}
		seen[rec.ID] = struct{}{}
		records = append(records, rec)
	}

	return NewStore(records), nil
}

func parseRow(row []string, cols map[string]int) (Record, error) {
	field := func(name string) (string, error) {
		i := cols[name]
		if i >= len(row) {
			return "", fmt.Errorf("missing field %q", name)
		}
		return strings.TrimSpace(row[i]), nil
	}

	var rec Record
	var err error
	if rec.Source, err = required(field, "source"); err != nil {
		return rec, err
	}
	if rec.Topic, err = required(field, "topic_name"); err != nil {
		return rec, err
	}
	if rec.Period, err = required(field, "election_period"); err != nil {
		return rec, err
	}
	if rec.ID, err = required(field, "article_id"); err != nil {
		return rec, err
	}

	rawDate, err := required(field, "date")
	if err != nil {
		return rec, err
	}
	if rec.Date, err = parseDate(rawDate); err != nil {
		return rec, err
	}

	// text_clean may be empty, but the field must exist.
	if rec.Text, err = field("text_clean"); err != nil {
		return rec, err
	}
	return rec, nil
}

func required(field func(string) (string, error), name string) (string, error) {
	v, err := field(name)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf("empty required field %q", name)
	}
	return v, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", raw)
}
