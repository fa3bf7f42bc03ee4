package analytics

import (
	"testing"
)

func TestSummarize(t *testing.T) {
	s := Summarize(testRecords())
	if s.Articles != 6 {
		t.Errorf("expected 6 articles, got %d", s.Articles)
	}
	if s.Topics != 3 {
		t.Errorf("expected 3 topics, got %d", s.Topics)
	}
	if s.Organisations != 3 {
		t.Errorf("expected 3 organisations, got %d", s.Organisations)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Articles != 0 || s.Topics != 0 || s.Organisations != 0 {
		t.Errorf("expected zero summary, got %+v", s)
	}
}

func TestTopicCountsSumToSubsetSize(t *testing.T) {
	records := testRecords()
	counts := TopicCounts(records)

	total := 0
	for _, n := range counts {
		total += n
	}
	if total != len(records) {
		t.Errorf("topic counts sum to %d, want %d", total, len(records))
	}
	if counts["curriculum"] != 3 {
		t.Errorf("expected 3 curriculum articles, got %d", counts["curriculum"])
	}
}

func TestTopicCountsSparse(t *testing.T) {
	counts := TopicCounts(testRecords()[:2])
	if _, ok := counts["workforce"]; ok {
		t.Error("expected no entry for topic absent from subset")
	}
}

func TestTimeSeriesRestrictedToTopN(t *testing.T) {
	records := testRecords()
	// Top 2 topics are curriculum (3) and funding (2); workforce must vanish.
	points := TimeSeries(records, 2)

	total := 0
	for _, p := range points {
		if p.Topic == "workforce" {
			t.Error("expected workforce to be dropped, not bucketed")
		}
		total += p.Count
	}
	if total != 5 {
		t.Errorf("expected 5 articles across top-2 topics, got %d", total)
	}
}

func TestTimeSeriesSorted(t *testing.T) {
	points := TimeSeries(testRecords(), 6)
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		if cur.Date.Before(prev.Date) {
			t.Fatalf("points not sorted by date: %v before %v", prev.Date, cur.Date)
		}
		if cur.Date.Equal(prev.Date) && cur.Topic < prev.Topic {
			t.Fatalf("points not sorted by topic within %v", cur.Date)
		}
	}
}

func TestTimeSeriesGroupsSameDay(t *testing.T) {
	points := TimeSeries(testRecords(), 6)
	// a5 and a6 share 2024-09-01 but differ in topic: two points, count 1 each.
	var sept []TimePoint
	for _, p := range points {
		if p.Date.Equal(date("2024-09-01")) {
			sept = append(sept, p)
		}
	}
	if len(sept) != 2 {
		t.Fatalf("expected 2 points on 2024-09-01, got %d", len(sept))
	}
}

func TestTimeSeriesEmptySubset(t *testing.T) {
	if points := TimeSeries(nil, 6); len(points) != 0 {
		t.Errorf("expected no points for empty subset, got %d", len(points))
	}
}

func TestHeatmapCountsSumToSubsetSize(t *testing.T) {
	records := testRecords()
	cells := Heatmap(records)

	total := 0
	for _, c := range cells {
		total += c.Count
	}
	if total != len(records) {
		t.Errorf("heatmap counts sum to %d, want %d", total, len(records))
	}
}

func TestHeatmapSparse(t *testing.T) {
	cells := Heatmap(testRecords())
	for _, c := range cells {
		if c.Count == 0 {
			t.Errorf("expected zero pairs to be omitted, got %+v", c)
		}
		// Guardian never covered workforce
		if c.Source == "Guardian" && c.Topic == "workforce" {
			t.Errorf("unexpected cell %+v", c)
		}
	}
}

func TestHeatmapSorted(t *testing.T) {
	cells := Heatmap(testRecords())
	for i := 1; i < len(cells); i++ {
		prev, cur := cells[i-1], cells[i]
		if cur.Source < prev.Source || (cur.Source == prev.Source && cur.Topic < prev.Topic) {
			t.Fatalf("cells not sorted: %+v after %+v", cur, prev)
		}
	}
}

func TestEmptySelectionPipeline(t *testing.T) {
	// Empty organisation selection: subset is empty, every downstream
	// aggregation returns empty, and the rank shift degrades.
	subset := Filter(testRecords(), NewSelection(nil, []string{"curriculum"}, []string{"pre_election"}))

	if len(subset) != 0 {
		t.Fatalf("expected empty subset, got %d", len(subset))
	}
	if counts := TopicCounts(subset); len(counts) != 0 {
		t.Errorf("expected empty topic counts, got %v", counts)
	}
	if shift := ComputeRankShift(subset); shift != nil {
		t.Errorf("expected insufficient data, got %+v", shift)
	}
}
