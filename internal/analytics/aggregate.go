package analytics

import (
	"sort"
	"time"

	"github.com/Yorkel/AM1-topic-modelling/internal/corpus"
)

// Summary holds the headline metrics for the current subset.
type Summary struct {
	Articles      int `json:"articles"`
	Topics        int `json:"topics"`
	Organisations int `json:"organisations"`
}

// TimePoint is one (date, topic) bucket of the attention series.
type TimePoint struct {
	Date  time.Time `json:"date"`
	Topic string    `json:"topic"`
	Count int       `json:"count"`
}

// HeatCell is one (organisation, topic) bucket of the focus matrix.
type HeatCell struct {
	Source string `json:"source"`
	Topic  string `json:"topic"`
	Count  int    `json:"count"`
}

// Summarize computes the headline metrics over a subset.
func Summarize(subset []corpus.Record) Summary {
	topics := make(map[string]struct{})
	sources := make(map[string]struct{})
	for _, r := range subset {
		topics[r.Topic] = struct{}{}
		sources[r.Source] = struct{}{}
	}
	return Summary{
		Articles:      len(subset),
		Topics:        len(topics),
		Organisations: len(sources),
	}
}

// TopicCounts counts records per topic. Topics absent from the subset are
// absent from the map.
func TopicCounts(subset []corpus.Record) map[string]int {
	counts := make(map[string]int)
	for _, r := range subset {
		counts[r.Topic]++
	}
	return counts
}

// TimeSeries counts records per (date, topic), restricted to the topN topics
// by overall frequency in the subset. Topics outside the top N are dropped
// entirely rather than merged into an "other" bucket; this keeps the series
// cardinality bounded at the cost of undercounting the tail.
// Points are sorted by date, then topic.
func TimeSeries(subset []corpus.Record, topN int) []TimePoint {
	top := toSet(TopK(TopicCounts(subset), topN))

	type key struct {
		date  time.Time
		topic string
	}
	counts := make(map[key]int)
	for _, r := range subset {
		if _, ok := top[r.Topic]; !ok {
			continue
		}
		counts[key{r.Date, r.Topic}]++
	}

	points := make([]TimePoint, 0, len(counts))
	for k, n := range counts {
		points = append(points, TimePoint{Date: k.date, Topic: k.topic, Count: n})
	}
	sort.Slice(points, func(i, j int) bool {
		if !points[i].Date.Equal(points[j].Date) {
			return points[i].Date.Before(points[j].Date)
		}
		return points[i].Topic < points[j].Topic
	})
	return points
}

// Heatmap counts records per (organisation, topic). The result is sparse:
// pairs with no records are omitted, and the consumer zero-fills when it
// needs a dense matrix. Cells are sorted by organisation, then topic.
func Heatmap(subset []corpus.Record) []HeatCell {
	type key struct {
		source string
		topic  string
	}
	counts := make(map[key]int)
	for _, r := range subset {
		counts[key{r.Source, r.Topic}]++
	}

	cells := make([]HeatCell, 0, len(counts))
	for k, n := range counts {
		cells = append(cells, HeatCell{Source: k.source, Topic: k.topic, Count: n})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Source != cells[j].Source {
			return cells[i].Source < cells[j].Source
		}
		return cells[i].Topic < cells[j].Topic
	})
	return cells
}
