package analytics

import (
	"sort"

	"github.com/Yorkel/AM1-topic-modelling/internal/corpus"
)

// The rank shift always compares these two period tags. Corpora labeled with
// other period values degrade to the insufficient-data result instead of
// guessing a pair.
const (
	PeriodPre  = "pre_election"
	PeriodPost = "post_election"
)

// TopicRank is one row of the election rank table.
type TopicRank struct {
	Topic     string `json:"topic"`
	PreCount  int    `json:"pre_count"`
	PostCount int    `json:"post_count"`
	PreRank   int    `json:"pre_rank"`
	PostRank  int    `json:"post_rank"`
	Change    int    `json:"change"`
}

// RankShift describes how topic standings moved across the election.
// Riser is the topic whose rank improved the most (Change > 0 means it moved
// toward rank 1); Change may still be negative or zero when nothing rose.
type RankShift struct {
	Riser  string      `json:"riser"`
	Change int         `json:"change"`
	Table  []TopicRank `json:"table"`
}

// ComputeRankShift ranks topics by article count within the pre- and
// post-election periods and reports the biggest riser. The topic universe is
// every topic present in either period, zero-filled on the missing side so
// both rankings cover the same rows. Returns nil when the subset lacks
// records from either period; callers branch on that rather than on an error.
func ComputeRankShift(subset []corpus.Record) *RankShift {
	pre := make(map[string]int)
	post := make(map[string]int)
	for _, r := range subset {
		switch r.Period {
		case PeriodPre:
			pre[r.Topic]++
		case PeriodPost:
			post[r.Topic]++
		}
	}
	if len(pre) == 0 || len(post) == 0 {
		return nil
	}

	// Pivot: union of topics, alphabetical. The alphabetical order is also
	// the tie-break for the riser, so it must stay canonical.
	topicSet := make(map[string]struct{}, len(pre)+len(post))
	for t := range pre {
		topicSet[t] = struct{}{}
	}
	for t := range post {
		topicSet[t] = struct{}{}
	}
	topics := make([]string, 0, len(topicSet))
	for t := range topicSet {
		topics = append(topics, t)
	}
	sort.Strings(topics)

	table := make([]TopicRank, len(topics))
	for i, t := range topics {
		table[i] = TopicRank{Topic: t, PreCount: pre[t], PostCount: post[t]}
	}
	for i := range table {
		table[i].PreRank = competitionRank(table[i].PreCount, table, func(r TopicRank) int { return r.PreCount })
		table[i].PostRank = competitionRank(table[i].PostCount, table, func(r TopicRank) int { return r.PostCount })
		table[i].Change = table[i].PreRank - table[i].PostRank
	}

	shift := &RankShift{Table: table}
	for _, row := range table {
		if shift.Riser == "" || row.Change > shift.Change {
			shift.Riser = row.Topic
			shift.Change = row.Change
		}
	}
	return shift
}

// competitionRank is standard competition ranking: 1 + the number of rows
// with a strictly greater count. Ties share a rank.
func competitionRank(count int, table []TopicRank, key func(TopicRank) int) int {
	rank := 1
	for _, row := range table {
		if key(row) > count {
			rank++
		}
	}
	return rank
}
