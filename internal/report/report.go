// Package report composes a markdown digest of the current analytics view:
// headline metrics, the election rank shift, the top-topics table, and the
// organisation focus. The digest is what `discourse report` writes and what
// the server renders as HTML.
package report

import (
	"fmt"
	"strings"

	"github.com/Yorkel/AM1-topic-modelling/internal/analytics"
	"github.com/Yorkel/AM1-topic-modelling/internal/corpus"
)

// Params bounds the digest tables.
type Params struct {
	ChartTopics int
	TableTopics int
}

// Compose builds the markdown digest for a filtered subset.
func Compose(subset []corpus.Record, params Params) string {
	var b strings.Builder

	b.WriteString("# Public Conversation on Education\n\n")

	summary := analytics.Summarize(subset)
	b.WriteString("## Agenda snapshot\n\n")
	fmt.Fprintf(&b, "- Articles: %d\n", summary.Articles)
	fmt.Fprintf(&b, "- Topics: %d\n", summary.Topics)
	fmt.Fprintf(&b, "- Organisations: %d\n\n", summary.Organisations)

	writeShift(&b, subset)
	writeTopTopics(&b, subset, params.TableTopics)
	writeFocus(&b, subset)

	return b.String()
}

func writeShift(b *strings.Builder, subset []corpus.Record) {
	b.WriteString("## Election shift\n\n")

	shift := analytics.ComputeRankShift(subset)
	if shift == nil {
		b.WriteString("Both pre- and post-election articles are needed to rank the shift.\n\n")
		return
	}

	fmt.Fprintf(b, "Biggest riser: **%s** (%+d)\n\n", displayTopic(shift.Riser), shift.Change)
	b.WriteString("| Topic | Pre | Post | Rank pre | Rank post | Change |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, row := range shift.Table {
		fmt.Fprintf(b, "| %s | %d | %d | %d | %d | %+d |\n",
			displayTopic(row.Topic), row.PreCount, row.PostCount, row.PreRank, row.PostRank, row.Change)
	}
	b.WriteString("\n")
}

func writeTopTopics(b *strings.Builder, subset []corpus.Record, k int) {
	b.WriteString("## Top topics\n\n")

	counts := analytics.TopicCounts(subset)
	top := analytics.TopK(counts, k)
	if len(top) == 0 {
		b.WriteString("No articles in the current selection.\n\n")
		return
	}

	b.WriteString("| Topic | Articles |\n")
	b.WriteString("|---|---|\n")
	for _, topic := range top {
		fmt.Fprintf(b, "| %s | %d |\n", displayTopic(topic), counts[topic])
	}
	b.WriteString("\n")
}

func writeFocus(b *strings.Builder, subset []corpus.Record) {
	b.WriteString("## Organisational focus\n\n")

	cells := analytics.Heatmap(subset)
	if len(cells) == 0 {
		b.WriteString("No articles in the current selection.\n\n")
		return
	}

	// One line per organisation, topics with counts in brackets.
	var current string
	var parts []string
	flush := func() {
		if current != "" {
			fmt.Fprintf(b, "- **%s**: %s\n", current, strings.Join(parts, ", "))
		}
	}
	for _, c := range cells {
		if c.Source != current {
			flush()
			current = c.Source
			parts = parts[:0]
		}
		parts = append(parts, fmt.Sprintf("%s (%d)", displayTopic(c.Topic), c.Count))
	}
	flush()
	b.WriteString("\n")
}

// displayTopic turns a snake_case topic label into a title-cased phrase.
func displayTopic(topic string) string {
	words := strings.Split(topic, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
