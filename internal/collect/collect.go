// Package collect stages raw articles from organisation RSS/Atom feeds.
// Staged articles are later full-text fetched and exported for the external
// labeling pipeline; nothing here touches the labeled analytics corpus.
package collect

import (
	"log"

	"github.com/Yorkel/AM1-topic-modelling/internal/config"
	"github.com/Yorkel/AM1-topic-modelling/internal/database"
)

// Result holds the results of a collection run.
type Result struct {
	TotalFound  int
	NewArticles int
	Duplicates  int
	Sources     map[string]int
}

// Collector stages articles from the configured organisation feeds.
type Collector struct {
	db         *database.DB
	feedParser *FeedParser
	daysBack   int
}

// NewCollector creates a new article collector.
func NewCollector(cfg *config.Config, db *database.DB, daysBack int) *Collector {
	c := &Collector{
		db:       db,
		daysBack: daysBack,
	}

	if len(cfg.Sources.Feeds) > 0 {
		feeds := make([]FeedConfig, len(cfg.Sources.Feeds))
		for i, f := range cfg.Sources.Feeds {
			feeds[i] = FeedConfig{URL: f.URL, Name: f.Name}
		}
		c.feedParser = NewFeedParser(feeds)
	}

	return c
}

// Collect stages articles from all configured feeds.
func (c *Collector) Collect() *Result {
	r := &Result{Sources: make(map[string]int)}

	if c.feedParser == nil {
		log.Println("No feeds configured")
		return r
	}

	log.Println("Collecting from organisation feeds...")
	entries := c.feedParser.ParseAll(c.daysBack)
	r.TotalFound = len(entries)

	for _, entry := range entries {
		var pubDate, content *string
		if entry.PublishedDate != "" {
			pubDate = &entry.PublishedDate
		}
		if entry.Content != "" {
			content = &entry.Content
		}

		id, _ := c.db.InsertArticle(entry.URL, entry.Title, entry.Organisation, pubDate, content)
		if id > 0 {
			r.NewArticles++
			r.Sources[entry.Organisation]++
		} else {
			r.Duplicates++
		}
	}

	log.Printf("Collection complete: %d found, %d new, %d duplicates", r.TotalFound, r.NewArticles, r.Duplicates)
	return r
}
