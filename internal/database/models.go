package database

// StagedArticle is a raw collected article awaiting labeling.
type StagedArticle struct {
	ID             int64
	URL            string
	Title          string
	Source         string
	PublishedDate  *string
	Content        *string
	ContentFetched bool
	Exported       bool
	CollectedAt    *string
}

// Stats contains aggregate staging statistics.
type Stats struct {
	TotalArticles   int
	WithContent     int
	AwaitingFetch   int
	Exported        int
	DistinctSources int
}
