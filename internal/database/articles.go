package database

import (
	"database/sql"
)

// InsertArticle inserts a staged article. Returns the ID on success, 0 if the
// URL is already staged.
func (db *DB) InsertArticle(url, title, source string, publishedDate, content *string) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO staged_articles (url, title, source, published_date, content)
		VALUES (?, ?, ?, ?, ?)`,
		url, title, source, publishedDate, content,
	)
	if err != nil {
		// Duplicate URL constraint
		return 0, nil //nolint: nilerr
	}
	return result.LastInsertId()
}

// GetAllArticles returns every staged article, ordered by collected_at DESC.
func (db *DB) GetAllArticles() ([]StagedArticle, error) {
	rows, err := db.conn.Query(
		`SELECT id, url, title, source, published_date, content, content_fetched, exported, collected_at
		FROM staged_articles ORDER BY collected_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// GetArticlesNeedingFetch returns staged articles with empty content that
// haven't had a fetch attempt yet.
func (db *DB) GetArticlesNeedingFetch() ([]StagedArticle, error) {
	rows, err := db.conn.Query(
		`SELECT id, url, title, source, published_date, content, content_fetched, exported, collected_at
		FROM staged_articles
		WHERE (content IS NULL OR content = '') AND content_fetched = 0
		ORDER BY collected_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// GetUnexportedArticles returns staged articles with content that haven't
// been written to a labeling CSV yet.
func (db *DB) GetUnexportedArticles() ([]StagedArticle, error) {
	rows, err := db.conn.Query(
		`SELECT id, url, title, source, published_date, content, content_fetched, exported, collected_at
		FROM staged_articles
		WHERE content IS NOT NULL AND content != '' AND exported = 0
		ORDER BY collected_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// MarkArticlesExported flags the given staged articles as exported.
func (db *DB) MarkArticlesExported(ids []int64) error {
	for _, id := range ids {
		if _, err := db.conn.Exec(
			"UPDATE staged_articles SET exported = 1 WHERE id = ?", id,
		); err != nil {
			return err
		}
	}
	return nil
}

// UpdateArticleContent updates staged article content after fetching.
func (db *DB) UpdateArticleContent(articleID int64, content *string) error {
	_, err := db.conn.Exec(
		"UPDATE staged_articles SET content = ?, content_fetched = 1 WHERE id = ?",
		content, articleID,
	)
	return err
}

// MarkArticleFetchAttempted marks that we tried to fetch content.
func (db *DB) MarkArticleFetchAttempted(articleID int64) error {
	_, err := db.conn.Exec(
		"UPDATE staged_articles SET content_fetched = 1 WHERE id = ?", articleID,
	)
	return err
}

// GetArticleByID returns a single staged article by ID, nil if absent.
func (db *DB) GetArticleByID(articleID int64) (*StagedArticle, error) {
	row := db.conn.QueryRow(
		`SELECT id, url, title, source, published_date, content, content_fetched, exported, collected_at
		FROM staged_articles WHERE id = ?`, articleID,
	)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetStats returns aggregate staging statistics.
func (db *DB) GetStats() (*Stats, error) {
	s := &Stats{}
	queries := []struct {
		dst   *int
		query string
	}{
		{&s.TotalArticles, "SELECT COUNT(*) FROM staged_articles"},
		{&s.WithContent, "SELECT COUNT(*) FROM staged_articles WHERE content IS NOT NULL AND content != ''"},
		{&s.AwaitingFetch, "SELECT COUNT(*) FROM staged_articles WHERE (content IS NULL OR content = '') AND content_fetched = 0"},
		{&s.Exported, "SELECT COUNT(*) FROM staged_articles WHERE exported = 1"},
		{&s.DistinctSources, "SELECT COUNT(DISTINCT source) FROM staged_articles"},
	}
	for _, q := range queries {
		if err := db.conn.QueryRow(q.query).Scan(q.dst); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func scanArticles(rows *sql.Rows) ([]StagedArticle, error) {
	var articles []StagedArticle
	for rows.Next() {
		var a StagedArticle
		var fetched, exported int
		if err := rows.Scan(&a.ID, &a.URL, &a.Title, &a.Source, &a.PublishedDate,
			&a.Content, &fetched, &exported, &a.CollectedAt); err != nil {
			return nil, err
		}
		a.ContentFetched = fetched != 0
		a.Exported = exported != 0
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func scanArticle(row *sql.Row) (*StagedArticle, error) {
	var a StagedArticle
	var fetched, exported int
	if err := row.Scan(&a.ID, &a.URL, &a.Title, &a.Source, &a.PublishedDate,
		&a.Content, &fetched, &exported, &a.CollectedAt); err != nil {
		return nil, err
	}
	a.ContentFetched = fetched != 0
	a.Exported = exported != 0
	return &a, nil
}
