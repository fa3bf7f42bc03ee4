package analytics

import (
	"errors"

	"github.com/Yorkel/AM1-topic-modelling/internal/corpus"
)

// ErrNotFound is returned when an article lookup names a (topic, id) pair
// that is not in the active subset, typically a stale selection after the
// filter changed. Consumers should reset the selection, not crash.
var ErrNotFound = errors.New("article not found")

// ArticleText returns the cleaned text of the one record in the subset
// matching both the topic and the article id.
func ArticleText(subset []corpus.Record, topic, id string) (string, error) {
	for _, r := range subset {
		if r.Topic == topic && r.ID == id {
			return r.Text, nil
		}
	}
	return "", ErrNotFound
}
