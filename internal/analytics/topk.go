package analytics

import "sort"

// TopK returns the k keys with the largest counts, descending. Equal counts
// are ordered alphabetically so the result is stable across runs. k <= 0
// returns nothing; k beyond the key count returns every key.
func TopK(counts map[string]int, k int) []string {
	if k <= 0 || len(counts) == 0 {
		return nil
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	if k < len(keys) {
		keys = keys[:k]
	}
	return keys
}
