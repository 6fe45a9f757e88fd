package feed

import "sort"

// Merge concatenates independently-mapped batches and sorts the union
// descending by publish time. The sort is stable: records with equal
// timestamps keep their relative input order, so fetch completion order
// never leaks into the response.
func Merge(batches ...[]UpdateRecord) []UpdateRecord {
	total := 0
	for _, b := range batches {
		total += len(b)
	}

	merged := make([]UpdateRecord, 0, total)
	for _, b := range batches {
		merged = append(merged, b...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].publishedMs > merged[j].publishedMs
	})
	return merged
}
