package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordAt(title, day string) UpdateRecord {
	t, _ := time.Parse("2006-01-02", day)
	return UpdateRecord{
		Title:       title,
		PublishedAt: t.UTC().Format(time.RFC3339),
		publishedMs: t.UnixMilli(),
	}
}

func TestMergeSortsDescending(t *testing.T) {
	blog := []UpdateRecord{recordAt("b1", "2024-01-02"), recordAt("b2", "2024-01-01")}
	dev := []UpdateRecord{recordAt("d1", "2024-01-03")}

	merged := Merge(blog, dev)

	require.Len(t, merged, 3)
	assert.Equal(t, []string{"d1", "b1", "b2"}, []string{merged[0].Title, merged[1].Title, merged[2].Title})
}

func TestMergeStableOnTies(t *testing.T) {
	a := []UpdateRecord{recordAt("first", "2024-01-01"), recordAt("second", "2024-01-01")}
	b := []UpdateRecord{recordAt("third", "2024-01-01")}

	merged := Merge(a, b)

	assert.Equal(t, "first", merged[0].Title)
	assert.Equal(t, "second", merged[1].Title)
	assert.Equal(t, "third", merged[2].Title)
}

func TestMergeEmptyInputs(t *testing.T) {
	assert.Empty(t, Merge())
	assert.Empty(t, Merge(nil, []UpdateRecord{}))
}
