package listing

import (
	"slices"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
)

// List is the in-memory result list. Items keep page order; knownIDs shadows
// them for constant-time duplicate detection.
type List struct {
	items    []model.Dog
	knownIDs map[int64]struct{}
	hasMore  bool
}

// NewList returns an empty list.
func NewList() *List {
	return &List{knownIDs: make(map[int64]struct{})}
}

// Replace discards the current contents and rebuilds them from page.
// Duplicate ids inside page keep their first occurrence.
func (l *List) Replace(page []model.Dog, limit int) {
	l.items = make([]model.Dog, 0, len(page))
	l.knownIDs = make(map[int64]struct{}, len(page))
	l.add(page)
	l.hasMore = pageIsFull(page, limit)
}

// Append adds the dogs from page whose id is not yet present, in arrival
// order, and returns how many were added. Existing items are never moved.
func (l *List) Append(page []model.Dog, limit int) int {
	added := l.add(page)
	l.hasMore = pageIsFull(page, limit)
	return added
}

func (l *List) add(page []model.Dog) int {
	added := 0
	for _, d := range page {
		if _, seen := l.knownIDs[d.ID]; seen {
			continue
		}
		l.knownIDs[d.ID] = struct{}{}
		l.items = append(l.items, d)
		added++
	}
	return added
}

// pageIsFull is the has-more heuristic: the backend returns a full page while
// more results remain. A final page that happens to be exactly full reports
// true until the next fetch comes back empty.
func pageIsFull(page []model.Dog, limit int) bool {
	return limit > 0 && len(page) == limit
}

// Items returns a copy of the current items.
func (l *List) Items() []model.Dog {
	return slices.Clone(l.items)
}

// Len returns the number of items.
func (l *List) Len() int {
	return len(l.items)
}

// Contains reports whether a dog with the given id is present.
func (l *List) Contains(id int64) bool {
	_, ok := l.knownIDs[id]
	return ok
}

// HasMore reports whether the last reconciled page was full.
func (l *List) HasMore() bool {
	return l.hasMore
}
