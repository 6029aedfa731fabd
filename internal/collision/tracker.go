// Package collision tracks the content identity of batch inputs so repeated
// content can be reported.
package collision

import (
	"github.com/arloliu/squeeze/errs"
)

type entry struct {
	path string
	size int64
}

// Tracker maps content IDs to the first input that produced them.
//
// Two inputs are duplicates when both their ID and their size match. Equal
// IDs with different sizes are a hash collision: the second input is
// treated as new content and HasCollision reports true.
//
// "First" means first in Track order, so callers that want a stable answer
// must track inputs in a fixed order. A Tracker is not safe for concurrent
// use.
type Tracker struct {
	firstByID    map[uint64]entry
	paths        map[string]struct{}
	duplicates   int
	hasCollision bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		firstByID: make(map[uint64]entry),
		paths:     make(map[string]struct{}),
	}
}

// Track records path with its content id and size.
//
// It returns the path of an earlier input with identical content, or an
// empty string when the content has not been seen. Returns
// errs.ErrInvalidOption for an empty path and errs.ErrDuplicateInput when
// path was already tracked.
func (t *Tracker) Track(path string, id uint64, size int64) (string, error) {
	if path == "" {
		return "", errs.ErrInvalidOption
	}
	if _, ok := t.paths[path]; ok {
		return "", errs.ErrDuplicateInput
	}
	t.paths[path] = struct{}{}

	first, exists := t.firstByID[id]
	if !exists {
		t.firstByID[id] = entry{path: path, size: size}
		return "", nil
	}
	if first.size != size {
		t.hasCollision = true
		return "", nil
	}
	t.duplicates++

	return first.path, nil
}

// HasCollision reports whether two inputs of different size shared an ID.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Duplicates returns how many tracked inputs repeated earlier content.
func (t *Tracker) Duplicates() int {
	return t.duplicates
}
