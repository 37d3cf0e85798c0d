package pipeline

import "sync"

// seenSet tracks upstream product ids already accepted for normalization in
// the current run. The same product can legitimately be listed under several
// categories; whichever category is iterated first wins and later sightings
// are dropped before normalization. Safe for concurrent use.
type seenSet struct {
	mu  sync.Mutex
	ids map[string]bool
}

func newSeenSet() *seenSet {
	return &seenSet{ids: make(map[string]bool)}
}

// Add records id and reports whether it was newly added
func (s *seenSet) Add(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids[id] {
		return false
	}
	s.ids[id] = true
	return true
}

// Len returns the number of distinct ids recorded
func (s *seenSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}
