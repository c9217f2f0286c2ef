package engine

// VisitedSet records every state seen during one simulation.
type VisitedSet struct {
	seen map[string]struct{}
	buf  []byte
}

// NewVisitedSet returns an empty set backed by a pooled map
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{
		seen: getSeen(),
		buf:  make([]byte, 0, FullDeckSize+8),
	}
}

// Insert adds s and reports whether it was new. A false return means
// the state has been seen before in this simulation.
func (v *VisitedSet) Insert(s *State) bool {
	v.buf = s.AppendKey(v.buf[:0])
	if _, ok := v.seen[string(v.buf)]; ok {
		return false
	}
	v.seen[string(v.buf)] = struct{}{}
	return true
}

// Contains reports whether s has been inserted
func (v *VisitedSet) Contains(s *State) bool {
	v.buf = s.AppendKey(v.buf[:0])
	_, ok := v.seen[string(v.buf)]
	return ok
}

// Len returns the number of distinct states recorded
func (v *VisitedSet) Len() int {
	return len(v.seen)
}

// Release hands the backing map back to the pool. The set must not be
// used afterwards.
func (v *VisitedSet) Release() {
	if v.seen != nil {
		putSeen(v.seen)
		v.seen = nil
	}
}
