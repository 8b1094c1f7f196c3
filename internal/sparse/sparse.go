// Package sparse provides a set of small unsigned integers with O(1) insert,
// membership and clear, used to track which automaton states an evaluation
// generation already holds.
package sparse

// Set holds values in [0, capacity). Iteration follows insertion order.
type Set struct {
	sparse []uint32 // value -> index in dense
	dense  []uint32
}

// New returns an empty set for values below capacity.
func New(capacity int) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value and reports whether it was absent.
// Panics if value >= capacity.
func (s *Set) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	//nolint:gosec // len(dense) never exceeds capacity, which fits in uint32
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

func (s *Set) Contains(value uint32) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Clear empties the set without touching the sparse array.
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

func (s *Set) Len() int {
	return len(s.dense)
}

// Values returns the members in insertion order. The slice is only valid
// until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense
}
