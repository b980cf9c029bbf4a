package radar

// Ring is a fixed-capacity circular buffer. When full, Push evicts the
// oldest entry.
type Ring[T any] struct {
	buf   []T
	start int
	count int
}

// NewRing creates a ring with the given capacity.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{
		buf: make([]T, capacity),
	}
}

// Push adds v, overwriting the oldest entry if the ring is full.
func (r *Ring[T]) Push(v T) {
	if r.count < len(r.buf) {
		r.buf[(r.start+r.count)%len(r.buf)] = v
		r.count++
		return
	}
	r.buf[r.start] = v
	r.start = (r.start + 1) % len(r.buf)
}

// Retain keeps only the entries for which keep returns true, preserving
// their order. It returns the number removed.
func (r *Ring[T]) Retain(keep func(T) bool) int {
	w := 0
	for i := 0; i < r.count; i++ {
		v := r.buf[(r.start+i)%len(r.buf)]
		if keep(v) {
			r.buf[(r.start+w)%len(r.buf)] = v
			w++
		}
	}
	removed := r.count - w
	r.count = w
	return removed
}

// Values returns all stored entries, oldest first.
func (r *Ring[T]) Values() []T {
	if r.count == 0 {
		return nil
	}
	result := make([]T, r.count)
	for i := range result {
		result[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return result
}

// Len returns the number of stored entries.
func (r *Ring[T]) Len() int {
	return r.count
}

// Clear empties the ring.
func (r *Ring[T]) Clear() {
	r.start = 0
	r.count = 0
}
