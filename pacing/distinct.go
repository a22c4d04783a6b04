package pacing

// Distinct remembers the last value let through and rejects repeats.
// The first value is always accepted.
type Distinct[T comparable] struct {
	last T
	seen bool
}

// Changed reports whether v differs from the previous accepted value and remembers it.
func (d *Distinct[T]) Changed(v T) bool {
	if d.seen && d.last == v {
		return false
	}
	d.last = v
	d.seen = true
	return true
}

// Forget drops the remembered value so that the next one is accepted.
func (d *Distinct[T]) Forget() {
	var zero T
	d.last = zero
	d.seen = false
}
