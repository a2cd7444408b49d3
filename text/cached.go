package text

// Cached holds a derived value together with its validity. Mutators of the
// owning object call Invalidate; readers call Get or GetOr.
type Cached[T any] struct {
	value T
	valid bool
}

// Get returns the value and whether it is valid
func (c *Cached[T]) Get() (T, bool) {
	return c.value, c.valid
}

// Set stores v and marks the cache valid
func (c *Cached[T]) Set(v T) {
	c.value = v
	c.valid = true
}

// Invalidate marks the cache stale and drops the value
func (c *Cached[T]) Invalidate() {
	var zero T
	c.value = zero
	c.valid = false
}

// Valid reports whether the cache holds a current value
func (c *Cached[T]) Valid() bool {
	return c.valid
}

// GetOr returns the cached value, computing and storing it when stale
func (c *Cached[T]) GetOr(compute func() T) T {
	if !c.valid {
		c.Set(compute())
	}
	return c.value
}
