package vkboot

// Optional is a value that may be absent. The zero value is absent; this
// keeps "not found" distinct from a legitimate zero, which matters for
// queue-family indices where 0 is a valid family.
type Optional[T any] struct {
	value T
	valid bool
}

// Set stores a value and marks it present.
func (o *Optional[T]) Set(value T) {
	o.value = value
	o.valid = true
}

// Get returns the stored value, or the zero value when absent.
func (o Optional[T]) Get() T {
	return o.value
}

// HasValue reports whether a value has been stored.
func (o Optional[T]) HasValue() bool {
	return o.valid
}
