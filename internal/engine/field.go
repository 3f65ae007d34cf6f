package engine

// Field is a value that a collaborator either supplied or could not supply.
// It replaces loosely-typed, maybe-missing attributes with an explicit marker.
type Field[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Field[T] {
	return Field[T]{value: v, ok: true}
}

// Unavailable returns an absent value.
func Unavailable[T any]() Field[T] {
	return Field[T]{}
}

// Get returns the value and whether it is present.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.ok
}

// Present reports whether the value was supplied.
func (f Field[T]) Present() bool {
	return f.ok
}

// Or returns the value, or fallback when absent.
func (f Field[T]) Or(fallback T) T {
	if f.ok {
		return f.value
	}
	return fallback
}
