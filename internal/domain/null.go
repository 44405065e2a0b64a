package domain

// Null is a patch value for a nullable field. A nil *Null leaves the field
// untouched; a Null whose V is nil clears it.
type Null[T any] struct {
	V *T
}

// NullOf sets a nullable field to v.
func NullOf[T any](v T) *Null[T] {
	return &Null[T]{V: &v}
}

// NullClear clears a nullable field.
func NullClear[T any]() *Null[T] {
	return &Null[T]{}
}

// Ptr returns a fresh pointer to the held value, or nil.
func (n *Null[T]) Ptr() *T {
	if n == nil || n.V == nil {
		return nil
	}
	v := *n.V
	return &v
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
