package segbuf

// Tag is the field type used to declare a segment in an @segments struct.
// It carries no data; only the field name matters to the generator.
type Tag struct{}

// Descriptor pairs a tag identity with an element count. The tag lives
// only in the type parameter, so descriptors for different tags are
// different types and cannot be passed in each other's place.
type Descriptor[T any] struct {
	count int
}

// Declare returns a descriptor for a segment of count elements tagged T.
func Declare[T any](count int) Descriptor[T] {
	return Descriptor[T]{count: count}
}

// Count returns the declared element count.
func (d Descriptor[T]) Count() int {
	return d.count
}
