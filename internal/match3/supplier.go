package match3

import "errors"

// ErrSupplierExhausted is returned by QueueSupplier once every value was handed out.
var ErrSupplierExhausted = errors.New("match3: supplier exhausted")

// Supplier produces new tiles on demand. The engine pulls from it when a
// board is created and whenever a cascade refills empty cells.
// Implementations may keep their own state (an RNG cursor) but must not
// touch the board.
type Supplier[T comparable] interface {
	Next() (T, error)
}

// SupplierFunc adapts a plain function to the Supplier interface.
type SupplierFunc[T comparable] func() (T, error)

// Next calls f.
func (f SupplierFunc[T]) Next() (T, error) {
	return f()
}

// QueueSupplier hands out a fixed sequence of values in order.
type QueueSupplier[T comparable] struct {
	values []T
	next   int
}

// NewQueueSupplier creates a supplier over a copy of values.
func NewQueueSupplier[T comparable](values ...T) *QueueSupplier[T] {
	v := make([]T, len(values))
	copy(v, values)
	return &QueueSupplier[T]{values: v}
}

// Next returns the next queued value.
func (q *QueueSupplier[T]) Next() (T, error) {
	if q.next >= len(q.values) {
		var zero T
		return zero, ErrSupplierExhausted
	}
	v := q.values[q.next]
	q.next++
	return v, nil
}

// Remaining returns how many values are still queued.
func (q *QueueSupplier[T]) Remaining() int {
	return len(q.values) - q.next
}

// Consumed returns how many values were handed out.
func (q *QueueSupplier[T]) Consumed() int {
	return q.next
}
