package list

type singlyNode[T any] struct {
	next  *singlyNode[T] // owning link, nil at the end of the list
	value T
}

func newSinglyNode[T any](v T, next *singlyNode[T]) *singlyNode[T] {
	return &singlyNode[T]{
		value: v,
		next:  next,
	}
}

// release drops the node's links and value, so a removed node keeps
// neither its successor nor the caller's value reachable.
func (n *singlyNode[T]) release() T {
	v := n.value
	var zero T
	n.value = zero
	n.next = nil
	return v
}

type doublyNode[T any] struct {
	next  *doublyNode[T] // owning forward link
	prev  *doublyNode[T] // observational back link
	value T
}

func newDoublyNode[T any](v T) *doublyNode[T] {
	return &doublyNode[T]{
		value: v,
	}
}

func (n *doublyNode[T]) release() T {
	v := n.value
	var zero T
	n.value = zero
	n.next, n.prev = nil, nil
	return v
}
