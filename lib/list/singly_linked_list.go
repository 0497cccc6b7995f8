package list

import (
	"iter"

	"github.com/benz9527/xlist/lib/infra"
)

var _ SinglyLinkedList[struct{}] = (*singlyLinkedList[struct{}])(nil) // Type check assertion

type singlyLinkedList[T any] struct {
	head  *singlyNode[T]
	len   int64
	guard iterationGuard
}

func NewSinglyLinkedList[T any]() SinglyLinkedList[T] {
	return &singlyLinkedList[T]{
		guard: iterationGuard{name: "singly-linked-list"},
	}
}

func (l *singlyLinkedList[T]) Len() int64 {
	if l == nil {
		return 0
	}
	return l.len
}

func (l *singlyLinkedList[T]) IsEmpty() bool {
	return l.Len() == 0
}

func (l *singlyLinkedList[T]) PushFront(v T) {
	l.guard.mustBeIdle("push front")
	l.head = newSinglyNode(v, l.head)
	l.len++
}

func (l *singlyLinkedList[T]) Append(v T) {
	l.guard.mustBeIdle("append")
	cursor := &l.head
	for *cursor != nil {
		cursor = &(*cursor).next
	}
	*cursor = newSinglyNode[T](v, nil)
	l.len++
}

func (l *singlyLinkedList[T]) PopFront() (T, bool) {
	var zero T
	if l == nil || l.head == nil {
		return zero, false
	}
	l.guard.mustBeIdle("pop front")

	head := l.head
	l.head = head.next
	l.decrease()
	return head.release(), true
}

// PopBack walks a cursor over the owning links until it points at the
// link holding the last node. For a single node list the cursor is the
// head link itself.
func (l *singlyLinkedList[T]) PopBack() (T, bool) {
	var zero T
	if l == nil || l.head == nil {
		return zero, false
	}
	l.guard.mustBeIdle("pop back")

	cursor := &l.head
	for (*cursor).next != nil {
		cursor = &(*cursor).next
	}
	last := *cursor
	*cursor = nil
	l.decrease()
	return last.release(), true
}

func (l *singlyLinkedList[T]) Front() (T, bool) {
	var zero T
	if l == nil || l.head == nil {
		return zero, false
	}
	return l.head.value, true
}

// Clear unlinks the nodes one by one instead of dropping the head only,
// so no removed node keeps the rest of the chain reachable.
func (l *singlyLinkedList[T]) Clear() {
	if l == nil {
		return
	}
	l.guard.mustBeIdle("clear")
	for l.head != nil {
		n := l.head
		l.head = n.next
		n.release()
	}
	l.len = 0
}

func (l *singlyLinkedList[T]) decrease() {
	if l.len > 0 {
		l.len--
	}
}

func (l *singlyLinkedList[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		if l == nil {
			return
		}
		l.guard.enter()
		defer l.guard.leave()
		for n := l.head; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

func (l *singlyLinkedList[T]) Foreach(fn func(idx int64, v T) error) error {
	if fn == nil {
		return infra.WrapErrorStackWithMessage(ErrNilCallback, "[singly-linked-list] foreach")
	}
	var idx int64
	for v := range l.Iter() {
		if err := fn(idx, v); err != nil {
			return err
		}
		idx++
	}
	return nil
}

func (l *singlyLinkedList[T]) ToSlice() []T {
	values := make([]T, 0, l.Len())
	for v := range l.Iter() {
		values = append(values, v)
	}
	return values
}

func (l *singlyLinkedList[T]) String() string {
	return render(l.Iter())
}
