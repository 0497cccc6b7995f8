package list

import (
	"iter"

	"github.com/benz9527/xlist/lib/infra"
)

var _ DoublyLinkedList[struct{}] = (*doublyLinkedList[struct{}])(nil) // Type check assertion

type nodeElementInListStatus uint8

const (
	emptyList nodeElementInListStatus = iota
	theOnlyOne
	moreThanOne
)

// doublyLinkedList owns its nodes through head and the next links.
// The prev links and tail only identify nodes, they are cleared
// together with the owning link whenever a node is detached.
type doublyLinkedList[T any] struct {
	head  *doublyNode[T]
	tail  *doublyNode[T]
	len   int64
	guard iterationGuard
}

func NewDoublyLinkedList[T any]() DoublyLinkedList[T] {
	return &doublyLinkedList[T]{
		guard: iterationGuard{name: "doubly-linked-list"},
	}
}

func (l *doublyLinkedList[T]) status() nodeElementInListStatus {
	switch {
	case l == nil || l.head == nil || l.tail == nil:
		return emptyList
	case l.head == l.tail:
		return theOnlyOne
	default:
	}
	return moreThanOne
}

func (l *doublyLinkedList[T]) Len() int64 {
	if l == nil {
		return 0
	}
	return l.len
}

func (l *doublyLinkedList[T]) IsEmpty() bool {
	return l.Len() == 0
}

func (l *doublyLinkedList[T]) PushFront(v T) {
	l.guard.mustBeIdle("push front")
	e := newDoublyNode(v)
	if l.status() == emptyList {
		l.head, l.tail = e, e
	} else {
		e.next = l.head
		l.head.prev = e
		l.head = e
	}
	l.len++
}

func (l *doublyLinkedList[T]) PushBack(v T) {
	l.guard.mustBeIdle("push back")
	e := newDoublyNode(v)
	if l.status() == emptyList {
		l.head, l.tail = e, e
	} else {
		l.tail.next = e
		e.prev = l.tail
		l.tail = e
	}
	l.len++
}

func (l *doublyLinkedList[T]) PopFront() (T, bool) {
	var zero T
	status := l.status()
	if status == emptyList {
		return zero, false
	}
	l.guard.mustBeIdle("pop front")

	head := l.head
	switch status {
	case theOnlyOne:
		l.head, l.tail = nil, nil
	default:
		l.head = head.next
		l.head.prev = nil
	}
	l.decrease()
	return head.release(), true
}

func (l *doublyLinkedList[T]) PopBack() (T, bool) {
	var zero T
	status := l.status()
	if status == emptyList {
		return zero, false
	}
	l.guard.mustBeIdle("pop back")

	tail := l.tail
	switch status {
	case theOnlyOne:
		l.head, l.tail = nil, nil
	default:
		l.tail = tail.prev
		l.tail.next = nil
	}
	l.decrease()
	return tail.release(), true
}

func (l *doublyLinkedList[T]) Front() (T, bool) {
	var zero T
	if l.status() == emptyList {
		return zero, false
	}
	return l.head.value, true
}

func (l *doublyLinkedList[T]) Back() (T, bool) {
	var zero T
	if l.status() == emptyList {
		return zero, false
	}
	return l.tail.value, true
}

func (l *doublyLinkedList[T]) Clear() {
	if l == nil {
		return
	}
	l.guard.mustBeIdle("clear")
	for l.head != nil {
		e := l.head
		l.head = e.next
		e.release()
	}
	l.tail = nil
	l.len = 0
}

func (l *doublyLinkedList[T]) decrease() {
	if l.len > 0 {
		l.len--
	}
}

func (l *doublyLinkedList[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		if l == nil {
			return
		}
		l.guard.enter()
		defer l.guard.leave()
		for e := l.head; e != nil; e = e.next {
			if !yield(e.value) {
				return
			}
		}
	}
}

func (l *doublyLinkedList[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		if l == nil {
			return
		}
		l.guard.enter()
		defer l.guard.leave()
		for e := l.tail; e != nil; e = e.prev {
			if !yield(e.value) {
				return
			}
		}
	}
}

func (l *doublyLinkedList[T]) Foreach(fn func(idx int64, v T) error) error {
	return l.foreach(l.Iter(), fn)
}

func (l *doublyLinkedList[T]) ReverseForeach(fn func(idx int64, v T) error) error {
	return l.foreach(l.Backward(), fn)
}

func (l *doublyLinkedList[T]) foreach(seq iter.Seq[T], fn func(idx int64, v T) error) error {
	if fn == nil {
		return infra.WrapErrorStackWithMessage(ErrNilCallback, "[doubly-linked-list] foreach")
	}
	var idx int64
	for v := range seq {
		if err := fn(idx, v); err != nil {
			return err
		}
		idx++
	}
	return nil
}

func (l *doublyLinkedList[T]) ToSlice() []T {
	values := make([]T, 0, l.Len())
	for v := range l.Iter() {
		values = append(values, v)
	}
	return values
}

func (l *doublyLinkedList[T]) String() string {
	return render(l.Iter())
}
