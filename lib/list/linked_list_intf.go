package list

import (
	"errors"
	"fmt"
	"iter"
)

// Note that the linked lists are not thread safe.
// Callers sharing a list between goroutines have to serialize the
// access by themselves or use the thread safe wrappers.

var (
	ErrListMutatedWhileIterating = errors.New("linked list mutated while iterating")
	ErrNilCallback               = errors.New("linked list callback is nil")
)

// BasicLinkedList contains the operations shared by the singly and
// the doubly linked list.
type BasicLinkedList[T any] interface {
	fmt.Stringer
	Len() int64
	IsEmpty() bool
	// PushFront inserts value v at the front of the list.
	PushFront(v T)
	// PopFront removes the first element and returns its value.
	// It returns false if the list is empty.
	PopFront() (T, bool)
	// PopBack removes the last element and returns its value.
	// It returns false if the list is empty.
	PopBack() (T, bool)
	// Front returns the value of the first element without removing it.
	Front() (T, bool)
	// Clear releases all the elements one by one.
	Clear()
	// Iter returns a lazy head to tail sequence of the values.
	// Calling Iter again starts a fresh traversal.
	// Mutating the list while ranging over the sequence panics.
	// A sequence consumed by iter.Pull keeps the list in the iterating
	// state until its stop function is called, so stop must be called.
	Iter() iter.Seq[T]
	// Foreach traverses the list l and executes function fn for each element.
	// If fn returns an error, the traversal stops and returns the error.
	Foreach(fn func(idx int64, v T) error) error
	// ToSlice returns the values in head to tail order.
	ToSlice() []T
}

// SinglyLinkedList is a forward only linked list.
// PushFront and PopFront are O(1), Append and PopBack are O(n).
type SinglyLinkedList[T any] interface {
	BasicLinkedList[T]
	// Append inserts value v after the last element.
	Append(v T)
}

// DoublyLinkedList is a linked list with O(1) operations at both ends.
type DoublyLinkedList[T any] interface {
	BasicLinkedList[T]
	// PushBack inserts value v at the back of the list.
	PushBack(v T)
	// Back returns the value of the last element without removing it.
	Back() (T, bool)
	// Backward returns a lazy tail to head sequence of the values.
	// The same iter.Pull rule as Iter applies.
	Backward() iter.Seq[T]
	// ReverseForeach iterates the list in reverse order, calling fn for each element,
	// until either all elements have been visited or fn returns an error.
	ReverseForeach(fn func(idx int64, v T) error) error
}
