package list

import (
	"iter"
	"slices"
	"sync"

	"github.com/benz9527/xlist/lib/infra"
)

var (
	_ SinglyLinkedList[struct{}] = (*threadSafeSinglyLinkedList[struct{}])(nil)
	_ DoublyLinkedList[struct{}] = (*threadSafeDoublyLinkedList[struct{}])(nil)
)

// threadSafeLinkedList serializes the access of the wrapped list by a
// RWMutex. Traversals run over a snapshot taken under the read lock,
// so the callbacks are free to mutate the wrapper itself.
type threadSafeLinkedList[T any, L BasicLinkedList[T]] struct {
	lock sync.RWMutex
	list L
}

func (t *threadSafeLinkedList[T, L]) Len() int64 {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.list.Len()
}

func (t *threadSafeLinkedList[T, L]) IsEmpty() bool {
	return t.Len() == 0
}

func (t *threadSafeLinkedList[T, L]) PushFront(v T) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.list.PushFront(v)
}

func (t *threadSafeLinkedList[T, L]) PopFront() (T, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.list.PopFront()
}

func (t *threadSafeLinkedList[T, L]) PopBack() (T, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.list.PopBack()
}

func (t *threadSafeLinkedList[T, L]) Front() (T, bool) {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.list.Front()
}

func (t *threadSafeLinkedList[T, L]) Clear() {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.list.Clear()
}

func (t *threadSafeLinkedList[T, L]) ToSlice() []T {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.list.ToSlice()
}

func (t *threadSafeLinkedList[T, L]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range t.ToSlice() {
			if !yield(v) {
				return
			}
		}
	}
}

func (t *threadSafeLinkedList[T, L]) Foreach(fn func(idx int64, v T) error) error {
	return foreachSnapshot(t.ToSlice(), fn)
}

func (t *threadSafeLinkedList[T, L]) String() string {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.list.String()
}

type threadSafeSinglyLinkedList[T any] struct {
	threadSafeLinkedList[T, SinglyLinkedList[T]]
}

// NewThreadSafeSinglyLinkedList wraps l, or a new singly linked list if
// l is nil. The wrapped list must not be used directly afterwards.
func NewThreadSafeSinglyLinkedList[T any](l SinglyLinkedList[T]) SinglyLinkedList[T] {
	if l == nil {
		l = NewSinglyLinkedList[T]()
	}
	ts := &threadSafeSinglyLinkedList[T]{}
	ts.list = l
	return ts
}

func (t *threadSafeSinglyLinkedList[T]) Append(v T) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.list.Append(v)
}

type threadSafeDoublyLinkedList[T any] struct {
	threadSafeLinkedList[T, DoublyLinkedList[T]]
}

// NewThreadSafeDoublyLinkedList wraps l, or a new doubly linked list if
// l is nil. The wrapped list must not be used directly afterwards.
func NewThreadSafeDoublyLinkedList[T any](l DoublyLinkedList[T]) DoublyLinkedList[T] {
	if l == nil {
		l = NewDoublyLinkedList[T]()
	}
	ts := &threadSafeDoublyLinkedList[T]{}
	ts.list = l
	return ts
}

func (t *threadSafeDoublyLinkedList[T]) PushBack(v T) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.list.PushBack(v)
}

func (t *threadSafeDoublyLinkedList[T]) Back() (T, bool) {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.list.Back()
}

func (t *threadSafeDoublyLinkedList[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		snapshot := t.ToSlice()
		slices.Reverse(snapshot)
		for _, v := range snapshot {
			if !yield(v) {
				return
			}
		}
	}
}

func (t *threadSafeDoublyLinkedList[T]) ReverseForeach(fn func(idx int64, v T) error) error {
	snapshot := t.ToSlice()
	slices.Reverse(snapshot)
	return foreachSnapshot(snapshot, fn)
}

func foreachSnapshot[T any](snapshot []T, fn func(idx int64, v T) error) error {
	if fn == nil {
		return infra.WrapErrorStackWithMessage(ErrNilCallback, "[thread-safe-linked-list] foreach")
	}
	for i, v := range snapshot {
		if err := fn(int64(i), v); err != nil {
			return err
		}
	}
	return nil
}
