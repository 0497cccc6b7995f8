package list

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/benz9527/xlist/xlog"
)

const (
	tsWorkers       = 16
	tsValuesPerTask = 1000
)

func concurrentPush(t *testing.T, push func(v int)) {
	logger := xlog.NewXLogger(xlog.WithXLoggerLevel(xlog.LogLevelWarn))
	pool, err := ants.NewPool(tsWorkers, ants.WithLogger(xlog.NewAntsXLogger(logger)))
	require.NoError(t, err)

	wg := sync.WaitGroup{}
	for w := 0; w < tsWorkers; w++ {
		wg.Add(1)
		base := w * tsValuesPerTask
		err = pool.Submit(func() {
			defer wg.Done()
			for i := 0; i < tsValuesPerTask; i++ {
				push(base + i)
			}
		})
		require.NoError(t, err)
	}
	wg.Wait()
	require.NoError(t, pool.ReleaseTimeout(3*time.Second))
}

func TestThreadSafeDoublyLinkedList_ConcurrentPush(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dlist := NewThreadSafeDoublyLinkedList[int](nil)
	concurrentPush(t, func(v int) {
		if v%2 == 0 {
			dlist.PushFront(v)
		} else {
			dlist.PushBack(v)
		}
	})
	require.Equal(t, int64(tsWorkers*tsValuesPerTask), dlist.Len())

	drained := make([]int, 0, tsWorkers*tsValuesPerTask)
	for {
		v, ok := dlist.PopBack()
		if !ok {
			break
		}
		drained = append(drained, v)
	}
	sort.Ints(drained)
	require.Equal(t, lo.Range(tsWorkers*tsValuesPerTask), drained)
	require.True(t, dlist.IsEmpty())
}

func TestThreadSafeSinglyLinkedList_ConcurrentPush(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	slist := NewThreadSafeSinglyLinkedList[int](nil)
	concurrentPush(t, slist.PushFront)
	require.Equal(t, int64(tsWorkers*tsValuesPerTask), slist.Len())

	values := slist.ToSlice()
	sort.Ints(values)
	require.Equal(t, lo.Range(tsWorkers*tsValuesPerTask), values)

	slist.Clear()
	require.Equal(t, int64(0), slist.Len())
	_, ok := slist.PopFront()
	require.False(t, ok)
}

func TestThreadSafeLinkedList_MutateInsideTraversal(t *testing.T) {
	slist := NewThreadSafeSinglyLinkedList[int](nil)
	slist.Append(1)
	slist.Append(2)

	// Traversals run on a snapshot, mutating the wrapper is allowed.
	for v := range slist.Iter() {
		slist.Append(v * 10)
	}
	require.Equal(t, []int{1, 2, 10, 20}, slist.ToSlice())
	require.NoError(t, slist.Foreach(func(idx int64, v int) error {
		if idx == 0 {
			slist.PopFront()
		}
		return nil
	}))
	require.Equal(t, "2 -> 10 -> 20 -> End", slist.String())
	v, ok := slist.PopBack()
	require.True(t, ok)
	require.Equal(t, 20, v)
	front, _ := slist.Front()
	require.Equal(t, 2, front)

	dlist := NewThreadSafeDoublyLinkedList(NewDoublyLinkedList[int]())
	dlist.PushBack(1)
	dlist.PushBack(2)
	dlist.PushBack(3)
	backward := make([]int, 0, 3)
	for v := range dlist.Backward() {
		backward = append(backward, v)
		dlist.PopFront()
	}
	require.Equal(t, []int{3, 2, 1}, backward)
	require.True(t, dlist.IsEmpty())

	dlist.PushFront(5)
	back, ok := dlist.Back()
	require.True(t, ok)
	require.Equal(t, 5, back)
	require.NoError(t, dlist.ReverseForeach(func(idx int64, v int) error {
		require.Equal(t, int64(0), idx)
		require.Equal(t, 5, v)
		return nil
	}))
	require.ErrorIs(t, dlist.Foreach(nil), ErrNilCallback)
}
