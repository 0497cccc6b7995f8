package list

import (
	"fmt"
	"iter"
	"strings"
	"sync/atomic"

	"github.com/benz9527/xlist/lib/infra"
)

const (
	renderSeparator = " -> "
	renderEnd       = "End"
)

// iterationGuard counts the traversals in progress. Any mutation while
// the counter is positive is a programming error and panics.
// Readers holding the wrapper's read lock may enter it concurrently.
type iterationGuard struct {
	name      string
	iterating atomic.Int64
}

func (g *iterationGuard) enter() {
	g.iterating.Add(1)
}

func (g *iterationGuard) leave() {
	g.iterating.Add(-1)
}

func (g *iterationGuard) mustBeIdle(op string) {
	if g.iterating.Load() <= 0 {
		return
	}
	panic(infra.WrapErrorStackWithMessage(
		ErrListMutatedWhileIterating,
		fmt.Sprintf("[%s] %s is not allowed during iteration", g.name, op),
	))
}

// render writes "v1 -> v2 -> End". The values are formatted by %v,
// so fmt.Stringer is used if the element type implements it.
func render[T any](seq iter.Seq[T]) string {
	builder := strings.Builder{}
	for v := range seq {
		_, _ = fmt.Fprintf(&builder, "%v", v)
		builder.WriteString(renderSeparator)
	}
	builder.WriteString(renderEnd)
	return builder.String()
}
