package opscript

import (
	"context"
	"io"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xlist/lib/infra"
	"github.com/benz9527/xlist/lib/list"
	"github.com/benz9527/xlist/xlog"
)

type Kind string

const (
	KindSingly Kind = "singly"
	KindDoubly Kind = "doubly"
)

// EmptyOutput is printed by pops and peeks on an empty list.
const EmptyOutput = "<empty>"

func ParseKind(s string) (Kind, error) {
	switch kind := Kind(strings.ToLower(strings.TrimSpace(s))); kind {
	case KindSingly, KindDoubly:
		return kind, nil
	default:
	}
	return "", infra.NewErrorStack("[opscript] unknown list kind " + strconv.Quote(s))
}

// Runner executes operation scripts against one list. The list lives
// as long as the runner, so consecutive Run calls continue from the
// previous state.
type Runner struct {
	kind       Kind
	list       list.BasicLinkedList[string]
	pushBack   func(v string)
	peekBack   func() (string, bool)
	logger     xlog.XLogger
	meter      metric.MeterProvider
	threadSafe bool
	stats      *runnerStats
}

type RunnerOption func(r *Runner) error

func WithRunnerLogger(logger xlog.XLogger) RunnerOption {
	return func(r *Runner) error {
		if logger == nil {
			return infra.NewErrorStack("[opscript] nil logger")
		}
		r.logger = logger.Named("opscript")
		return nil
	}
}

func WithRunnerMeterProvider(mp metric.MeterProvider) RunnerOption {
	return func(r *Runner) error {
		if mp == nil {
			return infra.NewErrorStack("[opscript] nil meter provider")
		}
		r.meter = mp
		return nil
	}
}

// WithRunnerThreadSafeList wraps the list by the mutex guarded wrapper.
func WithRunnerThreadSafeList() RunnerOption {
	return func(r *Runner) error {
		r.threadSafe = true
		return nil
	}
}

func NewRunner(kind Kind, opts ...RunnerOption) (*Runner, error) {
	r := &Runner{kind: kind}
	for _, o := range opts {
		if o == nil {
			continue
		}
		if err := o(r); err != nil {
			return nil, err
		}
	}

	switch kind {
	case KindSingly:
		var l list.SinglyLinkedList[string] = list.NewSinglyLinkedList[string]()
		if r.threadSafe {
			l = list.NewThreadSafeSinglyLinkedList(l)
		}
		r.list, r.pushBack = l, l.Append
		r.peekBack = func() (string, bool) {
			// O(n), the singly linked list keeps no tail.
			var (
				last  string
				found bool
			)
			for v := range l.Iter() {
				last, found = v, true
			}
			return last, found
		}
	case KindDoubly:
		var l list.DoublyLinkedList[string] = list.NewDoublyLinkedList[string]()
		if r.threadSafe {
			l = list.NewThreadSafeDoublyLinkedList(l)
		}
		r.list, r.pushBack, r.peekBack = l, l.PushBack, l.Back
	default:
		return nil, infra.NewErrorStack("[opscript] unknown list kind " + strconv.Quote(string(kind)))
	}

	if r.logger == nil {
		r.logger = xlog.NewXLogger(
			xlog.WithXLoggerWriter(zapcore.AddSync(io.Discard)),
			xlog.WithXLoggerLevel(xlog.LogLevelError),
		)
	}
	if r.meter == nil {
		r.meter = noop.NewMeterProvider()
	}
	r.stats = newRunnerStats(r.meter.Meter(RunnerStatsName), kind)
	return r, nil
}

func (r *Runner) Kind() Kind {
	return r.kind
}

func (r *Runner) List() list.BasicLinkedList[string] {
	return r.list
}

// Run executes ops in order and returns one output line per reporting
// op. The run stops at the first cancelled context check, returning
// the outputs produced so far.
func (r *Runner) Run(ctx context.Context, ops []Op) ([]string, error) {
	outputs := make([]string, 0, len(ops))
	r.logger.InfoContext(ctx, "run operation script",
		zap.String("kind", string(r.kind)),
		zap.Int("ops", len(ops)),
	)
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			err = infra.WrapErrorStackWithMessage(err, "[opscript] run interrupted at line "+strconv.Itoa(op.Line))
			r.logger.ErrorContext(ctx, err, "run interrupted")
			return outputs, err
		}
		out, ok := r.exec(ctx, op)
		if ok {
			outputs = append(outputs, out)
		}
	}
	r.logger.InfoContext(ctx, "operation script done",
		zap.String("kind", string(r.kind)),
		zap.Int64("len", r.list.Len()),
	)
	return outputs, nil
}

func (r *Runner) exec(ctx context.Context, op Op) (string, bool) {
	var (
		out     string
		present = true
		report  = true
	)
	switch op.Code {
	case OpPushFront:
		r.list.PushFront(op.Arg)
		report = false
	case OpPushBack:
		r.pushBack(op.Arg)
		report = false
	case OpPopFront:
		out, present = r.list.PopFront()
	case OpPopBack:
		out, present = r.list.PopBack()
	case OpFront:
		out, present = r.list.Front()
	case OpBack:
		out, present = r.peekBack()
	case OpLen:
		out = strconv.FormatInt(r.list.Len(), 10)
	case OpIsEmpty:
		out = strconv.FormatBool(r.list.IsEmpty())
	case OpClear:
		r.list.Clear()
		report = false
	case OpPrint:
		out = r.list.String()
	default:
		r.logger.WarnContext(ctx, "skip unknown op", zap.Int("line", op.Line))
		return "", false
	}

	r.stats.IncreaseOpCount(ctx, r.kind, op.Code)
	if op.Code.isMutation() {
		r.stats.RecordLen(r.list.Len())
	}
	if !present {
		r.stats.IncreaseUnderflowCount(ctx, r.kind, op.Code)
		out = EmptyOutput
	}
	r.logger.DebugContext(ctx, "op executed",
		zap.Int("line", op.Line),
		zap.Stringer("op", op),
		zap.Bool("empty", !present),
		zap.Int64("len", r.list.Len()),
	)
	return out, report
}
