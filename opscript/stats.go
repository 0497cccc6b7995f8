package opscript

import (
	"context"
	"sync/atomic"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	RunnerStatsName = "xlist/opscript"
)

type runnerStats struct {
	length         atomic.Int64 // mirror of the list length, read by the gauge callback
	opCount        metric.Int64Counter
	underflowCount metric.Int64Counter
	listLen        metric.Int64ObservableGauge
}

func (stats *runnerStats) IncreaseOpCount(ctx context.Context, kind Kind, code OpCode) {
	if stats == nil {
		return
	}
	stats.opCount.Add(ctx, 1, metric.WithAttributeSet(attribute.NewSet(
		attribute.String("xlist.kind", string(kind)),
		attribute.String("xlist.op", code.String()),
	)))
}

func (stats *runnerStats) IncreaseUnderflowCount(ctx context.Context, kind Kind, code OpCode) {
	if stats == nil {
		return
	}
	stats.underflowCount.Add(ctx, 1, metric.WithAttributeSet(attribute.NewSet(
		attribute.String("xlist.kind", string(kind)),
		attribute.String("xlist.op", code.String()),
	)))
}

func (stats *runnerStats) RecordLen(length int64) {
	if stats == nil {
		return
	}
	stats.length.Store(length)
}

func newRunnerStats(meter metric.Meter, kind Kind) *runnerStats {
	stats := &runnerStats{
		opCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xlist.op.count",
			metric.WithDescription("The number of executed list operations."),
		)),
		underflowCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xlist.op.underflow.count",
			metric.WithDescription("The number of pops and peeks on an empty list."),
		)),
	}
	stats.listLen = lo.Must[metric.Int64ObservableGauge](meter.Int64ObservableGauge(
		"xlist.len",
		metric.WithDescription("The number of elements in the list."),
		metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
			ob.Observe(stats.length.Load(), metric.WithAttributes(attribute.String("xlist.kind", string(kind))))
			return nil
		}),
	))
	return stats
}
