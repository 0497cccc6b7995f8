package opscript

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xlist/xlog"
)

func runScript(t *testing.T, r *Runner, script string) []string {
	t.Helper()
	ops, err := Parse(strings.NewReader(script))
	require.NoError(t, err)
	outputs, err := r.Run(context.Background(), ops)
	require.NoError(t, err)
	return outputs
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind(" Doubly ")
	require.NoError(t, err)
	require.Equal(t, KindDoubly, kind)
	kind, err = ParseKind("singly")
	require.NoError(t, err)
	require.Equal(t, KindSingly, kind)
	_, err = ParseKind("circular")
	require.Error(t, err)

	_, err = NewRunner("circular")
	require.Error(t, err)
	_, err = NewRunner(KindSingly, WithRunnerLogger(nil))
	require.Error(t, err)
	_, err = NewRunner(KindSingly, WithRunnerMeterProvider(nil))
	require.Error(t, err)
}

func TestRunner_SinglyLIFOAndFIFO(t *testing.T) {
	r, err := NewRunner(KindSingly)
	require.NoError(t, err)
	require.Equal(t, KindSingly, r.Kind())

	outputs := runScript(t, r, `
push_front a
push_front b
push_front c
print
pop_front
pop_front
pop_front
pop_front
append 1
append 2
append 3
print
back
pop
pop
pop
len
is_empty
`)
	require.Equal(t, []string{
		"c -> b -> a -> End",
		"c", "b", "a", EmptyOutput,
		"1 -> 2 -> 3 -> End",
		"3",
		"1", "2", "3",
		"0", "true",
	}, outputs)
}

func TestRunner_DoublyEndSymmetry(t *testing.T) {
	for _, threadSafe := range []bool{false, true} {
		opts := []RunnerOption{}
		if threadSafe {
			opts = append(opts, WithRunnerThreadSafeList())
		}
		r, err := NewRunner(KindDoubly, opts...)
		require.NoError(t, err)

		outputs := runScript(t, r, `
push_front 1
push_back 2
push_front 3
push_back 4
print
front
back
pop_front
pop_back
pop_front
pop_back
pop_front
pop_back
len
`)
		require.Equal(t, []string{
			"3 -> 1 -> 2 -> 4 -> End",
			"3", "4",
			"3", "4", "1", "2",
			EmptyOutput, EmptyOutput,
			"0",
		}, outputs)
	}
}

func TestRunner_ClearAndContinue(t *testing.T) {
	for _, kind := range []Kind{KindSingly, KindDoubly} {
		r, err := NewRunner(kind)
		require.NoError(t, err)
		outputs := runScript(t, r, "push_back x\npush_back y\nclear\nlen\npop_front\npop_back\nback\n")
		require.Equal(t, []string{"0", EmptyOutput, EmptyOutput, EmptyOutput}, outputs)

		// The list survives between runs.
		require.Empty(t, runScript(t, r, "push_back z\n"))
		require.Equal(t, []string{"z -> End"}, runScript(t, r, "print\n"))
		require.Equal(t, int64(1), r.List().Len())
	}
}

func TestRunner_Cancelled(t *testing.T) {
	r, err := NewRunner(KindDoubly)
	require.NoError(t, err)
	ops, err := Parse(strings.NewReader("push_back 1\nlen\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	outputs, err := r.Run(ctx, ops)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, outputs)
	require.Equal(t, int64(0), r.List().Len())
}

func TestRunner_LogsOperations(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := xlog.NewXLogger(
		xlog.WithXLoggerWriter(zapcore.AddSync(buf)),
		xlog.WithXLoggerLevel(xlog.LogLevelDebug),
		xlog.WithXLoggerContextFieldExtract("script"),
	)
	r, err := NewRunner(KindSingly, WithRunnerLogger(logger))
	require.NoError(t, err)

	ops, err := Parse(strings.NewReader("pop_back\n"))
	require.NoError(t, err)
	_, err = r.Run(xlog.ContextWithField(context.Background(), "script", "ops.txt"), ops)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, `"component":"opscript"`)
	require.Contains(t, out, `"script":"ops.txt"`)
	require.Contains(t, out, `"op":"pop_back"`)
	require.Contains(t, out, `"empty":true`)
}

func TestRunner_Stats(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() {
		require.NoError(t, mp.Shutdown(context.Background()))
	}()

	r, err := NewRunner(KindDoubly, WithRunnerMeterProvider(mp))
	require.NoError(t, err)
	runScript(t, r, "push_back 1\npush_back 2\npop_front\npop_front\npop_front\n")

	rm := metricdata.ResourceMetrics{}
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Equal(t, RunnerStatsName, rm.ScopeMetrics[0].Scope.Name)

	metrics := map[string]metricdata.Metrics{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		metrics[m.Name] = m
	}

	sumOf := func(name string, op string) int64 {
		sum, ok := metrics[name].Data.(metricdata.Sum[int64])
		require.True(t, ok, name)
		for _, dp := range sum.DataPoints {
			if v, ok := dp.Attributes.Value(attribute.Key("xlist.op")); ok && v.AsString() == op {
				return dp.Value
			}
		}
		return 0
	}
	require.Equal(t, int64(2), sumOf("xlist.op.count", "push_back"))
	require.Equal(t, int64(3), sumOf("xlist.op.count", "pop_front"))
	require.Equal(t, int64(1), sumOf("xlist.op.underflow.count", "pop_front"))

	gauge, ok := metrics["xlist.len"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	require.Equal(t, int64(0), gauge.DataPoints[0].Value)
}
