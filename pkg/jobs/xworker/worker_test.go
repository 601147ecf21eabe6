package xworker

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xjob/pkg/jobs/xjobq"
	"github.com/omeyang/xjob/pkg/observability/xmetrics"
)

func TestBase(t *testing.T) {
	q := xjobq.New()
	b := NewBase(q)
	assert.Same(t, q, b.Queue())

	var ran atomic.Int32
	q.Push(func() { ran.Add(1) })

	// 默认 Process 是空操作。
	b.Process(-1)
	assert.Equal(t, int32(0), ran.Load())
	assert.Equal(t, 1, q.Len())

	b.Terminate()
	assert.True(t, q.Stopped())
	assert.Equal(t, 1, q.Len(), "base terminate does not drain")

	// 幂等
	b.Terminate()
}

func TestInvoke_RecoversPanic(t *testing.T) {
	var buf syncBuffer
	obs := &recordingObserver{}
	o := applyOptions("test", []Option{WithLogger(bufferLogger(&buf)), WithObserver(obs)})

	require.NotPanics(t, func() {
		invoke(&o, func() { panic("boom") })
	})

	assert.Contains(t, buf.String(), "job panic recovered")
	assert.Contains(t, buf.String(), "boom")

	starts, results := obs.snapshot()
	require.Len(t, starts, 1)
	assert.Equal(t, "test", starts[0].Component)
	assert.Equal(t, "invoke", starts[0].Operation)
	assert.Equal(t, xmetrics.KindConsumer, starts[0].Kind)
	require.Len(t, results, 1)
	assert.Equal(t, xmetrics.StatusPanic, results[0].Status)
}

func TestInvoke_OK(t *testing.T) {
	obs := &recordingObserver{}
	o := applyOptions("test", []Option{WithObserver(obs)})

	ran := false
	invoke(&o, func() { ran = true })

	assert.True(t, ran)
	_, results := obs.snapshot()
	require.Len(t, results, 1)
	assert.Equal(t, xmetrics.StatusOK, results[0].Status)
}

func TestApplyOptions(t *testing.T) {
	o := applyOptions("default", nil)
	assert.Equal(t, "default", o.name)
	assert.NotNil(t, o.logger)
	assert.False(t, o.prioritySet)

	o = applyOptions("default", []Option{
		nil,
		WithName(""),
		WithLogger(nil),
	})
	assert.Equal(t, "default", o.name)
	assert.NotNil(t, o.logger)

	o = applyOptions("default", []Option{
		WithName("render"),
		WithPriority(0),
	})
	assert.Equal(t, "render", o.name)
	assert.True(t, o.prioritySet, "explicit normal priority still counts as set")
}
