package xworker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/omeyang/xjob/pkg/jobs/xjobq"
)

func TestAmortizedWorker_ProcessDispatch(t *testing.T) {
	t.Run("zero makes no queue calls", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := NewMockQueue(ctrl)

		w, err := NewAmortized(q, WithLogger(discardLogger()))
		assert.NoError(t, err)
		w.Process(0)
	})

	t.Run("one uses non-blocking pop", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := NewMockQueue(ctrl)

		ran := 0
		q.EXPECT().Pop(false).Return(xjobq.Job(func() { ran++ }))

		w, err := NewAmortized(q, WithLogger(discardLogger()))
		assert.NoError(t, err)
		w.Process(1)
		assert.Equal(t, 1, ran)
	})

	t.Run("one with empty queue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := NewMockQueue(ctrl)
		q.EXPECT().Pop(false).Return(nil)

		w, err := NewAmortized(q, WithLogger(discardLogger()))
		assert.NoError(t, err)
		w.Process(1)
	})

	for _, n := range []int{5, -1} {
		t.Run("batch", func(t *testing.T) {
			ctrl := gomock.NewController(t)
			q := NewMockQueue(ctrl)

			var order []int
			q.EXPECT().PopBatch(n).Return([]xjobq.Job{
				func() { order = append(order, 1) },
				func() { order = append(order, 2) },
			})

			w, err := NewAmortized(q, WithLogger(discardLogger()))
			assert.NoError(t, err)
			w.Process(n)
			assert.Equal(t, []int{1, 2}, order)
		})
	}
}

func TestBase_TerminateStopsQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := NewMockQueue(ctrl)
	q.EXPECT().Stop()

	b := NewBase(q)
	b.Terminate()
	assert.Same(t, q, b.Queue())
}

func TestAmortizedWorker_TerminateStopsThenDrains(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := NewMockQueue(ctrl)

	ran := false
	gomock.InOrder(
		q.EXPECT().Stop(),
		q.EXPECT().PopBatch(-1).Return([]xjobq.Job{func() { ran = true }}),
	)

	w, err := NewAmortized(q, WithLogger(discardLogger()))
	assert.NoError(t, err)
	w.Terminate()
	assert.True(t, ran)
}
