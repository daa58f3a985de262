package watch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronSchedulerRegistersAndCancels(t *testing.T) {
	s := NewCronScheduler(time.UTC, nil)

	task, err := s.Every(10*time.Second, func() {})
	require.NoError(t, err)
	daily, err := s.Daily("0 9 * * *", func() {})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	task.Cancel()
	task.Cancel()
	assert.Equal(t, 1, s.Len())

	daily.Cancel()
	assert.Zero(t, s.Len())
}

func TestCronSchedulerRejectsBadInput(t *testing.T) {
	s := NewCronScheduler(nil, nil)

	_, err := s.Every(0, func() {})
	assert.Error(t, err)

	_, err = s.Daily("not a spec", func() {})
	assert.Error(t, err)
}

func TestCronSchedulerFiresAndRecoversPanics(t *testing.T) {
	s := NewCronScheduler(time.UTC, nil)
	fired := make(chan struct{}, 4)

	_, err := s.Every(time.Second, func() {
		fired <- struct{}{}
		panic("tick blew up")
	})
	require.NoError(t, err)

	s.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Stop(ctx)
	})

	for i := 0; i < 2; i++ {
		select {
		case <-fired:
		case <-time.After(5 * time.Second):
			t.Fatalf("expected task to keep firing after a panic (firing %d)", i+1)
		}
	}
}
