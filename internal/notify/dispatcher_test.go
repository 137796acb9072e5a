package notify

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAsyncDispatcher_RunsTasks(t *testing.T) {
	d := NewAsyncDispatcher()

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		d.Dispatch(func() { ran.Add(1) })
	}

	d.Wait()
	assert.Equal(t, int32(5), ran.Load())
}

func TestAsyncDispatcher_DoesNotBlockCaller(t *testing.T) {
	d := NewAsyncDispatcher()

	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		d.Dispatch(func() { <-release })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on the task")
	}

	close(release)
	d.Wait()
}
