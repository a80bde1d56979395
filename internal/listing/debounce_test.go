package listing

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type firings struct {
	mu     sync.Mutex
	values []string
}

func (f *firings) record(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = append(f.values, v)
}

func (f *firings) get() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.values...)
}

func TestDebouncer_TrailingEdge(t *testing.T) {
	var f firings
	d := newDebouncer(20*time.Millisecond, f.record)
	defer d.Stop()

	d.Trigger("a")
	d.Trigger("ab")
	d.Trigger("abc")

	assert.Eventually(t, func() bool { return len(f.get()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, []string{"abc"}, f.get())
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	var f firings
	d := newDebouncer(10*time.Millisecond, f.record)
	defer d.Stop()

	d.Trigger("x")
	assert.Eventually(t, func() bool { return len(f.get()) == 1 }, time.Second, 2*time.Millisecond)
	d.Trigger("y")
	assert.Eventually(t, func() bool { return len(f.get()) == 2 }, time.Second, 2*time.Millisecond)
	assert.Equal(t, []string{"x", "y"}, f.get())
}

func TestDebouncer_StopDropsPending(t *testing.T) {
	var f firings
	d := newDebouncer(20*time.Millisecond, f.record)

	d.Trigger("never")
	d.Stop()
	d.Trigger("after stop")

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, f.get())
}
