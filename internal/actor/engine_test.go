package actor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type counterActor struct {
	mu    *sync.Mutex
	count *int
	done  chan struct{}
}

func (c *counterActor) Receive(ctx Context) {
	switch ctx.Message().(type) {
	case int:
		c.mu.Lock()
		*c.count++
		c.mu.Unlock()
	case Stopping:
		close(c.done)
	}
}

func TestEngine_DeliversAllMessagesSentBeforeStop(t *testing.T) {
	engine := NewEngine(nil)
	var mu sync.Mutex
	count := 0
	done := make(chan struct{})

	pid := engine.Spawn(func() Actor {
		return &counterActor{mu: &mu, count: &count, done: done}
	})

	for i := 0; i < 50; i++ {
		engine.Send(pid, 1)
	}
	engine.Stop(pid)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("actor never observed Stopping")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 50, count)
}

type panickyActor struct {
	recovered chan struct{}
}

func (p *panickyActor) Receive(ctx Context) {
	if _, ok := ctx.Message().(string); ok {
		panic("boom")
	}
	if _, ok := ctx.Message().(Stopping); ok {
		close(p.recovered)
	}
}

func TestEngine_RecoversFromPanicAndKeepsRunning(t *testing.T) {
	engine := NewEngine(nil)
	recovered := make(chan struct{})
	pid := engine.Spawn(func() Actor { return &panickyActor{recovered: recovered} })

	engine.Send(pid, "trigger a panic")
	engine.Stop(pid)

	select {
	case <-recovered:
	case <-time.After(time.Second):
		t.Fatal("actor goroutine died instead of recovering")
	}
}
