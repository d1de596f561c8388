package core

import (
	"sync"
	"sync/atomic"
	"time"
)

// coarseInterval is how often the shared clock refreshes its cached time.
const coarseInterval = 500 * time.Microsecond

// coarseClock caches time.Now at a fixed interval so hot paths can read
// the time with a single atomic load.
type coarseClock struct {
	once    sync.Once
	current atomic.Pointer[time.Time]
	stop    chan struct{}
}

func newCoarseClock() *coarseClock {
	return &coarseClock{stop: make(chan struct{})}
}

func (c *coarseClock) tick() {
	t := time.Now()
	c.current.Store(&t)
}

func (c *coarseClock) start(interval time.Duration) {
	c.once.Do(func() {
		c.tick()
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					c.tick()
				case <-c.stop:
					return
				}
			}
		}()
	})
}

func (c *coarseClock) now() time.Time {
	if t := c.current.Load(); t != nil {
		return *t
	}
	return time.Now()
}

// processClock is never stopped.
var processClock = newCoarseClock()

// StartCoarseClock starts the process-wide coarse clock. Only the first
// call has an effect.
func StartCoarseClock() {
	processClock.start(coarseInterval)
}

// CoarseNow returns the cached time of the process-wide coarse clock, or
// time.Now before StartCoarseClock has been called.
func CoarseNow() time.Time {
	return processClock.now()
}
