package admin

import "time"

// Delay is invoked before every mutation is applied. The original console
// showed a spinner over a fixed artificial wait; injecting the strategy
// lets tests run synchronously.
type Delay interface {
	Wait()
}

type NoDelay struct{}

func (NoDelay) Wait() {}

type FixedDelay struct {
	D time.Duration
}

// Wait always runs to completion; a started mutation is never cancelled.
func (f FixedDelay) Wait() {
	time.Sleep(f.D)
}
