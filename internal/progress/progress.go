// Package progress prints a lightweight activity indicator while a long
// input is being processed.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Indicator writes dots to w on a fixed cadence until stopped. The first
// dot is delayed so short runs stay silent.
type Indicator struct {
	w     io.Writer
	delay time.Duration
	tick  time.Duration

	mu      sync.Mutex
	running bool
	wrote   bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates an indicator writing to w with the default cadence.
func New(w io.Writer) *Indicator {
	return &Indicator{
		w:     w,
		delay: 200 * time.Millisecond,
		tick:  500 * time.Millisecond,
	}
}

// Start begins emitting dots in a background goroutine. Starting a running
// indicator is a no-op.
func (p *Indicator) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	go p.run()
}

func (p *Indicator) run() {
	defer close(p.doneCh)

	select {
	case <-p.stopCh:
		return
	case <-time.After(p.delay):
	}

	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		p.mu.Lock()
		p.wrote = true
		p.mu.Unlock()
		fmt.Fprint(p.w, ".")

		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
		}
	}
}

// Stop halts the indicator, waits for the goroutine to finish, and
// terminates the dot line if any dots were written.
func (p *Indicator) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopCh)
	p.mu.Unlock()

	<-p.doneCh

	p.mu.Lock()
	wrote := p.wrote
	p.wrote = false
	p.mu.Unlock()
	if wrote {
		fmt.Fprintln(p.w)
	}
}
