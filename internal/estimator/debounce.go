package estimator

import (
	"context"
	"sync"
	"time"
)

// Input is one snapshot of the add-crop form fields that drive estimation.
type Input struct {
	CropName   string
	SowingDate string
	Location   string
}

// Result is a committed estimate tagged with the generation of the input
// that produced it.
type Result struct {
	Generation  uint64 `json:"generation"`
	HarvestDate string `json:"harvestDate"`
}

// Debouncer coalesces rapid input changes before triggering estimation.
// Every Input re-arms a fixed delay and bumps a generation counter; a
// resolved estimate commits only if its generation is still current, so a
// stale in-flight estimation is discarded rather than cancelled.
type Debouncer struct {
	resolver *Resolver
	delay    time.Duration
	timeout  time.Duration
	commit   func(Result)

	mu    sync.Mutex
	gen   uint64
	last  Input
	timer *time.Timer
}

// NewDebouncer creates a Debouncer that delivers committed results through
// the given callback. The callback runs outside the debouncer lock.
func NewDebouncer(resolver *Resolver, delay time.Duration, commit func(Result)) *Debouncer {
	return &Debouncer{
		resolver: resolver,
		delay:    delay,
		timeout:  10 * time.Second,
		commit:   commit,
	}
}

// Input records a new form snapshot. A cleared crop name commits an empty
// result immediately; anything else schedules an estimation after the
// debounce delay.
func (d *Debouncer) Input(in Input) uint64 {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	d.last = in
	if d.timer != nil {
		d.timer.Stop()
	}

	if in.CropName == "" || in.SowingDate == "" {
		d.mu.Unlock()
		d.commit(Result{Generation: gen})
		return gen
	}

	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
	d.mu.Unlock()
	return gen
}

// Generation returns the current input generation.
func (d *Debouncer) Generation() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen
}

// Stop cancels any pending estimation trigger. An estimation already in
// flight is not interrupted; its result is discarded on arrival if the
// generation moved on.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	in := d.last
	d.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	date := d.resolver.Resolve(ctx, in.CropName, in.SowingDate, in.Location)

	d.mu.Lock()
	stale := gen != d.gen
	d.mu.Unlock()
	if stale {
		return
	}
	d.commit(Result{Generation: gen, HarvestDate: date})
}
