package estimator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingGateway struct {
	mu      sync.Mutex
	release chan struct{}
	date    string
	calls   int
}

func (g *blockingGateway) EstimateHarvestDate(ctx context.Context, cropName, sowingDate, location string) (string, error) {
	g.mu.Lock()
	g.calls++
	release := g.release
	g.mu.Unlock()
	if release != nil {
		<-release
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.date, nil
}

type commitLog struct {
	mu      sync.Mutex
	results []Result
}

func (c *commitLog) commit(r Result) {
	c.mu.Lock()
	c.results = append(c.results, r)
	c.mu.Unlock()
}

func (c *commitLog) snapshot() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Result(nil), c.results...)
}

func TestDebouncer_CoalescesRapidInput(t *testing.T) {
	gw := &blockingGateway{date: "2024-05-15"}
	log := &commitLog{}
	d := NewDebouncer(NewResolver(gw), 20*time.Millisecond, log.commit)
	defer d.Stop()

	// Three edits inside one debounce window: only the last fires.
	d.Input(Input{CropName: "w", SowingDate: "2024-01-01"})
	d.Input(Input{CropName: "wh", SowingDate: "2024-01-01"})
	last := d.Input(Input{CropName: "wheat", SowingDate: "2024-01-01"})

	require.Eventually(t, func() bool {
		return len(log.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	results := log.snapshot()
	assert.Equal(t, last, results[0].Generation)
	assert.Equal(t, "2024-05-15", results[0].HarvestDate)

	gw.mu.Lock()
	defer gw.mu.Unlock()
	assert.Equal(t, 1, gw.calls, "earlier generations must never reach the gateway")
}

func TestDebouncer_DiscardsStaleInFlightResult(t *testing.T) {
	gw := &blockingGateway{date: "2024-05-15", release: make(chan struct{})}
	log := &commitLog{}
	d := NewDebouncer(NewResolver(gw), time.Millisecond, log.commit)
	defer d.Stop()

	d.Input(Input{CropName: "wheat", SowingDate: "2024-01-01"})

	// Wait until the first estimation is in flight, then change the input.
	require.Eventually(t, func() bool {
		gw.mu.Lock()
		defer gw.mu.Unlock()
		return gw.calls == 1
	}, time.Second, time.Millisecond)

	gw.mu.Lock()
	release := gw.release
	gw.release = nil
	gw.date = "2024-10-09"
	gw.mu.Unlock()
	second := d.Input(Input{CropName: "rice", SowingDate: "2024-06-01"})

	// Let the stale call finish; its result must be dropped.
	close(release)

	require.Eventually(t, func() bool {
		results := log.snapshot()
		return len(results) == 1 && results[0].Generation == second
	}, time.Second, time.Millisecond)

	assert.Equal(t, "2024-10-09", log.snapshot()[0].HarvestDate)
}

func TestDebouncer_ClearedNameCommitsEmptyImmediately(t *testing.T) {
	gw := &blockingGateway{date: "2024-05-15"}
	log := &commitLog{}
	d := NewDebouncer(NewResolver(gw), 10*time.Millisecond, log.commit)
	defer d.Stop()

	gen := d.Input(Input{CropName: "", SowingDate: "2024-01-01"})

	results := log.snapshot()
	require.Len(t, results, 1)
	assert.Equal(t, gen, results[0].Generation)
	assert.Equal(t, "", results[0].HarvestDate)
}

func TestSessions_InputAndPoll(t *testing.T) {
	gw := &blockingGateway{date: "2024-05-15"}
	s := NewSessions(NewResolver(gw), time.Millisecond, time.Minute)

	gen := s.Input("form-1", Input{CropName: "wheat", SowingDate: "2024-01-01", Location: "Pune"})

	require.Eventually(t, func() bool {
		snap, ok := s.Poll("form-1")
		return ok && !snap.Pending && snap.Generation == gen
	}, time.Second, time.Millisecond)

	snap, ok := s.Poll("form-1")
	require.True(t, ok)
	assert.Equal(t, "2024-05-15", snap.HarvestDate)
}

func TestSessions_UnknownSession(t *testing.T) {
	s := NewSessions(NewResolver(nil), time.Millisecond, time.Minute)
	_, ok := s.Poll("nope")
	assert.False(t, ok)
}
