package observability

import (
	"sync"
	"testing"
)

type recordingFilterHooks struct {
	mu      sync.Mutex
	skipped []string
	dropped [][]string
	passes  int
}

func (r *recordingFilterHooks) OnEntrySkipped(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped = append(r.skipped, id)
}

func (r *recordingFilterHooks) OnCycleDropped(cycle []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dropped = append(r.dropped, cycle)
}

func (r *recordingFilterHooks) OnFilterComplete(string, int, int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passes++
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	// Must not panic.
	Build().OnBuildComplete(1, 2, 0)
	Filter().OnEntrySkipped("ghost")
	Filter().OnCycleDropped([]string{"A", "B", "A"})
	Filter().OnFilterComplete("downstream", 1, 1, 0)
	Cache().OnCacheHit("graph")
	Cache().OnCacheMiss("graph")
	Cache().OnCacheSet("graph", 128)
}

func TestSetFilterHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingFilterHooks{}
	SetFilterHooks(rec)

	Filter().OnEntrySkipped("ghost")
	Filter().OnFilterComplete("both", 2, 5, 4)

	if len(rec.skipped) != 1 || rec.skipped[0] != "ghost" {
		t.Errorf("skipped = %v, want [ghost]", rec.skipped)
	}
	if rec.passes != 1 {
		t.Errorf("passes = %d, want 1", rec.passes)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingFilterHooks{}
	SetFilterHooks(rec)
	SetFilterHooks(nil)

	Filter().OnEntrySkipped("still-recorded")
	if len(rec.skipped) != 1 {
		t.Errorf("nil registration replaced hooks, skipped = %v", rec.skipped)
	}
}

func TestReset(t *testing.T) {
	rec := &recordingFilterHooks{}
	SetFilterHooks(rec)
	Reset()

	Filter().OnEntrySkipped("ignored")
	if len(rec.skipped) != 0 {
		t.Errorf("Reset did not restore no-op hooks, skipped = %v", rec.skipped)
	}
}

func TestConcurrentAccess(t *testing.T) {
	t.Cleanup(Reset)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetFilterHooks(&recordingFilterHooks{})
		}()
		go func() {
			defer wg.Done()
			Filter().OnEntrySkipped("x")
		}()
	}
	wg.Wait()
}
