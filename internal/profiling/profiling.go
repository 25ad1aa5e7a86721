package profiling

import (
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"
)

// Lightweight per-frame CPU profiler.

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("subsystem.Operation")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears current per-frame totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of current per-frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	return maps.Clone(frameTotals)
}

// SumWithPrefix totals every tracked name starting with prefix.
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var total time.Duration
	for k, v := range frameTotals {
		if strings.HasPrefix(k, prefix) {
			total += v
		}
	}
	return total
}

type entry struct {
	name string
	dur  time.Duration
}

func top(n int) []entry {
	ss := Snapshot()
	list := make([]entry, 0, len(ss))
	for k, v := range ss {
		list = append(list, entry{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur != list[j].dur {
			return list[i].dur > list[j].dur
		}
		return list[i].name < list[j].name
	})
	if n < len(list) {
		list = list[:max(n, 0)]
	}
	return list
}

// Lines returns the n slowest entries of the current frame, one per line,
// formatted as "name:1.2ms".
func Lines(n int) []string {
	list := top(n)
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.name + ":" + FormatMs(e.dur)
	}
	return out
}

// TopN formats top N durations from the current frame totals.
// Example: "renderer.Render:4.2ms, scene.Update:2.1ms"
func TopN(n int) string {
	return strings.Join(Lines(n), ", ")
}

// FormatMs renders d in milliseconds with one decimal, dropping ".0".
func FormatMs(d time.Duration) string {
	tenths := d.Microseconds() / 100
	if tenths%10 == 0 {
		return fmt.Sprintf("%dms", tenths/10)
	}
	return fmt.Sprintf("%d.%dms", tenths/10, tenths%10)
}
