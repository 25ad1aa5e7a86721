package profiling

import "time"

// FrameWindow is the number of frames FrameStats averages over.
const FrameWindow = 60

// FrameStats keeps a rolling window of frame durations.
type FrameStats struct {
	history []time.Duration
	next    int
}

// Add records one frame.
func (s *FrameStats) Add(d time.Duration) {
	if len(s.history) < FrameWindow {
		s.history = append(s.history, d)
		return
	}
	s.history[s.next] = d
	s.next = (s.next + 1) % FrameWindow
}

// Len is the number of frames in the window.
func (s *FrameStats) Len() int {
	return len(s.history)
}

// Summary returns the average, fastest and slowest frame in the window.
func (s *FrameStats) Summary() (avg, lo, hi time.Duration) {
	if len(s.history) == 0 {
		return 0, 0, 0
	}
	lo, hi = s.history[0], s.history[0]
	var total time.Duration
	for _, d := range s.history {
		total += d
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return total / time.Duration(len(s.history)), lo, hi
}

// FPS is the frame rate implied by the average frame time.
func (s *FrameStats) FPS() float64 {
	avg, _, _ := s.Summary()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}
