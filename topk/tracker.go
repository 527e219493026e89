// Package topk tracks the most requested domains over a sliding window
// using a probabilistic top-k sketch. Counts are approximate.
package topk

import (
	"sync"

	"github.com/keilerkonzept/topk/sliding"
)

// Entry is one ranked domain with its approximate request count in the
// current window.
type Entry struct {
	Domain string `json:"domain"`
	Count  uint32 `json:"count"`
}

// Params configures the sketch dimensions and the tick cadence.
type Params struct {
	K          int
	WindowSize int
	Width      int
	Depth      int
	// TickSize is how many observations advance the sliding window by one
	// segment.
	TickSize uint64
}

// Tracker provides thread-safe access to a sliding sketch instance and
// manages ticking.
type Tracker struct {
	mu       sync.Mutex
	sketch   *sliding.Sketch
	tickSize uint64
	tickReq  uint64 // observations since the last tick
}

func New(params Params) *Tracker {
	tickSize := params.TickSize
	if tickSize == 0 {
		tickSize = 100
	}

	var opts []sliding.Option
	if params.Width > 0 {
		opts = append(opts, sliding.WithWidth(params.Width))
	}
	if params.Depth > 0 {
		opts = append(opts, sliding.WithDepth(params.Depth))
	}
	instance := sliding.New(params.K, params.WindowSize, opts...)

	return &Tracker{
		sketch:   instance,
		tickSize: tickSize,
	}
}

// Observe records one request for domain and advances the window when the
// tick size is reached.
func (t *Tracker) Observe(domain string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sketch.Incr(domain)
	t.tickReq++

	if t.tickReq >= t.tickSize {
		t.sketch.Tick()
		t.tickReq = 0
	}
}

// Top returns up to n of the hottest domains in the current window, hottest
// first.
func (t *Tracker) Top(n int) []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	items := t.sketch.SortedSlice()
	if n > 0 && len(items) > n {
		items = items[:n]
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, Entry{Domain: item.Item, Count: item.Count})
	}
	return entries
}
