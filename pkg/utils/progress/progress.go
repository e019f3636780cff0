package progress

import (
	"io"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
)

// Bar renders a byte-level download progress bar on the console. It starts
// lazily on the first update so that runs which never report progress (or
// fail before the first fragment) leave the console untouched. Purely
// cosmetic: nothing here is written to the run log.
type Bar struct {
	mu     sync.Mutex
	bar    *pb.ProgressBar
	writer io.Writer
}

// Option configures a Bar
type Option func(*Bar)

// WithWriter overrides the bar's output writer (stderr-safe for tests)
func WithWriter(w io.Writer) Option {
	return func(b *Bar) {
		b.writer = w
	}
}

// New creates an idle Bar; the underlying renderer is created on first use
func New(options ...Option) *Bar {
	b := &Bar{}
	for _, opt := range options {
		opt(b)
	}
	return b
}

// Update advances the bar. Engine progress callbacks arrive on the engine's
// goroutine, so updates are serialized here.
func (b *Bar) Update(total, current int64, prefix string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if total <= 0 {
		return
	}

	if b.bar == nil {
		bar := pb.New64(total).SetRefreshRate(100 * time.Millisecond)
		bar.Set(pb.Bytes, true)
		if b.writer != nil {
			bar.SetWriter(b.writer)
		}
		b.bar = bar.Start()
	}

	if prefix != "" {
		b.bar.Set("prefix", prefix+" ")
	}
	b.bar.SetTotal(total)
	if current > total {
		current = total
	}
	b.bar.SetCurrent(current)
}

// Finish stops the bar if it ever started
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bar != nil {
		b.bar.Finish()
		b.bar = nil
	}
}
