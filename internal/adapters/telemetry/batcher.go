// Package telemetry records task invocations as OpenTelemetry spans and
// forwards them to a renderer.
package telemetry

import (
	"bytes"
	"sync"
	"time"

	"go.trai.ch/zerr"
)

const (
	// DefaultBatchSize is the buffer size that triggers a flush.
	DefaultBatchSize = 4096
	// DefaultBatchInterval is the longest time output stays buffered.
	DefaultBatchInterval = 50 * time.Millisecond
)

// errBatcherClosed is returned when writing to a closed Batcher.
var errBatcherClosed = zerr.New("batcher is closed")

// Batcher buffers task output and hands it to onFlush in chunks, either when
// the buffer reaches its size limit or when the interval elapses.
// It is safe for concurrent use.
type Batcher struct {
	size     int
	interval time.Duration
	onFlush  func([]byte)

	mu     sync.Mutex
	buffer bytes.Buffer
	ticker *time.Ticker
	stopCh chan struct{}
	closed bool
}

// NewBatcher returns a running Batcher. Non-positive limits select the defaults.
// Close must be called to stop its ticker.
func NewBatcher(size int, interval time.Duration, onFlush func([]byte)) *Batcher {
	if size <= 0 {
		size = DefaultBatchSize
	}
	if interval <= 0 {
		interval = DefaultBatchInterval
	}

	b := &Batcher{
		size:     size,
		interval: interval,
		onFlush:  onFlush,
		ticker:   time.NewTicker(interval),
		stopCh:   make(chan struct{}),
	}
	go b.run()
	return b
}

// Write appends p to the buffer, flushing when the size limit is reached.
func (b *Batcher) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, errBatcherClosed
	}

	n, _ := b.buffer.Write(p)
	if b.buffer.Len() >= b.size {
		b.flushLocked()
		b.ticker.Reset(b.interval)
	}
	return n, nil
}

// Flush hands any buffered output to the callback.
func (b *Batcher) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.flushLocked()
	}
}

// Close stops the ticker and flushes what is left.
func (b *Batcher) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	close(b.stopCh)
	b.flushLocked()
	return nil
}

func (b *Batcher) run() {
	for {
		select {
		case <-b.ticker.C:
			b.Flush()
		case <-b.stopCh:
			b.ticker.Stop()
			return
		}
	}
}

// flushLocked must be called with mu held. The callback runs under the lock
// so chunks are delivered in order.
func (b *Batcher) flushLocked() {
	if b.buffer.Len() == 0 {
		return
	}

	data := bytes.Clone(b.buffer.Bytes())
	b.buffer.Reset()
	if b.onFlush != nil {
		b.onFlush(data)
	}
}
