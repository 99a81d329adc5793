package engine

import (
	"sync/atomic"
	"time"

	"github.com/zhangpjbo/HttpPal-sub003/internal/sink"
)

// progressNotifier polls the sink's completed count on a ticker and invokes the
// caller's progress callback. Notifications are throttled to the tick interval,
// strictly non-decreasing, and deduplicated; the final count is always
// delivered from stop once the workers have quiesced.
type progressNotifier struct {
	sink     *sink.Sink
	total    int64
	interval time.Duration
	notify   func(completed, total int64)
	done     chan struct{}
	finished chan struct{}
	active   int32
	last     int64
}

func newProgressNotifier(s *sink.Sink, total int64, interval time.Duration, notify func(completed, total int64)) *progressNotifier {
	return &progressNotifier{
		sink:     s,
		total:    total,
		interval: interval,
		notify:   notify,
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

func (p *progressNotifier) start() {
	if !atomic.CompareAndSwapInt32(&p.active, 0, 1) {
		return // already running
	}
	go p.run()
}

func (p *progressNotifier) stop() {
	if atomic.CompareAndSwapInt32(&p.active, 1, 0) {
		close(p.done)
		<-p.finished
		p.emit()
	}
}

func (p *progressNotifier) run() {
	defer close(p.finished)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.emit()
		case <-p.done:
			return
		}
	}
}

// emit notifies only when the completed count advanced since the last
// notification. Runs on the notifier goroutine and, after it has finished,
// once more from stop; never concurrently.
func (p *progressNotifier) emit() {
	completed := p.sink.Completed()
	if completed > p.last {
		p.last = completed
		p.notify(completed, p.total)
	}
}
