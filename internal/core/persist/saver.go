// Package persist writes task snapshots in the background so intents never
// wait on storage.
package persist

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/taskr/internal/core/task"
)

// Policy decides when a scheduled snapshot is written.
type Policy string

const (
	// PolicyImmediate writes as soon as a snapshot is scheduled.
	PolicyImmediate Policy = "immediate"
	// PolicyDebounce writes once no new snapshot has arrived for the
	// debounce interval.
	PolicyDebounce Policy = "debounce"
)

// IsValid reports whether p is a known policy.
func (p Policy) IsValid() bool {
	return p == PolicyImmediate || p == PolicyDebounce
}

const (
	DefaultDebounce = 250 * time.Millisecond
	DefaultTimeout  = 5 * time.Second
)

// Writer persists a full collection, replacing the previous one.
type Writer interface {
	Save(ctx context.Context, tasks task.Collection) error
}

// Result describes the outcome of one write.
type Result struct {
	Count    int
	Err      error
	Failures int // consecutive failures including this one; 0 on success
	Duration time.Duration
}

// Options configures a Saver.
type Options struct {
	Policy   Policy
	Debounce time.Duration
	Timeout  time.Duration // per write
	OnResult func(Result)  // called on the worker goroutine after every write
}

// Saver owns one worker goroutine and a single snapshot slot. Scheduling
// replaces whatever snapshot is waiting, so only the newest state is ever
// written and at most one write is in flight.
type Saver struct {
	w    Writer
	opts Options
	log  zerolog.Logger

	mu           sync.Mutex
	slot         task.Collection
	hasSlot      bool
	lastSchedule time.Time
	inflight     bool
	flushNow     bool
	closed       bool
	failures     int
	waiters      []chan struct{}

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

var _ task.Scheduler = (*Saver)(nil)

// New starts a saver writing through w. Close must be called to stop the
// worker.
func New(w Writer, opts Options, logger zerolog.Logger) *Saver {
	if !opts.Policy.IsValid() {
		opts.Policy = PolicyImmediate
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	s := &Saver{
		w:    w,
		opts: opts,
		log:  logger.With().Str("component", "saver").Str("policy", string(opts.Policy)).Logger(),
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go s.run()
	return s
}

// Schedule queues tasks for writing and returns immediately. A snapshot that
// has not started writing yet is superseded. After Close it does nothing.
func (s *Saver) Schedule(tasks task.Collection) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.log.Debug().Int("count", len(tasks)).Msg("schedule after close ignored")
		return
	}
	s.slot = tasks.Clone()
	s.hasSlot = true
	s.lastSchedule = time.Now()
	s.mu.Unlock()

	s.signal()
}

// Dirty reports whether a snapshot is waiting or being written.
func (s *Saver) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasSlot || s.inflight
}

// Failures returns the number of consecutive failed writes.
func (s *Saver) Failures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures
}

// Flush writes any waiting snapshot without waiting for the debounce and
// blocks until the saver is idle or ctx is done.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	if !s.hasSlot && !s.inflight {
		s.mu.Unlock()
		return nil
	}
	ch := make(chan struct{})
	s.waiters = append(s.waiters, ch)
	s.flushNow = true
	s.mu.Unlock()

	s.signal()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes pending work and stops the worker. Later calls return nil.
func (s *Saver) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	err := s.Flush(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("closing with unsaved tasks")
	}

	close(s.stop)
	<-s.done
	return err
}

func (s *Saver) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Saver) run() {
	defer close(s.done)

	var timer <-chan time.Time
	for {
		select {
		case <-s.stop:
			return
		case <-s.wake:
		case <-timer:
			timer = nil
		}

		if wait := s.drain(); wait > 0 {
			timer = time.After(wait)
		}
	}
}

// drain writes snapshots until the slot is empty or the debounce window is
// still open, returning how long to wait in the latter case.
func (s *Saver) drain() time.Duration {
	for {
		s.mu.Lock()
		if !s.hasSlot {
			s.releaseWaitersLocked()
			s.mu.Unlock()
			return 0
		}

		if s.opts.Policy == PolicyDebounce && !s.flushNow {
			if quiet := time.Since(s.lastSchedule); quiet < s.opts.Debounce {
				s.mu.Unlock()
				return s.opts.Debounce - quiet
			}
		}

		snapshot := s.slot
		s.slot = nil
		s.hasSlot = false
		s.flushNow = false
		s.inflight = true
		s.mu.Unlock()

		res := s.write(snapshot)

		s.mu.Lock()
		s.inflight = false
		s.failures = res.Failures
		s.mu.Unlock()

		if s.opts.OnResult != nil {
			s.opts.OnResult(res)
		}
	}
}

func (s *Saver) write(snapshot task.Collection) Result {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.Timeout)
	defer cancel()

	start := time.Now()
	err := s.w.Save(ctx, snapshot)
	res := Result{Count: len(snapshot), Err: err, Duration: time.Since(start)}

	if err != nil {
		s.mu.Lock()
		res.Failures = s.failures + 1
		s.mu.Unlock()

		s.log.Error().Err(err).
			Int("count", res.Count).
			Int("failures", res.Failures).
			Msg("failed to save tasks")
		return res
	}

	s.log.Debug().Int("count", res.Count).Dur("duration", res.Duration).Msg("tasks saved")
	return res
}

func (s *Saver) releaseWaitersLocked() {
	if s.inflight {
		return
	}
	for _, ch := range s.waiters {
		close(ch)
	}
	s.waiters = nil
	s.flushNow = false
}
