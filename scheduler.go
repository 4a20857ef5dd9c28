package alder

import (
	"sort"
	"time"
)

const (
	defaultTargetRate  = 60                   // flushes per second
	defaultFrameBudget = 8 * time.Millisecond // processing budget per flush
)

// Update is one mutation record for a single entity. Enqueueing a second
// update for the same id within a scheduling window replaces the first
// outright; there is no field-level merging.
type Update struct {
	ID       EntityID
	Kind     EntityKind
	Op       UpdateOp
	Payload  any // *Node or *Edge for add/update; ignored for remove
	Priority Priority
}

// Frame is one consolidated batch of updates grouped by entity kind,
// materialized by a single flush. A delivered frame is single-use: the
// subscriber reads it synchronously and MUST NOT mutate or retain it.
type Frame struct {
	Updates map[EntityKind]map[EntityID]Update
}

// Kind returns the frame's updates for one entity kind; nil when it has none.
func (f *Frame) Kind(k EntityKind) map[EntityID]Update {
	return f.Updates[k]
}

// Len returns the total number of updates in the frame across kinds.
func (f *Frame) Len() int {
	n := 0
	for _, m := range f.Updates {
		n += len(m)
	}
	return n
}

// SchedulerMetrics is a snapshot of the scheduler's lifetime counters.
type SchedulerMetrics struct {
	TotalBatches     int           // delivered flushes
	TotalUpdates     int           // enqueued records, superseded ones included
	DroppedFrames    int           // flushes whose processing ran over budget
	AverageFrameTime time.Duration // running average processing time per flush
}

type pendingRecord struct {
	update Update
	seq    uint64
	at     time.Time
}

// Scheduler coalesces bursts of entity mutations and delivers at most one
// consolidated Frame per eligible display tick to a single subscriber.
// Enqueue never blocks; delivery happens from Tick (or an explicit Flush) on
// the same thread.
type Scheduler struct {
	pending map[EntityID]pendingRecord
	staged  map[EntityID]pendingRecord // enqueued while a flush is running

	inFlush        bool
	flushRequested bool

	targetRate  int
	minInterval time.Duration
	frameBudget time.Duration
	lastFlush   time.Time
	callback    func(*Frame)

	seq uint64
	now func() time.Time // swapped for a fake clock in tests

	totalBatches   int
	totalUpdates   int
	droppedFrames  int
	totalFlushTime time.Duration

	sortBuf []pendingRecord // reused across flushes
}

// NewScheduler creates a scheduler with the default 60/s target rate and 8ms
// frame budget, and no subscriber.
func NewScheduler() *Scheduler {
	s := &Scheduler{
		pending:     make(map[EntityID]pendingRecord),
		staged:      make(map[EntityID]pendingRecord),
		frameBudget: defaultFrameBudget,
		now:         time.Now,
	}
	s.SetTargetRate(defaultTargetRate)
	return s
}

// SetTargetRate caps flush frequency at perSecond flushes per second by
// deriving the minimum interval between two flushes. A tick that arrives
// before the interval has elapsed defers the flush to a later tick; pending
// data is never dropped by the cap. perSecond <= 0 removes the cap.
func (s *Scheduler) SetTargetRate(perSecond int) {
	s.targetRate = perSecond
	if perSecond <= 0 {
		s.minInterval = 0
		return
	}
	s.minInterval = time.Second / time.Duration(perSecond)
}

// SetFrameBudget sets the per-flush processing time budget. Once elapsed
// processing time exceeds it, remaining normal- and low-priority records are
// deferred to the next tick.
func (s *Scheduler) SetFrameBudget(budget time.Duration) {
	s.frameBudget = budget
}

// SetUpdateCallback registers the single subscriber that receives delivered
// frames, replacing any previous one.
func (s *Scheduler) SetUpdateCallback(fn func(*Frame)) {
	s.callback = fn
}

// Enqueue stages one update for the next flush and returns immediately.
// Within a window, only the last update enqueued for an id survives to
// delivery; earlier ones for that id are discarded outright.
func (s *Scheduler) Enqueue(u Update) {
	s.seq++
	rec := pendingRecord{update: u, seq: s.seq, at: s.now()}
	if s.inFlush {
		s.staged[u.ID] = rec
	} else {
		s.pending[u.ID] = rec
	}
	s.totalUpdates++
	s.flushRequested = true
}

// EnqueueBatch enqueues the updates in order, as if by repeated Enqueue.
func (s *Scheduler) EnqueueBatch(updates []Update) {
	for _, u := range updates {
		s.Enqueue(u)
	}
}

// Pending returns the number of updates awaiting the next flush.
func (s *Scheduler) Pending() int {
	return len(s.pending) + len(s.staged)
}

// Tick is the display-tick callback the host drives the scheduler with, once
// per frame, typically from ebiten's Update. A requested flush runs on the
// first tick that is at least the minimum inter-flush interval after the
// previous flush; earlier ticks keep the data pending instead of flushing
// early.
func (s *Scheduler) Tick() {
	if !s.flushRequested || s.inFlush {
		return
	}
	if !s.lastFlush.IsZero() && s.now().Sub(s.lastFlush) < s.minInterval {
		return
	}
	s.Flush()
}

// Flush coalesces and delivers pending updates immediately, bypassing the
// tick wait. Records are processed in priority order (high, normal, low;
// enqueue order within a priority) until the frame budget is exhausted, with
// the exception that high-priority records are always included regardless of
// overrun. Unprocessed records stay pending for the next tick. Updates
// enqueued while the flush runs are buffered and only become pending once it
// finishes.
func (s *Scheduler) Flush() {
	if s.inFlush {
		return
	}
	if len(s.pending) == 0 {
		s.flushRequested = false
		return
	}
	s.inFlush = true
	start := s.now()

	s.sortBuf = s.sortBuf[:0]
	for _, rec := range s.pending {
		s.sortBuf = append(s.sortBuf, rec)
	}
	sort.Slice(s.sortBuf, func(i, j int) bool {
		a, b := &s.sortBuf[i], &s.sortBuf[j]
		if ra, rb := a.update.Priority.rank(), b.update.Priority.rank(); ra != rb {
			return ra < rb
		}
		return a.seq < b.seq
	})

	frame := &Frame{Updates: make(map[EntityKind]map[EntityID]Update)}
	processed := 0
	for i := range s.sortBuf {
		rec := &s.sortBuf[i]
		// The first record always goes through so a tiny budget still makes
		// progress. After that, running over budget defers everything except
		// high priority, which is sorted first and therefore never cut off.
		if i > 0 && rec.update.Priority != PriorityHigh &&
			s.now().Sub(start) > s.frameBudget {
			break
		}
		kind := frame.Updates[rec.update.Kind]
		if kind == nil {
			kind = make(map[EntityID]Update)
			frame.Updates[rec.update.Kind] = kind
		}
		kind[rec.update.ID] = rec.update
		delete(s.pending, rec.update.ID)
		processed++
	}

	elapsed := s.now().Sub(start)
	if elapsed > s.frameBudget {
		s.droppedFrames++
		logger.Debug().Dur("elapsed", elapsed).Dur("budget", s.frameBudget).
			Int("deferred", len(s.pending)).Msg("flush ran over budget")
	}
	s.totalBatches++
	s.totalFlushTime += elapsed
	s.lastFlush = start
	s.flushRequested = len(s.pending) > 0

	if s.callback != nil && processed > 0 {
		s.deliver(frame)
	}

	s.inFlush = false
	if len(s.staged) > 0 {
		for id, rec := range s.staged {
			s.pending[id] = rec
		}
		clear(s.staged)
		s.flushRequested = true
	}
}

// deliver hands the frame to the subscriber, isolating a panic so a broken
// subscriber cannot wedge the scheduler mid-flush.
func (s *Scheduler) deliver(frame *Frame) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Interface("panic", rec).
				Msg("update callback panicked")
		}
	}()
	s.callback(frame)
}

// Clear discards all pending and staged updates without delivering them and
// cancels any requested flush. Metrics are unaffected.
func (s *Scheduler) Clear() {
	clear(s.pending)
	clear(s.staged)
	s.flushRequested = false
}

// Metrics returns a snapshot of the scheduler's lifetime counters.
func (s *Scheduler) Metrics() SchedulerMetrics {
	m := SchedulerMetrics{
		TotalBatches:  s.totalBatches,
		TotalUpdates:  s.totalUpdates,
		DroppedFrames: s.droppedFrames,
	}
	if s.totalBatches > 0 {
		m.AverageFrameTime = s.totalFlushTime / time.Duration(s.totalBatches)
	}
	return m
}
