// twilight-dispatch - Discord gateway state reconciler
// Copyright 2026 twilight-dispatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/MaxOhn/twilight-dispatch

package state

import (
	"context"
	"sync"
	"time"

	"github.com/MaxOhn/twilight-dispatch/internal/logging"
	"github.com/MaxOhn/twilight-dispatch/internal/metrics"
	"github.com/MaxOhn/twilight-dispatch/internal/models"
	"github.com/MaxOhn/twilight-dispatch/internal/store"
)

// The readiness sequencer buffers the burst of GUILD_CREATE events the
// gateway replays after READY. Each buffered guild is classified and
// emitted in enqueue order, and once the queue stays idle for the
// quiescence timeout a single terminal "ready" fires. A new READY cancels
// the in-flight drain without a terminal signal; the fresh drain supersedes
// it.

// drainSlot holds the single current-generation drain.
type drainSlot struct {
	mu      sync.Mutex
	current *readyDrain
}

// readyDrain is one generation of the readiness window.
type readyDrain struct {
	queue  *guildQueue
	cancel context.CancelFunc
	done   chan struct{}
}

func (s *State) parseReady(ctx context.Context, data, old store.Record) error {
	s.drainSlot.mu.Lock()
	if prev := s.drainSlot.current; prev != nil {
		prev.cancel()
	}
	drainCtx, cancel := context.WithCancel(context.Background())
	d := &readyDrain{
		queue:  newGuildQueue(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.drainSlot.current = d
	s.drainSlot.mu.Unlock()

	s.emit("connect")
	go s.drainReady(drainCtx, d)
	return nil
}

// enqueueReadyGuild buffers a guild into the open readiness window.
// Returns false when no window is open (the guild dispatches directly).
func (s *State) enqueueReadyGuild(guild *models.Guild) bool {
	s.drainSlot.mu.Lock()
	defer s.drainSlot.mu.Unlock()
	if s.drainSlot.current == nil {
		return false
	}
	return s.drainSlot.current.queue.push(guild)
}

// drainReady consumes the readiness queue until it stays idle for the
// quiescence timeout, then emits the terminal ready signal. Cancellation
// (a newer READY) exits silently.
func (s *State) drainReady(ctx context.Context, d *readyDrain) {
	defer close(d.done)
	for {
		guild, ok := d.queue.pop(ctx, s.readyTimeout)
		if !ok {
			break
		}
		if guild.ExplicitlyAvailable() {
			s.emit("guild_available", guild)
		} else {
			s.emit("guild_join", guild)
		}
	}
	metrics.ReadyQueueDepth.Set(0)

	// Ownership is decided under the slot lock: a newer READY replaces
	// current (and cancels us) while holding it, so a drain that still owns
	// the slot here cannot have been superseded.
	s.drainSlot.mu.Lock()
	owned := s.drainSlot.current == d && ctx.Err() == nil
	if owned {
		s.drainSlot.current = nil
	}
	s.drainSlot.mu.Unlock()

	if !owned {
		metrics.ReadinessDrains.WithLabelValues(metrics.DrainSuperseded).Inc()
		return
	}

	metrics.ReadinessDrains.WithLabelValues(metrics.DrainCompleted).Inc()
	logging.Info().Msg("readiness window closed")
	s.callHandler("ready")
	s.emit("ready")
}

// guildQueue is the transient FIFO backing one readiness window. Enqueue
// never blocks; dequeue blocks up to an idle timeout. After the timeout the
// queue is closed and further pushes are refused, routing late guilds to
// direct dispatch.
type guildQueue struct {
	mu     sync.Mutex
	items  []*models.Guild
	closed bool
	signal chan struct{}
}

func newGuildQueue() *guildQueue {
	return &guildQueue{signal: make(chan struct{}, 1)}
}

// push appends a guild. Returns false when the queue is already closed.
func (q *guildQueue) push(guild *models.Guild) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, guild)
	q.mu.Unlock()

	metrics.ReadyQueueDepth.Inc()
	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// pop waits up to timeout for the next guild. On idle timeout the queue is
// closed and ok is false; on ctx cancellation ok is false without closing.
func (q *guildQueue) pop(ctx context.Context, timeout time.Duration) (*models.Guild, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		if guild, ok := q.tryPop(); ok {
			return guild, true
		}
		select {
		case <-q.signal:
		case <-timer.C:
			q.close()
			return nil, false
		case <-ctx.Done():
			return nil, false
		}
	}
}

func (q *guildQueue) tryPop() (*models.Guild, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	guild := q.items[0]
	q.items = q.items[1:]
	metrics.ReadyQueueDepth.Dec()
	return guild, true
}

func (q *guildQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}
