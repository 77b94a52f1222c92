// Package stream runs the polling transcription loop for one dictation
// session: periodic full-buffer passes for live feedback while recording,
// one conclusive pass when the session stops.
package stream

import (
	"context"
	"sync"
	"time"

	"dikt/audio"
	"dikt/log"
	"dikt/transcriber"
)

// Timings holds the loop's tunable constants. The defaults are
// empirically chosen; tests shrink them.
type Timings struct {
	// Warmup delays the first pass so the buffer holds some audio.
	Warmup time.Duration
	// PollInterval separates successive transcription passes.
	PollInterval time.Duration
	// ShortRetry is the wait when the buffer is still below MinPollSamples.
	ShortRetry time.Duration
	// RecencyWindow skips the final pass when a polling pass finished
	// this recently; its result already covers the whole session.
	RecencyWindow time.Duration
	// MinPollSamples gates polling passes; MinFinalSamples gates the
	// final pass.
	MinPollSamples  int
	MinFinalSamples int
}

func DefaultTimings() Timings {
	return Timings{
		Warmup:          400 * time.Millisecond,
		PollInterval:    600 * time.Millisecond,
		ShortRetry:      200 * time.Millisecond,
		RecencyWindow:   800 * time.Millisecond,
		MinPollSamples:  audio.SampleRate * 3 / 10, // 0.3s
		MinFinalSamples: audio.SampleRate / 10,     // 0.1s
	}
}

// Scheduler owns the per-session polling goroutine. Create one per
// session with Launch.
type Scheduler struct {
	timings Timings

	stop chan struct{}
	done chan struct{}

	mu          sync.Mutex
	lastPartial string

	// Touched only by the loop goroutine.
	lastPassAt time.Time
}

// Launch starts the polling loop on its own goroutine. onPartial is
// invoked from that goroutine whenever a pass produces text different
// from the last emitted partial.
func Launch(buf *audio.Buffer, tr transcriber.Transcriber, timings Timings, onPartial func(text string)) *Scheduler {
	s := &Scheduler{
		timings: timings,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.run(buf, tr, onPartial)
	return s
}

// RequestStop signals the loop to perform its final pass and exit. Any
// pending wait wakes immediately; an in-flight transcription pass is
// never cancelled, it completes first. Safe to call more than once.
func (s *Scheduler) RequestStop() {
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
}

// Wait blocks until the loop has exited or the timeout elapses. Returns
// false on timeout (hung transcriber call).
func (s *Scheduler) Wait(timeout time.Duration) bool {
	select {
	case <-s.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// LastPartial returns the most recent successfully transcribed text.
// Safe at any time; until Wait returns true the loop may still improve it.
func (s *Scheduler) LastPartial() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPartial
}

// setPartial records text as the newest partial. Returns false when the
// text is empty or repeats the current partial.
func (s *Scheduler) setPartial(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if text == "" || text == s.lastPartial {
		return false
	}
	s.lastPartial = text
	return true
}

// sleep waits up to d, returning true if the stop signal fired.
func (s *Scheduler) sleep(d time.Duration) bool {
	select {
	case <-s.stop:
		return true
	case <-time.After(d):
		return false
	}
}

func (s *Scheduler) run(buf *audio.Buffer, tr transcriber.Transcriber, onPartial func(string)) {
	defer close(s.done)

	if s.sleep(s.timings.Warmup) {
		s.finalPass(buf, tr)
		return
	}

	for {
		select {
		case <-s.stop:
			s.finalPass(buf, tr)
			return
		default:
		}

		samples := buf.Snapshot()
		if len(samples) < s.timings.MinPollSamples {
			if s.sleep(s.timings.ShortRetry) {
				break
			}
			continue
		}

		// Full re-transcription every pass: the engine corrects earlier
		// words as more context arrives, so incremental feeding would
		// lock in mistakes. Background context: a stop cancels only the
		// waits, never an in-flight pass.
		text, err := tr.Transcribe(context.Background(), samples, audio.SampleRate)
		if err != nil {
			log.Warnf("streaming pass failed: %v", err)
		} else {
			s.lastPassAt = time.Now()
			if s.setPartial(text) && onPartial != nil {
				onPartial(text)
			}
		}

		if s.sleep(s.timings.PollInterval) {
			break
		}
	}

	s.finalPass(buf, tr)
}

// finalPass runs one conclusive transcription of the complete buffer,
// unless a polling pass just covered it.
func (s *Scheduler) finalPass(buf *audio.Buffer, tr transcriber.Transcriber) {
	if !s.lastPassAt.IsZero() && time.Since(s.lastPassAt) < s.timings.RecencyWindow {
		return
	}

	samples := buf.Snapshot()
	if len(samples) < s.timings.MinFinalSamples {
		return
	}

	text, err := tr.Transcribe(context.Background(), samples, audio.SampleRate)
	if err != nil {
		log.Warnf("final pass failed: %v", err)
		return
	}
	s.setPartial(text)
}
