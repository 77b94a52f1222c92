package transcriber

import (
	"context"
	"sync"
	"time"
)

// Fake returns scripted results for tests. Each call consumes the next
// entry of texts/errs (the last entry repeats once exhausted).
type Fake struct {
	mu    sync.Mutex
	texts []string
	errs  []error
	calls int
	delay time.Duration
	lang  string
}

func NewFake(texts []string, errs []error) *Fake {
	return &Fake{texts: texts, errs: errs}
}

// SetDelay makes every Transcribe call block for d, simulating a slow
// engine.
func (f *Fake) SetDelay(d time.Duration) { f.delay = d }

func (f *Fake) Name() string            { return "fake" }
func (f *Fake) SetLanguage(lang string) { f.lang = lang }
func (f *Fake) GetLanguage() string     { return f.lang }

func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *Fake) Transcribe(_ context.Context, samples []float32, _ int) (string, error) {
	f.mu.Lock()
	i := f.calls
	f.calls++
	delay := f.delay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	pick := func(n int) int {
		if i < n {
			return i
		}
		return n - 1
	}
	if len(f.errs) > 0 {
		if err := f.errs[pick(len(f.errs))]; err != nil {
			return "", err
		}
	}
	if len(f.texts) == 0 {
		return "", nil
	}
	return f.texts[pick(len(f.texts))], nil
}
