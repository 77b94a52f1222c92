package audio

import (
	"encoding/binary"
	"sync"
)

// Buffer accumulates captured audio as float32 samples in [-1, 1].
// Appends arrive from the capture device's callback goroutine; Snapshot
// and Stop may be called concurrently from other goroutines. One mutex
// serializes chunk access and is held only for the copy, never across a
// transcription call.
type Buffer struct {
	device CaptureDevice

	mu        sync.Mutex
	chunks    [][]float32
	accepting bool
	open      bool

	observer func(samples []float32)
}

func NewBuffer(device CaptureDevice) *Buffer {
	return &Buffer{device: device}
}

func (b *Buffer) DeviceName() string {
	return b.device.DeviceName()
}

// SetObserver installs a per-chunk callback, invoked outside the buffer
// lock for every capture tick, even after Stop. Set before Start.
func (b *Buffer) SetObserver(fn func(samples []float32)) {
	b.observer = fn
}

// Start clears previously buffered chunks and begins accumulating.
// The underlying device is opened on first use and left running across
// Stop, so a Start on an already-open device only resets the chunk list.
func (b *Buffer) Start() error {
	b.mu.Lock()
	b.chunks = nil
	b.accepting = true
	needOpen := !b.open
	b.mu.Unlock()

	if !needOpen {
		return nil
	}

	b.device.SetCallback(b.onData)
	if err := b.device.Start(); err != nil {
		b.device.ClearCallback()
		b.mu.Lock()
		b.accepting = false
		b.mu.Unlock()
		return err
	}

	b.mu.Lock()
	b.open = true
	b.mu.Unlock()
	return nil
}

func (b *Buffer) onData(data []byte, frameCount uint32) {
	if len(data) < 2 {
		return
	}
	samples := make([]float32, len(data)/2)
	for i := range samples {
		s := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = float32(s) / 32768.0
	}

	b.mu.Lock()
	if b.accepting {
		b.chunks = append(b.chunks, samples)
	}
	b.mu.Unlock()

	if b.observer != nil {
		b.observer(samples)
	}
}

// Snapshot returns all samples appended so far in arrival order without
// disturbing ongoing appends.
func (b *Buffer) Snapshot() []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.concatLocked()
}

// Stop returns the accumulated samples and clears the buffer. The device
// keeps running; subsequent chunks are dropped until the next Start.
func (b *Buffer) Stop() []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	samples := b.concatLocked()
	b.chunks = nil
	b.accepting = false
	return samples
}

// Close releases the capture device. A later Start reopens it.
func (b *Buffer) Close() {
	b.mu.Lock()
	wasOpen := b.open
	b.open = false
	b.accepting = false
	b.chunks = nil
	b.mu.Unlock()

	if wasOpen {
		b.device.Stop()
		b.device.ClearCallback()
	}
}

func (b *Buffer) concatLocked() []float32 {
	var n int
	for _, c := range b.chunks {
		n += len(c)
	}
	out := make([]float32, 0, n)
	for _, c := range b.chunks {
		out = append(out, c...)
	}
	return out
}
