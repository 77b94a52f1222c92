package main

import (
	"strings"
	"sync"
	"time"

	"dikt/audio"
	"dikt/beep"
	"dikt/log"
	"dikt/output"
	"dikt/stream"
	"dikt/transcriber"
)

const (
	listeningStatus = "🎙️ Listening..."
	finalizeTimeout = 5 * time.Second
)

// notifier is the slice of overlay.Channel the session code touches.
type notifier interface {
	Show(status string)
	Update(text string)
	Hide()
}

// App runs one dictation session at a time: the hotkey listener calls
// OnStart and OnStop, everything else follows from those two.
type App struct {
	buffer  *audio.Buffer
	trans   transcriber.Transcriber
	overlay notifier
	timings stream.Timings
	method  output.Method

	deliver func(text string, method output.Method) error

	mu      sync.Mutex
	sched   *stream.Scheduler
	started time.Time
}

func NewApp(buffer *audio.Buffer, trans transcriber.Transcriber, overlay notifier, method output.Method) *App {
	return &App{
		buffer:  buffer,
		trans:   trans,
		overlay: overlay,
		timings: stream.DefaultTimings(),
		method:  method,
		deliver: output.Deliver,
	}
}

// OnStart opens the capture pipeline and only then signals the user
// that recording is live. Audio accepted before the beep would be
// audio the user never meant to speak into.
func (a *App) OnStart() {
	if err := a.buffer.Start(); err != nil {
		log.Errorf("capture start error: %v", err)
		beep.PlayError()
		return
	}

	a.mu.Lock()
	a.started = time.Now()
	a.sched = stream.Launch(a.buffer, a.trans, a.timings, a.onPartial)
	a.mu.Unlock()

	log.Info("recording_start: " + a.buffer.DeviceName())
	beep.PlayStart()
	a.overlay.Show(listeningStatus)
	tuiSend(RecordingStartMsg{})
}

func (a *App) onPartial(text string) {
	a.overlay.Update(text)
	tuiSend(LiveTranscriptionMsg{Text: text})
}

// OnStop gives immediate feedback and pushes the slow part (waiting for
// the in-flight transcription pass) onto a background goroutine, so the
// hotkey listener is never blocked on the network.
func (a *App) OnStop() {
	a.mu.Lock()
	sched := a.sched
	a.sched = nil
	started := a.started
	a.mu.Unlock()

	if sched == nil {
		return
	}

	sched.RequestStop()
	log.Info("recording_stop")
	beep.PlayEnd()
	a.overlay.Hide()
	tuiSend(RecordingStopMsg{})

	go a.finalize(sched, started)
}

func (a *App) finalize(sched *stream.Scheduler, started time.Time) {
	if !sched.Wait(finalizeTimeout) {
		log.Warn("transcription did not finish before timeout")
	}
	a.buffer.Stop()

	text := strings.TrimSpace(sched.LastPartial())
	tuiSend(LiveTranscriptionMsg{Text: ""})

	if text == "" {
		log.Info("no_speech")
		tuiSend(TranscriptionMsg{Text: "(no speech detected)", NoSpeech: true})
		return
	}

	if err := a.deliver(text, a.method); err != nil {
		log.Errorf("output error: %v", err)
		beep.PlayError()
	}
	log.TranscriptionText(text)
	log.SessionEnd(len(text), float64(time.Since(started).Milliseconds()))
	tuiSend(TranscriptionMsg{Text: text})
}
