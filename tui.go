package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TUI message types
type RecordingStartMsg struct{}
type RecordingStopMsg struct{}
type LiveTranscriptionMsg struct{ Text string }
type TranscriptionMsg struct {
	Text     string
	NoSpeech bool // true when no speech was detected
}
type ModeLineMsg struct{ Text string }   // hotkey/provider info
type DeviceLineMsg struct{ Text string } // microphone device name
type tickMsg time.Time

type tuiState int

const (
	tuiStateIdle tuiState = iota
	tuiStateRecording
	tuiStateFinalizing
)

type tuiModel struct {
	state         tuiState
	recordStart   time.Time
	elapsed       float64
	width, height int
	modeLine      string // "[ctrl+shift+space | groq (en)]"
	deviceLine    string // microphone device name
	liveText      string // partial transcript while recording
	lastText      string // last finished transcription
	noSpeech      bool
	msgCount      int
}

var (
	tuiProgram *tea.Program
	tuiMu      sync.Mutex

	tuiReady     = make(chan struct{})
	tuiReadyOnce sync.Once
)

var (
	recStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	finalizeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	idleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	modeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	grayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	liveStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	textStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	noSpeechStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
)

func NewTUIProgram() *tea.Program {
	m := tuiModel{}
	return tea.NewProgram(m, tea.WithAltScreen())
}

func tuiTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m tuiModel) Init() tea.Cmd {
	tuiReadyOnce.Do(func() { close(tuiReady) })
	return tuiTick()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case tickMsg:
		if m.state == tuiStateRecording {
			m.elapsed = time.Since(m.recordStart).Seconds()
		}
		return m, tuiTick()

	case RecordingStartMsg:
		m.state = tuiStateRecording
		m.recordStart = time.Now()
		m.elapsed = 0
		m.liveText = ""

	case RecordingStopMsg:
		m.state = tuiStateFinalizing

	case LiveTranscriptionMsg:
		m.liveText = msg.Text

	case TranscriptionMsg:
		m.state = tuiStateIdle
		m.msgCount++
		m.lastText = msg.Text
		m.noSpeech = msg.NoSpeech
		m.liveText = ""

	case ModeLineMsg:
		m.modeLine = msg.Text

	case DeviceLineMsg:
		m.deviceLine = msg.Text
	}
	return m, nil
}

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder

	switch m.state {
	case tuiStateRecording:
		b.WriteString(recStyle.Render(fmt.Sprintf("● REC %.1fs", m.elapsed)))
	case tuiStateFinalizing:
		b.WriteString(finalizeStyle.Render("◌ finalizing..."))
	default:
		b.WriteString(idleStyle.Render("○ STANDBY"))
	}
	b.WriteString("\n")

	if m.modeLine != "" {
		b.WriteString(modeStyle.Render(m.modeLine) + "\n")
	}
	if m.deviceLine != "" {
		b.WriteString(grayStyle.Render(m.deviceLine) + "\n")
	}
	b.WriteString("\n")

	wrapWidth := m.width - 2
	if wrapWidth < 10 {
		wrapWidth = 10
	}

	if m.liveText != "" {
		for _, line := range wrapText(m.liveText, wrapWidth) {
			b.WriteString(liveStyle.Render(line) + "\n")
		}
		b.WriteString("\n")
	}

	if m.lastText != "" {
		title := grayStyle.Render(fmt.Sprintf("Last transcription (#%d)", m.msgCount))
		b.WriteString(title + "\n")
		style := textStyle
		if m.noSpeech {
			style = noSpeechStyle
		}
		for _, line := range wrapText(m.lastText, wrapWidth) {
			b.WriteString(style.Render(line) + "\n")
		}
	} else if m.liveText == "" {
		b.WriteString(grayStyle.Render("No transcriptions yet") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("dikt " + version))

	return b.String()
}

func tuiSend(msg tea.Msg) {
	tuiMu.Lock()
	p := tuiProgram
	tuiMu.Unlock()

	if p != nil {
		p.Send(msg)
	}
}

func wrapText(text string, width int) []string {
	if text == "" {
		return []string{""}
	}
	if width <= 0 {
		width = 1
	}

	var lines []string
	runes := []rune(text)
	for len(runes) > width {
		// Break at the last space that fits, or hard-wrap.
		splitAt := width
		for i := width; i > 0; i-- {
			if runes[i] == ' ' {
				splitAt = i
				break
			}
		}
		lines = append(lines, string(runes[:splitAt]))
		runes = runes[splitAt:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 {
		lines = append(lines, string(runes))
	}
	return lines
}
