package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"dikt/audio"
	"dikt/beep"
	"dikt/hotkey"
	"dikt/log"
	"dikt/output"
	"dikt/overlay"
	"dikt/shutdown"
	"dikt/transcriber"
)

var version = "dev"

var shutdownOnce sync.Once

func gracefulShutdown(ov *overlay.Channel) {
	shutdownOnce.Do(func() {
		ov.Quit()
		log.Close()
		tuiMu.Lock()
		p := tuiProgram
		tuiMu.Unlock()
		if p != nil {
			p.Quit()
		}
		os.Exit(0)
	})
}

func deviceLineText(dev *audio.DeviceInfo) string {
	name := "system default"
	suffix := ""
	if dev != nil {
		name = dev.Name
		if audio.IsBluetooth(dev.Name) {
			suffix = " (BT!)"
		}
	}
	return "mic: " + name + suffix
}

func modeLineText(trans transcriber.Transcriber, mode hotkey.Mode, chord hotkey.Chord) string {
	providerLabel := trans.Name()
	if lang := trans.GetLanguage(); lang != "" {
		providerLabel += " (" + lang + ")"
	}
	return fmt.Sprintf("[%s | %s | %s]", mode, chord, providerLabel)
}

func main() {
	// "dikt overlay" runs the feedback window subprocess; the parent
	// process writes display commands to its stdin.
	if len(os.Args) > 1 && os.Args[1] == "overlay" {
		runOverlay()
		return
	}
	run()
}

func run() {
	modeFlag := flag.String("mode", "push-to-talk", "Recording mode: push-to-talk or toggle")
	keyFlag := flag.String("key", "ctrl+shift+space", "Hotkey chord, e.g. ctrl+shift+space or cmd+alt")
	modelFlag := flag.String("model", "", "Transcription model (provider default when empty)")
	langFlag := flag.String("lang", "en", "Language code for transcription (e.g., en, es, fr). Empty = auto-detect")
	outputFlag := flag.String("output", "clipboard", "Output method: clipboard, type, or paste")
	nosoundFlag := flag.Bool("nosound", false, "Disable start/stop beeps")
	setupFlag := flag.Bool("setup", false, "Select microphone device (otherwise uses system default)")
	deviceFlag := flag.String("device", "", "Use named microphone device")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	tuiFlag := flag.Bool("tui", true, "Run with terminal UI")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("dikt %s\n", version)
		os.Exit(0)
	}

	// Resolve log directory early
	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)

	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	mode := hotkey.Mode(*modeFlag)
	if mode != hotkey.ModePTT && mode != hotkey.ModeToggle {
		fmt.Printf("Error: unknown mode %q (use push-to-talk or toggle)\n", *modeFlag)
		os.Exit(1)
	}

	chord, err := hotkey.ParseChord(*keyFlag)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	method, err := output.ParseMethod(*outputFlag)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if *nosoundFlag {
		beep.Disable()
	}

	activeTranscriber, err := transcriber.New(*modelFlag)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if *langFlag != "" {
		activeTranscriber.SetLanguage(*langFlag)
	}

	ctx, err := audio.NewContext()
	if err != nil {
		fmt.Printf("Error initializing audio context: %v\n", err)
		os.Exit(1)
	}
	defer ctx.Close()

	var selectedDevice *audio.DeviceInfo
	if *deviceFlag != "" {
		if devices, err := ctx.Devices(); err == nil {
			for i := range devices {
				if devices[i].Name == *deviceFlag {
					selectedDevice = &devices[i]
					break
				}
			}
		}
		if selectedDevice == nil {
			fmt.Printf("Warning: device %q not found, using system default\n", *deviceFlag)
		}
	} else if *setupFlag {
		selectedDevice, err = audio.SelectDevice(ctx)
		if err != nil {
			fmt.Printf("Warning: device selection failed: %v\n", err)
			fmt.Println("Falling back to default device")
			selectedDevice = nil
		}
	}

	captureConfig := audio.CaptureConfig{
		SampleRate: audio.SampleRate,
		Channels:   audio.Channels,
	}
	captureDevice, err := ctx.NewCapture(selectedDevice, captureConfig)
	if err != nil {
		fmt.Printf("Error initializing capture device: %v\n", err)
		os.Exit(1)
	}
	defer captureDevice.Close()

	buffer := audio.NewBuffer(captureDevice)
	defer buffer.Close()

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	} else {
		log.SessionStart(activeTranscriber.Name(), string(mode), string(method))
	}

	ov := overlay.NewChannel()
	app := NewApp(buffer, activeTranscriber, ov, method)

	// Start TUI
	if !*tuiFlag {
		tuiReadyOnce.Do(func() { close(tuiReady) })
	} else {
		tuiMu.Lock()
		tuiProgram = NewTUIProgram()
		tuiMu.Unlock()

		go func() {
			if _, err := tuiProgram.Run(); err != nil {
				log.Errorf("TUI error: %v", err)
				os.Exit(1)
			}
			gracefulShutdown(ov)
		}()

		<-tuiReady
	}

	go beep.Init()

	source, err := hotkey.NewSource()
	if err != nil {
		log.Errorf("hotkey source error: %v", err)
		fmt.Printf("Error initializing hotkey listener: %v\n", err)
		os.Exit(1)
	}
	listener := hotkey.NewListener(chord, mode, app.OnStart, app.OnStop)
	defer listener.Stop()
	go func() {
		if err := listener.Start(source); err != nil {
			log.Errorf("hotkey listener error: %v", err)
			fmt.Fprintf(os.Stderr, "Error: hotkey listener: %v\n", err)
			os.Exit(1)
		}
	}()

	tuiSend(ModeLineMsg{Text: modeLineText(activeTranscriber, mode, chord)})
	tuiSend(DeviceLineMsg{Text: deviceLineText(selectedDevice)})

	sigChan := make(chan os.Signal, 1)
	shutdown.Notify(sigChan)
	<-sigChan
	gracefulShutdown(ov)
}
