//go:build gui

package main

import (
	"os"

	"dikt/overlay"
)

func runOverlay() {
	r := overlay.NewGUIRenderer()
	go overlay.Serve(os.Stdin, r)
	// Serve's Close quits the fyne app, unblocking Run.
	r.Run()
}
