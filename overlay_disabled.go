//go:build !gui

package main

import (
	"os"

	"dikt/overlay"
)

func runOverlay() {
	overlay.Serve(os.Stdin, overlay.NewRenderer())
}
