//go:build gui

package overlay

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// GUIRenderer draws the overlay as a borderless floating window. The
// fyne event loop must own the main goroutine, so callers run Serve on
// a side goroutine and block in Run.
type GUIRenderer struct {
	fyneApp fyne.App
	window  fyne.Window
	status  *widget.Label
	text    *widget.Label
}

func NewGUIRenderer() *GUIRenderer {
	a := app.NewWithID("io.dikt.overlay")

	var w fyne.Window
	if drv, ok := a.Driver().(desktop.Driver); ok {
		w = drv.CreateSplashWindow()
	} else {
		w = a.NewWindow("dikt")
	}

	status := widget.NewLabel("")
	status.TextStyle = fyne.TextStyle{Bold: true}
	text := widget.NewLabel("")
	text.Wrapping = fyne.TextWrapWord

	w.SetContent(container.NewVBox(status, text))
	w.Resize(fyne.NewSize(560, 120))
	w.SetFixedSize(true)

	return &GUIRenderer{fyneApp: a, window: w, status: status, text: text}
}

// Run enters the fyne event loop; the window stays hidden until the
// first show command.
func (g *GUIRenderer) Run() {
	g.fyneApp.Run()
}

func (g *GUIRenderer) Show(status string) {
	fyne.Do(func() {
		g.status.SetText(status)
		g.text.SetText("")
		g.window.Show()
	})
}

func (g *GUIRenderer) Update(text string) {
	fyne.Do(func() {
		g.text.SetText(text)
	})
}

func (g *GUIRenderer) Hide() {
	fyne.Do(func() {
		g.window.Hide()
	})
}

func (g *GUIRenderer) Close() {
	fyne.Do(func() {
		g.fyneApp.Quit()
	})
}
