// BarCut — Aluminum Bar Cutting Planner (desktop)
//
// A cross-platform desktop application for planning how to cut
// fixed-length aluminum bars into the pieces of a job.
//
// Build:
//   go build -o barcut-gui ./cmd/barcut-gui
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o barcut-gui.exe ./cmd/barcut-gui
//   GOOS=darwin  GOARCH=amd64 go build -o barcut-gui-darwin ./cmd/barcut-gui
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/BarCut/internal/logger"
	"github.com/piwi3910/BarCut/internal/ui"
)

func main() {
	logger.Init(false)

	application := app.NewWithID("com.piwi3910.barcut")
	window := application.NewWindow("BarCut — Aluminum Bar Cutting Planner")

	appUI := ui.NewApp(application, window)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1100, 720))
	window.CenterOnScreen()
	window.ShowAndRun()
}
