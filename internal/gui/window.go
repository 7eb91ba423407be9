// Package gui provides the Fyne desktop window for typing rounds.
package gui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/verte-zerg/protype/internal/session"
	"github.com/verte-zerg/protype/internal/trainer"
)

// Window dimensions
const (
	WindowWidth  = 950
	WindowHeight = 650
)

const (
	readyText     = "Ready to type?"
	nextRoundText = "Next round ready!"
	confirmText   = "Reset all your lifetime statistics?"
)

var (
	validColor   = color.NRGBA{R: 0x2E, G: 0xCC, B: 0x71, A: 0xFF}
	invalidColor = color.NRGBA{R: 0xE7, G: 0x4C, B: 0x3C, A: 0xFF}
)

// BuildMainWindow creates the typing window for tr.
func BuildMainWindow(app fyne.App, tr *trainer.Trainer) fyne.Window {
	win := app.NewWindow("ProType | Typing Speed Test")
	win.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	v := newView(app, win, tr)
	win.SetContent(v.content)
	win.Canvas().Focus(v.input)
	return win
}

// view holds the widgets of the main window.
type view struct {
	app     fyne.App
	win     fyne.Window
	trainer *trainer.Trainer

	best    *widget.Label
	sample  *widget.Label
	input   *widget.Entry
	outline *canvas.Rectangle
	live    *widget.Label

	resetBtn *widget.Button
	clearBtn *widget.Button
	exitBtn  *widget.Button

	content fyne.CanvasObject
}

func newView(app fyne.App, win fyne.Window, tr *trainer.Trainer) *view {
	v := &view{app: app, win: win, trainer: tr}

	v.resetBtn = widget.NewButton("Reset Test", v.nextRound)
	v.resetBtn.Importance = widget.HighImportance
	v.clearBtn = widget.NewButton("Clear Stats", v.askClear)
	v.clearBtn.Importance = widget.WarningImportance
	v.exitBtn = widget.NewButton("Exit App", app.Quit)
	v.exitBtn.Importance = widget.DangerImportance

	controls := widget.NewLabel("CONTROLS")
	controls.TextStyle = fyne.TextStyle{Bold: true}
	controls.Alignment = fyne.TextAlignCenter
	sidebar := container.NewBorder(
		container.NewVBox(controls, v.resetBtn, v.clearBtn),
		container.NewPadded(v.exitBtn),
		nil, nil,
	)

	v.best = widget.NewLabel("")
	v.best.TextStyle = fyne.TextStyle{Bold: true}

	v.sample = widget.NewLabel(tr.Target())
	v.sample.Wrapping = fyne.TextWrapWord
	v.sample.Alignment = fyne.TextAlignCenter
	v.sample.TextStyle = fyne.TextStyle{Monospace: true}

	v.input = widget.NewMultiLineEntry()
	v.input.Wrapping = fyne.TextWrapWord
	v.input.SetMinRowsVisible(4)
	v.input.OnChanged = v.onChanged

	v.outline = canvas.NewRectangle(color.Transparent)
	v.outline.StrokeWidth = 2

	v.live = widget.NewLabel(readyText)
	v.live.Alignment = fyne.TextAlignCenter

	body := container.NewBorder(
		v.best, nil, nil, nil,
		container.NewVBox(
			container.NewPadded(v.sample),
			container.NewStack(v.outline, container.NewPadded(v.input)),
			v.live,
		),
	)

	split := container.NewHSplit(sidebar, body)
	split.SetOffset(0.2)
	v.content = split
	v.refreshBest()
	return v
}

// onChanged runs on every edit of the input. Fyne reports the change after
// the key is applied, so the key-down and key-up steps run back to back.
// An emptied input never starts the timer.
func (v *view) onChanged(text string) {
	if text == "" {
		return
	}
	v.trainer.KeyDown()
	v.apply(v.trainer.KeyUp(text))
}

func (v *view) apply(out trainer.Outcome) {
	if out.Signal == session.SignalNone {
		return
	}
	v.setOutline(out.Signal)
	v.live.SetText(fmt.Sprintf("Live Speed: %d WPM", out.WPM))
	if !out.Completed {
		return
	}
	msg := fmt.Sprintf("Speed: %d WPM", out.WPM)
	if out.NewHigh {
		msg += "\n🎉 NEW HIGH SCORE!"
	}
	v.refreshBest()
	v.showRound()
	dialog.ShowInformation("Paragraph Complete", msg, v.win)
}

func (v *view) nextRound() {
	v.trainer.Reset()
	v.showRound()
}

// showRound clears the input for the current target.
func (v *view) showRound() {
	v.sample.SetText(v.trainer.Target())
	v.input.SetText("")
	v.setOutline(session.SignalNone)
	v.live.SetText(nextRoundText)
	v.win.Canvas().Focus(v.input)
}

func (v *view) askClear() {
	dialog.ShowConfirm("Confirm", confirmText, v.confirmClear, v.win)
}

func (v *view) confirmClear(ok bool) {
	if !ok {
		return
	}
	if err := v.trainer.ClearStats(); err != nil {
		dialog.ShowError(err, v.win)
	}
	v.refreshBest()
}

func (v *view) refreshBest() {
	v.best.SetText(fmt.Sprintf("🏆 BEST: %d WPM", v.trainer.Record().HighScore))
}

func (v *view) setOutline(sig session.Signal) {
	switch sig {
	case session.SignalValid, session.SignalComplete:
		v.outline.StrokeColor = validColor
	case session.SignalInvalid:
		v.outline.StrokeColor = invalidColor
	default:
		v.outline.StrokeColor = color.Transparent
	}
	v.outline.Refresh()
}
