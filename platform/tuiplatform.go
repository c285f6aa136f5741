package platform

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"lautenbacher.net/lavalamp/config"
	"lautenbacher.net/lavalamp/lamp"
	"lautenbacher.net/lavalamp/logging"
)

type TUIPlatform struct {
	*AbstractPlatform
	tviewapp     *tview.Application
	intro        *tview.TextView
	ledDisplay   *tview.TextView
	logView      *tview.TextView
	ossignalChan chan os.Signal
	logFlushOnce sync.Once
}

func NewTUIPlatform(conf *config.Config, ossignalchan chan os.Signal) *TUIPlatform {
	inst := &TUIPlatform{ossignalChan: ossignalchan}
	inst.AbstractPlatform = newAbstractPlatform(conf, inst.tuiDisplayFunc)
	return inst
}

func (s *TUIPlatform) Start() error {
	s.initSimulationTUI()
	s.startDisplayDriver()
	return nil
}

func (s *TUIPlatform) Stop() {
	s.stopDisplayDriver()
	logging.BufferOutput()
	if s.tviewapp != nil {
		s.tviewapp.Stop()
	}
}

func (s *TUIPlatform) tuiDisplayFunc(frame lamp.Frame) {
	text := renderStrip(frame)
	s.tviewapp.QueueUpdateDraw(func() {
		s.ledDisplay.SetText(text)
	})
}

func (s *TUIPlatform) getIntroText() string {
	state := "[green]up[-]"
	if s.ButtonPressed() {
		state = "[#ff0000]DOWN[-]"
	}
	line1 := fmt.Sprintf("Variant [#ffff00]%s[-] | %d LEDs | button is %s", s.config.Lamp.Variant, s.config.Lamp.LedsTotal, state)
	line2 := fmt.Sprintf("Hit [blue]space[-] to press/release the button (short > %v, long > %v)", s.config.Lamp.ShortPress, s.config.Lamp.LongPress)
	line3 := "Hit [#ff0000]q[-] to exit, [#ff0000]r[-] to reload, [#ff0000]Up/Down[-] to scroll logs"
	return fmt.Sprintf("%s\n%s\n%s", line1, line2, line3)
}

func (s *TUIPlatform) initSimulationTUI() {
	s.tviewapp = tview.NewApplication()

	s.intro = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	s.intro.SetText(s.getIntroText())
	s.intro.SetBorder(true).SetTitle(" Lava Lamp Simulation ").SetTitleColor(tcell.ColorLightBlue)
	s.intro.SetBackgroundColor(tcell.NewRGBColor(20, 20, 20))

	s.ledDisplay = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	s.ledDisplay.SetBorder(true)
	s.ledDisplay.SetBackgroundColor(tcell.NewRGBColor(30, 30, 30))

	s.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetChangedFunc(func() {
			s.logView.ScrollToEnd()
			s.tviewapp.Draw()
		})
	s.logView.SetBorder(true).SetTitle(" Logs ").SetTitleColor(tcell.ColorLightBlue)
	s.logView.SetBackgroundColor(tcell.NewRGBColor(40, 40, 40))

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.intro, 5, 0, false).
		AddItem(s.ledDisplay, 4, 0, false).
		AddItem(s.logView, 0, 1, true)

	s.tviewapp.SetAfterDrawFunc(func(screen tcell.Screen) {
		s.logFlushOnce.Do(func() {
			if err := logging.SetOutput(tview.ANSIWriter(s.logView)); err != nil {
				slog.Error("Can't attach log pane", "error", err)
			}
			close(s.readyChan)
		})
	})

	s.tviewapp.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC:
			s.ossignalChan <- os.Interrupt
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case ' ':
				s.SetButton(!s.ButtonPressed())
				slog.Debug("Virtual button", "pressed", s.ButtonPressed())
				s.intro.SetText(s.getIntroText())
				return nil
			case 'q', 'Q':
				s.ossignalChan <- os.Interrupt
				return nil
			case 'r', 'R':
				s.ossignalChan <- syscall.SIGHUP
				return nil
			}
		case tcell.KeyUp:
			row, col := s.logView.GetScrollOffset()
			s.logView.ScrollTo(row-1, col)
			return nil
		case tcell.KeyDown:
			row, col := s.logView.GetScrollOffset()
			s.logView.ScrollTo(row+1, col)
			return nil
		}
		return event
	})

	go func() {
		if err := s.tviewapp.SetRoot(layout, true).Run(); err != nil {
			slog.Error("Error running TUI", "error", err)
			s.ossignalChan <- os.Interrupt
		}
	}()
}

var brightnessBars = []rune(" ▁▂▃▄▅▆▇█")

// renderStrip draws a frame as two rows: the visible color of every LED and
// a bar for its brightness register.
func renderStrip(frame lamp.Frame) string {
	var top, bottom strings.Builder
	top.WriteString(" ")
	bottom.WriteString(" ")
	for _, led := range frame {
		if led.IsEmpty() {
			top.WriteString("  ")
			bottom.WriteString("  ")
			continue
		}
		color := "[" + led.Hex() + "]"
		top.WriteString(color + "██[-]")
		bar := brightnessBars[int(led.Brightness&lamp.MaxBrightness)*(len(brightnessBars)-1)/lamp.MaxBrightness]
		bottom.WriteString(color + string(bar) + string(bar) + "[-]")
	}
	return top.String() + "\n" + bottom.String()
}
