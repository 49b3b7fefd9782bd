package layout

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Luismorlan/chain_in_go/commands"
	"github.com/jroimartin/gocui"
)

const (
	pastCmdView = "pastcommand"
	inputView   = "input"
	loggerView  = "logger"
	manualView  = "manual"
)

type cmd struct {
	str   string
	ready bool
	m     sync.RWMutex
}

// PastCmd is the ViewManager that logs past command.
type PastCmd struct {
	name string
	last *cmd
}

// Input box for command.
type Input struct {
	name string
	cmd  chan commands.Command
	last *cmd
}

type Logger struct {
	name string
}

type Manual struct {
	name string
	text string
}

func (pc *PastCmd) Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// Bottom left corner.
	v, err := g.SetView(pc.name, 1, maxY*2/3, maxX/3, maxY-6)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Autoscroll = true
	v.Wrap = true

	pc.last.m.Lock()
	defer pc.last.m.Unlock()
	if pc.last.ready {
		fmt.Fprintln(v, "> "+pc.last.str)
	}
	pc.last.ready = false

	return nil
}

func (i *Input) Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// Bottom.
	v, err := g.SetView(i.name, 1, maxY-5, maxX-1, maxY-1)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Wrap = true
	v.Autoscroll = true
	v.Editor = i
	v.Editable = true
	return nil
}

func (l *Logger) Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// Right side.
	v, err := g.SetView(l.name, maxX/3+1, 1, maxX-1, maxY-6)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Autoscroll = true
	v.Wrap = true
	return nil
}

func (m *Manual) Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// Top left corner.
	v, err := g.SetView(m.name, 1, 1, maxX/3, maxY*2/3-1)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Wrap = true
	v.Clear()
	fmt.Fprintln(v, m.text)
	return nil
}

// submit parses a typed line, records it for the past command view and
// returns the command when it is valid.
func (i *Input) submit(s string) (commands.Command, bool) {
	s = strings.TrimSpace(strings.Replace(s, "\n", "", -1))
	op, err := commands.CreateCommand(s)
	i.last.m.Lock()
	i.last.str = s
	if err != nil {
		i.last.str = s + "\n" + err.Error()
	}
	i.last.ready = true
	i.last.m.Unlock()
	return op, err == nil
}

func (i *Input) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	switch {
	case key == gocui.KeyEnter:
		if op, ok := i.submit(v.Buffer()); ok {
			// Hand over without blocking the UI loop.
			go func() { i.cmd <- op }()
		}

		// Reset cursor.
		v.Clear()
		v.SetOrigin(0, 0)
		v.SetCursor(0, 0)

	case ch != 0 && mod == 0:
		v.EditWrite(ch)
	case key == gocui.KeySpace:
		v.EditWrite(' ')
	case key == gocui.KeyBackspace || key == gocui.KeyBackspace2:
		v.EditDelete(true)
	}
}

func SetFocus(name string) func(g *gocui.Gui) error {
	return func(g *gocui.Gui) error {
		_, err := g.SetCurrentView(name)
		return err
	}
}

// Create a GUI, using the command channel to pass commands to the ledger.
// The manual at manualPath is shown in the top left corner.
func CreateGui(cmdCh chan commands.Command, manualPath string) (*gocui.Gui, error) {
	manual, err := os.ReadFile(manualPath)
	if err != nil {
		return nil, err
	}

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, err
	}

	g.Cursor = true

	last := &cmd{}
	pc := &PastCmd{name: pastCmdView, last: last}
	input := &Input{name: inputView, cmd: cmdCh, last: last}
	l := &Logger{name: loggerView}
	m := &Manual{name: manualView, text: string(manual)}
	focus := gocui.ManagerFunc(SetFocus(inputView))
	g.SetManager(pc, input, l, m, focus)

	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		g.Close()
		return nil, err
	}

	return g, nil
}

// Log appends a line to the logger view. Safe to call from any goroutine.
func Log(g *gocui.Gui, s string) {
	g.Update(func(g *gocui.Gui) error {
		v, err := g.View(loggerView)
		if err != nil {
			return err
		}
		fmt.Fprintln(v, s)
		return nil
	})
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}
