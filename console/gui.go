package console

import (
	"fmt"
	"strings"

	"github.com/jroimartin/gocui"
)

// StatusView is the gocui view receiving console output
const StatusView = "status"

// Gui type definition
type Gui struct {
	consoleOut chan string // string channel, to which the console data is sent to
	g          *gocui.Gui  // main gocui GUI object
}

// NewGui returns a pointer to the new console and runs the initialization procedure:
func NewGui(g *gocui.Gui) *Gui {
	c := new(Gui)
	c.consoleOut = make(chan string, 64)
	c.g = g
	c.initGui()
	return c
}

// initGui starts the goroutine moving console lines into the status view.
// gocui only allows view updates from within Update.
func (c *Gui) initGui() {
	go func() {
		for s := range c.consoleOut {
			line := s
			c.g.Update(func(g *gocui.Gui) error {
				v, err := g.View(StatusView)
				if err != nil {
					return err
				}
				fmt.Fprint(v, line)
				return nil
			})
		}
	}()
}

// WriteConsole displays a string on the console
func (c *Gui) WriteConsole(msg string) error {
	for _, line := range strings.Split(msg, "\n") {
		if line != "" {
			c.consoleOut <- line + "\n"
		}
	}
	return nil
}

// Write makes the console usable as a log destination
func (c *Gui) Write(p []byte) (int, error) {
	if err := c.WriteConsole(string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Enter returns a key handler running the content of the input view
// through exec and echoing the result.
func (c *Gui) Enter(exec Executor) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		line := strings.TrimSpace(v.Buffer())
		v.Clear()
		if err := v.SetCursor(0, 0); err != nil {
			return err
		}
		if line == "" {
			return nil
		}
		if isQuit(line) {
			return gocui.ErrQuit
		}

		// echo with the prompt symbol
		_ = c.WriteConsole(". " + line)
		res, err := exec(line)
		if err != nil {
			return c.WriteConsole("error: " + err.Error())
		}
		return c.WriteConsole(res)
	}
}
