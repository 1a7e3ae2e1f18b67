package main

import (
	"fmt"
	"time"

	"github.com/jroimartin/gocui"

	"virtfoo/config"
	"virtfoo/console"
	"virtfoo/logger"
	"virtfoo/system"
	"virtfoo/trace"
)

/*
gocui front end:
	- up: register view, refreshed every 250ms from a side effect free snapshot
	- middle: status / console output, autoscrolled
	- down: command input, Enter runs a monitor command, Ctrl-C quits
*/

const (
	registersView = "registers"
	inputView     = "input"
)

func runGUI(cfg config.Config, rec trace.Recorder) error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return fmt.Errorf("couldn't create gui: %w", err)
	}
	defer g.Close()

	g.Cursor = true
	g.SetManagerFunc(layout)

	c := console.NewGui(g)
	l := logger.To(c)
	if cfg.Log != "" {
		if l, err = logger.New(cfg.Log); err != nil {
			return err
		}
	}

	sys, err := system.New(cfg, l, rec)
	if err != nil {
		return err
	}
	defer sys.Close()

	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		return err
	}
	if err := g.SetKeybinding(inputView, gocui.KeyEnter, gocui.ModNone, c.Enter(sys.Exec)); err != nil {
		return err
	}

	_ = c.WriteConsole(fmt.Sprintf("virt-foo at %#08x, type help for commands", cfg.Base))

	stop := make(chan struct{})
	defer close(stop)
	updateRegisters(sys, g, stop)

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

// update registers display
// has to be run in go routine -> gocui allows updating the view only through Update function
func updateRegisters(sys *system.System, g *gocui.Gui, stop <-chan struct{}) {
	ticker := time.NewTicker(250 * time.Millisecond)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
			}

			g.Update(func(g *gocui.Gui) error {
				v, err := g.View(registersView)
				if err != nil {
					return err
				}
				v.Clear()
				sys.DumpRegisters(v)
				fmt.Fprintf(v, "\n pending: %v", sys.Interrupts.Pending())
				return nil
			})
		}
	}()
}

// gocui layout
func layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	// up -> register values
	if v, err := g.SetView(registersView, 0, 0, maxX-1, 3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Registers"
	}
	// middle -> status
	if v, err := g.SetView(console.StatusView, 0, 4, maxX-1, maxY-4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
		v.Autoscroll = true
		v.Wrap = true
	}
	// down -> command input
	if v, err := g.SetView(inputView, 0, maxY-3, maxX-1, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Command"
		v.Editable = true
		if _, err := g.SetCurrentView(inputView); err != nil {
			return err
		}
	}
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}
