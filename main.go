package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"virtfoo/config"
	"virtfoo/console"
	"virtfoo/logger"
	"virtfoo/system"
	"virtfoo/trace"
)

func main() {
	var (
		configPath = flag.String("config", "", "machine description (YAML)")
		logPath    = flag.String("log", "", "log file, stdout when empty")
		tracePath  = flag.String("trace", "", "record bus accesses to this CBOR file")
		gui        = flag.Bool("gui", false, "use the gocui front end")
		dump       = flag.String("dump", "", "print a recorded trace and exit")
	)
	flag.Parse()

	if *dump != "" {
		if err := dumpTrace(*dump); err != nil {
			log.Fatalf("dump: %v", err)
		}
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *logPath != "" {
		cfg.Log = *logPath
	}
	if *tracePath != "" {
		cfg.Trace = *tracePath
	}
	if *gui {
		cfg.GUI = true
	}

	var rec trace.Recorder = trace.Discard
	if cfg.Trace != "" {
		fr, err := trace.NewFileRecorder(cfg.Trace)
		if err != nil {
			log.Fatalf("trace: %v", err)
		}
		rec = fr
	}

	if cfg.GUI {
		if err := runGUI(cfg, rec); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := runConsole(cfg, rec); err != nil {
		log.Fatal(err)
	}
}

// start the line console. Logs go through readline unless a log file is set.
func runConsole(cfg config.Config, rec trace.Recorder) error {
	c, err := console.NewSimple(". ")
	if err != nil {
		return err
	}

	l := logger.To(c.Stdout())
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

	_ = c.WriteConsole(fmt.Sprintf("virt-foo at %#08x, type help for commands", cfg.Base))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	return c.Run(ctx, sys.Exec)
}

func dumpTrace(path string) error {
	events, err := trace.ReadAll(path)
	for _, e := range events {
		fmt.Println(trace.Format(e))
	}
	return err
}
