package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Simple console type definition
type Simple struct {
	rl *readline.Instance
}

// NewSimple returns a line console with the given prompt
func NewSimple(prompt string) (*Simple, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Simple{rl: rl}, nil
}

// Stdout returns a writer that does not break the prompt line.
// Use this for log output.
func (c *Simple) Stdout() io.Writer {
	return c.rl.Stdout()
}

// WriteConsole displays a string on the console
func (c *Simple) WriteConsole(msg string) error {
	return writeLines(c.rl.Stdout(), msg)
}

// Run reads commands until EOF, quit or ctx is done.
func (c *Simple) Run(ctx context.Context, exec Executor) error {
	defer c.rl.Close()

	next := func() (string, error) {
		for {
			line, err := c.rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			return line, err
		}
	}
	return serve(ctx, next, c.rl.Stdout(), exec)
}

// serve is the monitor loop shared by the line console and tests
func serve(ctx context.Context, next func() (string, error), out io.Writer, exec Executor) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if isQuit(line) {
			return nil
		}

		res, err := exec(line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if err := writeLines(out, res); err != nil {
			return err
		}
	}
}

func writeLines(w io.Writer, msg string) error {
	for _, line := range strings.Split(msg, "\n") {
		if line != "" {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
