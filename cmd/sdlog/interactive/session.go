// Package interactive provides the interactive shell for sdlog.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/macrocketry/sdlog/pkg/sdlog"
	"github.com/macrocketry/sdlog/pkg/storage"
)

// Session drives a Logger from typed commands.
type Session struct {
	logger  *sdlog.Logger
	backend storage.Backend
	out     io.Writer
}

// New creates a session over an already constructed Logger and its backend.
// Output goes to out until Run attaches a terminal.
func New(logger *sdlog.Logger, backend storage.Backend, out io.Writer) *Session {
	return &Session{logger: logger, backend: backend, out: out}
}

// Run starts the interactive command loop on the terminal.
func (s *Session) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sdlog> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	s.out = rl.Stdout()

	s.printHelp()
	s.cmdStatus()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}

		if s.Exec(line) {
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}
	}
}

// Exec runs one command line and reports whether the session should end.
func (s *Session) Exec(line string) (quit bool) {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	cmd, rest, _ := strings.Cut(input, " ")
	cmd = strings.ToLower(cmd)
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "write", "w":
		s.cmdWrite(rest)

	case "buffer", "b":
		s.cmdBuffer(rest)

	case "open", "o":
		s.cmdOpen(rest)

	case "next", "n":
		s.cmdNext()

	case "status", "s":
		s.cmdStatus()

	case "close":
		s.cmdClose()

	case "quit", "exit", "q":
		return true

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.out, `
sdlog Commands:
  write <text>   - Write a flushed line
  buffer <text>  - Append text through the buffered writer (\n for newline)
  open <path>    - Open a file by path
  next           - Open the next free auto-numbered file
  status         - Show connection and buffer state
  close          - Flush and close the current file
  quit           - Exit`)
}

func (s *Session) cmdWrite(text string) {
	if !s.logger.WriteFile(text) {
		s.printErr("write")
		return
	}
	fmt.Fprintln(s.out, "ok")
}

func (s *Session) cmdBuffer(text string) {
	text = strings.ReplaceAll(text, `\n`, "\n")
	before := s.logger.BufferFill()
	if !s.logger.WriteBuffer(text) {
		s.printErr("buffer")
		return
	}
	after := s.logger.BufferFill()
	// a non-empty write that did not flush always grows the window
	if len(text) > 0 && after <= before {
		fmt.Fprintf(s.out, "ok (window flushed, %d/%d)\n", after, s.logger.Capacity())
		return
	}
	fmt.Fprintf(s.out, "ok (%d/%d)\n", after, s.logger.Capacity())
}

func (s *Session) cmdOpen(path string) {
	if path == "" {
		fmt.Fprintln(s.out, "Usage: open <path>")
		return
	}
	if !s.logger.OpenFile(path) {
		s.printErr("open")
		return
	}
	fmt.Fprintf(s.out, "Opened %s\n", s.logger.Path())
}

func (s *Session) cmdNext() {
	if !s.logger.OpenNextFile() {
		s.printErr("next")
		return
	}
	fmt.Fprintf(s.out, "Opened %s\n", s.logger.Path())
}

func (s *Session) cmdClose() {
	if err := s.logger.Close(); err != nil {
		fmt.Fprintf(s.out, "close failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Closed")
}

func (s *Session) cmdStatus() {
	fmt.Fprintf(s.out, "Storage: %s\n", connected(s.logger.ConnectSD()))
	fmt.Fprintf(s.out, "File:    %s", connected(s.logger.ConnectFile()))
	if p := s.logger.Path(); p != "" {
		fmt.Fprintf(s.out, " (%s)", p)
	}
	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "Buffer:  %d/%d\n", s.logger.BufferFill(), s.logger.Capacity())
	if s.logger.ConnectSD() {
		if name, err := sdlog.NextFileName(s.backend, s.logger.Prefix()); err == nil {
			fmt.Fprintf(s.out, "Next:    %s\n", name)
		}
	}
	if err := s.logger.Err(); err != nil {
		fmt.Fprintf(s.out, "Last error: %v\n", err)
	}
}

func (s *Session) printErr(op string) {
	fmt.Fprintf(s.out, "%s failed: %v\n", op, s.logger.Err())
}

func connected(ok bool) string {
	if ok {
		return "connected"
	}
	return "not connected"
}
