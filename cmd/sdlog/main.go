// Command sdlog writes and inspects storage-card data logs.
//
// Usage:
//
//	sdlog <command> [flags]
//
// Commands:
//
//	write        Log stdin lines to the next free (or given) log file
//	next         Print the next free auto-numbered file name
//	view         View a log file in human-readable format
//	stats        Show statistics for one or more log files
//	export       Export a log file to JSONL, CSV or CBOR
//	interactive  Drive a logger from an interactive shell
//
// Examples:
//
//	# Log sensor output into ./card, one flushed line per record
//	sensor-dump | sdlog write -dir ./card
//
//	# Same, through the buffered writer
//	sensor-dump | sdlog write -dir ./card -buffered
//
//	# Statistics for every log under a mounted card
//	sdlog stats '/media/card/**/LOG*'
//
//	# Export to compressed CBOR
//	sdlog export -format cbor -compress zstd -o LOG3.cbor.zst /media/card/LOG3
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/uuid"

	"github.com/macrocketry/sdlog/cmd/sdlog/commands"
	"github.com/macrocketry/sdlog/cmd/sdlog/interactive"
	"github.com/macrocketry/sdlog/pkg/config"
	"github.com/macrocketry/sdlog/pkg/logfile"
	"github.com/macrocketry/sdlog/pkg/storage"
)

var usage = heredoc.Doc(`
	sdlog - storage-card data logger

	Usage:
	  sdlog <command> [flags]

	Commands:
	  write        Log stdin lines to the next free (or given) log file
	  next         Print the next free auto-numbered file name
	  view         View a log file in human-readable format
	  stats        Show statistics for one or more log files
	  export       Export a log file to JSONL, CSV or CBOR
	  interactive  Drive a logger from an interactive shell

	Use "sdlog <command> -help" for more information about a command.
`)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "write":
		runWrite(args)
	case "next":
		runNext(args)
	case "view":
		runView(args)
	case "stats":
		runStats(args)
	case "export":
		runExport(args)
	case "interactive":
		runInteractive(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// loggerFlags are the settings shared by commands that open a logger.
// Flags override the config file and SDLOG_* environment.
type loggerFlags struct {
	configFile string
	backend    string
	dir        string
	path       string
	prefix     string
	capacity   int
	chipSelect int
	logLevel   string
}

func (f *loggerFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configFile, "config", "", "Configuration file path (YAML)")
	fs.StringVar(&f.backend, "backend", "", "Storage backend: dir, memory")
	fs.StringVar(&f.dir, "dir", "", "Card root directory for the dir backend")
	fs.StringVar(&f.path, "path", "", "Explicit log file (default: next auto-numbered)")
	fs.StringVar(&f.prefix, "prefix", "", "Prefix for auto-numbered files")
	fs.IntVar(&f.capacity, "buffer", 0, "Buffered-write window in bytes")
	fs.IntVar(&f.chipSelect, "cs", 0, "SPI chip-select line")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// load builds the configuration, applying only the flags that were set.
func (f *loggerFlags) load(fs *flag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "backend":
			cfg.Backend = f.backend
		case "dir":
			cfg.Dir = f.dir
		case "path":
			cfg.Path = f.path
		case "prefix":
			cfg.Prefix = f.prefix
		case "buffer":
			cfg.BufferCapacity = f.capacity
		case "cs":
			cfg.ChipSelect = f.chipSelect
		case "log-level":
			cfg.LogLevel = f.logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSlog(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runWrite(args []string) {
	fs := flag.NewFlagSet("write", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, heredoc.Doc(`
			sdlog write - Log stdin lines to a log file

			Usage:
			  sdlog write [flags] < input

			Flags:
		`))
		fs.PrintDefaults()
	}

	var lf loggerFlags
	lf.register(fs)
	buffered := fs.Bool("buffered", false, "Use the buffered writer instead of flushing every line")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, err := lf.load(fs)
	if err != nil {
		fatal(err)
	}

	runID := uuid.NewString()
	log := newSlog(cfg).With("run_id", runID)

	l, err := cfg.NewLogger(log)
	if err != nil {
		fatal(err)
	}
	defer l.Close()

	n, err := commands.RunWrite(l, os.Stdin, *buffered)
	if err != nil {
		l.Close()
		fatal(err)
	}
	log.Info("done", "path", l.Path(), "lines", n, "buffered", *buffered)
}

func runNext(args []string) {
	fs := flag.NewFlagSet("next", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, heredoc.Doc(`
			sdlog next - Print the next free auto-numbered file name

			Usage:
			  sdlog next [flags]

			Flags:
		`))
		fs.PrintDefaults()
	}

	var lf loggerFlags
	lf.register(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, err := lf.load(fs)
	if err != nil {
		fatal(err)
	}
	backend, err := cfg.NewBackend()
	if err != nil {
		fatal(err)
	}

	if err := commands.RunNext(backend, storage.ChipSelect(cfg.ChipSelect), cfg.Prefix, os.Stdout); err != nil {
		fatal(err)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, heredoc.Doc(`
			sdlog view - View log file in human-readable format

			Usage:
			  sdlog view [flags] <file>

			Flags:
		`))
		fs.PrintDefaults()
	}

	kind := fs.String("kind", "", "Filter by kind (data, start, buffered)")
	session := fs.Int("session", -1, "Filter by session (1-based)")
	segment := fs.Int("segment", -1, "Filter by buffer segment (0-based)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	var filter logfile.Filter
	if *kind != "" {
		k, err := logfile.ParseKind(*kind)
		if err != nil {
			fatal(err)
		}
		filter.Kind = &k
	}
	if *session >= 0 {
		filter.Session = session
	}
	if *segment >= 0 {
		filter.Segment = segment
	}

	if err := commands.RunView(fs.Arg(0), filter, os.Stdout); err != nil {
		fatal(err)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, heredoc.Doc(`
			sdlog stats - Show statistics for log files

			Usage:
			  sdlog stats <file|glob>...

			Globs support ** (for example 'card/**/LOG*').
		`))
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunStats(fs.Args(), os.Stdout); err != nil {
		fatal(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, heredoc.Doc(`
			sdlog export - Export log file to JSONL, CSV or CBOR

			Usage:
			  sdlog export [flags] <file>

			Flags:
		`))
		fs.PrintDefaults()
	}

	format := fs.String("format", logfile.FormatJSONL, "Output format (jsonl, csv, cbor)")
	compress := fs.String("compress", commands.CompressNone, "Output compression (none, gzip, zstd)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunExport(fs.Arg(0), *format, *compress, *output); err != nil {
		fatal(err)
	}
}

func runInteractive(args []string) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, heredoc.Doc(`
			sdlog interactive - Drive a logger from an interactive shell

			Usage:
			  sdlog interactive [flags]

			Flags:
		`))
		fs.PrintDefaults()
	}

	var lf loggerFlags
	lf.register(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, err := lf.load(fs)
	if err != nil {
		fatal(err)
	}

	log := newSlog(cfg).With("run_id", uuid.NewString())
	backend, err := cfg.NewBackend()
	if err != nil {
		fatal(err)
	}
	l := cfg.Open(backend, log)
	defer l.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := interactive.New(l, backend, os.Stdout).Run(ctx); err != nil {
		fatal(err)
	}
}
