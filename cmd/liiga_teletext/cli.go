package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"liiga-teletext/internal/config"
	"liiga-teletext/internal/logging"
	"liiga-teletext/internal/terminal"
	"liiga-teletext/internal/timeutil"
	"liiga-teletext/internal/ui"
	"liiga-teletext/internal/viewer"
)

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

var errModeConflict = errors.New("-compact and -wide cannot be used together")

type cliOptions struct {
	date               string
	once               bool
	compact            bool
	wide               bool
	plain              bool
	minRefreshInterval int
	debug              bool
	showConfig         bool
	newAPIDomain       string
	newLogFilePath     string
	clearLogFilePath   bool
	version            bool
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("liiga_teletext", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.date, "date", "", "show games of this date (YYYY-MM-DD)")
	fs.BoolVar(&opts.once, "once", false, "print the page once and exit")
	fs.BoolVar(&opts.compact, "compact", false, "one line per game")
	fs.BoolVar(&opts.wide, "wide", false, "two columns on wide terminals")
	fs.BoolVar(&opts.plain, "plain", false, "disable clickable video links")
	fs.IntVar(&opts.minRefreshInterval, "min-refresh-interval", 0, "refresh interval in seconds for games about to start")
	fs.BoolVar(&opts.debug, "debug", false, "log at debug level")
	fs.BoolVar(&opts.showConfig, "config", false, "print the configuration and exit")
	fs.StringVar(&opts.newAPIDomain, "new-api-domain", "", "save a new API domain")
	fs.StringVar(&opts.newLogFilePath, "new-log-file-path", "", "save a new log file path")
	fs.BoolVar(&opts.clearLogFilePath, "clear-log-file-path", false, "reset the log file path to the default")
	fs.BoolVar(&opts.version, "version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.compact && opts.wide {
		return opts, errModeConflict
	}
	if opts.date != "" {
		if _, err := timeutil.ParseDate(opts.date); err != nil {
			return opts, fmt.Errorf("invalid -date %q: expected YYYY-MM-DD", opts.date)
		}
	}
	if opts.minRefreshInterval < 0 {
		return opts, errors.New("-min-refresh-interval must not be negative")
	}
	return opts, nil
}

func (o cliOptions) maintenance() bool {
	return o.newAPIDomain != "" || o.newLogFilePath != "" || o.clearLogFilePath
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, err)
		}
		return exitUsage
	}
	if opts.version {
		fmt.Fprintf(stdout, "liiga_teletext %s\n", appVersion)
		return exitOK
	}

	path, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFatal
	}
	if opts.maintenance() {
		return updateConfig(path, opts, stdout, stderr)
	}
	if opts.showConfig {
		return printConfig(path, stdout, stderr)
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, "set the API domain with -new-api-domain <domain>")
		return exitFatal
	}
	if opts.debug {
		cfg.Debug = true
	}
	if opts.minRefreshInterval > 0 {
		cfg.MinRefreshInterval = time.Duration(opts.minRefreshInterval) * time.Second
	}

	level := "info"
	if cfg.Debug {
		level = "debug"
	}
	logger, closeLog := logging.NewFileLogger(logging.Config{
		Level:    level,
		FilePath: cfg.LogFilePath,
		Service:  "liiga-teletext",
		Version:  appVersion,
	})
	defer func() { _ = closeLog() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v := viewer.New(cfg, logger)
	uiOpts := ui.Options{
		Date:              opts.date,
		Compact:           opts.compact,
		Wide:              opts.wide,
		DisableVideoLinks: opts.plain,
		Logger:            logger,
	}

	out, outIsTerm := stdout.(*os.File)
	outIsTerm = outIsTerm && terminal.IsTerminal(int(out.Fd()))
	in, inIsTerm := stdin.(*os.File)
	inIsTerm = inIsTerm && terminal.IsTerminal(int(in.Fd()))

	if opts.once || !outIsTerm || !inIsTerm {
		width := terminal.Fallback.Width
		if outIsTerm {
			if d, err := terminal.SizeOf(int(out.Fd()))(); err == nil && d.Valid() {
				width = d.Width
			}
		}
		uiOpts.Color = outIsTerm
		if err := v.RunOnce(ctx, stdout, width, uiOpts); err != nil {
			logging.Error(logger, "one-shot fetch failed", err)
			return exitFatal
		}
		return exitOK
	}

	restore, err := terminal.Enter(int(in.Fd()), stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFatal
	}
	defer func() { _ = restore() }()

	term := ui.Terminal{In: stdin, Out: stdout, Size: terminal.SizeOf(int(out.Fd()))}
	if err := v.Run(ctx, term, uiOpts); err != nil {
		logging.Error(logger, "viewer failed", err)
		return exitFatal
	}
	return exitOK
}

func updateConfig(path string, opts cliOptions, stdout, stderr io.Writer) int {
	file, err := config.Update(path, func(f *config.File) {
		if opts.newAPIDomain != "" {
			f.APIDomain = opts.newAPIDomain
		}
		if opts.newLogFilePath != "" {
			f.LogFilePath = opts.newLogFilePath
		}
		if opts.clearLogFilePath {
			f.LogFilePath = ""
		}
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFatal
	}
	fmt.Fprintf(stdout, "config saved to %s\n", path)
	writeFile(stdout, path, file)
	return exitOK
}

func printConfig(path string, stdout, stderr io.Writer) int {
	file, err := config.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(stderr, err)
		return exitFatal
	}
	fmt.Fprintf(stdout, "config file: %s\n", path)
	writeFile(stdout, path, file)
	return exitOK
}

func writeFile(w io.Writer, path string, file config.File) {
	domain := file.APIDomain
	if domain == "" {
		domain = "(not set)"
	}
	logPath := file.LogFilePath
	if logPath == "" {
		logPath = config.DefaultLogPath(path) + " (default)"
	}
	fmt.Fprintf(w, "api_domain: %s\n", domain)
	fmt.Fprintf(w, "log_file_path: %s\n", logPath)
}
