// Command jtab reads and writes JSON documents made of an array of flat
// objects, and copies them to and from SQL databases.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/arnodel/jsontable"
	"github.com/arnodel/jsontable/internal/config"
	"github.com/arnodel/jsontable/internal/format"
)

var version = "dev"

func main() {
	// Do not handle SIGPIPE, we'll do it ourselves (see error handling below).
	signal.Ignore(syscall.SIGPIPE)

	// Display a stack trace on panic
	defer func() {
		if e := recover(); e != nil {
			fmt.Fprintf(os.Stderr, "%s: %s", e, debug.Stack())
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	if err != nil {
		if errors.Is(err, syscall.EPIPE) {
			// stdout is a pipe and something closed it (e.g. 'head' or 'less').
			// In this case we don't want to complain.
			return
		}
		fatalError("error: %s\n", err)
	}
}

func fatalError(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, msg, args...)
	os.Exit(1)
}

// app holds what the commands share: output streams, configuration and flag
// values.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	cfg        *config.Config
	logger     *slog.Logger

	notify         int
	color          string
	parseUUIDs     bool
	parseURIs      bool
	parseDurations bool
	parseBytes     bool
	noDates        bool
	driver         string
	dsn            string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   "jtab",
		Short: "Work with JSON arrays of objects as tables",
		Long: `jtab reads JSON documents made of an array of flat objects as tables.
The columns are the keys of the first object.

It can print the rows of a document, insert them into a database table and
write the result of a query as such a document.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file")
	flags.IntVar(&a.notify, "notify", jsontable.DefaultNotifyInterval, "log progress every N rows (0 disables)")
	flags.StringVar(&a.color, "color", "auto", "colorize output: auto, always, never")
	flags.BoolVar(&a.parseUUIDs, "parse-uuids", false, "read UUID strings as UUIDs")
	flags.BoolVar(&a.parseURIs, "parse-uris", false, "read absolute URI strings as URIs")
	flags.BoolVar(&a.parseDurations, "parse-durations", false, "read duration strings such as 1h30m as durations")
	flags.BoolVar(&a.parseBytes, "parse-bytes", false, `read "base64:..." strings as bytes`)
	flags.BoolVar(&a.noDates, "no-dates", false, "read date strings as text")

	cmd.AddCommand(
		newHeadersCmd(a),
		newCatCmd(a),
		newImportCmd(a),
		newExportCmd(a),
	)
	return cmd
}

// setup loads the configuration and applies the flags given explicitly on
// top of it.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("notify") {
		cfg.NotifyInterval = a.notify
	}
	if flags.Changed("color") {
		cfg.Color = a.color
	}
	if flags.Changed("parse-uuids") {
		cfg.Parse.UUIDs = a.parseUUIDs
	}
	if flags.Changed("parse-uris") {
		cfg.Parse.URIs = a.parseURIs
	}
	if flags.Changed("parse-durations") {
		cfg.Parse.Durations = a.parseDurations
	}
	if flags.Changed("parse-bytes") {
		cfg.Parse.Bytes = a.parseBytes
	}
	if flags.Changed("no-dates") {
		cfg.Parse.Dates = !a.noDates
	}
	if flags.Changed("driver") {
		cfg.Database.Driver = a.driver
	}
	if flags.Changed("dsn") {
		cfg.Database.DSN = a.dsn
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.stderr, nil))
	return nil
}

func (a *app) progress(what string) jsontable.Option {
	return jsontable.WithProgress(func(rows int64) error {
		a.logger.Info(what, "rows", rows)
		return nil
	})
}

// openReader reads path, or standard input when path is "-".
func (a *app) openReader(cmd *cobra.Command, path string) (*jsontable.Reader, error) {
	opts := append(a.cfg.ReaderOptions(), a.progress("read"))
	if path == "-" {
		return jsontable.NewReader(cmd.InOrStdin(), opts...)
	}
	return jsontable.Open(path, opts...)
}

// output returns where to print rows and the colorizer to use, if any.
func (a *app) output() (io.Writer, *format.Colorizer) {
	var useColors bool
	switch a.cfg.Color {
	case "always":
		useColors = true
	case "auto":
		useColors = a.stdout == io.Writer(os.Stdout) && isTerminal(os.Stdout)
	}
	if !useColors {
		return a.stdout, nil
	}
	if a.stdout == io.Writer(os.Stdout) {
		return colorable.NewColorableStdout(), &defaultColorizer
	}
	return a.stdout, &defaultColorizer
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
