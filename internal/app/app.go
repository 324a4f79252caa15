package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/five82/hellomk/internal/config"
	"github.com/five82/hellomk/internal/logging"
	"github.com/five82/hellomk/internal/mathops"
	"github.com/five82/hellomk/internal/prefs"
	"github.com/five82/hellomk/internal/state"
	"github.com/five82/hellomk/internal/timeops"
	"github.com/five82/hellomk/internal/ui"
)

var (
	// ErrConfigNotFound means no candidate location held a readable config file.
	ErrConfigNotFound = errors.New("configuration file not found")
	// ErrKeyNotFound means at least one requested key was missing.
	ErrKeyNotFound = errors.New("key not found")
)

// Output formats accepted by Options.Format.
const (
	FormatText = "text"
	FormatTOML = "toml"
)

// Options configure a hellomk run.
type Options struct {
	ConfigPath string   // explicit config file; empty runs the resolver
	Gets       []string // "section.key" lookups; non-empty switches to get mode
	Calc       string   // "a op b" with op one of + - * /
	Dump       bool
	Format     string // FormatText or FormatTOML, for Dump
	Browse     bool
	PrefsPath  string // empty uses ~/.config/hellomk/prefs.toml
	Plain      bool   // unstyled output regardless of prefs
	PollEvery  time.Duration

	Out      io.Writer        // defaults to os.Stdout
	Err      io.Writer        // defaults to os.Stderr
	Resolver *config.Resolver // nil uses config.DefaultResolver
}

// reportKeys are the lookups the demo prints, in order.
var reportKeys = []struct {
	label   string
	section string
	key     string
}{
	{"Database Host", "database", "host"},
	{"Server Port", "server", "port"},
	{"Database User", "database", "user"},
	{"Enable Logging", "server", "enable_logging"},
}

// Run executes one hellomk command until it finishes or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	userPrefs := prefs.Load(opts.PrefsPath)
	report := newReport(opts, userPrefs)

	switch {
	case opts.Calc != "":
		return calc(opts.Out, opts.Calc, report)
	case opts.Browse:
		path, err := resolveConfig(opts)
		if err != nil {
			return err
		}
		return browse(ctx, opts, path, userPrefs)
	case opts.Dump:
		path, err := resolveConfig(opts)
		if err != nil {
			return err
		}
		return dump(opts.Out, path, opts.Format, report)
	case len(opts.Gets) > 0:
		path, err := resolveConfig(opts)
		if err != nil {
			return err
		}
		return get(opts.Out, opts.Err, path, opts.Gets, report)
	default:
		return printReport(opts, report)
	}
}

// ReportError writes err to opts.Err as the command line shows it.
// Missing keys are skipped because get already reported each one.
func ReportError(opts Options, err error) {
	if err == nil || errors.Is(err, ErrKeyNotFound) {
		return
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	report := newReport(opts, prefs.Load(opts.PrefsPath))
	msg := "hellomk: " + err.Error()
	if errors.Is(err, ErrConfigNotFound) {
		msg = "Configuration file not found."
	}
	fmt.Fprintln(opts.Err, report.Failure(msg))
}

func newReport(opts Options, userPrefs prefs.Prefs) ui.Report {
	return ui.NewReport(ui.GetTheme(userPrefs.Theme), opts.Plain || userPrefs.Plain)
}

func resolveConfig(opts Options) (string, error) {
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		return path, nil
	}
	resolver := config.DefaultResolver()
	if opts.Resolver != nil {
		resolver = *opts.Resolver
	}
	path, ok := resolver.Find()
	if !ok {
		return "", ErrConfigNotFound
	}
	return path, nil
}

// printReport writes the classic demo output: arithmetic, clock, then the
// four config values or a not-found line for each.
func printReport(opts Options, report ui.Report) error {
	out := opts.Out
	fmt.Fprintln(out, report.Field("Addition", fmt.Sprint(mathops.Add(10, 5))))
	fmt.Fprintln(out, report.Field("Current Time", timeops.CurrentTime()))

	path, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, report.Field("Configuration file", path))

	for _, rk := range reportKeys {
		if value, ok := config.Lookup(path, rk.section, rk.key); ok {
			fmt.Fprintln(out, report.Field(rk.label, value))
		} else {
			fmt.Fprintln(out, report.Missing(rk.section, rk.key))
		}
	}
	return nil
}

func get(out, errOut io.Writer, path string, specs []string, report ui.Report) error {
	missing := 0
	for _, spec := range specs {
		section, key, err := splitSpec(spec)
		if err != nil {
			return err
		}
		value, ok := config.Lookup(path, section, key)
		if !ok {
			missing++
			fmt.Fprintln(errOut, report.Missing(section, key))
			continue
		}
		fmt.Fprintln(out, value)
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d lookups failed: %w", missing, len(specs), ErrKeyNotFound)
	}
	return nil
}

// splitSpec splits "section.key" at the last dot, so section names may contain dots.
func splitSpec(spec string) (string, string, error) {
	dot := strings.LastIndexByte(spec, '.')
	if dot <= 0 || dot == len(spec)-1 {
		return "", "", fmt.Errorf("invalid lookup %q: want section.key", spec)
	}
	return spec[:dot], spec[dot+1:], nil
}

// calc evaluates "a op b". Addition and subtraction are integer operations,
// multiplication and division work on floats.
func calc(out io.Writer, expr string, report ui.Report) error {
	fields := strings.Fields(expr)
	if len(fields) != 3 {
		return fmt.Errorf("invalid expression %q: want \"a op b\"", expr)
	}
	lhs, op, rhs := fields[0], fields[1], fields[2]

	switch op {
	case "+", "-":
		a, err := strconv.Atoi(lhs)
		if err != nil {
			return fmt.Errorf("invalid operand %q: %w", lhs, err)
		}
		b, err := strconv.Atoi(rhs)
		if err != nil {
			return fmt.Errorf("invalid operand %q: %w", rhs, err)
		}
		if op == "+" {
			fmt.Fprintln(out, report.Field("Addition", strconv.Itoa(mathops.Add(a, b))))
		} else {
			fmt.Fprintln(out, report.Field("Subtraction", strconv.Itoa(mathops.Subtract(a, b))))
		}
	case "*", "/":
		a, err := strconv.ParseFloat(lhs, 64)
		if err != nil {
			return fmt.Errorf("invalid operand %q: %w", lhs, err)
		}
		b, err := strconv.ParseFloat(rhs, 64)
		if err != nil {
			return fmt.Errorf("invalid operand %q: %w", rhs, err)
		}
		if op == "*" {
			fmt.Fprintln(out, report.Field("Multiplication", formatFloat(mathops.Multiply(a, b))))
			return nil
		}
		q, err := mathops.Divide(a, b)
		if err != nil {
			return fmt.Errorf("calc %s: %w", expr, err)
		}
		fmt.Fprintln(out, report.Field("Division", formatFloat(q)))
	default:
		return fmt.Errorf("unknown operator %q (want + - * /)", op)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func dump(out io.Writer, path, format string, report ui.Report) error {
	doc, err := config.Load(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		_, err = io.WriteString(out, report.Document(doc))
	case FormatTOML:
		var data []byte
		data, err = doc.TOML()
		if err == nil {
			_, err = out.Write(data)
		}
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, FormatText, FormatTOML)
	}
	if err != nil {
		return fmt.Errorf("write dump: %w", err)
	}
	return nil
}

func browse(ctx context.Context, opts Options, path string, userPrefs prefs.Prefs) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := &state.Store{}
	// Populate the store before the UI starts so the first frame has data.
	refresh(store, path)
	if snap := store.Snapshot(); snap.LastError != nil {
		return fmt.Errorf("load config: %w", snap.LastError)
	}
	Watch(ctx, store, path, opts.PollEvery)

	logger := logging.WithComponent("app")
	logger.Debug().Str("path", path).Msg("starting browser")

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Path:      path,
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
		Plain:     opts.Plain || userPrefs.Plain,
	})
}
