package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/five82/hellomk/internal/app"
	"github.com/five82/hellomk/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: hellomk [options]\n\n")
		fmt.Fprintf(os.Stderr, "hellomk reads settings from hellomk.ini in the working directory,\n")
		fmt.Fprintf(os.Stderr, "~/.hellomk.ini or /etc/hellomk.ini, first readable file wins.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  hellomk                          # print the demo report\n")
		fmt.Fprintf(os.Stderr, "  hellomk -g server.port           # print one value\n")
		fmt.Fprintf(os.Stderr, "  hellomk --dump --format toml     # dump the whole file as TOML\n")
		fmt.Fprintf(os.Stderr, "  hellomk -b                       # browse the file interactively\n")
		fmt.Fprintf(os.Stderr, "  hellomk --calc '7 / 2'           # run the arithmetic helpers\n")
	}

	configPath := pflag.StringP("config", "c", "", "use this config file instead of searching")
	gets := pflag.StringArrayP("get", "g", nil, "print the value of section.key (repeatable)")
	calcExpr := pflag.String("calc", "", `evaluate "a op b" with op one of + - * /`)
	dumpFlag := pflag.Bool("dump", false, "print every entry in the config file")
	format := pflag.String("format", app.FormatText, "dump format: text or toml")
	browseFlag := pflag.BoolP("browse", "b", false, "browse the config file in a terminal UI")
	plainFlag := pflag.Bool("plain", false, "disable colours and styling")
	prefsPath := pflag.String("prefs", "", "override the prefs file path")
	debugFlag := pflag.Bool("debug", false, "log config resolution and parsing to stderr")
	pollSeconds := pflag.Int("poll", 0, "fallback reload interval in seconds for --browse (defaults to 2s)")
	helpFlag := pflag.BoolP("help", "h", false, "show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return 0
	}

	logCfg := logging.Config{}
	if *debugFlag {
		logCfg.Level = "debug"
	}
	logging.Configure(logCfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Gets:       *gets,
		Calc:       *calcExpr,
		Dump:       *dumpFlag,
		Format:     *format,
		Browse:     *browseFlag,
		PrefsPath:  *prefsPath,
		Plain:      *plainFlag,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = time.Duration(poll) * time.Second
	}

	if err := app.Run(ctx, opts); err != nil {
		app.ReportError(opts, err)
		return 1
	}
	return 0
}
