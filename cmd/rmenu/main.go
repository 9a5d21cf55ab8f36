package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"

	apppkg "github.com/kk-code-lab/rmenu/internal/app"
	"github.com/kk-code-lab/rmenu/internal/config"
	"github.com/kk-code-lab/rmenu/internal/plugins"
	"github.com/kk-code-lab/rmenu/internal/source"
	statepkg "github.com/kk-code-lab/rmenu/internal/state"
	renderui "github.com/kk-code-lab/rmenu/internal/ui/render"
)

var version = "dev"

func printHelp(w io.Writer) {
	fmt.Fprint(w, `rmenu - dmenu-like line selector for the terminal

USAGE:
    cmd | rmenu [OPTIONS]

OPTIONS:
    -l, --lines N                   List candidates vertically, N per page
    -p, --prompt TEXT               Prompt shown left of the input
    -i, --insensitive               Match case-insensitively
    -b, --bottom                    Draw the menu at the bottom of the terminal
        --nostdin                   Do not read candidates from stdin
        --render-default-width W    Input width: min, items, max or custom=N
        --render-flex               Let the input borrow unused space
        --render-overrun            Draw the whole query over candidates
        --render-rightalign         Right-align candidates
        --plugin NAME               Enable a plugin (repeatable)
        --maxlength N               Length limit for the maxlength plugin
        --engine NAME               Search engine for the lookup plugin
    -v, --version                   Print version (-vv also lists plugins)
    -h, --help                      Show this help message and exit

Configuration is read from $XDG_CONFIG_HOME/rmenu/config.toml (or
$RMENU_CONFIG) and RMENU_* environment variables.
`)
}

func printVersion(w io.Writer, verbosity int) {
	fmt.Fprintf(w, "rmenu %s\n", version)
	if verbosity < 2 {
		return
	}
	fmt.Fprintln(w, "plugins:")
	for _, name := range plugins.Names() {
		fmt.Fprintf(w, "    %-12s %s\n", name, plugins.Registry[name].About)
	}
}

func main() {
	// Set UTF-8 as fallback encoding for maximum compatibility
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run returns the process exit status: 0 after a commit, 1 after a cancel
// or any error.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := config.Flags()
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "rmenu: %v\n", err)
		printHelp(stderr)
		return 1
	}
	if help, _ := fs.GetBool("help"); help {
		printHelp(stdout)
		return 0
	}
	if v, _ := fs.GetCount("version"); v > 0 {
		printVersion(stdout, v)
		return 0
	}

	disposition, err := runMenu(fs, stdin, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "rmenu: %v\n", err)
		return 1
	}
	if disposition != statepkg.Exit {
		return 1
	}
	return 0
}

func runMenu(fs *pflag.FlagSet, stdin io.Reader, stdout io.Writer) (statepkg.Disposition, error) {
	cfg, err := config.Load(fs)
	if err != nil {
		return statepkg.Cancel, err
	}

	logger, logCloser, err := apppkg.OpenLogger(cfg.Log.File, cfg.Log.Lvl)
	if err != nil {
		return statepkg.Cancel, err
	}
	defer func() {
		_ = logCloser.Close()
	}()

	var lines []string
	if !cfg.NoStdin {
		if lines, err = source.Load(stdin); err != nil {
			return statepkg.Cancel, err
		}
	}

	set, err := plugins.Compose(cfg.Plugins, plugins.Options{
		CaseSensitive:    cfg.CaseSensitive,
		CalcTimeout:      cfg.Calc.Timeout,
		MaxLength:        cfg.MaxLength,
		Engine:           cfg.Lookup.Engine,
		SpellMaxDistance: cfg.Spell.MaxDistance,
		Width:            renderui.Measurer{}.TextWidth,
		Out:              stdout,
		Logger:           logger,
	})
	if err != nil {
		return statepkg.Cancel, err
	}
	logger.Info("starting", "version", version, "plugins", cfg.Plugins, "candidates", len(lines))

	app, err := apppkg.NewApplication(apppkg.Options{
		Lines: lines,
		Settings: statepkg.Settings{
			Lines:      cfg.Lines,
			Prompt:     cfg.Prompt,
			Policy:     cfg.Render.Policy,
			Flex:       cfg.Render.Flex,
			Overrun:    cfg.Render.Overrun,
			RightAlign: cfg.Render.RightAlign,
		},
		Hooks:  set,
		Bottom: cfg.Bottom,
		Logger: logger,
	})
	if err != nil {
		return statepkg.Cancel, fmt.Errorf("initialize terminal: %w", err)
	}

	disposition, err := app.Run()
	// Restore the terminal before anything is printed to stderr.
	_ = app.Close()
	return disposition, err
}
