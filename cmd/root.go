package cmd

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/tabv/internal/dataset"
	"github.com/oakwood-commons/tabv/internal/filter"
	"github.com/oakwood-commons/tabv/internal/limiter"
	"github.com/oakwood-commons/tabv/internal/navigator"
	"github.com/oakwood-commons/tabv/internal/ui"
	"github.com/oakwood-commons/tabv/pkg/discovery"
	"github.com/oakwood-commons/tabv/pkg/loader"
	"github.com/oakwood-commons/tabv/pkg/logger"
	"github.com/oakwood-commons/tabv/pkg/settings"
)

type rootOptions struct {
	configFile string
	patterns   []string
	theme      string
	keyMode    string
	where      string
	logFile    string
	noColor    bool
	debug      bool

	limit  int
	offset int
	tail   int

	snapshot  bool
	width     int
	height    int
	startKeys []string
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   settings.CliBinaryName + " [root]",
		Short: "Browse CSV, TSV, XLSX, JSON, YAML and TOML tables in the terminal",
		Long: settings.CliBinaryName + ` discovers table files under a directory (default ".") and opens them
in a terminal viewer. Files are read when first shown. Multi-sheet
files list their sheets in the sidebar, and ";" jumps to any file or
sheet by fuzzy name.`,
		Example: "\n  tabv\n  tabv ./reports -p '*.xlsx'\n  tabv data.csv --where 'row[\"status\"] == \"open\"'\n  tabv ./reports --snapshot --press ';q3<enter>'\n",
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			run, err := resolveRun(cmd.Flags(), opts, args)
			if err != nil {
				return err
			}
			sink, err := logger.OpenFile(run.LogFile)
			if err != nil {
				return err
			}
			lgr := logger.Setup(run.MinLogLevel, sink)
			lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = settings.IntoContext(ctx, run)
			cmd.SetContext(logger.WithLogger(ctx, lgr))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runViewer(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	bindFlags(cmd.Flags(), opts)

	cmd.Version = cliVersionString()
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.AddCommand(newVersionCmd(), newThemesCmd())
	return cmd
}

func bindFlags(f *pflag.FlagSet, opts *rootOptions) {
	f.StringVar(&opts.configFile, "config-file", "", "path to a YAML config file")
	f.StringArrayVarP(&opts.patterns, "pattern", "p", nil, "file name glob to discover (repeatable; default csv, tsv, xlsx, json, yaml, yml, toml)")
	f.StringVar(&opts.theme, "theme", "", "theme name (default from config or dark; see 'tabv themes')")
	f.StringVar(&opts.keyMode, "keymap", "", "keybinding mode: vim (default) or emacs")
	f.StringVar(&opts.where, "where", "", "CEL row filter over row[\"header\"] and index, e.g. 'row[\"age\"] == \"30\"'")
	f.BoolVar(&opts.noColor, "no-color", false, "disable color output")
	f.BoolVar(&opts.debug, "debug", false, "log at debug level")
	f.StringVar(&opts.logFile, "log-file", "", "append JSON logs to this file (logs are discarded otherwise)")
	f.IntVar(&opts.limit, "limit", 0, "keep only the first N rows of every sheet (after --offset)")
	f.IntVar(&opts.offset, "offset", 0, "skip the first N rows of every sheet")
	f.IntVar(&opts.tail, "tail", 0, "keep only the last N rows of every sheet (mutually exclusive with --limit; ignores --offset)")
	f.BoolVar(&opts.snapshot, "snapshot", false, "render a single frame and exit; honors --width/--height")
	f.IntVar(&opts.width, "width", 0, "terminal width in columns (default: detected)")
	f.IntVar(&opts.height, "height", 0, "terminal height in rows (default: detected)")
	f.StringArrayVar(&opts.startKeys, "press", nil, "simulate keys on startup. Use <Key> for special keys (e.g. <ctrl+j>, <enter>, <esc>). Literal text types normally")
}

func runViewer(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()
	run, ok := settings.FromContext(ctx)
	if !ok {
		return fmt.Errorf("run settings missing from context")
	}
	lgr := *logger.FromContext(ctx)

	limits := limiter.Config{Limit: opts.limit, Offset: opts.offset, Tail: opts.tail}
	if err := limits.Validate(); err != nil {
		return err
	}

	entries, err := discovery.Discover(run.Root, run.Patterns)
	if err != nil {
		return err
	}
	lgr.V(1).Info("discovered files", "root", run.Root, "count", len(entries))

	l, err := newLoader(run.Where, limits, lgr)
	if err != nil {
		return err
	}
	ctrl, err := navigator.New(dataset.FromEntries(entries), l, lgr)
	if err != nil {
		return err
	}

	theme, _ := ui.ThemeByName(run.Theme)
	uiOpts := ui.Options{
		KeyMode: ui.KeyMode(run.KeyMode),
		Theme:   theme,
		NoColor: run.NoColor,
		Logger:  lgr,
	}

	if opts.snapshot {
		out := ui.RenderSnapshot(ctrl, uiOpts, ui.SnapshotConfig{
			Width:     opts.width,
			Height:    opts.height,
			StartKeys: opts.startKeys,
		})
		_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	}
	return ui.Run(ctrl, uiOpts, ui.RunConfig{
		Width:     opts.width,
		Height:    opts.height,
		StartKeys: opts.startKeys,
	})
}

// newLoader returns the file loader, wrapped in the row filter when where is
// set and in the row limiter when limits are active. Filtering runs first.
func newLoader(where string, limits limiter.Config, lgr logr.Logger) (loader.Loader, error) {
	var l loader.Loader = loader.FileLoader{}
	if where != "" {
		p, err := filter.Compile(where)
		if err != nil {
			return nil, fmt.Errorf("--where: %w", err)
		}
		lgr.V(1).Info("row filter enabled", "expression", p.String())
		l = filter.Loader(l, p, lgr)
	}
	return limiter.Loader(l, limits, lgr), nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
