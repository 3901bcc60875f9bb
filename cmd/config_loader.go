package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/oakwood-commons/tabv/internal/config"
	"github.com/oakwood-commons/tabv/pkg/settings"
)

// resolveRun builds the run settings: defaults, then the config file, then
// every flag the user set explicitly.
func resolveRun(flags *pflag.FlagSet, opts *rootOptions, args []string) (*settings.Run, error) {
	run := settings.NewCliParams()

	cfgPath := config.ResolvePath(opts.configFile)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", cfgPath, err)
	}
	cfg.ApplyTo(run)

	if len(args) > 0 {
		run.Root = args[0]
	}
	if flags.Changed("pattern") {
		run.Patterns = append([]string(nil), opts.patterns...)
	}
	if flags.Changed("theme") {
		run.Theme = opts.theme
	}
	if flags.Changed("keymap") {
		run.KeyMode = opts.keyMode
	}
	if flags.Changed("where") {
		run.Where = opts.where
	}
	if flags.Changed("log-file") {
		run.LogFile = opts.logFile
	}
	if flags.Changed("no-color") {
		run.NoColor = opts.noColor
	}
	if opts.debug {
		run.MinLogLevel = -1
	}

	if err := validateRun(run.Theme, run.KeyMode); err != nil {
		return nil, err
	}
	return run, nil
}
