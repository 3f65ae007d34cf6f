package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/tartampluch/go-myancal/internal/engine"
	"github.com/tartampluch/go-myancal/internal/logging"
	"github.com/tartampluch/go-myancal/internal/provider"
)

// deps are the collaborators of the commands, replaced in tests.
type deps struct {
	loadEnv     func() (config.Env, error)
	newProvider func(context.Context, config.Env) (provider.Provider, error)
	clock       engine.Clock
}

func defaultDeps() *deps {
	return &deps{
		loadEnv:     config.LoadEnv,
		newProvider: provider.New,
		clock:       engine.RealClock{},
	}
}

// newRootCmd assembles the command tree.
func newRootCmd(d *deps) *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:          config.CLIName,
		Short:        config.CmdDescRoot,
		Version:      fmt.Sprintf(config.FormatVersionCLI, config.Version, config.Commit, config.Date),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Records go to stderr so that stdout stays clean for exports.
			logging.Setup(logging.Options{
				Debug:   debug,
				Console: os.Stderr,
				Level:   slog.LevelWarn,
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().BoolVar(&debug, config.FlagDebug, false, config.FlagDescDebug)

	root.AddCommand(newGridCmd(d))
	root.AddCommand(newExportCmd(d))
	root.AddCommand(newDayCmd(d))
	return root
}

// enricher loads the configured provider. A failed load is logged and yields
// an enricher without collaborators, which renders every field as unknown.
func (d *deps) enricher(ctx context.Context) *engine.Enricher {
	log := slog.With(config.LogKeyComponent, config.CompCLI)

	env, err := d.loadEnv()
	if err != nil {
		log.Error(config.ErrEnvParse, config.LogKeyError, err)
		return &engine.Enricher{}
	}
	log = log.With(config.LogKeyProvider, env.Provider)

	log.Debug(config.MsgProviderLoading)
	p, err := d.newProvider(ctx, env)
	if err == nil {
		err = p.Load(ctx)
	}
	if err != nil {
		log.Warn(config.MsgProviderFailed, config.LogKeyError, err)
		return &engine.Enricher{}
	}
	log.Debug(config.MsgProviderReady)
	return &engine.Enricher{Converter: p, Astrologer: p}
}

// today returns the --today override, or the clock's date when empty.
func (d *deps) today(override string) (engine.CivilDate, error) {
	if override == "" {
		return engine.Today(d.clock), nil
	}
	return engine.ParseCivilDate(override)
}

// monthOr parses a --month value, defaulting to the month of today.
// Months outside the navigable range are pinned to its nearest end.
func monthOr(value string, today engine.CivilDate) (engine.YearMonth, error) {
	if value == "" {
		return today.YearMonth(), nil
	}
	requested, err := engine.ParseYearMonth(value)
	if err != nil {
		return engine.YearMonth{}, err
	}
	ym := engine.Clamp(requested, today)
	if ym != requested {
		slog.Warn(config.MsgNavClamped,
			config.LogKeyComponent, config.CompCLI,
			config.LogKeyRequested, requested.String(),
			config.LogKeyClamped, ym.String())
	}
	return ym, nil
}

// inRange rejects a date whose month lies outside the navigable range.
func inRange(day, today engine.CivilDate) error {
	lo, hi := engine.BoundsFor(today)
	if ym := day.YearMonth(); ym.Before(lo) || hi.Before(ym) {
		return fmt.Errorf("%s: %s (%s..%s)", config.ErrDateOutOfRange, day, lo, hi)
	}
	return nil
}
