package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/tartampluch/go-myancal/internal/export"
)

func newExportCmd(d *deps) *cobra.Command {
	var month, todayFlag, format, out string

	cmd := &cobra.Command{
		Use:   config.CmdExport,
		Short: config.CmdDescExport,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := d.today(todayFlag)
			if err != nil {
				return err
			}
			ym, err := monthOr(month, today)
			if err != nil {
				return err
			}

			grid := d.enricher(cmd.Context()).BuildMonthGrid(ym, today)

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.OpenFile(out, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
				if err != nil {
					return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
				}
				defer f.Close()
				w = f
			}

			if err := export.Write(w, format, grid, d.clock.Now()); err != nil {
				return err
			}
			slog.Info(config.MsgExported,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyMonth, ym.String(),
				config.LogKeyFile, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, config.FlagMonth, "", config.FlagDescMonth)
	cmd.Flags().StringVar(&todayFlag, config.FlagToday, "", config.FlagDescToday)
	cmd.Flags().StringVar(&format, config.FlagFormat, config.FormatICS, config.FlagDescFormat)
	cmd.Flags().StringVar(&out, config.FlagOut, "", config.FlagDescOut)
	return cmd
}
