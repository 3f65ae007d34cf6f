package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/tartampluch/go-myancal/internal/engine"
)

func newDayCmd(d *deps) *cobra.Command {
	var date, todayFlag string

	cmd := &cobra.Command{
		Use:   config.CmdUseDay,
		Short: config.CmdDescDay,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := engine.ParseCivilDate(date)
			if err != nil {
				return err
			}
			today, err := d.today(todayFlag)
			if err != nil {
				return err
			}
			if err := inRange(day, today); err != nil {
				return err
			}

			cell := d.enricher(cmd.Context()).Enrich(day, day.YearMonth(), today)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", config.JSONIndent)
			if err := enc.Encode(cell); err != nil {
				return fmt.Errorf("%s: %w", config.ErrJSONEncode, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, config.FlagDate, "", config.FlagDescDate)
	cmd.Flags().StringVar(&todayFlag, config.FlagToday, "", config.FlagDescToday)
	_ = cmd.MarkFlagRequired(config.FlagDate)
	return cmd
}
