package main

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/tartampluch/go-myancal/internal/engine"
)

func newGridCmd(d *deps) *cobra.Command {
	var month, todayFlag string

	cmd := &cobra.Command{
		Use:   config.CmdGrid,
		Short: config.CmdDescGrid,
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
			return printGrid(cmd.OutOrStdout(), grid)
		},
	}
	cmd.Flags().StringVar(&month, config.FlagMonth, "", config.FlagDescMonth)
	cmd.Flags().StringVar(&todayFlag, config.FlagToday, "", config.FlagDescToday)
	return cmd
}

// printGrid writes a title line, the weekday header and six week rows.
// Adjacent-month days carry GridOutsideMark and today carries GridTodayMark.
func printGrid(w io.Writer, g *engine.MonthGrid) error {
	var b strings.Builder

	fmt.Fprintf(&b, config.FormatMonthYearHead, g.Month.Month, g.Month.Year)
	b.WriteByte('\n')

	for i := 0; i < config.DaysPerWeek; i++ {
		fmt.Fprintf(&b, config.FormatGridHeader, time.Weekday(i).String()[:3])
	}
	b.WriteByte('\n')

	for _, week := range g.Weeks() {
		for _, c := range week {
			mark := " "
			switch {
			case c.IsToday:
				mark = config.GridTodayMark
			case !c.IsInDisplayedMonth:
				mark = config.GridOutsideMark
			}
			text := fmt.Sprintf(config.FormatGridText, mark, c.Myanmar.MoonPhase.Short, c.Myanmar.Day.Short)
			fmt.Fprintf(&b, config.FormatGridCell, c.Date.Day, fitCell(text))
		}
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
	}
	return nil
}

// fitCell cuts text to GridCellTextWidth runes so that columns stay aligned.
func fitCell(text string) string {
	if utf8.RuneCountInString(text) <= config.GridCellTextWidth {
		return text
	}
	r := []rune(text)
	return string(r[:config.GridCellTextWidth-1]) + config.GridEllipsis
}
