package export

import (
	"fmt"
	"io"
	"time"

	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/tartampluch/go-myancal/internal/engine"
)

// Write renders grid in the named format: ics, csv or json.
func Write(w io.Writer, format string, grid *engine.MonthGrid, now time.Time) error {
	switch format {
	case config.FormatICS:
		data, err := ICS(grid, now)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
		}
		return nil
	case config.FormatCSV:
		return CSV(w, grid)
	case config.FormatJSON:
		return JSON(w, grid)
	default:
		return fmt.Errorf("%s: %q", config.ErrFormatUnknown, format)
	}
}
