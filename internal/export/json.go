package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/tartampluch/go-myancal/internal/engine"
)

// Document is the JSON shape served to HTTP clients.
type Document struct {
	Month    string `json:"month"`
	Today    string `json:"today"`
	Leading  int    `json:"leading"`
	Trailing int    `json:"trailing"`
	Cells    []*Row `json:"cells"`
}

// JSON writes grid as an indented Document.
func JSON(w io.Writer, grid *engine.MonthGrid) error {
	doc := Document{
		Month:    grid.Month.String(),
		Today:    grid.Today.String(),
		Leading:  grid.Leading,
		Trailing: grid.Trailing,
		Cells:    Rows(grid),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%s: %w", config.ErrJSONEncode, err)
	}
	return nil
}
