// Command myancal prints and exports Myanmar calendar month grids without the desktop UI.
package main

import (
	"os"

	"github.com/tartampluch/go-myancal/internal/config"
)

func main() {
	if err := newRootCmd(defaultDeps()).Execute(); err != nil {
		os.Exit(config.ExitCodeError)
	}
}
