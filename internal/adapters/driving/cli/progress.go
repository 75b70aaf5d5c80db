package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/kortemme-lab/smd-cli/internal/core/ports/driving"
)

// progressReporter returns a progress callback that rewrites a single
// status line on stderr while model files are parsed. Parsing a large
// directory from scratch takes a while; without feedback it looks hung.
// When stderr is not a terminal no progress is reported.
func progressReporter() driving.ProgressFunc {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	return func(done, total int, file string) {
		fmt.Fprintf(os.Stderr, "\r\x1b[KReading model files [%d/%d] %s", done, total, filepath.Base(file))
		if done == total {
			fmt.Fprint(os.Stderr, "\r\x1b[K")
		}
	}
}
