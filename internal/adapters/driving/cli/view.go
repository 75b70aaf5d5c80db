package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kortemme-lab/smd-cli/internal/adapters/driving/tui"
)

// viewCmd represents the view command.
var viewCmd = &cobra.Command{
	Use:   "view <directory>...",
	Short: "Load directories and browse them interactively",
	Long: `Load one or more model directories and open the interactive browser.

Controls:
  ↑/k, ↓/j - Navigate
  x, y     - Cycle the metric shown on each axis
  r, R     - Pin / unpin the representative model
  n        - Edit the directory's notes
  /        - Filter directories by their notes
  Esc      - Back / Cancel
  q        - Quit`,
	Args: cobra.MinimumNArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	// Panic recovery keeps a stack trace visible once the alternate
	// screen is torn down.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if loaderService == nil {
		return errors.New("group loader not configured")
	}

	collection, err := loaderService.LoadGroups(cmd.Context(), args, loadOptions())
	if err != nil {
		return fmt.Errorf("loading model directories: %w", err)
	}

	ports := &tui.Ports{
		Annotations: annotationService,
		Plot:        plotService,
		Actions:     actionService,
	}

	xMetric, yMetric := defaultAxes()
	app, err := tui.NewApp(ports, collection, xMetric, yMetric)
	if err != nil {
		return fmt.Errorf("creating TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// defaultAxes returns the configured starting metrics for the axes.
func defaultAxes() (x, y string) {
	if appConfig != nil {
		return appConfig.DefaultXMetric, appConfig.DefaultYMetric
	}
	return "loop_rmsd", "total_score"
}
