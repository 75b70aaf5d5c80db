package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// repCmd groups the representative subcommands.
var repCmd = &cobra.Command{
	Use:   "rep",
	Short: "Inspect and pin a directory's representative model",
	Long: `Each directory has one representative model: the pinned one when a pin
exists, otherwise the model with the lowest total score. The pin is
stored in a representative.txt sidecar next to the models.`,
}

var repShowCmd = &cobra.Command{
	Use:   "show <directory>",
	Short: "Print the representative model",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepShow,
}

var repSetCmd = &cobra.Command{
	Use:   "set <directory> <index>",
	Short: "Pin the representative to a model index",
	Args:  cobra.ExactArgs(2),
	RunE:  runRepSet,
}

var repClearCmd = &cobra.Command{
	Use:   "clear <directory>",
	Short: "Unpin the representative",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepClear,
}

func init() {
	repCmd.AddCommand(repShowCmd)
	repCmd.AddCommand(repSetCmd)
	repCmd.AddCommand(repClearCmd)
	rootCmd.AddCommand(repCmd)
}

func runRepShow(cmd *cobra.Command, args []string) error {
	group, err := loadSingleGroup(cmd, args[0])
	if err != nil {
		return err
	}

	index, err := group.RepresentativeIndex()
	if err != nil {
		return err
	}
	path, err := group.RepresentativePath()
	if err != nil {
		return err
	}

	origin := "derived from total score"
	if group.RepresentativeOverride() != nil {
		origin = "pinned"
	}
	cmd.Printf("%s (index %d, %s)\n", path, index, origin)
	return nil
}

func runRepSet(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("parsing index %q: %w", args[1], err)
	}

	group, err := loadSingleGroup(cmd, args[0])
	if err != nil {
		return err
	}
	if err := annotationService.SetRepresentative(group, index); err != nil {
		return fmt.Errorf("pinning representative for %q: %w", group.Directory, err)
	}

	path, err := group.RepresentativePath()
	if err != nil {
		return err
	}
	cmd.Printf("Pinned %s (index %d).\n", path, index)
	return nil
}

func runRepClear(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}
	group, err := loadSingleGroup(cmd, args[0])
	if err != nil {
		return err
	}
	if err := annotationService.ClearRepresentative(group); err != nil {
		return fmt.Errorf("unpinning representative for %q: %w", group.Directory, err)
	}
	return nil
}
