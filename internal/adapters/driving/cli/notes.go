package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// notesCmd groups the notes subcommands.
var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Read and write per-directory notes",
	Long: `Each model directory can carry free-text notes, stored in a notes.txt
sidecar next to the models. Notes travel with the directory: copy or
archive the directory and the notes come along.`,
}

var notesShowCmd = &cobra.Command{
	Use:   "show <directory>",
	Short: "Print a directory's notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesShow,
}

var notesSetCmd = &cobra.Command{
	Use:   "set <directory> <text>",
	Short: "Replace a directory's notes",
	Args:  cobra.ExactArgs(2),
	RunE:  runNotesSet,
}

var notesClearCmd = &cobra.Command{
	Use:   "clear <directory>",
	Short: "Delete a directory's notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesClear,
}

var notesSearchCmd = &cobra.Command{
	Use:   "search <query> <directory>...",
	Short: "List directories whose notes match a query",
	Long: `List the given directories whose notes contain the query. A query in
all lower case matches case-insensitively; a query with upper-case
letters matches exactly.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runNotesSearch,
}

func init() {
	notesCmd.AddCommand(notesShowCmd)
	notesCmd.AddCommand(notesSetCmd)
	notesCmd.AddCommand(notesClearCmd)
	notesCmd.AddCommand(notesSearchCmd)
	rootCmd.AddCommand(notesCmd)
}

func runNotesShow(cmd *cobra.Command, args []string) error {
	group, err := loadSingleGroup(cmd, args[0])
	if err != nil {
		return err
	}
	notes := group.Notes()
	if notes == "" {
		cmd.Printf("No notes for %s.\n", group.Directory)
		return nil
	}
	cmd.Print(notes)
	if !strings.HasSuffix(notes, "\n") {
		cmd.Println()
	}
	return nil
}

func runNotesSet(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}
	group, err := loadSingleGroup(cmd, args[0])
	if err != nil {
		return err
	}
	if err := annotationService.SetNotes(group, args[1]); err != nil {
		return fmt.Errorf("saving notes for %q: %w", group.Directory, err)
	}
	return nil
}

func runNotesClear(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}
	group, err := loadSingleGroup(cmd, args[0])
	if err != nil {
		return err
	}
	if err := annotationService.SetNotes(group, ""); err != nil {
		return fmt.Errorf("clearing notes for %q: %w", group.Directory, err)
	}
	return nil
}

func runNotesSearch(cmd *cobra.Command, args []string) error {
	if loaderService == nil {
		return errors.New("group loader not configured")
	}
	query := args[0]

	collection, err := loaderService.LoadGroups(cmd.Context(), args[1:], loadOptions())
	if err != nil {
		return fmt.Errorf("loading model directories: %w", err)
	}

	matches := collection.FilterByNotes(query)
	if len(matches) == 0 {
		cmd.Println("No matching directories.")
		return nil
	}
	for _, directory := range matches {
		cmd.Println(directory)
	}
	return nil
}
