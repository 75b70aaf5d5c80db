package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	annotationsfile "github.com/kortemme-lab/smd-cli/internal/adapters/driven/annotations/file"
	"github.com/kortemme-lab/smd-cli/internal/adapters/driven/cache/sqlite"
	"github.com/kortemme-lab/smd-cli/internal/logger"
)

// watchDebounce batches filesystem events before reloading; pipelines
// write models in bursts.
const watchDebounce = 2 * time.Second

// watchCmd represents the watch command.
var watchCmd = &cobra.Command{
	Use:   "watch <directory>...",
	Short: "Keep directory caches fresh as a pipeline writes models",
	Long: `Watch directories for new or changed model files and refresh each
directory's metric cache as they appear. Run it alongside a pipeline so
the cache is already warm when the run finishes. Stop with Ctrl-C.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if loaderService == nil {
		return errors.New("group loader not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(args))
	for _, directory := range args {
		abs, err := filepath.Abs(directory)
		if err != nil {
			return fmt.Errorf("resolving %q: %w", directory, err)
		}
		if err := watcher.Add(abs); err != nil {
			return fmt.Errorf("watching %q: %w", directory, err)
		}
		watched[abs] = true

		if err := refreshDirectory(cmd, directory); err != nil {
			logger.Warn("initial load of %q failed: %v", directory, err)
		}
	}

	pending := make(map[string]bool)
	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			directory := filepath.Dir(event.Name)
			if !watched[directory] || !modelEvent(event) {
				continue
			}
			pending[directory] = true
			debounce = time.After(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-debounce:
			for directory := range pending {
				if err := refreshDirectory(cmd, directory); err != nil {
					logger.Warn("refreshing %q failed: %v", directory, err)
				}
			}
			pending = make(map[string]bool)
			debounce = nil
		}
	}
}

// modelEvent reports whether an event concerns a model file rather than
// the cache or an annotation sidecar; refreshing on our own writes
// would loop forever.
func modelEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}

	base := filepath.Base(event.Name)
	switch base {
	case sqlite.DefaultCacheFile, annotationsfile.NotesFile, annotationsfile.RepresentativeFile:
		return false
	}
	// SQLite scratch files share the cache file's prefix.
	if matched, _ := filepath.Match(sqlite.DefaultCacheFile+"-*", base); matched {
		return false
	}
	return true
}

// refreshDirectory reloads one directory through the cache and reports
// the result.
func refreshDirectory(cmd *cobra.Command, directory string) error {
	group, err := loaderService.LoadGroup(cmd.Context(), directory, loadOptions())
	if err != nil {
		return err
	}
	cmd.Printf("%s %s: %d models, %d metrics\n",
		time.Now().Format("15:04:05"), group.Directory, group.Len(), len(group.DefinedMetrics()))
	return nil
}
