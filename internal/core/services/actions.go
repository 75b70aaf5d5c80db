package services

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/kortemme-lab/smd-cli/internal/core/domain"
	"github.com/kortemme-lab/smd-cli/internal/core/ports/driving"
)

// ScriptExtension marks helper scripts that can act on a model path.
// Scripts may live anywhere from the model directory up to the
// filesystem root.
const ScriptExtension = ".sho"

// Ensure Actions implements the interface.
var _ driving.ActionService = (*Actions)(nil)

// Actions exposes the model context and helper-script discovery that
// an external visualisation menu is built from. Running the scripts is
// entirely outside the core.
type Actions struct{}

// NewActions creates the action service.
func NewActions() *Actions {
	return &Actions{}
}

// ModelContext implements driving.ActionService.
func (a *Actions) ModelContext(group *domain.Group, index int) (*driving.ModelContext, error) {
	row, err := group.Table().Row(index)
	if err != nil {
		return nil, fmt.Errorf("resolving model %d in %q: %w", index, group.Directory, err)
	}
	rep, err := group.RepresentativeIndex()
	if err != nil {
		return nil, err
	}

	return &driving.ModelContext{
		Path:             filepath.Join(group.Directory, row.Path),
		Directory:        group.Directory,
		Index:            index,
		IsRepresentative: index == rep,
	}, nil
}

// DiscoverScripts implements driving.ActionService. Nearer scripts
// come first: the model directory's own scripts, then each parent's.
func (a *Actions) DiscoverScripts(directory string) ([]driving.ScriptAction, error) {
	dir, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", directory, err)
	}

	var actions []driving.ScriptAction
	for {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+ScriptExtension))
		if err != nil {
			return nil, fmt.Errorf("searching %q for scripts: %w", dir, err)
		}
		for _, script := range matches {
			actions = append(actions, driving.ScriptAction{
				Title: scriptTitle(script),
				Path:  script,
			})
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return actions, nil
		}
		dir = parent
	}
}

// scriptTitle derives a menu title from a script path: the base name
// without its extension, first letter capitalised, underscores spaced.
func scriptTitle(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if name == "" {
		return name
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return strings.ReplaceAll(string(runes), "_", " ")
}
