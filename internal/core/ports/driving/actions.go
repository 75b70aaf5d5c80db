package driving

import "github.com/kortemme-lab/smd-cli/internal/core/domain"

// ModelContext is the data an external visualisation tool needs about
// one clicked model: where it lives and whether it is currently the
// group's representative. Launching viewers is outside the core.
type ModelContext struct {
	// Path is the model file's resolved path on disk.
	Path string

	// Directory is the owning group's directory.
	Directory string

	// Index is the model's row index within the group.
	Index int

	// IsRepresentative reports whether this model is the group's
	// current representative.
	IsRepresentative bool
}

// ScriptAction is one discovered helper script that can act on a
// model path.
type ScriptAction struct {
	// Title is the menu title derived from the script's file name.
	Title string

	// Path is the script's location.
	Path string
}

// ActionService exposes the data needed to build a visualisation menu
// for a model.
type ActionService interface {
	// ModelContext resolves a model row into its on-disk context.
	ModelContext(group *domain.Group, index int) (*ModelContext, error)

	// DiscoverScripts finds helper scripts that can act on models in
	// a directory, searching the directory and every parent up to the
	// filesystem root.
	DiscoverScripts(directory string) ([]ScriptAction, error)
}
