package services

import (
	"fmt"

	"github.com/kortemme-lab/smd-cli/internal/core/domain"
	"github.com/kortemme-lab/smd-cli/internal/core/ports/driven"
	"github.com/kortemme-lab/smd-cli/internal/core/ports/driving"
)

// Ensure Annotations implements the interface.
var _ driving.AnnotationService = (*Annotations)(nil)

// Annotations mutates group annotations with write-through
// persistence: the sidecar file is rewritten before the in-memory
// group changes, so a failed write leaves the group untouched.
type Annotations struct {
	store driven.AnnotationStore
}

// NewAnnotations creates the annotation service.
func NewAnnotations(store driven.AnnotationStore) *Annotations {
	return &Annotations{store: store}
}

// SetNotes implements driving.AnnotationService.
func (a *Annotations) SetNotes(group *domain.Group, notes string) error {
	if err := a.store.SaveNotes(group.Directory, notes); err != nil {
		return fmt.Errorf("saving notes for %q: %w", group.Directory, err)
	}
	group.SetNotes(notes)
	return nil
}

// SetRepresentative implements driving.AnnotationService.
func (a *Annotations) SetRepresentative(group *domain.Group, index int) error {
	if index < 0 || index >= group.Len() {
		return fmt.Errorf("setting representative %d of %d models: %w",
			index, group.Len(), domain.ErrIndexOutOfRange)
	}
	if err := a.store.SaveRepresentative(group.Directory, &index); err != nil {
		return fmt.Errorf("saving representative for %q: %w", group.Directory, err)
	}
	group.SetRepresentativeOverride(&index)
	return nil
}

// ClearRepresentative implements driving.AnnotationService.
func (a *Annotations) ClearRepresentative(group *domain.Group) error {
	if err := a.store.SaveRepresentative(group.Directory, nil); err != nil {
		return fmt.Errorf("clearing representative for %q: %w", group.Directory, err)
	}
	group.SetRepresentativeOverride(nil)
	return nil
}
