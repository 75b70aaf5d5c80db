package driving

import "github.com/kortemme-lab/smd-cli/internal/core/domain"

// AnnotationService mutates a group's annotations. Every mutation
// synchronously rewrites the matching sidecar file before returning,
// so callers observe durability immediately.
type AnnotationService interface {
	// SetNotes replaces the group's notes. Empty notes delete the
	// notes sidecar from disk.
	SetNotes(group *domain.Group, notes string) error

	// SetRepresentative pins the representative model to a row index.
	SetRepresentative(group *domain.Group, index int) error

	// ClearRepresentative removes the override; the representative
	// reverts to the minimum-total-score derivation.
	ClearRepresentative(group *domain.Group) error
}
