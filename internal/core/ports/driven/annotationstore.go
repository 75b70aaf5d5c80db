package driven

// AnnotationStore persists a group's user annotations as sidecar files
// next to the models. Absent sidecars are not errors: they mean empty
// notes and an unset representative. Writing an empty annotation
// removes its sidecar rather than leaving an empty file behind.
type AnnotationStore interface {
	// LoadNotes returns the directory's notes, or "" when the notes
	// sidecar is absent.
	LoadNotes(directory string) (string, error)

	// SaveNotes rewrites the notes sidecar. Empty notes delete it.
	SaveNotes(directory, notes string) error

	// LoadRepresentative returns the stored representative row index,
	// or nil when the sidecar is absent.
	LoadRepresentative(directory string) (*int, error)

	// SaveRepresentative rewrites the representative sidecar. A nil
	// index deletes it, reverting the group to derivation.
	SaveRepresentative(directory string, index *int) error
}
