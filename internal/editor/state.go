// Package editor holds the resume document buffer and the edit-state
// discipline that decides when generated markdown may overwrite it.
package editor

// EditState says whether the document text tracks the form sections.
type EditState int

const (
	// StateGenerated means the text equals the combination of the current sections.
	StateGenerated EditState = iota
	// StateManuallyEdited means the user overrode the text; section changes
	// no longer overwrite it.
	StateManuallyEdited
	// StateReset is passed through while discarding manual edits.
	StateReset
)

func (s EditState) String() string {
	switch s {
	case StateGenerated:
		return "generated"
	case StateManuallyEdited:
		return "manually_edited"
	case StateReset:
		return "reset"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s EditState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
