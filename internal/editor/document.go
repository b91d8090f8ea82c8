package editor

import (
	"sync"

	"github.com/jonathan/career-coach/internal/rendering"
	"github.com/jonathan/career-coach/internal/types"
)

// ResetMessage is the acknowledgement sent when manual edits are discarded.
const ResetMessage = "Markdown reset to form data"

// Notifier receives user-facing acknowledgements.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Notify calls f(message).
func (f NotifierFunc) Notify(message string) { f(message) }

// Snapshot is a consistent view of the document.
type Snapshot struct {
	Text     string               `json:"markdown"`
	State    EditState            `json:"edit_state"`
	Sections types.ResumeSections `json:"sections"`
}

// Document is the in-memory resume buffer. Section updates recombine the
// text only while the state is StateGenerated.
type Document struct {
	mu          sync.Mutex
	sections    types.ResumeSections
	displayName string
	initial     string
	text        string
	state       EditState
	notifier    Notifier
}

// New creates a document in StateGenerated. initialContent is shown while the
// sections combine to nothing, e.g. a previously saved resume.
func New(displayName, initialContent string, notifier Notifier) *Document {
	return &Document{
		displayName: displayName,
		initial:     initialContent,
		text:        initialContent,
		state:       StateGenerated,
		notifier:    notifier,
	}
}

// UpdateSections records new form values and, unless the text was edited by
// hand, regenerates it.
func (d *Document) UpdateSections(sections types.ResumeSections) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.sections = sections.Clone()
	if d.state == StateGenerated {
		d.regenerate()
	}
}

// Edit replaces the text with a manual edit and suspends regeneration.
func (d *Document) Edit(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.text = text
	d.state = StateManuallyEdited
}

// ResetToGenerated discards manual edits, regenerates the text from the
// current sections and notifies the user. Returns the new text.
func (d *Document) ResetToGenerated() string {
	d.mu.Lock()
	d.state = StateReset
	d.text = rendering.Combine(d.sections, d.displayName)
	d.state = StateGenerated
	text := d.text
	notifier := d.notifier
	d.mu.Unlock()

	if notifier != nil {
		notifier.Notify(ResetMessage)
	}
	return text
}

// SetDisplayName changes the contact heading name and regenerates if allowed.
func (d *Document) SetDisplayName(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.displayName = name
	if d.state == StateGenerated {
		d.regenerate()
	}
}

// Text returns the displayed document text.
func (d *Document) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

// State returns the current edit state.
func (d *Document) State() EditState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Sections returns a copy of the latest form values.
func (d *Document) Sections() types.ResumeSections {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sections.Clone()
}

// Snapshot returns text, state and sections under one lock.
func (d *Document) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Snapshot{
		Text:     d.text,
		State:    d.state,
		Sections: d.sections.Clone(),
	}
}

// regenerate must be called with mu held.
func (d *Document) regenerate() {
	text := rendering.Combine(d.sections, d.displayName)
	if text == "" {
		text = d.initial
	}
	d.text = text
}
