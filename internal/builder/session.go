// Package builder keeps the per-user resume builder state on the server: the
// document buffer with its edit state and the exporter with its busy flag.
package builder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jonathan/career-coach/internal/career"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/editor"
	"github.com/jonathan/career-coach/internal/raster"
	"github.com/jonathan/career-coach/internal/rendering"
	"github.com/jonathan/career-coach/internal/types"
)

// ResumeRepository loads and saves the user's resume
type ResumeRepository interface {
	Get(ctx context.Context, identity *types.Identity) (*db.Resume, error)
	Save(ctx context.Context, identity *types.Identity, content string) (*db.Resume, error)
}

// Session is one user's builder
type Session struct {
	identity  types.Identity
	doc       *editor.Document
	exporter  *raster.Exporter
	previewer *rendering.Previewer
	resumes   ResumeRepository

	mu      sync.Mutex
	notices []string
}

func newSession(identity types.Identity, initial string, exporter *raster.Exporter, previewer *rendering.Previewer, resumes ResumeRepository) *Session {
	s := &Session{
		identity:  identity,
		exporter:  exporter,
		previewer: previewer,
		resumes:   resumes,
	}
	s.doc = editor.New(identity.DisplayName(), initial, editor.NotifierFunc(s.notify))
	return s
}

func (s *Session) notify(message string) {
	s.mu.Lock()
	s.notices = append(s.notices, message)
	s.mu.Unlock()
}

// drainNotices returns and clears pending acknowledgements.
func (s *Session) drainNotices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notices
	s.notices = nil
	return out
}

// State is the builder as returned to clients
type State struct {
	editor.Snapshot
	Exporting bool     `json:"exporting"`
	Notices   []string `json:"notices,omitempty"`
}

func (s *Session) state() State {
	return State{
		Snapshot:  s.doc.Snapshot(),
		Exporting: s.exporter.Busy(),
		Notices:   s.drainNotices(),
	}
}

// State returns the current builder state
func (s *Session) State() State {
	return s.state()
}

// UpdateSections records form values; the markdown follows unless it was edited by hand.
// Partial values are accepted as-is since the form is mid-edit.
func (s *Session) UpdateSections(sections types.ResumeSections) State {
	s.doc.UpdateSections(sections)
	return s.state()
}

// Edit replaces the markdown with user text
func (s *Session) Edit(text string) State {
	s.doc.Edit(text)
	return s.state()
}

// Reset discards manual edits and regenerates from the sections
func (s *Session) Reset() State {
	s.doc.ResetToGenerated()
	return s.state()
}

// Save persists the current markdown. The document itself is untouched
// whatever the outcome.
func (s *Session) Save(ctx context.Context) (*db.Resume, error) {
	s.mu.Lock()
	identity := s.identity
	s.mu.Unlock()
	return s.resumes.Save(ctx, &identity, s.doc.Text())
}

// refreshIdentity picks up profile changes made at the auth provider since
// the session was created.
func (s *Session) refreshIdentity(identity types.Identity) {
	s.mu.Lock()
	s.identity = identity
	s.mu.Unlock()
	s.doc.SetDisplayName(identity.DisplayName())
}

// Export renders the current markdown and runs it through the exporter.
func (s *Session) Export(ctx context.Context, observe raster.Observer) (*raster.Result, error) {
	return Render(ctx, s.previewer, s.exporter, s.doc.Text(), observe)
}

// Render builds the preview page for markdown and exports it.
func Render(ctx context.Context, previewer *rendering.Previewer, exporter *raster.Exporter, markdown string, observe raster.Observer) (*raster.Result, error) {
	if exporter.Busy() {
		return nil, raster.ErrExportInProgress
	}
	page, err := previewer.PreviewPage(ctx, markdown)
	if err != nil {
		return nil, err
	}
	return exporter.Export(ctx, raster.SurfaceHandle{HTML: page, Selector: rendering.SurfaceSelector}, observe)
}

// Options configures sessions created by a Manager
type Options struct {
	Capturer raster.Capturer
	Format   raster.PageFormat
	Preview  rendering.PreviewOptions
	Verbose  bool
}

// Manager owns one Session per authenticated subject
type Manager struct {
	opts      Options
	previewer *rendering.Previewer
	resumes   ResumeRepository

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a Manager
func NewManager(opts Options, resumes ResumeRepository) *Manager {
	return &Manager{
		opts:      opts,
		previewer: rendering.NewPreviewer(opts.Preview),
		resumes:   resumes,
		sessions:  make(map[string]*Session),
	}
}

// Session returns the caller's session, creating it on first use with the
// saved resume, if any, as initial content.
func (m *Manager) Session(ctx context.Context, identity *types.Identity) (*Session, error) {
	if identity == nil || identity.Subject == "" {
		return nil, career.ErrNoIdentity
	}

	m.mu.Lock()
	s, ok := m.sessions[identity.Subject]
	m.mu.Unlock()
	if ok {
		s.refreshIdentity(*identity)
		return s, nil
	}

	initial := ""
	saved, err := m.resumes.Get(ctx, identity)
	var nf *career.NotFoundError
	switch {
	case err == nil:
		initial = saved.Content
	case errors.As(err, &nf):
	default:
		return nil, fmt.Errorf("failed to load saved resume: %w", err)
	}

	exporter := raster.NewExporter(m.opts.Capturer, m.opts.Format, raster.WithVerbose(m.opts.Verbose))
	created := newSession(*identity, initial, exporter, m.previewer, m.resumes)

	m.mu.Lock()
	defer m.mu.Unlock()
	// Keep whichever session won a concurrent first request.
	if s, ok := m.sessions[identity.Subject]; ok {
		s.refreshIdentity(*identity)
		return s, nil
	}
	m.sessions[identity.Subject] = created
	return created, nil
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
