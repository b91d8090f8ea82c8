package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/jonathan/career-coach/internal/builder"
	"github.com/jonathan/career-coach/internal/raster"
	"github.com/jonathan/career-coach/internal/types"
)

// ---------------------------------------------------------------------
// Resume Builder Handlers
// ---------------------------------------------------------------------

// EditMarkdownRequest replaces the builder markdown with hand-edited text.
type EditMarkdownRequest struct {
	Markdown string `json:"markdown"`
}

// ExportSummary is the final event of an export stream.
type ExportSummary struct {
	Filename  string `json:"filename"`
	PageCount int    `json:"page_count"`
	PDF       []byte `json:"pdf"`
}

// session returns the caller's builder session or writes the error.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*builder.Session, bool) {
	identity, ok := s.identity(w, r)
	if !ok {
		return nil, false
	}
	session, err := s.services.Builder.Session(r.Context(), identity)
	if err != nil {
		s.serviceError(w, r, err)
		return nil, false
	}
	return session, true
}

func (s *Server) handleGetBuilder(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, session.State())
}

func (s *Server) handleUpdateSections(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	var sections types.ResumeSections
	if !s.decodeBody(w, r, &sections) {
		return
	}

	s.jsonResponse(w, http.StatusOK, session.UpdateSections(sections))
}

func (s *Server) handleEditMarkdown(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	var req EditMarkdownRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.jsonResponse(w, http.StatusOK, session.Edit(req.Markdown))
}

func (s *Server) handleResetBuilder(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, session.Reset())
}

func (s *Server) handleSaveBuilder(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	resume, err := session.Save(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handleExport returns the rendered PDF as an attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	result, err := session.Export(r.Context(), nil)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.PDF)))
	w.Header().Set("X-Page-Count", strconv.Itoa(result.PageCount))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.PDF); err != nil {
		log.Printf("[export] failed to write PDF: %v", err)
	}
}

// handleExportStream streams every export state as a "state" event, then
// either a "complete" event carrying the PDF or an "error" event.
func (s *Server) handleExportStream(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := session.Export(r.Context(), func(state raster.ExportState) {
		if werr := sse.WriteEvent("state", map[string]raster.ExportState{"state": state}); werr != nil {
			log.Printf("[export] failed to write state event: %v", werr)
		}
	})
	if err != nil {
		status := HTTPStatus(err)
		message := err.Error()
		if status == http.StatusInternalServerError {
			log.Printf("[export] stream failed: %v", err)
			message = "Internal server error"
		}
		sse.WriteError(status, message)
		return
	}

	sse.WriteComplete(ExportSummary{
		Filename:  result.Filename,
		PageCount: result.PageCount,
		PDF:       result.PDF,
	})
}
