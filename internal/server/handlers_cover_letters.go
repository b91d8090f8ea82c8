package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/types"
)

// ---------------------------------------------------------------------
// Cover Letter Handlers
// ---------------------------------------------------------------------

// coverLetterID parses the {id} path value or writes a 400.
func (s *Server) coverLetterID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid cover letter ID")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) handleListCoverLetters(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r)
	if !ok {
		return
	}

	letters, err := s.services.CoverLetters.List(r.Context(), identity)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if letters == nil {
		letters = []db.CoverLetter{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"cover_letters": letters,
		"count":         len(letters),
	})
}

func (s *Server) handleCreateCoverLetter(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r)
	if !ok {
		return
	}

	var req types.CreateCoverLetterRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	letter, err := s.services.CoverLetters.Create(r.Context(), identity, &req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, letter)
}

func (s *Server) handleGetCoverLetter(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r)
	if !ok {
		return
	}
	id, ok := s.coverLetterID(w, r)
	if !ok {
		return
	}

	letter, err := s.services.CoverLetters.Get(r.Context(), identity, id)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, letter)
}

func (s *Server) handleUpdateCoverLetter(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r)
	if !ok {
		return
	}
	id, ok := s.coverLetterID(w, r)
	if !ok {
		return
	}

	var req types.UpdateCoverLetterRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	letter, err := s.services.CoverLetters.Update(r.Context(), identity, id, req.Content)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, letter)
}

func (s *Server) handleDeleteCoverLetter(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r)
	if !ok {
		return
	}
	id, ok := s.coverLetterID(w, r)
	if !ok {
		return
	}

	if err := s.services.CoverLetters.Delete(r.Context(), identity, id); err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
