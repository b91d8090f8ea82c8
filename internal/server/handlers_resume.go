package server

import (
	"net/http"

	"github.com/jonathan/career-coach/internal/rendering"
	"github.com/jonathan/career-coach/internal/types"
)

// SaveResumeRequest replaces the stored resume markdown.
type SaveResumeRequest struct {
	Content string `json:"content"`
}

// CombineRequest asks for the markdown of a set of sections without touching
// any stored state. Name overrides the caller's display name.
type CombineRequest struct {
	Sections types.ResumeSections `json:"sections"`
	Name     string               `json:"name,omitempty"`
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r)
	if !ok {
		return
	}

	resume, err := s.services.Resumes.Get(r.Context(), identity)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

func (s *Server) handleSaveResume(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r)
	if !ok {
		return
	}

	var req SaveResumeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	resume, err := s.services.Resumes.Save(r.Context(), identity, req.Content)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

func (s *Server) handleCombineMarkdown(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r)
	if !ok {
		return
	}

	var req CombineRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	name := req.Name
	if name == "" {
		name = identity.DisplayName()
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"markdown": rendering.Combine(req.Sections, name),
	})
}
