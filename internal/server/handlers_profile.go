package server

import (
	"net/http"

	"github.com/jonathan/career-coach/internal/types"
)

// ---------------------------------------------------------------------
// Onboarding Handlers
// ---------------------------------------------------------------------

func (s *Server) handleOnboardingStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r)
	if !ok {
		return
	}

	status, err := s.services.Profiles.OnboardingStatus(r.Context(), identity)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, status)
}

func (s *Server) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r)
	if !ok {
		return
	}

	var req types.OnboardingRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	result, err := s.services.Profiles.UpdateProfile(r.Context(), identity, &req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleGetInsight(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identity(w, r)
	if !ok {
		return
	}

	insight, err := s.services.Profiles.Insight(r.Context(), identity)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, insight)
}
