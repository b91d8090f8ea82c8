package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/career-coach/internal/server/middleware"
	"github.com/jonathan/career-coach/internal/types"
)

// maxBodyBytes bounds request bodies; resumes and cover letters are small.
const maxBodyBytes = 1 << 20

// identity returns the authenticated caller or writes a 401.
func (s *Server) identity(w http.ResponseWriter, r *http.Request) (*types.Identity, bool) {
	identity := middleware.IdentityFrom(r)
	if identity == nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return identity, true
}

// decodeBody decodes the JSON request body into v or writes a 400.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
