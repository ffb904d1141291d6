package handler

import "net/http"

// listShips handles GET /api/ships.
func (s *Server) listShips(w http.ResponseWriter, r *http.Request) {
	ships, err := s.lookups.ListShips(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, ships)
}

// listLocations handles GET /api/locations.
func (s *Server) listLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := s.lookups.ListLocations(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, locations)
}

// listPartyThemes handles GET /api/party-themes.
func (s *Server) listPartyThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := s.lookups.ListPartyThemes(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, themes)
}

// listTalent handles GET /api/talent.
func (s *Server) listTalent(w http.ResponseWriter, r *http.Request) {
	talent, err := s.lookups.ListTalent(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, talent)
}
