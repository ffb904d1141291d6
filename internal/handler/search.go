package handler

import (
	"net/http"
	"strconv"
	"strings"
)

// search handles GET /api/search?q=term&types=trips,events&limit=20.
// Omitting types searches every entity type; omitting limit uses the
// service default.
func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	var types []string
	if raw := r.URL.Query().Get("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.respondBadRequest(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	results, err := s.guide.Search(r.Context(), term, types, limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, results)
}
