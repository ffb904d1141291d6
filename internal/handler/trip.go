package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bryhearnchi/tripguides/internal/domain"
)

// pathID parses the {id} path segment as a positive integer.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// createTrip handles POST /api/trips.
func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var trip domain.Trip
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		s.respondBadRequest(w, "invalid request body")
		return
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, created)
}

// listTrips handles GET /api/trips.
func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, trips)
}

// getTrip handles GET /api/trips/{id}.
func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.respondBadRequest(w, "trip id must be a positive integer")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, trip)
}

// updateTrip handles PUT /api/trips/{id}.
func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.respondBadRequest(w, "trip id must be a positive integer")
		return
	}

	var trip domain.Trip
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		s.respondBadRequest(w, "invalid request body")
		return
	}
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, updated)
}

// deleteTrip handles DELETE /api/trips/{id}.
func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.respondBadRequest(w, "trip id must be a positive integer")
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// duplicateRequest is the body for POST /api/trips/{id}/duplicate.
type duplicateRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// duplicateTrip handles POST /api/trips/{id}/duplicate.
func (s *Server) duplicateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.respondBadRequest(w, "trip id must be a positive integer")
		return
	}

	var req duplicateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondBadRequest(w, "invalid request body")
		return
	}

	trip, err := s.guide.DuplicateTrip(r.Context(), id, req.Name, req.Slug)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, trip)
}

// bulkEventsRequest is the body for PUT /api/trips/{id}/events/bulk.
type bulkEventsRequest struct {
	Events []domain.EventInput `json:"events"`
}

// bulkUpsertEvents handles PUT /api/trips/{id}/events/bulk.
func (s *Server) bulkUpsertEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.respondBadRequest(w, "trip id must be a positive integer")
		return
	}

	var req bulkEventsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondBadRequest(w, "invalid request body")
		return
	}

	events, err := s.guide.BulkUpsertEvents(r.Context(), id, req.Events)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, events)
}

// tripComplete handles GET /api/trips/{slug}/complete.
func (s *Server) tripComplete(w http.ResponseWriter, r *http.Request) {
	complete, err := s.guide.GetTripComplete(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, complete)
}
