package handler

import "net/http"

// dashboardStats handles GET /api/stats/dashboard.
func (s *Server) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.guide.DashboardStats(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, stats)
}

// queryMetrics handles GET /api/admin/query-metrics, exposing the
// in-memory storage operation metrics for diagnostics.
func (s *Server) queryMetrics(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.diag.Metrics())
}

// health handles GET /healthz. Reports degraded with a 503 when the
// background database probe is failing.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if !s.diag.Healthy() {
		s.respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
