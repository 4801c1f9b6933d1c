package server

import "net/http"

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, discoveryResponse{
		Name:        "insadmin",
		Version:     "v1",
		Description: "Administrative console for the vehicle-insurance back office",
		Endpoints: []endpointInfo{
			{"/api/v1/health", []string{"GET"}, "Console health, session store and remote API breaker state"},
			{"/metrics", []string{"GET"}, "Prometheus metrics"},
			{"/login", []string{"GET", "POST"}, "Sign in against the remote API"},
			{"/admin", []string{"GET"}, "Admin console"},
			{"/assistant", []string{"GET"}, "Assistant admin console, gated per permission"},
			{"/exports/{entity}", []string{"GET"}, "Stream a remote report (pdf, xlsx, csv)"},
		},
	})
}
