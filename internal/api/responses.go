// Package api holds the response envelopes shared across handlers, kept
// separate so the swagger annotations can reference them from any package.
package api

type ErrorResponse struct {
	Error string `json:"error" example:"gym not found"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Email queued successfully"`
}

type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Service string `json:"service" example:"crossfittracker"`
}
