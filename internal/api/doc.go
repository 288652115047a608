// Package api implements the HTTP layer: request and response models,
// handlers for the authentication and routine endpoints, and the mapping
// from internal errors to HTTP status codes. Handlers delegate all
// business decisions to the service layer and never touch storage
// directly.
package api
