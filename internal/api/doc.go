// Package api exposes the library, study sessions and generated study
// content over a JSON HTTP API. Handlers are thin: they decode and validate
// requests, call the library, and map errors to status codes.
package api
