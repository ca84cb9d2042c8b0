package main

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/wordhoard/internal/api"
	"github.com/phrazzld/wordhoard/internal/api/middleware"
	"github.com/phrazzld/wordhoard/internal/api/shared"
	"github.com/rs/cors"
)

func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(app.corsHandler().Handler)
	r.Use(middleware.NewTraceMiddleware(app.logger))

	r.Route("/api", func(r chi.Router) {
		api.RegisterRoutes(r, app.apiHandlers())
	})
	r.Get("/health", app.health)
	return r
}

// corsHandler lets the mobile and web clients call the API from the
// configured origins and read the trace header on failures.
func (app *application) corsHandler() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: app.config.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{shared.TraceHeader},
		MaxAge:         300,
	})
}

func (app *application) apiHandlers() api.Handlers {
	return api.Handlers{
		Library:    api.NewLibraryHandler(app.library, app.logger),
		Flashcards: api.NewFlashcardHandler(app.library, app.logger),
		Wordlists:  api.NewWordlistHandler(app.library, app.logger),
		Folders:    api.NewFolderHandler(app.library, app.logger),
		Sessions:   api.NewSessionHandler(app.sessions, app.logger),
		Study:      api.NewStudyHandler(app.library, app.generator, app.logger),
	}
}

func (app *application) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, "OK"); err != nil {
		app.logger.Warn("health response write failed", "error", err)
	}
}
