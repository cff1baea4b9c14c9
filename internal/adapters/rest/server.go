package rest

import (
	"context"
	"fmt"
	"net/http"

	core_port "github.com/MrSprintALot/job-feed/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server is the REST API server.
type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(port string, feedHandler *FeedHandler, savedHandler *SavedHandler, scrapeHandler *ScrapeHandler, baseLogger core_port.LoggerPort) *Server {
	r := chi.NewRouter()

	r.Use(LoggerMiddleware(baseLogger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Trace-ID"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/jobs", feedHandler.GetJobs)
		r.Post("/jobs/{jobID}/save", savedHandler.SaveJob)
		r.Delete("/jobs/{jobID}/save", savedHandler.UnsaveJob)

		r.Get("/saved", savedHandler.GetSaved)
		r.Get("/saved/{list}", savedHandler.GetSaved)

		r.Post("/lists", savedHandler.CreateList)
		r.Delete("/lists/{name}", savedHandler.DeleteList)

		r.Get("/stats", feedHandler.GetStats)
		r.Post("/scrape", scrapeHandler.TriggerScrape)
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	return &Server{
		httpServer: srv,
		logger:     baseLogger,
	}
}

// Start runs the HTTP server until it is stopped.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
