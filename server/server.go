package server

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pulsefit/analysis"
	"github.com/pulsefit/config"
	"github.com/pulsefit/store"
)

const (
	// maxUploadBytes bounds the in-memory part of a multipart upload
	maxUploadBytes = 32 << 20
	// maxRequestBytes bounds the whole upload request body
	maxRequestBytes = 64 << 20
)

// Server serves the upload form, the interval list and the latest window
type Server struct {
	cfg     *config.Config
	uploads *store.UploadStore
	router  *chi.Mux
	maxBody int64
}

// New wires the routes for cfg and the given upload store
func New(cfg *config.Config, uploads *store.UploadStore) *Server {
	s := &Server{
		cfg:     cfg,
		uploads: uploads,
		router:  chi.NewRouter(),
		maxBody: maxRequestBytes,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(loggingMiddleware)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.indexHandler)
	s.router.Post("/", s.uploadHandler)
	s.router.Get("/data", s.dataHandler)
	s.router.Get("/latest", s.latestHandler)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/intervals", s.apiIntervalsHandler)
		r.Get("/latest", s.apiLatestHandler)
	})

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) options() analysis.Options {
	return analysis.Options{
		BucketWidth: s.cfg.BucketWidth,
		Window:      s.cfg.Window,
		Step:        s.cfg.WindowStep,
	}
}

// Addr is the listen address for the configured port
func (s *Server) Addr() string {
	return ":" + s.cfg.Port
}

// Serve blocks serving HTTP on the configured port
func (s *Server) Serve() error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Server starting on http://localhost:%s", s.cfg.Port)
	log.Printf("Uploads are stored in %s", s.uploads.Dir)
	return srv.ListenAndServe()
}
