package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"menuboard/internal/auth"
	"menuboard/internal/config"
	"menuboard/internal/dragdrop"
	"menuboard/internal/export"
	"menuboard/internal/planboard"
	"menuboard/internal/recipes"
	"menuboard/internal/storage"
	"menuboard/internal/storage/memory"
	"menuboard/internal/storage/postgres"
	"menuboard/internal/templates"
)

// Server is the HTTP server wiring storage, services and handlers together.
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	storage        storage.Store
	authMiddleware *auth.Middleware
}

// New creates a new HTTP server.
func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	s.initStorage()
	s.routes()
	return s
}

// initStorage picks the storage backend (Memory or Postgres).
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("Using in-memory storage")
		s.storage = memory.New()
		return
	}

	log.Println("Connecting to PostgreSQL...")
	pgStorage, err := postgres.New(context.Background(), s.config.DatabaseURL)
	if err != nil {
		log.Printf("PostgreSQL connection failed: %v", err)
		log.Println("Falling back to in-memory storage")
		s.storage = memory.New()
		return
	}
	log.Println("PostgreSQL connected")
	s.storage = pgStorage
}

// routes registers the routes.
func (s *Server) routes() {
	// Health check (no auth required)
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// Auth API (no auth required)
	authService := auth.NewService(s.config)
	authHandler := auth.NewHandlers(authService)
	s.authMiddleware = auth.NewMiddleware(s.config, authService)

	// POST /v1/auth/dev - local dev token
	s.mux.HandleFunc("POST /v1/auth/dev", authHandler.HandleDevAuth)

	// Planning board API
	templateEngine := templates.NewEngine(s.config.TemplatesMaxPerOwner)
	boardStore := planboard.NewStore(s.storage.Plans(), templateEngine)
	boardHandler := planboard.NewHandler(boardStore)

	// POST /v1/board/fetch - load the three-week window around an anchor
	s.mux.HandleFunc("POST /v1/board/fetch", boardHandler.HandleFetch)

	// GET /v1/board - return the currently loaded window
	s.mux.HandleFunc("GET /v1/board", boardHandler.HandleWindow)

	// GET /v1/board/view - project day/three_day/week view at a cursor
	s.mux.HandleFunc("GET /v1/board/view", boardHandler.HandleView)

	// GET /v1/board/navigate - step the cursor and project the next view
	s.mux.HandleFunc("GET /v1/board/navigate", boardHandler.HandleNavigate)

	// PUT /v1/board/slots - replace one slot's content
	s.mux.HandleFunc("PUT /v1/board/slots", boardHandler.HandleSaveSlot)

	// POST /v1/board/move - move a slot or single entry
	s.mux.HandleFunc("POST /v1/board/move", boardHandler.HandleMove)

	// Drag gesture API
	dragEngine := dragdrop.NewEngine(boardStore)
	dragHandler := dragdrop.NewHandler(dragEngine)
	s.mux.HandleFunc("POST /v1/board/drag/start", dragHandler.HandleStart)
	s.mux.HandleFunc("POST /v1/board/drag/end", dragHandler.HandleEnd)
	s.mux.HandleFunc("POST /v1/board/drag/cancel", dragHandler.HandleCancel)

	// Export API
	exportHandler := export.NewHandler(boardStore, export.NewGenerator())

	// GET /v1/board/export - week menu as PDF or CSV
	s.mux.HandleFunc("GET /v1/board/export", exportHandler.HandleExport)

	// Templates API
	s.mux.HandleFunc("POST /v1/templates/snapshot", boardHandler.HandleSnapshotTemplate)
	s.mux.HandleFunc("POST /v1/templates/apply", boardHandler.HandleApplyTemplate)
	s.mux.HandleFunc("GET /v1/templates", boardHandler.HandleListTemplates)
	s.mux.HandleFunc("DELETE /v1/templates/{id}", boardHandler.HandleDeleteTemplate)

	// Recipes API
	recipesService := recipes.NewService(s.storage.Recipes())
	recipesHandler := recipes.NewHandler(recipesService)
	s.mux.HandleFunc("GET /v1/recipes", recipesHandler.HandleList)
	s.mux.HandleFunc("POST /v1/recipes", recipesHandler.HandleCreate)
	s.mux.HandleFunc("GET /v1/recipes/{id}", recipesHandler.HandleGet)
	s.mux.HandleFunc("DELETE /v1/recipes/{id}", recipesHandler.HandleDelete)
}

// handleHealthz reports server status.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Handler builds the middleware chain (outermost first):
// CORS → Rate Limit → Auth → Router.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	if s.authMiddleware != nil && s.config.AuthMode != "none" {
		if s.config.AuthRequired {
			handler = s.authMiddleware.RequireAuth(handler)
		} else {
			handler = s.authMiddleware.OptionalAuth(handler)
		}
	}
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)
	return handler
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	log.Printf("Server listening on http://localhost%s\n", addr)
	log.Printf("Health check: http://localhost%s/healthz\n", addr)
	log.Printf("Board API: http://localhost%s/v1/board/fetch\n", addr)

	return http.ListenAndServe(addr, s.Handler())
}

// Close releases storage resources.
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}
