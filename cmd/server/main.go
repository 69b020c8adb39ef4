// Command server exposes facility screening over HTTP.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/boringai/constraintsim/audit"
	"github.com/boringai/constraintsim/engine"
	"github.com/boringai/constraintsim/facility"
	"github.com/boringai/constraintsim/internal/logger"
)

type Server struct {
	db     *sql.DB // nil when running without persistence
	engine *engine.Engine
	store  audit.Store
	router *chi.Mux
}

// NewServer builds the engine and wires the audit store. When
// databaseURL is empty the server keeps its audit trail in memory.
func NewServer(databaseURL string) (*Server, error) {
	en, err := engine.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	s := &Server{
		engine: en,
		store:  audit.NewInMemoryStore(),
	}

	if databaseURL != "" {
		db, err := sql.Open("postgres", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.Ping(); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		s.db = db
		s.store = audit.NewPostgresStore(db)
	}

	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/api/v1/health", s.handleHealth)
	r.Post("/api/v1/evaluate", s.handleEvaluate)
	r.Get("/api/v1/rules", s.handleListRules)

	r.Route("/api/v1/evaluations", func(r chi.Router) {
		r.Get("/", s.handleListEvaluations)
		r.Get("/{evaluationId}", s.handleGetEvaluation)
	})

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Health check handler
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
	}

	respondJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

// Evaluation handler. Malformed facility documents are not HTTP errors:
// they come back as verdict UNKNOWN. Only an internal evaluation defect
// maps to 500.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	startTime := time.Now()

	result, err := s.engine.Evaluate(raw)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "evaluation failed", err)
		return
	}

	evaluationTime := time.Since(startTime)

	rec := &audit.Record{
		ID:      uuid.NewString(),
		Verdict: string(result.Verdict),
	}
	if name, ok := raw[facility.FieldFacilityName].(string); ok {
		rec.FacilityName = name
	}
	if resultJSON, err := json.Marshal(result); err == nil {
		rec.Result = resultJSON
	}
	if err := s.store.Save(rec); err != nil {
		// The verdict still goes back to the caller; only the trail entry is lost.
		logger.Logger.Error("failed to save evaluation record", "id", rec.ID, "error", err)
	}

	respondJSON(w, http.StatusOK, EvaluateResponse{
		ID:             rec.ID,
		Result:         result,
		EvaluationTime: evaluationTime.String(),
	})
}

// List rules handler
func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, RulesResponse{
		Disqualifiers: ruleDescriptors(engine.DisqualifierRules),
		CautionFlags:  ruleDescriptors(engine.CautionFlagRules),
	})
}

// List evaluations handler
func (s *Server) handleListEvaluations(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer", nil)
			return
		}
		limit = parsed
	}

	records, err := s.store.ListRecent(limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list evaluations", err)
		return
	}
	if records == nil {
		records = []*audit.Record{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"evaluations": records,
	})
}

// Get evaluation handler
func (s *Server) handleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	evaluationID := chi.URLParam(r, "evaluationId")

	rec, err := s.store.Get(evaluationID)
	if err != nil {
		respondError(w, http.StatusNotFound, "evaluation not found", err)
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

// Helper functions
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]string{
		"error": message,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}

func ruleDescriptors(rules []engine.Rule) []RuleDescriptor {
	descriptors := make([]RuleDescriptor, 0, len(rules))
	for _, r := range rules {
		descriptors = append(descriptors, RuleDescriptor{
			ID:         r.ID,
			Expression: r.Expression,
			Reason:     r.Reason,
		})
	}
	return descriptors
}

func main() {
	log := logger.Logger

	server, err := NewServer(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Error("failed to create server", "error", err)
		os.Exit(1)
	}
	if server.db != nil {
		defer server.db.Close()
	} else {
		log.Info("DATABASE_URL not set, keeping audit trail in memory")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		log.Info("server starting", "port", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", "error", err)
	}

	log.Info("server stopped")
}
