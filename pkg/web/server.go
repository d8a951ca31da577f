package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/richard-senior/livexg/internal/logger"
	"github.com/richard-senior/livexg/pkg/util/livexg"
)

// maxBodySize bounds a request body
const maxBodySize = 1 << 20

// Server exposes the projection service over HTTP
type Server struct {
	service    *livexg.Service
	httpServer *http.Server
}

func NewServer(svc *livexg.Service) *Server {
	return &Server{service: svc}
}

// Handler builds the router with CORS applied
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	// routes sit on the root router so a wrong verb reaches MethodNotAllowedHandler
	router.HandleFunc("/api/health", s.handleHealth).Methods("GET")
	router.HandleFunc("/api/projection", s.handleProjection).Methods("POST")
	router.HandleFunc("/api/presets", s.handleListPresets).Methods("GET")
	router.HandleFunc("/api/presets/{name}", s.handleGetPreset).Methods("GET")
	router.HandleFunc("/api/presets/{name}", s.handleSavePreset).Methods("PUT")
	router.HandleFunc("/api/presets/{name}", s.handleDeletePreset).Methods("DELETE")
	router.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)
	router.NotFoundHandler = http.HandlerFunc(handleNotFound)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(router)
}

// Start listens on addr until Stop is called
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	logger.Info("HTTP server listening on", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop() {
	if s.httpServer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error:", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	var flat livexg.FlatInput
	if err := decodeBody(w, r, &flat); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	out, err := s.service.Project(&flat)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	raw := r.URL.Query().Get("raw") == "true"
	resp := map[string]any{"report": livexg.NewReport(out)}
	if raw {
		resp["raw"] = out
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	presets, err := s.service.Store.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if presets == nil {
		presets = []*livexg.LeaguePreset{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"presets": presets})
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	preset, err := s.service.Store.Get(mux.Vars(r)["name"])
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, preset)
}

func (s *Server) handleSavePreset(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	var preset livexg.LeaguePreset
	if err := decodeBody(w, r, &preset); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	// the path names the preset
	preset.Name = mux.Vars(r)["name"]
	preset.UpdatedAt = time.Time{}

	if err := s.service.Store.Save(&preset); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	saved, err := s.service.Store.Get(preset.Name)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.service.Store.Delete(mux.Vars(r)["name"]); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.service.Store == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("no preset store is configured"))
		return false
	}
	return true
}
