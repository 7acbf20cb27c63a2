package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/wricardo/mcp-training/snakesim/game/engine"
	"github.com/wricardo/mcp-training/snakesim/game/registry"
	"github.com/wricardo/mcp-training/snakesim/game/service"
	"github.com/wricardo/mcp-training/snakesim/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Instance lifecycle
	api.HandleFunc("/instances", s.handleCreateInstance).Methods("POST")
	api.HandleFunc("/instances", s.handleListInstances).Methods("GET")
	api.HandleFunc("/instances/{handle}", s.handleGetInstance).Methods("GET")
	api.HandleFunc("/instances/{handle}", s.handleDestroyInstance).Methods("DELETE")

	// Simulation operations
	api.HandleFunc("/instances/{handle}/snapshot", s.handleSnapshot).Methods("GET")
	api.HandleFunc("/instances/{handle}/update", s.handleUpdate).Methods("POST")
	api.HandleFunc("/instances/{handle}/direction", s.handleSetDirection).Methods("POST")
	api.HandleFunc("/instances/{handle}/mode", s.handleSetMode).Methods("POST")
	api.HandleFunc("/instances/{handle}/touch", s.handleTouch).Methods("POST")
	api.HandleFunc("/instances/{handle}/resize", s.handleResize).Methods("POST")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	// Health check
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Static files (if needed)
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service layer errors to HTTP status codes
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrInvalidHandle):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, registry.ErrInvalidArgument):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func parseHandle(r *http.Request) (service.Handle, error) {
	raw := mux.Vars(r)["handle"]
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid handle %q", raw)
	}
	return service.Handle(value), nil
}

// Instance Handlers

func (s *Server) handleCreateInstance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID string `json:"config_id,omitempty"`
		Width    int    `json:"width,omitempty"`
		Height   int    `json:"height,omitempty"`
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	info, err := s.service.CreateInstance(r.Context(), req.ConfigID, req.Width, req.Height)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListInstances(w http.ResponseWriter, r *http.Request) {
	instances, err := s.service.ListInstances(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of instances to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(instances, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = instances[i].CreatedAt, instances[j].CreatedAt
		} else { // "accessed"
			ti, tj = instances[i].LastAccessedAt, instances[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj) // desc
	})

	limit := len(instances)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(instances) {
			limit = l
		}
	}
	instances = instances[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(instances),
		"instances": instances,
		"sort":      sortBy,
		"order":     order,
	})
}

func (s *Server) handleGetInstance(w http.ResponseWriter, r *http.Request) {
	handle, err := parseHandle(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	info, err := s.service.GetInstance(r.Context(), handle)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDestroyInstance(w http.ResponseWriter, r *http.Request) {
	handle, err := parseHandle(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.service.DestroyInstance(r.Context(), handle); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Instance %d destroyed", handle),
	})
}

// Simulation Handlers

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	handle, err := parseHandle(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	snapshot, err := s.service.Render(r.Context(), handle)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	handle, err := parseHandle(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Ticks int `json:"ticks,omitempty"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	result, err := s.service.Tick(r.Context(), handle, req.Ticks)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	// Broadcast to WebSocket clients
	if s.hub != nil {
		s.hub.BroadcastToInstance(handle, &result.Snapshot)
	}

	// Compact server log for observability
	fmt.Printf("[TICK] handle=%d exec=%d/%d ended=%t score=%d head=%v\n",
		handle, result.TicksExecuted, result.TicksRequested, result.Ended,
		result.Snapshot.Score, result.Snapshot.Actor[0])

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSetDirection(w http.ResponseWriter, r *http.Request) {
	handle, err := parseHandle(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Direction string `json:"direction,omitempty"`
		Code      *int   `json:"code,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var direction engine.Direction
	if req.Code != nil {
		direction = engine.DirectionFromCode(*req.Code)
	} else {
		parsed, ok := engine.ParseDirection(req.Direction)
		if !ok {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown direction %q", req.Direction))
			return
		}
		direction = parsed
	}

	if err := s.service.SetDirection(r.Context(), handle, direction); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"handle":    handle,
		"direction": direction,
	})
}

func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	handle, err := parseHandle(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Mode string `json:"mode,omitempty"`
		Code *int   `json:"code,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var mode engine.Mode
	if req.Code != nil {
		mode = engine.ModeFromCode(*req.Code)
	} else {
		parsed, ok := engine.ParseMode(req.Mode)
		if !ok {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown mode %q", req.Mode))
			return
		}
		mode = parsed
	}

	if err := s.service.SetMode(r.Context(), handle, mode); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"handle": handle,
		"mode":   mode,
	})
}

func (s *Server) handleTouch(w http.ResponseWriter, r *http.Request) {
	handle, err := parseHandle(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Action string  `json:"action,omitempty"`
		Code   *int    `json:"code,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var action engine.TouchAction
	if req.Code != nil {
		parsed, ok := engine.TouchActionFromCode(*req.Code)
		if !ok {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown touch action code %d", *req.Code))
			return
		}
		action = parsed
	} else {
		parsed, ok := engine.ParseTouchAction(req.Action)
		if !ok {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown touch action %q", req.Action))
			return
		}
		action = parsed
	}

	if err := s.service.Touch(r.Context(), handle, req.X, req.Y, action); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"handle": handle,
		"action": action,
	})
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	handle, err := parseHandle(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.service.Resize(r.Context(), handle, req.Width, req.Height); err != nil {
		respondServiceError(w, err)
		return
	}

	snapshot, err := s.service.Render(r.Context(), handle)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	// Broadcast to WebSocket clients
	if s.hub != nil {
		s.hub.BroadcastToInstance(handle, snapshot)
	}

	respondJSON(w, http.StatusOK, snapshot)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	configName := mux.Vars(r)["name"]

	// Remove .json extension if present
	configName = strings.TrimSuffix(configName, ".json")

	config, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, config)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var config engine.Config

	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if config.Name == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}

	if err := s.service.SaveConfig(r.Context(), config.Name, &config); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": config.Name,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("instance")
	if raw == "" {
		http.Error(w, "instance parameter required", http.StatusBadRequest)
		return
	}

	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		http.Error(w, "invalid instance handle", http.StatusBadRequest)
		return
	}
	handle := service.Handle(value)

	// Verify the instance exists
	if _, err := s.service.GetInstance(context.Background(), handle); err != nil {
		http.Error(w, "Invalid instance", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, handle)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
