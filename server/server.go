package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/deep-bhut-zeuslearning/excel/a1"
	"github.com/deep-bhut-zeuslearning/excel/grid"
	"github.com/deep-bhut-zeuslearning/excel/sheet"
	"github.com/deep-bhut-zeuslearning/excel/stats"
)

// Server wires the HTTP API, the websocket hub and the managers together.
type Server struct {
	addr   string
	sheets *sheet.Manager
	users  *UserManager
	hub    *Hub
}

// New assembles a server; Run starts it.
func New(addr string, sheets *sheet.Manager, users *UserManager) *Server {
	return &Server{
		addr:   addr,
		sheets: sheets,
		users:  users,
		hub:    NewHub(sheets),
	}
}

// Run loads persisted state, starts the hub and serves until the listener
// fails.
func (s *Server) Run() error {
	s.sheets.Load()
	s.users.Load()
	go s.hub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/api/register", s.handleRegister)
	mux.HandleFunc("/api/login", s.handleLogin)
	mux.HandleFunc("/api/logout", s.handleLogout)
	mux.HandleFunc("/api/validate", s.handleValidate)
	mux.HandleFunc("/api/sheets", s.handleSheets)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	slog.Info("server started", "addr", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

// cors applies the permissive CORS headers every API endpoint shares and
// short-circuits preflight requests.
func cors(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	username, err := s.users.ValidateToken(token)
	if err != nil {
		http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
		return
	}
	ServeWS(s.hub, w, r, username)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "Username and password required", http.StatusBadRequest)
		return
	}
	if err := s.users.Register(req.Username, req.Password); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	token, err := s.users.Login(req.Username, req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]string{"token": token, "username": req.Username})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if token := r.Header.Get("Authorization"); token != "" {
		s.users.Logout(token)
	}
	writeJSON(w, map[string]string{"message": "Logged out successfully"})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	username, err := s.users.ValidateToken(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]string{"username": username, "valid": "true"})
}

func (s *Server) handleSheets(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	username, err := s.users.ValidateToken(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, s.sheets.List())

	case http.MethodPost:
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, s.sheets.Create(req.Name, username))

	case http.MethodPut:
		var req struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.ID == "" || req.Name == "" {
			http.Error(w, "Sheet ID and name required", http.StatusBadRequest)
			return
		}
		if !s.sheets.Rename(req.ID, req.Name) {
			http.Error(w, "Sheet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]string{"message": "Sheet renamed successfully"})

	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "Sheet ID required", http.StatusBadRequest)
			return
		}
		if !s.sheets.Delete(id) {
			http.Error(w, "Sheet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]string{"message": "Sheet deleted"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleStats aggregates a rectangular range of a sheet, e.g.
// GET /api/stats?id=<sheet>&range=A1:C10.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if _, err := s.users.ValidateToken(r.Header.Get("Authorization")); err != nil {
		http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
		return
	}
	sh := s.sheets.Get(r.URL.Query().Get("id"))
	if sh == nil {
		http.Error(w, "Sheet not found", http.StatusNotFound)
		return
	}
	r0, c0, r1, c1, ok := a1.ParseRange(r.URL.Query().Get("range"))
	if !ok {
		http.Error(w, "Invalid range", http.StatusBadRequest)
		return
	}

	var values []string
	sh.Read(func(store *grid.Store) {
		for _, c := range store.CellsInRange(r0, c0, r1, c1) {
			if c.Value != "" {
				values = append(values, c.Value)
			}
		}
	})
	writeJSON(w, stats.ForValues(values))
}
