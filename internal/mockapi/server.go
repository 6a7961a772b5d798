package mockapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fundry/console/internal/console/models"
)

// Server exposes the platform REST contract over the in-memory store.
type Server struct {
	store  *Store
	secret []byte
}

func NewServer(store *Store, secret []byte) *Server {
	return &Server{store: store, secret: secret}
}

// Router builds the chi router: public auth endpoints plus a bearer-guarded
// group for everything else.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/api/auth/login", s.handleLogin)
	r.Post("/api/auth/register", s.handleRegister)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware(s.secret))

		r.Get("/api/me", s.handleMe)

		r.Get("/api/funds", s.handleListFunds)
		r.Post("/api/funds", s.handleCreateFund)
		r.Get("/api/funds/{id}", s.handleGetFund)
		r.Put("/api/funds/{id}", s.handleUpdateFund)

		r.Get("/api/pledges", s.handleListPledges)
		r.Post("/api/pledges", s.handleCreatePledge)
		r.Post("/api/pledges/{id}/accept", s.handleAcceptPledge)

		r.Get("/api/handshakes", s.handleListHandshakes)
		r.Get("/api/documents", s.handleListDocuments)
		r.Get("/api/notifications", s.handleListNotifications)

		r.Get("/api/conversations", s.handleListConversations)
		r.Get("/api/conversations/{id}/messages", s.handleListMessages)
		r.Post("/api/conversations/{id}/messages", s.handleSendMessage)
	})

	return r
}

func sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, status, map[string]string{"error": message})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, ok := s.store.Authenticate(req.Email, req.Password)
	if !ok {
		sendError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := issueToken(s.secret, u)
	if err != nil {
		sendError(w, "token issue failed", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"token": token})
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		sendError(w, "email and password are required", http.StatusBadRequest)
		return
	}
	if req.Role != "BUSINESS" && req.Role != "INVESTOR" {
		sendError(w, "role must be BUSINESS or INVESTOR", http.StatusBadRequest)
		return
	}

	u, ok := s.store.CreateUser(req.Email, req.Name, req.Role, req.Password)
	if !ok {
		sendError(w, "email already registered", http.StatusConflict)
		return
	}
	sendJSON(w, http.StatusCreated, models.Profile{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := s.store.UserByID(userIDFrom(r.Context()))
	if !ok {
		sendError(w, "account not found", http.StatusNotFound)
		return
	}
	sendJSON(w, http.StatusOK, models.Profile{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role})
}

func (s *Server) handleListFunds(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, s.store.Funds())
}

func (s *Server) handleGetFund(w http.ResponseWriter, r *http.Request) {
	f, ok := s.store.FundByID(chi.URLParam(r, "id"))
	if !ok {
		sendError(w, "fund not found", http.StatusNotFound)
		return
	}
	sendJSON(w, http.StatusOK, f)
}

func (s *Server) handleCreateFund(w http.ResponseWriter, r *http.Request) {
	var f models.Fund
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if f.Title == "" || f.TargetCents <= 0 {
		sendError(w, "title and positive target are required", http.StatusBadRequest)
		return
	}
	f.BusinessID = userIDFrom(r.Context())
	sendJSON(w, http.StatusCreated, s.store.CreateFund(f))
}

func (s *Server) handleUpdateFund(w http.ResponseWriter, r *http.Request) {
	var f models.Fund
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	f.ID = chi.URLParam(r, "id")
	out, ok := s.store.UpdateFund(f)
	if !ok {
		sendError(w, "fund not found", http.StatusNotFound)
		return
	}
	sendJSON(w, http.StatusOK, out)
}

func (s *Server) handleListPledges(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, s.store.Pledges())
}

func (s *Server) handleCreatePledge(w http.ResponseWriter, r *http.Request) {
	var p models.Pledge
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if p.AmountCents <= 0 {
		sendError(w, "positive amount is required", http.StatusBadRequest)
		return
	}
	p.InvestorID = userIDFrom(r.Context())
	out, ok := s.store.CreatePledge(p)
	if !ok {
		sendError(w, "fund not found", http.StatusNotFound)
		return
	}
	sendJSON(w, http.StatusCreated, out)
}

func (s *Server) handleAcceptPledge(w http.ResponseWriter, r *http.Request) {
	h, ok := s.store.AcceptPledge(chi.URLParam(r, "id"))
	if !ok {
		sendError(w, "pledge not found or not pending", http.StatusNotFound)
		return
	}
	sendJSON(w, http.StatusOK, h)
}

func (s *Server) handleListHandshakes(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, s.store.Handshakes())
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, s.store.Documents(userIDFrom(r.Context())))
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, s.store.Notifications(userIDFrom(r.Context())))
}

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, s.store.Conversations(userIDFrom(r.Context())))
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, ok := s.store.Messages(chi.URLParam(r, "id"))
	if !ok {
		sendError(w, "conversation not found", http.StatusNotFound)
		return
	}
	sendJSON(w, http.StatusOK, msgs)
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Body == "" {
		sendError(w, "message body is required", http.StatusBadRequest)
		return
	}

	uid := userIDFrom(r.Context())
	senderType := "business"
	if u, ok := s.store.UserByID(uid); ok {
		switch u.Role {
		case "INVESTOR":
			senderType = "investor"
		case "ADMIN":
			senderType = "admin"
		}
	}

	m, ok := s.store.AppendMessage(chi.URLParam(r, "id"), models.Message{
		SenderID:   uid,
		SenderType: senderType,
		Body:       req.Body,
	})
	if !ok {
		sendError(w, "conversation not found", http.StatusNotFound)
		return
	}
	sendJSON(w, http.StatusCreated, m)
}
