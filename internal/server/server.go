// Package server exposes the service operations as a JSON HTTP API.
package server

import (
	"net/http"

	"gitlab.com/aungkhant/divvy/internal/auth"
	"gitlab.com/aungkhant/divvy/internal/service"
)

// Server wires the services into an http.Handler.
type Server struct {
	auth    *service.AuthService
	ledger  *service.LedgerService
	friends *service.FriendService
	tokens  *auth.TokenManager
}

// New creates a Server.
func New(authSvc *service.AuthService, ledger *service.LedgerService, friends *service.FriendService, tokens *auth.TokenManager) *Server {
	return &Server{
		auth:    authSvc,
		ledger:  ledger,
		friends: friends,
		tokens:  tokens,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/auth/profile", s.requireAuth(s.handleGetProfile))
	mux.HandleFunc("PUT /api/auth/profile", s.requireAuth(s.handleUpdateProfile))

	mux.HandleFunc("GET /api/groups", s.requireAuth(s.handleListGroups))
	mux.HandleFunc("POST /api/groups", s.requireAuth(s.handleCreateGroup))
	mux.HandleFunc("GET /api/groups/{id}/details", s.requireAuth(s.handleGroupDetails))
	mux.HandleFunc("POST /api/groups/{id}/join", s.requireAuth(s.handleJoinGroup))
	mux.HandleFunc("POST /api/groups/{id}/add_member", s.requireAuth(s.handleAddMember))
	mux.HandleFunc("GET /api/groups/{id}/balances", s.requireAuth(s.handleGroupBalances))
	mux.HandleFunc("GET /api/groups/{id}/chart", s.requireAuth(s.handleGroupChart))

	mux.HandleFunc("GET /api/expenses", s.requireAuth(s.handleListExpenses))
	mux.HandleFunc("POST /api/expenses", s.requireAuth(s.handleCreateExpense))

	mux.HandleFunc("GET /api/friends", s.requireAuth(s.handleListFriends))
	mux.HandleFunc("POST /api/friends/request", s.requireAuth(s.handleSendFriendRequest))
	mux.HandleFunc("GET /api/friends/requests", s.requireAuth(s.handleListFriendRequests))
	mux.HandleFunc("POST /api/friends/requests/{id}/accept", s.requireAuth(s.handleAcceptFriendRequest))
	mux.HandleFunc("POST /api/friends/requests/{id}/reject", s.requireAuth(s.handleRejectFriendRequest))

	return logRequests(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
