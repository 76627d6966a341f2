package server

import (
	"net/http"
)

func (s *Server) handleListFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := s.friends.ListFriends(r.Context(), actingUser(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]userView, len(friends))
	for i := range friends {
		views[i] = toUserView(&friends[i])
	}
	writeJSON(w, http.StatusOK, views)
}

type sendFriendRequestRequest struct {
	Username string `json:"username"`
}

func (s *Server) handleSendFriendRequest(w http.ResponseWriter, r *http.Request) {
	var req sendFriendRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	created, err := s.friends.SendRequest(r.Context(), actingUser(r.Context()), req.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toFriendRequestView(created))
}

func (s *Server) handleListFriendRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := s.friends.ListPending(r.Context(), actingUser(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]friendRequestView, len(requests))
	for i := range requests {
		views[i] = toFriendRequestView(&requests[i])
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleAcceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	requestID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.friends.Accept(r.Context(), requestID, actingUser(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

func (s *Server) handleRejectFriendRequest(w http.ResponseWriter, r *http.Request) {
	requestID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.friends.Reject(r.Context(), requestID, actingUser(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}
