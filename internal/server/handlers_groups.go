package server

import (
	"net/http"
	"strconv"

	"gitlab.com/aungkhant/divvy/internal/chart"
)

// pathID parses the {id} path segment. Returns false after writing a 400.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.ledger.ListGroups(r.Context(), actingUser(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]groupView, len(groups))
	for i := range groups {
		views[i] = toGroupView(&groups[i])
	}
	writeJSON(w, http.StatusOK, views)
}

type createGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	group, err := s.ledger.CreateGroup(r.Context(), actingUser(r.Context()), req.Name, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupView(group))
}

type groupDetailsResponse struct {
	groupView
	Expenses      []expenseView `json:"expenses"`
	TotalExpenses string        `json:"total_expenses"`
	UserBalance   string        `json:"user_balance"`
}

func (s *Server) handleGroupDetails(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r)
	if !ok {
		return
	}
	userID := actingUser(r.Context())

	group, err := s.ledger.GetGroup(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	expenses, err := s.ledger.ListExpenses(r.Context(), groupID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	total, err := s.ledger.TotalExpenses(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	balance, err := s.ledger.MemberBalance(r.Context(), groupID, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := groupDetailsResponse{
		groupView:     toGroupView(group),
		Expenses:      make([]expenseView, len(expenses)),
		TotalExpenses: total.StringFixed(2),
		UserBalance:   balance.StringFixed(2),
	}
	for i := range expenses {
		resp.Expenses[i] = toExpenseView(&expenses[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleJoinGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r)
	if !ok {
		return
	}

	group, err := s.ledger.JoinGroup(r.Context(), groupID, actingUser(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupView(group))
}

type addMemberRequest struct {
	Username string `json:"username"`
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	group, err := s.ledger.AddMember(r.Context(), groupID, actingUser(r.Context()), req.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupView(group))
}

func (s *Server) handleGroupBalances(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r)
	if !ok {
		return
	}

	group, err := s.ledger.GetGroup(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !group.HasMember(actingUser(r.Context())) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "not a member of this group"})
		return
	}

	balances, err := s.ledger.Balances(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]balanceView, len(balances))
	for i := range balances {
		views[i] = toBalanceView(&balances[i])
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGroupChart(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(w, r)
	if !ok {
		return
	}

	group, err := s.ledger.GetGroup(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !group.HasMember(actingUser(r.Context())) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "not a member of this group"})
		return
	}

	balances, err := s.ledger.Balances(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	png, err := chart.RenderGroupBalances(group, balances)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
