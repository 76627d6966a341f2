package server

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(r.URL.Query().Get("group"), 10, 64)
	if err != nil || groupID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "group query parameter is required"})
		return
	}

	expenses, err := s.ledger.ListExpenses(r.Context(), groupID, actingUser(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]expenseView, len(expenses))
	for i := range expenses {
		views[i] = toExpenseView(&expenses[i])
	}
	writeJSON(w, http.StatusOK, views)
}

type createExpenseRequest struct {
	GroupID     int64  `json:"group_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Amount      string `json:"amount"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid amount"})
		return
	}

	expense, err := s.ledger.CreateExpense(r.Context(), req.GroupID, actingUser(r.Context()), amount, req.Title, req.Description, req.Icon)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseView(expense))
}
