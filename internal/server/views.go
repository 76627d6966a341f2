package server

import (
	"time"

	"gitlab.com/aungkhant/divvy/internal/models"
)

// View types define the JSON wire shapes. Money is serialized as a
// fixed-point string ("12.50") to keep clients away from float rounding.

type userView struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type groupView struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedBy   int64      `json:"created_by"`
	Members     []userView `json:"members"`
	CreatedAt   time.Time  `json:"created_at"`
}

type shareView struct {
	UserID     int64  `json:"user_id"`
	AmountOwed string `json:"amount_owed"`
}

type expenseView struct {
	ID          int64       `json:"id"`
	GroupID     int64       `json:"group_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Amount      string      `json:"amount"`
	PaidBy      int64       `json:"paid_by"`
	Shares      []shareView `json:"shares"`
	CreatedAt   time.Time   `json:"date"`
}

type balanceView struct {
	User    userView `json:"user"`
	Balance string   `json:"balance"`
	Status  string   `json:"status"`
}

type friendRequestView struct {
	ID        int64     `json:"id"`
	Sender    *userView `json:"sender,omitempty"`
	ToUserID  int64     `json:"to_user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserView(u *models.User) userView {
	return userView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func toGroupView(g *models.Group) groupView {
	view := groupView{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
		Members:     make([]userView, len(g.Members)),
		CreatedAt:   g.CreatedAt,
	}
	for i := range g.Members {
		view.Members[i] = toUserView(&g.Members[i])
	}
	return view
}

func toExpenseView(e *models.Expense) expenseView {
	view := expenseView{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Title:       e.Title,
		Description: e.Description,
		Icon:        e.Icon,
		Amount:      e.Amount.StringFixed(2),
		PaidBy:      e.PaidBy,
		Shares:      make([]shareView, len(e.Shares)),
		CreatedAt:   e.CreatedAt,
	}
	for i, s := range e.Shares {
		view.Shares[i] = shareView{UserID: s.UserID, AmountOwed: s.AmountOwed.StringFixed(2)}
	}
	return view
}

func toBalanceView(b *models.MemberBalance) balanceView {
	return balanceView{
		User:    toUserView(&b.User),
		Balance: b.Balance.StringFixed(2),
		Status:  b.Status,
	}
}

func toFriendRequestView(r *models.FriendRequest) friendRequestView {
	view := friendRequestView{
		ID:        r.ID,
		ToUserID:  r.ToUserID,
		CreatedAt: r.CreatedAt,
	}
	if r.From != nil {
		sender := toUserView(r.From)
		view.Sender = &sender
	}
	return view
}
