// Package models defines the domain entities for the expense-splitting service.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultExpenseIcon is assigned to expenses created without an icon tag.
const DefaultExpenseIcon = "default-icon"

// MaxGroupNameLength is the maximum allowed length for group names.
const MaxGroupNameLength = 100

// MaxExpenseTitleLength is the maximum allowed length for expense titles.
const MaxExpenseTitleLength = 200

// Balance status values reported by the ledger.
const (
	BalanceStatusOwes    = "owes"
	BalanceStatusOwed    = "owed"
	BalanceStatusSettled = "settled"
)

// User represents a registered account.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile holds optional per-user settings, one row per user.
type Profile struct {
	UserID               int64
	Bio                  string
	TelegramChatID       int64
	TelegramNotification bool
	EmailNotification    bool
	UpdatedAt            time.Time
}

// Group represents a set of users who split expenses together.
// The creator is always a member.
type Group struct {
	ID          int64
	Name        string
	Description string
	CreatedBy   int64
	Members     []User
	CreatedAt   time.Time
}

// MemberIDs returns the ids of all group members.
func (g *Group) MemberIDs() []int64 {
	ids := make([]int64, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}

// HasMember reports whether the user belongs to the group.
func (g *Group) HasMember(userID int64) bool {
	for _, m := range g.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// Expense represents a shared cost recorded against a group.
// Shares are a snapshot of the membership at creation time; later membership
// changes never alter them.
type Expense struct {
	ID          int64
	GroupID     int64
	Title       string
	Description string
	Icon        string
	Amount      decimal.Decimal
	PaidBy      int64
	Shares      []ExpenseShare
	CreatedAt   time.Time
}

// ExpenseShare is one participant's portion of an expense.
// Unique per (expense, user); the shares of an expense sum to its amount.
type ExpenseShare struct {
	ID         int64
	ExpenseID  int64
	UserID     int64
	AmountOwed decimal.Decimal
}

// MemberBalance is one member's net position within a group.
type MemberBalance struct {
	User    User
	Balance decimal.Decimal
	Status  string
}

// Friend is one directed edge of a confirmed friendship.
// Edges always exist in symmetric pairs.
type Friend struct {
	UserID    int64
	FriendID  int64
	CreatedAt time.Time
}

// FriendRequest is a pending invitation from one user to another.
// It is consumed on acceptance and deleted on rejection; unique per (from, to).
type FriendRequest struct {
	ID         int64
	FromUserID int64
	ToUserID   int64
	From       *User
	To         *User
	CreatedAt  time.Time
}

// BalanceStatus classifies a net balance as owes, owed or settled.
func BalanceStatus(balance decimal.Decimal) string {
	switch balance.Sign() {
	case -1:
		return BalanceStatusOwes
	case 1:
		return BalanceStatusOwed
	default:
		return BalanceStatusSettled
	}
}
