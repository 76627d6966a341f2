// Package split implements the equal-split and balance arithmetic for the
// group ledger. All money is decimal with two fractional digits.
package split

import (
	"fmt"

	"github.com/shopspring/decimal"

	"gitlab.com/aungkhant/divvy/internal/models"
)

// moneyPlaces is the fixed precision for share amounts.
const moneyPlaces = 2

var cent = decimal.New(1, -moneyPlaces)

// Share is one participant's computed portion of an amount.
type Share struct {
	UserID int64
	Amount decimal.Decimal
}

// EqualShares divides amount evenly among the participants, in cents.
// Division rarely comes out even, so each share is first rounded down to the
// cent and the leftover cents are then handed out one per share, payer first.
// The returned shares always sum to amount exactly.
//
// participants keeps its caller-supplied order except that the payer, if
// present, is moved to the front so the residual cents land on their share.
func EqualShares(amount decimal.Decimal, payerID int64, participants []int64) ([]Share, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("no participants to split among")
	}
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %s", amount)
	}

	ordered := payerFirst(payerID, participants)
	n := int64(len(ordered))

	base := amount.Div(decimal.NewFromInt(n)).RoundDown(moneyPlaces)
	remainder := amount.Sub(base.Mul(decimal.NewFromInt(n)))

	// remainder is a whole number of cents in [0, n).
	extraCents := remainder.Div(cent).IntPart()

	shares := make([]Share, len(ordered))
	for i, userID := range ordered {
		share := base
		if int64(i) < extraCents {
			share = share.Add(cent)
		}
		shares[i] = Share{UserID: userID, Amount: share}
	}
	return shares, nil
}

// payerFirst returns participants with the payer moved to index 0.
// The input slice is not modified.
func payerFirst(payerID int64, participants []int64) []int64 {
	ordered := make([]int64, 0, len(participants))
	found := false
	for _, id := range participants {
		if id == payerID && !found {
			found = true
			continue
		}
		ordered = append(ordered, id)
	}
	if found {
		return append([]int64{payerID}, ordered...)
	}
	return ordered
}

// MemberBalance computes one user's net position across the given expenses:
// the full amount of every expense they paid minus their own share of every
// expense they participated in. Positive means the user is owed money.
func MemberBalance(userID int64, expenses []models.Expense) decimal.Decimal {
	balance := decimal.Zero
	for _, exp := range expenses {
		if exp.PaidBy == userID {
			balance = balance.Add(exp.Amount)
		}
		for _, share := range exp.Shares {
			if share.UserID == userID {
				balance = balance.Sub(share.AmountOwed)
			}
		}
	}
	return balance
}

// GroupBalances computes the net position of every current group member.
// Balances across a group always sum to zero as long as every payer is a
// share-holding participant of their own expenses.
func GroupBalances(group *models.Group, expenses []models.Expense) []models.MemberBalance {
	balances := make([]models.MemberBalance, len(group.Members))
	for i, member := range group.Members {
		bal := MemberBalance(member.ID, expenses)
		balances[i] = models.MemberBalance{
			User:    member,
			Balance: bal,
			Status:  models.BalanceStatus(bal),
		}
	}
	return balances
}

// TotalExpenses sums the amounts of all given expenses.
func TotalExpenses(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, exp := range expenses {
		total = total.Add(exp.Amount)
	}
	return total
}
