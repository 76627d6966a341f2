package split

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"gitlab.com/aungkhant/divvy/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestEqualShares(t *testing.T) {
	t.Parallel()

	t.Run("even division", func(t *testing.T) {
		t.Parallel()
		shares, err := EqualShares(dec("30.00"), 1, []int64{1, 2, 3})
		require.NoError(t, err)
		require.Len(t, shares, 3)
		for _, s := range shares {
			require.True(t, dec("10.00").Equal(s.Amount), "share %s", s.Amount)
		}
	})

	t.Run("remainder cent goes to payer", func(t *testing.T) {
		t.Parallel()
		shares, err := EqualShares(dec("10.00"), 2, []int64{1, 2, 3})
		require.NoError(t, err)
		require.Len(t, shares, 3)

		// Payer is reordered to the front and absorbs the extra cent.
		require.Equal(t, int64(2), shares[0].UserID)
		require.True(t, dec("3.34").Equal(shares[0].Amount), "payer share %s", shares[0].Amount)
		require.True(t, dec("3.33").Equal(shares[1].Amount))
		require.True(t, dec("3.33").Equal(shares[2].Amount))
	})

	t.Run("shares sum exactly to the amount", func(t *testing.T) {
		t.Parallel()
		shares, err := EqualShares(dec("10.00"), 1, []int64{1, 2, 3})
		require.NoError(t, err)

		sum := decimal.Zero
		for _, s := range shares {
			sum = sum.Add(s.Amount)
		}
		require.True(t, dec("10.00").Equal(sum), "sum %s", sum)
	})

	t.Run("two leftover cents spread over two shares", func(t *testing.T) {
		t.Parallel()
		shares, err := EqualShares(dec("2.00"), 7, []int64{7, 8, 9})
		require.NoError(t, err)
		require.True(t, dec("0.67").Equal(shares[0].Amount))
		require.True(t, dec("0.67").Equal(shares[1].Amount))
		require.True(t, dec("0.66").Equal(shares[2].Amount))
	})

	t.Run("single participant takes everything", func(t *testing.T) {
		t.Parallel()
		shares, err := EqualShares(dec("19.99"), 5, []int64{5})
		require.NoError(t, err)
		require.Len(t, shares, 1)
		require.True(t, dec("19.99").Equal(shares[0].Amount))
	})

	t.Run("payer outside participants keeps order", func(t *testing.T) {
		t.Parallel()
		shares, err := EqualShares(dec("10.00"), 99, []int64{1, 2, 3})
		require.NoError(t, err)
		require.Equal(t, int64(1), shares[0].UserID)
		require.True(t, dec("3.34").Equal(shares[0].Amount))
	})

	t.Run("rejects empty participants", func(t *testing.T) {
		t.Parallel()
		_, err := EqualShares(dec("10.00"), 1, nil)
		require.Error(t, err)
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		t.Parallel()
		_, err := EqualShares(decimal.Zero, 1, []int64{1})
		require.Error(t, err)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		t.Parallel()
		_, err := EqualShares(dec("-5.00"), 1, []int64{1})
		require.Error(t, err)
	})
}

func expenseWithShares(t *testing.T, groupID, payer int64, amount string, participants []int64) models.Expense {
	t.Helper()

	amt := dec(amount)
	shares, err := EqualShares(amt, payer, participants)
	require.NoError(t, err)

	exp := models.Expense{GroupID: groupID, PaidBy: payer, Amount: amt}
	for _, s := range shares {
		exp.Shares = append(exp.Shares, models.ExpenseShare{UserID: s.UserID, AmountOwed: s.Amount})
	}
	return exp
}

func TestMemberBalance(t *testing.T) {
	t.Parallel()

	t.Run("payer is owed amount minus own share", func(t *testing.T) {
		t.Parallel()
		expenses := []models.Expense{
			expenseWithShares(t, 1, 10, "30.00", []int64{10, 11, 12}),
		}

		require.True(t, dec("20.00").Equal(MemberBalance(10, expenses)))
		require.True(t, dec("-10.00").Equal(MemberBalance(11, expenses)))
		require.True(t, dec("-10.00").Equal(MemberBalance(12, expenses)))
	})

	t.Run("balances accumulate across expenses", func(t *testing.T) {
		t.Parallel()
		expenses := []models.Expense{
			expenseWithShares(t, 1, 10, "30.00", []int64{10, 11, 12}),
			expenseWithShares(t, 1, 11, "15.00", []int64{10, 11, 12}),
		}

		// 10: +20.00 - 5.00 = 15.00; 11: -10.00 + 10.00 = 0; 12: -15.00
		require.True(t, dec("15.00").Equal(MemberBalance(10, expenses)))
		require.True(t, MemberBalance(11, expenses).IsZero())
		require.True(t, dec("-15.00").Equal(MemberBalance(12, expenses)))
	})

	t.Run("no expenses means settled", func(t *testing.T) {
		t.Parallel()
		require.True(t, MemberBalance(10, nil).IsZero())
	})
}

func TestGroupBalances(t *testing.T) {
	t.Parallel()

	group := &models.Group{
		ID:        1,
		CreatedBy: 10,
		Members: []models.User{
			{ID: 10, Username: "alice"},
			{ID: 11, Username: "bob"},
			{ID: 12, Username: "carol"},
		},
	}
	expenses := []models.Expense{
		expenseWithShares(t, 1, 10, "30.00", []int64{10, 11, 12}),
	}

	balances := GroupBalances(group, expenses)
	require.Len(t, balances, 3)

	require.Equal(t, models.BalanceStatusOwed, balances[0].Status)
	require.True(t, dec("20.00").Equal(balances[0].Balance))
	require.Equal(t, models.BalanceStatusOwes, balances[1].Status)
	require.Equal(t, models.BalanceStatusOwes, balances[2].Status)

	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b.Balance)
	}
	require.True(t, sum.IsZero(), "group balances must net to zero, got %s", sum)
}

func TestTotalExpenses(t *testing.T) {
	t.Parallel()

	expenses := []models.Expense{
		{Amount: dec("30.00")},
		{Amount: dec("12.49")},
	}
	require.True(t, dec("42.49").Equal(TotalExpenses(expenses)))
	require.True(t, TotalExpenses(nil).IsZero())
}
