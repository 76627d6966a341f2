package service

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"gitlab.com/aungkhant/divvy/internal/models"
)

func TestLedgerService_CreateGroup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, ctx, "alice")

	t.Run("creates group with creator as member", func(t *testing.T) {
		group, err := env.ledger.CreateGroup(ctx, alice.ID, "Ski Trip", "January")
		require.NoError(t, err)
		require.Equal(t, "Ski Trip", group.Name)
		require.Equal(t, alice.ID, group.CreatedBy)
		require.Len(t, group.Members, 1)
		require.True(t, group.HasMember(alice.ID))
	})

	t.Run("trims and requires the name", func(t *testing.T) {
		_, err := env.ledger.CreateGroup(ctx, alice.ID, "   ", "")
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects overlong name", func(t *testing.T) {
		_, err := env.ledger.CreateGroup(ctx, alice.ID, strings.Repeat("x", models.MaxGroupNameLength+1), "")
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestLedgerService_Membership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, ctx, "alice")
	bob := env.createUser(t, ctx, "bob")
	carol := env.createUser(t, ctx, "carol")

	group, err := env.ledger.CreateGroup(ctx, alice.ID, "Flat", "")
	require.NoError(t, err)

	t.Run("creator adds member by username", func(t *testing.T) {
		updated, err := env.ledger.AddMember(ctx, group.ID, alice.ID, "bob")
		require.NoError(t, err)
		require.Len(t, updated.Members, 2)
		require.True(t, updated.HasMember(bob.ID))
	})

	t.Run("non-creator cannot add members", func(t *testing.T) {
		_, err := env.ledger.AddMember(ctx, group.ID, bob.ID, "carol")
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown username is not found", func(t *testing.T) {
		_, err := env.ledger.AddMember(ctx, group.ID, alice.ID, "nobody")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("adding an existing member is a no-op", func(t *testing.T) {
		updated, err := env.ledger.AddMember(ctx, group.ID, alice.ID, "bob")
		require.NoError(t, err)
		require.Len(t, updated.Members, 2)
	})

	t.Run("user joins a group", func(t *testing.T) {
		updated, err := env.ledger.JoinGroup(ctx, group.ID, carol.ID)
		require.NoError(t, err)
		require.True(t, updated.HasMember(carol.ID))
	})

	t.Run("joining twice is a conflict", func(t *testing.T) {
		_, err := env.ledger.JoinGroup(ctx, group.ID, carol.ID)
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("unknown group is not found", func(t *testing.T) {
		_, err := env.ledger.JoinGroup(ctx, 99999, carol.ID)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLedgerService_CreateExpense(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, ctx, "alice")
	bob := env.createUser(t, ctx, "bob")
	carol := env.createUser(t, ctx, "carol")
	outsider := env.createUser(t, ctx, "dave")

	group, err := env.ledger.CreateGroup(ctx, alice.ID, "Trip", "")
	require.NoError(t, err)
	_, err = env.ledger.AddMember(ctx, group.ID, alice.ID, "bob")
	require.NoError(t, err)
	_, err = env.ledger.AddMember(ctx, group.ID, alice.ID, "carol")
	require.NoError(t, err)

	t.Run("splits equally among members", func(t *testing.T) {
		expense, err := env.ledger.CreateExpense(ctx, group.ID, alice.ID,
			decimal.RequireFromString("30.00"), "Dinner", "", "")
		require.NoError(t, err)
		require.Len(t, expense.Shares, 3)
		for _, share := range expense.Shares {
			require.True(t, share.AmountOwed.Equal(decimal.RequireFromString("10.00")))
		}
		require.Len(t, env.notifier.expenseEvents, 1)
	})

	t.Run("payer absorbs leftover cents", func(t *testing.T) {
		expense, err := env.ledger.CreateExpense(ctx, group.ID, bob.ID,
			decimal.RequireFromString("10.00"), "Taxi", "", "")
		require.NoError(t, err)
		require.Len(t, expense.Shares, 3)

		sum := decimal.Zero
		for _, share := range expense.Shares {
			sum = sum.Add(share.AmountOwed)
			if share.UserID == bob.ID {
				require.True(t, share.AmountOwed.Equal(decimal.RequireFromString("3.34")))
			} else {
				require.True(t, share.AmountOwed.Equal(decimal.RequireFromString("3.33")))
			}
		}
		require.True(t, sum.Equal(decimal.RequireFromString("10.00")))
	})

	t.Run("non-member cannot pay", func(t *testing.T) {
		_, err := env.ledger.CreateExpense(ctx, group.ID, outsider.ID,
			decimal.RequireFromString("5.00"), "Snacks", "", "")
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := env.ledger.CreateExpense(ctx, group.ID, alice.ID,
			decimal.RequireFromString("5.00"), "  ", "", "")
		require.ErrorIs(t, err, ErrInvalidInput)

		_, err = env.ledger.CreateExpense(ctx, group.ID, alice.ID,
			decimal.RequireFromString("0"), "Free", "", "")
		require.ErrorIs(t, err, ErrInvalidInput)

		_, err = env.ledger.CreateExpense(ctx, group.ID, alice.ID,
			decimal.RequireFromString("-1.00"), "Refund", "", "")
		require.ErrorIs(t, err, ErrInvalidInput)

		_, err = env.ledger.CreateExpense(ctx, group.ID, alice.ID,
			decimal.RequireFromString("1.005"), "Fractional", "", "")
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("shares snapshot the member set", func(t *testing.T) {
		expense, err := env.ledger.CreateExpense(ctx, group.ID, carol.ID,
			decimal.RequireFromString("9.00"), "Coffee", "", "")
		require.NoError(t, err)
		require.Len(t, expense.Shares, 3)

		// A later join does not touch existing shares.
		_, err = env.ledger.JoinGroup(ctx, group.ID, outsider.ID)
		require.NoError(t, err)

		expenses, err := env.ledger.ListExpenses(ctx, group.ID, carol.ID)
		require.NoError(t, err)
		for _, exp := range expenses {
			if exp.ID == expense.ID {
				require.Len(t, exp.Shares, 3)
			}
		}
	})
}

func TestLedgerService_Balances(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, ctx, "alice")
	bob := env.createUser(t, ctx, "bob")
	carol := env.createUser(t, ctx, "carol")

	group, err := env.ledger.CreateGroup(ctx, alice.ID, "Trip", "")
	require.NoError(t, err)
	_, err = env.ledger.AddMember(ctx, group.ID, alice.ID, "bob")
	require.NoError(t, err)
	_, err = env.ledger.AddMember(ctx, group.ID, alice.ID, "carol")
	require.NoError(t, err)

	_, err = env.ledger.CreateExpense(ctx, group.ID, alice.ID,
		decimal.RequireFromString("30.00"), "Dinner", "", "")
	require.NoError(t, err)

	t.Run("payer is owed, others owe", func(t *testing.T) {
		balances, err := env.ledger.Balances(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, balances, 3)

		byUser := map[int64]models.MemberBalance{}
		for _, bal := range balances {
			byUser[bal.User.ID] = bal
		}
		require.True(t, byUser[alice.ID].Balance.Equal(decimal.RequireFromString("20.00")))
		require.Equal(t, "owed", byUser[alice.ID].Status)
		require.True(t, byUser[bob.ID].Balance.Equal(decimal.RequireFromString("-10.00")))
		require.Equal(t, "owes", byUser[bob.ID].Status)
		require.True(t, byUser[carol.ID].Balance.Equal(decimal.RequireFromString("-10.00")))
	})

	t.Run("member balance matches group view", func(t *testing.T) {
		balance, err := env.ledger.MemberBalance(ctx, group.ID, alice.ID)
		require.NoError(t, err)
		require.True(t, balance.Equal(decimal.RequireFromString("20.00")))
	})

	t.Run("total sums all expenses", func(t *testing.T) {
		total, err := env.ledger.TotalExpenses(ctx, group.ID)
		require.NoError(t, err)
		require.True(t, total.Equal(decimal.RequireFromString("30.00")))
	})

	t.Run("non-member cannot list expenses", func(t *testing.T) {
		outsider := env.createUser(t, ctx, "eve")
		_, err := env.ledger.ListExpenses(ctx, group.ID, outsider.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})
}
