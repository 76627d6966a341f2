package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"gitlab.com/aungkhant/divvy/internal/database"
	"gitlab.com/aungkhant/divvy/internal/models"
)

func TestExpenseRepository_CreateWithShares(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()

	repo := NewExpenseRepository(tx)
	alice := createTestUser(t, ctx, tx, "alice")
	bob := createTestUser(t, ctx, tx, "bob")
	group := createTestGroup(t, ctx, tx, "Trip", alice.ID)
	_, err := NewGroupRepository(tx).AddMember(ctx, group.ID, bob.ID)
	require.NoError(t, err)

	t.Run("persists expense and shares atomically", func(t *testing.T) {
		expense := &models.Expense{
			GroupID: group.ID,
			Title:   "Dinner",
			Amount:  decimal.RequireFromString("30.00"),
			PaidBy:  alice.ID,
			Shares: []models.ExpenseShare{
				{UserID: alice.ID, AmountOwed: decimal.RequireFromString("15.00")},
				{UserID: bob.ID, AmountOwed: decimal.RequireFromString("15.00")},
			},
		}

		err := repo.CreateWithShares(ctx, expense)
		require.NoError(t, err)
		require.NotZero(t, expense.ID)

		fetched, err := repo.GetByID(ctx, expense.ID)
		require.NoError(t, err)
		require.Equal(t, "Dinner", fetched.Title)
		require.True(t, fetched.Amount.Equal(decimal.RequireFromString("30.00")))
		require.Len(t, fetched.Shares, 2)
	})

	t.Run("empty icon falls back to the default", func(t *testing.T) {
		expense := &models.Expense{
			GroupID: group.ID,
			Title:   "Taxi",
			Amount:  decimal.RequireFromString("10.00"),
			PaidBy:  alice.ID,
			Shares: []models.ExpenseShare{
				{UserID: alice.ID, AmountOwed: decimal.RequireFromString("10.00")},
			},
		}

		err := repo.CreateWithShares(ctx, expense)
		require.NoError(t, err)

		fetched, err := repo.GetByID(ctx, expense.ID)
		require.NoError(t, err)
		require.Equal(t, models.DefaultExpenseIcon, fetched.Icon)
	})

	t.Run("rejects duplicate share for one user", func(t *testing.T) {
		expense := &models.Expense{
			GroupID: group.ID,
			Title:   "Broken",
			Amount:  decimal.RequireFromString("10.00"),
			PaidBy:  alice.ID,
			Shares: []models.ExpenseShare{
				{UserID: alice.ID, AmountOwed: decimal.RequireFromString("5.00")},
				{UserID: alice.ID, AmountOwed: decimal.RequireFromString("5.00")},
			},
		}

		err := repo.CreateWithShares(ctx, expense)
		require.Error(t, err)
		require.True(t, database.IsUniqueViolation(err))
	})
}

func TestExpenseRepository_ListByGroup(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()

	repo := NewExpenseRepository(tx)
	alice := createTestUser(t, ctx, tx, "alice")
	group := createTestGroup(t, ctx, tx, "Trip", alice.ID)

	t.Run("empty group has no expenses", func(t *testing.T) {
		expenses, err := repo.ListByGroup(ctx, group.ID)
		require.NoError(t, err)
		require.Empty(t, expenses)

		total, err := repo.TotalByGroup(ctx, group.ID)
		require.NoError(t, err)
		require.True(t, total.IsZero())
	})

	t.Run("lists expenses with shares and sums the total", func(t *testing.T) {
		for _, title := range []string{"Lunch", "Museum"} {
			expense := &models.Expense{
				GroupID: group.ID,
				Title:   title,
				Amount:  decimal.RequireFromString("12.50"),
				PaidBy:  alice.ID,
				Shares: []models.ExpenseShare{
					{UserID: alice.ID, AmountOwed: decimal.RequireFromString("12.50")},
				},
			}
			require.NoError(t, repo.CreateWithShares(ctx, expense))
		}

		expenses, err := repo.ListByGroup(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, expenses, 2)
		for _, exp := range expenses {
			require.Len(t, exp.Shares, 1)
		}

		total, err := repo.TotalByGroup(ctx, group.ID)
		require.NoError(t, err)
		require.True(t, total.Equal(decimal.RequireFromString("25.00")))
	})
}
