package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/aungkhant/divvy/internal/database"
	"gitlab.com/aungkhant/divvy/internal/models"
	"gitlab.com/aungkhant/divvy/internal/repository"
)

// recordingNotifier captures notification calls for assertions.
type recordingNotifier struct {
	expenseEvents []int64 // expense ids
	friendEvents  []int64 // recipient user ids
}

func (n *recordingNotifier) ExpenseAdded(_ context.Context, _ *models.Group, expense *models.Expense) {
	n.expenseEvents = append(n.expenseEvents, expense.ID)
}

func (n *recordingNotifier) FriendRequested(_ context.Context, _, to *models.User) {
	n.friendEvents = append(n.friendEvents, to.ID)
}

// testEnv bundles the services and repositories over one test transaction.
type testEnv struct {
	users    *repository.UserRepository
	ledger   *LedgerService
	friends  *FriendService
	notifier *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tx := database.TestTx(t)
	users := repository.NewUserRepository(tx)
	groups := repository.NewGroupRepository(tx)
	expenses := repository.NewExpenseRepository(tx)
	friends := repository.NewFriendRepository(tx)
	notifier := &recordingNotifier{}

	return &testEnv{
		users:    users,
		ledger:   NewLedgerService(groups, expenses, users, notifier),
		friends:  NewFriendService(friends, users, notifier),
		notifier: notifier,
	}
}

func (e *testEnv) createUser(t *testing.T, ctx context.Context, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		FirstName:    strings.ToUpper(username[:1]) + username[1:],
	}
	require.NoError(t, e.users.Create(ctx, user))
	return user
}
