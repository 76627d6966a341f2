package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"gitlab.com/aungkhant/divvy/internal/database"
	"gitlab.com/aungkhant/divvy/internal/logger"
	"gitlab.com/aungkhant/divvy/internal/models"
	"gitlab.com/aungkhant/divvy/internal/repository"
	"gitlab.com/aungkhant/divvy/internal/split"
)

// Notifier delivers best-effort notifications about ledger and friendship
// events. Implementations must never block an operation on delivery.
type Notifier interface {
	ExpenseAdded(ctx context.Context, group *models.Group, expense *models.Expense)
	FriendRequested(ctx context.Context, from, to *models.User)
}

// LedgerService owns groups, expenses and balances.
type LedgerService struct {
	groups   *repository.GroupRepository
	expenses *repository.ExpenseRepository
	users    *repository.UserRepository
	notifier Notifier
}

// NewLedgerService creates a LedgerService. notifier may be nil.
func NewLedgerService(
	groups *repository.GroupRepository,
	expenses *repository.ExpenseRepository,
	users *repository.UserRepository,
	notifier Notifier,
) *LedgerService {
	return &LedgerService{
		groups:   groups,
		expenses: expenses,
		users:    users,
		notifier: notifier,
	}
}

// CreateGroup creates a group with the acting user as creator and sole member.
func (s *LedgerService) CreateGroup(ctx context.Context, actingUser int64, name, description string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("group name is required: %w", ErrInvalidInput)
	}
	if len(name) > models.MaxGroupNameLength {
		return nil, fmt.Errorf("group name exceeds %d characters: %w", models.MaxGroupNameLength, ErrInvalidInput)
	}

	group := &models.Group{
		Name:        name,
		Description: description,
		CreatedBy:   actingUser,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}

	logger.Log.Info().
		Int64("group_id", group.ID).
		Str("actor", logger.HashUserID(actingUser)).
		Msg("Group created")

	return s.GetGroup(ctx, group.ID)
}

// GetGroup retrieves a group with its members.
func (s *LedgerService) GetGroup(ctx context.Context, groupID int64) (*models.Group, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("group %d: %w", groupID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroups retrieves the groups the acting user belongs to.
func (s *LedgerService) ListGroups(ctx context.Context, actingUser int64) ([]models.Group, error) {
	return s.groups.ListByMember(ctx, actingUser)
}

// AddMember resolves targetUsername and adds that user to the group. Only the
// group's creator may add members. Adding an existing member is a no-op.
func (s *LedgerService) AddMember(ctx context.Context, groupID, actingUser int64, targetUsername string) (*models.Group, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.CreatedBy != actingUser {
		return nil, fmt.Errorf("only the group creator may add members: %w", ErrForbidden)
	}

	target, err := s.users.GetByUsername(ctx, targetUsername)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", targetUsername, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	added, err := s.groups.AddMember(ctx, group.ID, target.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			// Concurrent duplicate add; membership already exists.
			return s.GetGroup(ctx, group.ID)
		}
		return nil, err
	}
	if added {
		logger.Log.Info().
			Int64("group_id", group.ID).
			Str("member", logger.HashUserID(target.ID)).
			Msg("Member added to group")
	}

	return s.GetGroup(ctx, group.ID)
}

// JoinGroup adds the acting user to the group. Unlike AddMember, joining a
// group the user already belongs to is a conflict.
func (s *LedgerService) JoinGroup(ctx context.Context, groupID, actingUser int64) (*models.Group, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.HasMember(actingUser) {
		return nil, fmt.Errorf("already a member of group %d: %w", groupID, ErrConflict)
	}

	added, err := s.groups.AddMember(ctx, group.ID, actingUser)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("already a member of group %d: %w", groupID, ErrConflict)
		}
		return nil, err
	}
	if !added {
		return nil, fmt.Errorf("already a member of group %d: %w", groupID, ErrConflict)
	}

	logger.Log.Info().
		Int64("group_id", group.ID).
		Str("member", logger.HashUserID(actingUser)).
		Msg("User joined group")

	return s.GetGroup(ctx, group.ID)
}

// CreateExpense records an expense paid by the acting user and splits it
// equally among the group's current members. The member set is snapshotted
// into shares at creation time; later membership changes leave them untouched.
func (s *LedgerService) CreateExpense(ctx context.Context, groupID, payer int64, amount decimal.Decimal, title, description, icon string) (*models.Expense, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(payer) {
		return nil, fmt.Errorf("payer is not a member of group %d: %w", groupID, ErrForbidden)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("expense title is required: %w", ErrInvalidInput)
	}
	if len(title) > models.MaxExpenseTitleLength {
		return nil, fmt.Errorf("expense title exceeds %d characters: %w", models.MaxExpenseTitleLength, ErrInvalidInput)
	}
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", ErrInvalidInput)
	}
	if !amount.Equal(amount.Round(2)) {
		return nil, fmt.Errorf("amount has more than two decimal places: %w", ErrInvalidInput)
	}
	if len(group.Members) == 0 {
		return nil, fmt.Errorf("group %d has no members: %w", groupID, ErrInvalidInput)
	}

	shares, err := split.EqualShares(amount, payer, group.MemberIDs())
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}

	expense := &models.Expense{
		GroupID:     group.ID,
		Title:       title,
		Description: description,
		Icon:        icon,
		Amount:      amount,
		PaidBy:      payer,
	}
	for _, share := range shares {
		expense.Shares = append(expense.Shares, models.ExpenseShare{
			UserID:     share.UserID,
			AmountOwed: share.Amount,
		})
	}

	if err := s.expenses.CreateWithShares(ctx, expense); err != nil {
		return nil, err
	}

	logger.Log.Info().
		Int64("group_id", group.ID).
		Int64("expense_id", expense.ID).
		Str("payer", logger.HashUserID(payer)).
		Int("shares", len(expense.Shares)).
		Msg("Expense created")

	if s.notifier != nil {
		s.notifier.ExpenseAdded(ctx, group, expense)
	}
	return expense, nil
}

// ListExpenses retrieves the expenses of a group the acting user belongs to.
func (s *LedgerService) ListExpenses(ctx context.Context, groupID, actingUser int64) ([]models.Expense, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(actingUser) {
		return nil, fmt.Errorf("not a member of group %d: %w", groupID, ErrForbidden)
	}
	return s.expenses.ListByGroup(ctx, groupID)
}

// MemberBalance computes one member's net position in a group.
func (s *LedgerService) MemberBalance(ctx context.Context, groupID, userID int64) (decimal.Decimal, error) {
	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return decimal.Zero, err
	}
	expenses, err := s.expenses.ListByGroup(ctx, groupID)
	if err != nil {
		return decimal.Zero, err
	}
	return split.MemberBalance(userID, expenses), nil
}

// TotalExpenses sums all expense amounts of a group.
func (s *LedgerService) TotalExpenses(ctx context.Context, groupID int64) (decimal.Decimal, error) {
	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return decimal.Zero, err
	}
	return s.expenses.TotalByGroup(ctx, groupID)
}

// Balances computes the net position of every current member of a group.
func (s *LedgerService) Balances(ctx context.Context, groupID int64) ([]models.MemberBalance, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return split.GroupBalances(group, expenses), nil
}
