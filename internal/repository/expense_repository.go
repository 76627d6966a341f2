package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"gitlab.com/aungkhant/divvy/internal/database"
	"gitlab.com/aungkhant/divvy/internal/models"
)

// ExpenseRepository handles expense and share database operations.
type ExpenseRepository struct {
	db database.DB
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(db database.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// CreateWithShares inserts an expense and all of its shares in a single
// transaction. Either the expense and every share persist, or nothing does.
func (r *ExpenseRepository) CreateWithShares(ctx context.Context, expense *models.Expense) error {
	if expense.Icon == "" {
		expense.Icon = models.DefaultExpenseIcon
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO expenses (group_id, title, description, icon, amount, paid_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, expense.GroupID, expense.Title, expense.Description, expense.Icon,
		expense.Amount, expense.PaidBy,
	).Scan(&expense.ID, &expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range expense.Shares {
		share := &expense.Shares[i]
		share.ExpenseID = expense.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO expense_shares (expense_id, user_id, amount_owed)
			VALUES ($1, $2, $3)
			RETURNING id
		`, share.ExpenseID, share.UserID, share.AmountOwed).Scan(&share.ID)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetByID retrieves an expense with its shares.
func (r *ExpenseRepository) GetByID(ctx context.Context, id int64) (*models.Expense, error) {
	var exp models.Expense
	err := r.db.QueryRow(ctx, `
		SELECT id, group_id, title, description, icon, amount, paid_by, created_at
		FROM expenses WHERE id = $1
	`, id).Scan(&exp.ID, &exp.GroupID, &exp.Title, &exp.Description, &exp.Icon,
		&exp.Amount, &exp.PaidBy, &exp.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	shares, err := r.sharesForExpenses(ctx, []int64{exp.ID})
	if err != nil {
		return nil, err
	}
	exp.Shares = shares[exp.ID]
	return &exp, nil
}

// ListByGroup retrieves all expenses of a group, newest first, with shares.
func (r *ExpenseRepository) ListByGroup(ctx context.Context, groupID int64) ([]models.Expense, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, group_id, title, description, icon, amount, paid_by, created_at
		FROM expenses
		WHERE group_id = $1
		ORDER BY created_at DESC, id DESC
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	var ids []int64
	for rows.Next() {
		var exp models.Expense
		if err := rows.Scan(&exp.ID, &exp.GroupID, &exp.Title, &exp.Description,
			&exp.Icon, &exp.Amount, &exp.PaidBy, &exp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, exp)
		ids = append(ids, exp.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	if len(ids) == 0 {
		return expenses, nil
	}

	shares, err := r.sharesForExpenses(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		expenses[i].Shares = shares[expenses[i].ID]
	}
	return expenses, nil
}

// TotalByGroup sums the amounts of all expenses in a group.
func (r *ExpenseRepository) TotalByGroup(ctx context.Context, groupID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE group_id = $1
	`, groupID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get group total: %w", err)
	}
	return total, nil
}

// sharesForExpenses loads the shares of the given expenses keyed by expense id.
func (r *ExpenseRepository) sharesForExpenses(ctx context.Context, expenseIDs []int64) (map[int64][]models.ExpenseShare, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, expense_id, user_id, amount_owed
		FROM expense_shares
		WHERE expense_id = ANY($1)
		ORDER BY expense_id, id
	`, expenseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense shares: %w", err)
	}
	defer rows.Close()

	shares := make(map[int64][]models.ExpenseShare, len(expenseIDs))
	for rows.Next() {
		var s models.ExpenseShare
		if err := rows.Scan(&s.ID, &s.ExpenseID, &s.UserID, &s.AmountOwed); err != nil {
			return nil, fmt.Errorf("failed to scan expense share: %w", err)
		}
		shares[s.ExpenseID] = append(shares[s.ExpenseID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense shares: %w", err)
	}
	return shares, nil
}
