package repository

import (
	"context"
	"fmt"

	"gitlab.com/aungkhant/divvy/internal/database"
	"gitlab.com/aungkhant/divvy/internal/models"
)

// GroupRepository handles group and membership database operations.
type GroupRepository struct {
	db database.DB
}

// NewGroupRepository creates a new GroupRepository.
func NewGroupRepository(db database.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// Create inserts a group and its creator's membership in one transaction,
// so a group is never observable without its creator as a member.
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO groups (name, description, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, group.Name, group.Description, group.CreatedBy).Scan(&group.ID, &group.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)
	`, group.ID, group.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to insert creator membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a group with its current members.
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	var group models.Group
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, created_by, created_at
		FROM groups WHERE id = $1
	`, id).Scan(&group.ID, &group.Name, &group.Description, &group.CreatedBy, &group.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.username, u.email, u.first_name, u.last_name
		FROM group_members gm
		JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = $1
		ORDER BY gm.joined_at, u.id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		group.Members = append(group.Members, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group members: %w", err)
	}

	return &group, nil
}

// AddMember adds a user to a group. Returns true if a membership row was
// inserted, false if the user was already a member.
func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`, groupID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to add group member: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByMember retrieves all groups the user belongs to, newest first.
func (r *GroupRepository) ListByMember(ctx context.Context, userID int64) ([]models.Group, error) {
	rows, err := r.db.Query(ctx, `
		SELECT g.id, g.name, g.description, g.created_by, g.created_at
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = $1
		ORDER BY g.created_at DESC, g.id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedBy, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}
	return groups, nil
}

// Delete removes a group. Expenses and shares go with it via cascade.
func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}
