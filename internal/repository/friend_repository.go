package repository

import (
	"context"
	"fmt"

	"gitlab.com/aungkhant/divvy/internal/database"
	"gitlab.com/aungkhant/divvy/internal/models"
)

// FriendRepository handles friend requests and friendship edges.
type FriendRepository struct {
	db database.DB
}

// NewFriendRepository creates a new FriendRepository.
func NewFriendRepository(db database.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

// CreateRequest inserts a pending friend request. The (from, to) pair is
// unique in the database, so a concurrent duplicate fails with a unique
// violation.
func (r *FriendRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO friend_requests (from_user_id, to_user_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, req.FromUserID, req.ToUserID).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create friend request: %w", err)
	}
	return nil
}

// GetRequest retrieves a friend request by id.
func (r *FriendRepository) GetRequest(ctx context.Context, id int64) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.QueryRow(ctx, `
		SELECT id, from_user_id, to_user_id, created_at
		FROM friend_requests WHERE id = $1
	`, id).Scan(&req.ID, &req.FromUserID, &req.ToUserID, &req.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get friend request: %w", err)
	}
	return &req, nil
}

// HasPendingBetween reports whether a pending request exists in either
// direction between the two users.
func (r *FriendRepository) HasPendingBetween(ctx context.Context, userA, userB int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM friend_requests
			WHERE (from_user_id = $1 AND to_user_id = $2)
			   OR (from_user_id = $2 AND to_user_id = $1)
		)
	`, userA, userB).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check pending requests: %w", err)
	}
	return exists, nil
}

// AreFriends reports whether a friendship edge exists from userA to userB.
// Edges come in symmetric pairs, so one direction is enough to check.
func (r *FriendRepository) AreFriends(ctx context.Context, userA, userB int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM friends WHERE user_id = $1 AND friend_id = $2)
	`, userA, userB).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}
	return exists, nil
}

// AcceptRequest consumes a request: within one transaction the request row is
// deleted and both directed friend edges are inserted. A request is never
// left behind in an accepted state.
func (r *FriendRepository) AcceptRequest(ctx context.Context, req *models.FriendRequest) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM friend_requests WHERE id = $1`, req.ID)
	if err != nil {
		return fmt.Errorf("failed to delete friend request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("friend request %d already consumed", req.ID)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO friends (user_id, friend_id) VALUES ($1, $2), ($2, $1)
	`, req.ToUserID, req.FromUserID)
	if err != nil {
		return fmt.Errorf("failed to insert friend edges: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteRequest removes a request without creating any friendship.
func (r *FriendRepository) DeleteRequest(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM friend_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete friend request: %w", err)
	}
	return nil
}

// ListPendingFor retrieves all requests addressed to the user, oldest first,
// with the sender attached.
func (r *FriendRepository) ListPendingFor(ctx context.Context, userID int64) ([]models.FriendRequest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT fr.id, fr.from_user_id, fr.to_user_id, fr.created_at,
		       u.id, u.username, u.email, u.first_name, u.last_name
		FROM friend_requests fr
		JOIN users u ON u.id = fr.from_user_id
		WHERE fr.to_user_id = $1
		ORDER BY fr.created_at, fr.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending requests: %w", err)
	}
	defer rows.Close()

	var requests []models.FriendRequest
	for rows.Next() {
		var req models.FriendRequest
		var from models.User
		if err := rows.Scan(&req.ID, &req.FromUserID, &req.ToUserID, &req.CreatedAt,
			&from.ID, &from.Username, &from.Email, &from.FirstName, &from.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan pending request: %w", err)
		}
		req.From = &from
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending requests: %w", err)
	}
	return requests, nil
}

// ListFriends retrieves every user reachable by a friend edge from userID.
func (r *FriendRepository) ListFriends(ctx context.Context, userID int64) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.username, u.email, u.first_name, u.last_name
		FROM friends f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = $1
		ORDER BY u.username
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query friends: %w", err)
	}
	defer rows.Close()

	var friends []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating friends: %w", err)
	}
	return friends, nil
}
