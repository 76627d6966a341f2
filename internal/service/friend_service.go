package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"gitlab.com/aungkhant/divvy/internal/database"
	"gitlab.com/aungkhant/divvy/internal/logger"
	"gitlab.com/aungkhant/divvy/internal/models"
	"gitlab.com/aungkhant/divvy/internal/repository"
)

// FriendService owns the friend-request lifecycle and the friendship graph.
//
// The state machine per user pair is NONE → PENDING → ACCEPTED or back to
// NONE. Requests are transient: acceptance consumes the row and materializes
// both directed friend edges, rejection just deletes it.
type FriendService struct {
	friends  *repository.FriendRepository
	users    *repository.UserRepository
	notifier Notifier
}

// NewFriendService creates a FriendService. notifier may be nil.
func NewFriendService(friends *repository.FriendRepository, users *repository.UserRepository, notifier Notifier) *FriendService {
	return &FriendService{friends: friends, users: users, notifier: notifier}
}

// SendRequest creates a pending friend request from the acting user to the
// user named by toUsername.
func (s *FriendService) SendRequest(ctx context.Context, actingUser int64, toUsername string) (*models.FriendRequest, error) {
	to, err := s.users.GetByUsername(ctx, toUsername)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", toUsername, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if to.ID == actingUser {
		return nil, fmt.Errorf("cannot send a friend request to yourself: %w", ErrConflict)
	}

	friends, err := s.friends.AreFriends(ctx, actingUser, to.ID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, fmt.Errorf("already friends with %q: %w", toUsername, ErrConflict)
	}

	pending, err := s.friends.HasPendingBetween(ctx, actingUser, to.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, fmt.Errorf("a pending request already exists between the two users: %w", ErrConflict)
	}

	req := &models.FriendRequest{FromUserID: actingUser, ToUserID: to.ID}
	if err := s.friends.CreateRequest(ctx, req); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("a pending request already exists: %w", ErrConflict)
		}
		return nil, err
	}
	req.To = to

	logger.Log.Info().
		Int64("request_id", req.ID).
		Str("from", logger.HashUserID(actingUser)).
		Str("to", logger.HashUserID(to.ID)).
		Msg("Friend request sent")

	if s.notifier != nil {
		from, err := s.users.GetByID(ctx, actingUser)
		if err == nil {
			s.notifier.FriendRequested(ctx, from, to)
		}
	}
	return req, nil
}

// Accept consumes a request addressed to the acting user and creates the
// symmetric friendship.
func (s *FriendService) Accept(ctx context.Context, requestID, actingUser int64) error {
	req, err := s.friends.GetRequest(ctx, requestID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("friend request %d: %w", requestID, ErrNotFound)
	}
	if err != nil {
		return err
	}
	if req.ToUserID != actingUser {
		return fmt.Errorf("only the recipient may accept a friend request: %w", ErrForbidden)
	}

	if err := s.friends.AcceptRequest(ctx, req); err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("friendship already exists: %w", ErrConflict)
		}
		return err
	}

	logger.Log.Info().
		Int64("request_id", requestID).
		Str("user", logger.HashUserID(actingUser)).
		Msg("Friend request accepted")
	return nil
}

// Reject deletes a request addressed to the acting user. No edges are created.
func (s *FriendService) Reject(ctx context.Context, requestID, actingUser int64) error {
	req, err := s.friends.GetRequest(ctx, requestID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("friend request %d: %w", requestID, ErrNotFound)
	}
	if err != nil {
		return err
	}
	if req.ToUserID != actingUser {
		return fmt.Errorf("only the recipient may reject a friend request: %w", ErrForbidden)
	}

	if err := s.friends.DeleteRequest(ctx, requestID); err != nil {
		return err
	}

	logger.Log.Info().
		Int64("request_id", requestID).
		Str("user", logger.HashUserID(actingUser)).
		Msg("Friend request rejected")
	return nil
}

// ListPending retrieves the requests waiting on the acting user.
func (s *FriendService) ListPending(ctx context.Context, actingUser int64) ([]models.FriendRequest, error) {
	return s.friends.ListPendingFor(ctx, actingUser)
}

// ListFriends retrieves the acting user's friends.
func (s *FriendService) ListFriends(ctx context.Context, actingUser int64) ([]models.User, error) {
	return s.friends.ListFriends(ctx, actingUser)
}
