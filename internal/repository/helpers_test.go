package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/aungkhant/divvy/internal/database"
	"gitlab.com/aungkhant/divvy/internal/models"
)

// createTestUser inserts a user with predictable fields derived from username.
func createTestUser(t *testing.T, ctx context.Context, db database.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		FirstName:    username,
		LastName:     "Test",
	}
	err := NewUserRepository(db).Create(ctx, user)
	require.NoError(t, err)
	return user
}

// createTestGroup inserts a group created by the given user.
func createTestGroup(t *testing.T, ctx context.Context, db database.DB, name string, createdBy int64) *models.Group {
	t.Helper()

	group := &models.Group{Name: name, CreatedBy: createdBy}
	err := NewGroupRepository(db).Create(ctx, group)
	require.NoError(t, err)
	return group
}
