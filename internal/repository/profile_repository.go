package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"gitlab.com/aungkhant/divvy/internal/database"
	"gitlab.com/aungkhant/divvy/internal/models"
)

// ProfileRepository handles per-user profile settings.
type ProfileRepository struct {
	db database.PGXDB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db database.PGXDB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert creates or updates a user's profile.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO profiles (user_id, bio, telegram_chat_id, telegram_notification, email_notification)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			bio = EXCLUDED.bio,
			telegram_chat_id = EXCLUDED.telegram_chat_id,
			telegram_notification = EXCLUDED.telegram_notification,
			email_notification = EXCLUDED.email_notification,
			updated_at = NOW()
	`, profile.UserID, profile.Bio, profile.TelegramChatID,
		profile.TelegramNotification, profile.EmailNotification)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// GetByUserID retrieves a user's profile. Users who never saved one get the
// zero-value profile back rather than an error.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.QueryRow(ctx, `
		SELECT user_id, bio, telegram_chat_id, telegram_notification, email_notification, updated_at
		FROM profiles WHERE user_id = $1
	`, userID).Scan(&profile.UserID, &profile.Bio, &profile.TelegramChatID,
		&profile.TelegramNotification, &profile.EmailNotification, &profile.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return &models.Profile{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}
