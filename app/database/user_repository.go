package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/briefcast/briefcast/app/model"
)

// UserRepository handles database operations for user quota records
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Get returns the usage record for a user, or a fresh zero record if the
// user has never been seen.
func (r *UserRepository) Get(userID string) (model.UsageRecord, error) {
	record := model.UsageRecord{UserID: userID}

	err := r.db.QueryRow(`
		SELECT daily_count, last_usage_date, is_premium
		FROM users
		WHERE id = ?
	`, userID).Scan(&record.DailyCount, &record.LastUsageDate, &record.IsPremium)
	if errors.Is(err, sql.ErrNoRows) {
		return record, nil
	}
	if err != nil {
		return model.UsageRecord{}, fmt.Errorf("failed to get user: %w", err)
	}

	return record, nil
}

// Save upserts a usage record.
func (r *UserRepository) Save(record model.UsageRecord) error {
	_, err := r.db.Exec(`
		INSERT INTO users (id, daily_count, last_usage_date, is_premium)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			daily_count = excluded.daily_count,
			last_usage_date = excluded.last_usage_date,
			is_premium = excluded.is_premium,
			updated_at = CURRENT_TIMESTAMP
	`, record.UserID, record.DailyCount, record.LastUsageDate, record.IsPremium)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

// SetPremium flags a user as premium, creating the record if needed.
func (r *UserRepository) SetPremium(userID string, premium bool) error {
	_, err := r.db.Exec(`
		INSERT INTO users (id, is_premium)
		VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET
			is_premium = excluded.is_premium,
			updated_at = CURRENT_TIMESTAMP
	`, userID, premium)
	if err != nil {
		return fmt.Errorf("failed to update premium flag: %w", err)
	}

	return nil
}

// GetUserCount returns the number of known users.
func (r *UserRepository) GetUserCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
