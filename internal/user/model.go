package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:32;not null" json:"username"`
	PasswordHash string         `gorm:"size:128;not null" json:"-"`
	Role         Role           `gorm:"type:varchar(10);not null;default:'user'" json:"role"`
	Preferences  datatypes.JSON `gorm:"type:jsonb" json:"preferences,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a stored hash against a plaintext candidate.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// PreferenceStore reads and writes the preferences JSON blob on the user row.
// It satisfies conversation.PreferenceSource.
type PreferenceStore struct {
	db *gorm.DB
}

func NewPreferenceStore(db *gorm.DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

// GetUserPreferences returns the user's stored preferences, or nil when the
// user has none.
func (s *PreferenceStore) GetUserPreferences(ctx context.Context, userID uint) (map[string]any, error) {
	var u User
	err := s.db.WithContext(ctx).Select("preferences").First(&u, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	if len(u.Preferences) == 0 {
		return nil, nil
	}
	var prefs map[string]any
	if err := json.Unmarshal(u.Preferences, &prefs); err != nil {
		return nil, fmt.Errorf("corrupt preferences for user %d: %w", userID, err)
	}
	return prefs, nil
}

// SetUserPreferences replaces the user's preference blob.
func (s *PreferenceStore) SetUserPreferences(ctx context.Context, userID uint, prefs map[string]any) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	return s.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Update("preferences", datatypes.JSON(raw)).Error
}
