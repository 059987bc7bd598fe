package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ren-assistant/internal/conversation"
)

// Conversation groups the logged turns of one session.
type Conversation struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	SessionID string         `json:"session_id" gorm:"uniqueIndex;size:64;not null"`
	UserID    uint           `json:"user_id" gorm:"index"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Interactions []Interaction `json:"-" gorm:"foreignKey:ConversationID"`
}

// Interaction is one logged turn: the user message, the reply, and the
// extracted signals as a JSONB blob.
type Interaction struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	ConversationID uint           `json:"conversation_id" gorm:"index"`
	Message        string         `json:"message" gorm:"type:text"`
	Reply          string         `json:"reply" gorm:"type:text"`
	Intent         string         `json:"intent" gorm:"size:20;index"`
	Tone           string         `json:"tone" gorm:"size:20"`
	Escalated      bool           `json:"escalated" gorm:"default:false"`
	Signals        datatypes.JSON `json:"signals,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// Logger writes interaction records through gorm. It satisfies
// conversation.InteractionLogger.
type Logger struct {
	db *gorm.DB
}

func NewLogger(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

// SaveInteraction appends one turn to the session's conversation row,
// creating the row on first use.
func (l *Logger) SaveInteraction(ctx context.Context, rec conversation.InteractionRecord) error {
	if rec.SessionID == "" {
		return nil // anonymous one-shot turns are not logged
	}

	conv := Conversation{SessionID: rec.SessionID}
	if err := l.db.WithContext(ctx).
		Where(Conversation{SessionID: rec.SessionID}).
		FirstOrCreate(&conv).Error; err != nil {
		return fmt.Errorf("failed to load conversation row: %w", err)
	}
	if rec.UserID != 0 && conv.UserID != rec.UserID {
		if err := l.db.WithContext(ctx).Model(&conv).Update("user_id", rec.UserID).Error; err != nil {
			log.Printf("[History] WARNING: failed to update owner of session %s: %v", rec.SessionID, err)
		}
	}

	signals, err := json.Marshal(map[string]any{
		"intent": rec.Intent,
		"tone":   rec.Tone,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal signals: %w", err)
	}

	interaction := Interaction{
		ConversationID: conv.ID,
		Message:        rec.Message,
		Reply:          rec.Reply,
		Intent:         string(rec.Intent),
		Tone:           string(rec.Tone),
		Escalated:      rec.Escalated,
		Signals:        signals,
	}
	if err := l.db.WithContext(ctx).Create(&interaction).Error; err != nil {
		return fmt.Errorf("failed to save interaction: %w", err)
	}
	return nil
}

// BySession returns the logged turns of a session, oldest first. Unknown
// sessions yield (nil, nil); a known session with no turns yet yields an
// empty non-nil slice, so callers can tell the two apart.
func (l *Logger) BySession(ctx context.Context, sessionID string, limit int) ([]Interaction, error) {
	var conv Conversation
	err := l.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	q := l.db.WithContext(ctx).
		Where("conversation_id = ?", conv.ID).
		Order("created_at asc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	interactions := make([]Interaction, 0)
	if err := q.Find(&interactions).Error; err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}
	return interactions, nil
}
