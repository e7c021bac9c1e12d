package repositories

import (
	"fmt"

	"autosouq/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMessageRepository is a GORM implementation of MessageRepository.
type GORMMessageRepository struct {
	db *gorm.DB
}

// NewGORMMessageRepository creates a new instance of GORMMessageRepository.
func NewGORMMessageRepository(db *gorm.DB) *GORMMessageRepository {
	return &GORMMessageRepository{
		db: db,
	}
}

// Create inserts a new message.
func (r *GORMMessageRepository) Create(message *models.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// Thread retrieves all messages exchanged between two users, oldest first.
func (r *GORMMessageRepository) Thread(userID, otherID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("Sender").Preload("Receiver").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load message thread: %w", err)
	}
	return messages, nil
}

// MarkRead flags every unread message from fromID to toID as read.
func (r *GORMMessageRepository) MarkRead(fromID, toID string) error {
	err := r.db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", fromID, toID, false).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}

// ContactIDs returns the distinct set of user IDs the given user has
// exchanged messages with.
func (r *GORMMessageRepository) ContactIDs(userID string) ([]string, error) {
	var sent []string
	if err := r.db.Model(&models.Message{}).Where("sender_id = ?", userID).
		Distinct("receiver_id").Pluck("receiver_id", &sent).Error; err != nil {
		return nil, fmt.Errorf("failed to load sent contacts: %w", err)
	}
	var received []string
	if err := r.db.Model(&models.Message{}).Where("receiver_id = ?", userID).
		Distinct("sender_id").Pluck("sender_id", &received).Error; err != nil {
		return nil, fmt.Errorf("failed to load received contacts: %w", err)
	}

	seen := make(map[string]bool, len(sent)+len(received))
	contacts := make([]string, 0, len(sent)+len(received))
	for _, id := range append(sent, received...) {
		if !seen[id] {
			seen[id] = true
			contacts = append(contacts, id)
		}
	}
	return contacts, nil
}

// LastMessage returns the most recent message between two users, or nil
// when none exists.
func (r *GORMMessageRepository) LastMessage(userID, otherID string) (*models.Message, error) {
	var message models.Message
	err := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at DESC").
		First(&message).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load last message: %w", err)
	}
	return &message, nil
}

// CountUnread counts unread messages from fromID to toID.
func (r *GORMMessageRepository) CountUnread(fromID, toID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", fromID, toID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}
