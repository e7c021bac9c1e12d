package repositories

import "autosouq/internal/models"

// MessageRepository defines the interface for chat message data access.
type MessageRepository interface {
	Create(message *models.Message) error
	Thread(userID, otherID string) ([]models.Message, error)
	MarkRead(fromID, toID string) error
	ContactIDs(userID string) ([]string, error)
	LastMessage(userID, otherID string) (*models.Message, error)
	CountUnread(fromID, toID string) (int64, error)
}
