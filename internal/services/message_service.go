package services

import (
	"fmt"
	"sort"
	"time"

	"autosouq/internal/models"
	"autosouq/internal/repositories"
)

// MessageService handles buyer/seller chat. Conversations are derived at
// query time; nothing beyond the messages themselves is stored.
type MessageService struct {
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
}

// NewMessageService creates a new MessageService.
func NewMessageService(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// Conversations derives the conversation list for a user: one entry per
// counterpart with the last message and unread count, most recent first.
func (s *MessageService) Conversations(userID string) ([]models.Conversation, error) {
	contactIDs, err := s.messageRepo.ContactIDs(userID)
	if err != nil {
		return nil, err
	}

	conversations := make([]models.Conversation, 0, len(contactIDs))
	for _, contactID := range contactIDs {
		contact, err := s.userRepo.GetByID(contactID)
		if err != nil {
			// Counterpart account removed; skip the conversation.
			continue
		}
		contact.Password = ""

		last, err := s.messageRepo.LastMessage(userID, contactID)
		if err != nil {
			return nil, err
		}
		unread, err := s.messageRepo.CountUnread(contactID, userID)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, models.Conversation{
			Contact:     contact,
			LastMessage: last,
			UnreadCount: unread,
		})
	}

	sort.Slice(conversations, func(i, j int) bool {
		var ti, tj time.Time
		if conversations[i].LastMessage != nil {
			ti = conversations[i].LastMessage.CreatedAt
		}
		if conversations[j].LastMessage != nil {
			tj = conversations[j].LastMessage.CreatedAt
		}
		return ti.After(tj)
	})
	return conversations, nil
}

// Thread returns all messages between the user and a counterpart, oldest
// first, and marks the counterpart's unread messages as read. Re-reading
// an already-read thread changes nothing.
func (s *MessageService) Thread(userID, otherID string) ([]models.Message, error) {
	messages, err := s.messageRepo.Thread(userID, otherID)
	if err != nil {
		return nil, err
	}
	if err := s.messageRepo.MarkRead(otherID, userID); err != nil {
		return nil, err
	}
	return messages, nil
}

// Send delivers a message from sender to receiver. The receiver must exist.
func (s *MessageService) Send(senderID, receiverID, content string) (*models.Message, error) {
	if _, err := s.userRepo.GetByID(receiverID); err != nil {
		return nil, fmt.Errorf("%w: receiver %s", ErrNotFound, receiverID)
	}
	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}
	return message, nil
}
