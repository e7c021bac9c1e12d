package models

import "time"

// Message is a single chat message between two users. There is no stored
// conversation entity; conversations are derived by grouping messages
// between two user ids at query time.
type Message struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	SenderID   string    `json:"senderId" gorm:"type:varchar(36);index"`
	Sender     *User     `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	ReceiverID string    `json:"receiverId" gorm:"type:varchar(36);index"`
	Receiver   *User     `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
	Content    string    `json:"content" gorm:"type:text" validate:"required,min=1"`
	IsRead     bool      `json:"isRead" gorm:"default:false"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Conversation is the derived summary of the exchange with one counterpart:
// the counterpart user, the most recent message, and how many of their
// messages the current user has not read yet.
type Conversation struct {
	Contact     *User    `json:"contact"`
	LastMessage *Message `json:"lastMessage"`
	UnreadCount int64    `json:"unreadCount"`
}
