package models

import (
	"time"

	"github.com/google/uuid"
)

// Message — личное сообщение между пользователями, опционально
// привязанное к объявлению.
type Message struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	SenderID   uuid.UUID  `db:"sender_id" json:"senderId"`
	ReceiverID uuid.UUID  `db:"receiver_id" json:"receiverId"`
	ItemID     *uuid.UUID `db:"item_id" json:"itemId,omitempty"`
	Content    string     `db:"content" json:"content"`
	IsRead     bool       `db:"is_read" json:"isRead"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
}

// Conversation — агрегат последнего сообщения с собеседником.
type Conversation struct {
	PartnerID     uuid.UUID `db:"partner_id" json:"partnerId"`
	PartnerName   string    `db:"partner_name" json:"partnerName"`
	LastMessage   string    `db:"last_message" json:"lastMessage"`
	LastMessageAt time.Time `db:"last_message_at" json:"lastMessageAt"`
	UnreadCount   int       `db:"unread_count" json:"unreadCount"`
}
