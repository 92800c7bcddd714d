package models

import "time"

// Attachment is a file uploaded alongside a chat message.
type Attachment struct {
	Name string `bson:"name" json:"name"`
	URL  string `bson:"url" json:"url"`
	Type string `bson:"type" json:"type"` // MIME type
	Path string `bson:"path" json:"-"`    // object path in blob storage
}

// Message is a chat message in either a direct or a group conversation.
// RecipientID is set for direct messages, GroupID for group messages.
type Message struct {
	ID             string      `bson:"id" json:"id"`
	ConversationID string      `bson:"conversationId" json:"conversationId"`
	SenderID       string      `bson:"senderId" json:"senderId"`
	RecipientID    string      `bson:"recipientId,omitempty" json:"recipientId,omitempty"`
	GroupID        string      `bson:"groupId,omitempty" json:"groupId,omitempty"`
	Content        string      `bson:"content" json:"content"`
	File           *Attachment `bson:"file,omitempty" json:"file,omitempty"`
	Timestamp      time.Time   `bson:"timestamp" json:"timestamp"`
	IsEdited       bool        `bson:"isEdited" json:"isEdited"`
	EditedAt       *time.Time  `bson:"editedAt,omitempty" json:"editedAt,omitempty"`
	IsDeleted      bool        `bson:"isDeleted" json:"isDeleted"`
	DeletedBy      string      `bson:"deletedBy,omitempty" json:"deletedBy,omitempty"`
	IsSeen         bool        `bson:"isSeen" json:"isSeen"`
}

// IsGroup reports whether the message belongs to a group conversation.
func (m Message) IsGroup() bool {
	return m.GroupID != ""
}

// Group is a named set of users sharing one conversation.
type Group struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Members   []string  `bson:"members" json:"members"`
	CreatedBy string    `bson:"createdBy" json:"createdBy"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasMember reports whether userID is in the group.
func (g Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}
