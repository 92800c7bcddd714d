package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotification_EntityID(t *testing.T) {
	now := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	for _, typ := range []NotificationType{NotificationCase, NotificationTask, NotificationAppointment} {
		n := NewEntityNotification(typ, "E1", []string{"L1"}, "due", now)
		assert.Equal(t, "E1", n.EntityID(), typ)
	}
	assert.Empty(t, Notification{Type: "Other", CaseID: "C1"}.EntityID())
}

func TestMessage_IsGroup(t *testing.T) {
	assert.True(t, Message{GroupID: "G1"}.IsGroup())
	assert.False(t, Message{RecipientID: "U2"}.IsGroup())
}
