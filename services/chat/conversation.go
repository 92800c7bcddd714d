package chat

import (
	"sort"
	"strings"
)

const groupPrefix = "group_"

var (
	idEscaper   = strings.NewReplacer("%", "%25", "_", "%5F")
	idUnescaper = strings.NewReplacer("%5F", "_", "%25", "%")
)

// DirectConversationID is the order-independent key for a two-party chat:
// both ids sorted and joined by "_". A "_" or "%" inside an id is
// percent-escaped so the key always splits back into the same two users.
func DirectConversationID(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return idEscaper.Replace(ids[0]) + "_" + idEscaper.Replace(ids[1])
}

// directParticipants reverses DirectConversationID.
func directParticipants(conversationID string) (a, b string, ok bool) {
	parts := strings.Split(conversationID, "_")
	if len(parts) != 2 {
		return "", "", false
	}
	a, b = idUnescaper.Replace(parts[0]), idUnescaper.Replace(parts[1])
	return a, b, DirectConversationID(a, b) == conversationID
}

// GroupConversationID is the key for a group's chat.
func GroupConversationID(groupID string) string {
	return groupPrefix + groupID
}
