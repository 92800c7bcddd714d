// Package chat implements direct and group messaging: sending with optional
// attachments, time-boxed edits, soft deletes, seen tracking and real-time
// fan-out.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"lexdesk/database"
	chatRepo "lexdesk/database/repository/chat"
	"lexdesk/models"
	"lexdesk/services/audit"
	"lexdesk/services/notification"
	"lexdesk/services/storage"
	"lexdesk/utils"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

const (
	DefaultEditWindow   = 15 * time.Minute
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// Deps are the collaborators of the chat service.
type Deps struct {
	Messages    chatRepo.MessageRepository
	Groups      chatRepo.GroupRepository
	Store       storage.AttachmentStore
	Broadcaster Broadcaster
	Unseen      UnseenTracker
	Push        notification.PushNotifier // optional
	Audit       *audit.Recorder           // optional
	Clock       utils.Clock
	EditWindow  time.Duration
	Logger      *zap.Logger
}

// Service is the messaging entry point used by the HTTP handlers.
type Service struct {
	messages    chatRepo.MessageRepository
	groups      chatRepo.GroupRepository
	store       storage.AttachmentStore
	broadcaster Broadcaster
	unseen      UnseenTracker
	push        notification.PushNotifier
	audit       *audit.Recorder
	clock       utils.Clock
	editWindow  time.Duration
	logger      *zap.Logger
}

func NewService(d Deps) *Service {
	if d.Clock == nil {
		d.Clock = utils.SystemClock{}
	}
	if d.EditWindow <= 0 {
		d.EditWindow = DefaultEditWindow
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Service{
		messages:    d.Messages,
		groups:      d.Groups,
		store:       d.Store,
		broadcaster: d.Broadcaster,
		unseen:      d.Unseen,
		push:        d.Push,
		audit:       d.Audit,
		clock:       d.Clock,
		editWindow:  d.EditWindow,
		logger:      d.Logger.Named("chat"),
	}
}

// Upload is an attachment submitted with a message.
type Upload struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// SendRequest addresses a message to exactly one of a user or a group.
type SendRequest struct {
	SenderID    string
	RecipientID string
	GroupID     string
	Content     string
	Attachment  *Upload
}

// Send stores a new message and notifies the other side. With an attachment
// the bytes are uploaded first; if the message cannot be written the upload
// is removed again.
func (s *Service) Send(ctx context.Context, req SendRequest) (*models.Message, error) {
	if (req.RecipientID == "") == (req.GroupID == "") || req.RecipientID == req.SenderID {
		return nil, ErrInvalidTarget
	}
	content := strings.TrimSpace(req.Content)
	if content == "" && req.Attachment == nil {
		return nil, ErrEmptyMessage
	}

	msg := &models.Message{
		ID:          uuid.New().String(),
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		GroupID:     req.GroupID,
		Content:     content,
		Timestamp:   s.clock.Now(),
	}

	var group *models.Group
	if req.GroupID != "" {
		g, err := s.memberGroup(ctx, req.GroupID, req.SenderID)
		if err != nil {
			return nil, err
		}
		group = g
		msg.ConversationID = GroupConversationID(g.ID)
	} else {
		msg.ConversationID = DirectConversationID(req.SenderID, req.RecipientID)
	}

	if req.Attachment != nil {
		file, err := s.upload(ctx, req.SenderID, req.Attachment)
		if err != nil {
			return nil, err
		}
		msg.File = file
		if msg.Content == "" {
			msg.Content = file.Name
		}
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		if msg.File != nil {
			if delErr := s.store.Delete(ctx, msg.File.Path, msg.File.Type); delErr != nil {
				s.logger.Error("Failed to remove orphaned attachment", zap.String("path", msg.File.Path), zap.Error(delErr))
			}
		}
		return nil, fmt.Errorf("send message: %w", err)
	}

	if !msg.IsGroup() {
		if err := s.unseen.IncrDirect(ctx, msg.RecipientID, msg.SenderID); err != nil {
			s.logger.Warn("Failed to bump unseen counter", zap.String("recipientId", msg.RecipientID), zap.Error(err))
		}
	}
	s.publish(ctx, Event{Type: EventMessageSent, ConversationID: msg.ConversationID, Message: msg, At: msg.Timestamp})
	s.pushNew(ctx, msg, group)
	return msg, nil
}

func (s *Service) upload(ctx context.Context, senderID string, u *Upload) (*models.Attachment, error) {
	if u.Name == "" || u.Body == nil {
		return nil, ErrEmptyMessage
	}
	objectPath := storage.ChatObjectPath(senderID, u.Name)
	url, err := s.store.Upload(ctx, objectPath, u.Body, u.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload attachment: %w", err)
	}
	return &models.Attachment{Name: u.Name, URL: url, Type: u.ContentType, Path: objectPath}, nil
}

// Edit replaces the content of the caller's own message while the edit
// window is open.
func (s *Service) Edit(ctx context.Context, userID, messageID, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	msg, err := s.ownMessage(ctx, userID, messageID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	if now.Sub(msg.Timestamp) > s.editWindow {
		return nil, ErrEditWindowClosed
	}

	if err := s.updateLive(ctx, msg, map[string]any{
		"content":  content,
		"isEdited": true,
		"editedAt": now,
	}); err != nil {
		return nil, fmt.Errorf("edit message: %w", err)
	}
	msg.Content = content
	msg.IsEdited = true
	msg.EditedAt = &now

	s.publish(ctx, Event{Type: EventMessageEdited, ConversationID: msg.ConversationID, Message: msg, At: now})
	return msg, nil
}

// Delete soft-deletes the caller's own message. Content and attachment are
// cleared; the record stays so peers can show who deleted it.
func (s *Service) Delete(ctx context.Context, userID, messageID string) (*models.Message, error) {
	msg, err := s.ownMessage(ctx, userID, messageID)
	if err != nil {
		return nil, err
	}

	if err := s.updateLive(ctx, msg, map[string]any{
		"isDeleted": true,
		"deletedBy": userID,
		"content":   "",
		"file":      nil,
	}); err != nil {
		return nil, fmt.Errorf("delete message: %w", err)
	}

	if msg.File != nil && msg.File.Path != "" {
		if err := s.store.Delete(ctx, msg.File.Path, msg.File.Type); err != nil {
			s.logger.Warn("Failed to delete attachment", zap.String("path", msg.File.Path), zap.Error(err))
		}
	}
	msg.IsDeleted = true
	msg.DeletedBy = userID
	msg.Content = ""
	msg.File = nil

	s.publish(ctx, Event{Type: EventMessageDeleted, ConversationID: msg.ConversationID, Message: msg, At: s.clock.Now()})
	return msg, nil
}

// ownMessage loads a live message and checks that userID sent it.
func (s *Service) ownMessage(ctx context.Context, userID, messageID string) (*models.Message, error) {
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.IsDeleted {
		return nil, ErrMessageDeleted
	}
	if msg.SenderID != userID {
		return nil, ErrForbidden
	}
	return msg, nil
}

// updateLive writes fields only if msg is still live. A delete that landed
// after ownMessage read it surfaces as ErrMessageDeleted.
func (s *Service) updateLive(ctx context.Context, msg *models.Message, fields map[string]any) error {
	err := s.messages.UpdateLive(ctx, msg.ID, msg.SenderID, fields)
	if errors.Is(err, database.ErrNotFound) {
		return ErrMessageDeleted
	}
	return err
}

// MarkDirectSeen flips every unseen message from otherID to userID and
// clears the counter. It returns how many messages changed.
func (s *Service) MarkDirectSeen(ctx context.Context, userID, otherID string) (int64, error) {
	n, err := s.messages.MarkDirectSeen(ctx, userID, otherID)
	if err != nil {
		return 0, fmt.Errorf("mark seen: %w", err)
	}
	if err := s.unseen.ResetDirect(ctx, userID, otherID); err != nil {
		s.logger.Warn("Failed to reset unseen counter", zap.String("userId", userID), zap.Error(err))
	}
	if n > 0 {
		s.publish(ctx, Event{
			Type:           EventMessagesSeen,
			ConversationID: DirectConversationID(userID, otherID),
			ReaderID:       userID,
			Count:          n,
			At:             s.clock.Now(),
		})
	}
	return n, nil
}

// MarkGroupSeen moves the user's group marker to now.
func (s *Service) MarkGroupSeen(ctx context.Context, userID, groupID string) error {
	if _, err := s.memberGroup(ctx, groupID, userID); err != nil {
		return err
	}
	now := s.clock.Now()
	if err := s.unseen.MarkGroupSeen(ctx, userID, groupID, now); err != nil {
		return fmt.Errorf("mark group seen: %w", err)
	}
	s.publish(ctx, Event{Type: EventMessagesSeen, ConversationID: GroupConversationID(groupID), ReaderID: userID, At: now})
	return nil
}

// UnseenSummary is a user's unseen counts keyed by sender and by group.
type UnseenSummary struct {
	Direct map[string]int64 `json:"direct"`
	Groups map[string]int64 `json:"groups"`
}

// Unseen reports the user's unseen counts. Group counts are computed by the
// store from the user's last-seen marker.
func (s *Service) Unseen(ctx context.Context, userID string) (*UnseenSummary, error) {
	direct, err := s.unseen.DirectCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read unseen counters: %w", err)
	}
	groups, err := s.groups.ListForMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	summary := &UnseenSummary{Direct: direct, Groups: make(map[string]int64, len(groups))}
	for _, g := range groups {
		n, err := s.GroupUnseen(ctx, userID, g.ID)
		if err != nil {
			s.logger.Warn("Failed to count group unseen", zap.String("groupId", g.ID), zap.Error(err))
			continue
		}
		if n > 0 {
			summary.Groups[g.ID] = n
		}
	}
	return summary, nil
}

// GroupUnseen counts messages posted to the group by others since the user
// last opened it.
func (s *Service) GroupUnseen(ctx context.Context, userID, groupID string) (int64, error) {
	since, err := s.unseen.GroupSeenAt(ctx, userID, groupID)
	if err != nil {
		return 0, fmt.Errorf("read group marker: %w", err)
	}
	return s.messages.CountGroupSince(ctx, groupID, userID, since)
}

// HistoryRequest pages backwards through one conversation.
type HistoryRequest struct {
	UserID  string
	OtherID string // direct
	GroupID string // group
	Before  time.Time
	Limit   int64
}

// History returns messages newest first.
func (s *Service) History(ctx context.Context, req HistoryRequest) ([]models.Message, error) {
	if (req.OtherID == "") == (req.GroupID == "") {
		return nil, ErrInvalidTarget
	}
	convID := DirectConversationID(req.UserID, req.OtherID)
	if req.GroupID != "" {
		if _, err := s.memberGroup(ctx, req.GroupID, req.UserID); err != nil {
			return nil, err
		}
		convID = GroupConversationID(req.GroupID)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return s.messages.ListConversation(ctx, convID, req.Before, limit)
}

// CanWatch reports whether userID may subscribe to a conversation.
func (s *Service) CanWatch(ctx context.Context, userID, conversationID string) error {
	if groupID, ok := strings.CutPrefix(conversationID, groupPrefix); ok {
		_, err := s.memberGroup(ctx, groupID, userID)
		return err
	}
	a, b, ok := directParticipants(conversationID)
	if !ok || (a != userID && b != userID) {
		return ErrForbidden
	}
	return nil
}

// Subscribe streams a conversation's events to a member.
func (s *Service) Subscribe(ctx context.Context, userID, conversationID string) (<-chan Event, func(), error) {
	if err := s.CanWatch(ctx, userID, conversationID); err != nil {
		return nil, nil, err
	}
	return s.broadcaster.Subscribe(ctx, conversationID)
}

func (s *Service) memberGroup(ctx context.Context, groupID, userID string) (*models.Group, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("group %s: %w", groupID, database.ErrNotFound)
		}
		return nil, fmt.Errorf("load group: %w", err)
	}
	if !g.HasMember(userID) {
		return nil, ErrNotGroupMember
	}
	return g, nil
}

func (s *Service) publish(ctx context.Context, ev Event) {
	if err := s.broadcaster.Publish(ctx, ev); err != nil {
		s.logger.Warn("Failed to publish chat event",
			zap.String("type", string(ev.Type)),
			zap.String("conversationId", ev.ConversationID),
			zap.Error(err),
		)
	}
}

// pushNew sends a best-effort device push to every recipient of msg.
func (s *Service) pushNew(ctx context.Context, msg *models.Message, group *models.Group) {
	if s.push == nil {
		return
	}
	recipients := []string{msg.RecipientID}
	title := "New message"
	if group != nil {
		recipients = recipients[:0]
		for _, m := range group.Members {
			if m != msg.SenderID {
				recipients = append(recipients, m)
			}
		}
		title = "New message in " + group.Name
	}

	data := map[string]string{
		"type":           "chat_message",
		"conversationId": msg.ConversationID,
		"messageId":      msg.ID,
		"senderId":       msg.SenderID,
	}
	var wg conc.WaitGroup
	for _, uid := range recipients {
		wg.Go(func() {
			err := s.push.SendUserPush(ctx, uid, title, preview(msg.Content), data)
			if err != nil && !errors.Is(err, notification.ErrNoPushToken) {
				s.logger.Debug("Chat push failed", zap.String("userId", uid), zap.Error(err))
			}
		})
	}
	if r := wg.WaitAndRecover(); r != nil {
		s.logger.Error("Recovered panic in chat push", zap.String("panic", r.String()))
	}
}

func preview(content string) string {
	const limit = 100
	r := []rune(content)
	if len(r) <= limit {
		return content
	}
	return string(r[:limit]) + "..."
}
