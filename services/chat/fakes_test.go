package chat

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"lexdesk/database"
	"lexdesk/models"
)

type memMessages struct {
	mu        sync.Mutex
	byID      map[string]*models.Message
	failWrite bool

	// beforeUpdate runs under the lock ahead of the live check, standing in
	// for a concurrent writer.
	beforeUpdate func(m *models.Message)
}

func newMemMessages() *memMessages { return &memMessages{byID: map[string]*models.Message{}} }

func (r *memMessages) Create(_ context.Context, m *models.Message) error {
	if r.failWrite {
		return errors.New("write timeout")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.byID[m.ID] = &cp
	return nil
}

func (r *memMessages) GetByID(_ context.Context, id string) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *memMessages) UpdateLive(_ context.Context, id, senderID string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return database.ErrNotFound
	}
	if r.beforeUpdate != nil {
		r.beforeUpdate(m)
	}
	if m.IsDeleted || m.SenderID != senderID {
		return database.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "content":
			m.Content = v.(string)
		case "isEdited":
			m.IsEdited = v.(bool)
		case "editedAt":
			t := v.(time.Time)
			m.EditedAt = &t
		case "isDeleted":
			m.IsDeleted = v.(bool)
		case "deletedBy":
			m.DeletedBy = v.(string)
		case "file":
			m.File = nil
		}
	}
	return nil
}

func (r *memMessages) ListConversation(_ context.Context, conversationID string, before time.Time, limit int64) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Message
	for _, m := range r.byID {
		if m.ConversationID != conversationID {
			continue
		}
		if !before.IsZero() && !m.Timestamp.Before(before) {
			continue
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memMessages) MarkDirectSeen(_ context.Context, recipientID, senderID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.byID {
		if m.RecipientID == recipientID && m.SenderID == senderID && !m.IsSeen {
			m.IsSeen = true
			n++
		}
	}
	return n, nil
}

func (r *memMessages) CountGroupSince(_ context.Context, groupID, userID string, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.byID {
		if m.GroupID == groupID && m.SenderID != userID && !m.IsDeleted && m.Timestamp.After(since) {
			n++
		}
	}
	return n, nil
}

type memGroups struct {
	byID map[string]*models.Group
}

func (r *memGroups) Create(_ context.Context, g *models.Group) error {
	cp := *g
	r.byID[g.ID] = &cp
	return nil
}

func (r *memGroups) GetByID(_ context.Context, id string) (*models.Group, error) {
	g, ok := r.byID[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *memGroups) Update(_ context.Context, id string, fields map[string]any) error {
	g, ok := r.byID[id]
	if !ok {
		return database.ErrNotFound
	}
	if v, ok := fields["name"]; ok {
		g.Name = v.(string)
	}
	if v, ok := fields["members"]; ok {
		g.Members = v.([]string)
	}
	return nil
}

func (r *memGroups) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memGroups) ListForMember(_ context.Context, userID string) ([]models.Group, error) {
	var out []models.Group
	for _, g := range r.byID {
		if g.HasMember(userID) {
			out = append(out, *g)
		}
	}
	return out, nil
}

type memStore struct {
	objects      map[string][]byte
	deleted      []string
	deletedTypes []string
}

func (s *memStore) Upload(_ context.Context, objectPath string, r io.Reader, _ string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.objects[objectPath] = b
	return "https://files.example/" + objectPath, nil
}

func (s *memStore) Delete(_ context.Context, objectPath, contentType string) error {
	delete(s.objects, objectPath)
	s.deleted = append(s.deleted, objectPath)
	s.deletedTypes = append(s.deletedTypes, contentType)
	return nil
}

type memBroadcaster struct {
	mu     sync.Mutex
	events []Event
}

func (b *memBroadcaster) Publish(_ context.Context, ev Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
	return nil
}

func (b *memBroadcaster) Subscribe(context.Context, string) (<-chan Event, func(), error) {
	ch := make(chan Event)
	return ch, func() {}, nil
}

func (b *memBroadcaster) types() []EventType {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]EventType, 0, len(b.events))
	for _, ev := range b.events {
		out = append(out, ev.Type)
	}
	return out
}

type memUnseen struct {
	mu     sync.Mutex
	direct map[string]map[string]int64
	seenAt map[string]time.Time
}

func newMemUnseen() *memUnseen {
	return &memUnseen{direct: map[string]map[string]int64{}, seenAt: map[string]time.Time{}}
}

func (u *memUnseen) IncrDirect(_ context.Context, recipientID, senderID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.direct[recipientID] == nil {
		u.direct[recipientID] = map[string]int64{}
	}
	u.direct[recipientID][senderID]++
	return nil
}

func (u *memUnseen) ResetDirect(_ context.Context, recipientID, senderID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.direct[recipientID], senderID)
	return nil
}

func (u *memUnseen) DirectCounts(_ context.Context, userID string) (map[string]int64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := map[string]int64{}
	for k, v := range u.direct[userID] {
		out[k] = v
	}
	return out, nil
}

func (u *memUnseen) MarkGroupSeen(_ context.Context, userID, groupID string, at time.Time) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.seenAt[userID+"/"+groupID] = at
	return nil
}

func (u *memUnseen) GroupSeenAt(_ context.Context, userID, groupID string) (time.Time, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.seenAt[userID+"/"+groupID], nil
}

type memPush struct {
	mu  sync.Mutex
	got []string
}

func (p *memPush) SendUserPush(_ context.Context, userID, _, _ string, _ map[string]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, userID)
	return nil
}

// mutableClock lets a test move time forward between calls.
type mutableClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *mutableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *mutableClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
