package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"lexdesk/database"
	"lexdesk/models"

	"github.com/google/uuid"
)

// GroupUpdate carries the optional fields of a group edit.
type GroupUpdate struct {
	Name    *string
	Members []string // nil leaves members unchanged
}

// CreateGroup creates a group. Only privileged roles may do so; the creator
// is always a member.
func (s *Service) CreateGroup(ctx context.Context, actorID string, role models.Role, name string, members []string) (*models.Group, error) {
	if !role.Privileged() {
		return nil, ErrForbidden
	}
	name = strings.TrimSpace(name)
	members = normalizeMembers(append([]string{actorID}, members...))
	if name == "" || len(members) < 2 {
		return nil, ErrInvalidGroup
	}

	now := s.clock.Now()
	g := &models.Group{
		ID:        uuid.New().String(),
		Name:      name,
		Members:   members,
		CreatedBy: actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.groups.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	s.audit.Record(ctx, "group.create", actorID, database.GroupsCollection, g.ID, map[string]string{"name": g.Name})
	return g, nil
}

// UpdateGroup renames a group and/or replaces its member set.
func (s *Service) UpdateGroup(ctx context.Context, actorID string, role models.Role, groupID string, upd GroupUpdate) (*models.Group, error) {
	if !role.Privileged() {
		return nil, ErrForbidden
	}
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, ErrInvalidGroup
		}
		g.Name = name
		fields["name"] = name
	}
	if upd.Members != nil {
		members := normalizeMembers(upd.Members)
		if len(members) < 2 {
			return nil, ErrInvalidGroup
		}
		g.Members = members
		fields["members"] = members
	}
	if len(fields) == 0 {
		return g, nil
	}

	g.UpdatedAt = s.clock.Now()
	fields["updatedAt"] = g.UpdatedAt
	if err := s.groups.Update(ctx, groupID, fields); err != nil {
		return nil, fmt.Errorf("update group: %w", err)
	}
	s.audit.Record(ctx, "group.update", actorID, database.GroupsCollection, groupID, map[string]string{
		"name":    g.Name,
		"members": strings.Join(g.Members, ","),
	})
	return g, nil
}

// DeleteGroup removes a group. Its messages stay in place.
func (s *Service) DeleteGroup(ctx context.Context, actorID string, role models.Role, groupID string) error {
	if !role.Privileged() {
		return ErrForbidden
	}
	if err := s.groups.Delete(ctx, groupID); err != nil {
		return err
	}
	s.audit.Record(ctx, "group.delete", actorID, database.GroupsCollection, groupID, nil)
	return nil
}

// ListGroups returns the groups userID belongs to.
func (s *Service) ListGroups(ctx context.Context, userID string) ([]models.Group, error) {
	return s.groups.ListForMember(ctx, userID)
}

// normalizeMembers drops blanks and duplicates and sorts the ids.
func normalizeMembers(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
