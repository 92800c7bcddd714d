package inbox

import (
	"context"
	"fmt"
	"testing"
	"time"

	"lexdesk/database"
	"lexdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items     []models.Notification
	lastLimit int64
}

func (f *fakeRepo) Create(context.Context, models.Notification) (string, error) { return "", nil }

func (f *fakeRepo) ListForLawyer(_ context.Context, lawyerID string, limit int64) ([]models.Notification, error) {
	f.lastLimit = limit
	var out []models.Notification
	for _, n := range f.items {
		for _, id := range n.LawyerIDs {
			if id == lawyerID {
				out = append(out, n)
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkSeen(_ context.Context, id, lawyerID string) error {
	for i, n := range f.items {
		if n.ID != id {
			continue
		}
		for _, l := range n.LawyerIDs {
			if l == lawyerID {
				f.items[i].Status = models.NotificationSeen
				return nil
			}
		}
	}
	return database.ErrNotFound
}

func (f *fakeRepo) CountUnseen(_ context.Context, lawyerID string) (int64, error) {
	var n int64
	for _, it := range f.items {
		for _, id := range it.LawyerIDs {
			if id == lawyerID && it.Status == models.NotificationUnseen {
				n++
			}
		}
	}
	return n, nil
}

func (f *fakeRepo) FindCreatedOnOrBefore(context.Context, time.Time) ([]models.Notification, error) {
	return nil, nil
}

func (f *fakeRepo) Delete(context.Context, string) error { return nil }

func TestInbox(t *testing.T) {
	repo := &fakeRepo{items: []models.Notification{
		{ID: "N1", LawyerIDs: []string{"L1", "L2"}, Status: models.NotificationUnseen},
		{ID: "N2", LawyerIDs: []string{"L2"}, Status: models.NotificationUnseen},
	}}
	svc := NewService(repo)
	ctx := context.Background()

	items, err := svc.List(ctx, "L1", 0)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(DefaultLimit), repo.lastLimit)

	_, err = svc.List(ctx, "L1", 10_000)
	require.NoError(t, err)
	assert.Equal(t, int64(MaxLimit), repo.lastLimit)

	assert.ErrorIs(t, svc.MarkSeen(ctx, "L1", "N2"), database.ErrNotFound)
	require.NoError(t, svc.MarkSeen(ctx, "L2", "N2"))

	n, err := svc.Unseen(ctx, "L2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestInbox_UnseenCountsBeyondPage(t *testing.T) {
	repo := &fakeRepo{}
	for i := 0; i < MaxLimit+50; i++ {
		repo.items = append(repo.items, models.Notification{
			ID:        fmt.Sprintf("N%d", i),
			LawyerIDs: []string{"L1"},
			Status:    models.NotificationUnseen,
		})
	}
	svc := NewService(repo)

	items, err := svc.List(context.Background(), "L1", MaxLimit)
	require.NoError(t, err)
	require.NotEmpty(t, items)

	n, err := svc.Unseen(context.Background(), "L1")
	require.NoError(t, err)
	assert.Equal(t, int64(MaxLimit+50), n)
}
