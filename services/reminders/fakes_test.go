package reminders

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"lexdesk/database"
	"lexdesk/models"
	"lexdesk/services/notification"
)

type fakeTasks struct {
	tasks []models.Task
}

func (f *fakeTasks) Create(context.Context, *models.Task) error { return nil }
func (f *fakeTasks) GetByID(context.Context, string) (*models.Task, error) {
	return nil, database.ErrNotFound
}
func (f *fakeTasks) Update(context.Context, string, map[string]any) error { return nil }
func (f *fakeTasks) Delete(context.Context, string) error { return nil }
func (f *fakeTasks) FindDueBetween(_ context.Context, from, to string) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if t.EndDate >= from && t.EndDate < to {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeCases struct {
	cases []models.Case
}

func (f *fakeCases) Create(context.Context, *models.Case) error { return nil }
func (f *fakeCases) GetByID(context.Context, string) (*models.Case, error) {
	return nil, database.ErrNotFound
}
func (f *fakeCases) Update(context.Context, string, map[string]any) error { return nil }
func (f *fakeCases) Delete(context.Context, string) error { return nil }
func (f *fakeCases) FindByStatus(_ context.Context, status models.CaseStatus) ([]models.Case, error) {
	var out []models.Case
	for _, c := range f.cases {
		if c.CaseStatus == status {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeAppointments struct {
	appts []models.Appointment
}

func (f *fakeAppointments) Create(context.Context, *models.Appointment) error { return nil }
func (f *fakeAppointments) GetByID(context.Context, string) (*models.Appointment, error) {
	return nil, database.ErrNotFound
}
func (f *fakeAppointments) FindOnDatesBetween(_ context.Context, from, to string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appts {
		if a.Date >= from && a.Date < to {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeNotifications struct {
	mu         sync.Mutex
	items      []models.Notification
	failDelete map[string]bool
	lastCutoff time.Time
	seq        int
}

func (f *fakeNotifications) Create(_ context.Context, n models.Notification) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if n.ID == "" {
		n.ID = fmt.Sprintf("N%d", f.seq)
	}
	f.items = append(f.items, n)
	return n.ID, nil
}

func (f *fakeNotifications) ListForLawyer(context.Context, string, int64) ([]models.Notification, error) {
	return nil, nil
}

func (f *fakeNotifications) MarkSeen(context.Context, string, string) error { return nil }

func (f *fakeNotifications) CountUnseen(context.Context, string) (int64, error) { return 0, nil }

func (f *fakeNotifications) FindCreatedOnOrBefore(_ context.Context, cutoff time.Time) ([]models.Notification, error) {
	f.lastCutoff = cutoff
	var out []models.Notification
	for _, n := range f.items {
		if !n.CreatedAt.After(cutoff) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotifications) Delete(_ context.Context, id string) error {
	if f.failDelete[id] {
		return errors.New("write conflict")
	}
	for i, n := range f.items {
		if n.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []notification.Email
	fail map[string]bool
}

func (m *fakeMailer) Send(_ context.Context, e notification.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, e)
	if m.fail[e.To] {
		return errors.New("smtp 550")
	}
	return nil
}
