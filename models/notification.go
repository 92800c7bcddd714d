package models

import "time"

// NotificationType names the kind of entity a notification points at.
type NotificationType string

const (
	NotificationCase        NotificationType = "Case"
	NotificationTask        NotificationType = "Task"
	NotificationAppointment NotificationType = "Appointment"
)

// NotificationStatus is the inbox state of a notification.
type NotificationStatus string

const (
	NotificationUnseen NotificationStatus = "unseen"
	NotificationSeen   NotificationStatus = "seen"
)

// Notification is a persisted reminder shown in the lawyers' inbox. Exactly
// one of CaseID, TaskID and AppointmentID is set, matching Type.
type Notification struct {
	ID            string             `bson:"id" json:"id"`
	Type          NotificationType   `bson:"type" json:"type"`
	CaseID        string             `bson:"caseId,omitempty" json:"caseId,omitempty"`
	TaskID        string             `bson:"taskId,omitempty" json:"taskId,omitempty"`
	AppointmentID string             `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	LawyerIDs     []string           `bson:"lawyerIds" json:"lawyerIds"`
	Message       string             `bson:"message" json:"message"`
	Status        NotificationStatus `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// EntityID returns the id of the referenced entity.
func (n Notification) EntityID() string {
	switch n.Type {
	case NotificationCase:
		return n.CaseID
	case NotificationTask:
		return n.TaskID
	case NotificationAppointment:
		return n.AppointmentID
	}
	return ""
}

// NewEntityNotification builds an unseen notification referencing exactly
// one entity.
func NewEntityNotification(t NotificationType, entityID string, lawyerIDs []string, message string, now time.Time) Notification {
	n := Notification{
		Type:      t,
		LawyerIDs: lawyerIDs,
		Message:   message,
		Status:    NotificationUnseen,
		CreatedAt: now,
	}
	switch t {
	case NotificationCase:
		n.CaseID = entityID
	case NotificationTask:
		n.TaskID = entityID
	case NotificationAppointment:
		n.AppointmentID = entityID
	}
	return n
}
