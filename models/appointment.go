package models

import "time"

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "PENDING"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
)

// Appointment is a meeting between one lawyer and one client.
type Appointment struct {
	ID        string            `bson:"id" json:"id"`
	Title     string            `bson:"title,omitempty" json:"title,omitempty"`
	Date      string            `bson:"date" json:"date"` // YYYY-MM-DD
	Time      string            `bson:"time" json:"time"` // HH:MM
	Status    AppointmentStatus `bson:"status" json:"status"`
	Lawyer    LawyerRef         `bson:"lawyer" json:"lawyer"`
	Client    ClientRef         `bson:"client" json:"client"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time         `bson:"updatedAt" json:"updatedAt"`
}
