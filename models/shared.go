package models

// LawyerRef is the denormalized lawyer snapshot stored on cases, tasks and
// appointments.
type LawyerRef struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// ClientRef is the denormalized client snapshot stored on cases and appointments.
type ClientRef struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// JobPayload is the body of a scheduled job task. Scheduled runs carry an
// empty payload; manual runs record who asked.
type JobPayload struct {
	Job         string `json:"job"`
	TriggeredBy string `json:"triggeredBy,omitempty"` // "" for the scheduler
}
