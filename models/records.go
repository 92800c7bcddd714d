// File: models/records.go
package models

import "time"

// LogEntry is an audit record in the logs collection.
type LogEntry struct {
	ID         string            `bson:"id" json:"id"`
	Action     string            `bson:"action" json:"action"`                       // e.g. "task.create"
	ActorID    string            `bson:"actorId" json:"actorId"`                     // uid of the caller
	EntityType string            `bson:"entityType" json:"entityType"`               // collection of the touched document
	EntityID   string            `bson:"entityId" json:"entityId"`                   // id of the touched document
	Details    map[string]string `bson:"details,omitempty" json:"details,omitempty"` // free-form context
	CreatedAt  time.Time         `bson:"createdAt" json:"createdAt"`
}
