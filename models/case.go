package models

import "time"

// CaseStatus is the lifecycle state of a legal case.
type CaseStatus string

const (
	CaseRunning   CaseStatus = "RUNNING"
	CaseAbandoned CaseStatus = "ABANDONED"
	CaseDecided   CaseStatus = "DECIDED"
)

// Valid reports whether s is a known case status.
func (s CaseStatus) Valid() bool {
	switch s {
	case CaseRunning, CaseAbandoned, CaseDecided:
		return true
	}
	return false
}

// Case is a matter handled by a single lawyer.
type Case struct {
	ID          string     `bson:"id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	CaseNumber  string     `bson:"caseNumber" json:"caseNumber"`
	CaseStatus  CaseStatus `bson:"caseStatus" json:"caseStatus"`
	NextHearing string     `bson:"nextHearing,omitempty" json:"nextHearing,omitempty"` // YYYY-MM-DD, empty when not scheduled
	Court       string     `bson:"court,omitempty" json:"court,omitempty"`
	Lawyer      LawyerRef  `bson:"lawyer" json:"lawyer"`
	Client      ClientRef  `bson:"client" json:"client"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}
