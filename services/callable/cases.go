package callable

import (
	"context"
	"strings"
	"time"

	"lexdesk/database"
	"lexdesk/models"
	"lexdesk/utils"

	"github.com/google/uuid"
)

// CreateCaseRequest is the create-case payload.
type CreateCaseRequest struct {
	Title       string            `json:"title"`
	CaseNumber  string            `json:"caseNumber"`
	CaseStatus  models.CaseStatus `json:"caseStatus"`
	NextHearing string            `json:"nextHearing"`
	Court       string            `json:"court"`
	LawyerID    string            `json:"lawyerId"`
	Client      models.ClientRef  `json:"client"`
}

// CreateCase opens a case for one lawyer. Status defaults to RUNNING.
func (s *Service) CreateCase(ctx context.Context, caller Caller, req CreateCaseRequest) (*models.Case, error) {
	if !caller.Role.CanManageMatters() {
		return nil, Errorf(PermissionDenied, "role %s cannot create cases", caller.Role)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, Errorf(InvalidArgument, "title is required")
	}
	status := req.CaseStatus
	if status == "" {
		status = models.CaseRunning
	}
	if !status.Valid() {
		return nil, Errorf(InvalidArgument, "unknown caseStatus %q", req.CaseStatus)
	}
	if req.NextHearing != "" {
		if _, err := time.Parse(utils.DateLayout, req.NextHearing); err != nil {
			return nil, Errorf(InvalidArgument, "nextHearing must be YYYY-MM-DD")
		}
	}
	if req.LawyerID == "" {
		return nil, Errorf(InvalidArgument, "lawyerId is required")
	}

	lawyer, err := s.lawyerRef(ctx, req.LawyerID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	c := &models.Case{
		ID:          uuid.New().String(),
		Title:       title,
		CaseNumber:  strings.TrimSpace(req.CaseNumber),
		CaseStatus:  status,
		NextHearing: req.NextHearing,
		Court:       strings.TrimSpace(req.Court),
		Lawyer:      lawyer,
		Client:      req.Client,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.cases.Create(ctx, c); err != nil {
		return nil, wrapInternal("failed to create case", err)
	}
	s.audit.Record(ctx, "case.create", caller.UID, database.CasesCollection, c.ID, map[string]string{
		"title":      title,
		"caseNumber": c.CaseNumber,
	})
	return c, nil
}
