// Package offer owns the offer letter state machine: Sent moves to
// Accepted or Rejected once and never changes again.
package offer

import (
	"context"
	"log"
	"strings"
	"time"

	"skillnaav/internal/common"
)

// PostingSource must read through to the store: an offer snapshots the
// posting as it is at issue time.
type PostingSource interface {
	Fresh(ctx context.Context, id string) (*common.Posting, error)
}

// Notifier raises the notifications tied to offer events.
type Notifier interface {
	SendOfferSent(ctx context.Context, offer *common.Offer) (*common.Notification, error)
	SendOfferResponse(ctx context.Context, offer *common.Offer) (*common.Notification, error)
}

type IssueRequest struct {
	StudentID    string `json:"student_id" validate:"required"`
	InternshipID string `json:"internshipId" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Position     string `json:"position" validate:"required"`
	StartDate    string `json:"startDate" validate:"required"`
	DocumentURL  string `json:"downloadUrl" validate:"omitempty,url"`
}

type Manager struct {
	offers   common.OfferRepository
	postings PostingSource
	notifier Notifier
	now      func() time.Time
}

func NewManager(offers common.OfferRepository, postings PostingSource, notifier Notifier) *Manager {
	return &Manager{
		offers:   offers,
		postings: postings,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Issue stores a Sent offer carrying a snapshot of the posting and tells
// the student about it. A failed notification does not undo the offer.
func (m *Manager) Issue(ctx context.Context, req IssueRequest) (*common.Offer, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := common.RequireIDs("studentId", req.StudentID, "internshipId", req.InternshipID); err != nil {
		return nil, err
	}
	start, err := parseStartDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	p, err := m.postings.Fresh(ctx, req.InternshipID)
	if err != nil {
		return nil, err
	}
	if p.PartnerID != "" {
		if err := common.CheckCaller(ctx, p.PartnerID); err != nil {
			return nil, err
		}
	}

	offer := &common.Offer{
		StudentID:      req.StudentID,
		InternshipID:   req.InternshipID,
		PartnerID:      p.PartnerID,
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		Position:       strings.TrimSpace(req.Position),
		StartDate:      start,
		CompanyName:    p.CompanyName,
		Location:       p.Location,
		Duration:       p.Duration,
		JobDescription: p.JobDescription,
		Stipend:        p.Compensation,
		Qualifications: append([]string{}, p.Qualifications...),
		Contact:        p.Contact,
		Status:         common.OfferStatusSent,
		SentDate:       m.now(),
		DocumentURL:    req.DocumentURL,
	}
	offer.Stipend.Benefits = append([]string(nil), p.Compensation.Benefits...)

	if err := m.offers.Create(ctx, offer); err != nil {
		log.Printf("Failed to create offer letter: %v", err)
		return nil, err
	}

	if _, err := m.notifier.SendOfferSent(ctx, offer); err != nil {
		log.Printf("Failed to send offer notification for %s: %v", offer.ID, err)
	}
	return offer, nil
}

// RecordResponse applies the student's decision with a conditional update
// on status Sent, then informs the partner.
func (m *Manager) RecordResponse(ctx context.Context, offerID, status string) (*common.Offer, error) {
	if err := common.RequireIDs("offerId", offerID); err != nil {
		return nil, err
	}
	to, err := common.ParseOfferResponse(status)
	if err != nil {
		return nil, err
	}
	if id, ok := common.IdentityFromContext(ctx); ok && !id.IsAdmin() {
		current, err := m.offers.ByID(ctx, offerID)
		if err != nil {
			return nil, err
		}
		if err := common.CheckCaller(ctx, current.StudentID); err != nil {
			return nil, err
		}
	}

	updated, err := m.offers.TransitionStatus(ctx, offerID, common.OfferStatusSent, to, m.now())
	if err != nil {
		return nil, err
	}

	if _, err := m.notifier.SendOfferResponse(ctx, updated); err != nil {
		log.Printf("Failed to send offer response notification for %s: %v", updated.ID, err)
	}
	return updated, nil
}

// Get returns an offer to its student, its partner or an admin.
func (m *Manager) Get(ctx context.Context, offerID string) (*common.Offer, error) {
	if err := common.RequireIDs("offerId", offerID); err != nil {
		return nil, err
	}
	offer, err := m.offers.ByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if common.CheckCaller(ctx, offer.StudentID) != nil && common.CheckCaller(ctx, offer.PartnerID) != nil {
		return nil, common.ErrPermissionDenied
	}
	return offer, nil
}

func (m *Manager) ListByStudent(ctx context.Context, studentID string) ([]*common.Offer, error) {
	if err := common.RequireIDs("studentId", studentID); err != nil {
		return nil, err
	}
	if err := common.CheckCaller(ctx, studentID); err != nil {
		return nil, err
	}

	offers, err := m.offers.ByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if offers == nil {
		offers = []*common.Offer{}
	}
	return offers, nil
}

func parseStartDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, common.InvalidArgument("invalid startDate %q", value)
}
