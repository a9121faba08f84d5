// Package notif owns notification records: the Dispatcher raises them and
// NotificationService serves a student's inbox.
package notif

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"

	"skillnaav/internal/common"
)

// Request describes a notification to raise for a student.
type Request struct {
	Type      common.NotificationType
	StudentID string
	Title     string
	Message   string
	Link      string
	Metadata  common.NotificationMetadata
}

// Dispatcher is the single entry point that writes notifications. Every
// workflow goes through it so field validation happens in one place.
type Dispatcher struct {
	repo    common.NotificationRepository
	subject common.Subject
}

// NewDispatcher wires the store and an optional side-channel subject.
func NewDispatcher(repo common.NotificationRepository, subject common.Subject) *Dispatcher {
	return &Dispatcher{
		repo:    repo,
		subject: subject,
	}
}

// Notify persists an unread notification for studentID.
func (d *Dispatcher) Notify(ctx context.Context, studentID, title, message string, link *string) (*common.Notification, error) {
	req := Request{
		Type:      common.SystemType,
		StudentID: studentID,
		Title:     title,
		Message:   message,
	}
	if link != nil {
		req.Link = *link
	}
	return d.Dispatch(ctx, req)
}

func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*common.Notification, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	n := &common.Notification{
		StudentID: req.StudentID,
		Title:     req.Title,
		Message:   req.Message,
	}
	if link := strings.TrimSpace(req.Link); link != "" {
		n.Link = &link
	}

	if err := d.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	log.Printf("Notification sent: type=%s, student=%s", req.Type, req.StudentID)

	if d.subject != nil {
		d.subject.Notify(common.NotificationEvent{
			Type:           req.Type,
			NotificationID: n.ID,
			StudentID:      n.StudentID,
			Title:          n.Title,
			Message:        n.Message,
			Link:           n.Link,
			CreatedAt:      n.CreatedAt,
			Metadata:       req.Metadata,
		})
	}
	return n, nil
}

// SendOfferSent tells the student an offer letter is waiting for them.
func (d *Dispatcher) SendOfferSent(ctx context.Context, offer *common.Offer) (*common.Notification, error) {
	name := html.EscapeString(offer.Name)
	body := fmt.Sprintf("Hi %s, your offer letter for &quot;%s&quot; is ready.", name, html.EscapeString(offer.Position))
	if offer.DocumentURL != "" {
		body = fmt.Sprintf(`Hi %s, <a href="%s">download your offer letter</a>.`, name, html.EscapeString(offer.DocumentURL))
	}

	return d.Dispatch(ctx, Request{
		Type:      common.OfferSentType,
		StudentID: offer.StudentID,
		Title:     "Offer Letter Sent!",
		Message:   fmt.Sprintf("Congratulations %s, your offer for %q is live.", offer.Name, offer.Position),
		Link:      offer.DocumentURL,
		Metadata: common.NotificationMetadata{
			"offer_id":       offer.ID,
			MetaEmail:        offer.Email,
			MetaEmailSubject: "Your SkillNaav Offer Letter",
			MetaEmailBody:    body,
		},
	})
}

// SendOfferResponse informs the partner that owns the posting of the
// student's decision. Offers without a partner notify the student instead.
func (d *Dispatcher) SendOfferResponse(ctx context.Context, offer *common.Offer) (*common.Notification, error) {
	recipient := offer.PartnerID
	if recipient == "" {
		recipient = offer.StudentID
	}
	decision := strings.ToLower(offer.Status.String())

	return d.Dispatch(ctx, Request{
		Type:      common.OfferResponseType,
		StudentID: recipient,
		Title:     "Offer " + offer.Status.String(),
		Message:   fmt.Sprintf("%s has %s the offer for %q.", offer.Name, decision, offer.Position),
		Metadata: common.NotificationMetadata{
			"offer_id":   offer.ID,
			"student_id": offer.StudentID,
			"status":     offer.Status.String(),
		},
	})
}

// SendApplicationStatus reports a change on one of the student's
// applications. email is optional.
func (d *Dispatcher) SendApplicationStatus(ctx context.Context, studentID, jobTitle, status, email string) (*common.Notification, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, common.Validation("status is required")
	}

	return d.Dispatch(ctx, Request{
		Type:      common.ApplicationStatusType,
		StudentID: studentID,
		Title:     "Application " + status,
		Message:   fmt.Sprintf("Your application for %q is now %s.", jobTitle, strings.ToLower(status)),
		Metadata: common.NotificationMetadata{
			"status":  status,
			MetaEmail: email,
		},
	})
}

// validateRequest reports missing fields first, then a malformed student id.
func validateRequest(req Request) error {
	var missing []string
	if strings.TrimSpace(req.StudentID) == "" {
		missing = append(missing, "studentId")
	}
	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(req.Message) == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return common.Validation("%s required", strings.Join(missing, ", "))
	}
	return common.RequireIDs("studentId", req.StudentID)
}

type NotificationService struct {
	repo common.NotificationRepository
}

func NewNotificationService(repo common.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// ListByStudent returns the student's notifications newest first.
func (s *NotificationService) ListByStudent(ctx context.Context, studentID string) ([]*common.Notification, error) {
	if err := common.RequireIDs("studentId", studentID); err != nil {
		return nil, err
	}
	if err := common.CheckCaller(ctx, studentID); err != nil {
		return nil, err
	}

	list, err := s.repo.ByStudentID(ctx, studentID)
	if err != nil {
		log.Printf("Failed to list notifications: %v", err)
		return nil, err
	}
	if list == nil {
		list = []*common.Notification{}
	}
	return list, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, notificationID string) (*common.Notification, error) {
	if err := common.RequireIDs("notificationId", notificationID); err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, notificationID); err != nil {
		return nil, err
	}
	return s.repo.MarkAsRead(ctx, notificationID)
}

func (s *NotificationService) Delete(ctx context.Context, notificationID string) error {
	if err := common.RequireIDs("notificationId", notificationID); err != nil {
		return err
	}
	if err := s.checkOwner(ctx, notificationID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, notificationID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, studentID string) (int64, error) {
	if err := common.RequireIDs("studentId", studentID); err != nil {
		return 0, err
	}
	if err := common.CheckCaller(ctx, studentID); err != nil {
		return 0, err
	}
	return s.repo.UnreadCount(ctx, studentID)
}

// checkOwner loads the notification only when a non-admin caller is known.
func (s *NotificationService) checkOwner(ctx context.Context, notificationID string) error {
	id, ok := common.IdentityFromContext(ctx)
	if !ok || id.IsAdmin() {
		return nil
	}
	n, err := s.repo.ByID(ctx, notificationID)
	if err != nil {
		return err
	}
	return common.CheckCaller(ctx, n.StudentID)
}
