package common

import (
	"context"
	"time"
)

type Observer interface {
	Update(event NotificationEvent) error
	Name() string
}

type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	Notify(event NotificationEvent)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	ByID(ctx context.Context, id string) (*Notification, error)
	ByStudentID(ctx context.Context, studentID string) ([]*Notification, error)
	MarkAsRead(ctx context.Context, id string) (*Notification, error)
	Delete(ctx context.Context, id string) error
	UnreadCount(ctx context.Context, studentID string) (int64, error)
}

// SavedJobRepository must enforce (userId, jobId) uniqueness in storage;
// Create returns ErrAlreadyExists when the pair is taken.
type SavedJobRepository interface {
	Create(ctx context.Context, savedJob *SavedJob) error
	ByUserID(ctx context.Context, userID string) ([]*SavedJob, error)
	DeleteByPair(ctx context.Context, userID, jobID string) (*SavedJob, error)
}

type OfferRepository interface {
	Create(ctx context.Context, offer *Offer) error
	ByID(ctx context.Context, id string) (*Offer, error)
	ByStudentID(ctx context.Context, studentID string) ([]*Offer, error)
	// TransitionStatus moves an offer from one status to another only when
	// its stored status still equals from. It returns ErrNotFound for an
	// unknown id and ErrInvalidTransition when the status has moved on.
	TransitionStatus(ctx context.Context, id string, from, to OfferStatus, at time.Time) (*Offer, error)
}

type PostingRepository interface {
	Create(ctx context.Context, posting *Posting) error
	ByID(ctx context.Context, id string) (*Posting, error)
	ByIDs(ctx context.Context, ids []string) (map[string]*Posting, error)
}

// Stores groups the repositories a backend provides.
type Stores struct {
	Notifications NotificationRepository
	SavedJobs     SavedJobRepository
	Offers        OfferRepository
	Postings      PostingRepository
	Close         func(ctx context.Context) error
}

type EmailService interface {
	SendEmail(to, subject, body string) error
}
