package common

import (
	"strings"
	"time"
)

// OfferStatus is the state of an offer letter. Sent is the only
// non-terminal state.
type OfferStatus string

const (
	OfferStatusSent     OfferStatus = "Sent"
	OfferStatusAccepted OfferStatus = "Accepted"
	OfferStatusRejected OfferStatus = "Rejected"
)

func (s OfferStatus) String() string {
	return string(s)
}

func (s OfferStatus) IsValid() bool {
	return s == OfferStatusSent || s == OfferStatusAccepted || s == OfferStatusRejected
}

func (s OfferStatus) IsTerminal() bool {
	return s == OfferStatusAccepted || s == OfferStatusRejected
}

// ParseOfferResponse accepts the two statuses a student may answer with,
// case-insensitively.
func ParseOfferResponse(value string) (OfferStatus, error) {
	v := strings.TrimSpace(value)
	switch {
	case strings.EqualFold(v, string(OfferStatusAccepted)):
		return OfferStatusAccepted, nil
	case strings.EqualFold(v, string(OfferStatusRejected)):
		return OfferStatusRejected, nil
	}
	return "", InvalidArgument("status must be Accepted or Rejected, got %q", value)
}

type NotificationType string

const (
	OfferSentType         NotificationType = "offer_sent"
	OfferResponseType     NotificationType = "offer_response"
	ApplicationStatusType NotificationType = "application_status"
	SystemType            NotificationType = "system"
)

type NotificationMetadata map[string]interface{}

// NotificationEvent is handed to observers after a notification has been
// persisted.
type NotificationEvent struct {
	Type           NotificationType
	NotificationID string
	StudentID      string
	Title          string
	Message        string
	Link           *string
	CreatedAt      time.Time
	Metadata       NotificationMetadata
}

type Notification struct {
	ID        string     `json:"_id"`
	StudentID string     `json:"studentId"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Link      *string    `json:"link"`
	IsRead    bool       `json:"isRead"`
	CreatedAt time.Time  `json:"createdAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

type SavedJob struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	JobID     string    `json:"jobId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SavedJobDetail is a saved job joined with its posting. Job is nil when
// the posting no longer exists.
type SavedJobDetail struct {
	SavedJob
	Job *Posting `json:"job"`
}

type Compensation struct {
	Type      string   `json:"type"`
	Amount    float64  `json:"amount,omitempty"`
	Currency  string   `json:"currency,omitempty"`
	Frequency string   `json:"frequency,omitempty"`
	Benefits  []string `json:"benefits,omitempty"`
}

type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Posting is the read model of an internship posting owned by a partner.
type Posting struct {
	ID             string       `json:"_id"`
	PartnerID      string       `json:"partnerId"`
	JobTitle       string       `json:"jobTitle"`
	CompanyName    string       `json:"companyName"`
	Location       string       `json:"location"`
	JobDescription string       `json:"jobDescription"`
	StartDate      time.Time    `json:"startDate"`
	Duration       string       `json:"duration"`
	InternshipType string       `json:"internshipType"`
	Compensation   Compensation `json:"compensationDetails"`
	Qualifications []string     `json:"qualifications"`
	Contact        ContactInfo  `json:"contactInfo"`
	ImgURL         string       `json:"imgUrl"`
	AdminApproved  bool         `json:"adminApproved"`
	Deleted        bool         `json:"deleted"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// Offer is an offer letter. Everything below InternshipID is a snapshot
// taken from the posting when the offer was issued.
type Offer struct {
	ID             string       `json:"_id"`
	StudentID      string       `json:"studentId"`
	InternshipID   string       `json:"internshipId"`
	PartnerID      string       `json:"partnerId,omitempty"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Position       string       `json:"position"`
	StartDate      time.Time    `json:"startDate"`
	CompanyName    string       `json:"companyName"`
	Location       string       `json:"location"`
	Duration       string       `json:"duration"`
	JobDescription string       `json:"jobDescription"`
	Stipend        Compensation `json:"stipend"`
	Qualifications []string     `json:"qualifications"`
	Contact        ContactInfo  `json:"contactInfo"`
	Status         OfferStatus  `json:"status"`
	SentDate       time.Time    `json:"sentDate"`
	RespondedAt    *time.Time   `json:"respondedAt,omitempty"`
	DocumentURL    string       `json:"downloadUrl,omitempty"`
}
