package dbsql

import (
	"time"

	"skillnaav/internal/common"
)

type Notification struct {
	ID        string     `gorm:"primaryKey;size:24"`
	StudentID string     `gorm:"not null;size:24;index:idx_notifications_student_created,priority:1"`
	Title     string     `gorm:"not null;size:255"`
	Message   string     `gorm:"not null;type:text"`
	Link      *string    `gorm:"size:512"`
	IsRead    bool       `gorm:"not null"`
	CreatedAt time.Time  `gorm:"index:idx_notifications_student_created,priority:2"`
	DeletedAt *time.Time // dormant; deletes are hard
}

func (n *Notification) toDomain() *common.Notification {
	return &common.Notification{
		ID:        n.ID,
		StudentID: n.StudentID,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
		DeletedAt: n.DeletedAt,
	}
}

type SavedJob struct {
	ID        string    `gorm:"primaryKey;size:24"`
	UserID    string    `gorm:"not null;size:24;uniqueIndex:idx_saved_jobs_user_job,priority:1"`
	JobID     string    `gorm:"not null;size:24;uniqueIndex:idx_saved_jobs_user_job,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (s *SavedJob) toDomain() *common.SavedJob {
	return &common.SavedJob{
		ID:        s.ID,
		UserID:    s.UserID,
		JobID:     s.JobID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

type Compensation struct {
	Type      string   `gorm:"size:20"`
	Amount    float64
	Currency  string   `gorm:"size:10"`
	Frequency string   `gorm:"size:20"`
	Benefits  []string `gorm:"serializer:json;type:text"`
}

type Contact struct {
	Name  string `gorm:"size:255"`
	Email string `gorm:"size:255"`
	Phone string `gorm:"size:50"`
}

type OfferLetter struct {
	ID             string       `gorm:"primaryKey;size:24"`
	StudentID      string       `gorm:"not null;size:24;index"`
	InternshipID   string       `gorm:"not null;size:24;index"`
	PartnerID      string       `gorm:"size:24"`
	Name           string       `gorm:"not null;size:255"`
	Email          string       `gorm:"not null;size:255"`
	Position       string       `gorm:"not null;size:255"`
	StartDate      time.Time    `gorm:"not null"`
	CompanyName    string       `gorm:"size:255"`
	Location       string       `gorm:"size:255"`
	Duration       string       `gorm:"size:100"`
	JobDescription string       `gorm:"type:text"`
	Stipend        Compensation `gorm:"embedded;embeddedPrefix:stipend_"`
	Qualifications []string     `gorm:"serializer:json;type:text"`
	Contact        Contact      `gorm:"embedded;embeddedPrefix:contact_"`
	Status         string       `gorm:"not null;size:20;index"`
	SentDate       time.Time    `gorm:"not null"`
	RespondedAt    *time.Time
	S3URL          string `gorm:"column:s3_url;size:1024"`
}

func offerLetterFrom(o *common.Offer) *OfferLetter {
	return &OfferLetter{
		ID:             o.ID,
		StudentID:      o.StudentID,
		InternshipID:   o.InternshipID,
		PartnerID:      o.PartnerID,
		Name:           o.Name,
		Email:          o.Email,
		Position:       o.Position,
		StartDate:      o.StartDate,
		CompanyName:    o.CompanyName,
		Location:       o.Location,
		Duration:       o.Duration,
		JobDescription: o.JobDescription,
		Stipend:        Compensation(o.Stipend),
		Qualifications: o.Qualifications,
		Contact:        Contact(o.Contact),
		Status:         string(o.Status),
		SentDate:       o.SentDate,
		RespondedAt:    o.RespondedAt,
		S3URL:          o.DocumentURL,
	}
}

func (o *OfferLetter) toDomain() *common.Offer {
	return &common.Offer{
		ID:             o.ID,
		StudentID:      o.StudentID,
		InternshipID:   o.InternshipID,
		PartnerID:      o.PartnerID,
		Name:           o.Name,
		Email:          o.Email,
		Position:       o.Position,
		StartDate:      o.StartDate,
		CompanyName:    o.CompanyName,
		Location:       o.Location,
		Duration:       o.Duration,
		JobDescription: o.JobDescription,
		Stipend:        common.Compensation(o.Stipend),
		Qualifications: o.Qualifications,
		Contact:        common.ContactInfo(o.Contact),
		Status:         common.OfferStatus(o.Status),
		SentDate:       o.SentDate,
		RespondedAt:    o.RespondedAt,
		DocumentURL:    o.S3URL,
	}
}

type InternshipPosting struct {
	ID                  string       `gorm:"primaryKey;size:24"`
	PartnerID           string       `gorm:"size:24;index"`
	JobTitle            string       `gorm:"not null;size:255"`
	CompanyName         string       `gorm:"not null;size:255"`
	Location            string       `gorm:"size:255"`
	JobDescription      string       `gorm:"type:text"`
	StartDate           time.Time
	Duration            string       `gorm:"size:100"`
	InternshipType      string       `gorm:"size:20"`
	CompensationDetails Compensation `gorm:"embedded;embeddedPrefix:compensation_"`
	Qualifications      []string     `gorm:"serializer:json;type:text"`
	ContactInfo         Contact      `gorm:"embedded;embeddedPrefix:contact_"`
	ImgURL              string       `gorm:"column:img_url;size:1024"`
	AdminApproved       bool
	Deleted             bool
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

func (p *InternshipPosting) toDomain() *common.Posting {
	return &common.Posting{
		ID:             p.ID,
		PartnerID:      p.PartnerID,
		JobTitle:       p.JobTitle,
		CompanyName:    p.CompanyName,
		Location:       p.Location,
		JobDescription: p.JobDescription,
		StartDate:      p.StartDate,
		Duration:       p.Duration,
		InternshipType: p.InternshipType,
		Compensation:   common.Compensation(p.CompensationDetails),
		Qualifications: p.Qualifications,
		Contact:        common.ContactInfo(p.ContactInfo),
		ImgURL:         p.ImgURL,
		AdminApproved:  p.AdminApproved,
		Deleted:        p.Deleted,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
