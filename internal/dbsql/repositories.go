package dbsql

import (
	"context"
	"errors"
	"time"

	"skillnaav/internal/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) common.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *common.Notification) error {
	if n.ID == "" {
		n.ID = common.NewID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	row := &Notification{
		ID:        n.ID,
		StudentID: n.StudentID,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return storeError("create notification", err)
	}
	return nil
}

func (r *notificationRepository) ByID(ctx context.Context, id string) (*common.Notification, error) {
	var row Notification
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFound("Notification not found")
		}
		return nil, storeError("get notification", err)
	}
	return row.toDomain(), nil
}

func (r *notificationRepository) ByStudentID(ctx context.Context, studentID string) ([]*common.Notification, error) {
	var rows []*Notification
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, storeError("list notifications", err)
	}

	out := make([]*common.Notification, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// MarkAsRead updates without looking at RowsAffected, since MySQL reports
// zero for a row that was already read, then reads the row back.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id string) (*common.Notification, error) {
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
	if err != nil {
		return nil, storeError("mark notification read", err)
	}
	return r.ByID(ctx, id)
}

func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&Notification{}, "id = ?", id)
	if result.Error != nil {
		return storeError("delete notification", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.NotFound("Notification not found")
	}
	return nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context, studentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("student_id = ? AND is_read = ?", studentID, false).
		Count(&count).Error
	if err != nil {
		return 0, storeError("count unread notifications", err)
	}
	return count, nil
}

type savedJobRepository struct {
	db *gorm.DB
}

func NewSavedJobRepository(db *gorm.DB) common.SavedJobRepository {
	return &savedJobRepository{db: db}
}

func (r *savedJobRepository) Create(ctx context.Context, sj *common.SavedJob) error {
	row := &SavedJob{
		ID:     sj.ID,
		UserID: sj.UserID,
		JobID:  sj.JobID,
	}
	if row.ID == "" {
		row.ID = common.NewID()
	}

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isDuplicateKey(err) {
			return common.WrapError(common.KindAlreadyExists, "Job already saved", err)
		}
		return storeError("save job", err)
	}
	*sj = *row.toDomain()
	return nil
}

func (r *savedJobRepository) ByUserID(ctx context.Context, userID string) ([]*common.SavedJob, error) {
	var rows []*SavedJob
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, storeError("list saved jobs", err)
	}

	out := make([]*common.SavedJob, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// DeleteByPair locks the row, deletes it and returns what was removed in
// one transaction.
func (r *savedJobRepository) DeleteByPair(ctx context.Context, userID, jobID string) (*common.SavedJob, error) {
	var row SavedJob
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND job_id = ?", userID, jobID).
			First(&row).Error; err != nil {
			return err
		}
		return tx.Delete(&SavedJob{}, "id = ?", row.ID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFound("Saved job not found")
		}
		return nil, storeError("remove saved job", err)
	}
	return row.toDomain(), nil
}

type offerRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) common.OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) Create(ctx context.Context, o *common.Offer) error {
	if o.ID == "" {
		o.ID = common.NewID()
	}
	if o.SentDate.IsZero() {
		o.SentDate = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(offerLetterFrom(o)).Error; err != nil {
		return storeError("create offer letter", err)
	}
	return nil
}

func (r *offerRepository) ByID(ctx context.Context, id string) (*common.Offer, error) {
	var row OfferLetter
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFound("Offer letter not found")
		}
		return nil, storeError("get offer letter", err)
	}
	return row.toDomain(), nil
}

func (r *offerRepository) ByStudentID(ctx context.Context, studentID string) ([]*common.Offer, error) {
	var rows []*OfferLetter
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("sent_date DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, storeError("list offer letters", err)
	}

	out := make([]*common.Offer, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// TransitionStatus issues UPDATE ... WHERE id = ? AND status = ?. Zero rows
// means the offer is missing or no longer in the from state.
func (r *offerRepository) TransitionStatus(ctx context.Context, id string, from, to common.OfferStatus, at time.Time) (*common.Offer, error) {
	result := r.db.WithContext(ctx).
		Model(&OfferLetter{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":       string(to),
			"responded_at": at,
		})
	if result.Error != nil {
		return nil, storeError("update offer status", result.Error)
	}

	current, err := r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 {
		return nil, common.InvalidTransition("offer is already %s", current.Status)
	}
	return current, nil
}

type postingRepository struct {
	db *gorm.DB
}

func NewPostingRepository(db *gorm.DB) common.PostingRepository {
	return &postingRepository{db: db}
}

func (r *postingRepository) Create(ctx context.Context, p *common.Posting) error {
	if p.ID == "" {
		p.ID = common.NewID()
	}
	row := &InternshipPosting{
		ID:                  p.ID,
		PartnerID:           p.PartnerID,
		JobTitle:            p.JobTitle,
		CompanyName:         p.CompanyName,
		Location:            p.Location,
		JobDescription:      p.JobDescription,
		StartDate:           p.StartDate,
		Duration:            p.Duration,
		InternshipType:      p.InternshipType,
		CompensationDetails: Compensation(p.Compensation),
		Qualifications:      p.Qualifications,
		ContactInfo:         Contact(p.Contact),
		ImgURL:              p.ImgURL,
		AdminApproved:       p.AdminApproved,
		Deleted:             p.Deleted,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return storeError("create posting", err)
	}
	p.CreatedAt, p.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return nil
}

func (r *postingRepository) ByID(ctx context.Context, id string) (*common.Posting, error) {
	var row InternshipPosting
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFound("Internship posting not found")
		}
		return nil, storeError("get posting", err)
	}
	return row.toDomain(), nil
}

func (r *postingRepository) ByIDs(ctx context.Context, ids []string) (map[string]*common.Posting, error) {
	out := make(map[string]*common.Posting, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []*InternshipPosting
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, storeError("list postings", err)
	}
	for _, row := range rows {
		out[row.ID] = row.toDomain()
	}
	return out, nil
}
