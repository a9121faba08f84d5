// Package memstore keeps every repository in process memory. It backs
// STORE_DRIVER=memory and the service tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"skillnaav/internal/common"
)

type Store struct {
	mu            sync.RWMutex
	seq           int64
	notifications map[string]*entry[common.Notification]
	savedJobs     map[string]*entry[common.SavedJob]
	savedPairs    map[string]string
	offers        map[string]*entry[common.Offer]
	postings      map[string]*common.Posting
}

// entry remembers insertion order so equal timestamps still sort newest first.
type entry[T any] struct {
	seq   int64
	value T
}

func New() *Store {
	return &Store{
		notifications: make(map[string]*entry[common.Notification]),
		savedJobs:     make(map[string]*entry[common.SavedJob]),
		savedPairs:    make(map[string]string),
		offers:        make(map[string]*entry[common.Offer]),
		postings:      make(map[string]*common.Posting),
	}
}

func (s *Store) Stores() *common.Stores {
	return &common.Stores{
		Notifications: NewNotificationRepository(s),
		SavedJobs:     NewSavedJobRepository(s),
		Offers:        NewOfferRepository(s),
		Postings:      NewPostingRepository(s),
		Close:         func(context.Context) error { return nil },
	}
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

func pairKey(userID, jobID string) string {
	return userID + "/" + jobID
}

type notificationRepository struct{ s *Store }

func NewNotificationRepository(s *Store) common.NotificationRepository {
	return &notificationRepository{s: s}
}

func (r *notificationRepository) Create(ctx context.Context, n *common.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if n.ID == "" {
		n.ID = common.NewID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	r.s.notifications[n.ID] = &entry[common.Notification]{seq: r.s.next(), value: *n}
	return nil
}

func (r *notificationRepository) ByID(ctx context.Context, id string) (*common.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.notifications[id]
	if !ok {
		return nil, common.NotFound("Notification not found")
	}
	n := e.value
	return &n, nil
}

func (r *notificationRepository) ByStudentID(ctx context.Context, studentID string) ([]*common.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matches := make([]*entry[common.Notification], 0)
	for _, e := range r.s.notifications {
		if e.value.StudentID == studentID {
			matches = append(matches, e)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if !a.value.CreatedAt.Equal(b.value.CreatedAt) {
			return a.value.CreatedAt.After(b.value.CreatedAt)
		}
		return a.seq > b.seq
	})

	out := make([]*common.Notification, len(matches))
	for i, e := range matches {
		n := e.value
		out[i] = &n
	}
	return out, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id string) (*common.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.notifications[id]
	if !ok {
		return nil, common.NotFound("Notification not found")
	}
	e.value.IsRead = true
	n := e.value
	return &n, nil
}

func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.notifications[id]; !ok {
		return common.NotFound("Notification not found")
	}
	delete(r.s.notifications, id)
	return nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context, studentID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, e := range r.s.notifications {
		if e.value.StudentID == studentID && !e.value.IsRead {
			count++
		}
	}
	return count, nil
}

type savedJobRepository struct{ s *Store }

func NewSavedJobRepository(s *Store) common.SavedJobRepository {
	return &savedJobRepository{s: s}
}

func (r *savedJobRepository) Create(ctx context.Context, sj *common.SavedJob) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey(sj.UserID, sj.JobID)
	if _, taken := r.s.savedPairs[key]; taken {
		return common.AlreadyExists("Job already saved")
	}
	if sj.ID == "" {
		sj.ID = common.NewID()
	}
	now := time.Now().UTC()
	if sj.CreatedAt.IsZero() {
		sj.CreatedAt = now
	}
	sj.UpdatedAt = sj.CreatedAt
	r.s.savedPairs[key] = sj.ID
	r.s.savedJobs[sj.ID] = &entry[common.SavedJob]{seq: r.s.next(), value: *sj}
	return nil
}

func (r *savedJobRepository) ByUserID(ctx context.Context, userID string) ([]*common.SavedJob, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matches := make([]*entry[common.SavedJob], 0)
	for _, e := range r.s.savedJobs {
		if e.value.UserID == userID {
			matches = append(matches, e)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].seq > matches[j].seq })

	out := make([]*common.SavedJob, len(matches))
	for i, e := range matches {
		sj := e.value
		out[i] = &sj
	}
	return out, nil
}

func (r *savedJobRepository) DeleteByPair(ctx context.Context, userID, jobID string) (*common.SavedJob, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey(userID, jobID)
	id, ok := r.s.savedPairs[key]
	if !ok {
		return nil, common.NotFound("Saved job not found")
	}
	e := r.s.savedJobs[id]
	delete(r.s.savedPairs, key)
	delete(r.s.savedJobs, id)
	sj := e.value
	return &sj, nil
}

type offerRepository struct{ s *Store }

func NewOfferRepository(s *Store) common.OfferRepository {
	return &offerRepository{s: s}
}

func (r *offerRepository) Create(ctx context.Context, o *common.Offer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if o.ID == "" {
		o.ID = common.NewID()
	}
	if o.SentDate.IsZero() {
		o.SentDate = time.Now().UTC()
	}
	stored := *o
	stored.Qualifications = append([]string(nil), o.Qualifications...)
	r.s.offers[o.ID] = &entry[common.Offer]{seq: r.s.next(), value: stored}
	return nil
}

func (r *offerRepository) ByID(ctx context.Context, id string) (*common.Offer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.offers[id]
	if !ok {
		return nil, common.NotFound("Offer letter not found")
	}
	o := e.value
	return &o, nil
}

func (r *offerRepository) ByStudentID(ctx context.Context, studentID string) ([]*common.Offer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matches := make([]*entry[common.Offer], 0)
	for _, e := range r.s.offers {
		if e.value.StudentID == studentID {
			matches = append(matches, e)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if !a.value.SentDate.Equal(b.value.SentDate) {
			return a.value.SentDate.After(b.value.SentDate)
		}
		return a.seq > b.seq
	})

	out := make([]*common.Offer, len(matches))
	for i, e := range matches {
		o := e.value
		out[i] = &o
	}
	return out, nil
}

func (r *offerRepository) TransitionStatus(ctx context.Context, id string, from, to common.OfferStatus, at time.Time) (*common.Offer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.offers[id]
	if !ok {
		return nil, common.NotFound("Offer letter not found")
	}
	if e.value.Status != from {
		return nil, common.InvalidTransition("offer is already %s", e.value.Status)
	}
	e.value.Status = to
	respondedAt := at
	e.value.RespondedAt = &respondedAt
	o := e.value
	return &o, nil
}

type postingRepository struct{ s *Store }

func NewPostingRepository(s *Store) common.PostingRepository {
	return &postingRepository{s: s}
}

func (r *postingRepository) Create(ctx context.Context, p *common.Posting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p.ID == "" {
		p.ID = common.NewID()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	stored := *p
	r.s.postings[p.ID] = &stored
	return nil
}

func (r *postingRepository) ByID(ctx context.Context, id string) (*common.Posting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.postings[id]
	if !ok {
		return nil, common.NotFound("Internship posting not found")
	}
	out := *p
	return &out, nil
}

func (r *postingRepository) ByIDs(ctx context.Context, ids []string) (map[string]*common.Posting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(map[string]*common.Posting, len(ids))
	for _, id := range ids {
		if p, ok := r.s.postings[id]; ok {
			cp := *p
			out[id] = &cp
		}
	}
	return out, nil
}
