// Package savedjob keeps the unique (student, job) bookmarks.
package savedjob

import (
	"context"
	"log"

	"skillnaav/internal/common"
)

// PostingReader resolves posting ids for the saved-jobs listing.
type PostingReader interface {
	ByIDs(ctx context.Context, ids []string) (map[string]*common.Posting, error)
}

type Registry struct {
	repo     common.SavedJobRepository
	postings PostingReader
}

func NewRegistry(repo common.SavedJobRepository, postings PostingReader) *Registry {
	return &Registry{
		repo:     repo,
		postings: postings,
	}
}

// Save records the pair. The store's unique constraint decides concurrent
// saves, so the loser gets ErrAlreadyExists.
func (r *Registry) Save(ctx context.Context, userID, jobID string) (*common.SavedJob, error) {
	if err := common.RequireIDs("userId", userID, "jobId", jobID); err != nil {
		return nil, err
	}
	if err := common.CheckCaller(ctx, userID); err != nil {
		return nil, err
	}

	sj := &common.SavedJob{UserID: userID, JobID: jobID}
	if err := r.repo.Create(ctx, sj); err != nil {
		if common.KindOf(err) != common.KindAlreadyExists {
			log.Printf("Failed to save job: %v", err)
		}
		return nil, err
	}
	return sj, nil
}

// ListByUser returns the user's saved jobs newest first, each joined with
// its posting. Postings that no longer exist leave Job nil.
func (r *Registry) ListByUser(ctx context.Context, userID string) ([]*common.SavedJobDetail, error) {
	if err := common.RequireIDs("userId", userID); err != nil {
		return nil, err
	}
	if err := common.CheckCaller(ctx, userID); err != nil {
		return nil, err
	}

	saved, err := r.repo.ByUserID(ctx, userID)
	if err != nil {
		log.Printf("Failed to fetch saved jobs: %v", err)
		return nil, err
	}

	out := make([]*common.SavedJobDetail, 0, len(saved))
	if len(saved) == 0 {
		return out, nil
	}

	ids := make([]string, len(saved))
	for i, sj := range saved {
		ids[i] = sj.JobID
	}
	postings, err := r.postings.ByIDs(ctx, ids)
	if err != nil {
		log.Printf("Failed to fetch postings for saved jobs: %v", err)
		return nil, err
	}

	for _, sj := range saved {
		out = append(out, &common.SavedJobDetail{
			SavedJob: *sj,
			Job:      postings[sj.JobID],
		})
	}
	return out, nil
}

// Remove deletes the pair and returns the record that was removed.
func (r *Registry) Remove(ctx context.Context, userID, jobID string) (*common.SavedJob, error) {
	if err := common.RequireIDs("userId", userID, "jobId", jobID); err != nil {
		return nil, err
	}
	if err := common.CheckCaller(ctx, userID); err != nil {
		return nil, err
	}
	return r.repo.DeleteByPair(ctx, userID, jobID)
}
