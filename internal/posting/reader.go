// Package posting serves internship postings to the offer and saved-job
// workflows through a short-lived in-process cache.
package posting

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"skillnaav/internal/common"
)

type Reader struct {
	repo  common.PostingRepository
	cache *cache.Cache
}

func NewReader(repo common.PostingRepository, ttl, cleanup time.Duration) *Reader {
	return &Reader{
		repo:  repo,
		cache: cache.New(ttl, cleanup),
	}
}

func (r *Reader) Create(ctx context.Context, p *common.Posting) error {
	if err := r.repo.Create(ctx, p); err != nil {
		return err
	}
	r.put(p)
	return nil
}

func (r *Reader) ByID(ctx context.Context, id string) (*common.Posting, error) {
	if p, ok := r.get(id); ok {
		return p, nil
	}

	p, err := r.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.put(p)
	return clone(p), nil
}

// ByIDs returns the postings that exist; missing ids are absent from the map.
func (r *Reader) ByIDs(ctx context.Context, ids []string) (map[string]*common.Posting, error) {
	out := make(map[string]*common.Posting, len(ids))
	var misses []string
	seen := make(map[string]bool, len(ids))

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := r.get(id); ok {
			out[id] = p
			continue
		}
		misses = append(misses, id)
	}
	if len(misses) == 0 {
		return out, nil
	}

	found, err := r.repo.ByIDs(ctx, misses)
	if err != nil {
		return nil, err
	}
	for id, p := range found {
		r.put(p)
		out[id] = clone(p)
	}
	return out, nil
}

// Fresh reads through to the store and refreshes the cached copy. Offer
// snapshots use it so an upstream edit is never masked by the cache.
func (r *Reader) Fresh(ctx context.Context, id string) (*common.Posting, error) {
	p, err := r.repo.ByID(ctx, id)
	if err != nil {
		r.cache.Delete(id)
		return nil, err
	}
	r.put(p)
	return clone(p), nil
}

func (r *Reader) get(id string) (*common.Posting, bool) {
	v, ok := r.cache.Get(id)
	if !ok {
		return nil, false
	}
	p, ok := v.(*common.Posting)
	if !ok {
		return nil, false
	}
	return clone(p), true
}

func (r *Reader) put(p *common.Posting) {
	r.cache.Set(p.ID, clone(p), cache.DefaultExpiration)
}

// clone keeps callers from mutating cached values.
func clone(p *common.Posting) *common.Posting {
	cp := *p
	cp.Qualifications = append([]string(nil), p.Qualifications...)
	cp.Compensation.Benefits = append([]string(nil), p.Compensation.Benefits...)
	return &cp
}
