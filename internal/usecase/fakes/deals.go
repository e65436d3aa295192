// Package fakes provides in-memory implementations of the domain ports for tests.
package fakes

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
)

// DealRepository mirrors the conditional-update semantics of the postgres repository.
type DealRepository struct {
	mu     sync.Mutex
	deals  map[int64]*domain.Deal
	nextID int64
	base   time.Time
	errs   map[string]error
}

func NewDealRepository() *DealRepository {
	return &DealRepository{
		deals: make(map[int64]*domain.Deal),
		base:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		errs:  make(map[string]error),
	}
}

// FailOn makes every later call of method return err until cleared with a nil err.
func (r *DealRepository) FailOn(method string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		delete(r.errs, method)
		return
	}
	r.errs[method] = err
}

func (r *DealRepository) fail(method string) error {
	if err, ok := r.errs[method]; ok {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *DealRepository) copyOf(d *domain.Deal) *domain.Deal {
	c := *d
	return &c
}

func (r *DealRepository) CreateDeal(_ context.Context, deal *domain.Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("CreateDeal"); err != nil {
		return err
	}
	r.nextID++
	deal.ID = r.nextID
	if deal.Status == "" {
		deal.Status = domain.DealPending
	}
	if deal.CreatedAt.IsZero() {
		deal.CreatedAt = r.base.Add(time.Duration(r.nextID) * time.Minute)
	}
	deal.UpdatedAt = deal.CreatedAt
	r.deals[deal.ID] = r.copyOf(deal)
	return nil
}

func (r *DealRepository) GetDealByID(_ context.Context, dealID int64) (*domain.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("GetDealByID"); err != nil {
		return nil, err
	}
	d, ok := r.deals[dealID]
	if !ok {
		return nil, domain.ErrDealNotFound
	}
	return r.copyOf(d), nil
}

func (r *DealRepository) list(match func(*domain.Deal) bool, asc bool) []*domain.Deal {
	var out []*domain.Deal
	for _, d := range r.deals {
		if match(d) {
			out = append(out, r.copyOf(d))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt) == asc
		}
		return (out[i].ID < out[j].ID) == asc
	})
	return out
}

func (r *DealRepository) ListAll(_ context.Context) ([]*domain.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("ListAll"); err != nil {
		return nil, err
	}
	return r.list(func(*domain.Deal) bool { return true }, false), nil
}

func (r *DealRepository) ListByStatus(_ context.Context, status domain.DealStatus) ([]*domain.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("ListByStatus"); err != nil {
		return nil, err
	}
	return r.list(func(d *domain.Deal) bool { return d.Status == status }, false), nil
}

func (r *DealRepository) ListByStatusAndAnnounced(_ context.Context, status domain.DealStatus, announced bool) ([]*domain.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("ListByStatusAndAnnounced"); err != nil {
		return nil, err
	}
	return r.list(func(d *domain.Deal) bool { return d.Status == status && d.Announced == announced }, true), nil
}

func (r *DealRepository) UpdateDealStatus(_ context.Context, dealID int64, from, to domain.DealStatus, decidedBy int64) (*domain.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("UpdateDealStatus"); err != nil {
		return nil, err
	}
	d, ok := r.deals[dealID]
	if !ok {
		return nil, domain.ErrDealNotFound
	}
	if d.Status != from {
		return nil, domain.ErrAlreadyDecided
	}
	if d.PayoutClaim != "" {
		return nil, domain.ErrPayoutInProgress
	}
	now := time.Now()
	d.Status = to
	d.UpdatedAt = now
	d.DecidedBy = decidedBy
	d.DecidedAt = &now
	return r.copyOf(d), nil
}

func (r *DealRepository) UpdateDealField(_ context.Context, dealID int64, field domain.DealField, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("UpdateDealField"); err != nil {
		return err
	}
	d, ok := r.deals[dealID]
	if !ok {
		return domain.ErrDealNotFound
	}
	switch field {
	case domain.FieldAnnounced:
		v, ok := value.(bool)
		if !ok {
			return domain.ErrInvalidField
		}
		d.Announced = v
	default:
		return domain.ErrInvalidField
	}
	d.UpdatedAt = time.Now()
	return nil
}

func (r *DealRepository) MarkAnnounced(_ context.Context, dealID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("MarkAnnounced"); err != nil {
		return false, err
	}
	d, ok := r.deals[dealID]
	if !ok || d.Status != domain.DealPending || d.Announced {
		return false, nil
	}
	d.Announced = true
	d.UpdatedAt = time.Now()
	return true, nil
}

func (r *DealRepository) ClaimPayout(_ context.Context, dealID int64, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("ClaimPayout"); err != nil {
		return false, err
	}
	d, ok := r.deals[dealID]
	if !ok || d.Status != domain.DealPending || d.PayoutClaim != "" {
		return false, nil
	}
	d.PayoutClaim = token
	d.UpdatedAt = time.Now()
	return true, nil
}

func (r *DealRepository) ReleasePayout(_ context.Context, dealID int64, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("ReleasePayout"); err != nil {
		return err
	}
	if d, ok := r.deals[dealID]; ok && d.PayoutClaim == token {
		d.PayoutClaim = ""
		d.UpdatedAt = time.Now()
	}
	return nil
}

func (r *DealRepository) CompletePayout(_ context.Context, dealID int64, token, txHash string, decidedBy int64) (*domain.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("CompletePayout"); err != nil {
		return nil, err
	}
	d, ok := r.deals[dealID]
	if !ok || d.Status != domain.DealPending || d.PayoutClaim != token {
		return nil, fmt.Errorf("%w: payout claim lost", domain.ErrAlreadyDecided)
	}
	now := time.Now()
	d.Status = domain.DealApproved
	d.UpdatedAt = now
	d.TxHash = txHash
	d.PayoutClaim = ""
	d.DecidedBy = decidedBy
	d.DecidedAt = &now
	return r.copyOf(d), nil
}

func (r *DealRepository) ResetDeal(_ context.Context, dealID int64, expectedClaim string) (*domain.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("ResetDeal"); err != nil {
		return nil, err
	}
	d, ok := r.deals[dealID]
	if !ok {
		return nil, domain.ErrDealNotFound
	}
	if d.PayoutClaim != expectedClaim {
		return nil, fmt.Errorf("%w: deal %d payout claim changed during reset", domain.ErrPayoutInProgress, dealID)
	}
	d.Status = domain.DealPending
	d.Announced = true
	d.PayoutClaim = ""
	d.DecidedBy = 0
	d.DecidedAt = nil
	d.UpdatedAt = time.Now()
	return r.copyOf(d), nil
}

// Put stores a deal as-is, bypassing submission validation.
func (r *DealRepository) Put(deal domain.Deal) *domain.Deal {
	r.mu.Lock()
	defer r.mu.Unlock()
	if deal.ID == 0 {
		r.nextID++
		deal.ID = r.nextID
	} else if deal.ID > r.nextID {
		r.nextID = deal.ID
	}
	if deal.Status == "" {
		deal.Status = domain.DealPending
	}
	if deal.CreatedAt.IsZero() {
		deal.CreatedAt = r.base.Add(time.Duration(deal.ID) * time.Minute)
	}
	r.deals[deal.ID] = r.copyOf(&deal)
	return r.copyOf(&deal)
}
