package savedtariffs

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/tariffsheriff/tariffsheriff-backend/pkg/errors"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/logger"
	"github.com/tariffsheriff/tariffsheriff-backend/pkg/pagination"
)

// ListView is the stateful table over the saved-tariff store. It holds one
// loaded page, memoizes row details for expanded rows, and runs deletes
// optimistically: remove locally first, restore the prior snapshot if the
// store call fails, and reconcile against the store either way.
type ListView struct {
	store Store
	log   *logger.Logger

	mu       sync.Mutex
	params   pagination.Params
	page     pagination.Page[Summary]
	details  map[uint]*Detail
	deleting map[uint]bool
}

// NewListView builds a view over the store with the given page settings.
func NewListView(store Store, params pagination.Params, log *logger.Logger) *ListView {
	return &ListView{
		store:    store,
		log:      log,
		params:   params.Normalize(),
		details:  make(map[uint]*Detail),
		deleting: make(map[uint]bool),
	}
}

// Load fetches the current page and drops memoized details for rows that
// are no longer on it.
func (v *ListView) Load(ctx context.Context) error {
	page, err := v.store.List(ctx, v.params)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = page
	v.pruneDetailsLocked()
	return nil
}

// SetPage switches to another page and re-fetches.
func (v *ListView) SetPage(ctx context.Context, page int) error {
	v.mu.Lock()
	v.params.Page = page
	v.params = v.params.Normalize()
	v.mu.Unlock()
	return v.Load(ctx)
}

// Page returns the currently loaded page.
func (v *ListView) Page() pagination.Page[Summary] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Params returns the current pagination settings.
func (v *ListView) Params() pagination.Params {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.params
}

// Expand returns the detail for a row, fetching it at most once per loaded
// row lifetime.
func (v *ListView) Expand(ctx context.Context, id uint) (*Detail, error) {
	v.mu.Lock()
	if detail, ok := v.details[id]; ok {
		v.mu.Unlock()
		return detail, nil
	}
	v.mu.Unlock()

	detail, err := v.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	v.details[id] = detail
	v.mu.Unlock()
	return detail, nil
}

// Delete removes the row optimistically. The caller has already confirmed
// the action; this method never asks again. A second delete for an id with
// one still in flight is rejected.
func (v *ListView) Delete(ctx context.Context, id uint) error {
	v.mu.Lock()
	if v.deleting[id] {
		v.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("delete already in flight for %d", id))
	}
	v.deleting[id] = true
	snapshot := v.snapshotLocked()
	v.removeRowLocked(id)
	v.mu.Unlock()

	deleteErr := v.store.Delete(ctx, id)

	v.mu.Lock()
	delete(v.deleting, id)
	if deleteErr != nil {
		// Restore the pre-delete view verbatim before reconciling.
		v.page = snapshot
	} else {
		delete(v.details, id)
	}
	v.mu.Unlock()

	if err := v.Load(ctx); err != nil && v.log != nil {
		v.log.Warn(ctx, "reconcile after delete failed: "+err.Error())
	}
	return deleteErr
}

// Deleting reports whether a delete is in flight for the row, so the
// per-row affordance can be disabled.
func (v *ListView) Deleting(id uint) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.deleting[id]
}

func (v *ListView) snapshotLocked() pagination.Page[Summary] {
	copied := v.page
	copied.Content = append([]Summary(nil), v.page.Content...)
	return copied
}

func (v *ListView) removeRowLocked(id uint) {
	content := make([]Summary, 0, len(v.page.Content))
	removed := false
	for _, row := range v.page.Content {
		if row.ID == id {
			removed = true
			continue
		}
		content = append(content, row)
	}
	if !removed {
		return
	}
	v.page.Content = content
	if v.page.TotalElements > 0 {
		v.page.TotalElements--
	}
}

func (v *ListView) pruneDetailsLocked() {
	present := make(map[uint]struct{}, len(v.page.Content))
	for _, row := range v.page.Content {
		present[row.ID] = struct{}{}
	}
	for id := range v.details {
		if _, ok := present[id]; !ok {
			delete(v.details, id)
		}
	}
}
