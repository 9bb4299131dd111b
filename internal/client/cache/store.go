// Package cache serves price list reads with staleness windows and applies
// create/update/delete with optimistic local mutation plus rollback on
// remote failure. Every mutation follows the same three-phase protocol:
// snapshot, optimistically mutate, then reconcile (invalidate-and-refetch
// on success, restore the snapshot on failure).
package cache

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dverenev/priceadmin/internal/client/models"
	"github.com/dverenev/priceadmin/internal/client/notify"
	"github.com/dverenev/priceadmin/internal/logging"
)

// Remote is the server surface the store reconciles against.
// *api.PriceListAPI satisfies it.
type Remote interface {
	List(ctx context.Context, q models.ListQuery) ([]models.PriceList, int, error)
	Get(ctx context.Context, id int64) (*models.PriceList, error)
	Create(ctx context.Context, req models.CreatePriceListRequest) (*models.PriceList, error)
	Update(ctx context.Context, id int64, req models.UpdatePriceListRequest) (*models.PriceList, error)
	Delete(ctx context.Context, id int64) error
	CheckName(ctx context.Context, name string, excludeID int64) (bool, error)
}

// Notifier is the slice of the notification center the store uses.
type Notifier interface {
	Successf(msg string) notify.Toast
	Errorf(msg string) notify.Toast
}

const (
	listStaleAfter = 5 * time.Minute
	nameStaleAfter = 30 * time.Second
)

type listEntry struct {
	items     []models.PriceList
	count     int
	fetchedAt time.Time
}

type itemEntry struct {
	item      models.PriceList
	fetchedAt time.Time
}

type nameEntry struct {
	available bool
	fetchedAt time.Time
}

// Store is the process-wide read/write cache for price lists. All cache
// mutation goes through its operation set; concurrent mutations get
// per-mutation snapshot/rollback, nothing stronger.
type Store struct {
	remote Remote
	notes  Notifier
	log    logging.Logger

	mu    sync.Mutex
	lists map[string]listEntry
	items map[int64]itemEntry
	names map[string]nameEntry

	// seams for tests
	now    func() time.Time
	tempID func() int64
}

func NewStore(remote Remote, notes Notifier, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{
		remote: remote,
		notes:  notes,
		log:    log,
		lists:  make(map[string]listEntry),
		items:  make(map[int64]itemEntry),
		names:  make(map[string]nameEntry),
		now:    time.Now,
		// Temporary identifier for optimistic creates, derived from the
		// current time and replaced on server confirmation.
		tempID: func() int64 { return time.Now().UnixMilli() },
	}
}

func listKey(q models.ListQuery) string {
	return fmt.Sprintf("p=%d;l=%d;s=%s;d=%s;q=%s;f=%d;t=%d",
		q.Page, q.Limit, q.SortBy, q.Direction, q.Search,
		q.DateFrom.Unix(), q.DateTo.Unix())
}

func nameKey(name string, excludeID int64) string {
	return fmt.Sprintf("%s;%d", name, excludeID)
}

// List serves the collection for q, refetching when the cached page is
// older than five minutes.
func (s *Store) List(ctx context.Context, q models.ListQuery) ([]models.PriceList, int, error) {
	key := listKey(q)

	s.mu.Lock()
	if e, ok := s.lists[key]; ok && s.now().Sub(e.fetchedAt) < listStaleAfter {
		items := make([]models.PriceList, len(e.items))
		copy(items, e.items)
		count := e.count
		s.mu.Unlock()
		return items, count, nil
	}
	s.mu.Unlock()

	items, count, err := s.remote.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	s.mu.Lock()
	s.lists[key] = listEntry{items: items, count: count, fetchedAt: s.now()}
	s.mu.Unlock()

	out := make([]models.PriceList, len(items))
	copy(out, items)
	return out, count, nil
}

// Get serves a single record, refetching when stale.
func (s *Store) Get(ctx context.Context, id int64) (*models.PriceList, error) {
	s.mu.Lock()
	if e, ok := s.items[id]; ok && s.now().Sub(e.fetchedAt) < listStaleAfter {
		item := e.item
		s.mu.Unlock()
		return &item, nil
	}
	s.mu.Unlock()

	item, err := s.remote.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.items[id] = itemEntry{item: *item, fetchedAt: s.now()}
	s.mu.Unlock()

	out := *item
	return &out, nil
}

// CheckName reports name availability with a short 30s staleness window.
func (s *Store) CheckName(ctx context.Context, name string, excludeID int64) (bool, error) {
	key := nameKey(name, excludeID)

	s.mu.Lock()
	if e, ok := s.names[key]; ok && s.now().Sub(e.fetchedAt) < nameStaleAfter {
		available := e.available
		s.mu.Unlock()
		return available, nil
	}
	s.mu.Unlock()

	available, err := s.remote.CheckName(ctx, name, excludeID)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	s.names[key] = nameEntry{available: available, fetchedAt: s.now()}
	s.mu.Unlock()
	return available, nil
}

// Invalidate drops all cached reads so the next fetch goes to the server.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidateLocked()
}

func (s *Store) invalidateLocked() {
	s.lists = make(map[string]listEntry)
	s.items = make(map[int64]itemEntry)
	s.names = make(map[string]nameEntry)
}

// Create inserts a temporary record into every cached page, then reconciles
// with the server. On failure the cache is restored to the pre-mutation
// snapshot and the error is propagated.
func (s *Store) Create(ctx context.Context, req models.CreatePriceListRequest) (*models.PriceList, error) {
	s.mu.Lock()
	txn := s.begin()
	optimistic := models.PriceList{
		ID:        s.tempID(),
		Name:      req.Name,
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	for key, e := range s.lists {
		e.items = append([]models.PriceList{optimistic}, e.items...)
		e.count++
		s.lists[key] = e
	}
	s.mu.Unlock()

	created, err := s.remote.Create(ctx, req)

	s.mu.Lock()
	if err != nil {
		txn.rollback()
		s.mu.Unlock()
		s.notes.Errorf(fmt.Sprintf("Failed to create price list %q.", req.Name))
		return nil, err
	}
	txn.commit()
	s.invalidateLocked()
	s.mu.Unlock()

	s.notes.Successf(fmt.Sprintf("Price list %q created.", created.Name))
	return created, nil
}

// Update merges the new fields into every cached copy of id (bumping the
// updated-timestamp), then reconciles.
func (s *Store) Update(ctx context.Context, id int64, req models.UpdatePriceListRequest) (*models.PriceList, error) {
	s.mu.Lock()
	txn := s.begin()
	if e, ok := s.items[id]; ok {
		e.item.Name = req.Name
		e.item.UpdatedAt = s.now()
		s.items[id] = e
	}
	for key, e := range s.lists {
		for i := range e.items {
			if e.items[i].ID == id {
				e.items[i].Name = req.Name
				e.items[i].UpdatedAt = s.now()
			}
		}
		s.lists[key] = e
	}
	s.mu.Unlock()

	updated, err := s.remote.Update(ctx, id, req)

	s.mu.Lock()
	if err != nil {
		txn.rollback()
		s.mu.Unlock()
		s.notes.Errorf("Failed to save price list.")
		return nil, err
	}
	txn.commit()
	s.invalidateLocked()
	s.mu.Unlock()

	return updated, nil
}

// Delete removes id from every cached page, then reconciles.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	txn := s.begin()
	s.removeLocked(id)
	s.mu.Unlock()

	err := s.remote.Delete(ctx, id)

	s.mu.Lock()
	if err != nil {
		txn.rollback()
		s.mu.Unlock()
		s.notes.Errorf("Failed to delete price list.")
		return err
	}
	txn.commit()
	s.invalidateLocked()
	s.mu.Unlock()

	s.notes.Successf("Price list deleted.")
	return nil
}

func (s *Store) removeLocked(id int64) {
	delete(s.items, id)
	for key, e := range s.lists {
		kept := e.items[:0:0]
		for _, item := range e.items {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		if len(kept) < len(e.items) && e.count > 0 {
			e.count--
		}
		e.items = kept
		s.lists[key] = e
	}
}

// BulkDelete removes all ids optimistically, issues the delete calls
// concurrently (fire-all, wait-all), and treats any failure as failure of
// the whole operation: the cache is rolled back to the pre-delete snapshot
// and the error names the identifiers that failed. Some deletions may still
// have succeeded server-side; the refetch after a later mutation will
// reconcile that.
func (s *Store) BulkDelete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	txn := s.begin()
	for _, id := range ids {
		s.removeLocked(id)
	}
	s.mu.Unlock()

	var (
		wg     sync.WaitGroup
		failMu sync.Mutex
		failed []int64
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if err := s.remote.Delete(ctx, id); err != nil {
				failMu.Lock()
				failed = append(failed, id)
				failMu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	s.mu.Lock()
	if len(failed) > 0 {
		txn.rollback()
		s.mu.Unlock()

		sort.Slice(failed, func(i, j int) bool { return failed[i] < failed[j] })
		parts := make([]string, len(failed))
		for i, id := range failed {
			parts[i] = fmt.Sprintf("%d", id)
		}
		msg := fmt.Sprintf("Failed to delete price lists: %s", strings.Join(parts, ", "))
		s.notes.Errorf(msg)
		return fmt.Errorf("%s", msg)
	}
	txn.commit()
	s.invalidateLocked()
	s.mu.Unlock()

	s.notes.Successf(fmt.Sprintf("%d price lists deleted.", len(ids)))
	return nil
}
