package cache

import "github.com/dverenev/priceadmin/internal/client/models"

// TxState tracks a mutation through its three-phase protocol.
type TxState string

const (
	TxIdle       TxState = "idle"
	TxApplying   TxState = "applying"
	TxCommitted  TxState = "committed"
	TxRolledBack TxState = "rolled-back"
)

// storeSnapshot is a deep copy of the cached collections, captured before an
// optimistic mutation. Restoring it must reproduce the pre-mutation state
// exactly.
type storeSnapshot struct {
	lists map[string]listEntry
	items map[int64]itemEntry
}

// tx is a single snapshot → apply → commit-or-revert transaction. Callers
// hold the store lock while calling begin/commit/rollback; the remote call
// happens between apply and reconcile, outside the lock.
type tx struct {
	store *Store
	state TxState
	snap  storeSnapshot
}

func (s *Store) begin() *tx {
	return &tx{
		store: s,
		state: TxApplying,
		snap:  s.copyState(),
	}
}

// commit discards the snapshot; the caller invalidates cached reads so the
// next fetch replaces optimistic data with authoritative data.
func (t *tx) commit() {
	if t.state != TxApplying {
		return
	}
	t.state = TxCommitted
}

// rollback restores the exact pre-mutation state.
func (t *tx) rollback() {
	if t.state != TxApplying {
		return
	}
	t.store.lists = t.snap.lists
	t.store.items = t.snap.items
	t.state = TxRolledBack
}

func (s *Store) copyState() storeSnapshot {
	lists := make(map[string]listEntry, len(s.lists))
	for k, e := range s.lists {
		items := make([]models.PriceList, len(e.items))
		copy(items, e.items)
		e.items = items
		lists[k] = e
	}
	items := make(map[int64]itemEntry, len(s.items))
	for k, e := range s.items {
		items[k] = e
	}
	return storeSnapshot{lists: lists, items: items}
}
