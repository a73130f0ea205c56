// Package iocache persists partners, criteria, scored rows and re-score history.
package iocache

import (
	"sync"

	"github.com/huangsam/partnerscore/internal/contract"
)

// StoreManager holds the process-wide store.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	store        contract.Store
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// GetStore returns the active store, or nil before InitStore succeeds.
func (mgr *StoreManager) GetStore() contract.Store {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}

// setStore swaps the active store. Tests use it to install a memory store.
func (mgr *StoreManager) setStore(store contract.Store) {
	mgr.Lock()
	defer mgr.Unlock()
	mgr.store = store
}
