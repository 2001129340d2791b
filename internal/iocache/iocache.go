// Package iocache is for persisting compute runs and their scores.
package iocache

import (
	"sync"

	"github.com/huangsam/irmetrics/internal/contract"
)

// RunStoreManager holds the process-wide RunStore.
type RunStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	runs         contract.RunStore
}

var _ contract.RunManager = &RunStoreManager{} // Compile-time check

// GetRunStore returns the run store, or nil when tracking is not initialized.
func (mgr *RunStoreManager) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}
