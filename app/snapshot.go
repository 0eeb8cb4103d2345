package app

import (
	"encoding/json"
	"fmt"
)

// Snapshot persists the current state in the store.
func (e *Engine) Snapshot() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store == nil {
		return fmt.Errorf("no store configured")
	}

	doc, err := e.exportGenesis()
	if err != nil {
		return err
	}

	bz, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	if err := e.store.SaveSnapshot(doc.Height, bz, e.opts.SnapshotKeepRecent); err != nil {
		return err
	}

	e.logger.Debug("saved snapshot", "height", doc.Height)

	return nil
}

// Restore loads the latest snapshot from the store. It reports false when
// the store holds none.
func (e *Engine) Restore() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store == nil {
		return false, nil
	}

	height, bz, ok, err := e.store.LatestSnapshot()
	if err != nil || !ok {
		return false, err
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return false, fmt.Errorf("failed to unmarshal snapshot at height %d: %w", height, err)
	}

	if doc.ChainID != e.opts.ChainID {
		return false, fmt.Errorf("snapshot belongs to chain %q, not %q", doc.ChainID, e.opts.ChainID)
	}

	if err := e.initGenesis(&doc); err != nil {
		return false, err
	}

	e.logger.Info("restored snapshot", "height", height)

	return true, nil
}
