package storage

import (
	"errors"
	"fmt"

	"github.com/wagerchain/wagerchain/core"
)

// Write is one staged mutation: Delete false means update the key to Value,
// true means remove it.
type Write struct {
	Key    string
	Value  []byte
	Delete bool
}

type entry struct {
	value   []byte
	deleted bool
}

type overlaySnapshot struct {
	entries map[string]entry
	order   []string
}

// Overlay is a read-through, write-staged view over an injected base store.
// Reads consult the pending entries first and fall back to the base; writes
// only ever touch the pending entries. Commit consumes the overlay and
// returns the staged writes in first-write order, so the diff itself is
// deterministic across nodes.
//
// Exactly one engine owns an overlay; it must never be shared across
// concurrently processed batches.
type Overlay struct {
	base      Reader
	entries   map[string]entry
	order     []string
	snapshots []overlaySnapshot
}

// NewOverlay creates an empty overlay over base.
func NewOverlay(base Reader) *Overlay {
	return &Overlay{base: base, entries: make(map[string]entry)}
}

// Get returns the staged value for key, or reads through to the base store.
// Absent keys (including staged deletes) return core.ErrNotFound; a base
// store failure comes back wrapped in *core.StateError.
func (o *Overlay) Get(key string) ([]byte, error) {
	if e, ok := o.entries[key]; ok {
		if e.deleted {
			return nil, core.ErrNotFound
		}
		return e.value, nil
	}
	val, err := o.base.Get([]byte(key))
	if errors.Is(err, core.ErrNotFound) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, &core.StateError{Op: "get", Key: key, Err: err}
	}
	return val, nil
}

// Insert stages an update for key. The base store is untouched.
func (o *Overlay) Insert(key string, value []byte) {
	o.stage(key, entry{value: value})
}

// Delete stages a removal for key. The base store is untouched; a
// subsequent Get sees the key as absent even while the base still holds it.
func (o *Overlay) Delete(key string) {
	o.stage(key, entry{deleted: true})
}

func (o *Overlay) stage(key string, e entry) {
	if _, ok := o.entries[key]; !ok {
		o.order = append(o.order, key)
	}
	o.entries[key] = e
}

// Snapshot saves the pending state and returns an id for Revert. Used by
// the engine to undo one transaction's writes on a typed rejection.
func (o *Overlay) Snapshot() int {
	snap := overlaySnapshot{
		entries: make(map[string]entry, len(o.entries)),
		order:   append([]string(nil), o.order...),
	}
	for k, e := range o.entries {
		snap.entries[k] = copyEntry(e)
	}
	o.snapshots = append(o.snapshots, snap)
	return len(o.snapshots) - 1
}

// Revert restores the pending state to a previously saved snapshot and
// discards it along with any later snapshots.
func (o *Overlay) Revert(id int) error {
	if id < 0 || id >= len(o.snapshots) {
		return fmt.Errorf("invalid snapshot id %d", id)
	}
	snap := o.snapshots[id]
	entries := make(map[string]entry, len(snap.entries))
	for k, e := range snap.entries {
		entries[k] = copyEntry(e)
	}
	o.entries = entries
	o.order = append([]string(nil), snap.order...)
	o.snapshots = o.snapshots[:id]
	return nil
}

// Discard drops snapshot id and any later snapshots without restoring,
// once the writes they guard are known to stand.
func (o *Overlay) Discard(id int) {
	if id >= 0 && id < len(o.snapshots) {
		o.snapshots = o.snapshots[:id]
	}
}

// Commit consumes the overlay and returns the staged writes in first-write
// order. Untouched keys never appear. The overlay is empty afterwards and
// must not be reused for another batch.
func (o *Overlay) Commit() []Write {
	diff := make([]Write, 0, len(o.order))
	for _, key := range o.order {
		e := o.entries[key]
		diff = append(diff, Write{Key: key, Value: e.value, Delete: e.deleted})
	}
	o.entries = make(map[string]entry)
	o.order = nil
	o.snapshots = nil
	return diff
}

// FlushDiff writes a committed diff to db atomically through one batch.
// This is the only path by which engine output reaches durable storage.
func FlushDiff(db DB, diff []Write) error {
	batch := db.NewBatch()
	for _, w := range diff {
		if w.Delete {
			batch.Delete([]byte(w.Key))
		} else {
			batch.Set([]byte(w.Key), w.Value)
		}
	}
	return batch.Write()
}

func copyEntry(e entry) entry {
	if e.value == nil {
		return e
	}
	cp := make([]byte, len(e.value))
	copy(cp, e.value)
	return entry{value: cp, deleted: e.deleted}
}
