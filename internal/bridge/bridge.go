// Package bridge maps short alarm ids to the UUIDs the alarm facility
// knows them by, and remembers the re-trigger UUIDs issued for each alarm.
//
// The primary UUID mapping lives in memory only; it is rebuilt lazily
// after a restart. Re-trigger lists are persisted through a
// RetriggerRepo so a cold start can still cancel them.
package bridge

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// RetriggerRepo persists the re-trigger UUID lists keyed by alarm id.
type RetriggerRepo interface {
	LoadRetriggers(ctx context.Context) (map[string][]uuid.UUID, error)
	SaveRetriggers(ctx context.Context, alarmID string, ids []uuid.UUID) error
	DeleteRetriggers(ctx context.Context, alarmID string) error
}

// Bridge is the alarm id to facility UUID bridge.
type Bridge struct {
	mu         sync.Mutex
	primary    map[string]uuid.UUID
	retriggers map[string][]uuid.UUID
	repo       RetriggerRepo
	newUUID    func() uuid.UUID
}

// New creates a bridge backed by repo. Call Load before any
// cancellation logic runs.
func New(repo RetriggerRepo) *Bridge {
	return &Bridge{
		primary:    make(map[string]uuid.UUID),
		retriggers: make(map[string][]uuid.UUID),
		repo:       repo,
		newUUID:    uuid.New,
	}
}

// Load reads persisted re-trigger lists into memory, replacing whatever
// was held.
func (b *Bridge) Load(ctx context.Context) error {
	stored, err := b.repo.LoadRetriggers(ctx)
	if err != nil {
		return fmt.Errorf("load retriggers: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.retriggers = make(map[string][]uuid.UUID, len(stored))
	for id, ids := range stored {
		b.retriggers[id] = append([]uuid.UUID(nil), ids...)
	}
	return nil
}

// Resolve returns the UUID for alarmID, minting a fresh random one the
// first time it is asked for.
func (b *Bridge) Resolve(alarmID string) uuid.UUID {
	b.mu.Lock()
	defer b.mu.Unlock()
	if id, ok := b.primary[alarmID]; ok {
		return id
	}
	id := b.newUUID()
	b.primary[alarmID] = id
	return id
}

// Lookup returns the UUID for alarmID without minting one.
func (b *Bridge) Lookup(alarmID string) (uuid.UUID, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.primary[alarmID]
	return id, ok
}

// Forget drops the primary mapping for alarmID.
func (b *Bridge) Forget(alarmID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.primary, alarmID)
}

// ForgetAll drops every primary mapping.
func (b *Bridge) ForgetAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.primary = make(map[string]uuid.UUID)
}

// RecordRetriggers replaces the re-trigger list for alarmID and persists
// it. An empty list clears the entry.
func (b *Bridge) RecordRetriggers(ctx context.Context, alarmID string, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return b.ClearRetriggers(ctx, alarmID)
	}

	cp := append([]uuid.UUID(nil), ids...)
	if err := b.repo.SaveRetriggers(ctx, alarmID, cp); err != nil {
		return fmt.Errorf("save retriggers for %s: %w", alarmID, err)
	}

	b.mu.Lock()
	b.retriggers[alarmID] = cp
	b.mu.Unlock()
	return nil
}

// Retriggers returns a copy of the re-trigger list for alarmID.
func (b *Bridge) Retriggers(alarmID string) []uuid.UUID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]uuid.UUID(nil), b.retriggers[alarmID]...)
}

// ClearRetriggers removes the re-trigger list for alarmID.
func (b *Bridge) ClearRetriggers(ctx context.Context, alarmID string) error {
	if err := b.repo.DeleteRetriggers(ctx, alarmID); err != nil {
		return fmt.Errorf("delete retriggers for %s: %w", alarmID, err)
	}

	b.mu.Lock()
	delete(b.retriggers, alarmID)
	b.mu.Unlock()
	return nil
}

// AllRetriggers returns a copy of every re-trigger list, keyed by alarm id.
func (b *Bridge) AllRetriggers() map[string][]uuid.UUID {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string][]uuid.UUID, len(b.retriggers))
	for id, ids := range b.retriggers {
		out[id] = append([]uuid.UUID(nil), ids...)
	}
	return out
}
