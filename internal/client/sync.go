package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/mitrajit-55/password-manager/internal/vault"
)

// ErrNoChanges is returned when the store reports that an update modified
// nothing (missing target or identical values).
var ErrNoChanges = errors.New("no changes made")

// Coordinator applies user-initiated mutations: it issues the store
// operation first and touches the cache only after the store confirms
// success. There is no optimistic update and no partial apply.
type Coordinator struct {
	store   vault.Store
	cache   *Cache
	confirm Confirmer
	notify  Notifier
}

// NewCoordinator wires a coordinator to its store, cache and capabilities.
// Confirm and notify may be nil; a nil confirmer approves every prompt.
func NewCoordinator(store vault.Store, cache *Cache, confirm Confirmer, notify Notifier) *Coordinator {
	return &Coordinator{store: store, cache: cache, confirm: confirm, notify: notify}
}

// Refresh loads the cache from the store. Called once at startup; the cache
// stays authoritative until the next successful mutation.
func (s *Coordinator) Refresh(ctx context.Context) error {
	records, err := s.store.List(ctx)
	if err != nil {
		s.post("Failed to fetch passwords from server")
		return fmt.Errorf("refresh: %w", err)
	}
	s.cache.Load(records)
	return nil
}

// Save applies a committed draft. In create mode the store assigns the id
// and the returned record is appended; in edit mode the entry with the
// draft's id is replaced, identity preserved.
func (s *Coordinator) Save(ctx context.Context, mode Mode, draft Draft) error {
	switch mode {
	case ModeEdit:
		modified, err := s.store.Update(ctx, draft.ID, draft.Fields)
		if err != nil {
			s.post("Failed to update password.")
			return fmt.Errorf("update %s: %w", draft.ID, err)
		}
		if !modified {
			s.post("Failed to update password.")
			return ErrNoChanges
		}
		s.cache.replace(vault.Record{ID: draft.ID, Fields: draft.Fields})
		s.post("Password updated!")
		return nil

	default:
		rec, err := s.store.Create(ctx, draft.Fields)
		if err != nil {
			s.post("Failed to save password.")
			return fmt.Errorf("create: %w", err)
		}
		s.cache.append(rec)
		s.post("Password saved!")
		return nil
	}
}

// Delete removes a record after an explicit yes/no confirmation. It reports
// whether the deletion went ahead; a declined prompt is (false, nil).
// Deleting an id the store no longer has still succeeds (idempotent delete).
func (s *Coordinator) Delete(ctx context.Context, id string) (bool, error) {
	if s.confirm != nil && !s.confirm.Confirm("Do you really want to delete this password?") {
		return false, nil
	}

	if _, err := s.store.Delete(ctx, id); err != nil {
		s.post("Failed to delete password.")
		return false, fmt.Errorf("delete %s: %w", id, err)
	}
	s.cache.remove(id)
	s.post("Password Deleted!")
	return true, nil
}

// dropSilently removes a record from store and cache without confirmation
// or notification. Only the local-variant edit flow uses it.
func (s *Coordinator) dropSilently(ctx context.Context, id string) {
	_, _ = s.store.Delete(ctx, id)
	s.cache.remove(id)
}

func (s *Coordinator) post(message string) {
	if s.notify != nil {
		s.notify.Notify(message)
	}
}
