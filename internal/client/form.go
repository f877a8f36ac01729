package client

import (
	"context"

	"github.com/mitrajit-55/password-manager/internal/vault"
)

// Mode distinguishes whether committing the draft creates a new record or
// edits an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Draft is the single in-progress editable record. ID is bound only in
// edit mode.
type Draft struct {
	ID string
	vault.Fields
}

// FormController owns the draft, the create/edit mode flag and the
// password-visibility presentation state. At most one edit is in progress
// at a time; user actions are serialized by the UI.
type FormController struct {
	draft Draft
	mode  Mode

	coord *Coordinator
	cache *Cache

	// removeOnEdit reproduces the local-variant behavior: entering edit
	// mode silently drops the record from the visible list and the blob,
	// and the draft stays unbound so commit re-creates it under a fresh
	// id. Abandoning the edit loses the record.
	removeOnEdit bool

	masked bool
}

// NewFormController creates a controller in create mode with a masked
// password field.
func NewFormController(coord *Coordinator, cache *Cache, removeOnEdit bool) *FormController {
	return &FormController{coord: coord, cache: cache, removeOnEdit: removeOnEdit, masked: true}
}

// Draft returns the current draft.
func (fc *FormController) Draft() Draft { return fc.draft }

// Mode returns the current mode.
func (fc *FormController) Mode() Mode { return fc.mode }

// SetFields updates the draft content without touching the bound id.
func (fc *FormController) SetFields(f vault.Fields) { fc.draft.Fields = f }

// BeginEdit loads the record with the given id into the draft. A missing id
// is a no-op. In the remote variant the record stays visible and the draft
// binds its id; in the local variant the record is silently removed first
// and the commit re-creates it.
func (fc *FormController) BeginEdit(ctx context.Context, id string) bool {
	rec, ok := fc.cache.Get(id)
	if !ok {
		return false
	}

	fc.draft.Fields = rec.Fields

	if fc.removeOnEdit {
		fc.coord.dropSilently(ctx, id)
		fc.draft.ID = ""
		fc.mode = ModeCreate
		return true
	}

	fc.draft.ID = rec.ID
	fc.mode = ModeEdit
	return true
}

// Commit validates the draft and, when admitted, hands it to the
// coordinator. A draft failing the admission rule never reaches the store.
// On confirmed success the draft is cleared and the mode resets to create.
func (fc *FormController) Commit(ctx context.Context) error {
	if err := fc.draft.Fields.Validate(); err != nil {
		if fc.coord != nil {
			fc.coord.post("Please fill all fields properly!")
		}
		return err
	}

	if err := fc.coord.Save(ctx, fc.mode, fc.draft); err != nil {
		return err
	}

	fc.Reset()
	return nil
}

// Reset clears the draft and returns to create mode. The visibility toggle
// is left alone: it is presentation state, not draft content.
func (fc *FormController) Reset() {
	fc.draft = Draft{}
	fc.mode = ModeCreate
}

// Masked reports whether the password field is displayed masked.
func (fc *FormController) Masked() bool { return fc.masked }

// ToggleMask flips password visibility. It never mutates the draft.
func (fc *FormController) ToggleMask() { fc.masked = !fc.masked }
