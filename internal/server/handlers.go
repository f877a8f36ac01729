package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/mitrajit-55/password-manager/internal/logging"
	"github.com/mitrajit-55/password-manager/internal/vault"
)

// Handler translates the four record operations into store calls.
type Handler struct {
	store vault.Store
}

// NewHandler creates the request handler for the given store.
func NewHandler(store vault.Store) *Handler {
	return &Handler{store: store}
}

// ListPasswords returns the full record collection as a bare JSON array.
func (h *Handler) ListPasswords(c *gin.Context) {
	records, err := h.store.List(c.Request.Context())
	if err != nil {
		logging.WithReq(c, log.Fields{"error": err}).Error("Error fetching passwords")
		respondFailure(c, http.StatusInternalServerError, "Server Error")
		return
	}
	if records == nil {
		records = []vault.Record{}
	}
	logging.WithReq(c, log.Fields{"count": len(records)}).Debug("passwords listed")
	c.JSON(http.StatusOK, records)
}

// CreatePassword stores a new record and reports its assigned id.
func (h *Handler) CreatePassword(c *gin.Context) {
	var fields vault.Fields
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondFailure(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.store.Create(c.Request.Context(), fields)
	if err != nil {
		logging.WithReq(c, log.Fields{"error": err}).Error("Error saving password")
		respondFailure(c, http.StatusInternalServerError, "Server Error")
		return
	}

	logging.WithReq(c, log.Fields{"id": rec.ID}).Info("password created")
	respondSuccess(c, gin.H{"insertedId": rec.ID})
}

type updateRequest struct {
	ID string `json:"id"`
	vault.Fields
}

// UpdatePassword replaces the fields of an existing record. All four fields
// are required; a partial body fails before the store is contacted.
func (h *Handler) UpdatePassword(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, http.StatusBadRequest, "Missing fields")
		return
	}
	if req.ID == "" || !req.Fields.Complete() {
		respondFailure(c, http.StatusBadRequest, "Missing fields")
		return
	}

	modified, err := h.store.Update(c.Request.Context(), req.ID, req.Fields)
	if err != nil {
		logging.WithReq(c, log.Fields{"error": err, "id": req.ID}).Error("Error updating password")
		respondFailure(c, http.StatusInternalServerError, "Server Error")
		return
	}
	if !modified {
		// Missing id or identical values; distinct from a hard failure.
		logging.WithReq(c, log.Fields{"id": req.ID}).Info("password update made no changes")
		respondFailure(c, http.StatusOK, "No changes made")
		return
	}

	logging.WithReq(c, log.Fields{"id": req.ID}).Info("password updated")
	respondSuccess(c, gin.H{"modifiedCount": 1})
}

type deleteRequest struct {
	ID string `json:"id"`
}

// DeletePassword removes a record by id. Deleting an absent id reports
// success with a zero deleted count.
func (h *Handler) DeletePassword(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		respondFailure(c, http.StatusInternalServerError, "Server Error")
		return
	}

	deleted, err := h.store.Delete(c.Request.Context(), req.ID)
	if err != nil {
		logging.WithReq(c, log.Fields{"error": err, "id": req.ID}).Error("Error deleting password")
		respondFailure(c, http.StatusInternalServerError, "Server Error")
		return
	}

	count := 0
	if deleted {
		count = 1
	}
	logging.WithReq(c, log.Fields{"id": req.ID, "deleted": count}).Info("password delete handled")
	respondSuccess(c, gin.H{"deletedCount": count})
}
