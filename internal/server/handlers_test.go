package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/mitrajit-55/password-manager/internal/config"
	"github.com/mitrajit-55/password-manager/internal/storage"
	"github.com/mitrajit-55/password-manager/internal/vault"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// faultyStore fails every operation and counts how often the write paths
// were reached.
type faultyStore struct {
	updateCalls int
	deleteCalls int
}

func (f *faultyStore) Initialize(ctx context.Context) error { return nil }
func (f *faultyStore) Close() error                         { return nil }
func (f *faultyStore) Health(ctx context.Context) error     { return errors.New("down") }

func (f *faultyStore) List(ctx context.Context) ([]vault.Record, error) {
	return nil, errors.New("backend down")
}

func (f *faultyStore) Create(ctx context.Context, fields vault.Fields) (vault.Record, error) {
	return vault.Record{}, errors.New("backend down")
}

func (f *faultyStore) Update(ctx context.Context, id string, fields vault.Fields) (bool, error) {
	f.updateCalls++
	return false, errors.New("backend down")
}

func (f *faultyStore) Delete(ctx context.Context, id string) (bool, error) {
	f.deleteCalls++
	return false, errors.New("backend down")
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	fs := storage.NewFileStore(t.TempDir())
	require.NoError(t, fs.Initialize(context.Background()))
	t.Cleanup(func() { _ = fs.Close() })
	return Build(config.Default(), fs)
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestCreateThenList(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(t, engine, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, "[]", w.Body.String())

	w = doJSON(t, engine, http.MethodPost, "/", vault.Fields{Site: "https://example.com", Username: "alice", Password: "s3cret"})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, gjson.Get(w.Body.String(), "success").Bool())
	id := gjson.Get(w.Body.String(), "result.insertedId").String()
	require.NotEmpty(t, id)

	w = doJSON(t, engine, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var records []vault.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	require.Equal(t, id, records[0].ID)
	require.Equal(t, "alice", records[0].Username)
}

func TestUpdatePreservesIdentity(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(t, engine, http.MethodPost, "/", vault.Fields{Site: "https://example.com", Username: "alice", Password: "s3cret"})
	id := gjson.Get(w.Body.String(), "result.insertedId").String()

	w = doJSON(t, engine, http.MethodPut, "/", map[string]string{
		"id": id, "site": "https://example.com", "username": "alice", "password": "newpass",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, gjson.Get(w.Body.String(), "success").Bool())
	require.EqualValues(t, 1, gjson.Get(w.Body.String(), "result.modifiedCount").Int())

	w = doJSON(t, engine, http.MethodGet, "/", nil)
	var records []vault.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	require.Equal(t, id, records[0].ID)
	require.Equal(t, "newpass", records[0].Password)
}

func TestUpdateMissingFieldsNeverReachesStore(t *testing.T) {
	store := &faultyStore{}
	engine := Build(config.Default(), store)

	for name, payload := range map[string]map[string]string{
		"no id":       {"site": "https://example.com", "username": "alice", "password": "s3cret"},
		"no site":     {"id": "abc", "username": "alice", "password": "s3cret"},
		"no username": {"id": "abc", "site": "https://example.com", "password": "s3cret"},
		"no password": {"id": "abc", "site": "https://example.com", "username": "alice"},
	} {
		t.Run(name, func(t *testing.T) {
			w := doJSON(t, engine, http.MethodPut, "/", payload)
			require.Equal(t, http.StatusBadRequest, w.Code)
			require.False(t, gjson.Get(w.Body.String(), "success").Bool())
			require.Equal(t, "Missing fields", gjson.Get(w.Body.String(), "message").String())
		})
	}
	require.Zero(t, store.updateCalls)
}

func TestUpdateNoChanges(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(t, engine, http.MethodPost, "/", vault.Fields{Site: "https://example.com", Username: "alice", Password: "s3cret"})
	id := gjson.Get(w.Body.String(), "result.insertedId").String()

	// Identical values: HTTP 200 but success=false.
	w = doJSON(t, engine, http.MethodPut, "/", map[string]string{
		"id": id, "site": "https://example.com", "username": "alice", "password": "s3cret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, gjson.Get(w.Body.String(), "success").Bool())
	require.Equal(t, "No changes made", gjson.Get(w.Body.String(), "message").String())

	// Unknown id takes the same shape.
	w = doJSON(t, engine, http.MethodPut, "/", map[string]string{
		"id": "no-such-id", "site": "https://example.com", "username": "alice", "password": "s3cret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, gjson.Get(w.Body.String(), "success").Bool())
}

func TestDeleteIsIdempotent(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(t, engine, http.MethodPost, "/", vault.Fields{Site: "https://example.com", Username: "alice", Password: "s3cret"})
	id := gjson.Get(w.Body.String(), "result.insertedId").String()

	w = doJSON(t, engine, http.MethodDelete, "/", map[string]string{"id": id})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, gjson.Get(w.Body.String(), "success").Bool())
	require.EqualValues(t, 1, gjson.Get(w.Body.String(), "result.deletedCount").Int())

	// Deleting the same id again still succeeds, with a zero count.
	w = doJSON(t, engine, http.MethodDelete, "/", map[string]string{"id": id})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, gjson.Get(w.Body.String(), "success").Bool())
	require.EqualValues(t, 0, gjson.Get(w.Body.String(), "result.deletedCount").Int())
}

func TestDeleteRejectsMissingID(t *testing.T) {
	store := &faultyStore{}
	engine := Build(config.Default(), store)

	w := doJSON(t, engine, http.MethodDelete, "/", map[string]string{})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.False(t, gjson.Get(w.Body.String(), "success").Bool())
	require.Equal(t, "Server Error", gjson.Get(w.Body.String(), "message").String())
	require.Zero(t, store.deleteCalls)
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	engine := newTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid request body", gjson.Get(w.Body.String(), "message").String())
}

func TestStoreFailuresMapToServerError(t *testing.T) {
	store := &faultyStore{}
	engine := Build(config.Default(), store)

	w := doJSON(t, engine, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Server Error", gjson.Get(w.Body.String(), "message").String())

	w = doJSON(t, engine, http.MethodPost, "/", vault.Fields{Site: "https://example.com", Username: "alice", Password: "s3cret"})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	w = doJSON(t, engine, http.MethodDelete, "/", map[string]string{"id": "abc"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, store.deleteCalls)
}

func TestHealthzReflectsStore(t *testing.T) {
	engine := newTestEngine(t)
	w := doJSON(t, engine, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())

	down := Build(config.Default(), &faultyStore{})
	w = doJSON(t, down, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
