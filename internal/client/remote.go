package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/mitrajit-55/password-manager/internal/vault"
)

// requestTimeout bounds every call to the service so a hung request can
// never pend forever.
const requestTimeout = 10 * time.Second

// RemoteVault implements vault.Store against the password service's HTTP
// surface, decoding its {success, result|message} envelope.
type RemoteVault struct {
	baseURL string
	hc      *http.Client
}

// NewRemoteVault creates a remote adapter for the given server base URL.
func NewRemoteVault(baseURL string) *RemoteVault {
	return &RemoteVault{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: requestTimeout},
	}
}

func (r *RemoteVault) Initialize(ctx context.Context) error { return nil }

func (r *RemoteVault) Close() error { return nil }

func (r *RemoteVault) Health(ctx context.Context) error {
	body, _, err := r.do(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return err
	}
	if string(body) != "ok" {
		return fmt.Errorf("service unhealthy: %s", body)
	}
	return nil
}

func (r *RemoteVault) List(ctx context.Context) ([]vault.Record, error) {
	body, status, err := r.do(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list failed: %s", envelopeMessage(body, status))
	}
	var records []vault.Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

func (r *RemoteVault) Create(ctx context.Context, fields vault.Fields) (vault.Record, error) {
	body, status, err := r.do(ctx, http.MethodPost, "/", fields)
	if err != nil {
		return vault.Record{}, err
	}
	if status != http.StatusOK || !gjson.GetBytes(body, "success").Bool() {
		return vault.Record{}, fmt.Errorf("create failed: %s", envelopeMessage(body, status))
	}
	id := gjson.GetBytes(body, "result.insertedId").String()
	if id == "" {
		return vault.Record{}, fmt.Errorf("create succeeded but no id was assigned")
	}
	return vault.Record{ID: id, Fields: fields}, nil
}

func (r *RemoteVault) Update(ctx context.Context, id string, fields vault.Fields) (bool, error) {
	payload := struct {
		ID string `json:"id"`
		vault.Fields
	}{ID: id, Fields: fields}

	body, status, err := r.do(ctx, http.MethodPut, "/", payload)
	if err != nil {
		return false, err
	}
	switch {
	case status == http.StatusOK && gjson.GetBytes(body, "success").Bool():
		return true, nil
	case status == http.StatusOK:
		// "No changes made": the store was reachable but modified nothing.
		return false, nil
	default:
		return false, fmt.Errorf("update failed: %s", envelopeMessage(body, status))
	}
}

func (r *RemoteVault) Delete(ctx context.Context, id string) (bool, error) {
	payload := struct {
		ID string `json:"id"`
	}{ID: id}

	body, status, err := r.do(ctx, http.MethodDelete, "/", payload)
	if err != nil {
		return false, err
	}
	if status != http.StatusOK || !gjson.GetBytes(body, "success").Bool() {
		return false, fmt.Errorf("delete failed: %s", envelopeMessage(body, status))
	}
	return gjson.GetBytes(body, "result.deletedCount").Int() > 0, nil
}

func (r *RemoteVault) do(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.hc.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

func envelopeMessage(body []byte, status int) string {
	if msg := gjson.GetBytes(body, "message").String(); msg != "" {
		return msg
	}
	return fmt.Sprintf("HTTP %d", status)
}
