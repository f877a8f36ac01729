package storage

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/mitrajit-55/password-manager/internal/tracing"
	"github.com/mitrajit-55/password-manager/internal/vault"
)

// WithInstrumentation wraps a store so every operation runs inside a trace
// span carrying the backend label.
func WithInstrumentation(inner vault.Store, label string) vault.Store {
	if inner == nil {
		return inner
	}
	if label == "" {
		label = "unknown"
	}
	return &instrumentedStore{inner: inner, label: label}
}

type instrumentedStore struct {
	inner vault.Store
	label string
}

func (i *instrumentedStore) Initialize(ctx context.Context) error {
	return i.instrument(ctx, "initialize", i.inner.Initialize)
}

func (i *instrumentedStore) Close() error { return i.inner.Close() }

func (i *instrumentedStore) Health(ctx context.Context) error {
	return i.inner.Health(ctx)
}

func (i *instrumentedStore) List(ctx context.Context) ([]vault.Record, error) {
	var records []vault.Record
	err := i.instrument(ctx, "list", func(ctx context.Context) error {
		var innerErr error
		records, innerErr = i.inner.List(ctx)
		return innerErr
	})
	return records, err
}

func (i *instrumentedStore) Create(ctx context.Context, fields vault.Fields) (vault.Record, error) {
	var rec vault.Record
	err := i.instrument(ctx, "create", func(ctx context.Context) error {
		var innerErr error
		rec, innerErr = i.inner.Create(ctx, fields)
		return innerErr
	})
	return rec, err
}

func (i *instrumentedStore) Update(ctx context.Context, id string, fields vault.Fields) (bool, error) {
	var modified bool
	err := i.instrument(ctx, "update", func(ctx context.Context) error {
		var innerErr error
		modified, innerErr = i.inner.Update(ctx, id, fields)
		return innerErr
	})
	return modified, err
}

func (i *instrumentedStore) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := i.instrument(ctx, "delete", func(ctx context.Context) error {
		var innerErr error
		deleted, innerErr = i.inner.Delete(ctx, id)
		return innerErr
	})
	return deleted, err
}

func (i *instrumentedStore) instrument(ctx context.Context, operation string, fn func(context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := tracing.StartSpan(ctx, "storage", i.label+"/"+operation)
	span.SetAttributes(
		attribute.String("storage.backend", i.label),
		attribute.String("storage.operation", operation),
	)
	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
	return err
}
