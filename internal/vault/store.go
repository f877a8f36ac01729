package vault

import "context"

// Store is the persistence contract shared by the server backends and the
// client's remote adapter. Update and Delete report "no matching record"
// through their bool, not through the error: only infrastructure failures
// are errors.
type Store interface {
	// Initialize prepares the backing store (connects, loads, migrates).
	Initialize(ctx context.Context) error
	// Close releases the store's resources.
	Close() error
	// Health reports whether the store can currently serve requests.
	Health(ctx context.Context) error

	// List returns every record in insertion order.
	List(ctx context.Context) ([]Record, error)
	// Create stores a new record and returns it with its assigned id.
	Create(ctx context.Context, fields Fields) (Record, error)
	// Update replaces the fields of the record with the given id. It
	// returns false when no record changed, whether because the id is
	// unknown or because the values are identical.
	Update(ctx context.Context, id string, fields Fields) (bool, error)
	// Delete removes the record with the given id, reporting whether a
	// record was actually removed. Unknown ids are not errors.
	Delete(ctx context.Context, id string) (bool, error)
}
