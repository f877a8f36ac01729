// Package vault defines the password record model shared by the service,
// the storage backends and the clients.
package vault

import (
	"errors"
	"fmt"
)

// MinFieldLength is the admission boundary: every field of a draft must be
// strictly longer than this to be saved.
const MinFieldLength = 3

// ErrInvalidFields reports a draft that fails the admission rule.
var ErrInvalidFields = errors.New("every field must be longer than 3 characters")

// Fields is the user-editable content of a record.
type Fields struct {
	Site     string `json:"site" bson:"site"`
	Username string `json:"username" bson:"username"`
	Password string `json:"password" bson:"password"`
}

// Record is a stored credential. The id is assigned by the store on
// creation and never changes afterwards.
type Record struct {
	ID     string `json:"id" bson:"id"`
	Fields `bson:",inline"`
}

// Validate applies the admission rule to every field.
func (f Fields) Validate() error {
	for name, value := range map[string]string{
		"site":     f.Site,
		"username": f.Username,
		"password": f.Password,
	} {
		if len(value) <= MinFieldLength {
			return fmt.Errorf("%w: %s is too short", ErrInvalidFields, name)
		}
	}
	return nil
}

// Complete reports whether every field is present. Unlike Validate it does
// not apply the length rule; the service only requires presence.
func (f Fields) Complete() bool {
	return f.Site != "" && f.Username != "" && f.Password != ""
}
