package ports

import "github.com/parkwise/parking-client/internal/core/domain"

// CredentialStore is the durable holder for the session credential.
//
// Set merges the non-empty fields of partial into the stored record and
// persists the result. Clear erases every field and removes the durable
// backing entry. Implementations perform no validation of token contents.
type CredentialStore interface {
	Get() (domain.Credential, error)
	Set(partial domain.Credential) error
	Clear() error
}
