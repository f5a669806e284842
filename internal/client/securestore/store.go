// Package securestore provides the encrypted key-value store backing the
// credential repository. Values are sealed with AES-GCM before they touch
// disk; the key material lives in a separate 0600 keyfile.
package securestore

import "context"

// Store is an opaque secure key-value store for small string values.
//
// Contract:
//   - Set: persist value under key, overwriting any previous value.
//   - Get: return the stored value, or "" with a nil error when the key
//     is not present.
//   - Delete: remove the key; deleting a missing key is not an error.
type Store interface {
	Set(ctx context.Context, key string, value string) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
