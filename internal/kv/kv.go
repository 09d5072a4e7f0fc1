// Package kv provides the string key/value store that backs persistence.
// Collections are serialized whole and written under a fixed key; the store
// never interprets the values it holds.
package kv

// Store is the persistence port. Load reports ok=false when the key has
// never been written (or was deleted), which callers treat as "use the
// default".
type Store interface {
	Load(key string) (value string, ok bool, err error)
	Save(key, value string) error
	Delete(key string) error
	Close() error
}
