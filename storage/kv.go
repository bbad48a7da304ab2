package storage

// KV is the host's minimal key-value storage interface.
//
// Contract:
// - Get MUST return ErrNotFound when the key is absent.
// - Set MUST overwrite; values are owned by the store after Set returns.
// - Has MUST be side-effect free.
// - A KV is an explicit object handed to each invocation; there are no
//   ambient globals.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Has(key string) bool
}

// Store hands out one KV namespace per contract instance (plus one for the
// environment's own manifest). Namespaces are isolated: a key written in one
// is never visible in another.
type Store interface {
	Namespace(name string) (KV, error)
}
