// Package account implements the single-key smart-account instance.
//
// An instance stores exactly one immutable owner public key and authorizes
// every operation performed "as" the account by one ed25519 signature check
// against that key. There is no second key, no rotation, and no per-operation
// policy: the authorization context is accepted and ignored.
package account

import (
	"crypto/ed25519"

	"xdao.co/saf/host"
	"xdao.co/saf/trap"
)

const (
	// KeySize is the owner public key length (ed25519).
	KeySize = ed25519.PublicKeySize
	// SignatureSize is the fixed signature length (ed25519).
	SignatureSize = ed25519.SignatureSize
)

const ownerStorageKey = "owner"

// Template identifies the account code template. Its bytes are what the
// blueprint ID is derived from.
var Template = []byte("xdao.co/saf/account/v1")

// Instance is the account contract. It is stateless; all state lives in the
// invocation's store.
type Instance struct{}

// Initialize stores the owner public key. It is called exactly once by the
// deployment mechanism, with the key as the single argument, and traps if an
// owner is already stored.
func (Instance) Initialize(call *host.Invocation, args [][]byte) error {
	if len(args) != 1 || len(args[0]) != KeySize {
		return trap.New(trap.KindInit, "SAF-INIT-102", "account requires one 32-byte owner key argument")
	}
	if call.Store.Has(ownerStorageKey) {
		return trap.New(trap.KindInit, "SAF-INIT-101", "owner is already set")
	}
	return call.Store.Set(ownerStorageKey, args[0])
}

// Owner returns the stored owner public key.
func (Instance) Owner(call *host.Invocation) ([KeySize]byte, error) {
	var owner [KeySize]byte
	raw, err := call.Store.Get(ownerStorageKey)
	if err != nil {
		return owner, trap.Wrap(trap.KindAuth, "SAF-AUTH-101", "missing owner", err)
	}
	if len(raw) != KeySize {
		return owner, trap.New(trap.KindInternal, "SAF-AUTH-103", "stored owner key is malformed")
	}
	copy(owner[:], raw)
	return owner, nil
}

// CheckAuthorization verifies that signature is a valid ed25519 signature of
// payloadDigest under the stored owner key.
//
// The environment invokes this whenever an operation claims the account as
// its authority; a non-nil return aborts the whole enclosing operation.
// auth describes which operations are being authorized and is deliberately
// not inspected: one key authorizes everything uniformly.
func (a Instance) CheckAuthorization(call *host.Invocation, payloadDigest [32]byte, signature [SignatureSize]byte, auth []host.Context) error {
	_ = auth

	owner, err := a.Owner(call)
	if err != nil {
		return err
	}
	if err := call.Verifier.Verify(host.SchemeEd25519, owner[:], payloadDigest[:], signature[:]); err != nil {
		return trap.Wrap(trap.KindAuth, "SAF-AUTH-401", "authorization rejected", err)
	}
	return nil
}
