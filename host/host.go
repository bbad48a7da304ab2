// Package host defines the capability contracts the execution environment
// injects into contract invocations: key-value storage, deterministic
// deployment, and signature verification.
//
// Contracts depend only on these contracts, never on environment internals.
package host

import (
	"github.com/ipfs/go-cid"

	"xdao.co/saf/storage"
)

// Deployer is the deterministic-deployment capability, bound to the calling
// contract's identity.
//
// Contract:
// - DeployedAddress MUST be pure: same salt, same address, no side effects.
// - DeriveAndDeploy MUST deploy at exactly the address DeployedAddress
//   returns for the same salt, MUST reject an occupied address, and MUST be
//   atomic: either the instance exists fully initialized or nothing changed.
type Deployer interface {
	DeployedAddress(salt [32]byte) (cid.Cid, error)
	DeriveAndDeploy(blueprint cid.Cid, salt [32]byte, initArgs [][]byte) (cid.Cid, error)
}

// Verifier is the signature-verification oracle. Implementations return nil
// when signature is a valid signature of message under publicKey in the named
// scheme, and an error otherwise. Callers treat it as a black box.
type Verifier interface {
	Verify(scheme string, publicKey, message, signature []byte) error
}

// Invocation is the per-call view handed to a contract: its own identity and
// the injected capabilities. The environment stages Store for mutating calls
// and discards all writes when the call traps.
type Invocation struct {
	Self     cid.Cid
	Store    storage.KV
	Deployer Deployer
	Verifier Verifier
}

// Context describes one entry of the authorization context: which contract
// function the signed payload is about to invoke. The account instance
// accepts it but never inspects it; it exists for environments and account
// implementations that do scope their authorization.
type Context struct {
	Contract cid.Cid
	Function string
	Args     [][]byte
}
