// Package env implements the execution environment hosting the smart-account
// contracts.
//
// The environment owns the three capabilities the contracts depend on:
// key-value persistence (one namespace per instance), deterministic
// collision-checked deployment, and signature verification. Invocations are
// serialized per environment and transactional: a failing invocation is a
// trap — every state mutation it attempted, including nested deployments, is
// discarded.
package env

import (
	"sync"

	"github.com/ipfs/go-cid"

	"xdao.co/saf/addressing"
	"xdao.co/saf/host"
	"xdao.co/saf/storage"
	"xdao.co/saf/trap"
)

// Contract is the instantiation surface a blueprint constructor must satisfy.
// Initialize is called exactly once, at deployment, with the constructor
// arguments.
type Contract interface {
	Initialize(call *host.Invocation, args [][]byte) error
}

// Authorizer is implemented by contracts that can act as the authority for
// operations (account instances). The environment calls CheckAuthorization on
// behalf of whatever operation names the instance as its authority; end users
// never call it directly.
type Authorizer interface {
	CheckAuthorization(call *host.Invocation, payloadDigest [32]byte, signature [64]byte, auth []host.Context) error
}

// manifestNamespace maps instance addresses to blueprint IDs. Addresses are
// base32 CID strings, so the name cannot collide with an instance namespace.
const manifestNamespace = "manifest"

// Options configures an environment.
type Options struct {
	// Network names the environment; its identity (the top-level deployer) is
	// derived from it. Required.
	Network string

	// Store backs all persistent state. Defaults to an in-memory store.
	Store storage.Store

	// Verifier is the signature oracle. Defaults to host.CryptoVerifier.
	Verifier host.Verifier
}

// Environment hosts deployed contract instances over a storage.Store.
type Environment struct {
	mu         sync.Mutex
	identity   cid.Cid
	store      storage.Store
	verifier   host.Verifier
	manifest   storage.KV
	blueprints map[cid.Cid]func() Contract
}

// New constructs an environment. Reopening the same Store with the same
// network ID re-attaches to all previously deployed instances.
func New(opts Options) (*Environment, error) {
	identity, err := addressing.Network(opts.Network)
	if err != nil {
		return nil, err
	}
	store := opts.Store
	if store == nil {
		store = storage.NewMemStore()
	}
	verifier := opts.Verifier
	if verifier == nil {
		verifier = host.CryptoVerifier{}
	}
	manifest, err := store.Namespace(manifestNamespace)
	if err != nil {
		return nil, trap.Wrap(trap.KindStorage, "SAF-ENV-001", "opening manifest namespace", err)
	}
	return &Environment{
		identity:   identity,
		store:      store,
		verifier:   verifier,
		manifest:   manifest,
		blueprints: map[cid.Cid]func() Contract{},
	}, nil
}

// Identity returns the environment's deployer identity.
func (e *Environment) Identity() cid.Cid { return e.identity }

// RegisterBlueprint registers a code template and its constructor, returning
// the blueprint ID (the CID of the code bytes). Instances recorded in the
// store bind to their constructor lazily, so blueprints must be registered
// before their instances are invoked, not before the environment is opened.
func (e *Environment) RegisterBlueprint(code []byte, constructor func() Contract) (cid.Cid, error) {
	if constructor == nil {
		return cid.Undef, trap.New(trap.KindDeploy, "SAF-ENV-002", "nil blueprint constructor")
	}
	id, err := addressing.Blueprint(code)
	if err != nil {
		return cid.Undef, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.blueprints[id]; exists {
		return cid.Undef, trap.New(trap.KindDeploy, "SAF-ENV-003", "blueprint already registered")
	}
	e.blueprints[id] = constructor
	return id, nil
}

// Deploy instantiates blueprint at the address derived from the environment's
// own identity and salt. Contracts deploying from within an invocation use
// their Invocation.Deployer instead, which derives from the contract's
// identity.
func (e *Environment) Deploy(blueprint cid.Cid, salt [32]byte, initArgs [][]byte) (cid.Cid, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.begin()
	addr, err := t.deploy(e.identity, blueprint, salt, initArgs)
	if err != nil {
		return cid.Undef, err
	}
	if err := t.commit(); err != nil {
		return cid.Undef, err
	}
	return addr, nil
}

// Invoke runs fn as a mutating invocation on the instance at addr. All writes
// (and nested deployments) are staged and committed only if fn returns nil.
func (e *Environment) Invoke(addr cid.Cid, fn func(call *host.Invocation) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.begin()
	call, err := t.invocation(addr)
	if err != nil {
		return err
	}
	if err := fn(call); err != nil {
		return err
	}
	return t.commit()
}

// View runs fn as a read-only invocation: writes trap and nothing commits.
func (e *Environment) View(addr cid.Cid, fn func(call *host.Invocation) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	call, err := e.viewInvocation(addr)
	if err != nil {
		return err
	}
	return fn(call)
}

// Exists reports whether an instance is deployed at addr.
func (e *Environment) Exists(addr cid.Cid) bool {
	if !addr.Defined() {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.manifest.Has(addr.String())
}

// RequireAuth asks the instance at addr to authorize an operation described
// by auth, presenting the payload digest and the signature over it. A non-nil
// return means the enclosing operation must be aborted.
func (e *Environment) RequireAuth(addr cid.Cid, payloadDigest [32]byte, signature [64]byte, auth []host.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	contract, err := e.bind(addr)
	if err != nil {
		return err
	}
	authorizer, ok := contract.(Authorizer)
	if !ok {
		return trap.New(trap.KindAuth, "SAF-AUTH-102", "instance cannot act as an authority")
	}
	call, err := e.viewInvocation(addr)
	if err != nil {
		return err
	}
	return authorizer.CheckAuthorization(call, payloadDigest, signature, auth)
}

// bind resolves the instance at addr to a fresh contract value via its
// recorded blueprint. Callers hold e.mu.
func (e *Environment) bind(addr cid.Cid) (Contract, error) {
	if !addr.Defined() {
		return nil, trap.New(trap.KindDeploy, "SAF-DEPLOY-203", "no instance at address")
	}
	raw, err := e.manifest.Get(addr.String())
	if err != nil {
		return nil, trap.Wrap(trap.KindDeploy, "SAF-DEPLOY-203", "no instance at address", err)
	}
	blueprint, err := cid.Cast(raw)
	if err != nil {
		return nil, trap.Wrap(trap.KindInternal, "SAF-ENV-004", "manifest entry is malformed", err)
	}
	constructor, ok := e.blueprints[blueprint]
	if !ok {
		return nil, trap.New(trap.KindDeploy, "SAF-DEPLOY-202", "unknown blueprint")
	}
	return constructor(), nil
}

func (e *Environment) viewInvocation(addr cid.Cid) (*host.Invocation, error) {
	if _, err := e.bind(addr); err != nil {
		return nil, err
	}
	ns, err := e.store.Namespace(addr.String())
	if err != nil {
		return nil, trap.Wrap(trap.KindStorage, "SAF-ENV-001", "opening instance namespace", err)
	}
	return &host.Invocation{
		Self:     addr,
		Store:    readOnly{ns},
		Deployer: viewDeployer{self: addr},
		Verifier: e.verifier,
	}, nil
}
