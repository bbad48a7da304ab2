// Package factory implements the deterministic account factory.
//
// The factory turns an owner public key into a living account instance at a
// predictable address. Creation is permissionless by design: the only gate on
// owning an account is possession of the private key later used for
// authorization, not who paid to create the object. That enables delegated
// (gasless) provisioning — anyone may deploy an account for any key.
package factory

import (
	"github.com/ipfs/go-cid"

	"xdao.co/saf/account"
	"xdao.co/saf/host"
	"xdao.co/saf/trap"
)

const blueprintStorageKey = "blueprint"

// Template identifies the factory code template. Its bytes are what the
// blueprint ID is derived from.
var Template = []byte("xdao.co/saf/factory/v1")

// Factory is the factory contract. It is stateless; the blueprint ID lives in
// the invocation's store.
type Factory struct{}

// Initialize stores the account blueprint ID. It is called exactly once by
// the deployment mechanism.
//
// The write-once guard is local defense-in-depth: the environment already
// calls Initialize only once per deploy, but the guard removes that
// unverified precondition for the price of one Has.
func (Factory) Initialize(call *host.Invocation, args [][]byte) error {
	if len(args) != 1 {
		return trap.New(trap.KindInit, "SAF-INIT-202", "factory requires one blueprint argument")
	}
	blueprint, err := cid.Cast(args[0])
	if err != nil || !blueprint.Defined() {
		return trap.Wrap(trap.KindInit, "SAF-INIT-203", "factory blueprint argument is not a valid CID", err)
	}
	if call.Store.Has(blueprintStorageKey) {
		return trap.New(trap.KindInit, "SAF-INIT-201", "blueprint is already set")
	}
	return call.Store.Set(blueprintStorageKey, blueprint.Bytes())
}

// Blueprint returns the stored account blueprint ID.
func (Factory) Blueprint(call *host.Invocation) (cid.Cid, error) {
	raw, err := call.Store.Get(blueprintStorageKey)
	if err != nil {
		return cid.Undef, trap.Wrap(trap.KindDeploy, "SAF-DEPLOY-101", "blueprint not set", err)
	}
	blueprint, err := cid.Cast(raw)
	if err != nil {
		return cid.Undef, trap.Wrap(trap.KindInternal, "SAF-DEPLOY-102", "stored blueprint is malformed", err)
	}
	return blueprint, nil
}

// Create deploys a new account instance owned by owner and returns its
// address. The owner key doubles as the deployment salt, so the address is
// exactly what GetAddress predicts. No caller authentication happens here.
//
// Create traps if an instance already occupies the derived address: the first
// caller wins and later callers observe the error, with no partial state.
func (f Factory) Create(call *host.Invocation, owner [account.KeySize]byte) (cid.Cid, error) {
	blueprint, err := f.Blueprint(call)
	if err != nil {
		return cid.Undef, err
	}
	return call.Deployer.DeriveAndDeploy(blueprint, owner, [][]byte{owner[:]})
}

// GetAddress returns the address Create would use for owner. It is pure and
// side-effect free; callers use it to predict addresses and to check for an
// existing instance before attempting Create.
func (Factory) GetAddress(call *host.Invocation, owner [account.KeySize]byte) (cid.Cid, error) {
	return call.Deployer.DeployedAddress(owner)
}
