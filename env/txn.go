package env

import (
	"github.com/ipfs/go-cid"

	"xdao.co/saf/addressing"
	"xdao.co/saf/host"
	"xdao.co/saf/storage"
	"xdao.co/saf/trap"
)

// txn stages every namespace an invocation touches, including namespaces of
// instances it deploys, so that one commit (or none) covers the whole call.
// Callers hold the environment lock for the transaction's lifetime.
type txn struct {
	env      *Environment
	manifest *storage.Staged
	staged   map[string]*storage.Staged
}

func (e *Environment) begin() *txn {
	return &txn{
		env:      e,
		manifest: storage.NewStaged(e.manifest),
		staged:   map[string]*storage.Staged{},
	}
}

func (t *txn) namespace(name string) (*storage.Staged, error) {
	if st, ok := t.staged[name]; ok {
		return st, nil
	}
	ns, err := t.env.store.Namespace(name)
	if err != nil {
		return nil, trap.Wrap(trap.KindStorage, "SAF-ENV-001", "opening instance namespace", err)
	}
	st := storage.NewStaged(ns)
	t.staged[name] = st
	return st, nil
}

// invocation builds the mutating call view for an existing instance.
func (t *txn) invocation(addr cid.Cid) (*host.Invocation, error) {
	if !addr.Defined() || !t.manifest.Has(addr.String()) {
		return nil, trap.New(trap.KindDeploy, "SAF-DEPLOY-203", "no instance at address")
	}
	st, err := t.namespace(addr.String())
	if err != nil {
		return nil, err
	}
	return &host.Invocation{
		Self:     addr,
		Store:    st,
		Deployer: txnDeployer{txn: t, self: addr},
		Verifier: t.env.verifier,
	}, nil
}

// deploy derives the address for (deployer, salt), rejects an occupied one,
// and initializes a fresh instance there. All writes stay in the transaction.
func (t *txn) deploy(deployer, blueprint cid.Cid, salt [32]byte, initArgs [][]byte) (cid.Cid, error) {
	addr, err := addressing.Contract(deployer, salt)
	if err != nil {
		return cid.Undef, err
	}
	if t.manifest.Has(addr.String()) {
		return cid.Undef, trap.New(trap.KindDeploy, "SAF-DEPLOY-201", "instance already deployed at derived address")
	}
	constructor, ok := t.env.blueprints[blueprint]
	if !ok {
		return cid.Undef, trap.New(trap.KindDeploy, "SAF-DEPLOY-202", "unknown blueprint")
	}

	st, err := t.namespace(addr.String())
	if err != nil {
		return cid.Undef, err
	}
	call := &host.Invocation{
		Self:     addr,
		Store:    st,
		Deployer: txnDeployer{txn: t, self: addr},
		Verifier: t.env.verifier,
	}
	if err := constructor().Initialize(call, initArgs); err != nil {
		return cid.Undef, err
	}
	if err := t.manifest.Set(addr.String(), blueprint.Bytes()); err != nil {
		return cid.Undef, trap.Wrap(trap.KindStorage, "SAF-ENV-005", "recording instance", err)
	}
	return addr, nil
}

func (t *txn) commit() error {
	for name, st := range t.staged {
		if err := st.Commit(); err != nil {
			return trap.Wrap(trap.KindStorage, "SAF-ENV-006", "committing namespace "+name, err)
		}
	}
	if err := t.manifest.Commit(); err != nil {
		return trap.Wrap(trap.KindStorage, "SAF-ENV-006", "committing manifest", err)
	}
	return nil
}

// txnDeployer is the host.Deployer bound to a contract identity inside a
// transaction. Nested deployments stage into the same transaction, so an
// outer trap unwinds them too.
type txnDeployer struct {
	txn  *txn
	self cid.Cid
}

func (d txnDeployer) DeployedAddress(salt [32]byte) (cid.Cid, error) {
	return addressing.Contract(d.self, salt)
}

func (d txnDeployer) DeriveAndDeploy(blueprint cid.Cid, salt [32]byte, initArgs [][]byte) (cid.Cid, error) {
	return d.txn.deploy(d.self, blueprint, salt, initArgs)
}

// viewDeployer serves read-only invocations: address prediction stays pure,
// deployment traps.
type viewDeployer struct {
	self cid.Cid
}

func (d viewDeployer) DeployedAddress(salt [32]byte) (cid.Cid, error) {
	return addressing.Contract(d.self, salt)
}

func (d viewDeployer) DeriveAndDeploy(cid.Cid, [32]byte, [][]byte) (cid.Cid, error) {
	return cid.Undef, trap.New(trap.KindDeploy, "SAF-ENV-007", "deploy attempted in read-only invocation")
}

// readOnly guards the store of read-only invocations.
type readOnly struct {
	base storage.KV
}

func (r readOnly) Get(key string) ([]byte, error) { return r.base.Get(key) }
func (r readOnly) Has(key string) bool            { return r.base.Has(key) }
func (r readOnly) Set(string, []byte) error {
	return trap.New(trap.KindStorage, "SAF-ENV-008", "write attempted in read-only invocation")
}
