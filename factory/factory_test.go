package factory_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/ipfs/go-cid"

	"xdao.co/saf/account"
	"xdao.co/saf/addressing"
	"xdao.co/saf/factory"
	"xdao.co/saf/host"
	"xdao.co/saf/storage"
	"xdao.co/saf/trap"
)

// stubDeployer records DeriveAndDeploy calls and derives addresses for a
// fixed identity, so factory semantics are tested without an environment.
type stubDeployer struct {
	self      cid.Cid
	deployed  map[cid.Cid]bool
	blueprint cid.Cid
	initArgs  [][]byte
}

func (d *stubDeployer) DeployedAddress(salt [32]byte) (cid.Cid, error) {
	return addressing.Contract(d.self, salt)
}

func (d *stubDeployer) DeriveAndDeploy(blueprint cid.Cid, salt [32]byte, initArgs [][]byte) (cid.Cid, error) {
	addr, err := addressing.Contract(d.self, salt)
	if err != nil {
		return cid.Undef, err
	}
	if d.deployed[addr] {
		return cid.Undef, trap.New(trap.KindDeploy, "SAF-DEPLOY-201", "instance already deployed at derived address")
	}
	if d.deployed == nil {
		d.deployed = map[cid.Cid]bool{}
	}
	d.deployed[addr] = true
	d.blueprint = blueprint
	d.initArgs = initArgs
	return addr, nil
}

func testOwner(seedByte byte) [account.KeySize]byte {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = seedByte
	}
	priv := ed25519.NewKeyFromSeed(seed)
	var owner [account.KeySize]byte
	copy(owner[:], priv.Public().(ed25519.PublicKey))
	return owner
}

func testCall(t *testing.T) (*host.Invocation, *stubDeployer) {
	t.Helper()
	self, err := addressing.Network("factory-test")
	if err != nil {
		t.Fatalf("Network: %v", err)
	}
	dep := &stubDeployer{self: self, deployed: map[cid.Cid]bool{}}
	return &host.Invocation{
		Self:     self,
		Store:    storage.NewMemKV(),
		Deployer: dep,
		Verifier: host.CryptoVerifier{},
	}, dep
}

func initializedCall(t *testing.T) (*host.Invocation, *stubDeployer, cid.Cid) {
	t.Helper()
	call, dep := testCall(t)
	blueprint, err := addressing.Blueprint(account.Template)
	if err != nil {
		t.Fatalf("Blueprint: %v", err)
	}
	if err := (factory.Factory{}).Initialize(call, [][]byte{blueprint.Bytes()}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return call, dep, blueprint
}

func TestInitialize_WriteOnce(t *testing.T) {
	call, _, blueprint := initializedCall(t)

	err := (factory.Factory{}).Initialize(call, [][]byte{blueprint.Bytes()})
	if trap.Code(err) != "SAF-INIT-201" {
		t.Fatalf("expected SAF-INIT-201, got %v", err)
	}

	// Blueprint must be unchanged by the failed call.
	got, err := (factory.Factory{}).Blueprint(call)
	if err != nil {
		t.Fatalf("Blueprint: %v", err)
	}
	if got != blueprint {
		t.Fatalf("blueprint changed by failed re-initialization")
	}
}

func TestInitialize_RejectsBadArguments(t *testing.T) {
	call, _ := testCall(t)
	if err := (factory.Factory{}).Initialize(call, nil); trap.Code(err) != "SAF-INIT-202" {
		t.Fatalf("no args: got %v", err)
	}
	call, _ = testCall(t)
	if err := (factory.Factory{}).Initialize(call, [][]byte{[]byte("not-a-cid")}); trap.Code(err) != "SAF-INIT-203" {
		t.Fatalf("bad cid: got %v", err)
	}
}

func TestCreate_RequiresBlueprint(t *testing.T) {
	call, _ := testCall(t)
	_, err := (factory.Factory{}).Create(call, testOwner(0xA1))
	if trap.Code(err) != "SAF-DEPLOY-101" {
		t.Fatalf("expected SAF-DEPLOY-101, got %v", err)
	}
}

func TestCreate_DeploysWithOwnerAsSaltAndArgument(t *testing.T) {
	call, dep, blueprint := initializedCall(t)
	owner := testOwner(0xA1)

	addr, err := (factory.Factory{}).Create(call, owner)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	want, err := addressing.Contract(call.Self, owner)
	if err != nil {
		t.Fatalf("Contract: %v", err)
	}
	if addr != want {
		t.Fatalf("deployed at %s, want %s", addr, want)
	}
	if dep.blueprint != blueprint {
		t.Fatalf("deployed wrong blueprint")
	}
	if len(dep.initArgs) != 1 || string(dep.initArgs[0]) != string(owner[:]) {
		t.Fatalf("owner key not passed as the single init argument")
	}
}

func TestCreate_PredictAgreement(t *testing.T) {
	call, _, _ := initializedCall(t)
	owner := testOwner(0xA1)

	predicted, err := (factory.Factory{}).GetAddress(call, owner)
	if err != nil {
		t.Fatalf("GetAddress: %v", err)
	}
	created, err := (factory.Factory{}).Create(call, owner)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if predicted != created {
		t.Fatalf("create/predict mismatch: %s vs %s", created, predicted)
	}
}

func TestGetAddress_DeterministicAndDistinct(t *testing.T) {
	call, _, _ := initializedCall(t)

	a1, err := (factory.Factory{}).GetAddress(call, testOwner(0x01))
	if err != nil {
		t.Fatalf("GetAddress: %v", err)
	}
	a1again, err := (factory.Factory{}).GetAddress(call, testOwner(0x01))
	if err != nil {
		t.Fatalf("GetAddress: %v", err)
	}
	if a1 != a1again {
		t.Fatalf("GetAddress not deterministic")
	}
	a2, err := (factory.Factory{}).GetAddress(call, testOwner(0x02))
	if err != nil {
		t.Fatalf("GetAddress: %v", err)
	}
	if a1 == a2 {
		t.Fatalf("distinct owners produced the same address")
	}
}

func TestCreate_SecondCreateFails(t *testing.T) {
	call, _, blueprint := initializedCall(t)
	owner := testOwner(0xA1)

	if _, err := (factory.Factory{}).Create(call, owner); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := (factory.Factory{}).Create(call, owner)
	if trap.Code(err) != "SAF-DEPLOY-201" {
		t.Fatalf("expected SAF-DEPLOY-201, got %v", err)
	}

	// Factory state survives the failed call.
	got, err := (factory.Factory{}).Blueprint(call)
	if err != nil {
		t.Fatalf("Blueprint after failed create: %v", err)
	}
	if got != blueprint {
		t.Fatalf("blueprint changed by failed create")
	}
}
