package account_test

import (
	"crypto/ed25519"
	"crypto/sha256"
	"testing"

	"xdao.co/saf/account"
	"xdao.co/saf/host"
	"xdao.co/saf/storage"
	"xdao.co/saf/trap"
)

func mustKeypair(t *testing.T, seedByte byte) ([account.KeySize]byte, ed25519.PrivateKey) {
	t.Helper()
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = seedByte
	}
	priv := ed25519.NewKeyFromSeed(seed)
	var owner [account.KeySize]byte
	copy(owner[:], priv.Public().(ed25519.PublicKey))
	return owner, priv
}

func testCall() *host.Invocation {
	return &host.Invocation{
		Store:    storage.NewMemKV(),
		Verifier: host.CryptoVerifier{},
	}
}

func signDigest(priv ed25519.PrivateKey, digest [32]byte) [account.SignatureSize]byte {
	var sig [account.SignatureSize]byte
	copy(sig[:], ed25519.Sign(priv, digest[:]))
	return sig
}

func TestInitialize_StoresOwnerOnce(t *testing.T) {
	owner, _ := mustKeypair(t, 0xA1)
	other, _ := mustKeypair(t, 0xB2)
	call := testCall()

	if err := (account.Instance{}).Initialize(call, [][]byte{owner[:]}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	err := (account.Instance{}).Initialize(call, [][]byte{other[:]})
	if err == nil {
		t.Fatalf("expected re-initialization to fail")
	}
	if trap.Code(err) != "SAF-INIT-101" {
		t.Fatalf("expected SAF-INIT-101, got %v", err)
	}

	// The stored owner must be unchanged by the failed call.
	got, err := (account.Instance{}).Owner(call)
	if err != nil {
		t.Fatalf("Owner: %v", err)
	}
	if got != owner {
		t.Fatalf("owner changed by failed re-initialization")
	}
}

func TestInitialize_RejectsBadArguments(t *testing.T) {
	owner, _ := mustKeypair(t, 0xA1)

	cases := [][][]byte{
		nil,
		{},
		{owner[:16]},
		{owner[:], owner[:]},
	}
	for _, args := range cases {
		err := (account.Instance{}).Initialize(testCall(), args)
		if trap.Code(err) != "SAF-INIT-102" {
			t.Fatalf("args %v: got %v", args, err)
		}
	}
}

func TestCheckAuthorization_AcceptsOwnerSignature(t *testing.T) {
	owner, priv := mustKeypair(t, 0xA1)
	call := testCall()
	if err := (account.Instance{}).Initialize(call, [][]byte{owner[:]}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	digest := sha256.Sum256([]byte("transfer:100"))
	sig := signDigest(priv, digest)

	if err := (account.Instance{}).CheckAuthorization(call, digest, sig, nil); err != nil {
		t.Fatalf("CheckAuthorization: %v", err)
	}
}

func TestCheckAuthorization_RejectsSignatureOverOtherPayload(t *testing.T) {
	owner, priv := mustKeypair(t, 0xA1)
	call := testCall()
	if err := (account.Instance{}).Initialize(call, [][]byte{owner[:]}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	digest := sha256.Sum256([]byte("transfer:100"))
	otherDigest := sha256.Sum256([]byte("transfer:999"))
	sig := signDigest(priv, otherDigest)

	err := (account.Instance{}).CheckAuthorization(call, digest, sig, nil)
	if err == nil {
		t.Fatalf("expected rejection")
	}
	if !trap.IsKind(err, trap.KindAuth) {
		t.Fatalf("expected KindAuth, got %v", err)
	}
}

func TestCheckAuthorization_RejectsBitFlippedSignature(t *testing.T) {
	owner, priv := mustKeypair(t, 0xA1)
	call := testCall()
	if err := (account.Instance{}).Initialize(call, [][]byte{owner[:]}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	digest := sha256.Sum256([]byte("transfer:100"))
	sig := signDigest(priv, digest)
	for _, i := range []int{0, 31, 63} {
		flipped := sig
		flipped[i] ^= 0x01
		if err := (account.Instance{}).CheckAuthorization(call, digest, flipped, nil); err == nil {
			t.Fatalf("bit flip at %d: expected rejection", i)
		}
	}
}

func TestCheckAuthorization_RejectsWhenUninitialized(t *testing.T) {
	_, priv := mustKeypair(t, 0xA1)
	digest := sha256.Sum256([]byte("transfer:100"))
	sig := signDigest(priv, digest)

	err := (account.Instance{}).CheckAuthorization(testCall(), digest, sig, nil)
	if trap.Code(err) != "SAF-AUTH-101" {
		t.Fatalf("expected SAF-AUTH-101, got %v", err)
	}
}

func TestCheckAuthorization_ContextIrrelevance(t *testing.T) {
	owner, priv := mustKeypair(t, 0xA1)
	call := testCall()
	if err := (account.Instance{}).Initialize(call, [][]byte{owner[:]}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	digest := sha256.Sum256([]byte("transfer:100"))
	goodSig := signDigest(priv, digest)
	badSig := goodSig
	badSig[0] ^= 0x01

	contexts := [][]host.Context{
		nil,
		{},
		{{Function: "transfer", Args: [][]byte{[]byte("100")}}},
		{{Function: "transfer"}, {Function: "burn"}},
	}
	for _, auth := range contexts {
		if err := (account.Instance{}).CheckAuthorization(call, digest, goodSig, auth); err != nil {
			t.Fatalf("auth %v: valid signature rejected: %v", auth, err)
		}
		if err := (account.Instance{}).CheckAuthorization(call, digest, badSig, auth); err == nil {
			t.Fatalf("auth %v: invalid signature accepted", auth)
		}
	}
}
