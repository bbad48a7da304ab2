package keys

import (
	"crypto/ed25519"
	"os"
	"testing"
)

func testSeed(b byte) []byte {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = b
	}
	return seed
}

func TestKeyStore_InitExportRoundTrip(t *testing.T) {
	ks, err := CreateKeyStore(t.TempDir())
	if err != nil {
		t.Fatalf("CreateKeyStore: %v", err)
	}
	ownerKey, path, err := ks.InitializeRootKey("alice", testSeed(0x44), false)
	if err != nil {
		t.Fatalf("InitializeRootKey: %v", err)
	}
	if ownerKey != OwnerKeyFromSeed(testSeed(0x44)) {
		t.Fatalf("owner key mismatch")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("seed file mode: got %v", info.Mode().Perm())
	}

	exported, err := ks.ExportKey("alice", "")
	if err != nil {
		t.Fatalf("ExportKey: %v", err)
	}
	if exported != ownerKey {
		t.Fatalf("ExportKey mismatch")
	}
}

func TestKeyStore_RefusesOverwriteWithoutForce(t *testing.T) {
	ks, err := CreateKeyStore(t.TempDir())
	if err != nil {
		t.Fatalf("CreateKeyStore: %v", err)
	}
	if _, _, err := ks.InitializeRootKey("alice", testSeed(0x01), false); err != nil {
		t.Fatalf("InitializeRootKey: %v", err)
	}
	if _, _, err := ks.InitializeRootKey("alice", testSeed(0x02), false); err == nil {
		t.Fatalf("expected error re-initializing without overwrite")
	}
	if _, _, err := ks.InitializeRootKey("alice", testSeed(0x02), true); err != nil {
		t.Fatalf("InitializeRootKey with overwrite: %v", err)
	}
}

func TestKeyStore_DeriveAndList(t *testing.T) {
	ks, err := CreateKeyStore(t.TempDir())
	if err != nil {
		t.Fatalf("CreateKeyStore: %v", err)
	}
	if _, _, err := ks.InitializeRootKey("alice", testSeed(0x55), false); err != nil {
		t.Fatalf("InitializeRootKey: %v", err)
	}
	derived, _, err := ks.DeriveKeyFromLabel("alice", "savings", false)
	if err != nil {
		t.Fatalf("DeriveKeyFromLabel: %v", err)
	}

	wantSeed, err := DeriveLabeledSeed(testSeed(0x55), "savings")
	if err != nil {
		t.Fatalf("DeriveLabeledSeed: %v", err)
	}
	if derived != OwnerKeyFromSeed(wantSeed) {
		t.Fatalf("derived owner key mismatch")
	}

	entries, err := ks.ListKeys()
	if err != nil {
		t.Fatalf("ListKeys: %v", err)
	}
	if len(entries) != 1 || entries[0].Identifier != "alice" {
		t.Fatalf("ListKeys: got %+v", entries)
	}
	if len(entries[0].Labels) != 1 || entries[0].Labels[0] != "savings" {
		t.Fatalf("ListKeys labels: got %+v", entries[0].Labels)
	}
}

func TestKeyStore_LoadSeedSources(t *testing.T) {
	ks, err := CreateKeyStore(t.TempDir())
	if err != nil {
		t.Fatalf("CreateKeyStore: %v", err)
	}
	if _, _, err := ks.InitializeRootKey("alice", testSeed(0x66), false); err != nil {
		t.Fatalf("InitializeRootKey: %v", err)
	}

	byName, err := ks.LoadSeed("", "alice", "", "")
	if err != nil {
		t.Fatalf("LoadSeed by name: %v", err)
	}
	if string(byName) != string(testSeed(0x66)) {
		t.Fatalf("LoadSeed by name mismatch")
	}

	const seedHex = "6767676767676767676767676767676767676767676767676767676767676767"
	byHex, err := ks.LoadSeed("0x"+seedHex, "", "", "")
	if err != nil {
		t.Fatalf("LoadSeed by hex: %v", err)
	}
	if len(byHex) != ed25519.SeedSize || byHex[0] != 0x67 {
		t.Fatalf("LoadSeed by hex: unexpected %v", byHex)
	}

	if _, err := ks.LoadSeed("", "", "", ""); err == nil {
		t.Fatalf("expected error with no signer")
	}
}
