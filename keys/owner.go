package keys

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// OwnerKeyFromPublicKey encodes an Ed25519 public key into the owner-key
// string form used by the CLI and on the wire: "ed25519:" + base64(pubkey).
func OwnerKeyFromPublicKey(pub ed25519.PublicKey) (string, error) {
	if l := len(pub); l != ed25519.PublicKeySize {
		return "", fmt.Errorf("ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, l)
	}
	return "ed25519:" + base64.StdEncoding.EncodeToString(pub), nil
}

// OwnerKeyFromSeed returns the owner-key string for an Ed25519 seed.
func OwnerKeyFromSeed(seed []byte) string {
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	out, _ := OwnerKeyFromPublicKey(pub)
	return out
}

// ParseOwnerKey decodes an "ed25519:<base64>" owner-key string into the raw
// 32-byte public key.
func ParseOwnerKey(s string) ([ed25519.PublicKeySize]byte, error) {
	var owner [ed25519.PublicKeySize]byte
	alg, enc, ok := strings.Cut(s, ":")
	if !ok {
		return owner, errors.New("invalid owner key encoding")
	}
	if alg != "ed25519" {
		return owner, fmt.Errorf("unsupported owner key scheme %q", alg)
	}
	pub, err := decodeBase64(enc)
	if err != nil {
		return owner, fmt.Errorf("invalid owner key base64: %w", err)
	}
	if len(pub) != ed25519.PublicKeySize {
		return owner, errors.New("invalid ed25519 public key length")
	}
	copy(owner[:], pub)
	return owner, nil
}

// DeriveLabeledSeed deterministically derives a sub-account Ed25519 seed from
// a root seed. Distinct labels yield independent owner keys, so one root seed
// can back many accounts.
func DeriveLabeledSeed(rootSeed []byte, label string) ([]byte, error) {
	if len(rootSeed) != ed25519.SeedSize {
		return nil, fmt.Errorf("root seed must be %d bytes", ed25519.SeedSize)
	}
	if err := CheckLabel(label); err != nil {
		return nil, err
	}

	h := sha256.New()
	_, _ = h.Write(rootSeed)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte("xdao-saf-wallet-v1"))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte("label:"))
	_, _ = h.Write([]byte(label))
	sum := h.Sum(nil)
	if len(sum) < ed25519.SeedSize {
		return nil, errors.New("kdf output too short")
	}
	out := make([]byte, ed25519.SeedSize)
	copy(out, sum[:ed25519.SeedSize])
	return out, nil
}

func decodeBase64(s string) ([]byte, error) {
	// Prefer standard padded encoding, but accept raw encoding too.
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
