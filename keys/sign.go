package keys

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"golang.org/x/crypto/sha3"
)

// DigestSize is the fixed payload digest length presented to account
// instances for authorization.
const DigestSize = 32

// PayloadDigest hashes a payload into the 32-byte digest an account instance
// authorizes. hashAlg must be one of: sha256, sha3-256.
func PayloadDigest(hashAlg string, payload []byte) ([DigestSize]byte, error) {
	switch hashAlg {
	case "sha256":
		return sha256.Sum256(payload), nil
	case "sha3-256":
		return sha3.Sum256(payload), nil
	default:
		return [DigestSize]byte{}, fmt.Errorf("unsupported hash algorithm: %q", hashAlg)
	}
}

// SignDigest returns the ed25519 signature over a payload digest.
func SignDigest(privateKey ed25519.PrivateKey, digest [DigestSize]byte) [ed25519.SignatureSize]byte {
	var sig [ed25519.SignatureSize]byte
	copy(sig[:], ed25519.Sign(privateKey, digest[:]))
	return sig
}

// SignEd25519SHA256 returns a base64 signature over sha256(payload).
func SignEd25519SHA256(payload []byte, privateKey ed25519.PrivateKey) string {
	digest := sha256.Sum256(payload)
	sig := ed25519.Sign(privateKey, digest[:])
	return base64.StdEncoding.EncodeToString(sig)
}

// SignDilithium3 returns a base64 dilithium3 signature over a payload digest.
func SignDilithium3(digest [DigestSize]byte, privateKey *mode3.PrivateKey) (string, error) {
	if privateKey == nil {
		return "", fmt.Errorf("missing private key")
	}
	sig := make([]byte, mode3.SignatureSize)
	mode3.SignTo(privateKey, digest[:], sig)
	return base64.StdEncoding.EncodeToString(sig), nil
}

// GenerateDilithium3Keypair returns a new Dilithium3 keypair.
func GenerateDilithium3Keypair(rand io.Reader) (*mode3.PublicKey, *mode3.PrivateKey, error) {
	return mode3.GenerateKey(rand)
}
