package host

import (
	"crypto/ed25519"

	"github.com/cloudflare/circl/sign/dilithium/mode3"

	"xdao.co/saf/trap"
)

// Signature schemes understood by CryptoVerifier.
const (
	SchemeEd25519    = "ed25519"
	SchemeDilithium3 = "dilithium3"
)

// CryptoVerifier is the host's Verifier implementation.
//
// It supports ed25519 (the fixed account scheme) and dilithium3 (post-quantum,
// via circl). Key and signature lengths are validated where the scheme fixes
// them, so a malformed input is reported as malformed rather than as a bad
// signature.
type CryptoVerifier struct{}

var _ Verifier = CryptoVerifier{}

func (CryptoVerifier) Verify(scheme string, publicKey, message, signature []byte) error {
	switch scheme {
	case SchemeEd25519:
		if len(publicKey) != ed25519.PublicKeySize {
			return trap.New(trap.KindCrypto, "SAF-CRYPTO-114", "invalid ed25519 public key length")
		}
		if len(signature) != ed25519.SignatureSize {
			return trap.New(trap.KindCrypto, "SAF-CRYPTO-132", "invalid ed25519 signature length")
		}
		if !ed25519.Verify(ed25519.PublicKey(publicKey), message, signature) {
			return trap.New(trap.KindCrypto, "SAF-CRYPTO-401", "signature invalid")
		}
		return nil
	case SchemeDilithium3:
		var pk mode3.PublicKey
		if err := pk.UnmarshalBinary(publicKey); err != nil {
			return trap.Wrap(trap.KindCrypto, "SAF-CRYPTO-115", "invalid dilithium3 public key", err)
		}
		if len(signature) != mode3.SignatureSize {
			return trap.New(trap.KindCrypto, "SAF-CRYPTO-133", "invalid dilithium3 signature length")
		}
		if !mode3.Verify(&pk, message, signature) {
			return trap.New(trap.KindCrypto, "SAF-CRYPTO-401", "signature invalid")
		}
		return nil
	default:
		return trap.New(trap.KindCrypto, "SAF-CRYPTO-301", "unsupported signature scheme")
	}
}
