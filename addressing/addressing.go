// Package addressing derives the deterministic identifiers used by the
// smart-account core.
//
// Every identity in the system is a CIDv1 using the "raw" multicodec and a
// sha2-256 multihash: network identities, blueprint IDs, and contract
// addresses. Contract addresses are a pure function of (deployer identity,
// salt); for a fixed deployer the mapping is total, deterministic, and
// collision-resistant over distinct salts. The same helper backs both
// deployment and address prediction so the two can never disagree.
package addressing

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"xdao.co/saf/trap"
)

// SaltSize is the fixed salt length. The factory uses the 32-byte owner
// public key as the salt, so an owner key and a salt are the same shape.
const SaltSize = 32

// Domain-separation prefixes. NUL separators keep preimages unambiguous.
const (
	contractDomain = "xdao-saf-contract-v1"
	networkDomain  = "xdao-saf-network-v1"
)

func rawCID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		// multihash.Sum only errors for invalid inputs; with SHA2_256 and -1
		// length, this should be unreachable.
		return cid.Undef, trap.Wrap(trap.KindInternal, "SAF-ADDR-001", "multihash failed", err)
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// Contract returns the deterministic address for a contract deployed by
// deployer with the given salt.
func Contract(deployer cid.Cid, salt [SaltSize]byte) (cid.Cid, error) {
	if !deployer.Defined() {
		return cid.Undef, trap.New(trap.KindDeploy, "SAF-ADDR-101", "undefined deployer identity")
	}
	pre := make([]byte, 0, len(contractDomain)+1+len(deployer.Bytes())+1+SaltSize)
	pre = append(pre, contractDomain...)
	pre = append(pre, 0)
	pre = append(pre, deployer.Bytes()...)
	pre = append(pre, 0)
	pre = append(pre, salt[:]...)
	return rawCID(pre)
}

// Network returns the identity of an execution environment. It acts as the
// deployer for top-level deployments (the factory itself).
func Network(id string) (cid.Cid, error) {
	if id == "" {
		return cid.Undef, trap.New(trap.KindDeploy, "SAF-ADDR-102", "empty network id")
	}
	pre := make([]byte, 0, len(networkDomain)+1+len(id))
	pre = append(pre, networkDomain...)
	pre = append(pre, 0)
	pre = append(pre, id...)
	return rawCID(pre)
}

// Blueprint returns the blueprint ID for a code template: the CID of its
// bytes. Identical templates registered anywhere share one ID.
func Blueprint(code []byte) (cid.Cid, error) {
	if len(code) == 0 {
		return cid.Undef, trap.New(trap.KindDeploy, "SAF-ADDR-103", "empty blueprint code")
	}
	return rawCID(code)
}
