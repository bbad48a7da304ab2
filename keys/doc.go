// Package keys provides wallet-side key helpers for the smart-account core.
//
// Stable:
//   - Pure, deterministic primitives: owner-key formatting, payload digests,
//     digest signing, labeled sub-seed derivation.
//
// Experimental:
//   - Filesystem-backed key storage and convenience helpers (KeyStore and
//     related functions). These are local-first utilities and are not part of
//     the long-term protocol contract.
package keys
