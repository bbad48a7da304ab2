package keys

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// KeyStore represents a simple local-first key management system for account
// owner seeds.
//
// EXPERIMENTAL: this filesystem-backed storage surface is not part of the
// stable protocol core API and may change in MINOR releases.
//
// Features:
// - Supports Ed25519 keys only
// - Stores seeds on the local filesystem (0600 files)
// - Generates deterministic sub-account seeds based on labels
//
// This package is designed to be straightforward and explicit.
type KeyStore struct {
	Directory string
}

type KeyEntry struct {
	Identifier string
	Labels     []string
}

func GetDefaultDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".xdao", "saf", "keys"), nil
}

func CreateKeyStore(directory string) (*KeyStore, error) {
	if directory == "" {
		var err error
		directory, err = GetDefaultDirectory()
		if err != nil {
			return nil, err
		}
	}
	return &KeyStore{Directory: directory}, nil
}

func (ks *KeyStore) getRootKeyFilePath(identifier string) string {
	return filepath.Join(ks.Directory, identifier, "owner.key")
}

func (ks *KeyStore) getLabelKeyFilePath(identifier, label string) string {
	return filepath.Join(ks.Directory, identifier, "labels", label+".key")
}

func CheckKeyName(identifier string) error {
	if identifier == "" {
		return errors.New("identifier cannot be empty")
	}
	for _, char := range identifier {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '-' || char == '_' {
			continue
		}
		return fmt.Errorf("invalid character %q in identifier", char)
	}
	return nil
}

func CheckLabel(label string) error {
	if label == "" {
		return errors.New("label cannot be empty")
	}
	for _, char := range label {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '-' || char == '_' {
			continue
		}
		return fmt.Errorf("invalid character %q in label", char)
	}
	return nil
}

func ParseSeedHex(seedHex string) ([]byte, error) {
	seedHex = strings.TrimSpace(seedHex)
	seedHex = strings.TrimPrefix(seedHex, "0x")
	data, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, err
	}
	if len(data) != ed25519.SeedSize {
		return nil, fmt.Errorf("expected seed length of %d bytes, got %d", ed25519.SeedSize, len(data))
	}
	return data, nil
}

func (ks *KeyStore) saveSeedToFile(filePath string, seed []byte, overwrite bool) error {
	if len(seed) != ed25519.SeedSize {
		return fmt.Errorf("expected seed length of %d bytes", ed25519.SeedSize)
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o700); err != nil {
		return err
	}
	flags := os.O_WRONLY | os.O_CREATE
	if overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}
	file, err := os.OpenFile(filePath, flags, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := file.WriteString(hex.EncodeToString(seed) + "\n"); err != nil {
		return err
	}
	return file.Close()
}

func (ks *KeyStore) loadSeedFromFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseSeedHex(strings.TrimSpace(string(data)))
}

// InitializeRootKey stores a root seed under identifier and returns the
// owner-key string for it.
func (ks *KeyStore) InitializeRootKey(identifier string, seed []byte, overwrite bool) (ownerKey string, filePath string, err error) {
	if err := CheckKeyName(identifier); err != nil {
		return "", "", err
	}
	filePath = ks.getRootKeyFilePath(identifier)
	if err := ks.saveSeedToFile(filePath, seed, overwrite); err != nil {
		return "", "", err
	}
	return OwnerKeyFromSeed(seed), filePath, nil
}

// DeriveKeyFromLabel derives and stores a labeled sub-account seed from an
// existing root seed.
func (ks *KeyStore) DeriveKeyFromLabel(from, label string, overwrite bool) (ownerKey string, filePath string, err error) {
	if err := CheckKeyName(from); err != nil {
		return "", "", err
	}
	if err := CheckLabel(label); err != nil {
		return "", "", err
	}
	rootSeed, err := ks.loadSeedFromFile(ks.getRootKeyFilePath(from))
	if err != nil {
		return "", "", err
	}
	labelSeed, err := DeriveLabeledSeed(rootSeed, label)
	if err != nil {
		return "", "", err
	}
	filePath = ks.getLabelKeyFilePath(from, label)
	if err := ks.saveSeedToFile(filePath, labelSeed, overwrite); err != nil {
		return "", "", err
	}
	return OwnerKeyFromSeed(labelSeed), filePath, nil
}

// ExportKey returns the owner-key string for a stored seed.
func (ks *KeyStore) ExportKey(identifier string, label string) (string, error) {
	if err := CheckKeyName(identifier); err != nil {
		return "", err
	}
	var seed []byte
	var err error
	if label == "" {
		seed, err = ks.loadSeedFromFile(ks.getRootKeyFilePath(identifier))
	} else {
		if err := CheckLabel(label); err != nil {
			return "", err
		}
		seed, err = ks.loadSeedFromFile(ks.getLabelKeyFilePath(identifier, label))
	}
	if err != nil {
		return "", err
	}
	return OwnerKeyFromSeed(seed), nil
}

// LoadSeed resolves a seed from whichever source the caller supplied: an
// explicit hex seed, a key file, or a stored signer name plus optional label.
func (ks *KeyStore) LoadSeed(seedHex, signerName, signerLabel, keyFile string) ([]byte, error) {
	if seedHex != "" {
		return ParseSeedHex(seedHex)
	}
	if keyFile != "" {
		return ks.loadSeedFromFile(keyFile)
	}
	if signerName != "" {
		if err := CheckKeyName(signerName); err != nil {
			return nil, err
		}
		if signerLabel == "" {
			return ks.loadSeedFromFile(ks.getRootKeyFilePath(signerName))
		}
		if err := CheckLabel(signerLabel); err != nil {
			return nil, err
		}
		return ks.loadSeedFromFile(ks.getLabelKeyFilePath(signerName, signerLabel))
	}
	return nil, errors.New("no signer provided")
}

// ListKeys enumerates stored identifiers and their labels.
func (ks *KeyStore) ListKeys() ([]KeyEntry, error) {
	entries, err := os.ReadDir(ks.Directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var identifiers []string
	for _, entry := range entries {
		if entry.IsDir() {
			identifiers = append(identifiers, entry.Name())
		}
	}
	sort.Strings(identifiers)

	var result []KeyEntry
	for _, identifier := range identifiers {
		labelsDir := filepath.Join(ks.Directory, identifier, "labels")
		labelEntries, lerr := os.ReadDir(labelsDir)
		var labels []string
		if lerr == nil {
			for _, labelEntry := range labelEntries {
				if labelEntry.IsDir() {
					continue
				}
				if strings.HasSuffix(labelEntry.Name(), ".key") {
					labels = append(labels, strings.TrimSuffix(labelEntry.Name(), ".key"))
				}
			}
			sort.Strings(labels)
		}
		result = append(result, KeyEntry{Identifier: identifier, Labels: labels})
	}
	return result, nil
}
