package keys

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// KeyStore keeps signing seeds on the local filesystem:
//
//	<Directory>/<identifier>/root.key
//	<Directory>/<identifier>/roles/<role>.key
//
// Each file holds one hex encoded seed. Role seeds are derived from the
// root seed with DeriveRoleSeed, so a lost role file can be re-derived.
type KeyStore struct {
	Directory string
}

// KeyEntry lists an identifier and the roles derived for it.
type KeyEntry struct {
	Identifier string   `json:"identifier"`
	Roles      []string `json:"roles,omitempty"`
}

// DefaultDirectory is ~/.xdao/sbom/keys.
func DefaultDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".xdao", "sbom", "keys"), nil
}

// Open returns a KeyStore rooted at directory, or at DefaultDirectory
// when directory is empty.
func Open(directory string) (*KeyStore, error) {
	if directory == "" {
		var err error
		directory, err = DefaultDirectory()
		if err != nil {
			return nil, err
		}
	}
	return &KeyStore{Directory: directory}, nil
}

func (ks *KeyStore) rootPath(identifier string) string {
	return filepath.Join(ks.Directory, identifier, "root.key")
}

func (ks *KeyStore) rolePath(identifier, role string) string {
	return filepath.Join(ks.Directory, identifier, "roles", role+".key")
}

func checkName(kind, s string) error {
	if s == "" {
		return fmt.Errorf("%s cannot be empty", kind)
	}
	for _, char := range s {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '-' || char == '_' {
			continue
		}
		return fmt.Errorf("invalid character %q in %s", char, kind)
	}
	return nil
}

func CheckKeyName(identifier string) error { return checkName("identifier", identifier) }

func CheckRole(role string) error { return checkName("role", role) }

// ParseSeedHex decodes a hex seed, tolerating surrounding space and a 0x
// prefix.
func ParseSeedHex(seedHex string) ([]byte, error) {
	seedHex = strings.TrimSpace(seedHex)
	seedHex = strings.TrimPrefix(seedHex, "0x")
	data, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, err
	}
	if len(data) != SeedSize {
		return nil, fmt.Errorf("expected seed length of %d bytes, got %d", SeedSize, len(data))
	}
	return data, nil
}

// NewSeed reads a fresh seed from r, or from crypto/rand when r is nil.
func NewSeed(r io.Reader) ([]byte, error) {
	if r == nil {
		r = rand.Reader
	}
	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(r, seed); err != nil {
		return nil, err
	}
	return seed, nil
}

func saveSeed(filePath string, seed []byte, overwrite bool) error {
	if len(seed) != SeedSize {
		return fmt.Errorf("expected seed length of %d bytes", SeedSize)
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

func loadSeed(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseSeedHex(string(data))
}

// InitializeRootKey stores seed as the root key of identifier and returns
// its public key under alg.
func (ks *KeyStore) InitializeRootKey(identifier string, seed []byte, alg Algorithm, overwrite bool) (publicKey, filePath string, err error) {
	if err := CheckKeyName(identifier); err != nil {
		return "", "", err
	}
	filePath = ks.rootPath(identifier)
	if err := saveSeed(filePath, seed, overwrite); err != nil {
		return "", "", err
	}
	publicKey, err = PublicKeyFromSeed(alg, seed)
	return publicKey, filePath, err
}

// DeriveRole derives and stores the role seed of identifier.
func (ks *KeyStore) DeriveRole(identifier, role string, alg Algorithm, overwrite bool) (publicKey, filePath string, err error) {
	if err := CheckKeyName(identifier); err != nil {
		return "", "", err
	}
	rootSeed, err := loadSeed(ks.rootPath(identifier))
	if err != nil {
		return "", "", err
	}
	roleSeed, err := DeriveRoleSeed(rootSeed, role)
	if err != nil {
		return "", "", err
	}
	filePath = ks.rolePath(identifier, role)
	if err := saveSeed(filePath, roleSeed, overwrite); err != nil {
		return "", "", err
	}
	publicKey, err = PublicKeyFromSeed(alg, roleSeed)
	return publicKey, filePath, err
}

// Seed loads the root seed of identifier, or its role seed when role is
// non-empty.
func (ks *KeyStore) Seed(identifier, role string) ([]byte, error) {
	if err := CheckKeyName(identifier); err != nil {
		return nil, err
	}
	if role == "" {
		return loadSeed(ks.rootPath(identifier))
	}
	if err := CheckRole(role); err != nil {
		return nil, err
	}
	return loadSeed(ks.rolePath(identifier, role))
}

// PublicKey returns the encoded public key of a stored seed.
func (ks *KeyStore) PublicKey(identifier, role string, alg Algorithm) (string, error) {
	seed, err := ks.Seed(identifier, role)
	if err != nil {
		return "", err
	}
	return PublicKeyFromSeed(alg, seed)
}

// Signer returns a signer over a stored seed.
func (ks *KeyStore) Signer(identifier, role string, alg Algorithm) (Signer, error) {
	seed, err := ks.Seed(identifier, role)
	if err != nil {
		return nil, err
	}
	return NewSigner(alg, seed)
}

// LoadSeed resolves a seed from, in order: a hex literal, a key file, or
// a stored identifier and role.
func (ks *KeyStore) LoadSeed(seedHex, identifier, role, keyFile string) ([]byte, error) {
	switch {
	case seedHex != "":
		return ParseSeedHex(seedHex)
	case keyFile != "":
		return loadSeed(keyFile)
	case identifier != "":
		return ks.Seed(identifier, role)
	}
	return nil, errors.New("no signer provided")
}

// ListKeys returns every identifier with its derived roles, sorted.
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
		roleEntries, _ := os.ReadDir(filepath.Join(ks.Directory, identifier, "roles"))
		var roles []string
		for _, roleEntry := range roleEntries {
			if !roleEntry.IsDir() && strings.HasSuffix(roleEntry.Name(), ".key") {
				roles = append(roles, strings.TrimSuffix(roleEntry.Name(), ".key"))
			}
		}
		sort.Strings(roles)
		result = append(result, KeyEntry{Identifier: identifier, Roles: roles})
	}
	return result, nil
}
