package v10

import "fmt"

func unmarshalEnum[T ~string](b []byte, out *T, defined func(T) bool, what string) error {
	v := T(b)
	if !defined(v) {
		return fmt.Errorf("v1.0: undefined %s %q", what, string(b))
	}
	*out = v
	return nil
}

func set[T ~string](vals ...T) map[T]struct{} {
	m := make(map[T]struct{}, len(vals))
	for _, v := range vals {
		m[v] = struct{}{}
	}
	return m
}

// ComponentType classifies a component.
type ComponentType string

const (
	ComponentTypeApplication     ComponentType = "application"
	ComponentTypeFramework       ComponentType = "framework"
	ComponentTypeLibrary         ComponentType = "library"
	ComponentTypeOperatingSystem ComponentType = "operating-system"
)

var componentTypes = set(
	ComponentTypeApplication,
	ComponentTypeFramework,
	ComponentTypeLibrary,
	ComponentTypeOperatingSystem,
)

func (t ComponentType) IsDefined() bool {
	_, ok := componentTypes[t]
	return ok
}

func (t *ComponentType) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, t, ComponentType.IsDefined, "component type")
}

type Scope string

const (
	ScopeRequired Scope = "required"
	ScopeOptional Scope = "optional"
)

var scopes = set(
	ScopeRequired,
	ScopeOptional,
)

func (s Scope) IsDefined() bool {
	_, ok := scopes[s]
	return ok
}

func (s *Scope) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, s, Scope.IsDefined, "scope")
}

type HashAlgorithm string

const (
	HashMD5      HashAlgorithm = "MD5"
	HashSHA1     HashAlgorithm = "SHA-1"
	HashSHA256   HashAlgorithm = "SHA-256"
	HashSHA384   HashAlgorithm = "SHA-384"
	HashSHA512   HashAlgorithm = "SHA-512"
	HashSHA3_256 HashAlgorithm = "SHA3-256"
	HashSHA3_512 HashAlgorithm = "SHA3-512"
)

var hashAlgorithms = set(
	HashMD5,
	HashSHA1,
	HashSHA256,
	HashSHA384,
	HashSHA512,
	HashSHA3_256,
	HashSHA3_512,
)

func (a HashAlgorithm) IsDefined() bool {
	_, ok := hashAlgorithms[a]
	return ok
}

func (a *HashAlgorithm) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, a, HashAlgorithm.IsDefined, "hash algorithm")
}
