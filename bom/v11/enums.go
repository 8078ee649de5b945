package v11

import "fmt"

func unmarshalEnum[T ~string](b []byte, out *T, defined func(T) bool, what string) error {
	v := T(b)
	if !defined(v) {
		return fmt.Errorf("v1.1: undefined %s %q", what, string(b))
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
	ComponentTypeDevice          ComponentType = "device"
	ComponentTypeFile            ComponentType = "file"
)

var componentTypes = set(
	ComponentTypeApplication,
	ComponentTypeFramework,
	ComponentTypeLibrary,
	ComponentTypeOperatingSystem,
	ComponentTypeDevice,
	ComponentTypeFile,
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
	ScopeExcluded Scope = "excluded"
)

var scopes = set(
	ScopeRequired,
	ScopeOptional,
	ScopeExcluded,
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
	HashSHA3_384 HashAlgorithm = "SHA3-384"
	HashSHA3_512 HashAlgorithm = "SHA3-512"
)

var hashAlgorithms = set(
	HashMD5,
	HashSHA1,
	HashSHA256,
	HashSHA384,
	HashSHA512,
	HashSHA3_256,
	HashSHA3_384,
	HashSHA3_512,
)

func (a HashAlgorithm) IsDefined() bool {
	_, ok := hashAlgorithms[a]
	return ok
}

func (a *HashAlgorithm) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, a, HashAlgorithm.IsDefined, "hash algorithm")
}

type ExternalReferenceType string

const (
	ERTypeVCS           ExternalReferenceType = "vcs"
	ERTypeIssueTracker  ExternalReferenceType = "issue-tracker"
	ERTypeWebsite       ExternalReferenceType = "website"
	ERTypeAdvisories    ExternalReferenceType = "advisories"
	ERTypeBOM           ExternalReferenceType = "bom"
	ERTypeMailingList   ExternalReferenceType = "mailing-list"
	ERTypeSocial        ExternalReferenceType = "social"
	ERTypeChat          ExternalReferenceType = "chat"
	ERTypeDocumentation ExternalReferenceType = "documentation"
	ERTypeSupport       ExternalReferenceType = "support"
	ERTypeDistribution  ExternalReferenceType = "distribution"
	ERTypeLicense       ExternalReferenceType = "license"
	ERTypeBuildMeta     ExternalReferenceType = "build-meta"
	ERTypeBuildSystem   ExternalReferenceType = "build-system"
	ERTypeOther         ExternalReferenceType = "other"
)

var externalReferenceTypes = set(
	ERTypeVCS,
	ERTypeIssueTracker,
	ERTypeWebsite,
	ERTypeAdvisories,
	ERTypeBOM,
	ERTypeMailingList,
	ERTypeSocial,
	ERTypeChat,
	ERTypeDocumentation,
	ERTypeSupport,
	ERTypeDistribution,
	ERTypeLicense,
	ERTypeBuildMeta,
	ERTypeBuildSystem,
	ERTypeOther,
)

func (t ExternalReferenceType) IsDefined() bool {
	_, ok := externalReferenceTypes[t]
	return ok
}

func (t *ExternalReferenceType) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, t, ExternalReferenceType.IsDefined, "external reference type")
}
