package v13

import "fmt"

func unmarshalEnum[T ~string](b []byte, out *T, defined func(T) bool, what string) error {
	v := T(b)
	if !defined(v) {
		return fmt.Errorf("v1.3: undefined %s %q", what, string(b))
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
	ComponentTypeContainer       ComponentType = "container"
	ComponentTypeOperatingSystem ComponentType = "operating-system"
	ComponentTypeDevice          ComponentType = "device"
	ComponentTypeFirmware        ComponentType = "firmware"
	ComponentTypeFile            ComponentType = "file"
)

var componentTypes = set(
	ComponentTypeApplication,
	ComponentTypeFramework,
	ComponentTypeLibrary,
	ComponentTypeContainer,
	ComponentTypeOperatingSystem,
	ComponentTypeDevice,
	ComponentTypeFirmware,
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
	HashMD5        HashAlgorithm = "MD5"
	HashSHA1       HashAlgorithm = "SHA-1"
	HashSHA256     HashAlgorithm = "SHA-256"
	HashSHA384     HashAlgorithm = "SHA-384"
	HashSHA512     HashAlgorithm = "SHA-512"
	HashSHA3_256   HashAlgorithm = "SHA3-256"
	HashSHA3_384   HashAlgorithm = "SHA3-384"
	HashSHA3_512   HashAlgorithm = "SHA3-512"
	HashBLAKE2b256 HashAlgorithm = "BLAKE2b-256"
	HashBLAKE2b384 HashAlgorithm = "BLAKE2b-384"
	HashBLAKE2b512 HashAlgorithm = "BLAKE2b-512"
	HashBLAKE3     HashAlgorithm = "BLAKE3"
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
	HashBLAKE2b256,
	HashBLAKE2b384,
	HashBLAKE2b512,
	HashBLAKE3,
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

type PatchType string

const (
	PatchUnofficial PatchType = "unofficial"
	PatchMonkey     PatchType = "monkey"
	PatchBackport   PatchType = "backport"
	PatchCherryPick PatchType = "cherry-pick"
)

var patchTypes = set(
	PatchUnofficial,
	PatchMonkey,
	PatchBackport,
	PatchCherryPick,
)

func (t PatchType) IsDefined() bool {
	_, ok := patchTypes[t]
	return ok
}

func (t *PatchType) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, t, PatchType.IsDefined, "patch type")
}

type IssueType string

const (
	IssueDefect      IssueType = "defect"
	IssueEnhancement IssueType = "enhancement"
	IssueSecurity    IssueType = "security"
)

var issueTypes = set(
	IssueDefect,
	IssueEnhancement,
	IssueSecurity,
)

func (t IssueType) IsDefined() bool {
	_, ok := issueTypes[t]
	return ok
}

func (t *IssueType) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, t, IssueType.IsDefined, "issue type")
}

type DataFlow string

const (
	DataFlowInbound       DataFlow = "inbound"
	DataFlowOutbound      DataFlow = "outbound"
	DataFlowBiDirectional DataFlow = "bi-directional"
	DataFlowUnknown       DataFlow = "unknown"
)

var dataFlows = set(
	DataFlowInbound,
	DataFlowOutbound,
	DataFlowBiDirectional,
	DataFlowUnknown,
)

func (f DataFlow) IsDefined() bool {
	_, ok := dataFlows[f]
	return ok
}

func (f *DataFlow) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, f, DataFlow.IsDefined, "data flow")
}

type Aggregate string

const (
	AggregateComplete                 Aggregate = "complete"
	AggregateIncomplete               Aggregate = "incomplete"
	AggregateIncompleteFirstPartyOnly Aggregate = "incomplete_first_party_only"
	AggregateIncompleteThirdPartyOnly Aggregate = "incomplete_third_party_only"
	AggregateUnknown                  Aggregate = "unknown"
	AggregateNotSpecified             Aggregate = "not_specified"
)

var aggregates = set(
	AggregateComplete,
	AggregateIncomplete,
	AggregateIncompleteFirstPartyOnly,
	AggregateIncompleteThirdPartyOnly,
	AggregateUnknown,
	AggregateNotSpecified,
)

func (a Aggregate) IsDefined() bool {
	_, ok := aggregates[a]
	return ok
}

func (a *Aggregate) UnmarshalText(b []byte) error {
	return unmarshalEnum(b, a, Aggregate.IsDefined, "aggregate")
}
